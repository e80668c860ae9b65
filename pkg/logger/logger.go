package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a production zap logger tagged with service at the given level.
func New(service, level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel
	cfg.InitialFields = map[string]any{"service": service}
	return cfg.Build()
}
