package config

import (
	"errors"
	"fmt"
	"time"

	"catalogue/internal/database"
	"catalogue/internal/i18n"

	"github.com/spf13/viper"
)

// StorageMemory keeps products in process memory only.
const StorageMemory = "memory"

// Config is the runtime configuration of the catalogue service.
type Config struct {
	AppPort         string
	StorageDriver   string
	DatabaseDSN     string
	RabbitMQURL     string
	RabbitMQQueue   string
	ConsumeEvents   bool
	DefaultLocale   string
	LogLevel        string
	MetricsEnabled  bool
	SeedDemoData    bool
	ShutdownTimeout time.Duration
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("DATABASE_DSN", "file::memory:?cache=shared")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "catalogue_product_events")
	v.SetDefault("RABBITMQ_CONSUME_EVENTS", false)
	v.SetDefault("DEFAULT_LOCALE", "en")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("SEED_DEMO_DATA", false)
	v.SetDefault("SHUTDOWN_TIMEOUT", 30*time.Second)
}

// Load reads configuration from defaults, an optional config file and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:         v.GetString("APP_PORT"),
		StorageDriver:   v.GetString("STORAGE_DRIVER"),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:   v.GetString("RABBITMQ_QUEUE"),
		ConsumeEvents:   v.GetBool("RABBITMQ_CONSUME_EVENTS"),
		DefaultLocale:   v.GetString("DEFAULT_LOCALE"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		MetricsEnabled:  v.GetBool("METRICS_ENABLED"),
		SeedDemoData:    v.GetBool("SEED_DEMO_DATA"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory:
	case database.DriverSQLite, database.DriverPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for storage driver %q", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	if !i18n.Supported(c.DefaultLocale) {
		return fmt.Errorf("unsupported DEFAULT_LOCALE %q", c.DefaultLocale)
	}
	if c.RabbitMQURL != "" && c.RabbitMQQueue == "" {
		return fmt.Errorf("RABBITMQ_QUEUE is required when RABBITMQ_URL is set")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
