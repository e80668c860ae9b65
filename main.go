package main

import (
	"context"
	"fmt"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"catalogue/internal/config"
	"catalogue/internal/database"
	"catalogue/internal/handlers"
	"catalogue/internal/i18n"
	"catalogue/internal/middleware"
	"catalogue/internal/models"
	"catalogue/internal/repositories"
	"catalogue/internal/services"
	"catalogue/internal/validation"
	"catalogue/pkg/logger"
	"catalogue/pkg/rabbitmq"
)

const (
	serviceName = "catalogue"
	apiBasePath = "/catalogue-api"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(serviceName, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	// --- Storage ---
	productRepo, closeStore, err := openProductRepository(cfg)
	if err != nil {
		log.Fatal("failed to open product storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	if cfg.SeedDemoData {
		seedProducts(productRepo, log)
	}

	// --- Product events (optional) ---
	var (
		publisher services.EventPublisher
		mqClient  *rabbitmq.Client
	)
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, log)
		if err != nil {
			log.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		publisher = mqClient
		if cfg.ConsumeEvents {
			startEventLogger(mqClient, log)
		}
	} else {
		log.Info("RABBITMQ_URL is not set, product events are disabled")
	}

	// --- HTTP ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := newApp(appDeps{
		Config:    cfg,
		Repo:      productRepo,
		Publisher: publisher,
		Log:       log,
		Registry:  registry,
	})
	if err != nil {
		log.Fatal("failed to build application", zap.Error(err))
	}

	go func() {
		log.Info("starting server", zap.String("addr", cfg.AppPort), zap.String("storage", cfg.StorageDriver))
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	// One operation so the HTTP server drains before its dependencies close.
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			serviceName: func(ctx context.Context) error {
				log.Info("shutting down server")
				if err := app.ShutdownWithContext(ctx); err != nil {
					log.Error("error during fiber shutdown", zap.Error(err))
				}
				if mqClient != nil {
					if err := mqClient.Close(); err != nil {
						log.Error("error closing RabbitMQ client", zap.Error(err))
					}
				}
				return closeStore()
			},
		},
	)

	exitCode := <-wait
	log.Info("server stopped", zap.Int("exit_code", exitCode))
	_ = log.Sync()
	os.Exit(exitCode)
}

type appDeps struct {
	Config    *config.Config
	Repo      repositories.ProductRepository
	Publisher services.EventPublisher // optional
	Log       *zap.Logger
	Registry  *prometheus.Registry // optional, metrics are off when nil
}

// newApp wires services, handlers and middleware into a fiber app.
func newApp(deps appDeps) (*fiber.App, error) {
	messages, err := i18n.NewBundle(deps.Config.DefaultLocale)
	if err != nil {
		return nil, err
	}
	validate, err := validation.New(messages)
	if err != nil {
		return nil, err
	}

	productService := services.NewProductService(deps.Repo, deps.Publisher, deps.Log)
	productHandler := handlers.NewProductHandler(productService, validate, messages, deps.Log, apiBasePath)

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ErrorHandler:          handlers.ErrorHandler(messages, deps.Log),
		DisableStartupMessage: true,
	})

	// --- Middleware ---
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger(deps.Log))
	if deps.Registry != nil && deps.Config.MetricsEnabled {
		metrics := middleware.NewMetrics(deps.Registry)
		app.Use(metrics.Middleware(serviceName))
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}
	app.Use(recover.New())

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"storage": deps.Config.StorageDriver,
		})
	})

	// --- API Routes ---
	api := app.Group(apiBasePath)
	productHandler.RegisterRoutes(api)

	return app, nil
}

func openProductRepository(cfg *config.Config) (repositories.ProductRepository, func() error, error) {
	if cfg.StorageDriver == config.StorageMemory {
		return repositories.NewInMemoryProductRepository(), func() error { return nil }, nil
	}

	db, err := database.Open(cfg.StorageDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewGORMProductRepository(db), func() error { return database.Close(db) }, nil
}

// startEventLogger consumes product events and writes them to the log.
func startEventLogger(client *rabbitmq.Client, log *zap.Logger) {
	err := client.ConsumeProductEvents(func(msg amqp.Delivery) error {
		event, err := rabbitmq.DecodeProductEvent(msg)
		if err != nil {
			return err
		}
		log.Info("product event received",
			zap.String("event_id", event.ID),
			zap.String("type", event.Type),
			zap.Int("product_id", event.ProductID),
			zap.Time("occurred_at", event.OccurredAt),
		)
		return nil
	})
	if err != nil {
		log.Warn("failed to start product event consumer", zap.Error(err))
	}
}

// seedProducts populates the product repository with some initial data.
func seedProducts(repo repositories.ProductRepository, log *zap.Logger) {
	products := []models.Product{
		{Title: "Laptop", Details: ptr("High performance laptop")},
		{Title: "Keyboard", Details: ptr("Mechanical keyboard")},
		{Title: "Mouse", Details: ptr("Ergonomic wireless mouse")},
	}

	for i := range products {
		if err := repo.Save(&products[i]); err != nil {
			log.Warn("failed to seed product", zap.String("title", products[i].Title), zap.Error(err))
			continue
		}
		log.Info("seeded product", zap.String("title", products[i].Title), zap.Int("id", products[i].ID))
	}
}

func ptr(s string) *string { return &s }
