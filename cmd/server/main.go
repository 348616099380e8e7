package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/config"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/database"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/logging"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/models"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/notify"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/routes"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/services"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/store"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Classifier gateway: ordered candidates, first configured one wins for
	// the process lifetime. The lexicon fallback is always configured.
	gateway, err := classifier.NewGateway(
		classifier.NewChatProvider("openai", cfg.OpenAIAPIURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AITimeout),
		classifier.NewChatProvider("glm", cfg.GLMAPIURL, cfg.GLMAPIKey, cfg.GLMModel, cfg.AITimeout),
		classifier.NewChatProvider("deepseek", cfg.DeepSeekAPIURL, cfg.DeepSeekAPIKey, cfg.DeepSeekModel, cfg.AITimeout),
		classifier.NewLexiconProvider(),
	)
	if err != nil {
		slog.Error("classifier gateway init failed", "error", err)
		os.Exit(1)
	}
	slog.Info("classifier gateway ready", "provider", gateway.ProviderName())

	// Stores
	requestStore := store.NewRequestStore(database.DB)
	resultStore := store.NewResultStore(database.DB)
	attemptStore := store.NewAttemptStore(database.DB)

	// Notification channels: unconfigured ones degrade to noop so the
	// audit trail stays observable.
	var emailChannel notify.Channel = notify.NewNoopChannel(models.ChannelEmail)
	if cfg.BrevoAPIKey != "" {
		emailChannel = notify.NewEmailChannel(cfg.BrevoAPIKey, cfg.BrevoSenderName, cfg.BrevoSenderEmail)
	}
	var opsChannel notify.Channel = notify.NewNoopChannel(models.ChannelOpsAlert)
	if cfg.SlackWebhookURL != "" {
		opsChannel = notify.NewOpsChannel(cfg.SlackWebhookURL)
	}
	dispatcher := notify.NewDispatcher(attemptStore, cfg.NotifyBaseDelay, cfg.NotifyAttemptTimeout, emailChannel, opsChannel)

	// Services
	moderationService := services.NewModerationService(requestStore, resultStore, gateway, dispatcher)
	analyticsService := services.NewAnalyticsService(requestStore, resultStore)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	moderationHandler := handlers.NewModerationHandler(moderationService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	adminHandler := handlers.NewAdminHandler(attemptStore)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, healthHandler, moderationHandler, analyticsHandler, adminHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Let in-flight notification retries settle before closing stores.
	if !dispatcher.Wait(30 * time.Second) {
		slog.Warn("notification deliveries still in flight at shutdown")
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}
