package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/ai"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/config"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/database"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/diagnostic"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/handlers"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/logging"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/mail"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/middleware"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/routes"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
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
	slog.SetDefault(slog.New(logging.NewFanout(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	// External providers
	mailer := mail.NewResendClient(cfg.ResendAPIKey, cfg.EmailFrom)
	llm := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIChatModel, cfg.OpenAIEmbedModel, cfg.AITimeout)

	// Diagnostic pipeline
	pipeline := diagnostic.NewService(
		llm,
		diagnostic.NewPGRetriever(database.DB),
		diagnostic.NewGormHistoryLoader(database.DB),
		cfg.RetrievalTopK,
		cfg.RetrievalThreshold,
	)

	// Services
	authService := services.NewAuthService(database.DB, cfg, mailer)
	inviteService := services.NewInviteService(database.DB, cfg, mailer)
	userAdminService := services.NewUserAdminService(database.DB)
	customerService := services.NewCustomerService(database.DB)
	truckService := services.NewTruckService(database.DB)
	workOrderService := services.NewWorkOrderService(database.DB)
	invoiceService := services.NewInvoiceService(database.DB)
	pmTemplateService := services.NewPMTemplateService(database.DB)
	diagnosticService := services.NewDiagnosticService(database.DB, pipeline)

	// Handlers
	h := &routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Invite:     handlers.NewInviteHandler(inviteService),
		UserAdmin:  handlers.NewUserAdminHandler(userAdminService),
		Customer:   handlers.NewCustomerHandler(customerService),
		Truck:      handlers.NewTruckHandler(truckService),
		WorkOrder:  handlers.NewWorkOrderHandler(workOrderService),
		Invoice:    handlers.NewInvoiceHandler(invoiceService),
		PMTemplate: handlers.NewPMTemplateHandler(pmTemplateService),
		Diagnostic: handlers.NewDiagnosticHandler(diagnosticService),
		Health:     handlers.NewHealthHandler(),
	}

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
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
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
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, h)

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

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
