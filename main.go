package main

import (
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/Mendozape/crud-sub000/app/config"
	"github.com/Mendozape/crud-sub000/app/database"
	"github.com/Mendozape/crud-sub000/app/middleware"
	"github.com/Mendozape/crud-sub000/app/routes/auth"
	"github.com/Mendozape/crud-sub000/app/routes/dashboard"
	"github.com/Mendozape/crud-sub000/app/routes/expenses"
	"github.com/Mendozape/crud-sub000/app/routes/fees"
	"github.com/Mendozape/crud-sub000/app/routes/messages"
	"github.com/Mendozape/crud-sub000/app/routes/payments"
	"github.com/Mendozape/crud-sub000/app/routes/properties"
	"github.com/Mendozape/crud-sub000/app/routes/reports"
	"github.com/Mendozape/crud-sub000/app/routes/residents"
	"github.com/Mendozape/crud-sub000/app/routes/settings"
	"github.com/Mendozape/crud-sub000/app/routes/streets"
	"github.com/Mendozape/crud-sub000/app/routes/users"
	"github.com/Mendozape/crud-sub000/app/services"
	"github.com/Mendozape/crud-sub000/pkg/logging"
)

// customErrorHandler renders every error as the conventional JSON envelope.
// Internal errors are logged server-side and the caller gets a generic
// message.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code == fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level)

	// Initialize database
	if err := config.InitDB(); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Start background scheduler
	services.StartScheduler(config.GetDB())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middleware.Metrics())
	app.Get("/metrics", middleware.MetricsHandler())

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := config.GetDB().Ping(); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Database unreachable")
		}
		return c.JSON(fiber.Map{"success": true, "status": "ok"})
	})

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup dashboard routes
	dashboard.SetupDashboardRoutes(app)

	// Setup payment ledger routes
	payments.SetupPaymentRoutes(app, &database.PaymentStore{DB: config.GetDB()})

	// Setup report routes
	reports.SetupReportRoutes(app)

	// Setup catalog routes
	properties.SetupPropertyRoutes(app)
	streets.SetupStreetRoutes(app)
	residents.SetupResidentRoutes(app)
	fees.SetupFeeRoutes(app)
	expenses.SetupExpenseRoutes(app)

	// Setup user management routes
	users.SetupUserRoutes(app)

	// Setup messaging routes
	messages.SetupMessageRoutes(app)

	// Setup settings routes
	settings.SetupSettingRoutes(app)

	slog.Info("server listening", "address", cfg.Server.Address)
	if err := app.Listen(cfg.Server.Address); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
