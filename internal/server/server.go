// Package server assembles the Fiber application: middleware order, routes
// and the store, broker and metrics behind them.
package server

import (
	"time"

	"catalog/internal/config"
	"catalog/internal/handlers"
	"catalog/internal/logging"
	"catalog/internal/metrics"
	"catalog/internal/middleware"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Products *services.ProductService
	Contacts *services.ContactService
	Auth     *services.AuthService
	Loggers  *logging.Loggers
	// Metrics is optional.
	Metrics *metrics.HTTPMetrics
}

// New builds the Fiber app. The request logger is installed first so that it
// times the whole chain and sees the final status of every API request,
// including panics turned into errors by the recover middleware.
func New(cfg *config.Config, deps Deps) *fiber.App {
	loggers := deps.Loggers
	if loggers == nil {
		loggers = logging.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.Server.AppName,
		ErrorHandler:          handlers.ErrorHandler(loggers.App),
		DisableStartupMessage: true,
	})

	loggerCfg := middleware.RequestLoggerConfig{
		Prefix: cfg.Server.APIPrefix,
		Logger: loggers.Requests,
	}
	if deps.Metrics != nil {
		loggerCfg.Observer = deps.Metrics
	}

	app.Use(middleware.RequestLogger(loggerCfg))
	app.Use(recover.New())
	app.Use(cors.New())

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if deps.Metrics != nil && cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	// --- API Routes ---
	api := app.Group(cfg.Server.APIPrefix, middleware.Authenticate(deps.Auth, cfg.Auth.HeaderTypes, loggers.App))
	handlers.NewAuthHandler(deps.Auth).RegisterRoutes(api)
	handlers.NewProductHandler(deps.Products).RegisterRoutes(api)
	handlers.NewContactHandler(deps.Contacts).RegisterRoutes(api)

	return app
}
