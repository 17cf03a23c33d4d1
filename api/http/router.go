package http

import (
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"

	"github.com/artem13815/atlas/api/http/handlers"
	"github.com/artem13815/atlas/pkg/metrics"
)

// Handlers groups everything Register mounts. Metrics may be nil.
type Handlers struct {
	Analysis *handlers.AnalysisHandler
	Status   *handlers.StatusHandler
	Health   *handlers.HealthHandler
	Metrics  *metrics.Collector
}

// NewApp builds the Fiber app with the shared middleware stack.
func NewApp(allowOrigins string, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		// Provider calls alone may take up to two 60s attempts.
		WriteTimeout: 3 * time.Minute,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS,HEAD",
		AllowHeaders: "*",
		// Fiber refuses credentials together with a wildcard origin.
		AllowCredentials: allowOrigins != "*",
	}))
	if logger != nil {
		app.Use(requestLogger(logger))
	}
	return app
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers) {
	api := app.Group("/api")

	api.Get("/", h.Status.Root)
	api.Post("/status", h.Status.Create)
	api.Get("/status", h.Status.List)

	api.Post("/analyze-recording", h.Analysis.Analyze)

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", h.Health.Health)
	api.Get("/ready", h.Health.Ready)

	if h.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(h.Metrics.Handler()))
	}
	app.Get("/swagger/*", swagger.HandlerDefault)
}

// requestLogger logs one line per request. Bodies are never logged.
func requestLogger(logger *zap.Logger) fiber.Handler {
	log := logger.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
		)
		return err
	}
}
