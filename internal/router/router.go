package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skolara/skolara-api/internal/config"
	"github.com/skolara/skolara-api/internal/handler"
	"github.com/skolara/skolara-api/internal/middleware"
	"github.com/skolara/skolara-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	SubmissionHandler *handler.SubmissionHandler
	GradingHandler    *handler.GradingHandler
	OverviewHandler   *handler.OverviewHandler
	ActivityHandler   *handler.ActivityHandler
	SeedHandler       *handler.SeedHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.SubmissionHandler != nil {
		submissions := api.Group("/submissions", jwtMiddleware)
		deps.SubmissionHandler.Register(submissions)

		if deps.GradingHandler != nil {
			grading := api.Group("/submissions", jwtMiddleware, middleware.RequireRole("teacher", "admin"))
			deps.GradingHandler.Register(grading)
		}
	}

	if deps.OverviewHandler != nil {
		overview := api.Group("", jwtMiddleware)
		deps.OverviewHandler.Register(overview)
	}

	if deps.ActivityHandler != nil {
		activity := api.Group("/activity", jwtMiddleware, middleware.RequireRole("teacher", "admin"))
		deps.ActivityHandler.Register(activity)
	}

	if deps.SeedHandler != nil {
		seed := api.Group("/seed")
		deps.SeedHandler.Register(seed)
	}
}
