package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/directory-service/internal/api/http/handlers"
	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health           *handlers.HealthHandler
	Auth             *handlers.AuthHandler
	Users            *handlers.UsersHandler
	CustomerServices *handlers.CustomerServicesHandler
	AuthMiddleware   *auth.AuthMiddleware
	Metrics          *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.SignUp)
	authGroup.Post("/signin", cfg.Auth.SignIn)
	authGroup.Post("/signout", cfg.AuthMiddleware.Handle, cfg.Auth.SignOut)

	users := app.Group("/users")
	users.Post("/", cfg.Users.Create)
	users.Get("/", cfg.Users.FindByEmail)
	users.Get("/:id", cfg.Users.Get)
	users.Patch("/:id", cfg.AuthMiddleware.Handle, cfg.Users.Update)
	users.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Users.Delete)

	services := app.Group("/customer-services")
	services.Get("/", cfg.CustomerServices.ListByOwner)
	services.Get("/:id", cfg.CustomerServices.Get)
	services.Post("/", cfg.AuthMiddleware.Handle, cfg.CustomerServices.Create)
	services.Patch("/:id", cfg.AuthMiddleware.Handle, cfg.CustomerServices.Update)
	services.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.CustomerServices.Delete)
}
