package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/http/handlers"
	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Auth           *handlers.AuthHandler
	Seed           *handlers.SeedHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Mutating another account requires the
// admin role; registration, listing and reads are open, matching the
// declared protections below.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	users := app.Group("/users")
	users.Post("/", cfg.Users.Create)
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Patch("/:id", cfg.AuthMiddleware.Handle,
		auth.Protect(auth.Protection{Operation: "users.update", Required: []domain.Role{domain.RoleAdmin}}),
		cfg.Users.Update)
	users.Delete("/:id", cfg.AuthMiddleware.Handle,
		auth.Protect(auth.Protection{Operation: "users.deactivate", Required: []domain.Role{domain.RoleAdmin}}),
		cfg.Users.Deactivate)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/status", cfg.AuthMiddleware.Handle,
		auth.Protect(auth.Protection{Operation: "auth.status"}),
		cfg.Auth.Status)

	if cfg.Seed != nil {
		app.Post("/seed", cfg.Seed.Run)
	}
}
