package routes

import (
	"campus-jobs/internal/delivery/http/middleware"
	v1 "campus-jobs/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	handlers  v1.Handlers
	auth      *middleware.AuthMiddleware
	authLimit fiber.Handler
}

func NewRegistry(handlers v1.Handlers, auth *middleware.AuthMiddleware, authLimit fiber.Handler) *Registry {
	return &Registry{handlers: handlers, auth: auth, authLimit: authLimit}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")

	guards := v1.Guards{AuthLimit: r.authLimit}
	if r.auth != nil {
		guards.Auth = r.auth.Middleware()
		guards.OptionalAuth = r.auth.Optional()
	} else {
		guards.Auth = func(c fiber.Ctx) error { return fiber.ErrUnauthorized }
	}
	v1.Register(api.Group("/v1"), r.handlers, guards)
}
