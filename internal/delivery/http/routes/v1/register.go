package v1

import (
	"campus-jobs/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Jobs    *handler.JobsHandler
	Student *handler.StudentHandler
	Profile *handler.ProfileHandler
	Health  *handler.HealthHandler
}

// Guards are the middleware placed in front of route groups. Auth is
// required; OptionalAuth and AuthLimit may be nil.
type Guards struct {
	Auth         fiber.Handler
	OptionalAuth fiber.Handler
	AuthLimit    fiber.Handler
}

func Register(r fiber.Router, h Handlers, g Guards) {
	if r == nil {
		return
	}

	if h.Health != nil {
		h.Health.RegisterRoutes(r)
	}
	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"), g.AuthLimit, g.OptionalAuth)
	}

	RegisterJobs(r, h.Jobs, g.Auth)
	RegisterStudent(r, h.Student, h.Profile, g.Auth)
}
