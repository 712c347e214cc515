package v1

import (
	"campus-jobs/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterStudent mounts the student tracker under /student and the profile
// routes for both roles; all of them require auth.
func RegisterStudent(r fiber.Router, studentHandler *handler.StudentHandler, profileHandler *handler.ProfileHandler, auth fiber.Handler) {
	if r == nil {
		return
	}

	if profileHandler != nil {
		profileHandler.RegisterRoutes(r, auth)
	}
	if studentHandler != nil {
		studentHandler.RegisterRoutes(r.Group("/student", auth))
	}
}
