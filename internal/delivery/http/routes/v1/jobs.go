package v1

import (
	"campus-jobs/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterJobs(r fiber.Router, jobsHandler *handler.JobsHandler, auth fiber.Handler) {
	if r == nil {
		return
	}
	if jobsHandler == nil {
		return
	}

	jobsHandler.RegisterRoutes(r, auth)
}
