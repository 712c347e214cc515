package middleware

import (
	"time"

	"campus-jobs/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
)

// AuthRateLimit caps credential attempts per client IP per minute.
func AuthRateLimit(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		perMinute = 10
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return "auth:" + c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, response.MessageTooManyRequests, nil)
		},
	})
}
