package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

func CORS(origins []string) fiber.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	wildcard := len(origins) == 1 && origins[0] == "*"

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPatch, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders:     []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, fiber.HeaderAuthorization, HeaderRequestID},
		ExposeHeaders:    []string{HeaderRequestID},
		AllowCredentials: !wildcard,
	})
}
