package handler

import (
	"context"
	"time"

	"campus-jobs/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// CachePinger is a cache that may be running without a server behind it.
type CachePinger interface {
	Pinger
	Enabled() bool
}

type HealthHandler struct {
	db    Pinger
	cache CachePinger
}

// NewHealthHandler reports the database and, when given, the cache. Only a
// database failure makes the service unhealthy.
func NewHealthHandler(db Pinger, cache CachePinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.Map{"database": "unknown", "cache": h.cacheStatus(ctx)}
	if h.db == nil {
		return response.OK(c, status)
	}
	if err := h.db.Ping(ctx); err != nil {
		status["database"] = "down"
		return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, status)
	}
	status["database"] = "up"
	return response.OK(c, status)
}

func (h *HealthHandler) cacheStatus(ctx context.Context) string {
	if h.cache == nil || !h.cache.Enabled() {
		return "disabled"
	}
	if err := h.cache.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
