package middleware

import (
	"time"

	"campus-jobs/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderRequestID = "X-Request-ID"

	ctxRequestIDKey = "request_id"
)

type AccessLogMiddleware struct {
	log *zap.Logger
}

func NewAccessLogMiddleware(log *zap.Logger) *AccessLogMiddleware {
	return &AccessLogMiddleware{log: logger.OrNop(log).Named("http")}
}

// Middleware assigns a request id, echoing the caller's one when given, and
// writes one log line per request.
func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(ctxRequestIDKey, rid)

		err := c.Next()

		m.log.Info("HTTP access",
			zap.String("request_id", rid),
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("req_bytes", c.Request().Header.ContentLength()),
			zap.Int("resp_bytes", len(c.Response().Body())),
			zap.String("ua", c.Get(fiber.HeaderUserAgent)),
		)

		return err
	}
}

func RequestID(c fiber.Ctx) string {
	rid, _ := c.Locals(ctxRequestIDKey).(string)
	return rid
}
