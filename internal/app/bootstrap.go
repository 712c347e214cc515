package app

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"campus-jobs/internal/config"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/delivery/http/routes"
	"campus-jobs/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// MaxBodyBytes fits a base64 encoded resume of the largest accepted size
// plus its JSON wrapper.
var MaxBodyBytes = base64.StdEncoding.EncodedLen(profile.MaxResumeBytes) + 64<<10

// NewFiber builds the HTTP app with the global middleware chain and every
// route in registry.
func NewFiber(cfg config.Config, log *zap.Logger, registry *routes.Registry) *fiber.App {
	f := fiber.New(fiber.Config{
		AppName:     cfg.App.AppName,
		JSONDecoder: strictJSONUnmarshal,
		BodyLimit:   MaxBodyBytes,
	})

	registerGlobalMiddleware(f, cfg, log)
	if registry != nil {
		registry.Register(f)
	}

	return f
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, log *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.CORS(cfg.HTTP.CORSOrigins))
	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.Tracing())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

// strictJSONUnmarshal rejects unknown fields and trailing data.
func strictJSONUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON body")
	}
	return nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
