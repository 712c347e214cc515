package middleware

import (
	"campus-jobs/internal/pkg/telemetry"

	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Tracing opens a server span per request, continuing any W3C trace context
// sent by the caller. The span context is installed on the request context so
// use cases and the database see it. Register it outside the error
// middleware so the recorded status is the one sent.
func Tracing() fiber.Handler {
	return func(c fiber.Ctx) error {
		carrier := propagation.HeaderCarrier{}
		for k, v := range c.GetReqHeaders() {
			carrier[k] = v
		}
		ctx := otel.GetTextMapPropagator().Extract(c.Context(), carrier)

		ctx, span := telemetry.Tracer().Start(ctx, c.Method(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Method()),
				attribute.String("url.path", c.Path()),
				attribute.String("request.id", RequestID(c)),
			),
		)
		defer span.End()

		c.SetContext(ctx)
		err := c.Next()

		if c.Matched() {
			route := c.Route().Path
			span.SetName(c.Method() + " " + route)
			span.SetAttributes(attribute.String("http.route", route))
		}
		status := c.Response().StatusCode()
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else if status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}
		return err
	}
}
