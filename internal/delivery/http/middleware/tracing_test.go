package middleware

import (
	"net/http/httptest"
	"testing"

	"campus-jobs/internal/pkg/errs"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracing_NamesSpanByRouteAndRecordsMappedStatus(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	app := fiber.New()
	app.Use(Tracing())
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/jobs/:id", func(c fiber.Ctx) error {
		return errs.NotFound("Job not found", nil)
	})

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/jobs/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	}

	spans := rec.Ended()
	require.Len(t, spans, 2)
	for _, s := range spans {
		assert.Equal(t, "GET /jobs/:id", s.Name())
		attrs := attribute.NewSet(s.Attributes()...)
		status, ok := attrs.Value("http.response.status_code")
		require.True(t, ok)
		assert.Equal(t, int64(fiber.StatusNotFound), status.AsInt64())
	}
}
