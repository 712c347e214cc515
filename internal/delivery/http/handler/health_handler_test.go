package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubCache struct {
	stubPinger
	enabled bool
}

func (c stubCache) Enabled() bool { return c.enabled }

func healthOf(t *testing.T, h *HealthHandler) (int, map[string]string) {
	t.Helper()
	app := fiber.New()
	h.RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp.StatusCode, env.Data
}

func TestHealth_CacheStatus(t *testing.T) {
	tests := []struct {
		name  string
		cache CachePinger
		want  string
	}{
		{name: "no cache", cache: nil, want: "disabled"},
		{name: "started without server", cache: stubCache{enabled: false}, want: "disabled"},
		{name: "reachable", cache: stubCache{enabled: true}, want: "up"},
		{name: "unreachable", cache: stubCache{stubPinger: stubPinger{err: errors.New("refused")}, enabled: true}, want: "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, data := healthOf(t, NewHealthHandler(stubPinger{}, tt.cache))
			assert.Equal(t, fiber.StatusOK, code)
			assert.Equal(t, "up", data["database"])
			assert.Equal(t, tt.want, data["cache"])
		})
	}
}

func TestHealth_DatabaseDownIsUnavailable(t *testing.T) {
	code, data := healthOf(t, NewHealthHandler(stubPinger{err: errors.New("down")}, stubCache{enabled: true}))
	assert.Equal(t, fiber.StatusServiceUnavailable, code)
	assert.Equal(t, "down", data["database"])
	assert.Equal(t, "up", data["cache"])
}
