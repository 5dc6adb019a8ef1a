package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func correlationApp(capture *string) *fiber.App {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/ping", func(c *fiber.Ctx) error {
		*capture = GetCorrelationID(c)
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestCorrelationIDGeneratedWhenAbsent(t *testing.T) {
	var seen string
	app := correlationApp(&seen)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	require.NotEmpty(t, seen)
	require.Equal(t, seen, resp.Header.Get("X-Correlation-ID"))
}

func TestCorrelationIDPropagatedFromHeader(t *testing.T) {
	var seen string
	app := correlationApp(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Correlation-ID", "abc-123")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "abc-123", seen)
	require.Equal(t, "abc-123", resp.Header.Get("X-Correlation-ID"))
}

func TestCorrelationIDFallsBackToRequestID(t *testing.T) {
	var seen string
	app := correlationApp(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-9")

	_, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "req-9", seen)
}
