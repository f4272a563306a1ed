package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/config"
	"storefront/internal/logging"
	"storefront/internal/middleware"
	"storefront/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(resp *http.Response, v interface{}) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

func newTestApp(cfg *config.Config) *fiber.App {
	log := logging.Discard()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(log)})
	middleware.Setup(app, cfg, log)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "nothing here")
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		HTTP:    config.HTTPConfig{AllowedOrigins: "*", RateLimitMax: 2},
	}
}

func TestSetup_RecoversPanics(t *testing.T) {
	app := newTestApp(testConfig())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body response.ErrorBody
	require.NoError(t, decodeJSON(resp, &body))
	assert.Equal(t, response.CodeServerError, body.Error)
	assert.NotContains(t, body.Message, "boom")
}

func TestErrorHandler_ClientErrors(t *testing.T) {
	app := newTestApp(testConfig())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body response.ErrorBody
	require.NoError(t, decodeJSON(resp, &body))
	assert.Equal(t, response.StatusFailed, body.Status)
	assert.Equal(t, response.CodeNotFound, body.Error)
	assert.Equal(t, "nothing here", body.Message)
}

func TestSetup_SecurityHeadersAndRateLimit(t *testing.T) {
	app := newTestApp(testConfig())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", resp.Header.Get("X-Frame-Options"))
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	resp.Body.Close()
}

func TestSetup_RateLimitDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimitMax = 0
	app := newTestApp(cfg)

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
}
