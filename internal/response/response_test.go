package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponses(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return response.OK(c, "done", fiber.Map{"count": 2})
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return response.Invalid(c, fiber.StatusBadRequest, "Validation failed", map[string]string{"name": "name is required"})
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return response.InternalServerError(c)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var ok map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ok))
	assert.Equal(t, "OK", ok["status"])
	assert.Equal(t, "done", ok["message"])
	assert.Equal(t, float64(2), ok["count"])
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/invalid", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var invalid response.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&invalid))
	assert.Equal(t, response.StatusFailed, invalid.Status)
	assert.Equal(t, response.CodeValidation, invalid.Error)
	assert.Equal(t, "name is required", invalid.Fields["name"])
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var boom response.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&boom))
	assert.Equal(t, response.CodeServerError, boom.Error)
	assert.Equal(t, response.ServerErrorMessage, boom.Message)
	assert.Nil(t, boom.Fields)
	resp.Body.Close()
}
