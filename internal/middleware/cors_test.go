package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepsake-audio/store-backend/internal/middleware"
)

func newCORSApp(allowedOrigins string) *fiber.App {
	app := fiber.New()
	app.Use(middleware.CORS(allowedOrigins))
	app.Post("/create-checkout-session", func(c *fiber.Ctx) error {
		return c.SendString("handled")
	})
	return app
}

func corsRequest(t *testing.T, app *fiber.App, method, origin string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, "/create-checkout-session", nil)
	if origin != "" {
		req.Header.Set(fiber.HeaderOrigin, origin)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCORSAllowAll(t *testing.T) {
	app := newCORSApp("*")

	resp := corsRequest(t, app, http.MethodPost, "https://shop.example.com")
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestCORSEchoesMatchingOrigin(t *testing.T) {
	app := newCORSApp("https://keepsake-audio.com, https://www.keepsake-audio.com")

	resp := corsRequest(t, app, http.MethodPost, "https://www.keepsake-audio.com")

	// Browsers reject a comma-joined value; the matching origin is echoed.
	assert.Equal(t, "https://www.keepsake-audio.com", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, fiber.HeaderOrigin, resp.Header.Get(fiber.HeaderVary))
}

func TestCORSUnlistedOrigin(t *testing.T) {
	app := newCORSApp("https://keepsake-audio.com")

	resp := corsRequest(t, app, http.MethodPost, "https://evil.example.com")
	assert.Empty(t, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestCORSPreflight(t *testing.T) {
	app := newCORSApp("https://keepsake-audio.com")

	resp := corsRequest(t, app, http.MethodOptions, "https://keepsake-audio.com")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://keepsake-audio.com", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlAllowHeaders), "Stripe-Signature")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, raw)
}
