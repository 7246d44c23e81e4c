package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/keepsake-audio/store-backend/internal/middleware"
)

// checkoutRateLimit bounds session-creation requests per client IP.
const (
	checkoutRateLimit       = 20
	checkoutRateLimitWindow = 1 * time.Minute
)

// NewApp builds the fiber application with all middleware and routes. The
// webhook route stays outside the limiter: Stripe retries on any non-2xx,
// and throttling retries would only amplify them.
func NewApp(h *PaymentHandler, allowedOrigins string) *fiber.App {
	app := fiber.New()

	app.Use(middleware.CORS(allowedOrigins))
	app.Use(fiberlogger.New())

	checkoutLimiter := limiter.New(limiter.Config{
		Max:        checkoutRateLimit,
		Expiration: checkoutRateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	})

	app.Post("/create-checkout-session", checkoutLimiter, h.CreateCheckoutSession)
	app.Post("/stripe-webhook", h.HandleStripeWebhook)
	app.Get("/packages", h.GetPackages)

	return app
}
