package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORS mirrors the header set the storefront expects and answers preflight
// requests with 200 and an empty body before any business logic runs.
// allowedOrigins is "*" or a comma-separated origin list; a listed origin
// is echoed back per request, since browsers reject a comma-separated
// Access-Control-Allow-Origin value. Stripe-Signature is allowed through
// for the webhook endpoint.
func CORS(allowedOrigins string) fiber.Handler {
	allowAll := allowedOrigins == "*"
	var origins []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return func(c *fiber.Ctx) error {
		switch origin := c.Get(fiber.HeaderOrigin); {
		case allowAll:
			c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		case originAllowed(origins, origin):
			c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
			c.Set(fiber.HeaderVary, fiber.HeaderOrigin)
		}
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type,Authorization,Stripe-Signature")
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET,POST,OPTIONS")

		if c.Method() == fiber.MethodOptions {
			// SendStatus would write the status text as the body.
			return c.Status(fiber.StatusOK).SendString("")
		}

		return c.Next()
	}
}

func originAllowed(origins []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, o := range origins {
		if strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
