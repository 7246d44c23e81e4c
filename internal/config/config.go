package config

import (
	"fmt"
	"os"
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

// PriceConfig holds the Stripe price ID for each package tier. The IDs
// differ per deployment environment (development/staging/production).
type PriceConfig struct {
	Basic   string
	Premium string
	Deluxe  string
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
}

// Config is resolved from the environment exactly once, in main. Every
// component receives the values it needs from here; nothing else in the
// codebase reads the environment.
type Config struct {
	Environment   string
	Port          string
	StorefrontURL string

	// AllowedOrigins is "*" or a comma-separated list of storefront
	// origins. A listed origin is echoed back per request; the raw list is
	// never sent as an Access-Control-Allow-Origin value.
	AllowedOrigins string

	Stripe StripeConfig
	Prices PriceConfig
	Email  EmailConfig
}

func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Environment = getEnv("APP_ENV", "development")
	cfg.Port = getEnv("PORT", "8080")
	cfg.StorefrontURL = getEnv("STOREFRONT_URL", "http://localhost:3000")
	cfg.AllowedOrigins = getEnv("ALLOWED_ORIGINS", "*")

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")

	cfg.Prices.Basic = os.Getenv("BASIC_PRICE_ID")
	cfg.Prices.Premium = os.Getenv("PREMIUM_PRICE_ID")
	cfg.Prices.Deluxe = os.Getenv("DELUXE_PRICE_ID")

	cfg.Email.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = getEnv("EMAIL_FROM_ADDRESS", "orders@keepsake-audio.com")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "Keepsake Audio")

	for name, value := range map[string]string{
		"STRIPE_SECRET_KEY":     cfg.Stripe.SecretKey,
		"STRIPE_WEBHOOK_SECRET": cfg.Stripe.WebhookSecret,
		"BASIC_PRICE_ID":        cfg.Prices.Basic,
		"PREMIUM_PRICE_ID":      cfg.Prices.Premium,
		"DELUXE_PRICE_ID":       cfg.Prices.Deluxe,
	} {
		if value == "" {
			return nil, fmt.Errorf("missing required environment variable %s", name)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
