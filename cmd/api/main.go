package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/keepsake-audio/store-backend/internal/catalog"
	"github.com/keepsake-audio/store-backend/internal/config"
	"github.com/keepsake-audio/store-backend/internal/handler"
	"github.com/keepsake-audio/store-backend/internal/service"
	"github.com/keepsake-audio/store-backend/pkg/email"
	"github.com/keepsake-audio/store-backend/pkg/payment"
	"github.com/keepsake-audio/store-backend/pkg/utils"
)

func main() {
	// Load .env when present; deployed environments inject config directly.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	cat, err := catalog.New(cfg.Prices)
	if err != nil {
		logger.Fatal("failed to build package catalog", zap.Error(err))
	}

	// Stripe service
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)

	// Email service
	emailService := email.NewEmailService(cfg.Email, logger)

	// Payment service
	paymentService := service.NewPaymentService(
		stripeService,
		cat,
		emailService,
		cfg.StorefrontURL,
		logger,
	)

	validator := utils.NewValidator()

	// Handlers
	paymentHandler := handler.NewPaymentHandler(paymentService, cat, validator, logger)

	app := handler.NewApp(paymentHandler, cfg.AllowedOrigins)

	logger.Info("starting server",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
