package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/keepsake-audio/store-backend/internal/models"
	"github.com/keepsake-audio/store-backend/pkg/utils"
)

// PaymentService is the checkout workflow the handler fronts.
type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest, origin string) (*models.CheckoutSessionResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

// PackageLister exposes the catalog for the storefront listing endpoint.
type PackageLister interface {
	All() []models.Package
}

type PaymentHandler struct {
	payments  PaymentService
	packages  PackageLister
	validator *utils.Validator
	logger    *zap.Logger
}

func NewPaymentHandler(payments PaymentService, packages PackageLister, validator *utils.Validator, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments:  payments,
		packages:  packages,
		validator: validator,
		logger:    logger,
	}
}

func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "invalid request body",
		})
	}

	if req.PackageID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "packageId is required",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "customerEmail is not a valid email address",
		})
	}

	session, err := h.payments.CreateCheckoutSession(c.UserContext(), req, c.Get(fiber.HeaderOrigin))
	if err != nil {
		if errors.Is(err, models.ErrPackageNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
				Error: "Invalid package type",
			})
		}

		var providerErr *models.ProviderError
		if errors.As(err, &providerErr) {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
				Error:   "Failed to create checkout session",
				Details: providerErr.Err.Error(),
			})
		}

		h.logger.Error("checkout handler error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Failed to create checkout session",
		})
	}

	return c.JSON(session)
}

func (h *PaymentHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	// The signature covers the exact bytes Stripe sent; hand them to the
	// verifier untouched.
	payload := c.Body()
	signatureHeader := c.Get("Stripe-Signature")

	if len(payload) == 0 || signatureHeader == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Missing body or signature",
		})
	}

	if err := h.payments.HandleWebhook(c.UserContext(), payload, signatureHeader); err != nil {
		if errors.Is(err, models.ErrUnauthenticated) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
				Error: "Webhook signature verification failed",
			})
		}

		h.logger.Error("webhook handler error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Webhook handler failed",
			Details: err.Error(),
		})
	}

	return c.JSON(models.WebhookAck{Received: true})
}

func (h *PaymentHandler) GetPackages(c *fiber.Ctx) error {
	return c.JSON(h.packages.All())
}
