package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"

	"github.com/keepsake-audio/store-backend/internal/catalog"
	"github.com/keepsake-audio/store-backend/internal/models"
	"github.com/keepsake-audio/store-backend/pkg/payment"
)

// CheckoutGateway is the payment-provider surface the service depends on.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, p payment.CheckoutParams) (*stripe.CheckoutSession, error)
	VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error)
}

// Notifier delivers the post-purchase confirmation.
type Notifier interface {
	SendPurchaseConfirmation(email, packageName string, amountTotal int64, currency string) error
}

type PaymentService struct {
	gateway       CheckoutGateway
	catalog       *catalog.Catalog
	emails        Notifier
	storefrontURL string
	logger        *zap.Logger
}

func NewPaymentService(gateway CheckoutGateway, cat *catalog.Catalog, emails Notifier, storefrontURL string, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		gateway:       gateway,
		catalog:       cat,
		emails:        emails,
		storefrontURL: storefrontURL,
		logger:        logger,
	}
}

// CreateCheckoutSession resolves the requested package and creates a Stripe
// Checkout Session whose redirect URLs point back at the origin that issued
// the request. An unknown package never reaches the provider.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest, origin string) (*models.CheckoutSessionResponse, error) {
	pkg, err := s.catalog.Lookup(req.PackageID)
	if err != nil {
		return nil, err
	}

	if origin == "" {
		origin = s.storefrontURL
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutParams{
		PriceID:       pkg.ProviderPriceID,
		CustomerEmail: req.CustomerEmail,
		PackageID:     pkg.ID,
		PackageName:   pkg.DisplayName,
		SuccessURL:    origin + "/success.html?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     origin + "/cancel.html",
	})
	if err != nil {
		s.logger.Error("checkout session creation failed",
			zap.String("package_id", pkg.ID),
			zap.Error(err),
		)
		return nil, &models.ProviderError{Err: err}
	}

	s.logger.Info("created checkout session",
		zap.String("session_id", session.ID),
		zap.String("package_id", pkg.ID),
	)

	return &models.CheckoutSessionResponse{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

// HandleWebhook authenticates a webhook delivery and dispatches on event
// type. Authenticated events of unrecognized types are acknowledged without
// action; Stripe retries anything that is not acknowledged.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := s.gateway.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrUnauthenticated, err)
	}

	s.logger.Info("received webhook event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
	)

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return fmt.Errorf("unmarshal checkout session: %w", err)
		}
		return s.handleCheckoutCompleted(&session)

	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return fmt.Errorf("unmarshal payment intent: %w", err)
		}
		s.logger.Info("payment succeeded",
			zap.String("payment_intent_id", intent.ID),
			zap.Int64("amount", intent.Amount),
			zap.String("package_type", intent.Metadata["package_type"]),
		)
		return nil

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return fmt.Errorf("unmarshal payment intent: %w", err)
		}
		reason := ""
		if intent.LastPaymentError != nil {
			reason = intent.LastPaymentError.Msg
		}
		s.logger.Warn("payment failed",
			zap.String("payment_intent_id", intent.ID),
			zap.String("failure_reason", reason),
			zap.String("package_type", intent.Metadata["package_type"]),
		)
		return nil

	default:
		s.logger.Info("unhandled webhook event type", zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *PaymentService) handleCheckoutCompleted(session *stripe.CheckoutSession) error {
	email := session.CustomerEmail
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		email = session.CustomerDetails.Email
	}

	s.logger.Info("checkout completed",
		zap.String("session_id", session.ID),
		zap.String("customer_email", email),
		zap.String("package_type", session.Metadata["package_type"]),
		zap.String("package_name", session.Metadata["package_name"]),
		zap.Int64("amount_total", session.AmountTotal),
		zap.String("currency", string(session.Currency)),
		zap.String("payment_status", string(session.PaymentStatus)),
	)

	// The payment already went through; a notification failure must not turn
	// into a non-2xx ack, or Stripe would redeliver and we would mail twice.
	if email != "" {
		if err := s.emails.SendPurchaseConfirmation(email, session.Metadata["package_name"], session.AmountTotal, string(session.Currency)); err != nil {
			s.logger.Error("purchase confirmation failed",
				zap.String("session_id", session.ID),
				zap.Error(err),
			)
		}
	}

	return nil
}
