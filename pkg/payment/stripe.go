package payment

import (
	"context"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
	"github.com/stripe/stripe-go/v74/webhook"
)

// providerTimeout bounds the outbound session-creation call so one slow
// request cannot eat the whole invocation budget.
const providerTimeout = 20 * time.Second

const submitMessage = "After payment, you'll receive instructions to email us your voice recordings and personal script."

// CheckoutParams describes the single-item payment session requested from
// Stripe. PackageID and PackageName are attached as metadata to both the
// session and its payment intent so webhook events can be correlated back
// to a product without a database lookup.
type CheckoutParams struct {
	PriceID       string
	CustomerEmail string
	PackageID     string
	PackageName   string
	SuccessURL    string
	CancelURL     string
}

type StripeService struct {
	client        *client.API
	webhookSecret string
}

func NewStripeService(secretKey, webhookSecret string) *StripeService {
	sc := &client.API{}
	sc.Init(secretKey, stripe.NewBackends(&http.Client{Timeout: providerTimeout}))

	return &StripeService{
		client:        sc,
		webhookSecret: webhookSecret,
	}
}

func (s *StripeService) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{
				"package_type": p.PackageID,
				"package_name": p.PackageName,
			},
		},
		CustomText: &stripe.CheckoutSessionCustomTextParams{
			Submit: &stripe.CheckoutSessionCustomTextSubmitParams{
				Message: stripe.String(submitMessage),
			},
		},
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}

	params.AddMetadata("package_type", p.PackageID)
	params.AddMetadata("package_name", p.PackageName)

	return s.client.CheckoutSessions.New(params)
}

// VerifyWebhook authenticates a webhook delivery against the exact byte
// payload as received. The signature covers the raw body, so it must never
// be parsed or re-serialized before this succeeds.
func (s *StripeService) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, signatureHeader, s.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
}
