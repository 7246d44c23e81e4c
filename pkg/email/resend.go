package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"

	"github.com/keepsake-audio/store-backend/internal/config"
)

const confirmationTemplate = `
<h2>Thank you for your order!</h2>
<p>We received your payment for the <strong>{{.PackageName}}</strong> ({{.Amount}}).</p>
<p>Reply to this email with your voice recordings and personal script, and
we'll get started on your keepsake.</p>
`

// EmailService sends the purchase confirmation after a completed checkout.
// Without a Resend API key it degrades to log-only, which keeps local
// development and tests free of outbound mail.
type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
	tmpl     *template.Template
}

func NewEmailService(cfg config.EmailConfig, logger *zap.Logger) *EmailService {
	s := &EmailService{
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		logger:   logger,
		tmpl:     template.Must(template.New("confirmation").Parse(confirmationTemplate)),
	}
	if cfg.ResendAPIKey != "" {
		s.client = resend.NewClient(cfg.ResendAPIKey)
	}
	return s
}

func (s *EmailService) SendPurchaseConfirmation(email, packageName string, amountTotal int64, currency string) error {
	if s.client == nil {
		s.logger.Info("email delivery disabled, skipping purchase confirmation",
			zap.String("email", email),
			zap.String("package_name", packageName),
		)
		return nil
	}

	var html bytes.Buffer
	err := s.tmpl.Execute(&html, map[string]string{
		"PackageName": packageName,
		"Amount":      formatAmount(amountTotal, currency),
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Your " + packageName + " order",
		Html:    html.String(),
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send purchase confirmation",
			zap.String("email", email),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("sent purchase confirmation",
		zap.String("email", email),
		zap.String("message_id", resp.Id),
	)
	return nil
}

// formatAmount renders a Stripe minor-unit amount, e.g. 7900/"usd" -> "79.00 USD".
func formatAmount(amountTotal int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", amountTotal/100, amountTotal%100, strings.ToUpper(currency))
}
