package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header the way Stripe does: an HMAC
// SHA-256 over "<timestamp>.<payload>" with the shared webhook secret.
func signPayload(secret string, payload []byte, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func testEventPayload() []byte {
	return []byte(`{"id":"evt_test_1","object":"event","api_version":"2022-11-15","type":"checkout.session.completed","data":{"object":{"id":"cs_test_123","object":"checkout.session"}}}`)
}

func TestVerifyWebhook(t *testing.T) {
	svc := NewStripeService("sk_test_123", testWebhookSecret)
	payload := testEventPayload()

	event, err := svc.VerifyWebhook(payload, signPayload(testWebhookSecret, payload, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "checkout.session.completed", string(event.Type))
	assert.Equal(t, "evt_test_1", event.ID)
}

func TestVerifyWebhookTamperedPayload(t *testing.T) {
	svc := NewStripeService("sk_test_123", testWebhookSecret)
	payload := testEventPayload()
	header := signPayload(testWebhookSecret, payload, time.Now())

	tampered := make([]byte, len(payload))
	copy(tampered, payload)
	tampered[len(tampered)/2] ^= 0x01

	_, err := svc.VerifyWebhook(tampered, header)
	assert.Error(t, err)
}

func TestVerifyWebhookWrongSecret(t *testing.T) {
	svc := NewStripeService("sk_test_123", testWebhookSecret)
	payload := testEventPayload()

	_, err := svc.VerifyWebhook(payload, signPayload("whsec_other_secret", payload, time.Now()))
	assert.Error(t, err)
}

func TestVerifyWebhookStaleTimestamp(t *testing.T) {
	svc := NewStripeService("sk_test_123", testWebhookSecret)
	payload := testEventPayload()

	_, err := svc.VerifyWebhook(payload, signPayload(testWebhookSecret, payload, time.Now().Add(-10*time.Minute)))
	assert.Error(t, err)
}

func TestVerifyWebhookMissingHeader(t *testing.T) {
	svc := NewStripeService("sk_test_123", testWebhookSecret)

	_, err := svc.VerifyWebhook(testEventPayload(), "")
	assert.Error(t, err)
}
