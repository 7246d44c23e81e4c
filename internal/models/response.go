package models

// ErrorResponse is the JSON envelope for every failed request. Details is
// only set on 500s and carries the provider or handler message, never a
// secret or a stack trace.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WebhookAck is returned for every authenticated webhook, handled or not.
// Stripe redelivers anything that is not acknowledged with a 2xx.
type WebhookAck struct {
	Received bool `json:"received"`
}
