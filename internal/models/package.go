package models

// Package is one of the three fixed product tiers sold by the storefront.
// Rows are built once at startup from configuration and never change.
type Package struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	Description string `json:"description"`

	// ProviderPriceID is the Stripe price backing this tier. It differs per
	// deployment environment and is never exposed to clients.
	ProviderPriceID string `json:"-"`
}
