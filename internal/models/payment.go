package models

type CheckoutRequest struct {
	PackageID     string `json:"packageId" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email"`
}

type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}
