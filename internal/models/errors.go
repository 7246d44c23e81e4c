package models

import (
	"errors"
	"fmt"
)

// Error taxonomy. Handlers map these onto HTTP statuses: not-found and
// authentication failures are the client's fault (400), provider failures
// are surfaced as 500 with the provider's message.
var (
	ErrPackageNotFound = errors.New("unknown package")
	ErrUnauthenticated = errors.New("webhook signature verification failed")
)

// ProviderError wraps a failure from the payment provider: a rejected
// price, a network error or a timeout on the outbound call. Never retried.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("payment provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
