package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoToken means the request carries no session or the session holds
	// no token.
	ErrNoToken = errors.New("no session token")
	// ErrMalformedToken means the token envelope could not be parsed.
	ErrMalformedToken = errors.New("malformed session token")
	// ErrExpiredToken means the token's exp claim is at or before now.
	ErrExpiredToken = errors.New("session token expired")
	// ErrSessionNotFound means the session ID resolved to nothing in the
	// store (expired, cleared, or never existed).
	ErrSessionNotFound = errors.New("session not found")
	// ErrPendingApproval means the backend refused login because the
	// account has not been approved by an admin yet.
	ErrPendingApproval = errors.New("account pending approval")
)

// BackendError is a non-2xx answer from the wallet backend, surfaced to the
// triggering view with the backend's own message.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("wallet backend: %d %s", e.Status, e.Message)
}
