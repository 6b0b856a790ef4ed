package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Claims is the decoded view of the wallet backend's bearer token. It is
// always recomputed from the current token, never persisted, so it cannot go
// stale relative to the token it describes.
//
// The signature is NOT verified here: the backend verifies it on every
// request, and claims drive routing and display only, never a security
// decision the backend would not re-check.
type Claims struct {
	Subject    string
	Name       string
	Role       string
	ExpiresAt  time.Time
	IsApproved bool
}

// tokenClaims is the wire shape of the backend token payload.
type tokenClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	// Tokens minted before the approval workflow existed carry no
	// isApproved claim; absence decodes to false so such accounts land on
	// the pending-approval view instead of being silently let through.
	IsApproved bool `json:"isApproved"`
	jwt.RegisteredClaims
}

// DecodeClaims parses a bearer token into Claims without verifying the
// signature. It fails only when the token envelope itself is malformed.
func DecodeClaims(token string) (*Claims, error) {
	parser := jwt.NewParser()

	var tc tokenClaims
	if _, _, err := parser.ParseUnverified(token, &tc); err != nil {
		return nil, ErrMalformedToken
	}

	var expiresAt time.Time
	if tc.ExpiresAt != nil {
		expiresAt = tc.ExpiresAt.Time
	}

	return &Claims{
		Subject:    tc.Subject,
		Name:       tc.Name,
		Role:       tc.Role,
		ExpiresAt:  expiresAt,
		IsApproved: tc.IsApproved,
	}, nil
}

// Expired reports whether the token has expired relative to now. Tokens
// without an exp claim never expire locally; the backend remains the
// authority and answers 401 if it disagrees.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !c.ExpiresAt.After(now)
}
