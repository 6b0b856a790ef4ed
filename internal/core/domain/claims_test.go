package domain

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("irrelevant-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestDecodeClaims_Full(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	raw := signToken(t, jwt.MapClaims{
		"sub":        "42",
		"name":       "Alice",
		"role":       RoleAdmin,
		"isApproved": true,
		"exp":        exp.Unix(),
	})

	claims, err := DecodeClaims(raw)
	if err != nil {
		t.Fatalf("DecodeClaims returned error: %v", err)
	}
	if claims.Subject != "42" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if claims.Name != "Alice" {
		t.Fatalf("unexpected name: %q", claims.Name)
	}
	if claims.Role != RoleAdmin {
		t.Fatalf("unexpected role: %q", claims.Role)
	}
	if !claims.IsApproved {
		t.Fatalf("expected approved")
	}
	if claims.ExpiresAt.Unix() != exp.Unix() {
		t.Fatalf("unexpected expiry: %v", claims.ExpiresAt)
	}
}

func TestDecodeClaims_SignatureNotVerified(t *testing.T) {
	// Decoding is a routing convenience: a token signed with an unknown
	// key still decodes, the backend remains the security boundary.
	raw := signToken(t, jwt.MapClaims{"name": "Bob", "role": RoleUser})

	claims, err := DecodeClaims(raw)
	if err != nil {
		t.Fatalf("DecodeClaims returned error: %v", err)
	}
	if claims.Name != "Bob" {
		t.Fatalf("unexpected name: %q", claims.Name)
	}
}

func TestDecodeClaims_Malformed(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b", "x.y.z"} {
		if _, err := DecodeClaims(raw); err != ErrMalformedToken {
			t.Fatalf("token %q: expected ErrMalformedToken, got %v", raw, err)
		}
	}
}

func TestDecodeClaims_MissingApprovalDefaultsToFalse(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"name": "Carol", "role": RoleUser})

	claims, err := DecodeClaims(raw)
	if err != nil {
		t.Fatalf("DecodeClaims returned error: %v", err)
	}
	if claims.IsApproved {
		t.Fatalf("missing isApproved must decode as false")
	}
}

func TestClaims_Expired(t *testing.T) {
	now := time.Now()

	past := &Claims{ExpiresAt: now.Add(-time.Minute)}
	if !past.Expired(now) {
		t.Fatalf("past expiry must report expired")
	}

	boundary := &Claims{ExpiresAt: now}
	if !boundary.Expired(now) {
		t.Fatalf("expiry at now must report expired")
	}

	future := &Claims{ExpiresAt: now.Add(time.Minute)}
	if future.Expired(now) {
		t.Fatalf("future expiry must not report expired")
	}

	// No exp claim: never expires locally, the backend decides via 401.
	none := &Claims{}
	if none.Expired(now) {
		t.Fatalf("missing expiry must not report expired")
	}
}
