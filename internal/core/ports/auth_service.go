package ports

import "context"

// LoginOutcome tells the login view what happened and where to send the
// browser next.
type LoginOutcome struct {
	// SessionID is set only on successful login.
	SessionID string
	// RedirectTo is the role home on success, or the pending-approval
	// view when the account awaits admin approval.
	RedirectTo string
	// DisplayName is the human-readable name decoded from the token.
	DisplayName string
	// PendingApproval is true when no session was created because the
	// backend reported the account as not yet approved.
	PendingApproval bool
}

// AuthService implements the console's login, registration and logout flows
// on top of the wallet backend.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginOutcome, error)
	Register(ctx context.Context, name, email, password string) error
	Logout(ctx context.Context, sessionID string) error
}
