package domain

import "context"

// Session is the server-side state kept per browser session: the bearer
// token issued by the wallet backend and a cached display name. The display
// name is a derived convenience copy, never authoritative.
type Session struct {
	ID          string
	Token       string
	DisplayName string
}

type sessionCtxKey struct{}

// NewSessionContext returns ctx carrying the session, so the backend client
// can attach the bearer token to outgoing requests.
func NewSessionContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFromContext extracts the session placed by NewSessionContext.
// Returns nil when the request is unauthenticated.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionCtxKey{}).(*Session)
	return s
}
