package ports

import (
	"context"

	"github.com/digiwallet/wallet-console/internal/core/domain"
)

// SessionStore holds the per-browser session state: bearer token plus cached
// display name, keyed by opaque session ID. Writes are last-writer-wins with
// no merge semantics; clearing an absent session is a no-op, not an error.
type SessionStore interface {
	// Put creates or overwrites the session.
	Put(ctx context.Context, s *domain.Session) error

	// Get returns the session or domain.ErrSessionNotFound.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// CacheDisplayName updates the cached display name without touching
	// the token. Missing sessions are ignored.
	CacheDisplayName(ctx context.Context, id, name string) error

	// Clear removes the session and reports whether anything was actually
	// removed, so concurrent 401 handlers stay idempotent (only the first
	// clear observes true).
	Clear(ctx context.Context, id string) (bool, error)

	// MarkExpiredNotice records a one-shot "session expired" notice for
	// the session. Returns true only for the first mark.
	MarkExpiredNotice(ctx context.Context, id string) (bool, error)

	// ConsumeExpiredNotice reads and deletes the notice, reporting whether
	// one was pending. The notice is delivered to the user at most once.
	ConsumeExpiredNotice(ctx context.Context, id string) (bool, error)

	// Subscribe registers a callback invoked with the session ID whenever
	// a session is actually cleared, letting the guard react to external
	// clears (e.g. the backend client's 401 handler) without polling.
	Subscribe(fn func(sessionID string))
}
