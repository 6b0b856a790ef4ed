package ports

import (
	"context"

	"github.com/digiwallet/wallet-console/internal/core/domain"
)

// GuardService decides whether a request may reach a console view.
// Evaluation is synchronous and local: it reads the session store, decodes
// the token and compares the clock, so there is nothing to retry.
type GuardService interface {
	// Evaluate runs the guard state machine for the given session against
	// the route's access policy. path is recorded for telemetry only.
	Evaluate(ctx context.Context, sessionID, path string, policy domain.AccessPolicy) domain.Decision
}
