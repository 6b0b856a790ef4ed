package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/digiwallet/wallet-console/internal/api/metrics"
	"github.com/digiwallet/wallet-console/internal/core/domain"
	"github.com/digiwallet/wallet-console/internal/core/ports"
)

// GuardService gates every console route. Evaluation is synchronous: it reads
// the session store, decodes the token without verifying the signature, and
// compares the clock. Denials never bubble as errors, they become redirects.
type GuardService struct {
	sessions ports.SessionStore
	audit    ports.AuditRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewGuardService(sessions ports.SessionStore, audit ports.AuditRepository, log zerolog.Logger) *GuardService {
	g := &GuardService{
		sessions: sessions,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
	// React to clears performed elsewhere (logout, backend 401): nothing is
	// cached between evaluations, so the next Evaluate already denies; the
	// subscription exists so terminations are visible without polling.
	sessions.Subscribe(func(id string) {
		g.log.Debug().Str("session", shortID(id)).Msg("session cleared, subsequent requests will be denied")
	})
	return g
}

// Evaluate runs the guard state machine for one request.
func (g *GuardService) Evaluate(ctx context.Context, sessionID, path string, policy domain.AccessPolicy) domain.Decision {
	// Public routes impose no session requirement at all.
	if policy == domain.AccessPublic {
		metrics.GuardDecisionsTotal.WithLabelValues(string(policy), "authorized").Inc()
		return domain.Authorized(nil)
	}

	if sessionID == "" {
		return g.deny(ctx, sessionID, "", path, policy, domain.ReasonNoToken, domain.PathLogin)
	}

	sess, err := g.sessions.Get(ctx, sessionID)
	if err != nil || sess.Token == "" {
		return g.deny(ctx, sessionID, "", path, policy, domain.ReasonNoToken, domain.PathLogin)
	}

	claims, err := domain.DecodeClaims(sess.Token)
	if err != nil {
		g.clear(ctx, sessionID, "malformed")
		return g.deny(ctx, sessionID, "", path, policy, domain.ReasonMalformedToken, domain.PathLogin)
	}

	if claims.Expired(g.now()) {
		g.clear(ctx, sessionID, "expired")
		return g.deny(ctx, sessionID, claims.Subject, path, policy, domain.ReasonExpiredToken, domain.PathLogin)
	}

	switch policy {
	case domain.AccessAuthenticated:
		if claims.Role == domain.RoleAdmin {
			// The admin is authenticated, just on the wrong surface:
			// send them home, not back to login.
			return g.deny(ctx, sessionID, claims.Subject, path, policy, domain.ReasonWrongSurface, domain.PathAdminHome)
		}
		if !claims.IsApproved {
			return g.deny(ctx, sessionID, claims.Subject, path, policy, domain.ReasonNotApproved, domain.PathPendingApproval)
		}
	case domain.AccessAdmin:
		if claims.Role != domain.RoleAdmin {
			return g.deny(ctx, sessionID, claims.Subject, path, policy, domain.ReasonInsufficientRole, domain.PathUserHome)
		}
	}

	g.cacheDisplayName(ctx, sess, claims)

	metrics.GuardDecisionsTotal.WithLabelValues(string(policy), "authorized").Inc()
	return domain.Authorized(claims)
}

func (g *GuardService) deny(ctx context.Context, sessionID, subject, path string, policy domain.AccessPolicy, reason domain.DeniedReason, redirectTo string) domain.Decision {
	metrics.GuardDecisionsTotal.WithLabelValues(string(policy), string(reason)).Inc()

	g.log.Info().
		Str("session", shortID(sessionID)).
		Str("path", path).
		Str("policy", string(policy)).
		Str("reason", string(reason)).
		Str("redirect", redirectTo).
		Msg("access denied")

	if err := g.audit.Record(ctx, &domain.AuthEvent{
		SessionID: shortID(sessionID),
		Subject:   subject,
		Kind:      domain.AuthEventDenial,
		Reason:    string(reason),
		Path:      path,
		At:        g.now().UTC(),
	}); err != nil {
		g.log.Warn().Err(err).Msg("audit record failed")
	}

	return domain.Denied(reason, redirectTo)
}

// clear removes the session. Only the first clear records a termination:
// clearing an already-absent session is a no-op.
func (g *GuardService) clear(ctx context.Context, sessionID, cause string) {
	cleared, err := g.sessions.Clear(ctx, sessionID)
	if err != nil {
		g.log.Warn().Err(err).Str("session", shortID(sessionID)).Msg("session clear failed")
		return
	}
	if cleared {
		metrics.SessionsTerminatedTotal.WithLabelValues(cause).Inc()
		if err := g.audit.Record(ctx, &domain.AuthEvent{
			SessionID: shortID(sessionID),
			Kind:      domain.AuthEventTermination,
			Reason:    cause,
			At:        g.now().UTC(),
		}); err != nil {
			g.log.Warn().Err(err).Msg("audit record failed")
		}
	}
}

// cacheDisplayName refreshes the derived name copy after an authorized
// evaluation so views can render it without re-decoding.
func (g *GuardService) cacheDisplayName(ctx context.Context, sess *domain.Session, claims *domain.Claims) {
	if claims.Name == "" || claims.Name == sess.DisplayName {
		return
	}
	if err := g.sessions.CacheDisplayName(ctx, sess.ID, claims.Name); err != nil {
		g.log.Warn().Err(err).Str("session", shortID(sess.ID)).Msg("display name cache failed")
	}
}

// shortID truncates a session ID for logs and audit records.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
