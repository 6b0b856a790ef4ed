package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/digiwallet/wallet-console/internal/api/metrics"
	"github.com/digiwallet/wallet-console/internal/core/domain"
	"github.com/digiwallet/wallet-console/internal/core/ports"
)

// AuthService implements login, registration and logout. Credentials are
// never checked locally: the wallet backend owns accounts, passwords and the
// approval workflow. On success the backend token is stashed in a new
// server-side session and the browser only ever sees the session cookie.
type AuthService struct {
	backend  ports.WalletBackend
	sessions ports.SessionStore
	audit    ports.AuditRepository
	log      zerolog.Logger
}

func NewAuthService(backend ports.WalletBackend, sessions ports.SessionStore, audit ports.AuditRepository, log zerolog.Logger) *AuthService {
	return &AuthService{backend: backend, sessions: sessions, audit: audit, log: log}
}

// Login checks credentials against the backend and, on success, creates a
// session and picks the role home to redirect to. A 403 "pending approval"
// answer creates no session and routes to the pending-approval view.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginOutcome, error) {
	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if res.PendingApproval {
		s.recordLogin(ctx, "", "pending_approval")
		return &ports.LoginOutcome{
			RedirectTo:      domain.PathPendingApproval,
			PendingApproval: true,
		}, nil
	}

	claims, err := domain.DecodeClaims(res.Token)
	if err != nil {
		// The backend handed us a token we cannot even parse; storing it
		// would make every subsequent request fail the guard.
		s.log.Error().Err(err).Msg("backend issued undecodable token")
		return nil, domain.ErrMalformedToken
	}

	sess := &domain.Session{
		ID:          newSessionID(),
		Token:       res.Token,
		DisplayName: claims.Name,
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	metrics.SessionsStartedTotal.Inc()
	s.recordLogin(ctx, claims.Subject, "success")

	redirect := domain.PathUserHome
	if claims.Role == domain.RoleAdmin {
		redirect = domain.PathAdminHome
	}

	s.log.Info().Str("subject", claims.Subject).Str("role", claims.Role).Msg("login successful")

	return &ports.LoginOutcome{
		SessionID:   sess.ID,
		RedirectTo:  redirect,
		DisplayName: claims.Name,
	}, nil
}

// Register forwards the registration to the backend. The new account stays
// unusable until an admin approves it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	return s.backend.Register(ctx, ports.RegisterInput{Name: name, Email: email, Password: password})
}

// Logout clears the session. Clearing an absent session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	cleared, err := s.sessions.Clear(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if cleared {
		metrics.SessionsTerminatedTotal.WithLabelValues("logout").Inc()
		if err := s.audit.Record(ctx, &domain.AuthEvent{
			SessionID: shortID(sessionID),
			Kind:      domain.AuthEventTermination,
			Reason:    "logout",
			At:        time.Now().UTC(),
		}); err != nil {
			s.log.Warn().Err(err).Msg("audit record failed")
		}
	}
	return nil
}

func (s *AuthService) recordLogin(ctx context.Context, subject, outcome string) {
	if err := s.audit.Record(ctx, &domain.AuthEvent{
		Subject: subject,
		Kind:    domain.AuthEventLogin,
		Reason:  outcome,
		At:      time.Now().UTC(),
	}); err != nil {
		s.log.Warn().Err(err).Msg("audit record failed")
	}
}

// newSessionID returns an unguessable 128-bit hex session identifier.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: time-based, still unique enough for a single process
		return fmt.Sprintf("%032x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
