package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/digiwallet/wallet-console/internal/core/domain"
	"github.com/digiwallet/wallet-console/internal/core/ports"
)

type stubBackend struct {
	ports.WalletBackend
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) error
}

func (s *stubBackend) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubBackend) Register(ctx context.Context, in ports.RegisterInput) error {
	return s.registerFn(ctx, in)
}

func TestAuthService_Login_User(t *testing.T) {
	token := testToken(t, domain.RoleUser, true, time.Now().Add(time.Hour))
	backend := &stubBackend{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "alice@example.com" || password != "s3cret-pass" {
				t.Fatalf("unexpected credentials: %s", email)
			}
			return &ports.LoginResult{Token: token}, nil
		},
	}
	store := newStubSessionStore()
	svc := NewAuthService(backend, store, &stubAuditRepo{}, zerolog.Nop())

	outcome, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if outcome.SessionID == "" {
		t.Fatalf("expected session id")
	}
	if outcome.RedirectTo != domain.PathUserHome {
		t.Fatalf("expected user home redirect, got %s", outcome.RedirectTo)
	}
	if outcome.DisplayName != "Alice" {
		t.Fatalf("unexpected display name: %q", outcome.DisplayName)
	}

	sess, err := store.Get(context.Background(), outcome.SessionID)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if sess.Token != token {
		t.Fatalf("session must hold the backend token")
	}
}

func TestAuthService_Login_AdminRedirect(t *testing.T) {
	token := testToken(t, domain.RoleAdmin, true, time.Now().Add(time.Hour))
	backend := &stubBackend{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return &ports.LoginResult{Token: token}, nil
		},
	}
	svc := NewAuthService(backend, newStubSessionStore(), &stubAuditRepo{}, zerolog.Nop())

	outcome, err := svc.Login(context.Background(), "root@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if outcome.RedirectTo != domain.PathAdminHome {
		t.Fatalf("expected admin home redirect, got %s", outcome.RedirectTo)
	}
}

func TestAuthService_Login_PendingApproval(t *testing.T) {
	backend := &stubBackend{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return &ports.LoginResult{PendingApproval: true}, nil
		},
	}
	store := newStubSessionStore()
	svc := NewAuthService(backend, store, &stubAuditRepo{}, zerolog.Nop())

	outcome, err := svc.Login(context.Background(), "new@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !outcome.PendingApproval {
		t.Fatalf("expected pending approval outcome")
	}
	if outcome.RedirectTo != domain.PathPendingApproval {
		t.Fatalf("expected pending-approval redirect, got %s", outcome.RedirectTo)
	}
	if outcome.SessionID != "" || len(store.sessions) != 0 {
		t.Fatalf("no session may be created for a pending account")
	}
}

func TestAuthService_Login_BackendError(t *testing.T) {
	wantErr := &domain.BackendError{Status: 401, Message: "invalid credentials"}
	backend := &stubBackend{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, wantErr
		},
	}
	svc := NewAuthService(backend, newStubSessionStore(), &stubAuditRepo{}, zerolog.Nop())

	_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	var be *domain.BackendError
	if !errors.As(err, &be) || be.Status != 401 {
		t.Fatalf("expected backend error to propagate, got %v", err)
	}
}

func TestAuthService_Login_UndecodableToken(t *testing.T) {
	backend := &stubBackend{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return &ports.LoginResult{Token: "not-a-jwt"}, nil
		},
	}
	store := newStubSessionStore()
	svc := NewAuthService(backend, store, &stubAuditRepo{}, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pass"); err != domain.ErrMalformedToken {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("undecodable token must not be stored")
	}
}

func TestAuthService_Logout(t *testing.T) {
	store := newStubSessionStore()
	_ = store.Put(context.Background(), &domain.Session{ID: "s1", Token: "tok"})
	audit := &stubAuditRepo{}
	svc := NewAuthService(&stubBackend{}, store, audit, zerolog.Nop())

	if err := svc.Logout(context.Background(), "s1"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("session must be cleared on logout")
	}
	if len(audit.events) != 1 || audit.events[0].Kind != domain.AuthEventTermination {
		t.Fatalf("expected one termination event, got %+v", audit.events)
	}

	// Logging out again is a no-op, not an error, and records nothing.
	if err := svc.Logout(context.Background(), "s1"); err != nil {
		t.Fatalf("repeat logout failed: %v", err)
	}
	if len(audit.events) != 1 {
		t.Fatalf("repeat logout must not record another event")
	}
}

func TestAuthService_Register(t *testing.T) {
	var got ports.RegisterInput
	backend := &stubBackend{
		registerFn: func(_ context.Context, in ports.RegisterInput) error {
			got = in
			return nil
		},
	}
	svc := NewAuthService(backend, newStubSessionStore(), &stubAuditRepo{}, zerolog.Nop())

	if err := svc.Register(context.Background(), "Bob", "bob@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if got.Name != "Bob" || got.Email != "bob@example.com" || got.Password != "s3cret-pass" {
		t.Fatalf("unexpected register input: %+v", got)
	}
}
