package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/digiwallet/wallet-console/internal/core/domain"
)

type stubGuard struct {
	decision domain.Decision
	gotID    string
	gotPath  string
	gotPol   domain.AccessPolicy
}

func (g *stubGuard) Evaluate(_ context.Context, sessionID, path string, policy domain.AccessPolicy) domain.Decision {
	g.gotID = sessionID
	g.gotPath = path
	g.gotPol = policy
	return g.decision
}

type stubStore struct {
	sessions map[string]*domain.Session
}

func (s *stubStore) Put(_ context.Context, sess *domain.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubStore) CacheDisplayName(context.Context, string, string) error { return nil }
func (s *stubStore) Clear(context.Context, string) (bool, error)            { return false, nil }
func (s *stubStore) MarkExpiredNotice(context.Context, string) (bool, error) {
	return false, nil
}
func (s *stubStore) ConsumeExpiredNotice(context.Context, string) (bool, error) {
	return false, nil
}
func (s *stubStore) Subscribe(func(string)) {}

func TestGuard_DeniedRedirects(t *testing.T) {
	guard := &stubGuard{decision: domain.Denied(domain.ReasonNoToken, domain.PathLogin)}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/dashboard")

	called := false
	h := Guard(guard, domain.AccessAuthenticated)(func(echo.Context) error {
		called = true
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	if called {
		t.Fatalf("handler must not run on denial")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != domain.PathLogin {
		t.Fatalf("expected redirect to login, got %q", loc)
	}
	if guard.gotPath != "/dashboard" || guard.gotPol != domain.AccessAuthenticated {
		t.Fatalf("guard saw wrong inputs: path=%q policy=%q", guard.gotPath, guard.gotPol)
	}
}

func TestGuard_AuthorizedRunsHandlerWithClaims(t *testing.T) {
	claims := &domain.Claims{Subject: "7", Name: "Alice", Role: domain.RoleUser, IsApproved: true}
	guard := &stubGuard{decision: domain.Authorized(claims)}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Guard(guard, domain.AccessAuthenticated)(func(c echo.Context) error {
		got := Claims(c)
		if got == nil || got.Name != "Alice" {
			t.Fatalf("expected claims in context, got %+v", got)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_PassesSessionIDFromCookie(t *testing.T) {
	store := &stubStore{sessions: map[string]*domain.Session{
		"s1": {ID: "s1", Token: "tok", DisplayName: "Alice"},
	}}
	guard := &stubGuard{decision: domain.Authorized(&domain.Claims{})}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "wallet_session", Value: "s1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := ResolveSession(store, "wallet_session")(
		Guard(guard, domain.AccessAuthenticated)(func(c echo.Context) error {
			if sess := domain.SessionFromContext(c.Request().Context()); sess == nil || sess.Token != "tok" {
				t.Fatalf("session must reach the request context, got %+v", sess)
			}
			return c.NoContent(http.StatusOK)
		}))
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	if guard.gotID != "s1" {
		t.Fatalf("guard must receive the cookie session id, got %q", guard.gotID)
	}
	if Session(c) == nil || Session(c).DisplayName != "Alice" {
		t.Fatalf("resolved session must be on the echo context")
	}
}

func TestResolveSession_AnonymousAndUnknown(t *testing.T) {
	store := &stubStore{sessions: map[string]*domain.Session{}}

	e := echo.New()

	// No cookie at all.
	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	h := ResolveSession(store, "wallet_session")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("anonymous request must pass through: %v", err)
	}
	if SessionID(c) != "" || Session(c) != nil {
		t.Fatalf("anonymous request must carry no session")
	}

	// Cookie present but the store does not know the ID: the ID is still
	// surfaced so the guard can clear the dangling reference.
	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "wallet_session", Value: "ghost"})
	c = e.NewContext(req, httptest.NewRecorder())
	if err := h(c); err != nil {
		t.Fatalf("unknown session must pass through: %v", err)
	}
	if SessionID(c) != "ghost" {
		t.Fatalf("cookie id must be surfaced, got %q", SessionID(c))
	}
	if Session(c) != nil {
		t.Fatalf("unknown id must not resolve to a session")
	}
}
