package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/digiwallet/wallet-console/internal/core/domain"
	"github.com/digiwallet/wallet-console/internal/core/ports"
)

// Context keys set by the session middleware.
const (
	ctxSessionID = "session_id"
	ctxSession   = "session"
)

// SessionID returns the session ID carried by the request cookie, or "".
func SessionID(c echo.Context) string {
	id, _ := c.Get(ctxSessionID).(string)
	return id
}

// Session returns the resolved session, or nil for anonymous requests.
func Session(c echo.Context) *domain.Session {
	s, _ := c.Get(ctxSession).(*domain.Session)
	return s
}

// ResolveSession reads the session cookie and, when the store knows the ID,
// places the session into both the echo context and the request context (the
// latter is where the backend client finds the bearer token). It never
// rejects: allowing or redirecting is the guard's decision.
func ResolveSession(store ports.SessionStore, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			c.Set(ctxSessionID, cookie.Value)

			sess, err := store.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				return next(c)
			}
			c.Set(ctxSession, sess)

			req := c.Request()
			c.SetRequest(req.WithContext(domain.NewSessionContext(req.Context(), sess)))
			return next(c)
		}
	}
}
