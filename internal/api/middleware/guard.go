package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/digiwallet/wallet-console/internal/core/domain"
	"github.com/digiwallet/wallet-console/internal/core/ports"
)

// Guard evaluates the route's access policy before the handler runs, so no
// view can reach the wallet backend without an Authorized decision. A denial
// is never an error: the browser is redirected to the target the guard
// picked (login, role home, or pending approval).
func Guard(guard ports.GuardService, policy domain.AccessPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := guard.Evaluate(c.Request().Context(), SessionID(c), c.Path(), policy)
			if !decision.Authorized {
				return c.Redirect(http.StatusFound, decision.RedirectTo)
			}
			if decision.Claims != nil {
				c.Set("claims", decision.Claims)
			}
			return next(c)
		}
	}
}

// Claims returns the claims attached by the guard for authenticated routes.
func Claims(c echo.Context) *domain.Claims {
	cl, _ := c.Get("claims").(*domain.Claims)
	return cl
}
