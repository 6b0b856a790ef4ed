package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/digiwallet/wallet-console/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Passes wallet backend failures through with the backend's own status
//     and message, so the triggering view can show it inline.
//   - Maps known domain errors to deterministic HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
//
// Guard denials never arrive here; they are fully handled as redirects.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Backend answers keep their status and message; the form state on the
	// client survives, the user corrects and resubmits.
	var be *domain.BackendError
	if errors.As(err, &be) {
		return be.Status, be.Message
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "session not found"
	case errors.Is(err, domain.ErrMalformedToken):
		return http.StatusUnauthorized, "invalid session token"
	case errors.Is(err, domain.ErrPendingApproval):
		return http.StatusForbidden, "account pending approval"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
