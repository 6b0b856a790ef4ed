package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/digiwallet/wallet-console/internal/api/middleware"
	"github.com/digiwallet/wallet-console/internal/core/domain"
	"github.com/digiwallet/wallet-console/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionStore
	cookieName  string
	cookieTTL   time.Duration
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionStore, cookieName string, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cookieName:  cookieName,
		cookieTTL:   cookieTTL,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Redirect        string `json:"redirect"`
	Name            string `json:"name,omitempty"`
	PendingApproval bool   `json:"pendingApproval,omitempty"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Login authenticates against the wallet backend and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	// Not a failure: the account exists but awaits admin approval, so no
	// session is created and the browser goes to the explanation view.
	if outcome.PendingApproval {
		return c.JSON(http.StatusOK, loginResponse{
			Redirect:        outcome.RedirectTo,
			PendingApproval: true,
		})
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    outcome.SessionID,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, loginResponse{
		Redirect: outcome.RedirectTo,
		Name:     outcome.DisplayName,
	})
}

// LoginView serves the login view metadata: a one-shot notice when the
// previous session was terminated by the backend.
//
// @Summary      Login view
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/login [get]
func (h *AuthHandler) LoginView(c echo.Context) error {
	resp := map[string]string{}
	if id := middleware.SessionID(c); id != "" {
		pending, err := h.sessions.ConsumeExpiredNotice(c.Request().Context(), id)
		if err == nil && pending {
			resp["notice"] = "Your session has expired. Please sign in again."
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Register submits a new account to the backend; the account stays pending
// until an admin approves it.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "registration submitted, awaiting admin approval",
	})
}

// Logout ends the session and expires the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if id := middleware.SessionID(c); id != "" {
		if err := h.authService.Logout(c.Request().Context(), id); err != nil {
			return err
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, loginResponse{Redirect: domain.PathLogin})
}

// PendingApproval serves the explanation view for unapproved accounts.
//
// @Summary      Pending approval view
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/pending-approval [get]
func (h *AuthHandler) PendingApproval(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "pending",
		"message": "Your account is awaiting admin approval. You will be notified once it has been reviewed.",
	})
}
