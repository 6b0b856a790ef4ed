package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/digiwallet/wallet-console/internal/core/ports"
)

// AdminHandler serves the admin surface: approvals, the transaction ledger
// views, and the auth audit trail.
type AdminHandler struct {
	backend ports.WalletBackend
	audit   ports.AuditRepository
}

func NewAdminHandler(backend ports.WalletBackend, audit ports.AuditRepository) *AdminHandler {
	return &AdminHandler{backend: backend, audit: audit}
}

const auditListLimit = 100

// Dashboard returns the cross-user money movement summary.
//
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.TransactionSummary
// @Router       /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	summary, err := h.backend.TransactionsSummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// PendingUsers lists accounts awaiting approval.
//
// @Summary      List pending users
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.PendingUser
// @Router       /admin/pending-users [get]
func (h *AdminHandler) PendingUsers(c echo.Context) error {
	users, err := h.backend.PendingUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Approve marks a pending user as approved.
//
// @Summary      Approve a pending user
// @Tags         admin
// @Produce      json
// @Param        userID  path      int  true  "User ID"
// @Success      200     {object}  map[string]string
// @Failure      400     {object}  map[string]string
// @Router       /admin/approve/{userID} [put]
func (h *AdminHandler) Approve(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil || userID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.backend.ApproveUser(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user approved"})
}

// Transactions lists all transactions across users.
//
// @Summary      List all transactions
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.Transaction
// @Router       /admin/transactions [get]
func (h *AdminHandler) Transactions(c echo.Context) error {
	txs, err := h.backend.AllTransactions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, txs)
}

// TransactionsByUser lists one user's transactions.
//
// @Summary      List transactions for a user
// @Tags         admin
// @Produce      json
// @Param        userID  path      int  true  "User ID"
// @Success      200     {array}   domain.Transaction
// @Failure      400     {object}  map[string]string
// @Router       /admin/transactions/{userID} [get]
func (h *AdminHandler) TransactionsByUser(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil || userID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	txs, err := h.backend.TransactionsByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, txs)
}

// AuthEvents lists the most recent auth audit entries.
//
// @Summary      List recent auth events
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.AuthEvent
// @Router       /admin/auth-events [get]
func (h *AdminHandler) AuthEvents(c echo.Context) error {
	events, err := h.audit.ListRecent(c.Request().Context(), auditListLimit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
