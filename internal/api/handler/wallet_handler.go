package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/digiwallet/wallet-console/internal/api/middleware"
	"github.com/digiwallet/wallet-console/internal/core/domain"
	"github.com/digiwallet/wallet-console/internal/core/ports"
)

// WalletHandler serves the user-facing wallet views: dashboard, transfers,
// deposits, withdrawals, recipient search and the summary email trigger.
// All money movement happens in the backend; these handlers validate input
// and proxy.
type WalletHandler struct {
	backend ports.WalletBackend
}

func NewWalletHandler(backend ports.WalletBackend) *WalletHandler {
	return &WalletHandler{backend: backend}
}

type dashboardResponse struct {
	Name         string               `json:"name,omitempty"`
	Balance      float64              `json:"balance"`
	Transactions []domain.Transaction `json:"transactions"`
}

type transferRequest struct {
	ReceiverUserID int64   `json:"receiverUserId" validate:"required,gt=0"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	Pin            string  `json:"pin" validate:"required,len=4,numeric"`
}

type transferByEmailRequest struct {
	ReceiverEmail string  `json:"receiverEmail" validate:"required,email"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Pin           string  `json:"pin" validate:"required,len=4,numeric"`
}

type depositRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type withdrawRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Method        string  `json:"method" validate:"required"`
	AccountNumber string  `json:"accountNumber" validate:"required"`
	Pin           string  `json:"pin" validate:"required,len=4,numeric"`
}

// Dashboard returns the balance and recent transactions.
//
// @Summary      User dashboard
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      502  {object}  map[string]string
// @Router       /dashboard [get]
func (h *WalletHandler) Dashboard(c echo.Context) error {
	info, err := h.backend.WalletInfo(c.Request().Context())
	if err != nil {
		return err
	}

	name := ""
	if claims := middleware.Claims(c); claims != nil {
		name = claims.Name
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Name:         name,
		Balance:      info.Balance,
		Transactions: info.Transactions,
	})
}

// Transfer moves money to a recipient by user ID.
//
// @Summary      Transfer by user ID
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        body  body      transferRequest  true  "Transfer details"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /user/transfer [post]
func (h *WalletHandler) Transfer(c echo.Context) error {
	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.backend.Transfer(c.Request().Context(), ports.TransferInput{
		ReceiverUserID: req.ReceiverUserID,
		Amount:         req.Amount,
		Pin:            req.Pin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "transfer successful"})
}

// TransferByEmail moves money to a recipient by email address.
//
// @Summary      Transfer by email
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        body  body      transferByEmailRequest  true  "Transfer details"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /user/transfer-by-email [post]
func (h *WalletHandler) TransferByEmail(c echo.Context) error {
	var req transferByEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.backend.TransferByEmail(c.Request().Context(), ports.TransferByEmailInput{
		ReceiverEmail: req.ReceiverEmail,
		Amount:        req.Amount,
		Pin:           req.Pin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "transfer successful"})
}

// Deposit adds funds to the wallet.
//
// @Summary      Deposit
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        body  body      depositRequest  true  "Deposit amount"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /user/deposit [post]
func (h *WalletHandler) Deposit(c echo.Context) error {
	var req depositRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.backend.Deposit(c.Request().Context(), req.Amount); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "deposit successful"})
}

// Withdraw sends funds to an external account.
//
// @Summary      Withdraw
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        body  body      withdrawRequest  true  "Withdrawal details"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /user/withdraw [post]
func (h *WalletHandler) Withdraw(c echo.Context) error {
	var req withdrawRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.backend.Withdraw(c.Request().Context(), ports.WithdrawInput{
		Amount:        req.Amount,
		Method:        req.Method,
		AccountNumber: req.AccountNumber,
		Pin:           req.Pin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "withdrawal submitted"})
}

// Search finds transfer recipients by email.
//
// @Summary      Search users by email
// @Tags         wallet
// @Produce      json
// @Param        email  query     string  true  "Email to search for"
// @Success      200    {array}   domain.UserMatch
// @Failure      400    {object}  map[string]string
// @Router       /user/search [get]
func (h *WalletHandler) Search(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	matches, err := h.backend.SearchUsers(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, matches)
}

// EmailSummary asks the backend to email a transaction summary to the user.
//
// @Summary      Email transaction summary
// @Tags         wallet
// @Produce      json
// @Success      202  {object}  map[string]string
// @Router       /user/email-transaction-summary [post]
func (h *WalletHandler) EmailSummary(c echo.Context) error {
	if err := h.backend.EmailTransactionSummary(c.Request().Context()); err != nil {
		return err
	}
	// The backend sends the email asynchronously.
	return c.JSON(http.StatusAccepted, map[string]string{"message": "summary email on its way"})
}
