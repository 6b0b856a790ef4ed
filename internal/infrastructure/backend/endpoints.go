package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/digiwallet/wallet-console/internal/core/domain"
	"github.com/digiwallet/wallet-console/internal/core/ports"
)

// pendingApprovalError is the exact error string the backend returns with a
// 403 when the account has not been approved yet.
const pendingApprovalError = "Account pending approval"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login checks credentials. A 403 carrying the pending-approval error is a
// distinct outcome, not a generic failure.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	status, raw, err := c.doRaw(ctx, "login", http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if status == http.StatusForbidden && errorMessage(raw) == pendingApprovalError {
		return &ports.LoginResult{PendingApproval: true}, nil
	}
	if status != http.StatusOK {
		return nil, &domain.BackendError{Status: status, Message: errorMessage(raw)}
	}

	var body loginResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("login: decode response: %w", err)
	}
	return &ports.LoginResult{Token: body.Token}, nil
}

func (c *Client) Register(ctx context.Context, in ports.RegisterInput) error {
	payload := map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"password": in.Password,
	}
	return c.do(ctx, "register", http.MethodPost, "/auth/register", payload, nil)
}

func (c *Client) SetupPin(ctx context.Context, pin string) error {
	return c.do(ctx, "setup_pin", http.MethodPost, c.pinSetupPath, map[string]string{"pin": pin}, nil)
}

func (c *Client) CheckPinStatus(ctx context.Context) (*domain.PinStatus, error) {
	var out domain.PinStatus
	if err := c.do(ctx, "check_pin_status", http.MethodGet, "/user/check-pin-status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) WalletInfo(ctx context.Context) (*domain.WalletInfo, error) {
	var out domain.WalletInfo
	if err := c.do(ctx, "wallet_info", http.MethodGet, "/user/wallet-info", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Transfer(ctx context.Context, in ports.TransferInput) error {
	payload := map[string]any{
		"receiverUserId": in.ReceiverUserID,
		"amount":         in.Amount,
		"pin":            in.Pin,
	}
	return c.do(ctx, "transfer", http.MethodPost, "/user/transfer", payload, nil)
}

func (c *Client) TransferByEmail(ctx context.Context, in ports.TransferByEmailInput) error {
	payload := map[string]any{
		"receiverEmail": in.ReceiverEmail,
		"amount":        in.Amount,
		"pin":           in.Pin,
	}
	return c.do(ctx, "transfer_by_email", http.MethodPost, "/user/transfer-by-email", payload, nil)
}

func (c *Client) Deposit(ctx context.Context, amount float64) error {
	return c.do(ctx, "deposit", http.MethodPost, "/user/deposit", map[string]any{"amount": amount}, nil)
}

func (c *Client) Withdraw(ctx context.Context, in ports.WithdrawInput) error {
	payload := map[string]any{
		"amount":        in.Amount,
		"method":        in.Method,
		"accountNumber": in.AccountNumber,
		"pin":           in.Pin,
	}
	return c.do(ctx, "withdraw", http.MethodPost, "/user/withdraw", payload, nil)
}

func (c *Client) SearchUsers(ctx context.Context, email string) ([]domain.UserMatch, error) {
	var out []domain.UserMatch
	path := "/user/search?email=" + url.QueryEscape(email)
	if err := c.do(ctx, "search_users", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EmailTransactionSummary triggers an async summary email; no payload, no
// response body.
func (c *Client) EmailTransactionSummary(ctx context.Context) error {
	return c.do(ctx, "email_summary", http.MethodPost, "/user/email-transaction-summary", nil, nil)
}

func (c *Client) PendingUsers(ctx context.Context) ([]domain.PendingUser, error) {
	var out []domain.PendingUser
	if err := c.do(ctx, "pending_users", http.MethodGet, "/admin/pending-users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveUser(ctx context.Context, userID int64) error {
	path := fmt.Sprintf("/admin/approve/%d", userID)
	return c.do(ctx, "approve_user", http.MethodPut, path, nil, nil)
}

func (c *Client) AllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction
	if err := c.do(ctx, "admin_transactions", http.MethodGet, "/admin/transactions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TransactionsByUser(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	var out []domain.Transaction
	path := fmt.Sprintf("/admin/transactions/%d", userID)
	if err := c.do(ctx, "admin_transactions_by_user", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TransactionsSummary(ctx context.Context) (*domain.TransactionSummary, error) {
	var out domain.TransactionSummary
	if err := c.do(ctx, "admin_transactions_summary", http.MethodGet, "/admin/transactions-summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
