package ports

import (
	"context"

	"github.com/digiwallet/wallet-console/internal/core/domain"
)

// LoginResult is the outcome of a credential check against the backend.
// Exactly one of Token or PendingApproval is meaningful.
type LoginResult struct {
	Token           string
	PendingApproval bool
}

// RegisterInput carries a new account registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// TransferInput moves money to a recipient addressed by user ID.
type TransferInput struct {
	ReceiverUserID int64
	Amount         float64
	Pin            string
}

// TransferByEmailInput moves money to a recipient addressed by email.
type TransferByEmailInput struct {
	ReceiverEmail string
	Amount        float64
	Pin           string
}

// WithdrawInput withdraws funds to an external account.
type WithdrawInput struct {
	Amount        float64
	Method        string
	AccountNumber string
	Pin           string
}

// WalletBackend is the REST contract of the wallet service. The gateway
// consumes it; ledger correctness, transfer atomicity and PIN verification
// are the backend's responsibility. Authenticated calls draw the bearer
// token from the session carried in ctx.
type WalletBackend interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, in RegisterInput) error

	SetupPin(ctx context.Context, pin string) error
	CheckPinStatus(ctx context.Context) (*domain.PinStatus, error)

	WalletInfo(ctx context.Context) (*domain.WalletInfo, error)
	Transfer(ctx context.Context, in TransferInput) error
	TransferByEmail(ctx context.Context, in TransferByEmailInput) error
	Deposit(ctx context.Context, amount float64) error
	Withdraw(ctx context.Context, in WithdrawInput) error
	SearchUsers(ctx context.Context, email string) ([]domain.UserMatch, error)
	EmailTransactionSummary(ctx context.Context) error

	PendingUsers(ctx context.Context) ([]domain.PendingUser, error)
	ApproveUser(ctx context.Context, userID int64) error
	AllTransactions(ctx context.Context) ([]domain.Transaction, error)
	TransactionsByUser(ctx context.Context, userID int64) ([]domain.Transaction, error)
	TransactionsSummary(ctx context.Context) (*domain.TransactionSummary, error)
}
