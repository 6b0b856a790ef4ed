package domain

import "time"

// WalletInfo is the balance-plus-recent-transactions view served on the
// user dashboard.
type WalletInfo struct {
	Balance      float64       `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}

// Transaction mirrors the backend's transaction record.
type Transaction struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
}

// TransactionSummary aggregates money movement across all users, shown on
// the admin dashboard.
type TransactionSummary struct {
	TotalIn          float64 `json:"totalIn"`
	TotalOut         float64 `json:"totalOut"`
	TotalTransferred float64 `json:"totalTransferred"`
	TransactionCount int64   `json:"transactionCount"`
}

// PendingUser is a registered account awaiting admin approval.
type PendingUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserMatch is a candidate returned by the email search used to pick a
// transfer recipient.
type UserMatch struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PinStatus reports whether the account has a transaction PIN configured.
type PinStatus struct {
	IsPinSet bool `json:"isPinSet"`
}
