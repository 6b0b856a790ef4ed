package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/digiwallet/wallet-console/internal/core/domain"
	"github.com/digiwallet/wallet-console/internal/core/ports"
)

type stubWalletBackend struct {
	ports.WalletBackend
	walletInfoFn func(ctx context.Context) (*domain.WalletInfo, error)
	transferFn   func(ctx context.Context, in ports.TransferInput) error
	depositFn    func(ctx context.Context, amount float64) error
	searchFn     func(ctx context.Context, email string) ([]domain.UserMatch, error)
}

func (s *stubWalletBackend) WalletInfo(ctx context.Context) (*domain.WalletInfo, error) {
	return s.walletInfoFn(ctx)
}

func (s *stubWalletBackend) Transfer(ctx context.Context, in ports.TransferInput) error {
	return s.transferFn(ctx, in)
}

func (s *stubWalletBackend) Deposit(ctx context.Context, amount float64) error {
	return s.depositFn(ctx, amount)
}

func (s *stubWalletBackend) SearchUsers(ctx context.Context, email string) ([]domain.UserMatch, error) {
	return s.searchFn(ctx, email)
}

func TestWalletHandler_Dashboard(t *testing.T) {
	e := newEcho()
	backend := &stubWalletBackend{
		walletInfoFn: func(context.Context) (*domain.WalletInfo, error) {
			return &domain.WalletInfo{
				Balance:      150.75,
				Transactions: []domain.Transaction{{ID: 1, Type: "DEPOSIT", Amount: 150.75}},
			}, nil
		},
	}
	h := NewWalletHandler(backend)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("claims", &domain.Claims{Name: "Alice", Role: domain.RoleUser, IsApproved: true})
	if err := h.Dashboard(c); err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}

	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Name != "Alice" {
		t.Fatalf("expected greeting name from claims, got %q", resp.Name)
	}
	if resp.Balance != 150.75 || len(resp.Transactions) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWalletHandler_Dashboard_BackendError(t *testing.T) {
	e := newEcho()
	backend := &stubWalletBackend{
		walletInfoFn: func(context.Context) (*domain.WalletInfo, error) {
			return nil, &domain.BackendError{Status: 503, Message: "down"}
		},
	}
	h := NewWalletHandler(backend)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), httptest.NewRecorder())
	err := h.Dashboard(c)
	var be *domain.BackendError
	if !errors.As(err, &be) || be.Status != 503 {
		t.Fatalf("backend error must propagate to the error handler, got %v", err)
	}
}

func TestWalletHandler_Transfer(t *testing.T) {
	e := newEcho()
	var got ports.TransferInput
	backend := &stubWalletBackend{
		transferFn: func(_ context.Context, in ports.TransferInput) error {
			got = in
			return nil
		},
	}
	h := NewWalletHandler(backend)

	req := jsonRequest(http.MethodPost, "/user/transfer", `{"receiverUserId":7,"amount":25.5,"pin":"1234"}`)
	rec := httptest.NewRecorder()
	if err := h.Transfer(e.NewContext(req, rec)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.ReceiverUserID != 7 || got.Amount != 25.5 || got.Pin != "1234" {
		t.Fatalf("unexpected transfer input: %+v", got)
	}
}

func TestWalletHandler_Transfer_Validation(t *testing.T) {
	e := newEcho()
	h := NewWalletHandler(&stubWalletBackend{
		transferFn: func(context.Context, ports.TransferInput) error {
			t.Fatalf("backend must not be called on invalid input")
			return nil
		},
	})

	tests := []struct {
		name string
		body string
	}{
		{"zero amount", `{"receiverUserId":7,"amount":0,"pin":"1234"}`},
		{"short pin", `{"receiverUserId":7,"amount":10,"pin":"12"}`},
		{"alpha pin", `{"receiverUserId":7,"amount":10,"pin":"abcd"}`},
		{"missing receiver", `{"amount":10,"pin":"1234"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := jsonRequest(http.MethodPost, "/user/transfer", tt.body)
			err := h.Transfer(e.NewContext(req, httptest.NewRecorder()))
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestWalletHandler_Deposit(t *testing.T) {
	e := newEcho()
	var got float64
	h := NewWalletHandler(&stubWalletBackend{
		depositFn: func(_ context.Context, amount float64) error {
			got = amount
			return nil
		},
	})

	req := jsonRequest(http.MethodPost, "/user/deposit", `{"amount":50}`)
	rec := httptest.NewRecorder()
	if err := h.Deposit(e.NewContext(req, rec)); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if got != 50 {
		t.Fatalf("unexpected amount: %v", got)
	}
}

func TestWalletHandler_Search(t *testing.T) {
	e := newEcho()
	h := NewWalletHandler(&stubWalletBackend{
		searchFn: func(_ context.Context, email string) ([]domain.UserMatch, error) {
			if email != "bob@example.com" {
				t.Fatalf("unexpected query: %q", email)
			}
			return []domain.UserMatch{{ID: 2, Name: "Bob", Email: email}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/user/search?email=bob%40example.com", nil)
	rec := httptest.NewRecorder()
	if err := h.Search(e.NewContext(req, rec)); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	var matches []domain.UserMatch
	if err := json.Unmarshal(rec.Body.Bytes(), &matches); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Bob" {
		t.Fatalf("unexpected matches: %+v", matches)
	}
}

func TestWalletHandler_Search_MissingEmail(t *testing.T) {
	e := newEcho()
	h := NewWalletHandler(&stubWalletBackend{})

	req := httptest.NewRequest(http.MethodGet, "/user/search", nil)
	err := h.Search(e.NewContext(req, httptest.NewRecorder()))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
