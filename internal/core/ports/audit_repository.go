package ports

import (
	"context"

	"github.com/digiwallet/wallet-console/internal/core/domain"
)

// AuditRepository persists the auth audit trail.
type AuditRepository interface {
	Record(ctx context.Context, event *domain.AuthEvent) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuthEvent, error)
}
