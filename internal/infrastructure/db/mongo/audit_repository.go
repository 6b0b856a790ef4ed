package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/digiwallet/wallet-console/internal/core/domain"
)

const auditCollection = "auth_events"

// AuditRepository persists the auth audit trail: guard denials, login
// outcomes, and session terminations.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuthEvent struct {
	SessionID string `bson:"session_id,omitempty"`
	Subject   string `bson:"subject,omitempty"`
	Kind      string `bson:"kind"`
	Reason    string `bson:"reason,omitempty"`
	Path      string `bson:"path,omitempty"`
	At        int64  `bson:"at"`
}

func (r *AuditRepository) Record(ctx context.Context, event *domain.AuthEvent) error {
	doc := mongoAuthEvent{
		SessionID: event.SessionID,
		Subject:   event.Subject,
		Kind:      string(event.Kind),
		Reason:    event.Reason,
		Path:      event.Path,
		At:        event.At.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

// ListRecent returns the newest events first.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuthEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find auth events: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoAuthEvent
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode auth events: %w", err)
	}

	events := make([]domain.AuthEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, domain.AuthEvent{
			SessionID: d.SessionID,
			Subject:   d.Subject,
			Kind:      domain.AuthEventKind(d.Kind),
			Reason:    d.Reason,
			Path:      d.Path,
			At:        time.Unix(d.At, 0).UTC(),
		})
	}
	return events, nil
}
