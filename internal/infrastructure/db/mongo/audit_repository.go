package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

const (
	auditCollection = "audit_events"
	opTimeout       = 5 * time.Second
)

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(auditCollection)}
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

type auditDocument struct {
	ActorID    int64             `bson:"actor_id"`
	Action     string            `bson:"action"`
	Entity     string            `bson:"entity"`
	EntityID   int64             `bson:"entity_id"`
	Details    map[string]string `bson:"details,omitempty"`
	At         time.Time         `bson:"at"`
	RecordedAt time.Time         `bson:"recorded_at"`
}

// Insert persists one audit event.
func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := auditDocument{
		ActorID:    event.ActorID,
		Action:     string(event.Action),
		Entity:     event.Entity,
		EntityID:   event.EntityID,
		Details:    event.Details,
		At:         event.At.UTC(),
		RecordedAt: time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByActor returns the newest events the user performed or that were
// performed on the user's account.
func (r *AuditRepository) ListByActor(ctx context.Context, userID int64, limit int) ([]domain.AuditEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"actor_id": userID},
		bson.M{"entity": "user", "entity_id": userID},
	}}
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []auditDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit events: %w", err)
	}

	events := make([]domain.AuditEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, domain.AuditEvent{
			ActorID:  d.ActorID,
			Action:   domain.AuditAction(d.Action),
			Entity:   d.Entity,
			EntityID: d.EntityID,
			Details:  d.Details,
			At:       d.At,
		})
	}
	return events, nil
}

// EnsureIndexes creates the indexes used by ListByActor.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "entity", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
