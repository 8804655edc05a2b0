package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/library-system/internal/core/domain"
)

type stubAuditRepo struct {
	insertErr error
	inserted  []domain.AuditEvent
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuditEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, *e)
	return nil
}

func (r *stubAuditRepo) ListByActor(_ context.Context, userID int64, limit int) ([]domain.AuditEvent, error) {
	var out []domain.AuditEvent
	for _, e := range r.inserted {
		if e.ActorID == userID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestAuditService_Process_HappyPath(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	err := svc.Process(context.Background(), domain.AuditEvent{
		ActorID:  1,
		Action:   domain.AuditRoleChanged,
		Entity:   "user",
		EntityID: 2,
		At:       time.Now(),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected event inserted")
	}
}

func TestAuditService_Process_RejectsIncompleteEvent(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	if err := svc.Process(context.Background(), domain.AuditEvent{ActorID: 1}); err == nil {
		t.Fatalf("expected error for event without action")
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("incomplete event must not be stored")
	}
}

func TestAuditService_Process_StoreError(t *testing.T) {
	storeErr := errors.New("mongo unavailable")
	svc := NewAuditService(&stubAuditRepo{insertErr: storeErr}, zerolog.Nop())

	err := svc.Process(context.Background(), domain.AuditEvent{Action: domain.AuditBookCreated, Entity: "book"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestAuditService_ListForUser_EmptyIsNotNil(t *testing.T) {
	svc := NewAuditService(&stubAuditRepo{}, zerolog.Nop())
	events, err := svc.ListForUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListForUser returned error: %v", err)
	}
	if events == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}
