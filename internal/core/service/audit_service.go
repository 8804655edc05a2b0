package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process validates and persists a single audit event. It runs on the
// dispatcher workers, never on the request path.
func (s *auditService) Process(ctx context.Context, event domain.AuditEvent) error {
	if event.Action == "" || event.Entity == "" {
		return fmt.Errorf("process audit event: missing action or entity")
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	s.log.Debug().
		Str("action", string(event.Action)).
		Int64("actor_id", event.ActorID).
		Int64("entity_id", event.EntityID).
		Msg("audit event stored")

	return nil
}

// ListForUser returns the latest events performed by userID.
func (s *auditService) ListForUser(ctx context.Context, userID int64) ([]domain.AuditEvent, error) {
	events, err := s.repo.ListByActor(ctx, userID, domain.AuditListLimit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.AuditEvent{}
	}
	return events, nil
}
