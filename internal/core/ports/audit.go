package ports

import (
	"context"

	"github.com/99minutos/library-system/internal/core/domain"
)

// AuditRepository persists the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	// ListByActor returns the most recent events performed by or on behalf of userID.
	ListByActor(ctx context.Context, userID int64, limit int) ([]domain.AuditEvent, error)
}

// AuditRecorder accepts audit events without blocking the request path.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditService processes queued audit events and serves the admin view.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
	ListForUser(ctx context.Context, userID int64) ([]domain.AuditEvent, error)
}
