package domain

import "time"

// AuditAction names a security-relevant change.
type AuditAction string

const (
	AuditUserRegistered  AuditAction = "user.registered"
	AuditRoleChanged     AuditAction = "user.role_changed"
	AuditUserDeleted     AuditAction = "user.deleted"
	AuditPasswordChanged AuditAction = "user.password_changed"
	AuditBookCreated     AuditAction = "book.created"
	AuditBookUpdated     AuditAction = "book.updated"
	AuditBookDeleted     AuditAction = "book.deleted"
	AuditPurchase        AuditAction = "purchase.completed"
	AuditLoanOpened      AuditAction = "loan.opened"
	AuditLoanReturned    AuditAction = "loan.returned"
)

// AuditEvent is one entry of the audit trail.
type AuditEvent struct {
	ActorID  int64             `json:"actorId"`
	Action   AuditAction       `json:"action"`
	Entity   string            `json:"entity"`
	EntityID int64             `json:"entityId"`
	Details  map[string]string `json:"details,omitempty"`
	At       time.Time         `json:"at"`
}

// AuditListLimit caps how many events the admin audit view returns.
const AuditListLimit = 50
