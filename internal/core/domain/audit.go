package domain

import "time"

// AuditLog is one immutable record of a state-changing action. Rows are
// append-only; the core never mutates or deletes them.
type AuditLog struct {
	AuditID     int64     `json:"auditID"`
	ActorUserID *int64    `json:"actorUserID,omitempty"`
	Action      string    `json:"action"`
	EntityType  string    `json:"entityType"`
	EntityID    *int64    `json:"entityID,omitempty"`
	Details     *string   `json:"details,omitempty"`
	CreatedAt   time.Time `json:"createdAt"` // stamped at write time
}

// AuditLogFilter narrows an audit query. Nil fields match everything.
type AuditLogFilter struct {
	EntityType  *string
	Action      *string
	ActorUserID *int64
	From        *time.Time
	To          *time.Time
}
