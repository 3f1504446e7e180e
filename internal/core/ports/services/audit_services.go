package services

import (
	"context"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// AuditSvcFacade records and queries the append-only audit trail.
type AuditSvcFacade interface {
	// Log appends a record for a state-changing action. The timestamp is
	// stamped at write time, never supplied by the caller.
	Log(ctx context.Context, actorUserID *int64, action, entityType string, entityID *int64, details *string) (*domain.AuditLog, error)

	// Query returns records matching the filter, newest first. Unset filter
	// fields match everything.
	Query(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error)
}
