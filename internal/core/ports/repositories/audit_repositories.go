package repositories

import (
	"context"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// AuditLogRepository persists and queries the append-only audit trail.
type AuditLogRepository interface {
	// SaveAuditLog appends a record and returns it with its generated ID.
	SaveAuditLog(ctx context.Context, record domain.AuditLog) (*domain.AuditLog, error)

	// FindAuditLogs retrieves records matching the filter, ordered by
	// timestamp descending.
	FindAuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error)
}
