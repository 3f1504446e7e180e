package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portsrepo "github.com/worklog-app/timesheet_backend/internal/core/ports/repositories"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

func newPgxAuditLogRepository(pool PgxPool) portsrepo.AuditLogRepository {
	return &PgxAuditLogRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditLogRepository = (*PgxAuditLogRepository)(nil)

func (r *PgxAuditLogRepository) SaveAuditLog(ctx context.Context, record domain.AuditLog) (*domain.AuditLog, error) {
	query := `
		INSERT INTO audit_logs (actor_user_id, action, entity_type, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING audit_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		record.ActorUserID,
		record.Action,
		record.EntityType,
		record.EntityID,
		record.Details,
		record.CreatedAt,
	).Scan(&record.AuditID)
	if err != nil {
		return nil, fmt.Errorf("failed to save audit record: %w", err)
	}
	return &record, nil
}

// FindAuditLogs builds the WHERE clause from whichever filter fields are
// set; an empty filter returns the full trail newest first.
func (r *PgxAuditLogRepository) FindAuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error) {
	var conditions []string
	var args []any

	addCondition := func(column, op string, value any) {
		args = append(args, value)
		conditions = append(conditions, column+" "+op+" $"+strconv.Itoa(len(args)))
	}

	if filter.EntityType != nil {
		addCondition("entity_type", "=", *filter.EntityType)
	}
	if filter.Action != nil {
		addCondition("action", "=", *filter.Action)
	}
	if filter.ActorUserID != nil {
		addCondition("actor_user_id", "=", *filter.ActorUserID)
	}
	if filter.From != nil {
		addCondition("created_at", ">=", *filter.From)
	}
	if filter.To != nil {
		addCondition("created_at", "<=", *filter.To)
	}

	query := `SELECT audit_id, actor_user_id, action, entity_type, entity_id, details, created_at FROM audit_logs`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, audit_id DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	var records []domain.AuditLog
	for rows.Next() {
		var record domain.AuditLog
		err := rows.Scan(
			&record.AuditID,
			&record.ActorUserID,
			&record.Action,
			&record.EntityType,
			&record.EntityID,
			&record.Details,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit record rows: %w", err)
	}
	return records, nil
}
