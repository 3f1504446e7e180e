package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portsrepo "github.com/worklog-app/timesheet_backend/internal/core/ports/repositories"
)

type PgxTimesheetRepository struct {
	BaseRepository
}

func newPgxTimesheetRepository(pool PgxPool) portsrepo.TimesheetRepositoryFacade {
	return &PgxTimesheetRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TimesheetRepositoryFacade = (*PgxTimesheetRepository)(nil)

const timesheetColumns = `timesheet_id, user_id, kind, period_start, period_end, status, decided_by_user_id, decided_at, decision_comment, created_at, last_updated_at`

func scanTimesheet(row pgx.Row) (*domain.Timesheet, error) {
	var sheet domain.Timesheet
	err := row.Scan(
		&sheet.TimesheetID,
		&sheet.UserID,
		&sheet.Kind,
		&sheet.PeriodStart,
		&sheet.PeriodEnd,
		&sheet.Status,
		&sheet.DecidedByUserID,
		&sheet.DecidedAt,
		&sheet.DecisionComment,
		&sheet.CreatedAt,
		&sheet.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan timesheet: %w", err)
	}
	return &sheet, nil
}

func (r *PgxTimesheetRepository) SaveTimesheet(ctx context.Context, sheet domain.Timesheet) (int64, error) {
	query := `
		INSERT INTO timesheets (user_id, kind, period_start, period_end, status, decided_by_user_id, decided_at, decision_comment, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING timesheet_id;
	`
	var timesheetID int64
	err := r.Pool.QueryRow(ctx, query,
		sheet.UserID,
		sheet.Kind,
		sheet.PeriodStart,
		sheet.PeriodEnd,
		sheet.Status,
		sheet.DecidedByUserID,
		sheet.DecidedAt,
		sheet.DecisionComment,
		sheet.CreatedAt,
		sheet.LastUpdatedAt,
	).Scan(&timesheetID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: user %d period %s to %s", apperrors.ErrDuplicate,
				sheet.UserID, sheet.PeriodStart.Format("2006-01-02"), sheet.PeriodEnd.Format("2006-01-02"))
		}
		return 0, fmt.Errorf("failed to save timesheet: %w", err)
	}
	return timesheetID, nil
}

func (r *PgxTimesheetRepository) UpdateTimesheet(ctx context.Context, sheet domain.Timesheet) error {
	query := `
		UPDATE timesheets
		SET status = $1, decided_by_user_id = $2, decided_at = $3, decision_comment = $4, last_updated_at = $5
		WHERE timesheet_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		sheet.Status,
		sheet.DecidedByUserID,
		sheet.DecidedAt,
		sheet.DecisionComment,
		sheet.LastUpdatedAt,
		sheet.TimesheetID,
	)
	if err != nil {
		return fmt.Errorf("failed to update timesheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTimesheetRepository) FindTimesheetByID(ctx context.Context, timesheetID int64) (*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE timesheet_id = $1;`
	return scanTimesheet(r.Pool.QueryRow(ctx, query, timesheetID))
}

func (r *PgxTimesheetRepository) ExistsForPeriod(ctx context.Context, kind domain.ReviewKind, userID int64, start, end time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM timesheets WHERE kind = $1 AND user_id = $2 AND period_start = $3 AND period_end = $4);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, kind, userID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check period uniqueness: %w", err)
	}
	return exists, nil
}

func (r *PgxTimesheetRepository) FindByUserAndPeriod(ctx context.Context, kind domain.ReviewKind, userID int64, start, end time.Time) (*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE kind = $1 AND user_id = $2 AND period_start = $3 AND period_end = $4;`
	return scanTimesheet(r.Pool.QueryRow(ctx, query, kind, userID, start, end))
}

func (r *PgxTimesheetRepository) FindPendingEntryDetails(ctx context.Context, kind domain.ReviewKind, leaderID int64, start, end time.Time) ([]domain.TimeEntryDetail, error) {
	query := `
		SELECT te.entry_id, te.user_id, te.project_id, te.timesheet_id, te.entry_date, te.note, te.hours,
		       te.created_at, te.last_updated_at,
		       u.name AS user_name, p.name AS project_name, p.status AS project_status
		FROM timesheets ts
		JOIN users u ON u.user_id = ts.user_id
		JOIN time_entries te ON te.timesheet_id = ts.timesheet_id
		JOIN projects p ON p.project_id = te.project_id
		WHERE ts.kind = $1
		  AND ts.status = $2
		  AND u.manager_id = $3
		  AND ts.period_start = $4
		  AND ts.period_end = $5
		ORDER BY u.name, p.name, te.entry_date, te.entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, kind, domain.StatusPending, leaderID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending entry details: %w", err)
	}
	return scanTimeEntryDetails(rows)
}
