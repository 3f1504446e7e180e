package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portsrepo "github.com/worklog-app/timesheet_backend/internal/core/ports/repositories"
)

type PgxTimeEntryRepository struct {
	BaseRepository
}

func newPgxTimeEntryRepository(pool PgxPool) portsrepo.TimeEntryRepositoryFacade {
	return &PgxTimeEntryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TimeEntryRepositoryFacade = (*PgxTimeEntryRepository)(nil)

const timeEntryColumns = `entry_id, user_id, project_id, timesheet_id, entry_date, note, hours, created_at, last_updated_at`

// timesheet_id is NULL until the entry is attached to a timesheet; the
// domain represents "not yet attached" as the zero id.
func nullableTimesheetID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func scanTimeEntry(row pgx.Row) (*domain.TimeEntry, error) {
	var entry domain.TimeEntry
	var timesheetID *int64
	err := row.Scan(
		&entry.EntryID,
		&entry.UserID,
		&entry.ProjectID,
		&timesheetID,
		&entry.EntryDate,
		&entry.Note,
		&entry.Hours,
		&entry.CreatedAt,
		&entry.LastUpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan time entry: %w", err)
	}
	if timesheetID != nil {
		entry.TimesheetID = *timesheetID
	}
	return &entry, nil
}

func scanTimeEntries(rows pgx.Rows) ([]domain.TimeEntry, error) {
	defer rows.Close()
	var entries []domain.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read time entry rows: %w", err)
	}
	return entries, nil
}

func (r *PgxTimeEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) (int64, error) {
	query := `
		INSERT INTO time_entries (user_id, project_id, timesheet_id, entry_date, note, hours, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING entry_id;
	`
	var entryID int64
	err := r.Pool.QueryRow(ctx, query,
		entry.UserID,
		entry.ProjectID,
		nullableTimesheetID(entry.TimesheetID),
		entry.EntryDate,
		entry.Note,
		entry.Hours,
		entry.CreatedAt,
		entry.LastUpdatedAt,
	).Scan(&entryID)
	if err != nil {
		return 0, fmt.Errorf("failed to save time entry: %w", err)
	}
	return entryID, nil
}

// ReplaceEntriesForTimesheet deletes every entry of the timesheet and
// inserts the replacement set inside one transaction, so a failure cannot
// leave the timesheet with partial entries.
func (r *PgxTimeEntryRepository) ReplaceEntriesForTimesheet(ctx context.Context, timesheetID int64, entries []domain.TimeEntry) error {
	return runInTransaction(ctx, &r.BaseRepository, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM time_entries WHERE timesheet_id = $1;`, timesheetID); err != nil {
			return fmt.Errorf("failed to delete timesheet entries: %w", err)
		}

		insertQuery := `
			INSERT INTO time_entries (user_id, project_id, timesheet_id, entry_date, note, hours, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		for _, entry := range entries {
			if _, err := tx.Exec(ctx, insertQuery,
				entry.UserID,
				entry.ProjectID,
				timesheetID,
				entry.EntryDate,
				entry.Note,
				entry.Hours,
				entry.CreatedAt,
				entry.LastUpdatedAt,
			); err != nil {
				return fmt.Errorf("failed to insert replacement entry: %w", err)
			}
		}
		return nil
	})
}

func (r *PgxTimeEntryRepository) FindEntriesByUserID(ctx context.Context, userID int64) ([]domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE user_id = $1 ORDER BY entry_date, entry_id;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	return scanTimeEntries(rows)
}

func (r *PgxTimeEntryRepository) FindEntriesByTimesheetID(ctx context.Context, userID, timesheetID int64) ([]domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE user_id = $1 AND timesheet_id = $2 ORDER BY entry_date, entry_id;`
	rows, err := r.Pool.Query(ctx, query, userID, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheet entries: %w", err)
	}
	return scanTimeEntries(rows)
}

func (r *PgxTimeEntryRepository) HasEntriesInPeriod(ctx context.Context, userID int64, start, end time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM time_entries WHERE user_id = $1 AND entry_date BETWEEN $2 AND $3);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, userID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check entries in period: %w", err)
	}
	return exists, nil
}

func (r *PgxTimeEntryRepository) FindEntryDetailsByUserPeriod(ctx context.Context, userID int64, start, end time.Time) ([]domain.TimeEntryDetail, error) {
	query := `
		SELECT te.entry_id, te.user_id, te.project_id, te.timesheet_id, te.entry_date, te.note, te.hours,
		       te.created_at, te.last_updated_at,
		       u.name AS user_name, p.name AS project_name, p.status AS project_status
		FROM time_entries te
		JOIN users u ON u.user_id = te.user_id
		JOIN projects p ON p.project_id = te.project_id
		WHERE te.user_id = $1 AND te.entry_date BETWEEN $2 AND $3
		ORDER BY p.name, te.entry_date, te.entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry details: %w", err)
	}
	return scanTimeEntryDetails(rows)
}

func scanTimeEntryDetails(rows pgx.Rows) ([]domain.TimeEntryDetail, error) {
	defer rows.Close()
	var details []domain.TimeEntryDetail
	for rows.Next() {
		var d domain.TimeEntryDetail
		var timesheetID *int64
		err := rows.Scan(
			&d.EntryID,
			&d.UserID,
			&d.ProjectID,
			&timesheetID,
			&d.EntryDate,
			&d.Note,
			&d.Hours,
			&d.CreatedAt,
			&d.LastUpdatedAt,
			&d.UserName,
			&d.ProjectName,
			&d.ProjectStatus,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry detail: %w", err)
		}
		if timesheetID != nil {
			d.TimesheetID = *timesheetID
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entry detail rows: %w", err)
	}
	return details, nil
}
