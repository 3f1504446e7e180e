package pgsql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

func newTimesheetRepo(t *testing.T) (*PgxTimesheetRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return &PgxTimesheetRepository{BaseRepository{Pool: mock}}, mock
}

func TestTimesheetRepository_SaveTimesheet(t *testing.T) {
	t.Parallel()

	repo, mock := newTimesheetRepo(t)
	now := time.Now().UTC()
	sheet := domain.Timesheet{
		UserID:      4,
		Kind:        domain.KindTimesheet,
		PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:      domain.StatusPending,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO timesheets`)).
		WithArgs(sheet.UserID, sheet.Kind, sheet.PeriodStart, sheet.PeriodEnd, sheet.Status,
			sheet.DecidedByUserID, sheet.DecidedAt, sheet.DecisionComment, now, now).
		WillReturnRows(pgxmock.NewRows([]string{"timesheet_id"}).AddRow(int64(11)))

	timesheetID, err := repo.SaveTimesheet(context.Background(), sheet)
	if err != nil {
		t.Fatalf("SaveTimesheet returned error: %v", err)
	}
	if timesheetID != 11 {
		t.Fatalf("expected timesheet id 11, got %d", timesheetID)
	}
}

func TestTimesheetRepository_SaveTimesheet_UniqueViolation(t *testing.T) {
	t.Parallel()

	repo, mock := newTimesheetRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO timesheets`)).
		WithArgs(int64(4), domain.KindTimesheet, time.Time{}, time.Time{}, domain.ReviewStatus(""),
			(*int64)(nil), (*time.Time)(nil), (*string)(nil), time.Time{}, time.Time{}).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "timesheets_kind_user_period_key"})

	_, err := repo.SaveTimesheet(context.Background(), domain.Timesheet{UserID: 4, Kind: domain.KindTimesheet})
	if !errors.Is(err, apperrors.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestTimesheetRepository_FindTimesheetByID_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newTimesheetRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM timesheets WHERE timesheet_id = $1`)).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"timesheet_id"}))

	_, err := repo.FindTimesheetByID(context.Background(), 99)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTimesheetRepository_ExistsForPeriod(t *testing.T) {
	t.Parallel()

	repo, mock := newTimesheetRepo(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM timesheets WHERE kind = $1 AND user_id = $2 AND period_start = $3 AND period_end = $4)`)).
		WithArgs(domain.KindMonthlyReview, int64(4), start, end).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsForPeriod(context.Background(), domain.KindMonthlyReview, 4, start, end)
	if err != nil {
		t.Fatalf("ExistsForPeriod returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists to be false")
	}
}

func TestTimesheetRepository_UpdateTimesheet_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newTimesheetRepo(t)
	now := time.Now().UTC()
	sheet := domain.Timesheet{
		TimesheetID: 99,
		Status:      domain.StatusApproved,
		AuditFields: domain.AuditFields{LastUpdatedAt: now},
	}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE timesheets`)).
		WithArgs(sheet.Status, sheet.DecidedByUserID, sheet.DecidedAt, sheet.DecisionComment, now, int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateTimesheet(context.Background(), sheet)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTimesheetRepository_FindPendingEntryDetails(t *testing.T) {
	t.Parallel()

	repo, mock := newTimesheetRepo(t)
	now := time.Now().UTC()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{
		"entry_id", "user_id", "project_id", "timesheet_id", "entry_date", "note", "hours",
		"created_at", "last_updated_at", "user_name", "project_name", "project_status",
	}).AddRow(int64(1), int64(4), int64(2), int64Ref(11), day, "api", decimal.NewFromInt(8), now, now,
		"Alice", "Backend", domain.ProjectActive)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM timesheets ts`)).
		WithArgs(domain.KindTimesheet, domain.StatusPending, int64(2), start, end).
		WillReturnRows(rows)

	details, err := repo.FindPendingEntryDetails(context.Background(), domain.KindTimesheet, 2, start, end)
	if err != nil {
		t.Fatalf("FindPendingEntryDetails returned error: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(details))
	}
	if details[0].UserName != "Alice" || details[0].ProjectName != "Backend" {
		t.Fatalf("unexpected detail: %+v", details[0])
	}
}
