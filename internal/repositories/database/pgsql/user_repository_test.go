package pgsql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

func newUserRepo(t *testing.T) (*PgxUserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return &PgxUserRepository{BaseRepository{Pool: mock}}, mock
}

func TestUserRepository_SaveUser_UniqueViolation(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("", "dup@example.com", "", "", domain.UserRole(""), (*int64)(nil), time.Time{}, time.Time{}).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_lower_key"})

	_, err := repo.SaveUser(context.Background(), domain.User{Email: "dup@example.com"})
	if !errors.Is(err, apperrors.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUserRepository_FindUserByEmail_CaseInsensitiveQuery(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepo(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"user_id", "name", "email", "password_hash", "password_salt", "role", "manager_id", "created_at", "last_updated_at"}).
		AddRow(int64(3), "Alice", "alice@example.com", "hash", "salt", domain.RoleEmployee, int64Ref(2), now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(email) = LOWER($1)`)).
		WithArgs("ALICE@Example.com").
		WillReturnRows(rows)

	user, err := repo.FindUserByEmail(context.Background(), "ALICE@Example.com")
	if err != nil {
		t.Fatalf("FindUserByEmail returned error: %v", err)
	}
	if user.UserID != 3 || *user.ManagerID != 2 {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserRepository_FindUserByID_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE user_id = $1`)).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}))

	_, err := repo.FindUserByID(context.Background(), 99)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_HasDirectReports(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users WHERE manager_id = $1)`)).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	hasReports, err := repo.HasDirectReports(context.Background(), 2)
	if err != nil {
		t.Fatalf("HasDirectReports returned error: %v", err)
	}
	if !hasReports {
		t.Fatal("expected direct reports")
	}
}

func TestUserRepository_DeleteUser_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE user_id = $1`)).
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.DeleteUser(context.Background(), 99)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func int64Ref(v int64) *int64 {
	return &v
}
