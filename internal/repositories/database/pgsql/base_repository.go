package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	portsrepo "github.com/worklog-app/timesheet_backend/internal/core/ports/repositories"
)

// PgxPool is the subset of pgxpool.Pool the repositories use. Keeping it an
// interface lets tests substitute a pgxmock pool.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	Pool PgxPool
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// runInTransaction executes fn inside a transaction owned by tm. The
// transaction is committed when fn returns nil and rolled back otherwise.
func runInTransaction(ctx context.Context, tm portsrepo.TransactionManager, fn func(tx pgx.Tx) error) error {
	tx, err := tm.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tm.Rollback(ctx, tx)
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tm.Commit(ctx, tx)
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
