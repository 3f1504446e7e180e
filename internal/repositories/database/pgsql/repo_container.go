package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/worklog-app/timesheet_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all Postgres repositories against one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(pool),
		ProjectRepo:   newPgxProjectRepository(pool),
		TimeEntryRepo: newPgxTimeEntryRepository(pool),
		TimesheetRepo: newPgxTimesheetRepository(pool),
		AuditRepo:     newPgxAuditLogRepository(pool),
	}
}
