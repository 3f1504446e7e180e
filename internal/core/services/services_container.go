package services

import (
	"time"

	portsrepo "github.com/worklog-app/timesheet_backend/internal/core/ports/repositories"
	portssvc "github.com/worklog-app/timesheet_backend/internal/core/ports/services"
)

// NewServiceContainer wires all services against the repository provider.
// The audit service is constructed first because the workflow services
// record through it.
func NewServiceContainer(provider *portsrepo.RepositoryProvider, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) *portssvc.ServiceContainer {
	auditSvc := NewAuditService(provider.AuditRepo)
	timesheetSvc := NewTimesheetService(provider.TimesheetRepo, provider.TimeEntryRepo, auditSvc)

	return &portssvc.ServiceContainer{
		User:         NewUserService(provider.UserRepo),
		Project:      NewProjectService(provider.ProjectRepo),
		TimeEntry:    NewTimeEntryService(provider.TimeEntryRepo, provider.ProjectRepo, auditSvc),
		Timesheet:    timesheetSvc,
		Audit:        auditSvc,
		Reporting:    NewReportingService(timesheetSvc, provider.TimeEntryRepo),
		TokenService: NewTokenService(jwtSecret, jwtExpiry, jwtIssuer),
	}
}
