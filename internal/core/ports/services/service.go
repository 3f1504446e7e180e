package services

// ServiceContainer holds all service facades exposed to the handler layer.
type ServiceContainer struct {
	User         UserSvcFacade
	Project      ProjectSvcFacade
	TimeEntry    TimeEntrySvcFacade
	Timesheet    TimesheetSvcFacade
	Audit        AuditSvcFacade
	Reporting    ReportingSvcFacade
	TokenService TokenSvcFacade
}
