package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portsrepo "github.com/worklog-app/timesheet_backend/internal/core/ports/repositories"
	portssvc "github.com/worklog-app/timesheet_backend/internal/core/ports/services"
)

// auditService records and queries the append-only audit trail.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditLogRepository
	clock     Clock
}

// AuditServiceOption is a functional option for configuring the audit service.
type AuditServiceOption func(*auditService)

// WithAuditClock sets the clock used to stamp audit records.
func WithAuditClock(c Clock) AuditServiceOption {
	return func(s *auditService) {
		s.clock = c
	}
}

// NewAuditService creates a new audit trail service.
func NewAuditService(auditRepo portsrepo.AuditLogRepository, options ...AuditServiceOption) portssvc.AuditSvcFacade {
	svc := &auditService{
		auditRepo: auditRepo,
		clock:     SystemClock(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Log appends an audit record. The timestamp is always stamped here, never
// taken from the caller.
func (s *auditService) Log(ctx context.Context, actorUserID *int64, action, entityType string, entityID *int64, details *string) (*domain.AuditLog, error) {
	if action == "" {
		return nil, fmt.Errorf("%w: action is required", apperrors.ErrValidation)
	}
	if entityType == "" {
		return nil, fmt.Errorf("%w: entity type is required", apperrors.ErrValidation)
	}

	record := domain.AuditLog{
		ActorUserID: actorUserID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Details:     details,
		CreatedAt:   s.clock.Now(),
	}

	saved, err := s.auditRepo.SaveAuditLog(ctx, record)
	if err != nil {
		s.LogError(ctx, err, "Failed to save audit record", slog.String("action", action))
		return nil, fmt.Errorf("failed to save audit record: %w", err)
	}
	return saved, nil
}

// Query returns audit records matching the filter, newest first. An empty
// result is a valid outcome.
func (s *auditService) Query(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error) {
	records, err := s.auditRepo.FindAuditLogs(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to query audit records")
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	if records == nil {
		records = []domain.AuditLog{}
	}
	return records, nil
}
