package dto

import (
	"time"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// AuditLogResponse is the API representation of an audit record.
type AuditLogResponse struct {
	AuditID     int64     `json:"auditID"`
	ActorUserID *int64    `json:"actorUserID,omitempty"`
	Action      string    `json:"action"`
	EntityType  string    `json:"entityType"`
	EntityID    *int64    `json:"entityID,omitempty"`
	Details     *string   `json:"details,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToAuditLogResponses converts a slice of domain audit records.
func ToAuditLogResponses(records []domain.AuditLog) []AuditLogResponse {
	responses := make([]AuditLogResponse, len(records))
	for i, r := range records {
		responses[i] = AuditLogResponse{
			AuditID:     r.AuditID,
			ActorUserID: r.ActorUserID,
			Action:      r.Action,
			EntityType:  r.EntityType,
			EntityID:    r.EntityID,
			Details:     r.Details,
			CreatedAt:   r.CreatedAt,
		}
	}
	return responses
}
