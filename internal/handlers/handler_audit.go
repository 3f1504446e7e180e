package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portssvc "github.com/worklog-app/timesheet_backend/internal/core/ports/services"
	"github.com/worklog-app/timesheet_backend/internal/dto"
	"github.com/worklog-app/timesheet_backend/internal/middleware"
)

// auditHandler serves the audit trail query endpoint.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{
		auditService: as,
	}
}

// registerAuditRoutes registers the audit trail routes.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	rg.GET("/audit-logs", h.queryAuditLogs)
}

func (h *auditHandler) queryAuditLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var filter domain.AuditLogFilter
	if v := c.Query("entityType"); v != "" {
		filter.EntityType = &v
	}
	if v := c.Query("action"); v != "" {
		filter.Action = &v
	}

	actorUserID, err := parseOptionalInt64Query(c, "actorUserID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter.ActorUserID = actorUserID

	if v := c.Query("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be an RFC 3339 timestamp"})
			return
		}
		filter.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be an RFC 3339 timestamp"})
			return
		}
		filter.To = &to
	}

	records, err := h.auditService.Query(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to query audit records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query audit records"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAuditLogResponses(records))
}
