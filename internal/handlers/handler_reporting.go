package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portssvc "github.com/worklog-app/timesheet_backend/internal/core/ports/services"
	"github.com/worklog-app/timesheet_backend/internal/dto"
	"github.com/worklog-app/timesheet_backend/internal/middleware"
)

// reportingHandler serves the aggregated hour views.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers all reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/my-hours", h.myHours)
		reports.GET("/team-hours", h.teamHours)
	}
}

func (h *reportingHandler) myHours(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	start, err := parseDateQuery(c, "start")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hours, err := h.reportingService.MyHours(c.Request.Context(), actorUserID, start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to aggregate own hours", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate hours"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectHoursResponses(hours))
}

func (h *reportingHandler) teamHours(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	leaderID, err := parseOptionalInt64Query(c, "leaderID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	targetLeaderID := actorUserID
	if leaderID != nil {
		targetLeaderID = *leaderID
	}

	kind := domain.ReviewKind(c.DefaultQuery("kind", string(domain.KindTimesheet)))

	start, err := parseDateQuery(c, "start")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.reportingService.TeamHours(c.Request.Context(), kind, targetLeaderID, start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to aggregate team hours", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate hours"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamHoursResponse(view, start.Format(dateLayout), end.Format(dateLayout)))
}
