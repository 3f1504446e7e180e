package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portssvc "github.com/worklog-app/timesheet_backend/internal/core/ports/services"
	"github.com/worklog-app/timesheet_backend/internal/core/services"
	"github.com/worklog-app/timesheet_backend/internal/dto"
	"github.com/worklog-app/timesheet_backend/internal/middleware"
)

// timesheetHandler serves the review workflow for one review kind. The
// same handler backs both the timesheet and monthly review route groups.
type timesheetHandler struct {
	timesheetService portssvc.TimesheetSvcFacade
	kind             domain.ReviewKind
}

func newTimesheetHandler(ts portssvc.TimesheetSvcFacade, kind domain.ReviewKind) *timesheetHandler {
	return &timesheetHandler{
		timesheetService: ts,
		kind:             kind,
	}
}

// registerTimesheetRoutes registers the workflow routes for both review
// kinds.
func registerTimesheetRoutes(rg *gin.RouterGroup, timesheetService portssvc.TimesheetSvcFacade) {
	registerReviewKindRoutes(rg.Group("/timesheets"), newTimesheetHandler(timesheetService, domain.KindTimesheet))
	registerReviewKindRoutes(rg.Group("/monthly-reviews"), newTimesheetHandler(timesheetService, domain.KindMonthlyReview))
}

func registerReviewKindRoutes(rg *gin.RouterGroup, h *timesheetHandler) {
	rg.POST("", h.create)
	rg.GET("/by-period", h.getByPeriod)
	rg.GET("/pending", h.listPending)
	rg.POST("/:id/decision", h.decide)
}

func (h *timesheetHandler) create(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.UserID == 0 {
		req.UserID = actorUserID
	}

	sheet, err := h.timesheetService.Create(c.Request.Context(), h.kind, req.UserID, req.PeriodStart, req.PeriodEnd, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrDuplicatePeriod):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoEntriesInPeriod):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create timesheet", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create timesheet"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTimesheetResponse(sheet))
}

func (h *timesheetHandler) getByPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userID, err := parseOptionalInt64Query(c, "userID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	targetUserID := actorUserID
	if userID != nil {
		targetUserID = *userID
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

	sheet, err := h.timesheetService.GetByUserAndPeriod(c.Request.Context(), h.kind, targetUserID, start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to find timesheet by period", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve timesheet"})
		return
	}
	if sheet == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No timesheet exists for this period"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTimesheetResponse(sheet))
}

func (h *timesheetHandler) listPending(c *gin.Context) {
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

	details, err := h.timesheetService.ListPendingForLeaderPeriod(c.Request.Context(), h.kind, targetLeaderID, start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list pending entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryDetailResponses(details))
}

func (h *timesheetHandler) decide(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := middleware.GetUserIDFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	timesheetID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.DecideTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	// Zero is the explicit "unspecified" sentinel for the decider.
	var deciderID *int64
	if req.DeciderID != 0 {
		deciderID = &req.DeciderID
	}

	sheet, err := h.timesheetService.Decide(c.Request.Context(), timesheetID, req.StatusCode, req.Comment, deciderID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, services.ErrInvalidStatusCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Timesheet not found"})
		default:
			logger.Error("Failed to record decision", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record decision"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTimesheetResponse(sheet))
}
