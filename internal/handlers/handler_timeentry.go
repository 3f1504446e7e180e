package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	portssvc "github.com/worklog-app/timesheet_backend/internal/core/ports/services"
	"github.com/worklog-app/timesheet_backend/internal/core/services"
	"github.com/worklog-app/timesheet_backend/internal/dto"
	"github.com/worklog-app/timesheet_backend/internal/middleware"
)

// timeEntryHandler handles HTTP requests related to time entries.
type timeEntryHandler struct {
	entryService portssvc.TimeEntrySvcFacade
}

func newTimeEntryHandler(es portssvc.TimeEntrySvcFacade) *timeEntryHandler {
	return &timeEntryHandler{
		entryService: es,
	}
}

// registerTimeEntryRoutes registers time entry routes, including the
// per-timesheet bulk replacement path.
func registerTimeEntryRoutes(rg *gin.RouterGroup, entryService portssvc.TimeEntrySvcFacade) {
	h := newTimeEntryHandler(entryService)

	entries := rg.Group("/time-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
	}

	timesheets := rg.Group("/timesheets")
	{
		timesheets.GET("/:id/entries", h.listEntriesForTimesheet)
		timesheets.PUT("/:id/entries", h.replaceEntriesForTimesheet)
	}
}

func (h *timeEntryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.UserID == 0 {
		req.UserID = actorUserID
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), &req, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, services.ErrHoursOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create time entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create time entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTimeEntryResponse(entry))
}

func (h *timeEntryHandler) listEntries(c *gin.Context) {
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

	entries, err := h.entryService.ListForUser(c.Request.Context(), targetUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list time entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list time entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponses(entries))
}

func (h *timeEntryHandler) listEntriesForTimesheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	timesheetID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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

	entries, err := h.entryService.ListForTimesheet(c.Request.Context(), targetUserID, timesheetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list timesheet entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list timesheet entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponses(entries))
}

func (h *timeEntryHandler) replaceEntriesForTimesheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	timesheetID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.ReplaceEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.entryService.ReplaceForTimesheet(c.Request.Context(), timesheetID, req.Entries, actorUserID); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to replace timesheet entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace timesheet entries"})
		return
	}

	c.Status(http.StatusNoContent)
}
