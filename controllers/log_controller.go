package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warbee0712/lunajoy/models"
	"github.com/warbee0712/lunajoy/services"
)

type LogController struct {
	Logs *services.LogService
}

func NewLogController(logs *services.LogService) *LogController {
	return &LogController{Logs: logs}
}

// SubmitLog handles POST /log.
func (lc *LogController) SubmitLog(c *gin.Context) {
	var input services.LogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logID, err := lc.Logs.SubmitLog(&input)
	if err != nil {
		var missing *models.MissingFieldError
		switch {
		case errors.As(err, &missing):
			c.JSON(http.StatusBadRequest, gin.H{"error": missing.Error()})
		case errors.Is(err, models.ErrUnknownUser):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown user"})
		case errors.Is(err, models.ErrInvalidSleepQuality):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("failed to save log", "userId", input.UserID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save log"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Log submitted successfully", "logId": logID})
}

// GetLogs handles GET /logs/:userId.
func (lc *LogController) GetLogs(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user ID in request"})
		return
	}

	logs, err := lc.Logs.GetLogsByUser(userID)
	if err != nil {
		if errors.Is(err, models.ErrNoLogs) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No logs found for this user"})
			return
		}
		slog.Error("failed to fetch logs", "userId", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// GetLogsByRange handles GET /logs/:userId/range?from=...&to=...
func (lc *LogController) GetLogsByRange(c *gin.Context) {
	userID := c.Param("userId")
	from := c.Query("from")
	to := c.Query("to")
	if userID == "" || from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId, from and to are required"})
		return
	}

	logs, err := lc.Logs.GetLogsByDateRange(userID, from, to)
	if err != nil {
		slog.Error("failed to fetch logs by range", "userId", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
