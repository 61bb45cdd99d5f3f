package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mathfacts/backend/internal/services"
)

type AttemptHandler struct {
	attemptService services.AttemptService
}

func NewAttemptHandler(attemptService services.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// POST /api/problems/:id/attempts
func (ah *AttemptHandler) RecordAttempt(c *gin.Context) {
	problemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "problem id must be an integer"})
		return
	}
	var req struct {
		Correct *bool `json:"correct"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Correct == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must include a boolean 'correct' field"})
		return
	}
	if _, err := ah.attemptService.RecordAttempt(c.Request.Context(), currentUserID(c), problemID, *req.Correct); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// GET /api/problems/:id/window
func (ah *AttemptHandler) GetWindow(c *gin.Context) {
	problemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "problem id must be an integer"})
		return
	}
	window, err := ah.attemptService.GetWindow(c.Request.Context(), currentUserID(c), problemID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, window)
}

// GET /api/windows
func (ah *AttemptHandler) GetAllWindows(c *gin.Context) {
	windows, err := ah.attemptService.GetAllWindows(c.Request.Context(), currentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"summaries": windows})
}
