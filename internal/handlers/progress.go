package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mathfacts/backend/internal/services"
)

type ProgressHandler struct {
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// GET /api/progress
func (ph *ProgressHandler) GetProgress(c *gin.Context) {
	ids, err := ph.progressService.GetProgress(c.Request.Context(), currentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"problem_ids": ids, "count": len(ids)})
}
