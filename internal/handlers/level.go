package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mathfacts/backend/internal/services"
)

type LevelHandler struct {
	levelService services.LevelService
}

func NewLevelHandler(levelService services.LevelService) *LevelHandler {
	return &LevelHandler{levelService: levelService}
}

// GET /api/levels/:level
func (lh *LevelHandler) GetLevelStatus(c *gin.Context) {
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "level must be an integer"})
		return
	}
	status, err := lh.levelService.Status(c.Request.Context(), currentUserID(c), level)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, status)
}

// POST /api/user/level
func (lh *LevelHandler) RequestLevelChange(c *gin.Context) {
	var req struct {
		Level int `json:"level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := lh.levelService.Advance(c.Request.Context(), currentUserID(c), req.Level)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"user": user})
}
