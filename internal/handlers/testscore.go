package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mathfacts/backend/internal/services"
)

type TestScoreHandler struct {
	testScoreService services.TestScoreService
}

func NewTestScoreHandler(testScoreService services.TestScoreService) *TestScoreHandler {
	return &TestScoreHandler{testScoreService: testScoreService}
}

// POST /api/tests/score
func (th *TestScoreHandler) RecordScore(c *gin.Context) {
	var req struct {
		Score *int `json:"score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Score == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must include an integer 'score' field"})
		return
	}
	if _, err := th.testScoreService.RecordScore(c.Request.Context(), currentUserID(c), *req.Score); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// GET /api/tests/best
func (th *TestScoreHandler) GetBestScore(c *gin.Context) {
	best, err := th.testScoreService.BestScore(c.Request.Context(), currentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"best": best})
}
