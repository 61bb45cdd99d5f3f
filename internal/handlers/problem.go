package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mathfacts/backend/internal/services"
)

type ProblemHandler struct {
	problemService services.ProblemService
}

func NewProblemHandler(problemService services.ProblemService) *ProblemHandler {
	return &ProblemHandler{problemService: problemService}
}

// GET /api/problems
func (ph *ProblemHandler) ListProblems(c *gin.Context) {
	problems, err := ph.problemService.ListProblems(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"problems": problems})
}
