package app

import (
	"github.com/gin-gonic/gin"

	"github.com/mathfacts/backend/internal/handlers"
	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/middleware"
	"github.com/mathfacts/backend/internal/server"
)

type appHandlers struct {
	auth      *handlers.AuthHandler
	user      *handlers.UserHandler
	problem   *handlers.ProblemHandler
	attempt   *handlers.AttemptHandler
	progress  *handlers.ProgressHandler
	level     *handlers.LevelHandler
	testScore *handlers.TestScoreHandler
}

func wireHandlers(s *appServices) *appHandlers {
	return &appHandlers{
		auth:      handlers.NewAuthHandler(s.auth),
		user:      handlers.NewUserHandler(s.user),
		problem:   handlers.NewProblemHandler(s.problem),
		attempt:   handlers.NewAttemptHandler(s.attempt),
		progress:  handlers.NewProgressHandler(s.progress),
		level:     handlers.NewLevelHandler(s.level),
		testScore: handlers.NewTestScoreHandler(s.testScore),
	}
}

func wireMiddleware(log *logger.Logger, s *appServices) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(log, s.auth)
}

func wireRouter(cfg *Config, am *middleware.AuthMiddleware, h *appHandlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Mode:             cfg.Mode,
		AllowedOrigins:   cfg.AllowedOrigins,
		AuthMiddleware:   am,
		AuthHandler:      h.auth,
		UserHandler:      h.user,
		ProblemHandler:   h.problem,
		AttemptHandler:   h.attempt,
		ProgressHandler:  h.progress,
		LevelHandler:     h.level,
		TestScoreHandler: h.testScore,
	})
}
