package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mathfacts/backend/internal/handlers"
	"github.com/mathfacts/backend/internal/middleware"
)

type RouterConfig struct {
	Mode             string
	AllowedOrigins   []string
	AuthMiddleware   *middleware.AuthMiddleware
	AuthHandler      *handlers.AuthHandler
	UserHandler      *handlers.UserHandler
	ProblemHandler   *handlers.ProblemHandler
	AttemptHandler   *handlers.AttemptHandler
	ProgressHandler  *handlers.ProgressHandler
	LevelHandler     *handlers.LevelHandler
	TestScoreHandler *handlers.TestScoreHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	{
		api.POST("/refresh", cfg.AuthHandler.Refresh)
		api.POST("/logout", cfg.AuthHandler.Logout)

		api.GET("/user", cfg.UserHandler.GetMe)
		api.POST("/user/level", cfg.LevelHandler.RequestLevelChange)

		api.GET("/problems", cfg.ProblemHandler.ListProblems)
		api.POST("/problems/:id/attempts", cfg.AttemptHandler.RecordAttempt)
		api.GET("/problems/:id/window", cfg.AttemptHandler.GetWindow)
		api.GET("/windows", cfg.AttemptHandler.GetAllWindows)

		api.GET("/progress", cfg.ProgressHandler.GetProgress)
		api.GET("/levels/:level", cfg.LevelHandler.GetLevelStatus)

		api.POST("/tests/score", cfg.TestScoreHandler.RecordScore)
		api.GET("/tests/best", cfg.TestScoreHandler.GetBestScore)
	}

	return router
}
