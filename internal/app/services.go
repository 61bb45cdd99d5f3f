package app

import (
	"gorm.io/gorm"

	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/services"
)

type appServices struct {
	auth      services.AuthService
	user      services.UserService
	problem   services.ProblemService
	attempt   services.AttemptService
	progress  services.ProgressService
	level     services.LevelService
	testScore services.TestScoreService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg *Config, r *appRepos) *appServices {
	return &appServices{
		auth:      services.NewAuthService(db, log, r.user, r.userToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		user:      services.NewUserService(db, log, r.user),
		problem:   services.NewProblemService(db, log, r.problem),
		attempt:   services.NewAttemptService(db, log, r.problem, r.attempt, r.userProblem),
		progress:  services.NewProgressService(db, log, r.userProblem),
		level:     services.NewLevelService(db, log, r.user, r.problem, r.userProblem),
		testScore: services.NewTestScoreService(db, log, r.testResult),
	}
}
