package app

import (
	"gorm.io/gorm"

	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/repos"
)

type appRepos struct {
	user        repos.UserRepo
	userToken   repos.UserTokenRepo
	problem     repos.ProblemRepo
	attempt     repos.AttemptRepo
	userProblem repos.UserProblemRepo
	testResult  repos.TestResultRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) *appRepos {
	return &appRepos{
		user:        repos.NewUserRepo(db, log),
		userToken:   repos.NewUserTokenRepo(db, log),
		problem:     repos.NewProblemRepo(db, log),
		attempt:     repos.NewAttemptRepo(db, log),
		userProblem: repos.NewUserProblemRepo(db, log),
		testResult:  repos.NewTestResultRepo(db, log),
	}
}
