package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/mathfacts/backend/internal/domain"
	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/repos"
	"github.com/mathfacts/backend/internal/types"
)

type ProblemService interface {
	ListProblems(ctx context.Context) ([]*types.Problem, error)
}

type problemService struct {
	db          *gorm.DB
	log         *logger.Logger
	problemRepo repos.ProblemRepo
}

func NewProblemService(db *gorm.DB, log *logger.Logger, problemRepo repos.ProblemRepo) ProblemService {
	serviceLog := log.With("service", "ProblemService")
	return &problemService{db: db, log: serviceLog, problemRepo: problemRepo}
}

func (s *problemService) ListProblems(ctx context.Context) ([]*types.Problem, error) {
	const op = "ProblemService.ListProblems"

	problems, err := s.problemRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, domain.Wrap(domain.CodeRetryable, op, err)
	}
	return problems, nil
}
