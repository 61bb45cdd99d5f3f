package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mathfacts/backend/internal/domain"
	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/repos"
)

type ProgressService interface {
	GetProgress(ctx context.Context, userID uuid.UUID) ([]int, error)
}

type progressService struct {
	db              *gorm.DB
	log             *logger.Logger
	userProblemRepo repos.UserProblemRepo
}

func NewProgressService(db *gorm.DB, log *logger.Logger, userProblemRepo repos.UserProblemRepo) ProgressService {
	serviceLog := log.With("service", "ProgressService")
	return &progressService{db: db, log: serviceLog, userProblemRepo: userProblemRepo}
}

// GetProgress returns the ids of every problem the user has ever answered
// correctly, ascending. The set only ever grows: rows are written by upsert
// with ever_correct=true and nothing clears them.
func (s *progressService) GetProgress(ctx context.Context, userID uuid.UUID) ([]int, error) {
	const op = "ProgressService.GetProgress"

	if userID == uuid.Nil {
		return nil, domain.NewError(domain.CodeUnauthorized, op, "no resolved user", nil)
	}

	rows, err := s.userProblemRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, domain.Wrap(domain.CodeRetryable, op, err)
	}

	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProblemID)
	}
	return ids, nil
}
