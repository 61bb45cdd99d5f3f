package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mathfacts/backend/internal/domain"
	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/repos"
	"github.com/mathfacts/backend/internal/types"
)

type TestScoreService interface {
	RecordScore(ctx context.Context, userID uuid.UUID, score int) (*types.TestResult, error)
	BestScore(ctx context.Context, userID uuid.UUID) (*types.TestResult, error)
}

type testScoreService struct {
	db             *gorm.DB
	log            *logger.Logger
	testResultRepo repos.TestResultRepo
}

func NewTestScoreService(db *gorm.DB, log *logger.Logger, testResultRepo repos.TestResultRepo) TestScoreService {
	serviceLog := log.With("service", "TestScoreService")
	return &testScoreService{db: db, log: serviceLog, testResultRepo: testResultRepo}
}

func (s *testScoreService) RecordScore(ctx context.Context, userID uuid.UUID, score int) (*types.TestResult, error) {
	const op = "TestScoreService.RecordScore"

	if userID == uuid.Nil {
		return nil, domain.NewError(domain.CodeUnauthorized, op, "no resolved user", nil)
	}
	if score < 0 {
		return nil, domain.NewError(domain.CodeValidation, op, "score must not be negative", nil)
	}

	result := &types.TestResult{
		ID:     uuid.New(),
		UserID: userID,
		Score:  score,
	}
	if _, err := s.testResultRepo.Create(ctx, nil, []*types.TestResult{result}); err != nil {
		return nil, domain.Wrap(domain.CodeRetryable, op, err)
	}
	return result, nil
}

// BestScore returns nil when the user has not submitted any test yet.
func (s *testScoreService) BestScore(ctx context.Context, userID uuid.UUID) (*types.TestResult, error) {
	const op = "TestScoreService.BestScore"

	if userID == uuid.Nil {
		return nil, domain.NewError(domain.CodeUnauthorized, op, "no resolved user", nil)
	}

	best, err := s.testResultRepo.GetBestByUserID(ctx, nil, userID)
	if err != nil {
		return nil, domain.Wrap(domain.CodeRetryable, op, err)
	}
	return best, nil
}
