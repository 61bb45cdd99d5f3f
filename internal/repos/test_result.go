package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/types"
)

type TestResultRepo interface {
	Create(ctx context.Context, tx *gorm.DB, results []*types.TestResult) ([]*types.TestResult, error)
	GetBestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.TestResult, error)
}

type testResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTestResultRepo(db *gorm.DB, baseLog *logger.Logger) TestResultRepo {
	repoLog := baseLog.With("repo", "TestResultRepo")
	return &testResultRepo{db: db, log: repoLog}
}

func (r *testResultRepo) Create(ctx context.Context, tx *gorm.DB, results []*types.TestResult) ([]*types.TestResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(results) == 0 {
		return []*types.TestResult{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetBestByUserID returns nil (no error) when the user has no scores yet.
func (r *testResultRepo) GetBestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.TestResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil {
		return nil, nil
	}

	var result types.TestResult
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score DESC, created_at ASC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
