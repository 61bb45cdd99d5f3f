package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/types"
)

type UserProblemRepo interface {
	MarkEverCorrect(ctx context.Context, tx *gorm.DB, userID uuid.UUID, problemID int) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserProblem, error)
	GetByUserAndProblemIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, problemIDs []int) ([]*types.UserProblem, error)
}

type userProblemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserProblemRepo(db *gorm.DB, baseLog *logger.Logger) UserProblemRepo {
	repoLog := baseLog.With("repo", "UserProblemRepo")
	return &userProblemRepo{db: db, log: repoLog}
}

// MarkEverCorrect upserts by unique (user_id, problem_id) and only ever sets
// ever_correct to true, so repeated calls are idempotent and the flag never
// downgrades. There is deliberately no operation that clears it.
func (r *userProblemRepo) MarkEverCorrect(ctx context.Context, tx *gorm.DB, userID uuid.UUID, problemID int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil {
		return nil
	}

	row := &types.UserProblem{
		ID:          uuid.New(),
		UserID:      userID,
		ProblemID:   problemID,
		EverCorrect: true,
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND problem_id = ?", userID, problemID).
		Assign(map[string]interface{}{"ever_correct": true}).
		FirstOrCreate(row).Error; err != nil {
		return err
	}
	return nil
}

func (r *userProblemRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserProblem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserProblem
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND ever_correct = ?", userID, true).
		Order("problem_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userProblemRepo) GetByUserAndProblemIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, problemIDs []int) ([]*types.UserProblem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserProblem
	if userID == uuid.Nil || len(problemIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND problem_id IN ? AND ever_correct = ?", userID, problemIDs, true).
		Order("problem_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
