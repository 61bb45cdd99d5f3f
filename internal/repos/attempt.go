package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/types"
)

type AttemptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attempts []*types.Attempt) ([]*types.Attempt, error)
	GetByUserAndProblem(ctx context.Context, tx *gorm.DB, userID uuid.UUID, problemID int) ([]*types.Attempt, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Attempt, error)
	PruneToNewest(ctx context.Context, tx *gorm.DB, userID uuid.UUID, problemID int, keep int) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error
}

type attemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttemptRepo(db *gorm.DB, baseLog *logger.Logger) AttemptRepo {
	repoLog := baseLog.With("repo", "AttemptRepo")
	return &attemptRepo{db: db, log: repoLog}
}

func (r *attemptRepo) Create(ctx context.Context, tx *gorm.DB, attempts []*types.Attempt) ([]*types.Attempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(attempts) == 0 {
		return []*types.Attempt{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

// GetByUserAndProblem returns attempts newest-first. Row id breaks ties
// between equal timestamps so ordering stays deterministic.
func (r *attemptRepo) GetByUserAndProblem(ctx context.Context, tx *gorm.DB, userID uuid.UUID, problemID int) ([]*types.Attempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Attempt
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND problem_id = ?", userID, problemID).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByUser returns all attempts for a user grouped by problem, each group
// newest-first, for bulk window reconstruction.
func (r *attemptRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Attempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Attempt
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("problem_id ASC, created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// PruneToNewest deletes every attempt for (user, problem) beyond the newest
// `keep` rows. Safe to run redundantly; a no-op when the pair is within the
// bound.
func (r *attemptRepo) PruneToNewest(ctx context.Context, tx *gorm.DB, userID uuid.UUID, problemID int, keep int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil || keep < 0 {
		return nil
	}

	rows, err := r.GetByUserAndProblem(ctx, transaction, userID, problemID)
	if err != nil {
		return err
	}
	if len(rows) <= keep {
		return nil
	}

	stale := make([]uint, 0, len(rows)-keep)
	for _, row := range rows[keep:] {
		stale = append(stale, row.ID)
	}
	return r.FullDeleteByIDs(ctx, transaction, stale)
}

func (r *attemptRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Attempt{}).Error; err != nil {
		return err
	}
	return nil
}
