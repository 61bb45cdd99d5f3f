package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/types"
)

type ProblemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, problems []*types.Problem) ([]*types.Problem, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Problem, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*types.Problem, error)
	GetByMaxOperand(ctx context.Context, tx *gorm.DB, max int) ([]*types.Problem, error)
	GetAboveOperand(ctx context.Context, tx *gorm.DB, min int) ([]*types.Problem, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	IncrementCounter(ctx context.Context, tx *gorm.DB, id int, correct bool) error
	MarkMastered(ctx context.Context, tx *gorm.DB, id int) error
}

type problemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProblemRepo(db *gorm.DB, baseLog *logger.Logger) ProblemRepo {
	repoLog := baseLog.With("repo", "ProblemRepo")
	return &problemRepo{db: db, log: repoLog}
}

func (r *problemRepo) Create(ctx context.Context, tx *gorm.DB, problems []*types.Problem) ([]*types.Problem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(problems) == 0 {
		return []*types.Problem{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&problems).Error; err != nil {
		return nil, err
	}
	return problems, nil
}

func (r *problemRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Problem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Problem
	if err := transaction.WithContext(ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByID returns nil (no error) when the problem does not exist.
func (r *problemRepo) GetByID(ctx context.Context, tx *gorm.DB, id int) (*types.Problem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Problem
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *problemRepo) GetByMaxOperand(ctx context.Context, tx *gorm.DB, max int) ([]*types.Problem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Problem
	if err := transaction.WithContext(ctx).
		Where("operand_a <= ? AND operand_b <= ?", max, max).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *problemRepo) GetAboveOperand(ctx context.Context, tx *gorm.DB, min int) ([]*types.Problem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Problem
	if err := transaction.WithContext(ctx).
		Where("operand_a > ? OR operand_b > ?", min, min).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *problemRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Problem{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *problemRepo) IncrementCounter(ctx context.Context, tx *gorm.DB, id int, correct bool) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	column := "incorrect_count"
	if correct {
		column = "correct_count"
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Problem{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", 1)).Error; err != nil {
		return err
	}
	return nil
}

// MarkMastered is first-correct-wins: the flag is only ever raised.
func (r *problemRepo) MarkMastered(ctx context.Context, tx *gorm.DB, id int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Problem{}).
		Where("id = ?", id).
		Update("mastered", true).Error; err != nil {
		return err
	}
	return nil
}
