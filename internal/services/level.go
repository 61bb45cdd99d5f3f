package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mathfacts/backend/internal/domain"
	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/repos"
	"github.com/mathfacts/backend/internal/types"
)

// LevelOneMaxOperand splits the catalog: facts with both operands at or below
// it belong to level 1, everything else unlocks at level 2.
const LevelOneMaxOperand = 5

// LevelStatus reports a user's completion of one level's problem set.
type LevelStatus struct {
	Level        int  `json:"level"`
	Total        int  `json:"total"`
	CorrectCount int  `json:"correct_count"`
	AllCorrect   bool `json:"all_correct"`
}

type LevelService interface {
	Status(ctx context.Context, userID uuid.UUID, level int) (*LevelStatus, error)
	CanAdvance(ctx context.Context, userID uuid.UUID, targetLevel int) (bool, error)
	Advance(ctx context.Context, userID uuid.UUID, targetLevel int) (*types.User, error)
}

type levelService struct {
	db              *gorm.DB
	log             *logger.Logger
	userRepo        repos.UserRepo
	problemRepo     repos.ProblemRepo
	userProblemRepo repos.UserProblemRepo
}

func NewLevelService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	problemRepo repos.ProblemRepo,
	userProblemRepo repos.UserProblemRepo,
) LevelService {
	serviceLog := log.With("service", "LevelService")
	return &levelService{
		db:              db,
		log:             serviceLog,
		userRepo:        userRepo,
		problemRepo:     problemRepo,
		userProblemRepo: userProblemRepo,
	}
}

func (s *levelService) Status(ctx context.Context, userID uuid.UUID, level int) (*LevelStatus, error) {
	const op = "LevelService.Status"

	if userID == uuid.Nil {
		return nil, domain.NewError(domain.CodeUnauthorized, op, "no resolved user", nil)
	}

	problems, err := s.levelProblems(ctx, nil, level)
	if err != nil {
		return nil, domain.Wrap(domain.CodeValidation, op, err)
	}

	correct, err := s.countCorrect(ctx, nil, userID, problems)
	if err != nil {
		return nil, domain.Wrap(domain.CodeRetryable, op, err)
	}

	return &LevelStatus{
		Level:        level,
		Total:        len(problems),
		CorrectCount: correct,
		AllCorrect:   len(problems) > 0 && correct == len(problems),
	}, nil
}

// CanAdvance is true iff every level-1 problem has an ever-correct progress
// row for the user. Only the 1->2 transition is defined.
func (s *levelService) CanAdvance(ctx context.Context, userID uuid.UUID, targetLevel int) (bool, error) {
	const op = "LevelService.CanAdvance"

	if targetLevel != types.LevelTwo {
		return false, nil
	}
	return s.gateOpen(ctx, nil, userID, op)
}

// Advance re-validates the gate server-side inside the transaction that flips
// the level; a cached client-side gate view is never trusted. Requesting the
// level the user already holds is a no-op returning the current state.
func (s *levelService) Advance(ctx context.Context, userID uuid.UUID, targetLevel int) (*types.User, error) {
	const op = "LevelService.Advance"

	if userID == uuid.Nil {
		return nil, domain.NewError(domain.CodeUnauthorized, op, "no resolved user", nil)
	}
	if targetLevel != types.LevelOne && targetLevel != types.LevelTwo {
		return nil, domain.NewError(domain.CodeValidation, op, fmt.Sprintf("invalid level %d", targetLevel), nil)
	}

	var updated *types.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, err := s.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
		if err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}
		if len(users) == 0 {
			return domain.NewError(domain.CodeNotFound, op, "user not found", nil)
		}
		user := users[0]

		if user.Level == targetLevel {
			updated = user
			return nil
		}
		if user.Level != types.LevelOne || targetLevel != types.LevelTwo {
			return domain.NewError(domain.CodeValidation, op,
				fmt.Sprintf("no transition from level %d to level %d", user.Level, targetLevel), nil)
		}

		open, err := s.gateOpen(ctx, tx, userID, op)
		if err != nil {
			return err
		}
		if !open {
			return domain.NewError(domain.CodePreconditionFailed, op,
				"level 1 is not complete: every level-1 problem must be answered correctly at least once", nil)
		}

		if err := s.userRepo.UpdateLevel(ctx, tx, userID, targetLevel); err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}
		user.Level = targetLevel
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *levelService) gateOpen(ctx context.Context, tx *gorm.DB, userID uuid.UUID, op string) (bool, error) {
	problems, err := s.problemRepo.GetByMaxOperand(ctx, tx, LevelOneMaxOperand)
	if err != nil {
		return false, domain.Wrap(domain.CodeRetryable, op, err)
	}
	correct, err := s.countCorrect(ctx, tx, userID, problems)
	if err != nil {
		return false, domain.Wrap(domain.CodeRetryable, op, err)
	}
	return len(problems) > 0 && correct == len(problems), nil
}

func (s *levelService) levelProblems(ctx context.Context, tx *gorm.DB, level int) ([]*types.Problem, error) {
	switch level {
	case types.LevelOne:
		return s.problemRepo.GetByMaxOperand(ctx, tx, LevelOneMaxOperand)
	case types.LevelTwo:
		return s.problemRepo.GetAboveOperand(ctx, tx, LevelOneMaxOperand)
	default:
		return nil, fmt.Errorf("invalid level %d", level)
	}
}

func (s *levelService) countCorrect(ctx context.Context, tx *gorm.DB, userID uuid.UUID, problems []*types.Problem) (int, error) {
	if len(problems) == 0 {
		return 0, nil
	}
	ids := make([]int, 0, len(problems))
	for _, p := range problems {
		ids = append(ids, p.ID)
	}
	rows, err := s.userProblemRepo.GetByUserAndProblemIDs(ctx, tx, userID, ids)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
