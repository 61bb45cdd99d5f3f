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

// WindowSize bounds the retained attempt history per (user, problem) pair.
const WindowSize = 5

// AttemptWindow summarizes the retained attempts for one problem,
// newest-first.
type AttemptWindow struct {
	CorrectCount int              `json:"correct_count"`
	TotalCount   int              `json:"total_count"`
	Attempts     []*types.Attempt `json:"attempts"`
}

type AttemptService interface {
	RecordAttempt(ctx context.Context, userID uuid.UUID, problemID int, correct bool) (*types.Attempt, error)
	GetWindow(ctx context.Context, userID uuid.UUID, problemID int) (*AttemptWindow, error)
	GetAllWindows(ctx context.Context, userID uuid.UUID) (map[int]*AttemptWindow, error)
}

type attemptService struct {
	db              *gorm.DB
	log             *logger.Logger
	problemRepo     repos.ProblemRepo
	attemptRepo     repos.AttemptRepo
	userProblemRepo repos.UserProblemRepo
}

func NewAttemptService(
	db *gorm.DB,
	log *logger.Logger,
	problemRepo repos.ProblemRepo,
	attemptRepo repos.AttemptRepo,
	userProblemRepo repos.UserProblemRepo,
) AttemptService {
	serviceLog := log.With("service", "AttemptService")
	return &attemptService{
		db:              db,
		log:             serviceLog,
		problemRepo:     problemRepo,
		attemptRepo:     attemptRepo,
		userProblemRepo: userProblemRepo,
	}
}

// RecordAttempt appends an attempt row and, in the same transaction, prunes
// the pair back to the newest WindowSize rows, bumps the problem's lifetime
// counters, and on a correct answer raises the mastered flag and the user's
// ever-correct progress row. A mid-sequence failure rolls the whole request
// back, so the window can never stay over-sized and counters cannot drift
// from the log.
func (s *attemptService) RecordAttempt(ctx context.Context, userID uuid.UUID, problemID int, correct bool) (*types.Attempt, error) {
	const op = "AttemptService.RecordAttempt"

	if userID == uuid.Nil {
		return nil, domain.NewError(domain.CodeUnauthorized, op, "no resolved user", nil)
	}
	if problemID <= 0 {
		return nil, domain.NewError(domain.CodeValidation, op, "problem id must be a positive integer", nil)
	}

	var created *types.Attempt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		problem, err := s.problemRepo.GetByID(ctx, tx, problemID)
		if err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}
		if problem == nil {
			return domain.NewError(domain.CodeNotFound, op, "problem not found", nil)
		}

		attempt := &types.Attempt{
			UserID:    userID,
			ProblemID: problemID,
			IsCorrect: correct,
		}
		if _, err := s.attemptRepo.Create(ctx, tx, []*types.Attempt{attempt}); err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}

		if err := s.attemptRepo.PruneToNewest(ctx, tx, userID, problemID, WindowSize); err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}

		if err := s.problemRepo.IncrementCounter(ctx, tx, problemID, correct); err != nil {
			s.log.Warn("Problem counter update failed", "problem_id", problemID, "error", err)
			return domain.Wrap(domain.CodeRetryable, op, err)
		}

		if correct {
			if err := s.problemRepo.MarkMastered(ctx, tx, problemID); err != nil {
				return domain.Wrap(domain.CodeRetryable, op, err)
			}
			if err := s.userProblemRepo.MarkEverCorrect(ctx, tx, userID, problemID); err != nil {
				return domain.Wrap(domain.CodeRetryable, op, err)
			}
		}

		created = attempt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *attemptService) GetWindow(ctx context.Context, userID uuid.UUID, problemID int) (*AttemptWindow, error) {
	const op = "AttemptService.GetWindow"

	if userID == uuid.Nil {
		return nil, domain.NewError(domain.CodeUnauthorized, op, "no resolved user", nil)
	}
	if problemID <= 0 {
		return nil, domain.NewError(domain.CodeValidation, op, "problem id must be a positive integer", nil)
	}

	rows, err := s.attemptRepo.GetByUserAndProblem(ctx, nil, userID, problemID)
	if err != nil {
		return nil, domain.Wrap(domain.CodeRetryable, op, err)
	}
	return summarize(rows), nil
}

// GetAllWindows reconstructs every per-problem window for the user from one
// ordered scan. Groups arrive newest-first per problem, so keeping the first
// WindowSize rows of each group matches GetWindow exactly.
func (s *attemptService) GetAllWindows(ctx context.Context, userID uuid.UUID) (map[int]*AttemptWindow, error) {
	const op = "AttemptService.GetAllWindows"

	if userID == uuid.Nil {
		return nil, domain.NewError(domain.CodeUnauthorized, op, "no resolved user", nil)
	}

	rows, err := s.attemptRepo.GetByUser(ctx, nil, userID)
	if err != nil {
		return nil, domain.Wrap(domain.CodeRetryable, op, err)
	}

	grouped := make(map[int][]*types.Attempt)
	for _, row := range rows {
		if len(grouped[row.ProblemID]) >= WindowSize {
			continue
		}
		grouped[row.ProblemID] = append(grouped[row.ProblemID], row)
	}

	windows := make(map[int]*AttemptWindow, len(grouped))
	for problemID, attempts := range grouped {
		windows[problemID] = summarize(attempts)
	}
	return windows, nil
}

func summarize(rows []*types.Attempt) *AttemptWindow {
	if len(rows) > WindowSize {
		rows = rows[:WindowSize]
	}
	window := &AttemptWindow{
		TotalCount: len(rows),
		Attempts:   rows,
	}
	if window.Attempts == nil {
		window.Attempts = []*types.Attempt{}
	}
	for _, row := range rows {
		if row.IsCorrect {
			window.CorrectCount++
		}
	}
	return window
}
