package repos_test

import (
	"context"
	"testing"

	"github.com/mathfacts/backend/internal/repos"
	"github.com/mathfacts/backend/internal/repos/testutil"
)

func TestProblemRepoOperandFilters(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewProblemRepo(db, log)
	ctx := context.Background()

	seedProblem(t, db, 1, 2, 3)
	seedProblem(t, db, 2, 5, 5)
	seedProblem(t, db, 3, 6, 2)
	seedProblem(t, db, 4, 4, 9)

	lower, err := repo.GetByMaxOperand(ctx, nil, 5)
	if err != nil {
		t.Fatalf("GetByMaxOperand: %v", err)
	}
	if len(lower) != 2 || lower[0].ID != 1 || lower[1].ID != 2 {
		t.Fatalf("unexpected lower set: %+v", lower)
	}

	upper, err := repo.GetAboveOperand(ctx, nil, 5)
	if err != nil {
		t.Fatalf("GetAboveOperand: %v", err)
	}
	if len(upper) != 2 || upper[0].ID != 3 || upper[1].ID != 4 {
		t.Fatalf("unexpected upper set: %+v", upper)
	}

	count, err := repo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 4 {
		t.Fatalf("got count %d, want 4", count)
	}
}

func TestProblemRepoIncrementCounter(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewProblemRepo(db, log)
	ctx := context.Background()

	seedProblem(t, db, 1, 1, 1)

	if err := repo.IncrementCounter(ctx, nil, 1, true); err != nil {
		t.Fatalf("IncrementCounter(correct): %v", err)
	}
	if err := repo.IncrementCounter(ctx, nil, 1, true); err != nil {
		t.Fatalf("IncrementCounter(correct): %v", err)
	}
	if err := repo.IncrementCounter(ctx, nil, 1, false); err != nil {
		t.Fatalf("IncrementCounter(incorrect): %v", err)
	}

	problem, err := repo.GetByID(ctx, nil, 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if problem == nil {
		t.Fatalf("problem 1 missing")
	}
	if problem.CorrectCount != 2 || problem.IncorrectCount != 1 {
		t.Fatalf("got counters %d/%d, want 2/1", problem.CorrectCount, problem.IncorrectCount)
	}
}

func TestProblemRepoMarkMastered(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewProblemRepo(db, log)
	ctx := context.Background()

	seedProblem(t, db, 1, 1, 1)

	if err := repo.MarkMastered(ctx, nil, 1); err != nil {
		t.Fatalf("MarkMastered: %v", err)
	}
	if err := repo.MarkMastered(ctx, nil, 1); err != nil {
		t.Fatalf("MarkMastered repeat: %v", err)
	}

	problem, err := repo.GetByID(ctx, nil, 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if problem == nil || !problem.Mastered {
		t.Fatalf("mastered flag not raised: %+v", problem)
	}
}

func TestProblemRepoGetByIDMissing(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewProblemRepo(db, log)
	ctx := context.Background()

	problem, err := repo.GetByID(ctx, nil, 404)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if problem != nil {
		t.Fatalf("expected nil for missing problem, got %+v", problem)
	}
}
