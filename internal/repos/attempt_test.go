package repos_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mathfacts/backend/internal/repos"
	"github.com/mathfacts/backend/internal/repos/testutil"
	"github.com/mathfacts/backend/internal/types"
)

func seedProblem(t *testing.T, db *gorm.DB, id, a, b int) {
	t.Helper()
	problem := &types.Problem{
		ID:       id,
		Text:     "seed",
		OperandA: a,
		OperandB: b,
		Answer:   a * b,
	}
	if err := db.Create(problem).Error; err != nil {
		t.Fatalf("seeding problem %d: %v", id, err)
	}
}

func createAttempt(t *testing.T, repo repos.AttemptRepo, userID uuid.UUID, problemID int, correct bool, at time.Time) *types.Attempt {
	t.Helper()
	attempt := &types.Attempt{
		UserID:    userID,
		ProblemID: problemID,
		IsCorrect: correct,
		CreatedAt: at,
	}
	created, err := repo.Create(context.Background(), nil, []*types.Attempt{attempt})
	if err != nil {
		t.Fatalf("creating attempt: %v", err)
	}
	return created[0]
}

func TestAttemptRepoOrderNewestFirst(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewAttemptRepo(db, log)
	ctx := context.Background()

	userID := uuid.New()
	seedProblem(t, db, 1, 1, 1)

	base := time.Now().Truncate(time.Second)
	createAttempt(t, repo, userID, 1, true, base)
	createAttempt(t, repo, userID, 1, false, base.Add(time.Second))
	createAttempt(t, repo, userID, 1, true, base.Add(2*time.Second))

	rows, err := repo.GetByUserAndProblem(ctx, nil, userID, 1)
	if err != nil {
		t.Fatalf("GetByUserAndProblem: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].CreatedAt.After(rows[i-1].CreatedAt) {
			t.Fatalf("rows not newest-first at index %d", i)
		}
	}
	if !rows[0].IsCorrect || rows[1].IsCorrect || !rows[2].IsCorrect {
		t.Fatalf("unexpected correctness order: %v %v %v", rows[0].IsCorrect, rows[1].IsCorrect, rows[2].IsCorrect)
	}
}

func TestAttemptRepoOrderBreaksTiesByID(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewAttemptRepo(db, log)
	ctx := context.Background()

	userID := uuid.New()
	seedProblem(t, db, 1, 1, 1)

	ts := time.Now().Truncate(time.Second)
	first := createAttempt(t, repo, userID, 1, true, ts)
	second := createAttempt(t, repo, userID, 1, false, ts)

	rows, err := repo.GetByUserAndProblem(ctx, nil, userID, 1)
	if err != nil {
		t.Fatalf("GetByUserAndProblem: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].ID != second.ID || rows[1].ID != first.ID {
		t.Fatalf("equal timestamps not ordered by id desc: got %d, %d", rows[0].ID, rows[1].ID)
	}
}

func TestAttemptRepoPruneToNewest(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewAttemptRepo(db, log)
	ctx := context.Background()

	userID := uuid.New()
	seedProblem(t, db, 1, 1, 1)

	base := time.Now().Truncate(time.Second)
	ids := make([]uint, 0, 7)
	for i := 0; i < 7; i++ {
		row := createAttempt(t, repo, userID, 1, i%2 == 0, base.Add(time.Duration(i)*time.Second))
		ids = append(ids, row.ID)
	}

	if err := repo.PruneToNewest(ctx, nil, userID, 1, 5); err != nil {
		t.Fatalf("PruneToNewest: %v", err)
	}

	rows, err := repo.GetByUserAndProblem(ctx, nil, userID, 1)
	if err != nil {
		t.Fatalf("GetByUserAndProblem: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d rows after prune, want 5", len(rows))
	}
	// the two oldest rows must be the ones dropped
	for _, row := range rows {
		if row.ID == ids[0] || row.ID == ids[1] {
			t.Fatalf("oldest attempt %d survived the prune", row.ID)
		}
	}

	// pruning again changes nothing
	if err := repo.PruneToNewest(ctx, nil, userID, 1, 5); err != nil {
		t.Fatalf("second PruneToNewest: %v", err)
	}
	again, err := repo.GetByUserAndProblem(ctx, nil, userID, 1)
	if err != nil {
		t.Fatalf("GetByUserAndProblem: %v", err)
	}
	if len(again) != 5 {
		t.Fatalf("got %d rows after redundant prune, want 5", len(again))
	}
}

func TestAttemptRepoPruneScopedToPair(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewAttemptRepo(db, log)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	seedProblem(t, db, 1, 1, 1)
	seedProblem(t, db, 2, 1, 2)

	base := time.Now().Truncate(time.Second)
	for i := 0; i < 6; i++ {
		createAttempt(t, repo, alice, 1, true, base.Add(time.Duration(i)*time.Second))
	}
	createAttempt(t, repo, alice, 2, true, base)
	createAttempt(t, repo, bob, 1, true, base)

	if err := repo.PruneToNewest(ctx, nil, alice, 1, 5); err != nil {
		t.Fatalf("PruneToNewest: %v", err)
	}

	otherProblem, err := repo.GetByUserAndProblem(ctx, nil, alice, 2)
	if err != nil {
		t.Fatalf("GetByUserAndProblem: %v", err)
	}
	if len(otherProblem) != 1 {
		t.Fatalf("prune touched another problem's attempts: got %d rows", len(otherProblem))
	}
	otherUser, err := repo.GetByUserAndProblem(ctx, nil, bob, 1)
	if err != nil {
		t.Fatalf("GetByUserAndProblem: %v", err)
	}
	if len(otherUser) != 1 {
		t.Fatalf("prune touched another user's attempts: got %d rows", len(otherUser))
	}
}

func TestAttemptRepoGetByUserGroupsByProblem(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewAttemptRepo(db, log)
	ctx := context.Background()

	userID := uuid.New()
	seedProblem(t, db, 1, 1, 1)
	seedProblem(t, db, 2, 1, 2)

	base := time.Now().Truncate(time.Second)
	createAttempt(t, repo, userID, 2, true, base)
	createAttempt(t, repo, userID, 1, false, base.Add(time.Second))
	createAttempt(t, repo, userID, 1, true, base.Add(2*time.Second))

	rows, err := repo.GetByUser(ctx, nil, userID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0].ProblemID != 1 || rows[1].ProblemID != 1 || rows[2].ProblemID != 2 {
		t.Fatalf("rows not grouped by problem: %d %d %d", rows[0].ProblemID, rows[1].ProblemID, rows[2].ProblemID)
	}
	if !rows[0].IsCorrect {
		t.Fatalf("problem 1 group is not newest-first")
	}
}
