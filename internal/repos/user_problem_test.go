package repos_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/mathfacts/backend/internal/repos"
	"github.com/mathfacts/backend/internal/repos/testutil"
	"github.com/mathfacts/backend/internal/types"
)

func TestMarkEverCorrectIdempotent(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewUserProblemRepo(db, log)
	ctx := context.Background()

	userID := uuid.New()

	for i := 0; i < 3; i++ {
		if err := repo.MarkEverCorrect(ctx, nil, userID, 7); err != nil {
			t.Fatalf("MarkEverCorrect call %d: %v", i+1, err)
		}
	}

	var count int64
	if err := db.Model(&types.UserProblem{}).
		Where("user_id = ? AND problem_id = ?", userID, 7).
		Count(&count).Error; err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("got %d rows for the pair, want exactly 1", count)
	}

	rows, err := repo.GetByUserID(ctx, nil, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(rows) != 1 || !rows[0].EverCorrect {
		t.Fatalf("expected one ever-correct row, got %+v", rows)
	}
}

func TestMarkEverCorrectNeverDowngrades(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewUserProblemRepo(db, log)
	ctx := context.Background()

	userID := uuid.New()
	if err := repo.MarkEverCorrect(ctx, nil, userID, 3); err != nil {
		t.Fatalf("MarkEverCorrect: %v", err)
	}

	// a later re-mark must leave the flag raised
	if err := repo.MarkEverCorrect(ctx, nil, userID, 3); err != nil {
		t.Fatalf("MarkEverCorrect: %v", err)
	}

	rows, err := repo.GetByUserAndProblemIDs(ctx, nil, userID, []int{3})
	if err != nil {
		t.Fatalf("GetByUserAndProblemIDs: %v", err)
	}
	if len(rows) != 1 || !rows[0].EverCorrect {
		t.Fatalf("flag downgraded or lost: %+v", rows)
	}
}

func TestGetByUserIDAscendingAndScoped(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewUserProblemRepo(db, log)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()

	for _, id := range []int{9, 2, 5} {
		if err := repo.MarkEverCorrect(ctx, nil, alice, id); err != nil {
			t.Fatalf("MarkEverCorrect: %v", err)
		}
	}
	if err := repo.MarkEverCorrect(ctx, nil, bob, 1); err != nil {
		t.Fatalf("MarkEverCorrect: %v", err)
	}

	rows, err := repo.GetByUserID(ctx, nil, alice)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	want := []int{2, 5, 9}
	for i, row := range rows {
		if row.ProblemID != want[i] {
			t.Fatalf("row %d has problem %d, want %d", i, row.ProblemID, want[i])
		}
	}
}
