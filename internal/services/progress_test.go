package services_test

import (
	"context"
	"testing"

	"github.com/mathfacts/backend/internal/types"
)

func TestProgressGrowsAndNeverShrinks(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	userID := f.seedUser(t, types.LevelOne)
	f.seedProblem(t, 1, 1, 1)
	f.seedProblem(t, 2, 1, 2)

	ids, err := f.progress.GetProgress(ctx, userID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("fresh user has progress: %v", ids)
	}

	f.record(t, userID, 1, true)
	ids, err = f.progress.GetProgress(ctx, userID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("got %v, want [1]", ids)
	}

	// later wrong answers do not remove earned progress
	f.record(t, userID, 1, false)
	f.record(t, userID, 1, false)
	ids, err = f.progress.GetProgress(ctx, userID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("progress shrank after incorrect answers: %v", ids)
	}

	f.record(t, userID, 2, true)
	ids, err = f.progress.GetProgress(ctx, userID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("got %v, want [1 2] ascending", ids)
	}
}

func TestProgressIdempotentAcrossRepeats(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	userID := f.seedUser(t, types.LevelOne)
	f.seedProblem(t, 1, 1, 1)

	for i := 0; i < 4; i++ {
		f.record(t, userID, 1, true)
	}

	ids, err := f.progress.GetProgress(ctx, userID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("repeated correct answers duplicated progress: %v", ids)
	}
}
