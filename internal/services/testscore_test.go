package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/mathfacts/backend/internal/domain"
	"github.com/mathfacts/backend/internal/types"
)

func TestRecordScoreAndBest(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	userID := f.seedUser(t, types.LevelOne)

	best, err := f.testScore.BestScore(ctx, userID)
	if err != nil {
		t.Fatalf("BestScore: %v", err)
	}
	if best != nil {
		t.Fatalf("fresh user has a best score: %+v", best)
	}

	for _, score := range []int{70, 95, 88} {
		if _, err := f.testScore.RecordScore(ctx, userID, score); err != nil {
			t.Fatalf("RecordScore(%d): %v", score, err)
		}
	}

	best, err = f.testScore.BestScore(ctx, userID)
	if err != nil {
		t.Fatalf("BestScore: %v", err)
	}
	if best == nil || best.Score != 95 {
		t.Fatalf("got %+v, want score 95", best)
	}
}

func TestRecordScoreRejectsNegative(t *testing.T) {
	f := newServiceFixture(t)

	userID := f.seedUser(t, types.LevelOne)

	_, err := f.testScore.RecordScore(context.Background(), userID, -1)
	if err == nil || !domain.IsCode(err, domain.CodeValidation) {
		t.Fatalf("got %v, want validation", err)
	}
}

func TestRecordScoreRequiresUser(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.testScore.RecordScore(context.Background(), uuid.Nil, 10)
	if err == nil || !domain.IsCode(err, domain.CodeUnauthorized) {
		t.Fatalf("got %v, want unauthorized", err)
	}
}
