package types

import (
	"time"

	"github.com/google/uuid"
)

// TestResult is one timed-test score submission.
type TestResult struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Score     int       `gorm:"not null;column:score" json:"score"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (TestResult) TableName() string {
	return "test_result"
}
