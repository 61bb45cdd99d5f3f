package types

import (
	"time"

	"github.com/google/uuid"
)

// Attempt is one append-only answer event. At most WindowSize rows are
// retained per (user, problem) pair; older rows are pruned after each insert.
type Attempt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_attempt_user_problem" json:"user_id"`
	ProblemID int       `gorm:"not null;index:idx_attempt_user_problem" json:"problem_id"`
	IsCorrect bool      `gorm:"not null;column:is_correct" json:"is_correct"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (Attempt) TableName() string {
	return "attempt"
}
