package types

import (
	"time"

	"github.com/google/uuid"
)

// UserProblem records that a user has ever answered a problem correctly.
// ever_correct is monotonic: once true it is never reset.
type UserProblem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_problem" json:"user_id"`
	ProblemID   int       `gorm:"not null;uniqueIndex:idx_user_problem" json:"problem_id"`
	EverCorrect bool      `gorm:"not null;default:false;column:ever_correct" json:"ever_correct"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (UserProblem) TableName() string {
	return "user_problem"
}
