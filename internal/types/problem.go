package types

import "time"

// Problem is one multiplication fact from the fixed catalog. The counters and
// the mastered flag are lifetime aggregates across all users, kept for display
// compatibility; per-user progress lives in UserProblem.
type Problem struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	Text           string    `gorm:"not null;column:text" json:"problem"`
	OperandA       int       `gorm:"not null;column:operand_a" json:"operand_a"`
	OperandB       int       `gorm:"not null;column:operand_b" json:"operand_b"`
	Answer         int       `gorm:"not null;column:answer" json:"answer"`
	CorrectCount   int       `gorm:"not null;default:0;column:correct_count" json:"correct"`
	IncorrectCount int       `gorm:"not null;default:0;column:incorrect_count" json:"incorrect"`
	Mastered       bool      `gorm:"not null;default:false;column:mastered" json:"mastered"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (Problem) TableName() string {
	return "problem"
}
