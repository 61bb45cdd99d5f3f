package types

import (
	"time"

	"github.com/google/uuid"
)

// User levels. The only legal transition is level 1 -> level 2.
const (
	LevelOne = 1
	LevelTwo = 2
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Pin       string    `gorm:"not null;column:pin" json:"-"`
	Image     string    `gorm:"column:image" json:"image"`
	Level     int       `gorm:"not null;default:1;column:level" json:"level"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
