package models

import (
	"time"

	"github.com/google/uuid"
)

// Level is a difficulty tier gating which quizzes are accessible. Difficulty
// is a unique ordinal; MinScore is the percentage required to unlock the next
// tier.
type Level struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Name        string    `gorm:"column:name;type:text;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Difficulty  int       `gorm:"column:difficulty;type:int;unique;not null" json:"difficulty"`
	MinScore    int       `gorm:"column:min_score;type:int;not null" json:"min_score"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Level) TableName() string {
	return "levels"
}
