package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProgress tracks one user's standing on one level. BestScore and
// BestPercentage only ever increase; IsUnlocked only flips false to true.
// LastAttemptAt stays nil for rows created by a cascade unlock.
type UserProgress struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_level" json:"user_id"`
	LevelID        uuid.UUID  `gorm:"column:level_id;type:uuid;not null;uniqueIndex:idx_user_level" json:"level_id"`
	BestScore      int        `gorm:"column:best_score;type:int;not null;default:0" json:"best_score"`
	BestPercentage float64    `gorm:"column:best_percentage;type:float8;not null;default:0" json:"best_percentage"`
	IsUnlocked     bool       `gorm:"column:is_unlocked;type:boolean;not null;default:false" json:"is_unlocked"`
	AttemptsCount  int        `gorm:"column:attempts_count;type:int;not null;default:0" json:"attempts_count"`
	LastAttemptAt  *time.Time `gorm:"column:last_attempt_at;type:timestamp with time zone" json:"last_attempt_at"`
	Level          *Level     `gorm:"foreignKey:LevelID" json:"level,omitempty"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
