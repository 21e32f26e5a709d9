package models

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Title       string     `gorm:"column:title;type:text;not null" json:"title"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	LevelID     uuid.UUID  `gorm:"column:level_id;type:uuid;not null" json:"level_id"`
	IsActive    bool       `gorm:"column:is_active;type:boolean;not null" json:"is_active"`
	CreatedAt   time.Time  `gorm:"column:created_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	Level       *Level     `gorm:"foreignKey:LevelID" json:"level,omitempty"`
	Questions   []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
