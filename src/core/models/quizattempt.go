package models

import (
	"time"

	"github.com/google/uuid"
)

// QuizAttempt is one completed submission of answers to a quiz. Rows are
// append-only: never updated or deleted once written.
type QuizAttempt struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	QuizID         uuid.UUID `gorm:"column:quiz_id;type:uuid;not null" json:"quiz_id"`
	Score          int       `gorm:"column:score;type:int;not null" json:"score"`
	CorrectAnswers int       `gorm:"column:correct_answers;type:int;not null" json:"correct_answers"`
	TotalQuestions int       `gorm:"column:total_questions;type:int;not null" json:"total_questions"`
	TimeSpent      int       `gorm:"column:time_spent;type:int;not null;default:0" json:"time_spent"`
	CompletedAt    time.Time `gorm:"column:completed_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"completed_at"`
	Quiz           *Quiz     `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
