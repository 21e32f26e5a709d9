package models

import (
	"time"

	"github.com/google/uuid"
)

// Question types accepted by the API.
const (
	QuestionTypeMultipleChoice = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      = "TRUE_FALSE"
	QuestionTypeFillBlank      = "FILL_BLANK"
)

type Question struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	QuizID       uuid.UUID `gorm:"column:quiz_id;type:uuid;not null" json:"quiz_id"`
	QuestionText string    `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionType string    `gorm:"column:question_type;type:varchar(20);not null;default:MULTIPLE_CHOICE" json:"question_type"`
	Difficulty   int       `gorm:"column:difficulty;type:int;not null;default:1" json:"difficulty"`
	BibleVerse   string    `gorm:"column:bible_verse;type:text" json:"bible_verse,omitempty"`
	Explanation  string    `gorm:"column:explanation;type:text" json:"explanation,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	Answers      []Answer  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
