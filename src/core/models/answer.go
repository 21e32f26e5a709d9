package models

import "github.com/google/uuid"

// Answer is one alternative of a question. Exactly one answer per question
// carries IsCorrect=true for choice-type questions; creation enforces it.
type Answer struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	QuestionID uuid.UUID `gorm:"column:question_id;type:uuid;not null" json:"question_id"`
	AnswerText string    `gorm:"column:answer_text;type:text;not null" json:"answer_text"`
	IsCorrect  bool      `gorm:"column:is_correct;type:boolean;not null;default:false" json:"is_correct"`
}

func (Answer) TableName() string {
	return "answers"
}
