package attempts

import (
	"math"

	"github.com/google/uuid"

	"github.com/ismaelstrey/quiz-biblico/src/core/models"
)

// SubmittedAnswer is one {questionId, answerId} pair of a quiz submission.
type SubmittedAnswer struct {
	QuestionID uuid.UUID `json:"questionId" validate:"required"`
	AnswerID   uuid.UUID `json:"answerId" validate:"required"`
}

// Result is the outcome of grading one submission. Score is a 0-100
// percentage rounded half-up.
type Result struct {
	CorrectAnswers int `json:"correctAnswers"`
	TotalQuestions int `json:"totalQuestions"`
	Score          int `json:"score"`
}

// Grade checks each question of the quiz against the matching submission.
// A question counts as correct when the submitted answer id equals the id of
// the answer flagged correct. Unanswered questions count as incorrect.
// Duplicate submissions for the same question collapse to the last one.
func Grade(questions []models.Question, submissions []SubmittedAnswer) Result {
	submitted := make(map[uuid.UUID]uuid.UUID, len(submissions))
	for _, s := range submissions {
		submitted[s.QuestionID] = s.AnswerID
	}

	correct := 0
	for _, question := range questions {
		answerID, ok := submitted[question.ID]
		if !ok {
			continue
		}
		for _, answer := range question.Answers {
			if answer.IsCorrect && answer.ID == answerID {
				correct++
				break
			}
		}
	}

	total := len(questions)
	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}
	return Result{CorrectAnswers: correct, TotalQuestions: total, Score: score}
}
