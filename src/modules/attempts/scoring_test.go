package attempts

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ismaelstrey/quiz-biblico/src/core/models"
)

// buildQuestions returns n questions of 4 answers each, with the correct
// answer ids collected for building submissions.
func buildQuestions(n int) ([]models.Question, []uuid.UUID) {
	questions := make([]models.Question, 0, n)
	correctIDs := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		q := models.Question{ID: uuid.New()}
		for j := 0; j < 4; j++ {
			answer := models.Answer{ID: uuid.New(), QuestionID: q.ID, IsCorrect: j == 0}
			q.Answers = append(q.Answers, answer)
			if answer.IsCorrect {
				correctIDs = append(correctIDs, answer.ID)
			}
		}
		questions = append(questions, q)
	}
	return questions, correctIDs
}

func TestGrade_ThreeOfFourCorrect(t *testing.T) {
	questions, correct := buildQuestions(4)

	submissions := []SubmittedAnswer{
		{QuestionID: questions[0].ID, AnswerID: correct[0]},
		{QuestionID: questions[1].ID, AnswerID: correct[1]},
		{QuestionID: questions[2].ID, AnswerID: correct[2]},
		{QuestionID: questions[3].ID, AnswerID: questions[3].Answers[1].ID}, // wrong
	}

	result := Grade(questions, submissions)

	assert.Equal(t, 3, result.CorrectAnswers)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, 75, result.Score)
}

func TestGrade_UnansweredQuestionsCountAsIncorrect(t *testing.T) {
	questions, correct := buildQuestions(4)

	submissions := []SubmittedAnswer{
		{QuestionID: questions[0].ID, AnswerID: correct[0]},
	}

	result := Grade(questions, submissions)

	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, 25, result.Score)
}

func TestGrade_RoundsHalfUp(t *testing.T) {
	questions, correct := buildQuestions(8)

	// 3/8 = 37.5% rounds to 38.
	submissions := []SubmittedAnswer{
		{QuestionID: questions[0].ID, AnswerID: correct[0]},
		{QuestionID: questions[1].ID, AnswerID: correct[1]},
		{QuestionID: questions[2].ID, AnswerID: correct[2]},
	}

	result := Grade(questions, submissions)
	assert.Equal(t, 38, result.Score)
}

func TestGrade_ThirdsRounding(t *testing.T) {
	questions, correct := buildQuestions(3)

	result := Grade(questions, []SubmittedAnswer{
		{QuestionID: questions[0].ID, AnswerID: correct[0]},
	})
	assert.Equal(t, 33, result.Score)

	result = Grade(questions, []SubmittedAnswer{
		{QuestionID: questions[0].ID, AnswerID: correct[0]},
		{QuestionID: questions[1].ID, AnswerID: correct[1]},
	})
	assert.Equal(t, 67, result.Score)
}

func TestGrade_EmptyQuizScoresZero(t *testing.T) {
	result := Grade(nil, nil)

	assert.Equal(t, 0, result.CorrectAnswers)
	assert.Equal(t, 0, result.TotalQuestions)
	assert.Equal(t, 0, result.Score)
}

func TestGrade_DuplicateSubmissionCountsOnce(t *testing.T) {
	questions, correct := buildQuestions(2)

	submissions := []SubmittedAnswer{
		{QuestionID: questions[0].ID, AnswerID: correct[0]},
		{QuestionID: questions[0].ID, AnswerID: correct[0]},
	}

	result := Grade(questions, submissions)

	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 50, result.Score)
}

func TestGrade_UnknownQuestionIDIgnored(t *testing.T) {
	questions, correct := buildQuestions(2)

	submissions := []SubmittedAnswer{
		{QuestionID: questions[0].ID, AnswerID: correct[0]},
		{QuestionID: uuid.New(), AnswerID: uuid.New()},
	}

	result := Grade(questions, submissions)

	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.LessOrEqual(t, result.CorrectAnswers, result.TotalQuestions)
	assert.GreaterOrEqual(t, result.Score, 0)
	assert.LessOrEqual(t, result.Score, 100)
}
