package generator

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ismaelstrey/quiz-biblico/src/core/apperror"
	"github.com/ismaelstrey/quiz-biblico/src/core/database"
	"github.com/ismaelstrey/quiz-biblico/src/core/helpers"
	"github.com/ismaelstrey/quiz-biblico/src/modules/quizzes"
)

type generateInput struct {
	Topic         string     `json:"topic" validate:"required,max=200"`
	Difficulty    int        `json:"difficulty" validate:"required,min=1,max=5"`
	QuestionCount int        `json:"questionCount" validate:"omitempty,min=1,max=20"`
	QuestionType  string     `json:"questionType" validate:"omitempty,oneof=MULTIPLE_CHOICE TRUE_FALSE FILL_BLANK"`
	LevelID       *uuid.UUID `json:"levelId"`
}

// GenerateQuestions asks the completion service for questions and, when a
// target level is supplied, persists them as a new quiz.
func GenerateQuestions(client *Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(generateInput)
		if err := c.BodyParser(body); err != nil {
			return apperror.Validation("invalid request body", nil)
		}
		if err := helpers.Validate(body); err != nil {
			return err
		}
		if body.QuestionCount == 0 {
			body.QuestionCount = 5
		}

		generated, err := client.Generate(c.Context(), body.Topic, body.Difficulty, body.QuestionCount)
		if err != nil {
			return err
		}

		if body.LevelID == nil {
			return helpers.HandleSuccess(c, fiber.StatusOK, "Questions generated successfully", fiber.Map{
				"questions": generated,
			})
		}

		inputs := make([]quizzes.QuestionInput, 0, len(generated))
		for _, q := range generated {
			difficulty := q.Difficulty
			if difficulty == 0 {
				difficulty = body.Difficulty
			}
			input := quizzes.QuestionInput{
				QuestionText: q.QuestionText,
				QuestionType: body.QuestionType,
				Difficulty:   difficulty,
				BibleVerse:   q.BibleVerse,
				Explanation:  q.Explanation,
			}
			for _, a := range q.Answers {
				input.Answers = append(input.Answers, quizzes.AnswerInput{
					AnswerText: a.AnswerText,
					IsCorrect:  a.IsCorrect,
				})
			}
			inputs = append(inputs, input)
		}

		questions, err := quizzes.BuildQuestions(inputs)
		if err != nil {
			return err
		}

		quiz := quizzes.NewGeneratedQuiz(
			fmt.Sprintf("Quiz: %s", body.Topic),
			fmt.Sprintf("Quiz gerado automaticamente sobre %s (Nível %d)", body.Topic, body.Difficulty),
			*body.LevelID,
			questions,
		)
		if err := database.DB.Create(&quiz).Error; err != nil {
			return apperror.FromDatabase(err)
		}

		return helpers.HandleSuccess(c, fiber.StatusCreated, "Questions generated and quiz created successfully", fiber.Map{
			"questions": generated,
			"quiz":      quiz,
		})
	}
}
