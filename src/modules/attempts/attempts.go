package attempts

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismaelstrey/quiz-biblico/src/core/apperror"
	"github.com/ismaelstrey/quiz-biblico/src/core/database"
	"github.com/ismaelstrey/quiz-biblico/src/core/helpers"
	"github.com/ismaelstrey/quiz-biblico/src/core/middleware"
	"github.com/ismaelstrey/quiz-biblico/src/core/models"
)

type submitAttemptInput struct {
	QuizID    uuid.UUID         `json:"quizId" validate:"required"`
	Answers   []SubmittedAnswer `json:"answers" validate:"required,min=1,dive"`
	TimeSpent int               `json:"timeSpent" validate:"omitempty,min=0"`
}

// SubmitAttempt grades a submission against the quiz's correct answers and
// records an immutable attempt.
func SubmitAttempt(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return err
	}

	body := new(submitAttemptInput)
	if err := c.BodyParser(body); err != nil {
		return apperror.Validation("invalid request body", nil)
	}
	if err := helpers.Validate(body); err != nil {
		return err
	}

	db := database.DB
	var quiz models.Quiz
	err = db.Preload("Questions.Answers").Where("id = ?", body.QuizID).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("quiz not found")
		}
		return apperror.FromDatabase(err)
	}

	result := Grade(quiz.Questions, body.Answers)

	attempt := models.QuizAttempt{
		ID:             uuid.New(),
		UserID:         userID,
		QuizID:         quiz.ID,
		Score:          result.Score,
		CorrectAnswers: result.CorrectAnswers,
		TotalQuestions: result.TotalQuestions,
		TimeSpent:      body.TimeSpent,
	}
	if err := db.Create(&attempt).Error; err != nil {
		return apperror.FromDatabase(err)
	}

	// Reload with the quiz and its level for the response.
	if err := db.Preload("Quiz.Level").Where("id = ?", attempt.ID).First(&attempt).Error; err != nil {
		return apperror.FromDatabase(err)
	}

	return helpers.HandleSuccess(c, fiber.StatusCreated, "Attempt submitted successfully", fiber.Map{
		"attempt": attempt,
		"results": fiber.Map{
			"score":          result.Score,
			"correctAnswers": result.CorrectAnswers,
			"totalQuestions": result.TotalQuestions,
			"percentage":     result.Score,
		},
	})
}

// ListAttempts returns the session user's attempts, newest first.
func ListAttempts(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return err
	}

	var attempts []models.QuizAttempt
	err = database.DB.
		Preload("Quiz.Level").
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&attempts).Error
	if err != nil {
		return apperror.FromDatabase(err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Attempts fetched successfully", attempts)
}
