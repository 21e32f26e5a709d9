package quizzes

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismaelstrey/quiz-biblico/src/core/apperror"
	"github.com/ismaelstrey/quiz-biblico/src/core/database"
	"github.com/ismaelstrey/quiz-biblico/src/core/helpers"
	"github.com/ismaelstrey/quiz-biblico/src/core/models"
)

const maxPageSize = 100

// ListQuizzes returns active quizzes with level, questions and answers
// preloaded, filtered by levelId when given, paginated.
func ListQuizzes(c *fiber.Ctx) error {
	db := database.DB

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	query := db.Model(&models.Quiz{}).Where("is_active = ?", true)
	if levelID := c.Query("levelId"); levelID != "" {
		parsed, err := uuid.Parse(levelID)
		if err != nil {
			return apperror.Validation("levelId must be a valid id", nil)
		}
		query = query.Where("level_id = ?", parsed)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return apperror.FromDatabase(err)
	}

	var quizzes []models.Quiz
	err := query.
		Preload("Level").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.created_at ASC")
		}).
		Preload("Questions.Answers").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&quizzes).Error
	if err != nil {
		return apperror.FromDatabase(err)
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Quizzes fetched successfully", fiber.Map{
		"quizzes": quizzes,
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

type AnswerInput struct {
	AnswerText string `json:"answer_text" validate:"required,max=500"`
	IsCorrect  bool   `json:"is_correct"`
}

type QuestionInput struct {
	QuestionText string        `json:"question_text" validate:"required,max=1000"`
	QuestionType string        `json:"question_type" validate:"omitempty,oneof=MULTIPLE_CHOICE TRUE_FALSE FILL_BLANK"`
	Difficulty   int           `json:"difficulty" validate:"omitempty,min=1,max=5"`
	BibleVerse   string        `json:"bible_verse" validate:"max=200"`
	Explanation  string        `json:"explanation" validate:"max=1000"`
	Answers      []AnswerInput `json:"answers" validate:"required,min=2,max=6,dive"`
}

type createQuizInput struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	LevelID     uuid.UUID       `json:"level_id" validate:"required"`
	IsActive    *bool           `json:"is_active"`
	Questions   []QuestionInput `json:"questions" validate:"dive"`
}

// CreateQuiz creates a quiz together with its nested questions and answers.
// Every question must carry exactly one correct answer.
func CreateQuiz(c *fiber.Ctx) error {
	body := new(createQuizInput)
	if err := c.BodyParser(body); err != nil {
		return apperror.Validation("invalid request body", nil)
	}
	if err := helpers.Validate(body); err != nil {
		return err
	}

	questions, err := BuildQuestions(body.Questions)
	if err != nil {
		return err
	}

	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	quiz := models.Quiz{
		ID:          uuid.New(),
		Title:       body.Title,
		Description: body.Description,
		LevelID:     body.LevelID,
		IsActive:    isActive,
		Questions:   questions,
	}
	if result := database.DB.Create(&quiz); result.Error != nil {
		return apperror.FromDatabase(result.Error)
	}

	created, err := loadQuiz(quiz.ID)
	if err != nil {
		return err
	}
	return helpers.HandleSuccess(c, fiber.StatusCreated, "Quiz created successfully", created)
}

// GetQuiz returns one quiz with level, questions and answers preloaded.
func GetQuiz(c *fiber.Ctx) error {
	id, err := parseQuizID(c)
	if err != nil {
		return err
	}
	quiz, err := loadQuiz(id)
	if err != nil {
		return err
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Quiz fetched successfully", quiz)
}

type updateQuizInput struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	LevelID     *uuid.UUID `json:"level_id"`
	IsActive    *bool      `json:"is_active"`
}

// UpdateQuiz applies a partial update to the quiz record itself; questions
// are managed through quiz creation and generation.
func UpdateQuiz(c *fiber.Ctx) error {
	id, err := parseQuizID(c)
	if err != nil {
		return err
	}

	body := new(updateQuizInput)
	if err := c.BodyParser(body); err != nil {
		return apperror.Validation("invalid request body", nil)
	}
	if err := helpers.Validate(body); err != nil {
		return err
	}

	db := database.DB
	var quiz models.Quiz
	if err := db.Where("id = ?", id).First(&quiz).Error; err != nil {
		return apperror.FromDatabase(err)
	}

	updates := map[string]interface{}{}
	if body.Title != nil {
		updates["title"] = *body.Title
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.LevelID != nil {
		updates["level_id"] = *body.LevelID
	}
	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}
	if len(updates) > 0 {
		if err := db.Model(&quiz).Updates(updates).Error; err != nil {
			return apperror.FromDatabase(err)
		}
	}

	updated, err := loadQuiz(id)
	if err != nil {
		return err
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Quiz updated successfully", updated)
}

// DeleteQuiz removes a quiz; questions and answers go with it through the
// cascading foreign keys.
func DeleteQuiz(c *fiber.Ctx) error {
	id, err := parseQuizID(c)
	if err != nil {
		return err
	}

	db := database.DB
	var quiz models.Quiz
	if err := db.Where("id = ?", id).First(&quiz).Error; err != nil {
		return apperror.FromDatabase(err)
	}
	if err := db.Delete(&quiz).Error; err != nil {
		return apperror.FromDatabase(err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Quiz deleted successfully", nil)
}

// BuildQuestions converts validated question input into models, enforcing the
// single-correct-answer invariant. The generator module reuses it when
// persisting AI output.
func BuildQuestions(inputs []QuestionInput) ([]models.Question, error) {
	questions := make([]models.Question, 0, len(inputs))
	for i, q := range inputs {
		correct := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return nil, apperror.Validation(
				fmt.Sprintf("question %d must have exactly one correct answer", i+1), nil)
		}

		questionType := q.QuestionType
		if questionType == "" {
			questionType = models.QuestionTypeMultipleChoice
		}
		difficulty := q.Difficulty
		if difficulty == 0 {
			difficulty = 1
		}

		question := models.Question{
			ID:           uuid.New(),
			QuestionText: q.QuestionText,
			QuestionType: questionType,
			Difficulty:   difficulty,
			BibleVerse:   q.BibleVerse,
			Explanation:  q.Explanation,
		}
		for _, a := range q.Answers {
			question.Answers = append(question.Answers, models.Answer{
				ID:         uuid.New(),
				AnswerText: a.AnswerText,
				IsCorrect:  a.IsCorrect,
			})
		}
		questions = append(questions, question)
	}
	return questions, nil
}

// NewGeneratedQuiz wraps generated questions in an active quiz model.
func NewGeneratedQuiz(title, description string, levelID uuid.UUID, questions []models.Question) models.Quiz {
	return models.Quiz{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		LevelID:     levelID,
		IsActive:    true,
		Questions:   questions,
	}
}

func parseQuizID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("quiz id must be a valid id", nil)
	}
	return id, nil
}

func loadQuiz(id uuid.UUID) (*models.Quiz, error) {
	var quiz models.Quiz
	err := database.DB.
		Preload("Level").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.created_at ASC")
		}).
		Preload("Questions.Answers").
		Where("id = ?", id).
		First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("quiz not found")
		}
		return nil, apperror.FromDatabase(err)
	}
	return &quiz, nil
}
