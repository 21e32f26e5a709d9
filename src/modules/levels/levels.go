package levels

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ismaelstrey/quiz-biblico/src/core/apperror"
	"github.com/ismaelstrey/quiz-biblico/src/core/database"
	"github.com/ismaelstrey/quiz-biblico/src/core/helpers"
	"github.com/ismaelstrey/quiz-biblico/src/core/models"
)

type levelWithCount struct {
	models.Level
	QuizCount int64 `gorm:"column:quiz_count" json:"quiz_count"`
}

// GetLevels returns the level catalog ordered by difficulty, each with the
// number of quizzes attached to it.
func GetLevels(c *fiber.Ctx) error {
	db := database.DB

	var rows []levelWithCount
	err := db.Model(&models.Level{}).
		Select("levels.*, COUNT(quizzes.id) AS quiz_count").
		Joins("LEFT JOIN quizzes ON quizzes.level_id = levels.id").
		Group("levels.id").
		Order("levels.difficulty ASC").
		Find(&rows).Error
	if err != nil {
		return apperror.FromDatabase(err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Levels fetched successfully", rows)
}

type createLevelInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Difficulty  int    `json:"difficulty" validate:"required,min=1,max=10"`
	MinScore    *int   `json:"min_score" validate:"omitempty,min=0,max=100"`
}

// CreateLevel adds a tier to the catalog. MinScore defaults to 70.
func CreateLevel(c *fiber.Ctx) error {
	body := new(createLevelInput)
	if err := c.BodyParser(body); err != nil {
		return apperror.Validation("invalid request body", nil)
	}
	if err := helpers.Validate(body); err != nil {
		return err
	}

	minScore := 70
	if body.MinScore != nil {
		minScore = *body.MinScore
	}

	level := models.Level{
		ID:          uuid.New(),
		Name:        body.Name,
		Description: body.Description,
		Difficulty:  body.Difficulty,
		MinScore:    minScore,
	}
	if result := database.DB.Create(&level); result.Error != nil {
		return apperror.FromDatabase(result.Error)
	}

	return helpers.HandleSuccess(c, fiber.StatusCreated, "Level created successfully", level)
}
