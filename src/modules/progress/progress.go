package progress

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismaelstrey/quiz-biblico/src/core/apperror"
	"github.com/ismaelstrey/quiz-biblico/src/core/database"
	"github.com/ismaelstrey/quiz-biblico/src/core/helpers"
	"github.com/ismaelstrey/quiz-biblico/src/core/middleware"
	"github.com/ismaelstrey/quiz-biblico/src/core/models"
)

type updateProgressInput struct {
	LevelID  uuid.UUID `json:"levelId" validate:"required"`
	Score    *int      `json:"score" validate:"required,min=0"`
	MaxScore *int      `json:"maxScore" validate:"required,min=1"`
}

// UpdateProgress merges an attempt into the user's progress for a level and
// cascade-unlocks the next level when the threshold is met. The whole
// read-decide-write runs in one transaction so concurrent submissions cannot
// lose the monotonicity of best scores.
func UpdateProgress(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return err
	}

	body := new(updateProgressInput)
	if err := c.BodyParser(body); err != nil {
		return apperror.Validation("invalid request body", nil)
	}
	if err := helpers.Validate(body); err != nil {
		return err
	}

	var (
		row          models.UserProgress
		cascadeRow   *models.UserProgress
		achievements Achievements
	)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var level models.Level
		if err := tx.Where("id = ?", body.LevelID).First(&level).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("level not found")
			}
			return err
		}

		var existing *models.UserProgress
		var found models.UserProgress
		err := tx.Where("user_id = ? AND level_id = ?", userID, level.ID).First(&found).Error
		switch {
		case err == nil:
			existing = &found
		case errors.Is(err, gorm.ErrRecordNotFound):
			existing = nil
		default:
			return err
		}

		now := time.Now().UTC()
		var unlockedNow bool
		row, unlockedNow = Apply(existing, userID, level, *body.Score, *body.MaxScore, now)

		if existing == nil {
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		}

		if unlockedNow {
			next, err := cascadeUnlock(tx, userID, level)
			if err != nil {
				return err
			}
			cascadeRow = next
		}

		percentage := Percentage(*body.Score, *body.MaxScore)
		achievements = Achievements{
			LevelCompleted:    unlockedNow,
			PerfectScore:      percentage == 100,
			FirstAttempt:      existing == nil,
			NextLevelUnlocked: cascadeRow != nil,
		}

		if err := tx.Preload("Level").Where("id = ?", row.ID).First(&row).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.FromDatabase(err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Progress updated successfully", fiber.Map{
		"userProgress":      row,
		"nextLevelUnlocked": cascadeRow,
		"achievements":      achievements,
	})
}

// cascadeUnlock creates the dormant row for the next difficulty tier. It
// creates at most one row and never touches an existing one.
func cascadeUnlock(tx *gorm.DB, userID uuid.UUID, level models.Level) (*models.UserProgress, error) {
	var nextLevel models.Level
	err := tx.Where("difficulty = ?", level.Difficulty+1).First(&nextLevel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var existing models.UserProgress
	err = tx.Where("user_id = ? AND level_id = ?", userID, nextLevel.ID).First(&existing).Error
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row := NewCascadeRow(userID, nextLevel.ID)
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	if err := tx.Preload("Level").Where("id = ?", row.ID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// GetProgress returns the user's per-level progress plus attempt statistics
// and the ten most recent attempts.
func GetProgress(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return err
	}

	db := database.DB

	var rows []models.UserProgress
	err = db.
		Preload("Level").
		Joins("JOIN levels ON levels.id = user_progress.level_id").
		Where("user_progress.user_id = ?", userID).
		Order("levels.difficulty ASC").
		Find(&rows).Error
	if err != nil {
		return apperror.FromDatabase(err)
	}

	var attempts []models.QuizAttempt
	err = db.
		Preload("Quiz.Level").
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&attempts).Error
	if err != nil {
		return apperror.FromDatabase(err)
	}

	recent := attempts
	if len(recent) > 10 {
		recent = recent[:10]
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Progress fetched successfully", fiber.Map{
		"userProgress":   rows,
		"statistics":     BuildStatistics(attempts),
		"recentAttempts": recent,
	})
}
