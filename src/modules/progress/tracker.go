package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/ismaelstrey/quiz-biblico/src/core/models"
)

// Achievements summarizes what an attempt accomplished.
type Achievements struct {
	LevelCompleted    bool `json:"levelCompleted"`
	PerfectScore      bool `json:"perfectScore"`
	FirstAttempt      bool `json:"firstAttempt"`
	NextLevelUnlocked bool `json:"nextLevelUnlocked"`
}

// Apply merges an attempt (score out of maxScore raw points) into the
// progress row for (userID, level). Best values never decrease and
// IsUnlocked never re-locks. The returned unlockedNow reports whether this
// attempt alone met the level threshold, which drives the cascade unlock.
func Apply(existing *models.UserProgress, userID uuid.UUID, level models.Level, score, maxScore int, now time.Time) (row models.UserProgress, unlockedNow bool) {
	percentage := float64(score) / float64(maxScore) * 100
	unlockedNow = percentage >= float64(level.MinScore)

	if existing == nil {
		return models.UserProgress{
			ID:             uuid.New(),
			UserID:         userID,
			LevelID:        level.ID,
			BestScore:      score,
			BestPercentage: percentage,
			IsUnlocked:     unlockedNow,
			AttemptsCount:  1,
			LastAttemptAt:  &now,
		}, unlockedNow
	}

	row = *existing
	if score > row.BestScore {
		row.BestScore = score
	}
	if percentage > row.BestPercentage {
		row.BestPercentage = percentage
	}
	row.IsUnlocked = row.IsUnlocked || unlockedNow
	row.AttemptsCount++
	row.LastAttemptAt = &now
	return row, unlockedNow
}

// Percentage recomputes the attempt percentage the same way Apply does.
func Percentage(score, maxScore int) float64 {
	return float64(score) / float64(maxScore) * 100
}

// NewCascadeRow builds the dormant progress row created when the previous
// level's threshold is met: unlocked but never attempted.
func NewCascadeRow(userID, levelID uuid.UUID) models.UserProgress {
	return models.UserProgress{
		ID:             uuid.New(),
		UserID:         userID,
		LevelID:        levelID,
		BestScore:      0,
		BestPercentage: 0,
		IsUnlocked:     true,
		AttemptsCount:  0,
	}
}
