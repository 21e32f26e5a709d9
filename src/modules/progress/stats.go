package progress

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/ismaelstrey/quiz-biblico/src/core/models"
)

// LevelStatistics aggregates one level's attempts.
type LevelStatistics struct {
	Level         *models.Level        `json:"level"`
	Attempts      []models.QuizAttempt `json:"attempts"`
	TotalScore    int                  `json:"totalScore"`
	TotalPossible int                  `json:"totalPossible"`
	BestScore     int                  `json:"bestScore"`
	AverageScore  float64              `json:"averageScore"`
}

// Statistics is the overall attempt summary of one user.
type Statistics struct {
	TotalAttempts      int               `json:"totalAttempts"`
	TotalScore         int               `json:"totalScore"`
	TotalPossibleScore int               `json:"totalPossibleScore"`
	AverageScore       float64           `json:"averageScore"`
	AttemptsByLevel    []LevelStatistics `json:"attemptsByLevel"`
}

// BuildStatistics computes attempt statistics. Attempt scores are already
// percentages, so averageScore is the mean of per-attempt percentages rather
// than total-correct over total-possible; that matches how the product
// displays it.
func BuildStatistics(attempts []models.QuizAttempt) Statistics {
	stats := Statistics{AttemptsByLevel: []LevelStatistics{}}
	stats.TotalAttempts = len(attempts)

	byLevel := map[uuid.UUID]*LevelStatistics{}
	for _, attempt := range attempts {
		stats.TotalScore += attempt.Score
		stats.TotalPossibleScore += attempt.TotalQuestions

		if attempt.Quiz == nil || attempt.Quiz.Level == nil {
			continue
		}
		level := attempt.Quiz.Level
		entry, ok := byLevel[level.ID]
		if !ok {
			entry = &LevelStatistics{Level: level}
			byLevel[level.ID] = entry
		}
		entry.Attempts = append(entry.Attempts, attempt)
		entry.TotalScore += attempt.Score
		entry.TotalPossible += attempt.TotalQuestions
		if attempt.Score > entry.BestScore {
			entry.BestScore = attempt.Score
		}
	}

	if stats.TotalAttempts > 0 {
		mean := float64(stats.TotalScore) / float64(stats.TotalAttempts)
		stats.AverageScore = math.Round(mean*100) / 100
	}

	for _, entry := range byLevel {
		if len(entry.Attempts) > 0 {
			entry.AverageScore = float64(entry.TotalScore) / float64(len(entry.Attempts))
		}
		stats.AttemptsByLevel = append(stats.AttemptsByLevel, *entry)
	}
	sort.Slice(stats.AttemptsByLevel, func(i, j int) bool {
		return stats.AttemptsByLevel[i].Level.Difficulty < stats.AttemptsByLevel[j].Level.Difficulty
	})

	return stats
}
