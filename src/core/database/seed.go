package database

import (
	"github.com/google/uuid"

	"github.com/ismaelstrey/quiz-biblico/src/core/logging"
	"github.com/ismaelstrey/quiz-biblico/src/core/models"
)

// Seed populates the level catalog and one starter quiz. Levels are keyed by
// difficulty, so re-running against an already seeded database is a no-op.
func Seed(log *logging.Logger) error {
	levels := []models.Level{
		{Name: "Iniciante", Description: "Para quem está começando a estudar a Bíblia", Difficulty: 1, MinScore: 0},
		{Name: "Básico", Description: "Conhecimentos básicos sobre histórias bíblicas", Difficulty: 2, MinScore: 50},
		{Name: "Intermediário", Description: "Ensinamentos de Jesus e parábolas", Difficulty: 3, MinScore: 60},
		{Name: "Avançado", Description: "Teologia e conhecimentos aprofundados", Difficulty: 4, MinScore: 70},
		{Name: "Expert", Description: "Conhecimento profundo das Escrituras", Difficulty: 5, MinScore: 80},
	}

	var firstLevelID uuid.UUID
	created := 0
	for _, level := range levels {
		var existing models.Level
		err := DB.Where("difficulty = ?", level.Difficulty).First(&existing).Error
		if err == nil {
			if level.Difficulty == 1 {
				firstLevelID = existing.ID
			}
			continue
		}
		level.ID = uuid.New()
		if err := DB.Create(&level).Error; err != nil {
			return err
		}
		if level.Difficulty == 1 {
			firstLevelID = level.ID
		}
		created++
	}
	log.Info("seed: %d levels created", created)

	var quizCount int64
	if err := DB.Model(&models.Quiz{}).Count(&quizCount).Error; err != nil {
		return err
	}
	if quizCount > 0 {
		return nil
	}

	quiz := models.Quiz{
		ID:          uuid.New(),
		Title:       "Histórias do Antigo Testamento",
		Description: "Quiz básico sobre as principais histórias do Antigo Testamento",
		LevelID:     firstLevelID,
		IsActive:    true,
		Questions: []models.Question{
			sampleQuestion("Quem foi o primeiro homem criado por Deus?", "Gênesis 2:7",
				"Adão foi o primeiro homem criado por Deus do pó da terra.",
				[]string{"Abraão", "Adão", "Moisés", "Noé"}, 1),
			sampleQuestion("Quantos dias Deus levou para criar o mundo?", "Gênesis 1:31-2:2",
				"Deus criou o mundo em seis dias e descansou no sétimo.",
				[]string{"5 dias", "6 dias", "7 dias", "8 dias"}, 1),
			sampleQuestion("Quem a serpente enganou no Jardim do Éden?", "Gênesis 3:1-6",
				"A serpente enganou Eva, oferecendo-lhe o fruto proibido.",
				[]string{"Eva", "Adão", "Abel", "Caim"}, 0),
		},
	}
	if err := DB.Create(&quiz).Error; err != nil {
		return err
	}
	log.Info("seed: example quiz %q created", quiz.Title)
	return nil
}

func sampleQuestion(text, verse, explanation string, options []string, correctIdx int) models.Question {
	q := models.Question{
		ID:           uuid.New(),
		QuestionText: text,
		QuestionType: models.QuestionTypeMultipleChoice,
		Difficulty:   1,
		BibleVerse:   verse,
		Explanation:  explanation,
	}
	for i, option := range options {
		q.Answers = append(q.Answers, models.Answer{
			ID:         uuid.New(),
			AnswerText: option,
			IsCorrect:  i == correctIdx,
		})
	}
	return q
}
