package levels

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ismaelstrey/quiz-biblico/src/core/database"
	"github.com/ismaelstrey/quiz-biblico/src/core/helpers"
	"github.com/ismaelstrey/quiz-biblico/src/core/logging"
	"github.com/ismaelstrey/quiz-biblico/src/core/models"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	require.NoError(t, database.ConnectTest(strings.ReplaceAll(t.Name(), "/", "_")))

	app := fiber.New(fiber.Config{ErrorHandler: helpers.ErrorHandler(logging.New("error"))})
	app.Use(requestid.New())
	app.Get("/levels", GetLevels)
	app.Post("/levels", CreateLevel)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp, parsed
}

func TestGetLevels_OrderedWithQuizCounts(t *testing.T) {
	app := setupApp(t)

	hard := models.Level{ID: uuid.New(), Name: "Avançado", Difficulty: 4, MinScore: 70}
	easy := models.Level{ID: uuid.New(), Name: "Iniciante", Difficulty: 1, MinScore: 0}
	require.NoError(t, database.DB.Create(&hard).Error)
	require.NoError(t, database.DB.Create(&easy).Error)
	for i := 0; i < 2; i++ {
		quiz := models.Quiz{ID: uuid.New(), Title: "Quiz", LevelID: easy.ID, IsActive: true}
		require.NoError(t, database.DB.Create(&quiz).Error)
	}

	resp, parsed := doJSON(t, app, http.MethodGet, "/levels", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := parsed["data"].([]interface{})
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Iniciante", first["name"])
	assert.Equal(t, float64(2), first["quiz_count"])
	second := data[1].(map[string]interface{})
	assert.Equal(t, "Avançado", second["name"])
	assert.Equal(t, float64(0), second["quiz_count"])
}

func TestCreateLevel_DefaultsMinScore(t *testing.T) {
	app := setupApp(t)

	resp, parsed := doJSON(t, app, http.MethodPost, "/levels", fiber.Map{
		"name":       "Intermediário",
		"difficulty": 3,
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, float64(70), data["min_score"])
}

func TestCreateLevel_KeepsZeroMinScore(t *testing.T) {
	app := setupApp(t)

	zero := 0
	resp, parsed := doJSON(t, app, http.MethodPost, "/levels", fiber.Map{
		"name":       "Iniciante",
		"difficulty": 1,
		"min_score":  zero,
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["min_score"])

	var stored models.Level
	require.NoError(t, database.DB.First(&stored, "name = ?", "Iniciante").Error)
	assert.Equal(t, 0, stored.MinScore)
}

func TestCreateLevel_RejectsDuplicateDifficulty(t *testing.T) {
	app := setupApp(t)

	_, _ = doJSON(t, app, http.MethodPost, "/levels", fiber.Map{"name": "Um", "difficulty": 1})
	resp, parsed := doJSON(t, app, http.MethodPost, "/levels", fiber.Map{"name": "Dois", "difficulty": 1})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody := parsed["error"].(map[string]interface{})
	assert.Equal(t, "CONFLICT_ERROR", errBody["type"])
}

func TestCreateLevel_ValidatesDifficulty(t *testing.T) {
	app := setupApp(t)

	resp, parsed := doJSON(t, app, http.MethodPost, "/levels", fiber.Map{"name": "Fora", "difficulty": 11})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := parsed["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errBody["type"])
}
