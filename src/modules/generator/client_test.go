package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ismaelstrey/quiz-biblico/src/core/apperror"
	"github.com/ismaelstrey/quiz-biblico/src/core/logging"
)

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	require.NoError(t, err)
	return body
}

const validContent = `{
  "questions": [
    {
      "questionText": "Quem construiu a arca?",
      "bibleVerse": "Gênesis 6:14",
      "difficulty": 1,
      "explanation": "Noé construiu a arca por ordem de Deus.",
      "answers": [
        { "answerText": "Noé", "isCorrect": true },
        { "answerText": "Moisés", "isCorrect": false },
        { "answerText": "Abraão", "isCorrect": false },
        { "answerText": "Davi", "isCorrect": false }
      ]
    }
  ]
}`

func testClient(serverURL string) *Client {
	return NewClient(serverURL, "test-key", "gpt-3.5-turbo", 5*time.Second, logging.New("error"))
}

func TestGenerate_ParsesQuestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req["model"])
		messages := req["messages"].([]interface{})
		require.Len(t, messages, 2)

		w.Write(completionBody(t, validContent))
	}))
	defer server.Close()

	questions, err := testClient(server.URL).Generate(context.Background(), "Noé", 1, 1)

	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Quem construiu a arca?", questions[0].QuestionText)
	assert.Equal(t, "Gênesis 6:14", questions[0].BibleVerse)
	require.Len(t, questions[0].Answers, 4)
	assert.True(t, questions[0].Answers[0].IsCorrect)
}

func TestGenerate_NonJSONReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionBody(t, "Claro! Aqui estão suas perguntas..."))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Generate(context.Background(), "Noé", 1, 1)

	require.Error(t, err)
	appErr := apperror.From(err)
	assert.Equal(t, apperror.TypeInternal, appErr.Type)
	assert.NotContains(t, appErr.Message, "Claro!", "raw reply stays out of the user-facing error")
}

func TestGenerate_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Generate(context.Background(), "Noé", 1, 1)

	require.Error(t, err)
	appErr := apperror.From(err)
	assert.Equal(t, apperror.TypeExternalAPI, appErr.Type)
}

func TestGenerate_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Generate(context.Background(), "Noé", 1, 1)

	require.Error(t, err)
	assert.Equal(t, apperror.TypeExternalAPI, apperror.From(err).Type)
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	client := NewClient("http://localhost:0", "", "gpt-3.5-turbo", time.Second, logging.New("error"))

	_, err := client.Generate(context.Background(), "Noé", 1, 1)

	require.Error(t, err)
	assert.Equal(t, apperror.TypeInternal, apperror.From(err).Type)
}
