package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ismaelstrey/quiz-biblico/src/core/apperror"
	"github.com/ismaelstrey/quiz-biblico/src/core/logging"
)

const systemPrompt = "Você é um especialista em Bíblia que cria perguntas educativas e " +
	"precisas sobre temas bíblicos. Sempre forneça respostas em formato JSON válido."

// Client calls the chat-completions API of an OpenAI-compatible service.
// Calls are single-shot with a bounded timeout; a failed generation surfaces
// immediately since it is always user-triggered.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	log        *logging.Logger
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration, log *logging.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		log:        log,
	}
}

// GeneratedAnswer mirrors one alternative of the model's JSON output.
type GeneratedAnswer struct {
	AnswerText string `json:"answerText"`
	IsCorrect  bool   `json:"isCorrect"`
}

// GeneratedQuestion mirrors one question of the model's JSON output.
type GeneratedQuestion struct {
	QuestionText string            `json:"questionText"`
	BibleVerse   string            `json:"bibleVerse"`
	Difficulty   int               `json:"difficulty"`
	Explanation  string            `json:"explanation"`
	Answers      []GeneratedAnswer `json:"answers"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type generatedPayload struct {
	Questions []GeneratedQuestion `json:"questions"`
}

// Generate asks the completion service for count questions about topic at the
// given difficulty and parses the reply strictly as JSON. The raw reply is
// kept only in logs on parse failure, never in the returned error.
func (c *Client) Generate(ctx context.Context, topic string, difficulty, count int) ([]GeneratedQuestion, error) {
	if c.apiKey == "" {
		return nil, apperror.Internal("question generation is not configured", nil)
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(topic, difficulty, count)},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	}
	encoded, err := json.Marshal(reqBody)
	if err != nil {
		return nil, apperror.Internal("failed to encode completion request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return nil, apperror.Internal("failed to build completion request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.ExternalAPI("completion service unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.ExternalAPI("failed to read completion response", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("completion service returned status %d: %s", resp.StatusCode, body)
		return nil, apperror.ExternalAPI(fmt.Sprintf("completion service returned status %d", resp.StatusCode), nil)
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		c.log.Error("unparseable completion envelope: %s", body)
		return nil, apperror.ExternalAPI("invalid completion response", err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, apperror.ExternalAPI("empty completion response", nil)
	}

	content := completion.Choices[0].Message.Content
	var payload generatedPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		c.log.Error("model reply is not the expected JSON: %s", content)
		return nil, apperror.Internal("generated questions could not be parsed", err)
	}
	if len(payload.Questions) == 0 {
		return nil, apperror.Internal("generated questions could not be parsed", nil)
	}

	return payload.Questions, nil
}

func buildPrompt(topic string, difficulty, count int) string {
	return fmt.Sprintf(`Gere %d perguntas bíblicas sobre o tópico %q com nível de dificuldade %d (1-5, onde 1 é iniciante e 5 é expert).

Cada pergunta deve:
- Ser baseada em versículos bíblicos específicos
- Incluir a referência bíblica
- Ter 4 alternativas sendo apenas uma correta
- Incluir uma breve explicação da resposta correta
- Ser apropriada para o nível de dificuldade especificado

Formato de resposta (JSON):
{
  "questions": [
    {
      "questionText": "Pergunta aqui?",
      "bibleVerse": "Livro capítulo:versículo",
      "difficulty": %d,
      "explanation": "Explicação da resposta correta",
      "answers": [
        { "answerText": "Alternativa A", "isCorrect": false },
        { "answerText": "Alternativa B", "isCorrect": true },
        { "answerText": "Alternativa C", "isCorrect": false },
        { "answerText": "Alternativa D", "isCorrect": false }
      ]
    }
  ]
}

Responda APENAS com o JSON válido, sem texto adicional.`, count, topic, difficulty, difficulty)
}
