// Package grading оценивает свободные ответы игроков через OpenAI-совместимый API.
package grading

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/yourusername/progress-api/internal/domain/entity"
	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

const (
	DefaultModel       = "gpt-4o"
	DefaultMaxTokens   = 100
	DefaultTemperature = 1.0
	DefaultTimeout     = 30 * time.Second
)

// Config - параметры подключения к сервису оценки
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// OpenAIGrader реализует service.Grader поверх go-openai
type OpenAIGrader struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewOpenAIGrader создает клиента оценки. Пустой ключ API является ошибкой конфигурации.
func NewOpenAIGrader(cfg Config) (*OpenAIGrader, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	g := &OpenAIGrader{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
	if g.model == "" {
		g.model = DefaultModel
	}
	if g.maxTokens <= 0 {
		g.maxTokens = DefaultMaxTokens
	}
	if g.temperature <= 0 {
		g.temperature = DefaultTemperature
	}
	if g.timeout <= 0 {
		g.timeout = DefaultTimeout
	}
	return g, nil
}

// Grade отправляет ответ на оценку и возвращает текст первого варианта без изменений.
// Формат ответа модели ({score, reason}) не разбирается.
func (g *OpenAIGrader) Grade(ctx context.Context, submission entity.AnswerSubmission) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(submission)},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return "", mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in grading response", apperrors.ErrUpstream)
	}
	return resp.Choices[0].Message.Content, nil
}

// ModelID возвращает используемую модель
func (g *OpenAIGrader) ModelID() string {
	return g.model
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: grading rate limited: %v", apperrors.ErrUpstream, err)
		}
		return fmt.Errorf("%w: grading failed with status %d: %v", apperrors.ErrUpstream, apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w: grading failed with status %d: %v", apperrors.ErrUpstream, reqErr.HTTPStatusCode, err)
	}
	return fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
}

const promptTemplate = `Ist das eine Verletzung deiner Rechte?
Situation: {{situation}}
Frage: Ist das eine Verletzung deiner Rechte?
User-Input: {{userInput}}
Lösung: {{solution}}
Aufgabe: Vergleiche den User-Input mit der Lösung. Antwort mit "Ja" oder "Nein".
Fasse die Begründung kurz und bündig zusammen.
Regeln:
1. Die Antwort sollte nicht länger als 3 Sätze sein.
2. Bei einem "Nein", erkläre kurz, warum nicht, und sprich den User direkt an.
3. Bei einem "Ja", erkläre kurz, warum, und sprich den User direkt mit "DU" an.
4. Bewerte die Übereinstimmung mit der richtigen Antwort auf einer Skala von 1 bis 10,
wobei 10 eine eindeutige Übereinstimmung bedeutet.
5. Wenn die Antwort des Users mit der Lösung übereinstimmt, aber keine Begründung gegeben ist,
vergib einen Score von 2.
6. Wenn die Antwort und Begründung vollständig mit der Lösung übereinstimmen, vergib einen Score
von 10.
7. Wenn die Antwort falsch ist, vergib einen Score zwischen 1 und 5 basierend
auf der Relevanz der Begründung.
Anleitung für die Begründung:
- Gebe einen kurzen Text, der einen Lerneffekt bei den Schülern auslöst. Maximal 4 Sätze.
Ausgabeformat:
{score: number, reason: string}`

// BuildPrompt подставляет ответ игрока в шаблон запроса
func BuildPrompt(s entity.AnswerSubmission) string {
	r := strings.NewReplacer(
		"{{situation}}", s.Situation,
		"{{userInput}}", s.UserInput,
		"{{solution}}", s.Solution,
	)
	return r.Replace(promptTemplate)
}
