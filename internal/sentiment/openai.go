package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/spacesedan/brandpulse/config"
	"github.com/spacesedan/brandpulse/internal/clients"
	"github.com/spacesedan/brandpulse/internal/models"
	"github.com/spacesedan/brandpulse/internal/utils"
)

const (
	openAIModel         = openai.GPT4oMini
	openAIRetryAttempts = 3
	scoreBatchSize      = 20
)

const scoreSystemMessage = `You are a sentiment rater for social media posts about brands and products.

You will receive a JSON array of objects with "id" and "text" fields.

For every post, produce a sentiment polarity score between -1.0 (extremely negative) and 1.0 (extremely positive), where 0.0 is neutral.

Respond only with a valid JSON object in exactly this shape, with one entry per input post and the same ids you received:
{
  "scores": [
    {"id": 0, "score": 0.8}
  ]
}`

// OpenAIScorer scores posts with an LLM chat completion, batching posts to
// keep the request count down. Posts whose score the model drops come back
// as neutral rather than failing the whole batch.
type OpenAIScorer struct {
	client *clients.OpenAIClient
}

// NewOpenAIScorer returns clients.ErrNoCredentials when no API key is
// configured; callers fall back to the VADER backend.
func NewOpenAIScorer(cfg config.OpenAI) (*OpenAIScorer, error) {
	client, err := clients.GetOpenAIClient(cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return &OpenAIScorer{client: client}, nil
}

func (o *OpenAIScorer) Score(ctx context.Context, text string) (float64, string, error) {
	scores, err := o.ScoreBatch(ctx, []string{text})
	if err != nil {
		return 0, "", err
	}
	return scores[0], LabelFor(scores[0]), nil
}

// ScoreBatch scores texts in request batches, preserving input order.
func (o *OpenAIScorer) ScoreBatch(ctx context.Context, texts []string) ([]float64, error) {
	scores := make([]float64, len(texts))

	offset := 0
	for _, group := range utils.Chunk(texts, scoreBatchSize) {
		groupScores, err := o.scoreGroup(ctx, group)
		if err != nil {
			return nil, err
		}
		copy(scores[offset:], groupScores)
		offset += len(group)
	}

	return scores, nil
}

func (o *OpenAIScorer) scoreGroup(ctx context.Context, texts []string) ([]float64, error) {
	type post struct {
		ID   int    `json:"id"`
		Text string `json:"text"`
	}

	posts := make([]post, len(texts))
	for i, t := range texts {
		posts[i] = post{ID: i, Text: CleanPostText(t)}
	}
	payload, err := json.Marshal(posts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score batch: %w", err)
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: scoreSystemMessage},
		{Role: openai.ChatMessageRoleUser, Content: string(payload)},
	}

	var resp openai.ChatCompletionResponse
	var completionErr error
	for i := 0; i < openAIRetryAttempts; i++ {
		start := time.Now()
		resp, completionErr = o.client.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    openAIModel,
			Messages: messages,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if completionErr == nil {
			break
		}
		slog.Warn("[OpenAIScorer] Failed to get a response from OpenAI, retrying...",
			slog.String("error", completionErr.Error()),
			slog.Int("attempt", i+1),
			slog.Duration("elapsed", time.Since(start)))
	}
	if completionErr != nil {
		return nil, fmt.Errorf("openai scoring failed after %d attempts: %w",
			openAIRetryAttempts, completionErr)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no completion choices")
	}

	cleaned := CleanModelResponse(resp.Choices[0].Message.Content)

	var parsed models.OpenAIScoreResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		slog.Error("[OpenAIScorer] Failed to unmarshal score response",
			slog.String("error", err.Error()),
			slog.String("cleaned_response", cleaned))
		return nil, fmt.Errorf("failed to parse openai score response: %w", err)
	}

	scores := make([]float64, len(texts))
	seen := make(map[int]bool, len(parsed.Scores))
	for _, s := range parsed.Scores {
		if s.ID < 0 || s.ID >= len(texts) || seen[s.ID] {
			continue
		}
		scores[s.ID] = clampScore(s.Score)
		seen[s.ID] = true
	}
	for i := range texts {
		if !seen[i] {
			slog.Warn("[OpenAIScorer] No score returned for post, defaulting to neutral",
				slog.Int("id", i))
		}
	}

	return scores, nil
}

func clampScore(score float64) float64 {
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}

// CleanModelResponse removes markdown code fences the model sometimes wraps
// around its JSON reply.
func CleanModelResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "\n")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimPrefix(cleaned, "\n")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}

	return strings.TrimSpace(cleaned)
}
