package generator

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/russross/blackfriday/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/spacesedan/brandpulse/config"
	"github.com/spacesedan/brandpulse/internal/clients"
	"github.com/spacesedan/brandpulse/internal/models"
)

const (
	generatorModel    = openai.GPT4oMini
	generatorAttempts = 3
	maxTweetLength    = 280
)

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// Generator produces sample posts through the hosted LLM. It only exists
// when an OpenAI credential is configured.
type Generator struct {
	client *clients.OpenAIClient
}

// New returns clients.ErrNoCredentials when no API key is configured; the
// endpoint then reports the feature as unavailable instead of crashing.
func New(cfg config.OpenAI) (*Generator, error) {
	client, err := clients.GetOpenAIClient(cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return &Generator{client: client}, nil
}

// GenerateTweet asks the model to draft one post about the topic. The
// reply is stripped of markdown formatting and clipped to post length.
func (g *Generator) GenerateTweet(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error) {
	tone := req.Tone
	if tone == "" {
		tone = "engaging"
	}

	prompt := fmt.Sprintf(
		"Write a single %s tweet about %q. Under 280 characters, no surrounding quotes, at most two hashtags.",
		tone, req.Topic)

	var resp openai.ChatCompletionResponse
	var completionErr error
	for i := 0; i < generatorAttempts; i++ {
		start := time.Now()
		resp, completionErr = g.client.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: generatorModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if completionErr == nil {
			break
		}
		slog.Warn("[Generator] Failed to get a response from OpenAI, retrying...",
			slog.String("error", completionErr.Error()),
			slog.Int("attempt", i+1),
			slog.Duration("elapsed", time.Since(start)))
	}
	if completionErr != nil {
		return nil, fmt.Errorf("tweet generation failed after %d attempts: %w",
			generatorAttempts, completionErr)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no completion choices")
	}

	tweet := StripMarkdown(resp.Choices[0].Message.Content)
	if runes := []rune(tweet); len(runes) > maxTweetLength {
		tweet = string(runes[:maxTweetLength])
	}

	return &models.GenerateResponse{Topic: req.Topic, Tweet: tweet}, nil
}

// StripMarkdown renders markdown the model sneaks into replies down to the
// plain text a post should carry. CommonExtensions keeps SpaceHeadings on
// so a reply that opens with a hashtag is not parsed as a heading.
func StripMarkdown(input string) string {
	rendered := blackfriday.Run([]byte(input))
	plain := htmlTagPattern.ReplaceAllString(string(rendered), "")
	plain = html.UnescapeString(plain)
	plain = strings.Trim(strings.Join(strings.Fields(plain), " "), `"`)
	return plain
}
