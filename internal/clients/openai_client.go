package clients

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Timeout for individual OpenAI API requests.
const openAIRequestTimeout = 60 * time.Second

// ErrNoCredentials is returned when no OpenAI API key is configured. The
// caller is expected to fall back to the local scoring path.
var ErrNoCredentials = errors.New("no OpenAI API key configured")

var (
	openAIClientInstance *OpenAIClient
	openAIOnce           sync.Once
)

type OpenAIClient struct {
	Client *openai.Client
}

// GetOpenAIClient returns the shared OpenAI client, or ErrNoCredentials
// when no API key is configured. A missing key never crashes the service.
func GetOpenAIClient(apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, ErrNoCredentials
	}
	openAIOnce.Do(func() {
		config := openai.DefaultConfig(apiKey)
		config.HTTPClient = &http.Client{
			Timeout: openAIRequestTimeout,
		}

		openAIClientInstance = &OpenAIClient{
			Client: openai.NewClientWithConfig(config),
		}
		slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
			slog.Duration("timeout", openAIRequestTimeout))
	})
	return openAIClientInstance, nil
}
