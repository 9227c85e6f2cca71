package sentiment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/spacesedan/brandpulse/internal/clients"
)

func newTestOpenAIScorer(t *testing.T, handler http.HandlerFunc) *OpenAIScorer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return &OpenAIScorer{client: &clients.OpenAIClient{
		Client: openai.NewClientWithConfig(cfg),
	}}
}

func TestOpenAIScoreBatch(t *testing.T) {
	scorer := newTestOpenAIScorer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"{\"scores\":[{\"id\":0,\"score\":0.8},{\"id\":1,\"score\":-0.6}]}"}}]}`)
	})

	scores, err := scorer.ScoreBatch(context.Background(), []string{"love it", "hate it"})
	if err != nil {
		t.Fatalf("ScoreBatch returned error: %v", err)
	}
	if len(scores) != 2 || scores[0] != 0.8 || scores[1] != -0.6 {
		t.Errorf("scores = %v, want [0.8 -0.6]", scores)
	}
}

func TestOpenAIScoreBatchEmptyChoices(t *testing.T) {
	scorer := newTestOpenAIScorer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[]}`)
	})

	if _, err := scorer.ScoreBatch(context.Background(), []string{"anything"}); err == nil {
		t.Error("expected an error for a completion with no choices")
	}
}

func TestOpenAIScoreBatchMissingIDDefaultsNeutral(t *testing.T) {
	scorer := newTestOpenAIScorer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"{\"scores\":[{\"id\":1,\"score\":0.5}]}"}}]}`)
	})

	scores, err := scorer.ScoreBatch(context.Background(), []string{"dropped", "kept"})
	if err != nil {
		t.Fatalf("ScoreBatch returned error: %v", err)
	}
	if scores[0] != 0 || scores[1] != 0.5 {
		t.Errorf("scores = %v, want [0 0.5]", scores)
	}
}
