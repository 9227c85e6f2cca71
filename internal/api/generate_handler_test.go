package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spacesedan/brandpulse/internal/models"
)

type fakeGenerator struct {
	resp *models.GenerateResponse
	err  error
}

func (f *fakeGenerator) GenerateTweet(_ context.Context, _ models.GenerateRequest) (*models.GenerateResponse, error) {
	return f.resp, f.err
}

func postGenerate(t *testing.T, gen TweetGenerator, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	NewGenerateHandler(gen).Generate()(rec, req)
	return rec
}

func TestGenerateUnconfigured(t *testing.T) {
	rec := postGenerate(t, nil, `{"topic":"Tesla"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when no generator is configured", rec.Code)
	}
}

func TestGenerateEmptyTopic(t *testing.T) {
	rec := postGenerate(t, &fakeGenerator{}, `{"topic":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGenerateHappyPath(t *testing.T) {
	gen := &fakeGenerator{resp: &models.GenerateResponse{Topic: "Tesla", Tweet: "Great cars!"}}

	rec := postGenerate(t, gen, `{"topic":"Tesla","tone":"upbeat"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp models.GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Tweet != "Great cars!" {
		t.Errorf("Tweet = %q, want %q", resp.Tweet, "Great cars!")
	}
}

func TestGenerateUpstreamFailure(t *testing.T) {
	rec := postGenerate(t, &fakeGenerator{err: errors.New("rate limited")}, `{"topic":"Tesla"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
