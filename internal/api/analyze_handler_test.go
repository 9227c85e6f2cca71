package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spacesedan/brandpulse/internal/cache"
	"github.com/spacesedan/brandpulse/internal/models"
)

type fakeScraper struct {
	tweets []models.RawTweet
	err    error
	calls  int
}

func (f *fakeScraper) Search(_ context.Context, _ string, limit int) ([]models.RawTweet, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.tweets) > limit {
		return f.tweets[:limit], nil
	}
	return f.tweets, nil
}

func (f *fakeScraper) Name() string { return "fake" }

type fakeScorer struct {
	scores map[string]float64
	err    error
}

func (f *fakeScorer) Score(_ context.Context, text string) (float64, string, error) {
	if f.err != nil {
		return 0, "", f.err
	}
	score := f.scores[text]
	label := "Neutral"
	if score > 0.05 {
		label = "Positive"
	} else if score < -0.05 {
		label = "Negative"
	}
	return score, label, nil
}

func newTestService(scraper *fakeScraper, scorer *fakeScorer) *AnalyzeService {
	return &AnalyzeService{
		Scraper: scraper,
		Scorer:  scorer,
		Store:   cache.NewMemoryStore(),
		TTL:     time.Hour,
	}
}

func postAnalyze(t *testing.T, service *AnalyzeService, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	NewAnalyzeHandler(service).Analyze()(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Detail
}

func scrapedTweets() []models.RawTweet {
	created := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	return []models.RawTweet{
		{Text: "tesla is great", CreatedAt: created, Username: "alice", Likes: 10, Retweets: 2},
		{Text: "tesla is awful", CreatedAt: created, Username: "bob", Likes: 3, Retweets: 1},
		{Text: "tesla exists", CreatedAt: created.AddDate(0, 0, 1), Username: "carol"},
	}
}

func testScores() map[string]float64 {
	return map[string]float64{
		"tesla is great": 0.8,
		"tesla is awful": -0.6,
		"tesla exists":   0.0,
	}
}

func TestAnalyzeHappyPath(t *testing.T) {
	service := newTestService(&fakeScraper{tweets: scrapedTweets()}, &fakeScorer{scores: testScores()})

	rec := postAnalyze(t, service, `{"query":"Tesla","max_results":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result.Query != "Tesla" {
		t.Errorf("Query = %q, want %q", result.Query, "Tesla")
	}
	if result.TotalTweets != 3 {
		t.Errorf("TotalTweets = %d, want 3", result.TotalTweets)
	}
	if result.PositiveCount != 1 || result.NeutralCount != 1 || result.NegativeCount != 1 {
		t.Errorf("counts = {%d,%d,%d}, want {1,1,1}",
			result.PositiveCount, result.NeutralCount, result.NegativeCount)
	}
	if result.PositivePercentage != 33 || result.NeutralPercentage != 33 || result.NegativePercentage != 33 {
		t.Errorf("percentages = {%d,%d,%d}, want {33,33,33}",
			result.PositivePercentage, result.NeutralPercentage, result.NegativePercentage)
	}
	if len(result.SentimentOverTime) != 2 {
		t.Errorf("timeline has %d buckets, want 2", len(result.SentimentOverTime))
	}
}

func TestAnalyzeValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty query", `{"query":"","max_results":10}`},
		{"whitespace query", `{"query":"   ","max_results":10}`},
		{"max_results too large", `{"query":"tesla","max_results":500}`},
		{"max_results negative", `{"query":"tesla","max_results":-1}`},
		{"malformed json", `{"query":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scraper := &fakeScraper{tweets: scrapedTweets()}
			service := newTestService(scraper, &fakeScorer{scores: testScores()})

			rec := postAnalyze(t, service, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if detail := decodeDetail(t, rec); detail == "" {
				t.Error("error body has no detail message")
			}
			if scraper.calls != 0 {
				t.Errorf("scraper was called %d times before validation passed", scraper.calls)
			}
		})
	}
}

func TestAnalyzeZeroResults(t *testing.T) {
	service := newTestService(&fakeScraper{}, &fakeScorer{})

	rec := postAnalyze(t, service, `{"query":"nosuchbrandxyz","max_results":10}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", rec.Code, rec.Body.String())
	}
	if detail := decodeDetail(t, rec); detail == "" {
		t.Error("not-found response has no detail message")
	}
}

func TestAnalyzeScraperFailure(t *testing.T) {
	service := newTestService(&fakeScraper{err: errors.New("instance down")}, &fakeScorer{})

	rec := postAnalyze(t, service, `{"query":"tesla","max_results":10}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestAnalyzeScorerFailure(t *testing.T) {
	service := newTestService(
		&fakeScraper{tweets: scrapedTweets()},
		&fakeScorer{err: errors.New("model offline")})

	rec := postAnalyze(t, service, `{"query":"tesla","max_results":10}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestAnalyzeUsesCache(t *testing.T) {
	scraper := &fakeScraper{tweets: scrapedTweets()}
	service := newTestService(scraper, &fakeScorer{scores: testScores()})

	first := postAnalyze(t, service, `{"query":"Tesla","max_results":10}`)
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", first.Code)
	}

	// Key normalization means a re-cased query hits the same entry.
	second := postAnalyze(t, service, `{"query":"  tesla ","max_results":10}`)
	if second.Code != http.StatusOK {
		t.Fatalf("second request status = %d, want 200", second.Code)
	}

	if scraper.calls != 1 {
		t.Errorf("scraper called %d times, want 1 (second request cached)", scraper.calls)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached response differs from the original")
	}
}

func TestAnalyzeDefaultMaxResults(t *testing.T) {
	scraper := &fakeScraper{tweets: scrapedTweets()}
	service := newTestService(scraper, &fakeScorer{scores: testScores()})

	rec := postAnalyze(t, service, `{"query":"tesla"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with defaulted max_results", rec.Code)
	}
}
