package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/brandpulse/internal/analysis"
	"github.com/spacesedan/brandpulse/internal/cache"
	"github.com/spacesedan/brandpulse/internal/models"
	"github.com/spacesedan/brandpulse/internal/monitoring"
	"github.com/spacesedan/brandpulse/internal/scraper"
	"github.com/spacesedan/brandpulse/internal/sentiment"
)

// AnalyzeService orchestrates one analyze request:
// cache lookup, scrape, per-post scoring, aggregation, cache store.
type AnalyzeService struct {
	Scraper scraper.Scraper
	Scorer  sentiment.Scorer
	Store   cache.Store
	TTL     time.Duration
}

// Analyze runs the full flow for a validated query. The bool reports
// whether the response came from the cache.
func (s *AnalyzeService) Analyze(ctx context.Context, query string, maxResults int) (*models.AnalysisResult, bool, error) {
	key := cache.NormalizeKey(query)
	if payload, ok := s.Store.Get(ctx, key); ok {
		var result models.AnalysisResult
		if err := json.Unmarshal(payload, &result); err == nil {
			monitoring.IncCacheLookup("hit")
			slog.Info("[AnalyzeService] Cache hit",
				slog.String("query", query))
			return &result, true, nil
		}
		slog.Warn("[AnalyzeService] Discarding corrupt cache entry",
			slog.String("key", key))
	}
	monitoring.IncCacheLookup("miss")

	rawTweets, err := s.Scraper.Search(ctx, query, maxResults)
	if err != nil {
		return nil, false, fmt.Errorf("scraping failed: %w", err)
	}
	monitoring.PostsScraped.Observe(float64(len(rawTweets)))

	if len(rawTweets) == 0 {
		return nil, false, analysis.ErrNoResults
	}

	scored, err := s.scoreAll(ctx, rawTweets)
	if err != nil {
		return nil, false, fmt.Errorf("scoring failed: %w", err)
	}

	result, err := analysis.Aggregate(query, scored)
	if err != nil {
		return nil, false, err
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := s.Store.Set(ctx, key, payload, s.TTL); err != nil {
			slog.Warn("[AnalyzeService] Failed to cache result",
				slog.String("query", query),
				slog.String("error", err.Error()))
		}
	}

	return result, false, nil
}

func (s *AnalyzeService) scoreAll(ctx context.Context, rawTweets []models.RawTweet) ([]models.Tweet, error) {
	tweets := make([]models.Tweet, len(rawTweets))

	if batcher, ok := s.Scorer.(sentiment.BatchScorer); ok {
		texts := make([]string, len(rawTweets))
		for i, rt := range rawTweets {
			texts[i] = rt.Text
		}
		scores, err := batcher.ScoreBatch(ctx, texts)
		if err != nil {
			return nil, err
		}
		for i, rt := range rawTweets {
			tweets[i] = scoredTweet(rt, scores[i], sentiment.LabelFor(scores[i]))
		}
		return tweets, nil
	}

	for i, rt := range rawTweets {
		score, label, err := s.Scorer.Score(ctx, rt.Text)
		if err != nil {
			return nil, err
		}
		tweets[i] = scoredTweet(rt, score, label)
	}
	return tweets, nil
}

func scoredTweet(rt models.RawTweet, score float64, label string) models.Tweet {
	return models.Tweet{
		Text:           rt.Text,
		CreatedAt:      rt.CreatedAt,
		Username:       rt.Username,
		Likes:          rt.Likes,
		Retweets:       rt.Retweets,
		SentimentScore: score,
		SentimentLabel: label,
	}
}
