package analysis

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/spacesedan/brandpulse/internal/models"
	"github.com/spacesedan/brandpulse/internal/sentiment"
)

const (
	// Posts included in the response tweet list and the display length cap
	// for each of them.
	maxTweetsReturned = 50
	maxTweetRunes     = 280
)

// ErrNoResults is returned when there are no scored posts to aggregate.
// The endpoint maps it to a "not found" response rather than emitting a
// zero-percentage payload.
var ErrNoResults = errors.New("no posts to aggregate")

// Aggregate turns a list of scored posts into the summary consumed by the
// dashboard. It is a pure transform: no I/O, no retries, no concurrency.
func Aggregate(query string, tweets []models.Tweet) (*models.AnalysisResult, error) {
	if len(tweets) == 0 {
		return nil, ErrNoResults
	}

	total := len(tweets)
	var positive, neutral, negative int
	var totalScore float64
	byDate := make(map[string]*models.TimelineBucket)

	texts := make([]string, 0, total)
	for _, t := range tweets {
		totalScore += t.SentimentScore
		texts = append(texts, t.Text)

		switch t.SentimentLabel {
		case sentiment.LabelPositive:
			positive++
		case sentiment.LabelNegative:
			negative++
		default:
			neutral++
		}

		day := t.CreatedAt.UTC().Format(time.DateOnly)
		bucket, ok := byDate[day]
		if !ok {
			bucket = &models.TimelineBucket{Date: day}
			byDate[day] = bucket
		}
		switch t.SentimentLabel {
		case sentiment.LabelPositive:
			bucket.Positive++
		case sentiment.LabelNegative:
			bucket.Negative++
		default:
			bucket.Neutral++
		}
	}

	avgScore := roundTo(totalScore/float64(total), 3)

	display := make([]models.Tweet, 0, min(total, maxTweetsReturned))
	for _, t := range tweets[:min(total, maxTweetsReturned)] {
		t.Text = truncateRunes(t.Text, maxTweetRunes)
		t.SentimentScore = roundTo(t.SentimentScore, 3)
		display = append(display, t)
	}

	return &models.AnalysisResult{
		Query:              query,
		TotalTweets:        total,
		OverallSentiment:   sentiment.LabelFor(avgScore),
		SentimentScore:     avgScore,
		PositiveCount:      positive,
		NeutralCount:       neutral,
		NegativeCount:      negative,
		PositivePercentage: percentage(positive, total),
		NeutralPercentage:  percentage(neutral, total),
		NegativePercentage: percentage(negative, total),
		Tweets:             display,
		TrendingHashtags:   ExtractHashtags(texts),
		SentimentOverTime:  sortTimeline(byDate),
	}, nil
}

// percentage rounds to the nearest whole number. With three equal labels
// the shares come out as {33,33,33}; rounded percentages always sum to
// 100 plus or minus 1.
func percentage(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func sortTimeline(byDate map[string]*models.TimelineBucket) []models.TimelineBucket {
	timeline := make([]models.TimelineBucket, 0, len(byDate))
	for _, bucket := range byDate {
		timeline = append(timeline, *bucket)
	}
	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].Date < timeline[j].Date
	})
	return timeline
}
