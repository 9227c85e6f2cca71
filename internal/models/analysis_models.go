package models

// AnalyzeRequest is the POST /analyze body.
type AnalyzeRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

// HashtagCount is one trending hashtag with its occurrence count.
type HashtagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TimelineBucket holds per-label counts for one calendar day.
type TimelineBucket struct {
	Date     string `json:"date"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
}

// AnalysisResult is the complete aggregated response for one search query.
// It is built once per request and never persisted.
type AnalysisResult struct {
	Query              string           `json:"query"`
	TotalTweets        int              `json:"total_tweets"`
	OverallSentiment   string           `json:"overall_sentiment"`
	SentimentScore     float64          `json:"sentiment_score"`
	PositiveCount      int              `json:"positive_count"`
	NeutralCount       int              `json:"neutral_count"`
	NegativeCount      int              `json:"negative_count"`
	PositivePercentage int              `json:"positive_percentage"`
	NeutralPercentage  int              `json:"neutral_percentage"`
	NegativePercentage int              `json:"negative_percentage"`
	Tweets             []Tweet          `json:"tweets"`
	TrendingHashtags   []HashtagCount   `json:"trending_hashtags"`
	SentimentOverTime  []TimelineBucket `json:"sentiment_over_time"`
}
