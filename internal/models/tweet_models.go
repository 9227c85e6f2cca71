package models

import "time"

// Tweet is a single scraped post after scoring. Immutable once built.
type Tweet struct {
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
	SentimentScore float64   `json:"sentiment_score"`
	SentimentLabel string    `json:"sentiment_label"`
	Username       string    `json:"username"`
	Likes          int       `json:"likes"`
	Retweets       int       `json:"retweets"`
}

// RawTweet is a scraped post before sentiment scoring.
type RawTweet struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	Likes     int       `json:"likes"`
	Retweets  int       `json:"retweets"`
}
