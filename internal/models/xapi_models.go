package models

import "time"

// XAPISearchResponse mirrors the X API v2 recent search payload, limited to
// the fields the scraper consumes.
type XAPISearchResponse struct {
	Data     []XAPITweet `json:"data"`
	Includes XAPIInclude `json:"includes"`
	Meta     XAPIMeta    `json:"meta"`
}

type XAPITweet struct {
	ID            string           `json:"id"`
	Text          string           `json:"text"`
	AuthorID      string           `json:"author_id"`
	CreatedAt     time.Time        `json:"created_at"`
	PublicMetrics XAPITweetMetrics `json:"public_metrics"`
}

type XAPITweetMetrics struct {
	LikeCount    int `json:"like_count"`
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	QuoteCount   int `json:"quote_count"`
}

type XAPIInclude struct {
	Users []XAPIUser `json:"users"`
}

type XAPIUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type XAPIMeta struct {
	ResultCount int    `json:"result_count"`
	NextToken   string `json:"next_token"`
}
