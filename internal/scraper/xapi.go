package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/spacesedan/brandpulse/config"
	"github.com/spacesedan/brandpulse/internal/models"
)

const (
	xAuthURL      = "https://api.twitter.com/oauth2/token"
	xSearchURL    = "https://api.twitter.com/2/tweets/search/recent"
	xPageSizeMax  = 100
	xRetryBackoff = 2 * time.Second
)

// XAPIScraper talks to the X API v2 recent-search endpoint with an
// app-only bearer token. Used when client credentials are configured.
type XAPIScraper struct {
	conf      *clientcredentials.Config
	searchURL string
	timeout   time.Duration
	backoff   time.Duration

	mu     sync.Mutex
	client *http.Client
}

func NewXAPIScraper(cfg config.Scraper) *XAPIScraper {
	authURL := cfg.XAuthURL
	if authURL == "" {
		authURL = xAuthURL
	}
	searchURL := cfg.XSearchURL
	if searchURL == "" {
		searchURL = xSearchURL
	}

	oauthConf := &clientcredentials.Config{
		ClientID:     cfg.XClientID,
		ClientSecret: cfg.XClientSecret,
		TokenURL:     authURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	return &XAPIScraper{
		conf:      oauthConf,
		searchURL: searchURL,
		client:    oauthConf.Client(context.Background()),
		timeout:   cfg.RequestTimeout,
		backoff:   xRetryBackoff,
	}
}

func (x *XAPIScraper) Name() string { return "x-api" }

// refreshClient and httpClient guard the client pointer with the same
// mutex; one scraper instance serves concurrent HTTP requests.
func (x *XAPIScraper) refreshClient() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.client = x.conf.Client(context.Background())
}

func (x *XAPIScraper) httpClient() *http.Client {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.client
}

// Search pages through recent-search results until limit posts are
// collected or the API runs out of pages.
func (x *XAPIScraper) Search(ctx context.Context, query string, limit int) ([]models.RawTweet, error) {
	var tweets []models.RawTweet
	nextToken := ""
	refreshed := false

	for len(tweets) < limit {
		page, err := x.fetchPage(ctx, query, limit-len(tweets), nextToken)
		if err != nil {
			if err == errTokenExpired && !refreshed {
				slog.Warn("[XAPIScraper] Token expired - Refreshing and Retrying...")
				x.refreshClient()
				refreshed = true
				continue
			}
			return nil, err
		}

		users := make(map[string]string, len(page.Includes.Users))
		for _, u := range page.Includes.Users {
			users[u.ID] = u.Username
		}

		for _, t := range page.Data {
			tweets = append(tweets, models.RawTweet{
				Text:      t.Text,
				Username:  users[t.AuthorID],
				CreatedAt: t.CreatedAt,
				Likes:     t.PublicMetrics.LikeCount,
				Retweets:  t.PublicMetrics.RetweetCount,
			})
		}

		if page.Meta.NextToken == "" || len(page.Data) == 0 {
			break
		}
		nextToken = page.Meta.NextToken
	}

	if len(tweets) > limit {
		tweets = tweets[:limit]
	}

	slog.Info("[XAPIScraper] Search complete",
		slog.String("query", query),
		slog.Int("tweets", len(tweets)))

	return tweets, nil
}

var errTokenExpired = fmt.Errorf("bearer token expired")

func (x *XAPIScraper) fetchPage(ctx context.Context, query string, remaining int, nextToken string) (*models.XAPISearchResponse, error) {
	pageSize := remaining
	if pageSize > xPageSizeMax {
		pageSize = xPageSizeMax
	}
	if pageSize < 10 {
		pageSize = 10 // API minimum
	}

	parsedURL, err := url.Parse(x.searchURL)
	if err != nil {
		return nil, fmt.Errorf("[XAPIScraper] failed to parse URL: %w", err)
	}
	queryParams := parsedURL.Query()
	queryParams.Add("query", query+" -is:retweet lang:en")
	queryParams.Add("max_results", strconv.Itoa(pageSize))
	queryParams.Add("tweet.fields", "created_at,public_metrics")
	queryParams.Add("expansions", "author_id")
	queryParams.Add("user.fields", "username")
	if nextToken != "" {
		queryParams.Add("next_token", nextToken)
	}
	parsedURL.RawQuery = queryParams.Encode()

	reqCtx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, parsedURL.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := x.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("[XAPIScraper] search request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		io.Copy(io.Discard, resp.Body)
		return nil, errTokenExpired
	case http.StatusTooManyRequests:
		slog.Warn("[XAPIScraper] 429 Too Many Requests - Retrying with backoff")
		io.Copy(io.Discard, resp.Body)
		select {
		case <-time.After(x.backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return x.fetchPage(ctx, query, remaining, nextToken)
	default:
		return nil, fmt.Errorf("[XAPIScraper] unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("[XAPIScraper] failed to read response body: %w", err)
	}

	var page models.XAPISearchResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("[XAPIScraper] failed to parse JSON response: %w", err)
	}

	return &page, nil
}
