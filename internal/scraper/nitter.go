package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/spacesedan/brandpulse/config"
	"github.com/spacesedan/brandpulse/internal/models"
)

const (
	nitterUserAgent = "brandpulse-bot/0.1"
	nitterDateTitle = "Jan 2, 2006 · 3:04 PM MST"
)

// NitterScraper scrapes a public Nitter instance's search page. It needs
// no credentials, which is why it is the default backend.
type NitterScraper struct {
	baseURL string
	timeout time.Duration
}

func NewNitterScraper(cfg config.Scraper) *NitterScraper {
	return &NitterScraper{
		baseURL: strings.TrimRight(cfg.NitterBaseURL, "/"),
		timeout: cfg.RequestTimeout,
	}
}

func (n *NitterScraper) Name() string { return "nitter" }

// Search walks the instance's search results, following "Load more"
// cursors until limit posts are collected or no more pages exist.
func (n *NitterScraper) Search(ctx context.Context, query string, limit int) ([]models.RawTweet, error) {
	base, err := url.Parse(n.baseURL)
	if err != nil {
		return nil, fmt.Errorf("[NitterScraper] invalid base URL: %w", err)
	}

	var tweets []models.RawTweet
	var scrapeErr error

	c := colly.NewCollector(
		colly.UserAgent(nitterUserAgent),
		colly.AllowedDomains(base.Hostname()),
	)
	c.SetRequestTimeout(n.timeout)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.OnHTML("div.timeline-item", func(e *colly.HTMLElement) {
		if len(tweets) >= limit {
			return
		}
		// Skip retweets; original posts only.
		if e.DOM.Find(".retweet-header").Length() > 0 {
			return
		}

		text := strings.TrimSpace(e.ChildText(".tweet-content"))
		if text == "" || strings.HasPrefix(text, "RT @") {
			return
		}

		tweets = append(tweets, models.RawTweet{
			Text:      text,
			Username:  strings.TrimPrefix(e.ChildText(".username"), "@"),
			CreatedAt: parseNitterDate(e.ChildAttr(".tweet-date a", "title")),
			Likes:     parseStat(e, "icon-heart"),
			Retweets:  parseStat(e, "icon-retweet"),
		})
	})

	c.OnHTML("div.show-more a[href]", func(e *colly.HTMLElement) {
		if len(tweets) >= limit {
			return
		}
		// The top-of-page link refreshes the timeline instead of paging.
		if strings.Contains(e.Text, "newest") {
			return
		}
		if err := e.Request.Visit(e.Attr("href")); err != nil &&
			!errors.Is(err, colly.ErrAlreadyVisited) && err != colly.ErrMaxDepth {
			slog.Warn("[NitterScraper] Failed to follow cursor",
				slog.String("error", err.Error()))
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = fmt.Errorf("[NitterScraper] request failed with status %d: %w",
			r.StatusCode, err)
	})

	searchURL := fmt.Sprintf("%s/search?f=tweets&q=%s", n.baseURL, url.QueryEscape(query))
	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("[NitterScraper] failed to visit search page: %w", err)
	}
	c.Wait()

	if scrapeErr != nil && len(tweets) == 0 {
		return nil, scrapeErr
	}

	slog.Info("[NitterScraper] Search complete",
		slog.String("query", query),
		slog.Int("tweets", len(tweets)))

	return tweets, nil
}

// parseNitterDate reads the absolute timestamp from a tweet link's title
// attribute. Unparseable dates fall back to scrape time so timeline
// bucketing still has a day to land in.
func parseNitterDate(title string) time.Time {
	t, err := time.Parse(nitterDateTitle, title)
	if err != nil {
		return time.Now().UTC()
	}
	return t
}

func parseStat(e *colly.HTMLElement, icon string) int {
	var raw string
	e.ForEach(".tweet-stats .icon-container", func(_ int, el *colly.HTMLElement) {
		if el.DOM.Find("span."+icon).Length() > 0 {
			raw = strings.TrimSpace(el.Text)
		}
	})

	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return count
}
