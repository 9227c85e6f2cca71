package scraper

import (
	"context"

	"github.com/spacesedan/brandpulse/config"
	"github.com/spacesedan/brandpulse/internal/models"
)

// Scraper fetches up to limit recent posts matching a search query.
// Zero matches is not an error: implementations return an empty slice and
// let the caller decide how to surface it.
type Scraper interface {
	Search(ctx context.Context, query string, limit int) ([]models.RawTweet, error)
	Name() string
}

// New picks the scraping backend: the X API when credentials are
// configured, otherwise the credential-free Nitter scraper.
func New(cfg config.Scraper) Scraper {
	if cfg.UseXAPI() {
		return NewXAPIScraper(cfg)
	}
	return NewNitterScraper(cfg)
}
