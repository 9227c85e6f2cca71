package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spacesedan/brandpulse/internal/analysis"
	"github.com/spacesedan/brandpulse/internal/models"
	"github.com/spacesedan/brandpulse/internal/monitoring"
)

const (
	defaultMaxResults = 100
	maxResultsCap     = 200
)

// AnalyzeHandler handles POST /analyze.
type AnalyzeHandler struct {
	service *AnalyzeService
}

func NewAnalyzeHandler(service *AnalyzeService) *AnalyzeHandler {
	return &AnalyzeHandler{service: service}
}

func (h *AnalyzeHandler) Analyze() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer monitoring.ObserveAnalyzeDuration(start)

		var req models.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			monitoring.IncAnalyzeOutcome("invalid")
			badRequest(w, "invalid JSON body")
			return
		}

		query := strings.TrimSpace(req.Query)
		if query == "" {
			monitoring.IncAnalyzeOutcome("invalid")
			badRequest(w, "query must not be empty")
			return
		}

		maxResults := req.MaxResults
		if maxResults == 0 {
			maxResults = defaultMaxResults
		}
		if maxResults < 1 || maxResults > maxResultsCap {
			monitoring.IncAnalyzeOutcome("invalid")
			badRequest(w, fmt.Sprintf("max_results must be between 1 and %d", maxResultsCap))
			return
		}

		result, cached, err := h.service.Analyze(r.Context(), query, maxResults)
		switch {
		case errors.Is(err, analysis.ErrNoResults):
			monitoring.IncAnalyzeOutcome("not_found")
			notFound(w, fmt.Sprintf("No posts found for '%s'. Try a different search term.", query))
			return
		case err != nil:
			monitoring.IncAnalyzeOutcome("upstream_error")
			slog.Error("[AnalyzeHandler] Analyze failed",
				slog.String("query", query),
				slog.String("error", err.Error()))
			badGateway(w, "Error analyzing sentiment, please try again later")
			return
		}

		if cached {
			monitoring.IncAnalyzeOutcome("cached")
		} else {
			monitoring.IncAnalyzeOutcome("ok")
		}

		slog.Info("[AnalyzeHandler] Analysis complete",
			slog.String("query", query),
			slog.Int("total_tweets", result.TotalTweets),
			slog.Bool("cached", cached),
			slog.Duration("elapsed", time.Since(start)))

		writeJSON(w, http.StatusOK, result)
	}
}
