package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	AnalyzeRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brandpulse_analyze_requests_total",
		Help: "Total analyze requests by outcome",
	}, []string{"outcome"})
	AnalyzeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "brandpulse_analyze_duration_seconds",
		Help:    "Analyze request duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brandpulse_cache_lookups_total",
		Help: "Analysis cache lookups by result",
	}, []string{"result"})
	PostsScraped = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "brandpulse_posts_scraped",
		Help:    "Posts scraped per analyze request",
		Buckets: []float64{0, 10, 25, 50, 100, 200},
	})
)

func init() {
	prometheus.MustRegister(AnalyzeRequests, AnalyzeDuration, CacheLookups, PostsScraped)
}

// ObserveAnalyzeDuration records one analyze request's duration.
func ObserveAnalyzeDuration(start time.Time) {
	AnalyzeDuration.Observe(time.Since(start).Seconds())
}

// IncAnalyzeOutcome counts a finished analyze request by outcome
// ("ok", "cached", "not_found", "invalid", "upstream_error").
func IncAnalyzeOutcome(outcome string) {
	AnalyzeRequests.WithLabelValues(outcome).Inc()
}

// IncCacheLookup counts a cache lookup as "hit" or "miss".
func IncCacheLookup(result string) {
	CacheLookups.WithLabelValues(result).Inc()
}
