package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spacesedan/brandpulse/web"
)

// NewRouter assembles the HTTP surface: the dashboard at /, the JSON API
// under /api/v1, and the health and metrics endpoints.
func NewRouter(service *AnalyzeService, generator TweetGenerator) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Timeout(90 * time.Second))

	r.Get("/healthz", healthHandler(service))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", NewAnalyzeHandler(service).Analyze())
		r.Post("/generate", NewGenerateHandler(generator).Generate())
	})

	web.RegisterRoutes(r)

	return r
}

func healthHandler(service *AnalyzeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"scraper":   service.Scraper.Name(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
