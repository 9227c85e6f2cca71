package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/brandpulse/config"
	"github.com/spacesedan/brandpulse/internal/api"
	"github.com/spacesedan/brandpulse/internal/cache"
	"github.com/spacesedan/brandpulse/internal/clients"
	"github.com/spacesedan/brandpulse/internal/generator"
	"github.com/spacesedan/brandpulse/internal/logging"
	"github.com/spacesedan/brandpulse/internal/scraper"
	"github.com/spacesedan/brandpulse/internal/sentiment"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg := config.MustLoad()

	store, closeStore := buildStore(cfg.Cache)
	defer closeStore()

	service := &api.AnalyzeService{
		Scraper: scraper.New(cfg.Scraper),
		Scorer:  buildScorer(cfg.Sentiment, cfg.OpenAI),
		Store:   store,
		TTL:     cfg.Cache.TTL,
	}

	router := api.NewRouter(service, buildGenerator(cfg.OpenAI))

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("[Main] Starting HTTP server",
			slog.String("addr", cfg.Server.Address()),
			slog.String("scraper", service.Scraper.Name()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("[Main] Server error", slog.String("error", err.Error()))
		os.Exit(1)
	case sig := <-quit:
		slog.Info("[Main] Received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Failed to shut down cleanly", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[Main] Shutdown complete")
}

// buildStore prefers Valkey when an address is configured and falls back
// to the in-process store otherwise.
func buildStore(cfg config.Cache) (cache.Store, func()) {
	if cfg.ValkeyAddress == "" {
		slog.Info("[Main] No Valkey address configured, using in-memory cache")
		return cache.NewMemoryStore(), func() {}
	}

	client, err := clients.NewValkeyClient(cfg)
	if err != nil {
		slog.Warn("[Main] Valkey unavailable, falling back to in-memory cache",
			slog.String("error", err.Error()))
		return cache.NewMemoryStore(), func() {}
	}
	return cache.NewValkeyStore(client), client.Close
}

// buildScorer honors the configured backend but never fails startup: an
// openai selection without credentials falls back to VADER.
func buildScorer(cfg config.Sentiment, openAICfg config.OpenAI) sentiment.Scorer {
	if cfg.Backend == "openai" {
		scorer, err := sentiment.NewOpenAIScorer(openAICfg)
		if err == nil {
			slog.Info("[Main] Using OpenAI sentiment backend")
			return scorer
		}
		slog.Warn("[Main] OpenAI backend unavailable, falling back to VADER",
			slog.String("error", err.Error()))
	}
	return sentiment.NewVADERScorer()
}

func buildGenerator(cfg config.OpenAI) api.TweetGenerator {
	gen, err := generator.New(cfg)
	if err != nil {
		slog.Warn("[Main] Tweet generation disabled",
			slog.String("error", err.Error()))
		return nil
	}
	return gen
}
