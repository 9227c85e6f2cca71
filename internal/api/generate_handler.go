package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spacesedan/brandpulse/internal/models"
)

// TweetGenerator is the LLM pass-through behind POST /generate. A nil
// generator means no credential was configured.
type TweetGenerator interface {
	GenerateTweet(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error)
}

type GenerateHandler struct {
	generator TweetGenerator
}

func NewGenerateHandler(generator TweetGenerator) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

func (h *GenerateHandler) Generate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.generator == nil {
			serviceUnavailable(w, "tweet generation is not configured on this server")
			return
		}

		var req models.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}

		req.Topic = strings.TrimSpace(req.Topic)
		if req.Topic == "" {
			badRequest(w, "topic must not be empty")
			return
		}

		resp, err := h.generator.GenerateTweet(r.Context(), req)
		if err != nil {
			slog.Error("[GenerateHandler] Generation failed",
				slog.String("topic", req.Topic),
				slog.String("error", err.Error()))
			badGateway(w, "Error generating tweet, please try again later")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
