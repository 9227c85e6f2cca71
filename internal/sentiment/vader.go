package sentiment

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
)

var (
	urlPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	mentionPattern = regexp.MustCompile(`@\w+`)
	retweetPattern = regexp.MustCompile(`^RT\s+`)
)

// CleanPostText strips URLs, @mentions, and retweet prefixes, and collapses
// whitespace, before a post is scored.
func CleanPostText(input string) string {
	out := urlPattern.ReplaceAllString(input, "")
	out = mentionPattern.ReplaceAllString(out, "")
	out = retweetPattern.ReplaceAllString(out, "")
	return strings.Join(strings.Fields(out), " ")
}

// VADERScorer scores posts locally with the VADER lexicon. It needs no
// credentials and is the default backend.
type VADERScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADERScorer() *VADERScorer {
	return &VADERScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VADERScorer) Score(_ context.Context, text string) (float64, string, error) {
	plainText := CleanPostText(text)
	if plainText == "" {
		return 0, LabelNeutral, nil
	}

	score := v.analyzer.PolarityScores(plainText).Compound
	return score, LabelFor(score), nil
}
