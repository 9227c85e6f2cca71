package sentiment

import "context"

// Label thresholds. Scores strictly above ThresholdPositive are positive,
// strictly below ThresholdNegative are negative, everything else neutral.
const (
	ThresholdPositive = 0.05
	ThresholdNegative = -0.05
)

const (
	LabelPositive = "Positive"
	LabelNeutral  = "Neutral"
	LabelNegative = "Negative"
)

// Scorer turns post text into a polarity score in [-1, 1] and a label.
// Implementations must be safe for concurrent use.
type Scorer interface {
	Score(ctx context.Context, text string) (float64, string, error)
}

// BatchScorer is implemented by backends that can score many posts in one
// upstream call. Callers prefer it when available.
type BatchScorer interface {
	ScoreBatch(ctx context.Context, texts []string) ([]float64, error)
}

// LabelFor maps a polarity score to its sentiment label. Both per-post
// labels and the overall label come through here.
func LabelFor(score float64) string {
	switch {
	case score > ThresholdPositive:
		return LabelPositive
	case score < ThresholdNegative:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
