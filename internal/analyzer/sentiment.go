package analyzer

import (
	"context"
	"math"
	"strings"

	"github.com/christophergentle/weton-predictor/internal/weton"
	"github.com/jonreiter/govader"
)

// VaderClassifier labels text locally using the VADER lexicon.
type VaderClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderClassifier loads the VADER lexicon. Loading is the expensive part,
// so callers should build one and share it.
func NewVaderClassifier() *VaderClassifier {
	return &VaderClassifier{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Classify maps the VADER compound score onto a binary reading. A compound of
// -1..1 becomes NEGATIVE/POSITIVE with confidence (1+|compound|)/2, so a
// neutral text reads as an unsure 0.5 rather than a confident label.
func (vc *VaderClassifier) Classify(ctx context.Context, text string) (weton.Reading, error) {
	if err := ctx.Err(); err != nil {
		return weton.Reading{}, err
	}

	sentiment := vc.analyzer.PolarityScores(strings.TrimSpace(text))
	return readingFromCompound(sentiment.Compound), nil
}

func readingFromCompound(compound float64) weton.Reading {
	compound = math.Max(-1, math.Min(1, compound))

	label := weton.Positive
	if compound < 0 {
		label = weton.Negative
	}

	return weton.Reading{
		Label: label,
		Score: (1 + math.Abs(compound)) / 2,
	}
}
