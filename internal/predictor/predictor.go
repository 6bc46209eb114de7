package predictor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/christophergentle/weton-predictor/internal/analyzer"
	"github.com/christophergentle/weton-predictor/internal/metrics"
	"github.com/christophergentle/weton-predictor/internal/weton"
	"github.com/google/uuid"
)

// ErrEmptyInput is returned when no relationship text was submitted.
var ErrEmptyInput = errors.New("empty input")

// EmptyInputMessage is shown to the user for ErrEmptyInput.
const EmptyInputMessage = "Mohon isi curhatan terlebih dahulu untuk analisis AI."

// Request is one form submission.
type Request struct {
	DateA weton.Date
	DateB weton.Date
	Text  string
}

// Person is the weton of one partner.
type Person struct {
	Date     string `json:"date"`
	Weton    string `json:"weton"`
	Javanese string `json:"javanese"`
	Neptu    int    `json:"neptu"`
}

// TiboResult is the Tibo category of the couple.
type TiboResult struct {
	Remainder   int     `json:"remainder"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BaseWeight  float64 `json:"base_weight"`
}

// SentimentResult is the normalized classifier reading and its band.
type SentimentResult struct {
	Label   weton.Polarity `json:"label"`
	Score   float64        `json:"confidence"`
	Value   float64        `json:"score"`
	Band    string         `json:"band"`
	Message string         `json:"message"`
}

// Result is everything the presentation layer needs to render an analysis.
type Result struct {
	ID         string          `json:"id"`
	PersonA    Person          `json:"person_a"`
	PersonB    Person          `json:"person_b"`
	TotalNeptu int             `json:"total_neptu"`
	Tibo       TiboResult      `json:"tibo"`
	Sentiment  SentimentResult `json:"sentiment"`
	FinalScore float64         `json:"final_score"`
	Level      string          `json:"level"`
}

// Predictor runs the full compatibility analysis for one request.
type Predictor struct {
	classifier analyzer.Classifier
	newID      func() string
}

// New creates a Predictor backed by classifier.
func New(classifier analyzer.Classifier) *Predictor {
	return &Predictor{
		classifier: classifier,
		newID:      func() string { return uuid.NewString() },
	}
}

// Analyze computes both wetons, their Tibo, the sentiment of the text and the
// blended final score. Empty text is rejected before anything is computed.
func (p *Predictor) Analyze(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		metrics.AnalysesTotal.WithLabelValues("empty_input").Inc()
		return nil, ErrEmptyInput
	}

	id := p.newID()
	logger := slog.With("request_id", id)

	a := weton.Convert(req.DateA)
	b := weton.Convert(req.DateB)
	tibo := weton.Score(a, b)
	logger.Debug("Computed weton",
		"weton_a", a.Name(), "neptu_a", a.Neptu,
		"weton_b", b.Name(), "neptu_b", b.Neptu,
		"tibo", tibo.Name)

	start := time.Now()
	reading, err := p.classifier.Classify(ctx, req.Text)
	if err != nil {
		metrics.ClassifierDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		metrics.AnalysesTotal.WithLabelValues(errorStatus(err)).Inc()
		logger.Error("Sentiment classification failed", "error", err)
		return nil, fmt.Errorf("failed to classify text: %w", err)
	}
	metrics.ClassifierDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	sentiment, err := weton.Normalize(reading)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(errorStatus(err)).Inc()
		return nil, fmt.Errorf("failed to normalize sentiment: %w", err)
	}
	final, err := weton.Combine(tibo.BaseWeight, reading)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to combine scores: %w", err)
	}

	band := weton.BandFor(sentiment)
	level := weton.LevelFor(final)

	metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	metrics.TiboResultsTotal.WithLabelValues(tibo.Name).Inc()
	metrics.FinalScore.Observe(final)

	logger.Info("Analysis completed",
		"tibo", tibo.Name,
		"sentiment", sentiment,
		"band", band.Name,
		"final_score", final)

	return &Result{
		ID:         id,
		PersonA:    personFrom(a),
		PersonB:    personFrom(b),
		TotalNeptu: a.Neptu + b.Neptu,
		Tibo: TiboResult{
			Remainder:   tibo.Remainder,
			Name:        tibo.Name,
			Description: tibo.Description,
			BaseWeight:  tibo.BaseWeight,
		},
		Sentiment: SentimentResult{
			Label:   reading.Label,
			Score:   reading.Score,
			Value:   sentiment,
			Band:    band.Name,
			Message: band.Message,
		},
		FinalScore: final,
		Level:      level.Name,
	}, nil
}

func personFrom(w weton.Weton) Person {
	return Person{
		Date:     w.Date.String(),
		Weton:    w.Name(),
		Javanese: w.JavaneseName(),
		Neptu:    w.Neptu,
	}
}

// errorStatus names an analysis failure for the status label of AnalysesTotal.
func errorStatus(err error) string {
	var labelErr *weton.UnexpectedLabelError
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.As(err, &labelErr):
		return "unexpected_label"
	case errors.Is(err, analyzer.ErrClassifierUnavailable):
		return "classifier_unavailable"
	default:
		return "error"
	}
}
