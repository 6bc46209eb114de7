package predictor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/christophergentle/weton-predictor/internal/analyzer"
	"github.com/christophergentle/weton-predictor/internal/metrics"
	"github.com/christophergentle/weton-predictor/internal/weton"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClassifier records calls and returns a fixed reading or error.
type stubClassifier struct {
	reading weton.Reading
	err     error
	calls   int
}

func (s *stubClassifier) Classify(ctx context.Context, text string) (weton.Reading, error) {
	s.calls++
	return s.reading, s.err
}

func newTestPredictor(c analyzer.Classifier) *Predictor {
	p := New(c)
	p.newID = func() string { return "test-id" }
	return p
}

var defaultDate = weton.NewDate(1995, time.January, 1)

func TestAnalyzeDefaultDates(t *testing.T) {
	stub := &stubClassifier{reading: weton.Reading{Label: weton.Positive, Score: 0.95}}
	p := newTestPredictor(stub)

	result, err := p.Analyze(context.Background(), Request{
		DateA: defaultDate,
		DateB: defaultDate,
		Text:  "I feel very happy and we always support each other",
	})
	require.NoError(t, err)

	assert.Equal(t, "test-id", result.ID)
	assert.Equal(t, Person{Date: "1995-01-01", Weton: "Sunday Kliwon", Javanese: "Minggu Kliwon", Neptu: 13}, result.PersonA)
	assert.Equal(t, result.PersonA, result.PersonB)
	assert.Equal(t, 26, result.TotalNeptu)

	assert.Equal(t, 2, result.Tibo.Remainder)
	assert.Equal(t, "RATU", result.Tibo.Name)
	assert.Equal(t, 95.0, result.Tibo.BaseWeight)

	assert.InDelta(t, 95.0, result.Sentiment.Value, 1e-9)
	assert.Equal(t, "strong positive", result.Sentiment.Band)
	assert.Equal(t, weton.StrongPositive.Message, result.Sentiment.Message)

	assert.InDelta(t, 95.0, result.FinalScore, 1e-9)
	assert.Equal(t, "Baik", result.Level)
	assert.Equal(t, 1, stub.calls)
}

func TestAnalyzeNegativeReading(t *testing.T) {
	stub := &stubClassifier{reading: weton.Reading{Label: weton.Negative, Score: 0.9}}
	p := newTestPredictor(stub)

	result, err := p.Analyze(context.Background(), Request{
		DateA: weton.NewDate(1945, time.August, 17),
		DateB: weton.NewDate(1990, time.June, 15),
		Text:  "We argue all the time and I feel alone",
	})
	require.NoError(t, err)

	// Jumat Legi (11) + Jumat Wage (10) = 21, 21 mod 8 = 5.
	assert.Equal(t, 21, result.TotalNeptu)
	assert.Equal(t, "TINARI", result.Tibo.Name)
	assert.InDelta(t, 10.0, result.Sentiment.Value, 1e-9)
	assert.Equal(t, "distress detected", result.Sentiment.Band)
	assert.InDelta(t, 47.5, result.FinalScore, 1e-9)
	assert.Equal(t, "Bahaya", result.Level)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		stub := &stubClassifier{reading: weton.Reading{Label: weton.Positive, Score: 0.95}}
		p := newTestPredictor(stub)
		before := testutil.ToFloat64(metrics.AnalysesTotal.WithLabelValues("empty_input"))

		result, err := p.Analyze(context.Background(), Request{DateA: defaultDate, DateB: defaultDate, Text: text})

		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Nil(t, result)
		assert.Zero(t, stub.calls, "classifier must not run for empty input")
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.AnalysesTotal.WithLabelValues("empty_input")))
	}
}

func TestAnalyzeClassifierUnavailable(t *testing.T) {
	provider := analyzer.NewProvider(func() (analyzer.Classifier, error) {
		return nil, errors.New("model not found")
	})
	p := newTestPredictor(provider)

	result, err := p.Analyze(context.Background(), Request{DateA: defaultDate, DateB: defaultDate, Text: "hello"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, analyzer.ErrClassifierUnavailable)
	assert.Equal(t, "classifier_unavailable", errorStatus(err))
}

func TestAnalyzeUnexpectedLabel(t *testing.T) {
	stub := &stubClassifier{reading: weton.Reading{Label: "NEUTRAL", Score: 0.8}}
	p := newTestPredictor(stub)

	result, err := p.Analyze(context.Background(), Request{DateA: defaultDate, DateB: defaultDate, Text: "hello"})

	assert.Nil(t, result)
	var labelErr *weton.UnexpectedLabelError
	require.ErrorAs(t, err, &labelErr)
	assert.Equal(t, "NEUTRAL", labelErr.Label)
	assert.Equal(t, "unexpected_label", errorStatus(err))
}

func TestAnalyzeRecordsTiboMetric(t *testing.T) {
	stub := &stubClassifier{reading: weton.Reading{Label: weton.Positive, Score: 0.6}}
	p := newTestPredictor(stub)
	before := testutil.ToFloat64(metrics.TiboResultsTotal.WithLabelValues("RATU"))

	_, err := p.Analyze(context.Background(), Request{DateA: defaultDate, DateB: defaultDate, Text: "fine"})
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.TiboResultsTotal.WithLabelValues("RATU")))
}

func TestNewGeneratesIDs(t *testing.T) {
	p := New(&stubClassifier{reading: weton.Reading{Label: weton.Positive, Score: 0.7}})
	req := Request{DateA: defaultDate, DateB: defaultDate, Text: "ok"}

	r1, err := p.Analyze(context.Background(), req)
	require.NoError(t, err)
	r2, err := p.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, r1.ID, 36)
	assert.NotEqual(t, r1.ID, r2.ID)
}
