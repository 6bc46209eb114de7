package analyzer

import (
	"context"
	"testing"

	"github.com/christophergentle/weton-predictor/internal/weton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaderClassifier(t *testing.T) {
	classifier := NewVaderClassifier()

	tests := []struct {
		name     string
		text     string
		expected weton.Polarity
		minScore float64
		maxScore float64
	}{
		{
			name:     "positive text",
			text:     "I love this new feature! It's amazing!",
			expected: weton.Positive,
			minScore: 0.65,
			maxScore: 1,
		},
		{
			name:     "supportive relationship",
			text:     "I feel very happy and we always support each other",
			expected: weton.Positive,
			minScore: 0.65,
			maxScore: 1,
		},
		{
			name:     "negative text",
			text:     "This is terrible. I hate it so much.",
			expected: weton.Negative,
			minScore: 0.65,
			maxScore: 1,
		},
		{
			name:     "neutral text",
			text:     "The weather is okay today.",
			expected: weton.Positive,
			minScore: 0.5,
			maxScore: 0.65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading, err := classifier.Classify(context.Background(), tt.text)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, reading.Label)
			assert.GreaterOrEqual(t, reading.Score, tt.minScore)
			assert.LessOrEqual(t, reading.Score, tt.maxScore)
			assert.NoError(t, reading.Validate())
		})
	}
}

func TestVaderClassifierCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewVaderClassifier().Classify(ctx, "I love it")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadingFromCompound(t *testing.T) {
	tests := []struct {
		compound float64
		label    weton.Polarity
		score    float64
	}{
		{1, weton.Positive, 1},
		{0.5, weton.Positive, 0.75},
		{0, weton.Positive, 0.5},
		{-0.5, weton.Negative, 0.75},
		{-1, weton.Negative, 1},
		{-3, weton.Negative, 1},
	}

	for _, tt := range tests {
		r := readingFromCompound(tt.compound)
		assert.Equal(t, tt.label, r.Label, "compound %v", tt.compound)
		assert.InDelta(t, tt.score, r.Score, 1e-9, "compound %v", tt.compound)
	}
}
