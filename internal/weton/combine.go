package weton

import (
	"errors"
	"fmt"
)

// Polarity is the label a sentiment classifier assigns to a text.
type Polarity string

const (
	Positive Polarity = "POSITIVE"
	Negative Polarity = "NEGATIVE"
)

// Reading is one classifier result: a polarity and its confidence in [0,1].
type Reading struct {
	Label Polarity `json:"label"`
	Score float64  `json:"score"`
}

// UnexpectedLabelError reports a classifier label outside POSITIVE/NEGATIVE.
type UnexpectedLabelError struct {
	Label string
}

func (e *UnexpectedLabelError) Error() string {
	return fmt.Sprintf("unexpected sentiment label %q", e.Label)
}

// ErrScoreOutOfRange is returned when a confidence or weight falls outside its range.
var ErrScoreOutOfRange = errors.New("score out of range")

// Validate checks the reading against the classifier contract.
func (r Reading) Validate() error {
	if r.Label != Positive && r.Label != Negative {
		return &UnexpectedLabelError{Label: string(r.Label)}
	}
	if r.Score < 0 || r.Score > 1 {
		return fmt.Errorf("confidence %v: %w", r.Score, ErrScoreOutOfRange)
	}
	return nil
}

// Normalize maps a reading onto 0..100. A confident POSITIVE goes toward 100,
// a confident NEGATIVE toward 0, and an unsure reading of either kind near 50.
func Normalize(r Reading) (float64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	if r.Label == Positive {
		return r.Score * 100, nil
	}
	return (1 - r.Score) * 100, nil
}

// Combine averages a Tibo base weight with the normalized sentiment.
func Combine(baseWeight float64, r Reading) (float64, error) {
	if baseWeight < 0 || baseWeight > 100 {
		return 0, fmt.Errorf("base weight %v: %w", baseWeight, ErrScoreOutOfRange)
	}
	sentiment, err := Normalize(r)
	if err != nil {
		return 0, err
	}

	final := (baseWeight + sentiment) / 2
	if final < 0 || final > 100 {
		return 0, fmt.Errorf("final score %v: %w", final, ErrScoreOutOfRange)
	}
	return final, nil
}

// Band is the qualitative reading of a normalized sentiment score.
type Band struct {
	Name    string
	Message string
}

var (
	StrongPositive = Band{"strong positive", "AI mendeteksi rasa percaya dan kebahagiaan yang kuat."}
	Guarded        = Band{"neutral/guarded", "Hubungan cenderung aman, namun ada ruang untuk lebih terbuka."}
	Distress       = Band{"distress detected", "AI mendeteksi adanya kecemasan atau tekanan emosional."}
)

// BandFor classifies a 0..100 sentiment score: >=80, 50..80, <50.
func BandFor(sentiment float64) Band {
	switch {
	case sentiment >= 80:
		return StrongPositive
	case sentiment >= 50:
		return Guarded
	default:
		return Distress
	}
}

// Level is a labelled region of the gauge.
type Level struct {
	Name      string
	English   string
	Threshold float64
}

// Levels are the gauge ticks, ascending.
var Levels = []Level{
	{"Bahaya", "Danger", 0},
	{"Cukup", "Fair", 50},
	{"Baik", "Good", 75},
	{"Sangat Baik", "Excellent", 100},
}

// LevelFor returns the highest gauge tick at or below score.
func LevelFor(score float64) Level {
	level := Levels[0]
	for _, l := range Levels {
		if score >= l.Threshold {
			level = l
		}
	}
	return level
}
