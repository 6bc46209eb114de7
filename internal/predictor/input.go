package predictor

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/christophergentle/weton-predictor/internal/analyzer"
	"github.com/christophergentle/weton-predictor/internal/weton"
)

// Input is the raw form or JSON submission.
type Input struct {
	DateA string `json:"date_a"`
	DateB string `json:"date_b"`
	Text  string `json:"text"`
}

// Request parses the dates, substituting defaultDate for blank ones. Text is
// passed through untouched; Analyze rejects it when empty.
func (in Input) Request(defaultDate string) (Request, error) {
	if in.DateA == "" {
		in.DateA = defaultDate
	}
	if in.DateB == "" {
		in.DateB = defaultDate
	}

	a, err := weton.ParseDate(in.DateA)
	if err != nil {
		return Request{}, err
	}
	b, err := weton.ParseDate(in.DateB)
	if err != nil {
		return Request{}, err
	}
	return Request{DateA: a, DateB: b, Text: in.Text}, nil
}

// ErrorResponse maps an input or analysis error to an HTTP status and a
// user-visible message.
func ErrorResponse(err error) (int, string) {
	var labelErr *weton.UnexpectedLabelError
	var dateErr *weton.DateError
	switch {
	case errors.Is(err, ErrEmptyInput):
		return http.StatusBadRequest, EmptyInputMessage
	case errors.As(err, &dateErr):
		return http.StatusBadRequest, dateErr.Error()
	case errors.As(err, &labelErr):
		slog.Error("Classifier returned an unexpected label", "label", labelErr.Label)
		return http.StatusBadGateway, "Model sentimen mengembalikan label yang tidak dikenal: " + labelErr.Label
	case errors.Is(err, analyzer.ErrClassifierUnavailable):
		return http.StatusBadGateway, "Model sentimen tidak tersedia, silakan coba lagi nanti."
	default:
		slog.Error("Analysis failed", "error", err)
		return http.StatusInternalServerError, "Analisis gagal."
	}
}
