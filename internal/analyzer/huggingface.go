package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/christophergentle/weton-predictor/internal/config"
	"github.com/christophergentle/weton-predictor/internal/weton"
)

// HuggingFaceClassifier calls a hosted text-classification model, by default
// distilbert-base-uncased-finetuned-sst-2-english.
type HuggingFaceClassifier struct {
	url        string
	token      string
	httpClient *http.Client
}

// NewHuggingFaceClassifier builds a client for the configured model.
func NewHuggingFaceClassifier(cfg config.ClassifierConfig) (*HuggingFaceClassifier, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("huggingface token not set")
	}
	if cfg.Endpoint == "" || cfg.Model == "" {
		return nil, fmt.Errorf("huggingface endpoint and model are required")
	}

	return &HuggingFaceClassifier{
		url:        strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Model,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type hfRequest struct {
	Inputs string `json:"inputs"`
}

type hfLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type hfError struct {
	Error string `json:"error"`
}

// Classify returns the highest-scoring label for text.
func (c *HuggingFaceClassifier) Classify(ctx context.Context, text string) (weton.Reading, error) {
	jsonBody, err := json.Marshal(hfRequest{Inputs: text})
	if err != nil {
		return weton.Reading{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonBody))
	if err != nil {
		return weton.Reading{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return weton.Reading{}, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return weton.Reading{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return weton.Reading{}, fmt.Errorf("api error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return weton.Reading{}, fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	labels, err := parseLabels(body)
	if err != nil {
		return weton.Reading{}, err
	}

	best := labels[0]
	for _, l := range labels[1:] {
		if l.Score > best.Score {
			best = l
		}
	}

	reading := weton.Reading{Label: weton.Polarity(best.Label), Score: best.Score}
	if err := reading.Validate(); err != nil {
		return weton.Reading{}, err
	}
	return reading, nil
}

// parseLabels accepts both [[{label,score}...]] (one list per input) and a
// flat [{label,score}...].
func parseLabels(body []byte) ([]hfLabel, error) {
	var nested [][]hfLabel
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}

	var flat []hfLabel
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	return nil, fmt.Errorf("unexpected response: %s", string(body))
}
