package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/christophergentle/weton-predictor/internal/analyzer"
	"github.com/christophergentle/weton-predictor/internal/config"
	"github.com/christophergentle/weton-predictor/internal/gauge"
	"github.com/christophergentle/weton-predictor/internal/metrics"
	"github.com/christophergentle/weton-predictor/internal/predictor"
	"github.com/christophergentle/weton-predictor/internal/weton"
)

// analysisService runs one compatibility analysis.
type analysisService interface {
	Analyze(ctx context.Context, req predictor.Request) (*predictor.Result, error)
}

// gaugeRenderer draws the final score as a PNG.
type gaugeRenderer interface {
	GenerateGauge(score float64, status string) ([]byte, error)
}

// WetonHandler serves the analysis API behind an API Gateway HTTP API.
type WetonHandler struct {
	predictor   analysisService
	gauge       gaugeRenderer
	defaultDate string
}

// NewWetonHandler wires a handler from configuration. The classifier is loaded
// lazily on the first request and reused by later invocations of the same
// execution environment.
func NewWetonHandler(cfg *config.Config) *WetonHandler {
	return &WetonHandler{
		predictor:   predictor.New(analyzer.New(cfg.Classifier)),
		gauge:       gauge.NewGaugeGenerator(gauge.FromConfig(cfg.Gauge)),
		defaultDate: cfg.Server.DefaultDate,
	}
}

// HandleRequest routes POST /analyze and GET /gauge.png.
func (h *WetonHandler) HandleRequest(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := event.RequestContext.HTTP.Method
	path := strings.TrimSuffix(event.RawPath, "/")
	slog.Info("Received request", "method", method, "path", path)

	switch {
	case method == http.MethodPost && strings.HasSuffix(path, "/analyze"):
		return h.handleAnalyze(ctx, event), nil
	case method == http.MethodGet && strings.HasSuffix(path, "/gauge.png"):
		return h.handleGauge(event), nil
	default:
		return jsonResponse(http.StatusNotFound, errorBody{Error: "not found"}), nil
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *WetonHandler) handleAnalyze(ctx context.Context, event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return jsonResponse(http.StatusBadRequest, errorBody{Error: "invalid request body"})
		}
		body = string(decoded)
	}

	var input predictor.Input
	if err := json.Unmarshal([]byte(body), &input); err != nil {
		return jsonResponse(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}

	req, err := input.Request(h.defaultDate)
	if err != nil {
		status, msg := predictor.ErrorResponse(err)
		return jsonResponse(status, errorBody{Error: msg})
	}

	result, err := h.predictor.Analyze(ctx, req)
	if err != nil {
		status, msg := predictor.ErrorResponse(err)
		return jsonResponse(status, errorBody{Error: msg})
	}

	return jsonResponse(http.StatusOK, result)
}

func (h *WetonHandler) handleGauge(event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	score, err := strconv.ParseFloat(event.QueryStringParameters["score"], 64)
	if err != nil || score < 0 || score > 100 {
		return jsonResponse(http.StatusBadRequest, errorBody{Error: "score must be a number between 0 and 100"})
	}

	status := event.QueryStringParameters["status"]
	if status == "" {
		status = weton.LevelFor(score).Name
	}

	png, err := h.gauge.GenerateGauge(score, status)
	if err != nil {
		metrics.GaugeRendersTotal.WithLabelValues("error").Inc()
		slog.Error("Failed to render gauge", "error", err)
		return jsonResponse(http.StatusInternalServerError, errorBody{Error: "failed to render gauge"})
	}
	metrics.GaugeRendersTotal.WithLabelValues("ok").Inc()

	return events.APIGatewayV2HTTPResponse{
		StatusCode:      http.StatusOK,
		Headers:         map[string]string{"Content-Type": "image/png"},
		Body:            base64.StdEncoding.EncodeToString(png),
		IsBase64Encoded: true,
	}
}

func jsonResponse(status int, v any) events.APIGatewayV2HTTPResponse {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to marshal response", "error", err)
		status = http.StatusInternalServerError
		data = []byte(`{"error":"internal error"}`)
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}
