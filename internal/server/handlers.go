package server

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/christophergentle/weton-predictor/internal/metrics"
	"github.com/christophergentle/weton-predictor/internal/predictor"
	"github.com/labstack/echo/v4"
)

const textPlaceholder = "Example: I feel very happy and we always support each other..."

// indexPage is the data behind templates/index.html.
type indexPage struct {
	DateA       string
	DateB       string
	Text        string
	Placeholder string
	Error       string
	Result      *predictor.Result
	GaugeURL    template.URL
}

func (s *Server) newIndexPage() indexPage {
	return indexPage{
		DateA:       s.config.Server.DefaultDate,
		DateB:       s.config.Server.DefaultDate,
		Placeholder: textPlaceholder,
	}
}

func (s *Server) handleIndex(c echo.Context) error {
	return s.renderIndex(c, http.StatusOK, s.newIndexPage())
}

func (s *Server) handleAnalyzeForm(c echo.Context) error {
	page := s.newIndexPage()
	page.DateA = c.FormValue("date_a")
	page.DateB = c.FormValue("date_b")
	page.Text = c.FormValue("text")

	input := predictor.Input{DateA: page.DateA, DateB: page.DateB, Text: page.Text}
	req, err := input.Request(s.config.Server.DefaultDate)
	if err != nil {
		status, msg := predictor.ErrorResponse(err)
		page.Error = msg
		return s.renderIndex(c, status, page)
	}

	result, err := s.predictor.Analyze(c.Request().Context(), req)
	if err != nil {
		status, msg := predictor.ErrorResponse(err)
		page.Error = msg
		return s.renderIndex(c, status, page)
	}

	png, err := s.gauge.GenerateGauge(result.FinalScore, result.Tibo.Name)
	if err != nil {
		metrics.GaugeRendersTotal.WithLabelValues("error").Inc()
		slog.Error("Failed to render gauge", "request_id", result.ID, "error", err)
	} else {
		metrics.GaugeRendersTotal.WithLabelValues("ok").Inc()
		page.GaugeURL = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	}

	page.Result = result
	return s.renderIndex(c, http.StatusOK, page)
}

func (s *Server) renderIndex(c echo.Context, status int, page indexPage) error {
	var buf bytes.Buffer
	if err := s.indexTemplate.Execute(&buf, page); err != nil {
		slog.Error("Failed to render index template", "error", err)
		return c.String(http.StatusInternalServerError, "Failed to render page")
	}
	return c.HTMLBlob(status, buf.Bytes())
}
