package server

import (
	"net/http"
	"strconv"

	"github.com/christophergentle/weton-predictor/internal/metrics"
	"github.com/christophergentle/weton-predictor/internal/predictor"
	"github.com/christophergentle/weton-predictor/internal/weton"
	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyzeAPI(c echo.Context) error {
	var input predictor.Input
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}

	req, err := input.Request(s.config.Server.DefaultDate)
	if err != nil {
		status, msg := predictor.ErrorResponse(err)
		return c.JSON(status, errorBody{Error: msg})
	}

	result, err := s.predictor.Analyze(c.Request().Context(), req)
	if err != nil {
		status, msg := predictor.ErrorResponse(err)
		return c.JSON(status, errorBody{Error: msg})
	}

	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleGauge(c echo.Context) error {
	score, err := strconv.ParseFloat(c.QueryParam("score"), 64)
	if err != nil || score < 0 || score > 100 {
		return c.String(http.StatusBadRequest, "score must be a number between 0 and 100")
	}

	status := c.QueryParam("status")
	if status == "" {
		status = weton.LevelFor(score).Name
	}

	png, err := s.gauge.GenerateGauge(score, status)
	if err != nil {
		metrics.GaugeRendersTotal.WithLabelValues("error").Inc()
		return c.String(http.StatusInternalServerError, "failed to render gauge")
	}
	metrics.GaugeRendersTotal.WithLabelValues("ok").Inc()

	return c.Blob(http.StatusOK, "image/png", png)
}
