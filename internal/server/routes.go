package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Form
	s.echo.GET("/", s.handleIndex)
	s.echo.POST("/analyze", s.handleAnalyzeForm)

	// API
	s.echo.POST("/api/analyze", s.handleAnalyzeAPI)
	s.echo.GET("/gauge.png", s.handleGauge)
}

func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
