package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/christophergentle/weton-predictor/internal/config"
	"github.com/christophergentle/weton-predictor/internal/predictor"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// analysisService runs one compatibility analysis.
type analysisService interface {
	Analyze(ctx context.Context, req predictor.Request) (*predictor.Result, error)
}

// gaugeRenderer draws the final score as a PNG.
type gaugeRenderer interface {
	GenerateGauge(score float64, status string) ([]byte, error)
}

type Server struct {
	echo          *echo.Echo
	config        *config.Config
	predictor     analysisService
	gauge         gaugeRenderer
	indexTemplate *template.Template
}

func NewServer(cfg *config.Config, p analysisService, g gaugeRenderer) (*Server, error) {
	indexTmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("Request handled",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("64K"))

	srv := &Server{
		echo:          e,
		config:        cfg,
		predictor:     p,
		gauge:         g,
		indexTemplate: indexTmpl,
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Server.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Server.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
