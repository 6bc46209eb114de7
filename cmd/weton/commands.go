package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/christophergentle/weton-predictor/internal/analyzer"
	"github.com/christophergentle/weton-predictor/internal/config"
	"github.com/christophergentle/weton-predictor/internal/gauge"
	"github.com/christophergentle/weton-predictor/internal/logging"
	"github.com/christophergentle/weton-predictor/internal/predictor"
	"github.com/christophergentle/weton-predictor/internal/server"
	"github.com/christophergentle/weton-predictor/internal/weton"
	"github.com/spf13/cobra"
)

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	return config.Load(path)
}

func wetonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weton [YYYY-MM-DD]",
		Short: "Show the weton and neptu of a birth date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := weton.ParseDate(args[0])
			if err != nil {
				return err
			}
			printWeton(cmd.OutOrStdout(), weton.Convert(d))
			return nil
		},
	}
}

func printWeton(w io.Writer, wt weton.Weton) {
	fmt.Fprintf(w, "%s  %s (%s)  neptu %d\n", wt.Date, wt.Name(), wt.JavaneseName(), wt.Neptu)
}

func matchCmd() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "match [date-a] [date-b]",
		Short: "Analyze the compatibility of two birth dates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logging.InitLogger(cfg.Logging.Level, cfg.Logging.Format)

			req, err := predictor.Input{DateA: args[0], DateB: args[1], Text: text}.Request(cfg.Server.DefaultDate)
			if err != nil {
				return err
			}

			p := predictor.New(analyzer.New(cfg.Classifier))
			result, err := p.Analyze(cmd.Context(), req)
			if err != nil {
				_, msg := predictor.ErrorResponse(err)
				return errors.New(msg)
			}

			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "description of the relationship (required)")
	return cmd
}

func printResult(w io.Writer, r *predictor.Result) {
	fmt.Fprintf(w, "Weton A:   %s (%s), neptu %d\n", r.PersonA.Weton, r.PersonA.Javanese, r.PersonA.Neptu)
	fmt.Fprintf(w, "Weton B:   %s (%s), neptu %d\n", r.PersonB.Weton, r.PersonB.Javanese, r.PersonB.Neptu)
	fmt.Fprintf(w, "Tibo:      %s (total %d, remainder %d)\n", r.Tibo.Name, r.TotalNeptu, r.Tibo.Remainder)
	fmt.Fprintf(w, "           %s\n", r.Tibo.Description)
	fmt.Fprintf(w, "Sentiment: %s %.2f -> %.1f\n", r.Sentiment.Label, r.Sentiment.Score, r.Sentiment.Value)
	fmt.Fprintf(w, "           %s\n", r.Sentiment.Message)
	fmt.Fprintf(w, "Relationship Score: %.1f%% (%s)\n", r.FinalScore, r.Level)
}

func tiboCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tibo",
		Short: "List the Tibo categories",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, t := range weton.Tibos() {
				fmt.Fprintf(w, "%d  %-8s %3.0f  %s\n", t.Remainder, t.Name, t.BaseWeight, firstSentence(t.Description))
			}
		},
	}
}

func firstSentence(s string) string {
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+1]
	}
	return s
}

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web form and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				// Use log before slog is initialized
				log.Fatalf("Failed to load config: %v", err)
			}
			if port != "" {
				cfg.Server.Port = port
			}
			logging.InitLogger(cfg.Logging.Level, cfg.Logging.Format)

			p := predictor.New(analyzer.New(cfg.Classifier))
			g := gauge.NewGaugeGenerator(gauge.FromConfig(cfg.Gauge))

			srv, err := server.NewServer(cfg, p, g)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			done := runGracefulShutdown(srv)

			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			<-done
			slog.Info("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides config)")
	return cmd
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}
