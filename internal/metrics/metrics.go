package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis Metrics
var (
	// AnalysesTotal tracks compatibility analyses by outcome
	// (ok, empty_input, classifier_unavailable, unexpected_label, error)
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weton_analyses_total",
			Help: "Total compatibility analyses by status",
		},
		[]string{"status"},
	)

	// TiboResultsTotal tracks which Tibo category analyses landed on
	TiboResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weton_tibo_results_total",
			Help: "Completed analyses by Tibo category",
		},
		[]string{"tibo"},
	)

	// FinalScore tracks the distribution of final compatibility scores
	FinalScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "weton_final_score",
			Help:    "Distribution of final compatibility scores (0-100)",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 75, 80, 90, 100},
		},
	)
)

// Classifier Metrics
var (
	// ClassifierDuration tracks sentiment classifier latency in seconds
	ClassifierDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weton_classifier_duration_seconds",
			Help:    "Sentiment classifier call duration in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
)

// Gauge Metrics
var (
	// GaugeRendersTotal tracks gauge chart renders by status
	GaugeRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weton_gauge_renders_total",
			Help: "Total gauge chart renders by status",
		},
		[]string{"status"},
	)
)
