package analyzer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/christophergentle/weton-predictor/internal/config"
	"github.com/christophergentle/weton-predictor/internal/weton"
)

// ErrClassifierUnavailable is returned when the sentiment backend cannot be
// loaded or invoked. The final score depends on it, so it is never defaulted.
var ErrClassifierUnavailable = errors.New("sentiment classifier unavailable")

// Classifier labels free text as POSITIVE or NEGATIVE with a confidence.
type Classifier interface {
	Classify(ctx context.Context, text string) (weton.Reading, error)
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(ctx context.Context, text string) (weton.Reading, error)

func (f ClassifierFunc) Classify(ctx context.Context, text string) (weton.Reading, error) {
	return f(ctx, text)
}

// Provider loads a classifier on first use and shares it across requests.
// A failed load is remembered; every later call reports it.
type Provider struct {
	load func() (Classifier, error)

	once       sync.Once
	classifier Classifier
	err        error
}

// NewProvider wraps a loader that is run at most once.
func NewProvider(load func() (Classifier, error)) *Provider {
	return &Provider{load: load}
}

// New returns a Provider for the configured backend.
func New(cfg config.ClassifierConfig) *Provider {
	return NewProvider(func() (Classifier, error) {
		switch cfg.Backend {
		case config.BackendVader, "":
			return NewVaderClassifier(), nil
		case config.BackendHuggingFace:
			return NewHuggingFaceClassifier(cfg)
		default:
			return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
		}
	})
}

// Get returns the shared classifier, loading it if needed.
func (p *Provider) Get() (Classifier, error) {
	p.once.Do(func() {
		p.classifier, p.err = p.load()
		if p.err == nil && p.classifier == nil {
			p.err = errors.New("loader returned no classifier")
		}
	})
	if p.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassifierUnavailable, p.err)
	}
	return p.classifier, nil
}

// Classify runs the shared classifier and checks its output against the
// POSITIVE/NEGATIVE contract.
func (p *Provider) Classify(ctx context.Context, text string) (weton.Reading, error) {
	c, err := p.Get()
	if err != nil {
		return weton.Reading{}, err
	}

	reading, err := c.Classify(ctx, text)
	if err != nil {
		var labelErr *weton.UnexpectedLabelError
		if errors.As(err, &labelErr) {
			return weton.Reading{}, err
		}
		return weton.Reading{}, fmt.Errorf("%w: %w", ErrClassifierUnavailable, err)
	}
	if err := reading.Validate(); err != nil {
		return weton.Reading{}, fmt.Errorf("classifier broke its contract: %w", err)
	}
	return reading, nil
}
