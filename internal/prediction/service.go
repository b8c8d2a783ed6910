// Package prediction scores project attributes against the loaded classifier
// and attaches a confidence band and advisory messages.
package prediction

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"projectai/internal/classifier"
	"projectai/internal/prediction/recommendations"
	"projectai/internal/project"
	"projectai/internal/shared/metrics"
	"projectai/internal/shared/telemetry"
)

// Confidence bands.
const (
	BandHigh   = "High"
	BandMedium = "Medium"
)

// Result is one immutable prediction.
type Result struct {
	SuccessPredicted   bool     `json:"success_predicted"`
	SuccessProbability float64  `json:"success_probability"`
	ConfidenceBand     string   `json:"confidence_band"`
	Recommendations    []string `json:"recommendations"`
}

// Model is the capability the service needs from a loaded artifact.
type Model interface {
	SuccessProbability(x []float64) (float64, bool, error)
}

// Service is safe for concurrent use; it never mutates after construction.
type Service struct {
	model    Model
	encoder  *Encoder
	metadata classifier.Metadata
}

// NewService wraps a loaded bundle. A nil bundle yields a service that
// reports ErrModelUnavailable for every prediction.
func NewService(bundle *classifier.Bundle) (*Service, error) {
	if bundle == nil {
		return &Service{}, nil
	}
	enc, err := NewEncoder(bundle.Vocabularies)
	if err != nil {
		return nil, fmt.Errorf("build encoder: %w", err)
	}
	return &Service{model: bundle, encoder: enc, metadata: bundle.Metadata}, nil
}

// NewServiceWithModel builds a service over an arbitrary model and vocabulary.
func NewServiceWithModel(model Model, vocab map[string][]string) (*Service, error) {
	enc, err := NewEncoder(vocab)
	if err != nil {
		return nil, err
	}
	return &Service{model: model, encoder: enc}, nil
}

// Ready reports whether a model is loaded.
func (s *Service) Ready() bool {
	return s != nil && s.model != nil
}

// Metadata returns the training metadata of the loaded model.
func (s *Service) Metadata() (classifier.Metadata, bool) {
	if !s.Ready() {
		return classifier.Metadata{}, false
	}
	return s.metadata, true
}

// Predict scores one project.
func (s *Service) Predict(ctx context.Context, attrs project.Attributes) (Result, error) {
	if !s.Ready() {
		metrics.IncPredictionFailure("model_unavailable")
		return Result{}, ErrModelUnavailable
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if errs := attrs.Validate(); len(errs) > 0 {
		metrics.IncPredictionFailure("validation_error")
		return Result{}, &ValidationError{Fields: errs}
	}

	start := time.Now()
	x, err := s.encoder.Vector(attrs)
	if err != nil {
		metrics.IncPredictionFailure("unknown_category")
		return Result{}, err
	}
	p, success, err := s.model.SuccessProbability(x)
	if err != nil {
		metrics.IncPredictionFailure("internal")
		return Result{}, fmt.Errorf("classify: %w", err)
	}

	res := Result{
		SuccessPredicted:   success,
		SuccessProbability: p,
		ConfidenceBand:     ConfidenceBand(p),
		Recommendations:    recommendations.Advise(attrs, p),
	}
	elapsed := time.Since(start)
	metrics.ObservePrediction(success, elapsed)
	telemetry.Debug("prediction.complete", map[string]any{
		"success_probability": p,
		"success_predicted":   success,
		"confidence_band":     res.ConfidenceBand,
		"recommendations":     len(res.Recommendations),
		"duration_ms":         float64(elapsed.Microseconds()) / 1000.0,
	})
	return res, nil
}

// ConfidenceBand is High when p is more than 0.3 away from 0.5, otherwise Medium.
func ConfidenceBand(p float64) string {
	if math.Abs(p-0.5) > 0.3 {
		return BandHigh
	}
	return BandMedium
}

// Clone returns a copy whose recommendation slice is not shared.
func (r Result) Clone() Result {
	r.Recommendations = slices.Clone(r.Recommendations)
	return r
}
