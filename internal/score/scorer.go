// Package score computes quality metrics over datasets and compares them
// across a transformation. Four dimensions feed a weighted composite: the
// weights are configurable and must sum to 1.
package score

import (
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// Scorer is the contract the orchestrator consumes
type Scorer interface {
	Score(ds *models.Dataset, profile *models.DataProfile) models.QualityMetrics
	Compare(before, after models.QualityMetrics) models.QualityDelta
}

// Service is the default Scorer implementation
type Service struct {
	weights models.Weights
}

// NewService creates a scorer with the given weights, rejecting weights
// that do not sum to 1
func NewService(weights models.Weights) (*Service, error) {
	if err := weights.Validate(); err != nil {
		return nil, lib.ErrInvalidWeights(err)
	}
	return &Service{weights: weights}, nil
}

// NewDefaultService creates a scorer with equal weights
func NewDefaultService() *Service {
	return &Service{weights: models.DefaultWeights()}
}

// Score computes all quality dimensions plus the weighted composite.
// The profile, when present, supplies range context for validity and
// precomputed unique counts for uniqueness.
func (s *Service) Score(ds *models.Dataset, profile *models.DataProfile) models.QualityMetrics {
	metrics := models.QualityMetrics{
		Completeness: completeness(ds),
		Consistency:  consistency(ds),
		Validity:     validity(ds, profile),
		Uniqueness:   uniqueness(ds, profile),
	}
	metrics.Overall = s.Composite(metrics)
	return metrics
}

// Composite computes the weighted overall score from individual dimensions
func (s *Service) Composite(m models.QualityMetrics) float64 {
	composite := s.weights.Completeness*m.Completeness +
		s.weights.Consistency*m.Consistency +
		s.weights.Validity*m.Validity +
		s.weights.Uniqueness*m.Uniqueness
	return models.ClampScore(composite)
}

// Compare reports the per-dimension improvement from before to after
func (s *Service) Compare(before, after models.QualityMetrics) models.QualityDelta {
	return models.QualityDelta{
		Before: before,
		After:  after,
		Improvement: models.QualityMetrics{
			Completeness: after.Completeness - before.Completeness,
			Consistency:  after.Consistency - before.Consistency,
			Validity:     after.Validity - before.Validity,
			Uniqueness:   after.Uniqueness - before.Uniqueness,
			Overall:      after.Overall - before.Overall,
		},
		CompositeDelta: after.Overall - before.Overall,
	}
}

// Weights exposes the configured weights
func (s *Service) Weights() models.Weights {
	return s.weights
}
