package models

import (
	"fmt"
	"math"
)

// QualityMetrics holds the four quality dimensions plus their weighted
// composite, each in [0, 1]
type QualityMetrics struct {
	Completeness float64 `json:"completeness"`
	Consistency  float64 `json:"consistency"`
	Validity     float64 `json:"validity"`
	Uniqueness   float64 `json:"uniqueness"`
	Overall      float64 `json:"overall"`
}

// QualityDelta captures the change in quality caused by a transformation.
// Improvement is component-wise after minus before; CompositeDelta is
// after.Overall minus before.Overall.
type QualityDelta struct {
	Before         QualityMetrics `json:"before"`
	After          QualityMetrics `json:"after"`
	Improvement    QualityMetrics `json:"improvement"`
	CompositeDelta float64        `json:"composite_delta"`
}

// WeightTolerance is the allowed deviation of a weight sum from 1.0
const WeightTolerance = 1e-6

// Weights configures the contribution of each metric to the composite score
type Weights struct {
	Completeness float64 `json:"completeness"`
	Consistency  float64 `json:"consistency"`
	Validity     float64 `json:"validity"`
	Uniqueness   float64 `json:"uniqueness"`
}

// DefaultWeights returns equal weighting across the four metrics
func DefaultWeights() Weights {
	return Weights{
		Completeness: 0.25,
		Consistency:  0.25,
		Validity:     0.25,
		Uniqueness:   0.25,
	}
}

// Validate checks that the weights sum to 1.0. A deviation of up to and
// including WeightTolerance is accepted.
func (w Weights) Validate() error {
	total := w.Completeness + w.Consistency + w.Validity + w.Uniqueness
	if math.Abs(total-1.0) > WeightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %g", total)
	}
	return nil
}

// NewWeights constructs validated weights
func NewWeights(completeness, consistency, validity, uniqueness float64) (Weights, error) {
	w := Weights{
		Completeness: completeness,
		Consistency:  consistency,
		Validity:     validity,
		Uniqueness:   uniqueness,
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// ClampScore clamps a score into [0, 1]
func ClampScore(score float64) float64 {
	return math.Max(0.0, math.Min(1.0, score))
}
