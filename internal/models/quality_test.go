package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeights_ValidateSumToOne(t *testing.T) {
	w := Weights{Completeness: 0.4, Consistency: 0.3, Validity: 0.2, Uniqueness: 0.1}
	assert.NoError(t, w.Validate(), "weights summing to 1.0 should validate")
}

func TestWeights_ValidateRejectsBadSum(t *testing.T) {
	w := Weights{Completeness: 0.5, Consistency: 0.5, Validity: 0.5, Uniqueness: 0.5}
	assert.Error(t, w.Validate(), "weights summing to 2.0 should fail validation")
}

func TestWeights_ValidateWithinTolerance(t *testing.T) {
	// A sum off by less than WeightTolerance is accepted
	w := Weights{Completeness: 0.25, Consistency: 0.25, Validity: 0.25, Uniqueness: 0.25 + 1e-9}
	assert.NoError(t, w.Validate(), "deviation below tolerance should be accepted")

	// A sum off by more than WeightTolerance is rejected
	w = Weights{Completeness: 0.25, Consistency: 0.25, Validity: 0.25, Uniqueness: 0.26}
	assert.Error(t, w.Validate(), "deviation above tolerance should be rejected")
}

func TestWeights_ValidateToleranceIsInclusive(t *testing.T) {
	// The tolerance bound itself is inside the accepted interval. Summation
	// near 1.0 cannot land on 1e-6 exactly in float64, so check the
	// representable deviations on either side of it.
	w := Weights{Completeness: 1.0, Uniqueness: WeightTolerance}
	assert.NoError(t, w.Validate(), "a deviation at the tolerance must be accepted")

	w = Weights{Completeness: 1.0, Uniqueness: WeightTolerance + 1e-8}
	assert.Error(t, w.Validate(), "a deviation past the tolerance must be rejected")
}

func TestNewWeights(t *testing.T) {
	w, err := NewWeights(0.25, 0.25, 0.25, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 0.25, w.Completeness)

	_, err = NewWeights(1.0, 1.0, 0.0, 0.0)
	assert.Error(t, err, "invalid weights should not construct")
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	assert.NoError(t, w.Validate(), "default weights must always validate")
	assert.Equal(t, 0.25, w.Completeness)
	assert.Equal(t, 0.25, w.Consistency)
	assert.Equal(t, 0.25, w.Validity)
	assert.Equal(t, 0.25, w.Uniqueness)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, ClampScore(-0.5), "negative scores clamp to 0")
	assert.Equal(t, 1.0, ClampScore(1.5), "scores above 1 clamp to 1")
	assert.Equal(t, 0.75, ClampScore(0.75), "in-range scores pass through")
}
