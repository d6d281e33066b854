package rank

import (
	"fmt"
	"strings"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// Policy scores a candidate and explains the score. Policies are pure over
// the candidate's quality delta.
type Policy interface {
	Score(candidate models.TransformationCandidate) float64
	Reasoning(candidate models.TransformationCandidate, score float64) string
	Name() string
}

// CompositeScorePolicy scores candidates by a blend of weighted quality
// improvement and the absolute quality reached after the transformation.
type CompositeScorePolicy struct {
	weights models.Weights
}

// NewCompositeScorePolicy creates the policy with the given metric weights
func NewCompositeScorePolicy(weights models.Weights) *CompositeScorePolicy {
	return &CompositeScorePolicy{weights: weights}
}

// Name identifies the policy in config and logs
func (p *CompositeScorePolicy) Name() string {
	return "composite"
}

// Score blends 70% weighted improvement with 30% final overall quality
func (p *CompositeScorePolicy) Score(candidate models.TransformationCandidate) float64 {
	delta := candidate.QualityDelta

	improvement := delta.Improvement.Completeness*p.weights.Completeness +
		delta.Improvement.Consistency*p.weights.Consistency +
		delta.Improvement.Validity*p.weights.Validity +
		delta.Improvement.Uniqueness*p.weights.Uniqueness

	return 0.7*improvement + 0.3*delta.After.Overall
}

// Reasoning explains the score in terms of the metric movements
func (p *CompositeScorePolicy) Reasoning(candidate models.TransformationCandidate, score float64) string {
	delta := candidate.QualityDelta
	t := candidate.Transformation

	var improvements []string
	if delta.Improvement.Completeness > 0 {
		improvements = append(improvements, fmt.Sprintf("completeness %.2f%% to %.2f%%",
			delta.Before.Completeness*100, delta.After.Completeness*100))
	}
	if delta.Improvement.Consistency > 0 {
		improvements = append(improvements, fmt.Sprintf("consistency %.2f%% to %.2f%%",
			delta.Before.Consistency*100, delta.After.Consistency*100))
	}
	if delta.Improvement.Validity > 0 {
		improvements = append(improvements, fmt.Sprintf("validity %.2f%% to %.2f%%",
			delta.Before.Validity*100, delta.After.Validity*100))
	}
	if delta.Improvement.Uniqueness > 0 {
		improvements = append(improvements, fmt.Sprintf("uniqueness %.2f%% to %.2f%%",
			delta.Before.Uniqueness*100, delta.After.Uniqueness*100))
	}

	improvementStr := "no measurable improvement"
	if len(improvements) > 0 {
		improvementStr = strings.Join(improvements, ", ")
	}

	return fmt.Sprintf(
		"Transformation '%s' on columns %v achieved composite score %.3f. "+
			"Quality improvements: %s. Overall quality: %.2f%% to %.2f%%.",
		t.Type, t.TargetColumns, score, improvementStr,
		delta.Before.Overall*100, delta.After.Overall*100)
}

// ImprovementPolicy scores candidates by the raw delta of one primary
// metric, ignoring the absolute quality level reached.
type ImprovementPolicy struct {
	primaryMetric string
}

// NewImprovementPolicy creates the policy around a primary metric name.
// Unknown names fall back to the composite delta.
func NewImprovementPolicy(primaryMetric string) *ImprovementPolicy {
	if primaryMetric == "" {
		primaryMetric = "overall"
	}
	return &ImprovementPolicy{primaryMetric: primaryMetric}
}

// Name identifies the policy in config and logs
func (p *ImprovementPolicy) Name() string {
	return "improvement"
}

// Score returns the delta of the primary metric
func (p *ImprovementPolicy) Score(candidate models.TransformationCandidate) float64 {
	delta := candidate.QualityDelta

	switch p.primaryMetric {
	case "overall":
		return delta.CompositeDelta
	case "completeness":
		return delta.Improvement.Completeness
	case "consistency":
		return delta.Improvement.Consistency
	case "validity":
		return delta.Improvement.Validity
	case "uniqueness":
		return delta.Improvement.Uniqueness
	default:
		return delta.CompositeDelta
	}
}

// Reasoning explains the score in terms of per-metric changes
func (p *ImprovementPolicy) Reasoning(candidate models.TransformationCandidate, score float64) string {
	delta := candidate.QualityDelta
	t := candidate.Transformation

	var details []string
	if delta.Improvement.Completeness != 0 {
		details = append(details, fmt.Sprintf("completeness: %+.2f%%", delta.Improvement.Completeness*100))
	}
	if delta.Improvement.Consistency != 0 {
		details = append(details, fmt.Sprintf("consistency: %+.2f%%", delta.Improvement.Consistency*100))
	}
	if delta.Improvement.Validity != 0 {
		details = append(details, fmt.Sprintf("validity: %+.2f%%", delta.Improvement.Validity*100))
	}
	if delta.Improvement.Uniqueness != 0 {
		details = append(details, fmt.Sprintf("uniqueness: %+.2f%%", delta.Improvement.Uniqueness*100))
	}

	detailsStr := "no change"
	if len(details) > 0 {
		detailsStr = strings.Join(details, ", ")
	}

	return fmt.Sprintf(
		"Transformation '%s' on columns %v provides %s improvement of %+.3f. "+
			"Metric changes: %s. Composite delta: %+.3f.",
		t.Type, t.TargetColumns, p.primaryMetric, score, detailsStr, delta.CompositeDelta)
}
