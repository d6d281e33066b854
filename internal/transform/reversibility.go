package transform

import (
	"fmt"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// ReversibilityClassifier decides from a transformation's static description
// whether it can be undone, without looking at any data.
type ReversibilityClassifier struct{}

// NewReversibilityClassifier creates a classifier
func NewReversibilityClassifier() *ReversibilityClassifier {
	return &ReversibilityClassifier{}
}

// IsReversible reports whether a transformation of this type and parameters
// can be reversed. Row-dropping types never are; value rewrites are, except
// fills whose original null positions are only recoverable for constant fill.
func (c *ReversibilityClassifier) IsReversible(t models.Transformation) bool {
	switch t.Type {
	case models.TransformNormalize, models.TransformEncodeCategorical, models.TransformCastType:
		return true
	case models.TransformRemoveOutliers, models.TransformDropDuplicates:
		return false
	case models.TransformFillMissing:
		return t.StrategyParam() == "constant"
	default:
		return false
	}
}

// Reason explains the classification in a short human-readable sentence
func (c *ReversibilityClassifier) Reason(t models.Transformation) string {
	switch t.Type {
	case models.TransformNormalize:
		return "normalization retains scaling parameters and can be inverted"
	case models.TransformEncodeCategorical:
		return "encoding retains the category mapping and can be inverted"
	case models.TransformCastType:
		return "type casts retain the original values and can be restored"
	case models.TransformRemoveOutliers:
		return "removed rows cannot be recovered"
	case models.TransformDropDuplicates:
		return "dropped rows cannot be recovered"
	case models.TransformFillMissing:
		if t.StrategyParam() == "constant" {
			return "constant fills are distinguishable and can be cleared"
		}
		return fmt.Sprintf("%s fills are indistinguishable from real values", t.StrategyParam())
	default:
		return fmt.Sprintf("unknown transformation type %s", t.Type)
	}
}

// Classify updates the transformation's Reversible flag to match the
// classifier's verdict and returns the copy.
func (c *ReversibilityClassifier) Classify(t models.Transformation) models.Transformation {
	t.Reversible = c.IsReversible(t)
	return t
}
