package validate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// LeakageDetector looks for transformed data that still carries the original
// values: exact row copies, untouched categorical mappings and numeric
// columns that barely moved.
type LeakageDetector struct {
	overlapRatio         float64
	correlationThreshold float64
}

// NewLeakageDetector creates the detector with its thresholds
func NewLeakageDetector(overlapRatio, correlationThreshold float64) *LeakageDetector {
	return &LeakageDetector{
		overlapRatio:         overlapRatio,
		correlationThreshold: correlationThreshold,
	}
}

// CheckExactRowLeakage reports whether the transformed data is mostly exact
// copies of original rows. Only meaningful when the row counts match.
func (d *LeakageDetector) CheckExactRowLeakage(original, transformed *models.Dataset) bool {
	if original.RowCount() == 0 || transformed.RowCount() == 0 {
		return false
	}
	if original.RowCount() != transformed.RowCount() {
		return false
	}

	originalRows := map[string]struct{}{}
	for i := 0; i < original.RowCount(); i++ {
		originalRows[original.RowKey(i)] = struct{}{}
	}

	transformedRows := map[string]struct{}{}
	for i := 0; i < transformed.RowCount(); i++ {
		transformedRows[transformed.RowKey(i)] = struct{}{}
	}

	overlap := 0
	for key := range transformedRows {
		if _, ok := originalRows[key]; ok {
			overlap++
		}
	}

	return float64(overlap)/float64(len(transformedRows)) > d.overlapRatio
}

// CheckCategoricalLeakage warns on categorical columns whose value set did
// not change, a sign the encoding was a no-op.
func (d *LeakageDetector) CheckCategoricalLeakage(original, transformed *models.Dataset, profile *models.DataProfile) []models.ValidationIssue {
	var issues []models.ValidationIssue

	for _, name := range profile.ColumnNames() {
		col := profile.Columns[name]
		if col.InferredType != models.TypeCategorical || col.UniqueCount == nil {
			continue
		}

		originalValues, okO := original.Column(name)
		transformedValues, okT := transformed.Column(name)
		if !okO || !okT {
			continue
		}

		originalSet := distinctValues(originalValues)
		transformedSet := distinctValues(transformedValues)

		if len(originalSet) != len(transformedSet) {
			continue
		}
		if sameValueSet(originalSet, transformedSet) {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityWarning,
				Code:     models.CodePotentialLeakage,
				Message:  fmt.Sprintf("Column '%s' appears to have direct value mapping without transformation", name),
				Column:   name,
			})
		}
	}

	return issues
}

// CheckNumericCorrelation reports numeric columns still nearly perfectly
// correlated with the original, informational only.
func (d *LeakageDetector) CheckNumericCorrelation(original, transformed *models.Dataset, profile *models.DataProfile) []models.ValidationIssue {
	var issues []models.ValidationIssue

	for _, name := range profile.ColumnNames() {
		col := profile.Columns[name]
		if col.InferredType != models.TypeNumeric {
			continue
		}

		originalValues, okO := original.Column(name)
		transformedValues, okT := transformed.Column(name)
		if !okO || !okT {
			continue
		}

		origNums := nonNullFloats(originalValues)
		transNums := nonNullFloats(transformedValues)
		if len(origNums) == 0 || len(origNums) != len(transNums) {
			continue
		}

		correlation := stat.Correlation(origNums, transNums, nil)
		if !math.IsNaN(correlation) && correlation > d.correlationThreshold {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityInfo,
				Code:     models.CodeHighCorrelation,
				Message: fmt.Sprintf("Column '%s' has very high correlation (%.4f) with original - may need transformation",
					name, correlation),
				Column: name,
			})
		}
	}

	return issues
}

// CheckLeakage runs every leakage check and reports whether hard leakage
// was found
func (d *LeakageDetector) CheckLeakage(original, transformed *models.Dataset, profile *models.DataProfile) (bool, []models.ValidationIssue) {
	var issues []models.ValidationIssue
	detected := false

	if d.CheckExactRowLeakage(original, transformed) {
		detected = true
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityError,
			Code:     models.CodeExactRowLeakage,
			Message:  "Transformed data contains exact copies of original rows",
		})
	}

	if profile != nil {
		issues = append(issues, d.CheckCategoricalLeakage(original, transformed, profile)...)
		issues = append(issues, d.CheckNumericCorrelation(original, transformed, profile)...)
	}

	return detected, issues
}

func distinctValues(values []any) map[string]struct{} {
	out := map[string]struct{}{}
	for _, v := range values {
		if models.IsNull(v) {
			continue
		}
		out[models.AsString(v)] = struct{}{}
	}
	return out
}

func sameValueSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func nonNullFloats(values []any) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if models.IsNull(v) {
			continue
		}
		if f, ok := models.AsFloat(v); ok {
			out = append(out, f)
		}
	}
	return out
}
