package validate

import (
	"fmt"
	"time"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// IntegrityValidator checks that a transformation did not silently damage
// the dataset: row loss within tolerance, no columns dropped, no new nulls,
// storage types stable.
type IntegrityValidator struct {
	rowCountTolerance float64
}

// NewIntegrityValidator creates the validator with the given row loss tolerance
func NewIntegrityValidator(rowCountTolerance float64) *IntegrityValidator {
	return &IntegrityValidator{rowCountTolerance: rowCountTolerance}
}

// ValidateRowCount flags row loss. Loss above tolerance is an error, any
// loss at all is a warning.
func (v *IntegrityValidator) ValidateRowCount(original, transformed *models.Dataset) *models.ValidationIssue {
	originalCount := original.RowCount()
	transformedCount := transformed.RowCount()

	if originalCount == 0 {
		return nil
	}

	lossRatio := float64(originalCount-transformedCount) / float64(originalCount)

	if lossRatio > v.rowCountTolerance {
		return &models.ValidationIssue{
			Severity: models.SeverityError,
			Code:     models.CodeExcessiveRowLoss,
			Message: fmt.Sprintf("Row count decreased by %.1f%%, exceeding tolerance of %.1f%%",
				lossRatio*100, v.rowCountTolerance*100),
		}
	}

	if lossRatio > 0 {
		return &models.ValidationIssue{
			Severity: models.SeverityWarning,
			Code:     models.CodeRowLoss,
			Message:  fmt.Sprintf("Row count decreased by %.1f%%", lossRatio*100),
		}
	}

	return nil
}

// ValidateNullPreservation flags profiled columns that vanished or gained
// nulls. Filling nulls is fine; introducing them is not.
func (v *IntegrityValidator) ValidateNullPreservation(transformed *models.Dataset, profile *models.DataProfile) []models.ValidationIssue {
	var issues []models.ValidationIssue

	for _, name := range profile.ColumnNames() {
		col := profile.Columns[name]

		values, ok := transformed.Column(name)
		if !ok {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityError,
				Code:     models.CodeColumnRemoved,
				Message:  fmt.Sprintf("Column '%s' was removed", name),
				Column:   name,
			})
			continue
		}

		nullCount := 0
		for _, cell := range values {
			if models.IsNull(cell) {
				nullCount++
			}
		}

		if nullCount > col.NullCount {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityError,
				Code:     models.CodeNullsIncreased,
				Message:  fmt.Sprintf("Null count increased by %d in column '%s'", nullCount-col.NullCount, name),
				Column:   name,
			})
		}
	}

	return issues
}

// ValidateTypePreservation warns when a column's storage type changed
func (v *IntegrityValidator) ValidateTypePreservation(transformed *models.Dataset, profile *models.DataProfile) []models.ValidationIssue {
	var issues []models.ValidationIssue

	for _, name := range profile.ColumnNames() {
		col := profile.Columns[name]

		values, ok := transformed.Column(name)
		if !ok {
			continue
		}

		transformedDtype := storageDtype(values)
		if col.Dtype != transformedDtype {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityWarning,
				Code:     models.CodeTypeChanged,
				Message:  fmt.Sprintf("Column '%s' dtype changed from '%s' to '%s'", name, col.Dtype, transformedDtype),
				Column:   name,
			})
		}
	}

	return issues
}

// ValidateAll runs every integrity check
func (v *IntegrityValidator) ValidateAll(original, transformed *models.Dataset, profile *models.DataProfile) []models.ValidationIssue {
	var issues []models.ValidationIssue

	if issue := v.ValidateRowCount(original, transformed); issue != nil {
		issues = append(issues, *issue)
	}
	issues = append(issues, v.ValidateNullPreservation(transformed, profile)...)
	issues = append(issues, v.ValidateTypePreservation(transformed, profile)...)

	return issues
}

// storageDtype reports the storage type of a column's non-null cells
func storageDtype(values []any) string {
	for _, v := range values {
		if models.IsNull(v) {
			continue
		}
		switch v.(type) {
		case float64:
			return "float64"
		case int64, int:
			return "int64"
		case bool:
			return "bool"
		case time.Time:
			return "datetime"
		case string:
			return "string"
		}
	}
	return "string"
}
