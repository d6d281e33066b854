package validate

import (
	"fmt"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// SchemaValidator checks that the transformed dataset keeps a schema the
// original's consumers can still use.
type SchemaValidator struct{}

// NewSchemaValidator creates a schema validator
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{}
}

// ValidateColumnExistence flags original columns missing from the
// transformed data
func (v *SchemaValidator) ValidateColumnExistence(original, transformed *models.Dataset) []models.ValidationIssue {
	var issues []models.ValidationIssue

	for _, name := range original.Columns() {
		if !transformed.HasColumn(name) {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityError,
				Code:     models.CodeMissingColumn,
				Message:  fmt.Sprintf("Column '%s' is missing in transformed data", name),
				Column:   name,
			})
		}
	}

	return issues
}

// ValidateColumnTypes flags numeric columns that became strings. Parseable
// strings are a warning, unparseable ones an error.
func (v *SchemaValidator) ValidateColumnTypes(transformed *models.Dataset, profile *models.DataProfile) []models.ValidationIssue {
	var issues []models.ValidationIssue

	for _, name := range profile.ColumnNames() {
		col := profile.Columns[name]

		values, ok := transformed.Column(name)
		if !ok {
			continue
		}

		originalIsNumeric := col.Dtype == "int64" || col.Dtype == "float64"
		transformedDtype := storageDtype(values)

		if !originalIsNumeric || transformedDtype != "string" {
			continue
		}

		if allParseBackToNumeric(values) {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityWarning,
				Code:     models.CodeTypeConversion,
				Message:  fmt.Sprintf("Column '%s' converted from numeric to string", name),
				Column:   name,
			})
		} else {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityError,
				Code:     models.CodeIncompatibleType,
				Message: fmt.Sprintf("Column '%s' has incompatible type conversion from '%s' to '%s'",
					name, col.Dtype, transformedDtype),
				Column: name,
			})
		}
	}

	return issues
}

// ValidateSchemaCompatibility runs the schema checks. Compatible means no
// error-level issues.
func (v *SchemaValidator) ValidateSchemaCompatibility(original, transformed *models.Dataset, profile *models.DataProfile) (bool, []models.ValidationIssue) {
	var issues []models.ValidationIssue

	issues = append(issues, v.ValidateColumnExistence(original, transformed)...)
	issues = append(issues, v.ValidateColumnTypes(transformed, profile)...)

	return !models.HasErrors(issues), issues
}

func allParseBackToNumeric(values []any) bool {
	for _, v := range values {
		if models.IsNull(v) {
			continue
		}
		if _, ok := models.AsFloat(v); !ok {
			return false
		}
	}
	return true
}
