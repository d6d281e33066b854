package models

// Severity classifies validation issues
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValidSeverity checks if the severity is recognized
func IsValidSeverity(s Severity) bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// IssueCode identifies the kind of validation issue found
type IssueCode string

const (
	CodeExcessiveRowLoss IssueCode = "EXCESSIVE_ROW_LOSS"
	CodeRowLoss          IssueCode = "ROW_LOSS"
	CodeNullsIncreased   IssueCode = "NULLS_INCREASED"
	CodeColumnRemoved    IssueCode = "COLUMN_REMOVED"
	CodeTypeChanged      IssueCode = "TYPE_CHANGED"
	CodeMissingColumn    IssueCode = "MISSING_COLUMN"
	CodeTypeConversion   IssueCode = "TYPE_CONVERSION"
	CodeIncompatibleType IssueCode = "INCOMPATIBLE_TYPE"
	CodeExactRowLeakage  IssueCode = "EXACT_ROW_LEAKAGE"
	CodePotentialLeakage IssueCode = "POTENTIAL_LEAKAGE"
	CodeHighCorrelation  IssueCode = "HIGH_CORRELATION"
)

// ValidationIssue is a single finding produced by a validator check
type ValidationIssue struct {
	Severity Severity  `json:"severity"`
	Code     IssueCode `json:"code"`
	Message  string    `json:"message"`
	Column   string    `json:"column,omitempty"`
}

// ValidationResult aggregates all issues found while validating a
// transformed dataset against the original
type ValidationResult struct {
	Passed              bool              `json:"passed"`
	Issues              []ValidationIssue `json:"issues"`
	OriginalRowCount    int               `json:"original_row_count"`
	TransformedRowCount int               `json:"transformed_row_count"`
	SchemaCompatible    bool              `json:"schema_compatible"`
}

// HasErrors reports whether any issue has error severity
func HasErrors(issues []ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// IssuesWithCode filters issues by code
func IssuesWithCode(issues []ValidationIssue, code IssueCode) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range issues {
		if issue.Code == code {
			out = append(out, issue)
		}
	}
	return out
}
