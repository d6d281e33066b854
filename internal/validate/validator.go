// Package validate judges transformed datasets against the original: data
// integrity, information leakage and schema compatibility. Checks report
// their findings as issues; a result fails only on error-level issues.
package validate

import (
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// Validator is the contract the orchestrator consumes
type Validator interface {
	Validate(original, transformed *models.Dataset, profile *models.DataProfile) models.ValidationResult
}

// Service coordinates the three validators over one transformed dataset
type Service struct {
	integrity *IntegrityValidator
	leakage   *LeakageDetector
	schema    *SchemaValidator
}

// NewService creates a validation service from the configured thresholds
func NewService(cfg models.ValidationConfig) *Service {
	return &Service{
		integrity: NewIntegrityValidator(cfg.RowCountTolerance),
		leakage:   NewLeakageDetector(cfg.LeakageOverlapRatio, cfg.CorrelationThreshold),
		schema:    NewSchemaValidator(),
	}
}

// Validate runs all checks and aggregates their issues into one result
func (s *Service) Validate(original, transformed *models.Dataset, profile *models.DataProfile) models.ValidationResult {
	var issues []models.ValidationIssue

	issues = append(issues, s.integrity.ValidateAll(original, transformed, profile)...)

	_, leakageIssues := s.leakage.CheckLeakage(original, transformed, profile)
	issues = append(issues, leakageIssues...)

	schemaCompatible, schemaIssues := s.schema.ValidateSchemaCompatibility(original, transformed, profile)
	issues = append(issues, schemaIssues...)

	return models.ValidationResult{
		Passed:              !models.HasErrors(issues),
		Issues:              issues,
		OriginalRowCount:    original.RowCount(),
		TransformedRowCount: transformed.RowCount(),
		SchemaCompatible:    schemaCompatible,
	}
}

// CheckLeakage reports only whether hard leakage exists between the datasets
func (s *Service) CheckLeakage(original, transformed *models.Dataset) bool {
	detected, _ := s.leakage.CheckLeakage(original, transformed, nil)
	return detected
}
