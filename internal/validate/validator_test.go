package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/profile"
)

func defaultValidationConfig() models.ValidationConfig {
	return models.ValidationConfig{
		RowCountTolerance:    0.1,
		LeakageOverlapRatio:  0.5,
		CorrelationThreshold: 0.99,
	}
}

func profiled(t *testing.T, ds *models.Dataset) *models.DataProfile {
	t.Helper()
	p, err := profile.NewService().Profile(ds)
	require.NoError(t, err)
	return p
}

func TestIntegrity_RowLossWithinTolerance(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("x", manyFloats(100)))

	transformed := original.Filter(keepFirst(100, 97))

	v := NewIntegrityValidator(0.1)
	issue := v.ValidateRowCount(original, transformed)

	require.NotNil(t, issue)
	assert.Equal(t, models.SeverityWarning, issue.Severity, "3% loss is only a warning")
	assert.Equal(t, models.CodeRowLoss, issue.Code)
}

func TestIntegrity_ExcessiveRowLoss(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("x", manyFloats(100)))

	transformed := original.Filter(keepFirst(100, 40))

	v := NewIntegrityValidator(0.1)
	issue := v.ValidateRowCount(original, transformed)

	require.NotNil(t, issue)
	assert.Equal(t, models.SeverityError, issue.Severity, "60% loss exceeds the tolerance")
	assert.Equal(t, models.CodeExcessiveRowLoss, issue.Code)
	assert.Contains(t, issue.Message, "60.0%")
}

func TestIntegrity_NoRowLoss(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", manyFloats(10)))

	v := NewIntegrityValidator(0.1)
	assert.Nil(t, v.ValidateRowCount(ds, ds.Clone()))
}

func TestIntegrity_NullsIncreased(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("x", []any{1.0, 2.0, 3.0}))
	p := profiled(t, original)

	transformed := original.Clone()
	require.NoError(t, transformed.SetColumn("x", []any{1.0, nil, 3.0}))

	v := NewIntegrityValidator(0.1)
	issues := v.ValidateNullPreservation(transformed, p)

	require.Len(t, issues, 1)
	assert.Equal(t, models.SeverityError, issues[0].Severity)
	assert.Equal(t, models.CodeNullsIncreased, issues[0].Code)
	assert.Equal(t, "x", issues[0].Column)
}

func TestIntegrity_FillingNullsIsFine(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("x", []any{1.0, nil, 3.0}))
	p := profiled(t, original)

	transformed := original.Clone()
	require.NoError(t, transformed.SetColumn("x", []any{1.0, 2.0, 3.0}))

	v := NewIntegrityValidator(0.1)
	assert.Empty(t, v.ValidateNullPreservation(transformed, p))
}

func TestIntegrity_ColumnRemoved(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("x", []any{1.0}))
	require.NoError(t, original.AddColumn("y", []any{"a"}))
	p := profiled(t, original)

	transformed := original.Clone()
	require.NoError(t, transformed.DropColumn("y"))

	v := NewIntegrityValidator(0.1)
	issues := v.ValidateNullPreservation(transformed, p)

	require.Len(t, issues, 1)
	assert.Equal(t, models.CodeColumnRemoved, issues[0].Code)
	assert.Equal(t, "y", issues[0].Column)
}

func TestIntegrity_TypeChanged(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("x", []any{int64(1), int64(2)}))
	p := profiled(t, original)

	transformed := original.Clone()
	require.NoError(t, transformed.SetColumn("x", []any{"1", "2"}))

	v := NewIntegrityValidator(0.1)
	issues := v.ValidateTypePreservation(transformed, p)

	require.Len(t, issues, 1)
	assert.Equal(t, models.SeverityWarning, issues[0].Severity)
	assert.Equal(t, models.CodeTypeChanged, issues[0].Code)
}

func TestLeakage_ExactRowOverlap(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("x", []any{1.0, 2.0, 3.0, 4.0}))

	d := NewLeakageDetector(0.5, 0.99)

	// An identity transform leaks every row
	assert.True(t, d.CheckExactRowLeakage(original, original.Clone()))

	// A fully rewritten dataset leaks nothing
	rewritten := original.Clone()
	require.NoError(t, rewritten.SetColumn("x", []any{10.0, 20.0, 30.0, 40.0}))
	assert.False(t, d.CheckExactRowLeakage(original, rewritten))
}

func TestLeakage_RowCountMismatchSkipsCheck(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("x", []any{1.0, 2.0, 3.0}))

	d := NewLeakageDetector(0.5, 0.99)
	filtered := original.Filter([]bool{true, true, false})

	assert.False(t, d.CheckExactRowLeakage(original, filtered),
		"row removal is not exact-row leakage")
}

func TestLeakage_HighCorrelation(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("x", []any{1.0, 2.0, 3.0, 4.0}))
	p := profiled(t, original)

	// A pure linear rescale keeps correlation at 1.0
	scaled := original.Clone()
	require.NoError(t, scaled.SetColumn("x", []any{2.0, 4.0, 6.0, 8.0}))

	d := NewLeakageDetector(0.5, 0.99)
	issues := d.CheckNumericCorrelation(original, scaled, p)

	require.Len(t, issues, 1)
	assert.Equal(t, models.SeverityInfo, issues[0].Severity)
	assert.Equal(t, models.CodeHighCorrelation, issues[0].Code)
	assert.Contains(t, issues[0].Message, "1.0000")
}

func TestLeakage_CategoricalValueSetUnchanged(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("city", []any{"a", "b", "a", "b", "a", "b", "a", "b"}))
	p := profiled(t, original)

	d := NewLeakageDetector(0.5, 0.99)
	issues := d.CheckCategoricalLeakage(original, original.Clone(), p)

	require.Len(t, issues, 1)
	assert.Equal(t, models.CodePotentialLeakage, issues[0].Code)
}

func TestSchema_MissingColumn(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("x", []any{1.0}))
	require.NoError(t, original.AddColumn("y", []any{2.0}))

	transformed := original.Clone()
	require.NoError(t, transformed.DropColumn("y"))

	v := NewSchemaValidator()
	issues := v.ValidateColumnExistence(original, transformed)

	require.Len(t, issues, 1)
	assert.Equal(t, models.CodeMissingColumn, issues[0].Code)
	assert.Equal(t, "y", issues[0].Column)
}

func TestSchema_NumericToParseableString(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("x", []any{1.5, 2.5}))
	p := profiled(t, original)

	transformed := original.Clone()
	require.NoError(t, transformed.SetColumn("x", []any{"1.5", "2.5"}))

	v := NewSchemaValidator()
	compatible, issues := v.ValidateSchemaCompatibility(original, transformed, p)

	assert.True(t, compatible, "parseable conversions are compatible")
	require.Len(t, issues, 1)
	assert.Equal(t, models.CodeTypeConversion, issues[0].Code)
	assert.Equal(t, models.SeverityWarning, issues[0].Severity)
}

func TestSchema_NumericToUnparseableString(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("x", []any{1.5, 2.5}))
	p := profiled(t, original)

	transformed := original.Clone()
	require.NoError(t, transformed.SetColumn("x", []any{"high", "low"}))

	v := NewSchemaValidator()
	compatible, issues := v.ValidateSchemaCompatibility(original, transformed, p)

	assert.False(t, compatible)
	require.Len(t, issues, 1)
	assert.Equal(t, models.CodeIncompatibleType, issues[0].Code)
	assert.Equal(t, models.SeverityError, issues[0].Severity)
}

func TestService_ValidatePassesCleanTransformation(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("x", []any{1.0, nil, nil, nil, 5.0}))
	p := profiled(t, original)

	// Filling the nulls rewrites most rows, so no exact-row leakage either
	transformed := original.Clone()
	require.NoError(t, transformed.SetColumn("x", []any{1.0, 2.0, 3.0, 4.0, 5.0}))

	s := NewService(defaultValidationConfig())
	result := s.Validate(original, transformed, p)

	assert.True(t, result.Passed)
	assert.True(t, result.SchemaCompatible)
	assert.Equal(t, 5, result.OriginalRowCount)
	assert.Equal(t, 5, result.TransformedRowCount)
	assert.False(t, models.HasErrors(result.Issues))
}

func TestService_ValidateFailsOnErrors(t *testing.T) {
	original := models.NewDataset()
	require.NoError(t, original.AddColumn("x", manyFloats(100)))
	p := profiled(t, original)

	// Drop 60% of the rows
	transformed := original.Filter(keepFirst(100, 40))

	s := NewService(defaultValidationConfig())
	result := s.Validate(original, transformed, p)

	assert.False(t, result.Passed)
	require.NotEmpty(t, models.IssuesWithCode(result.Issues, models.CodeExcessiveRowLoss))
}

func manyFloats(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func keepFirst(total, keep int) []bool {
	out := make([]bool, total)
	for i := 0; i < keep; i++ {
		out[i] = true
	}
	return out
}
