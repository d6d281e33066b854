package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestGenerator_NilProfile(t *testing.T) {
	g := NewGenerator()
	assert.Empty(t, g.Generate(nil))
}

func TestGenerator_EmptyProfile(t *testing.T) {
	g := NewGenerator()
	profile := &models.DataProfile{Columns: map[string]models.ColumnProfile{}}
	assert.Empty(t, g.Generate(profile))
}

func TestGenerator_NumericColumnWithNulls(t *testing.T) {
	g := NewGenerator()
	profile := &models.DataProfile{
		RowCount:    100,
		ColumnCount: 1,
		Columns: map[string]models.ColumnProfile{
			"age": {
				Name:         "age",
				InferredType: models.TypeNumeric,
				NullCount:    10,
				Mean:         floatPtr(35.0),
				Std:          floatPtr(8.0),
				MinValue:     floatPtr(18.0),
				MaxValue:     floatPtr(90.0),
			},
		},
	}

	candidates := g.Generate(profile)

	byType := map[models.TransformationType]int{}
	strategies := map[string]bool{}
	for _, c := range candidates {
		byType[c.Type]++
		if c.Type == models.TransformFillMissing {
			strategies[c.StrategyParam()] = true
		}
	}

	// Mean, median and constant fills for a numeric column with nulls
	assert.Equal(t, 3, byType[models.TransformFillMissing])
	assert.True(t, strategies["mean"])
	assert.True(t, strategies["median"])
	assert.True(t, strategies["constant"])

	// Standard plus minmax normalization, IQR plus z-score outliers
	assert.Equal(t, 2, byType[models.TransformNormalize])
	assert.Equal(t, 2, byType[models.TransformRemoveOutliers])
	assert.Zero(t, byType[models.TransformEncodeCategorical])
	assert.Zero(t, byType[models.TransformCastType])
	assert.Zero(t, byType[models.TransformDropDuplicates])
}

func TestGenerator_CategoricalColumn(t *testing.T) {
	g := NewGenerator()
	profile := &models.DataProfile{
		RowCount:    50,
		ColumnCount: 1,
		Columns: map[string]models.ColumnProfile{
			"city": {
				Name:         "city",
				InferredType: models.TypeCategorical,
				NullCount:    5,
				UniqueCount:  intPtr(4),
			},
		},
	}

	candidates := g.Generate(profile)

	methods := map[string]bool{}
	fills := 0
	for _, c := range candidates {
		switch c.Type {
		case models.TransformEncodeCategorical:
			methods[c.MethodParam("")] = true
		case models.TransformFillMissing:
			fills++
		}
	}

	assert.True(t, methods["onehot"])
	assert.True(t, methods["label"])
	assert.Equal(t, 2, fills, "mode and constant fill for a categorical column with nulls")
}

func TestGenerator_TextColumnCastCandidates(t *testing.T) {
	g := NewGenerator()
	profile := &models.DataProfile{
		RowCount: 10,
		Columns: map[string]models.ColumnProfile{
			"joined": {Name: "joined", InferredType: models.TypeText, NullCount: 0},
		},
	}

	candidates := g.Generate(profile)

	targets := map[string]bool{}
	for _, c := range candidates {
		if c.Type == models.TransformCastType {
			targets[c.TargetTypeParam()] = true
		}
	}
	assert.True(t, targets["datetime"])
	assert.True(t, targets["numeric"], "numeric cast offered when the column has no nulls")
}

func TestGenerator_DuplicateRows(t *testing.T) {
	g := NewGenerator()
	profile := &models.DataProfile{
		RowCount:      10,
		DuplicateRows: 3,
		Columns:       map[string]models.ColumnProfile{},
	}

	candidates := g.Generate(profile)
	require.Len(t, candidates, 1)
	assert.Equal(t, models.TransformDropDuplicates, candidates[0].Type)
	assert.Empty(t, candidates[0].TargetColumns, "empty target list means all columns")
	assert.False(t, candidates[0].Reversible)
}

func TestGenerator_DeterministicOrder(t *testing.T) {
	g := NewGenerator()
	profile := &models.DataProfile{
		RowCount: 10,
		Columns: map[string]models.ColumnProfile{
			"b": {Name: "b", InferredType: models.TypeNumeric, Mean: floatPtr(1)},
			"a": {Name: "a", InferredType: models.TypeNumeric, Mean: floatPtr(1)},
		},
	}

	first := g.Generate(profile)
	second := g.Generate(profile)

	require.Equal(t, len(first), len(second))
	for i := range first {
		// Fresh ids each call, identical content otherwise
		assert.Equal(t, first[i].Type, second[i].Type)
		assert.Equal(t, first[i].TargetColumns, second[i].TargetColumns)
		assert.Equal(t, first[i].Params, second[i].Params)
	}
	assert.Equal(t, []string{"a"}, first[0].TargetColumns, "columns visited in sorted order")
}

func TestReversibilityClassifier(t *testing.T) {
	c := NewReversibilityClassifier()

	cases := []struct {
		name       string
		t          models.Transformation
		reversible bool
	}{
		{"normalize", models.Transformation{Type: models.TransformNormalize}, true},
		{"encode", models.Transformation{Type: models.TransformEncodeCategorical}, true},
		{"cast", models.Transformation{Type: models.TransformCastType}, true},
		{"outliers", models.Transformation{Type: models.TransformRemoveOutliers}, false},
		{"duplicates", models.Transformation{Type: models.TransformDropDuplicates}, false},
		{"constant fill", models.Transformation{
			Type:   models.TransformFillMissing,
			Params: map[string]any{models.ParamStrategy: "constant"},
		}, true},
		{"mean fill", models.Transformation{
			Type:   models.TransformFillMissing,
			Params: map[string]any{models.ParamStrategy: "mean"},
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.reversible, c.IsReversible(tc.t))
			assert.NotEmpty(t, c.Reason(tc.t))

			classified := c.Classify(tc.t)
			assert.Equal(t, tc.reversible, classified.Reversible)
		})
	}
}
