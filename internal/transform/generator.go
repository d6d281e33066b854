// Package transform holds the transformation candidate lifecycle: rule-based
// candidate generation, dependency ordering, reversibility classification,
// the per-type appliers and the executor that dispatches to them.
package transform

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// Generator turns a DataProfile into transformation candidates through
// deterministic rules. Candidate content is purely a function of the profile;
// only the ids are fresh per call.
type Generator struct{}

// NewGenerator creates a candidate generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produces all transformation candidates for a profile.
// An empty profile yields an empty list; there is no failure mode.
func (g *Generator) Generate(profile *models.DataProfile) []models.Transformation {
	if profile == nil {
		return []models.Transformation{}
	}

	candidates := []models.Transformation{}

	// Deterministic column order keeps candidate lists stable across runs
	for _, name := range profile.ColumnNames() {
		col := profile.Columns[name]
		candidates = append(candidates, g.fillMissingCandidates(name, col)...)
		candidates = append(candidates, g.normalizeCandidates(name, col)...)
		candidates = append(candidates, g.encodeCandidates(name, col)...)
		candidates = append(candidates, g.outlierCandidates(name, col)...)
		candidates = append(candidates, g.castCandidates(name, col)...)
	}

	if profile.DuplicateRows > 0 {
		candidates = append(candidates, g.dropDuplicatesCandidate())
	}

	return candidates
}

func (g *Generator) fillMissingCandidates(name string, col models.ColumnProfile) []models.Transformation {
	if col.NullCount == 0 {
		return nil
	}

	var candidates []models.Transformation

	switch col.InferredType {
	case models.TypeNumeric:
		if col.Mean != nil {
			candidates = append(candidates, models.Transformation{
				ID:            uuid.New().String(),
				Type:          models.TransformFillMissing,
				TargetColumns: []string{name},
				Params:        map[string]any{models.ParamStrategy: "mean"},
				Reversible:    false,
				Description:   fmt.Sprintf("Fill missing values in %s with mean", name),
			})
		}
		candidates = append(candidates, models.Transformation{
			ID:            uuid.New().String(),
			Type:          models.TransformFillMissing,
			TargetColumns: []string{name},
			Params:        map[string]any{models.ParamStrategy: "median"},
			Reversible:    false,
			Description:   fmt.Sprintf("Fill missing values in %s with median", name),
		})
	case models.TypeCategorical:
		candidates = append(candidates, models.Transformation{
			ID:            uuid.New().String(),
			Type:          models.TransformFillMissing,
			TargetColumns: []string{name},
			Params:        map[string]any{models.ParamStrategy: "mode"},
			Reversible:    false,
			Description:   fmt.Sprintf("Fill missing values in %s with mode", name),
		})
	}

	// Constant fill applies to any column with missing values
	candidates = append(candidates, models.Transformation{
		ID:            uuid.New().String(),
		Type:          models.TransformFillMissing,
		TargetColumns: []string{name},
		Params:        map[string]any{models.ParamStrategy: "constant", models.ParamFillValue: float64(0)},
		Reversible:    true,
		Description:   fmt.Sprintf("Fill missing values in %s with constant", name),
	})

	return candidates
}

func (g *Generator) normalizeCandidates(name string, col models.ColumnProfile) []models.Transformation {
	if col.InferredType != models.TypeNumeric {
		return nil
	}

	candidates := []models.Transformation{{
		ID:            uuid.New().String(),
		Type:          models.TransformNormalize,
		TargetColumns: []string{name},
		Params:        map[string]any{models.ParamMethod: "standard"},
		Reversible:    true,
		Description:   fmt.Sprintf("Standard normalize %s (z-score)", name),
	}}

	if col.MinValue != nil && col.MaxValue != nil {
		candidates = append(candidates, models.Transformation{
			ID:            uuid.New().String(),
			Type:          models.TransformNormalize,
			TargetColumns: []string{name},
			Params:        map[string]any{models.ParamMethod: "minmax"},
			Reversible:    true,
			Description:   fmt.Sprintf("Min-max normalize %s", name),
		})
	}

	return candidates
}

func (g *Generator) encodeCandidates(name string, col models.ColumnProfile) []models.Transformation {
	if col.InferredType != models.TypeCategorical {
		return nil
	}

	return []models.Transformation{
		{
			ID:            uuid.New().String(),
			Type:          models.TransformEncodeCategorical,
			TargetColumns: []string{name},
			Params:        map[string]any{models.ParamMethod: "onehot"},
			Reversible:    false,
			Description:   fmt.Sprintf("One-hot encode %s", name),
		},
		{
			ID:            uuid.New().String(),
			Type:          models.TransformEncodeCategorical,
			TargetColumns: []string{name},
			Params:        map[string]any{models.ParamMethod: "label"},
			Reversible:    true,
			Description:   fmt.Sprintf("Label encode %s", name),
		},
	}
}

func (g *Generator) outlierCandidates(name string, col models.ColumnProfile) []models.Transformation {
	if col.InferredType != models.TypeNumeric || col.Std == nil {
		return nil
	}

	return []models.Transformation{
		{
			ID:            uuid.New().String(),
			Type:          models.TransformRemoveOutliers,
			TargetColumns: []string{name},
			Params:        map[string]any{models.ParamMethod: "iqr", models.ParamThreshold: 1.5},
			Reversible:    false,
			Description:   fmt.Sprintf("Remove outliers from %s using IQR", name),
		},
		{
			ID:            uuid.New().String(),
			Type:          models.TransformRemoveOutliers,
			TargetColumns: []string{name},
			Params:        map[string]any{models.ParamMethod: "zscore", models.ParamThreshold: 3.0},
			Reversible:    false,
			Description:   fmt.Sprintf("Remove outliers from %s using z-score", name),
		},
	}
}

func (g *Generator) castCandidates(name string, col models.ColumnProfile) []models.Transformation {
	if col.InferredType != models.TypeText {
		return nil
	}

	candidates := []models.Transformation{{
		ID:            uuid.New().String(),
		Type:          models.TransformCastType,
		TargetColumns: []string{name},
		Params:        map[string]any{models.ParamTargetType: "datetime"},
		Reversible:    true,
		Description:   fmt.Sprintf("Cast %s to datetime", name),
	}}

	if col.NullCount == 0 {
		candidates = append(candidates, models.Transformation{
			ID:            uuid.New().String(),
			Type:          models.TransformCastType,
			TargetColumns: []string{name},
			Params:        map[string]any{models.ParamTargetType: "numeric"},
			Reversible:    true,
			Description:   fmt.Sprintf("Cast %s to numeric", name),
		})
	}

	return candidates
}

func (g *Generator) dropDuplicatesCandidate() models.Transformation {
	return models.Transformation{
		ID:            uuid.New().String(),
		Type:          models.TransformDropDuplicates,
		TargetColumns: []string{}, // Empty means all columns
		Params:        map[string]any{},
		Reversible:    false,
		Description:   "Remove duplicate rows",
	}
}
