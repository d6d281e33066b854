package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

func outlierTransformation(method, action string, threshold float64) models.Transformation {
	return models.Transformation{
		ID:            "out-1",
		Type:          models.TransformRemoveOutliers,
		TargetColumns: []string{"x"},
		Params: map[string]any{
			models.ParamMethod:    method,
			models.ParamAction:    action,
			models.ParamThreshold: threshold,
		},
	}
}

func TestOutliers_IQRMask(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", []any{1.0, 2.0, 3.0, 4.0, 5.0, 100.0}))

	a := newOutlierApplier(outlierTransformation("iqr", "mask", 1.5)).(*outlierApplier)
	out, err := a.Apply(ds)
	require.NoError(t, err)

	values, _ := out.Column("x")
	assert.Nil(t, values[5], "the extreme value is masked to null")
	assert.Equal(t, 1.0, values[0], "inliers keep their values")
	assert.Equal(t, 6, out.RowCount(), "masking never drops rows")
	assert.Equal(t, 1, a.OutlierCount())
}

func TestOutliers_IQRRemove(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", []any{1.0, 2.0, 3.0, 4.0, 5.0, 100.0}))
	require.NoError(t, ds.AddColumn("label", []any{"a", "b", "c", "d", "e", "f"}))

	a := newOutlierApplier(outlierTransformation("iqr", "remove", 1.5))
	out, err := a.Apply(ds)
	require.NoError(t, err)

	assert.Equal(t, 5, out.RowCount(), "the outlier row is removed entirely")
	labels, _ := out.Column("label")
	assert.NotContains(t, labels, "f")
}

func TestOutliers_ZScore(t *testing.T) {
	values := make([]any, 0, 31)
	for i := 0; i < 30; i++ {
		values = append(values, 10.0)
	}
	values = append(values, 1000.0)

	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", values))

	a := newOutlierApplier(outlierTransformation("zscore", "mask", 3.0)).(*outlierApplier)
	out, err := a.Apply(ds)
	require.NoError(t, err)

	masked, _ := out.Column("x")
	assert.Nil(t, masked[30])
	assert.Equal(t, 1, a.OutlierCount())
}

func TestOutliers_ZScoreZeroStd(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", []any{5.0, 5.0, 5.0}))

	a := newOutlierApplier(outlierTransformation("zscore", "mask", 3.0)).(*outlierApplier)
	out, err := a.Apply(ds)
	require.NoError(t, err)

	assert.Equal(t, 0, a.OutlierCount(), "a constant column has no outliers")
	values, _ := out.Column("x")
	assert.Equal(t, 5.0, values[0])
}

func TestOutliers_NullsAreNeverOutliers(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", []any{1.0, nil, 2.0, 3.0}))

	a := newOutlierApplier(outlierTransformation("iqr", "remove", 1.5))
	out, err := a.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, 4, out.RowCount(), "null rows stay")
}

func TestOutliers_ReverseRefused(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", []any{1.0, 100.0}))

	a := newOutlierApplier(outlierTransformation("iqr", "remove", 1.5))
	_, err := a.Reverse(ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reversible")
}

func TestOutliers_UnknownMethod(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", []any{1.0}))

	a := newOutlierApplier(outlierTransformation("mad", "mask", 1.5))
	_, err := a.Apply(ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown outlier method")
}
