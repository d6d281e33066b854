package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

func encodeTransformation(method string) models.Transformation {
	return models.Transformation{
		ID:            "enc-1",
		Type:          models.TransformEncodeCategorical,
		TargetColumns: []string{"city"},
		Params:        map[string]any{models.ParamMethod: method},
		Reversible:    method == "label",
	}
}

func TestEncode_Label(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("city", []any{"NYC", "LA", nil, "Boston", "LA"}))

	a := newEncodeApplier(encodeTransformation("label"))
	out, err := a.Apply(ds)
	require.NoError(t, err)

	values, _ := out.Column("city")
	// Sorted categories: Boston=0, LA=1, NYC=2
	assert.Equal(t, int64(2), values[0])
	assert.Equal(t, int64(1), values[1])
	assert.Nil(t, values[2], "nulls stay null")
	assert.Equal(t, int64(0), values[3])
	assert.Equal(t, int64(1), values[4])
}

func TestEncode_LabelRoundTrip(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("city", []any{"NYC", "LA", nil}))

	a := newEncodeApplier(encodeTransformation("label"))
	encoded, err := a.Apply(ds)
	require.NoError(t, err)

	restored, err := a.Reverse(encoded)
	require.NoError(t, err)

	values, _ := restored.Column("city")
	assert.Equal(t, "NYC", values[0])
	assert.Equal(t, "LA", values[1])
	assert.Nil(t, values[2])
}

func TestEncode_LabelReverseUnknownCode(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("city", []any{"a", "b"}))

	a := newEncodeApplier(encodeTransformation("label"))
	encoded, err := a.Apply(ds)
	require.NoError(t, err)

	// Inject a code that was never assigned
	require.NoError(t, encoded.SetColumn("city", []any{int64(0), int64(99)}))

	restored, err := a.Reverse(encoded)
	require.NoError(t, err)

	values, _ := restored.Column("city")
	assert.Equal(t, "a", values[0])
	assert.Nil(t, values[1], "unknown codes decode to null")
}

func TestEncode_Onehot(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("city", []any{"NYC", "LA", "NYC", nil}))
	require.NoError(t, ds.AddColumn("pop", []any{8.0, 4.0, 8.0, 1.0}))

	a := newEncodeApplier(encodeTransformation("onehot"))
	out, err := a.Apply(ds)
	require.NoError(t, err)

	assert.False(t, out.HasColumn("city"), "source column dropped")
	require.True(t, out.HasColumn("city_LA"))
	require.True(t, out.HasColumn("city_NYC"))
	assert.True(t, out.HasColumn("pop"), "other columns untouched")

	la, _ := out.Column("city_LA")
	nyc, _ := out.Column("city_NYC")
	assert.Equal(t, []any{int64(0), int64(1), int64(0), int64(0)}, la)
	assert.Equal(t, []any{int64(1), int64(0), int64(1), int64(0)}, nyc, "null rows are 0 in every indicator")
}

func TestEncode_OnehotRoundTrip(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("city", []any{"NYC", "LA", nil}))

	a := newEncodeApplier(encodeTransformation("onehot"))
	encoded, err := a.Apply(ds)
	require.NoError(t, err)

	restored, err := a.Reverse(encoded)
	require.NoError(t, err)

	assert.False(t, restored.HasColumn("city_NYC"), "indicators dropped on reverse")
	values, _ := restored.Column("city")
	assert.Equal(t, "NYC", values[0])
	assert.Equal(t, "LA", values[1])
	assert.Nil(t, values[2])
}

func TestEncode_UnknownMethod(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("city", []any{"a"}))

	a := newEncodeApplier(encodeTransformation("target"))
	_, err := a.Apply(ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown encoding method")
}
