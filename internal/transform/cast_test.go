package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

func castTransformation(targetType string) models.Transformation {
	return models.Transformation{
		ID:            "cast-1",
		Type:          models.TransformCastType,
		TargetColumns: []string{"x"},
		Params:        map[string]any{models.ParamTargetType: targetType},
		Reversible:    true,
	}
}

func TestCast_Numeric(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", []any{"1.5", "2", "abc", nil}))

	a := newCastApplier(castTransformation("numeric"))
	out, err := a.Apply(ds)
	require.NoError(t, err)

	values, _ := out.Column("x")
	assert.Equal(t, 1.5, values[0])
	assert.Equal(t, 2.0, values[1])
	assert.Nil(t, values[2], "unparseable cells become null")
	assert.Nil(t, values[3])
}

func TestCast_Datetime(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", []any{"2024-06-15", "not a date"}))

	a := newCastApplier(castTransformation("datetime"))
	out, err := a.Apply(ds)
	require.NoError(t, err)

	values, _ := out.Column("x")
	parsed, ok := values[0].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2024, parsed.Year())
	assert.Nil(t, values[1])
}

func TestCast_String(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", []any{int64(42), 1.5, true}))

	a := newCastApplier(castTransformation("string"))
	out, err := a.Apply(ds)
	require.NoError(t, err)

	values, _ := out.Column("x")
	assert.Equal(t, "42", values[0])
	assert.Equal(t, "1.5", values[1])
	assert.Equal(t, "true", values[2])
}

func TestCast_Boolean(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", []any{"yes", "0", "maybe", 2.0, false}))

	a := newCastApplier(castTransformation("boolean"))
	out, err := a.Apply(ds)
	require.NoError(t, err)

	values, _ := out.Column("x")
	assert.Equal(t, true, values[0])
	assert.Equal(t, false, values[1])
	assert.Equal(t, true, values[2], "non-empty unrecognized strings are truthy")
	assert.Equal(t, true, values[3], "nonzero numbers are true")
	assert.Equal(t, false, values[4])
}

func TestCast_ReverseRestoresOriginals(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", []any{"1.5", "abc", nil}))

	a := newCastApplier(castTransformation("numeric"))
	out, err := a.Apply(ds)
	require.NoError(t, err)

	restored, err := a.Reverse(out)
	require.NoError(t, err)

	values, _ := restored.Column("x")
	assert.Equal(t, "1.5", values[0])
	assert.Equal(t, "abc", values[1], "the lossy cast reverses exactly from the stored originals")
	assert.Nil(t, values[2])
}

func TestCast_ReverseWithoutApply(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", []any{"1"}))

	a := newCastApplier(castTransformation("numeric"))
	_, err := a.Reverse(ds)
	assert.Error(t, err, "reverse needs the originals captured during apply")
}

func TestCast_UnknownTargetType(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("x", []any{"1"}))

	a := newCastApplier(castTransformation("complex"))
	_, err := a.Apply(ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown target type")
}
