package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

func duplicatesTransformation(columns ...string) models.Transformation {
	return models.Transformation{
		ID:            "dup-1",
		Type:          models.TransformDropDuplicates,
		TargetColumns: columns,
		Params:        map[string]any{},
	}
}

func TestDropDuplicates_AllColumns(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("a", []any{1.0, 2.0, 1.0, 3.0, 1.0}))
	require.NoError(t, ds.AddColumn("b", []any{"x", "y", "x", "z", "w"}))

	a := newDropDuplicatesApplier(duplicatesTransformation()).(*dropDuplicatesApplier)
	out, err := a.Apply(ds)
	require.NoError(t, err)

	// Row 2 duplicates row 0; row 4 shares column a but not column b
	assert.Equal(t, 4, out.RowCount())
	assert.Equal(t, 1, a.DuplicateCount())

	first, _ := out.Column("b")
	assert.Equal(t, []any{"x", "y", "z", "w"}, first, "first occurrence kept")
}

func TestDropDuplicates_Subset(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("a", []any{1.0, 1.0, 2.0}))
	require.NoError(t, ds.AddColumn("b", []any{"x", "y", "z"}))

	a := newDropDuplicatesApplier(duplicatesTransformation("a")).(*dropDuplicatesApplier)
	out, err := a.Apply(ds)
	require.NoError(t, err)

	assert.Equal(t, 2, out.RowCount(), "subset key ignores differing b values")
	assert.Equal(t, 1, a.DuplicateCount())
}

func TestDropDuplicates_NullRows(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("a", []any{nil, nil, 1.0}))

	a := newDropDuplicatesApplier(duplicatesTransformation()).(*dropDuplicatesApplier)
	out, err := a.Apply(ds)
	require.NoError(t, err)

	assert.Equal(t, 2, out.RowCount(), "null rows deduplicate against each other")
}

func TestDropDuplicates_NoDuplicates(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("a", []any{1.0, 2.0, 3.0}))

	a := newDropDuplicatesApplier(duplicatesTransformation()).(*dropDuplicatesApplier)
	out, err := a.Apply(ds)
	require.NoError(t, err)

	assert.Equal(t, 3, out.RowCount())
	assert.Equal(t, 0, a.DuplicateCount())
}

func TestDropDuplicates_ReverseRefused(t *testing.T) {
	ds := models.NewDataset()
	require.NoError(t, ds.AddColumn("a", []any{1.0}))

	a := newDropDuplicatesApplier(duplicatesTransformation())
	_, err := a.Reverse(ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reversible")
}
