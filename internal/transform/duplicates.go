package transform

import (
	"strings"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// dropDuplicatesApplier removes rows that duplicate an earlier row, keeping
// the first occurrence. An empty target column list means the whole row is
// the duplicate key.
type dropDuplicatesApplier struct {
	t              models.Transformation
	duplicateCount int
}

func newDropDuplicatesApplier(t models.Transformation) applier {
	return &dropDuplicatesApplier{t: t}
}

func (a *dropDuplicatesApplier) Apply(ds *models.Dataset) (*models.Dataset, error) {
	subset := a.t.TargetColumns
	if len(subset) == 0 {
		subset = ds.Columns()
	}

	seen := map[string]struct{}{}
	keep := make([]bool, ds.RowCount())
	a.duplicateCount = 0

	for i := 0; i < ds.RowCount(); i++ {
		key := rowSubsetKey(ds, i, subset)
		if _, dup := seen[key]; dup {
			a.duplicateCount++
			continue
		}
		seen[key] = struct{}{}
		keep[i] = true
	}

	return ds.Filter(keep), nil
}

func rowSubsetKey(ds *models.Dataset, row int, subset []string) string {
	var sb strings.Builder
	for _, name := range subset {
		values, ok := ds.Column(name)
		if !ok || row >= len(values) {
			sb.WriteByte(0)
		} else if models.IsNull(values[row]) {
			sb.WriteByte(0)
		} else {
			sb.WriteString(models.AsString(values[row]))
		}
		sb.WriteByte(0x1f)
	}
	return sb.String()
}

func (a *dropDuplicatesApplier) Reverse(ds *models.Dataset) (*models.Dataset, error) {
	return nil, lib.ErrNotReversible(a.t, "duplicate rows have been permanently removed")
}

// DuplicateCount reports how many rows the last Apply dropped
func (a *dropDuplicatesApplier) DuplicateCount() int {
	return a.duplicateCount
}
