package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Dataset is an in-memory column-oriented table. Columns keep their insertion
// order; cells hold float64, int64, string, bool or time.Time values, with a
// nil cell representing a null. All transformation appliers operate on copies,
// so a Dataset handed to the pipeline is never mutated in place.
type Dataset struct {
	columns []string
	data    map[string][]any
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		columns: []string{},
		data:    map[string][]any{},
	}
}

// AddColumn appends a column with the given values.
// Returns an error if the column already exists or the length disagrees
// with existing columns.
func (d *Dataset) AddColumn(name string, values []any) error {
	if _, exists := d.data[name]; exists {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(d.columns) > 0 && len(values) != d.RowCount() {
		return fmt.Errorf("column %q has %d values, expected %d", name, len(values), d.RowCount())
	}
	d.columns = append(d.columns, name)
	d.data[name] = values
	return nil
}

// SetColumn replaces the values of an existing column, or appends a new one.
func (d *Dataset) SetColumn(name string, values []any) error {
	if _, exists := d.data[name]; !exists {
		return d.AddColumn(name, values)
	}
	if len(values) != d.RowCount() {
		return fmt.Errorf("column %q has %d values, expected %d", name, len(values), d.RowCount())
	}
	d.data[name] = values
	return nil
}

// DropColumn removes a column. Dropping a missing column is an error.
func (d *Dataset) DropColumn(name string) error {
	if _, exists := d.data[name]; !exists {
		return fmt.Errorf("column %q not found", name)
	}
	delete(d.data, name)
	for i, col := range d.columns {
		if col == name {
			d.columns = append(d.columns[:i], d.columns[i+1:]...)
			break
		}
	}
	return nil
}

// Column returns the values of a column.
func (d *Dataset) Column(name string) ([]any, bool) {
	values, ok := d.data[name]
	return values, ok
}

// HasColumn checks whether a column exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.data[name]
	return ok
}

// Columns returns the ordered column names.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// RowCount returns the number of rows.
func (d *Dataset) RowCount() int {
	if len(d.columns) == 0 {
		return 0
	}
	return len(d.data[d.columns[0]])
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int {
	return len(d.columns)
}

// Row returns the cells of row i in column order.
func (d *Dataset) Row(i int) []any {
	row := make([]any, len(d.columns))
	for c, name := range d.columns {
		row[c] = d.data[name][i]
	}
	return row
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	out := NewDataset()
	for _, name := range d.columns {
		values := make([]any, len(d.data[name]))
		copy(values, d.data[name])
		out.columns = append(out.columns, name)
		out.data[name] = values
	}
	return out
}

// Equal reports whether two datasets hold the same columns in the same order
// with cell-for-cell equal values.
func (d *Dataset) Equal(other *Dataset) bool {
	if other == nil || len(d.columns) != len(other.columns) || d.RowCount() != other.RowCount() {
		return false
	}
	for c, name := range d.columns {
		if other.columns[c] != name {
			return false
		}
		a, b := d.data[name], other.data[name]
		for i := range a {
			if !CellsEqual(a[i], b[i]) {
				return false
			}
		}
	}
	return true
}

// Filter returns a new dataset containing only the rows where keep[i] is true.
func (d *Dataset) Filter(keep []bool) *Dataset {
	out := NewDataset()
	for _, name := range d.columns {
		src := d.data[name]
		values := make([]any, 0, len(src))
		for i, v := range src {
			if i < len(keep) && keep[i] {
				values = append(values, v)
			}
		}
		out.columns = append(out.columns, name)
		out.data[name] = values
	}
	return out
}

// IsNull reports whether a cell counts as missing: nil, a NaN float,
// or an empty string.
func IsNull(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(t)
	case string:
		return t == ""
	default:
		return false
	}
}

// AsFloat converts a cell to float64 when possible. Numeric strings convert;
// booleans and times do not.
func AsFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) {
			return 0, false
		}
		return t, true
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsString converts a cell to its canonical string form.
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// datetimeLayouts are the formats tried when parsing a string cell as a time.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
}

// AsTime converts a cell to time.Time when possible.
func AsTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range datetimeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// CellsEqual compares two cells for value equality. Floats compare exactly;
// NaN equals NaN so that null-like cells match during duplicate detection.
func CellsEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		if math.IsNaN(af) && math.IsNaN(bf) {
			return true
		}
		return af == bf
	}
	at, aok := a.(time.Time)
	bt, bok := b.(time.Time)
	if aok && bok {
		return at.Equal(bt)
	}
	return a == b
}

// RowKey builds a hashable key for a row, used for duplicate and
// exact-row-overlap detection.
func (d *Dataset) RowKey(i int) string {
	var sb strings.Builder
	for c, name := range d.columns {
		if c > 0 {
			sb.WriteByte('\x1f')
		}
		cell := d.data[name][i]
		if cell == nil {
			sb.WriteString("\x00")
			continue
		}
		sb.WriteString(AsString(cell))
	}
	return sb.String()
}
