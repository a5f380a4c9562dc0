// Package dataset models the ordered, immutable-by-convention snapshot of
// records that flows between pipeline stages. A Dataset tracks its column
// order separately from the rows so CSV snapshots and schema checks see a
// stable, deterministic layout.
package dataset

import (
	"sort"

	"statcheck/pkg/records"
)

// Dataset is an ordered sequence of records sharing a column layout.
type Dataset struct {
	Columns []string
	Rows    []records.Record
}

// New constructs a Dataset from an explicit column order and rows.
func New(columns []string, rows []records.Record) *Dataset {
	return &Dataset{Columns: columns, Rows: rows}
}

// Empty returns a Dataset with no columns and no rows. It is what a
// tolerant read of a missing output file produces.
func Empty() *Dataset {
	return &Dataset{}
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// HasColumn reports whether name is part of the column layout.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone deep-copies the dataset (rows are cloned, column order is copied).
// Stages that mutate rows operate on a clone so their input stays intact.
func (d *Dataset) Clone() *Dataset {
	cols := make([]string, len(d.Columns))
	copy(cols, d.Columns)
	rows := make([]records.Record, len(d.Rows))
	for i, r := range d.Rows {
		rows[i] = r.Clone()
	}
	return &Dataset{Columns: cols, Rows: rows}
}

// Concat appends the rows of b after the rows of a, preserving order. The
// column layout is the union: a's columns first, then any of b's columns not
// already present. No reconciliation happens — a column present in only one
// source simply reads as missing (nil) for rows from the other.
func Concat(a, b *Dataset) *Dataset {
	cols := make([]string, 0, len(a.Columns)+len(b.Columns))
	cols = append(cols, a.Columns...)
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		seen[c] = struct{}{}
	}
	for _, c := range b.Columns {
		if _, ok := seen[c]; !ok {
			cols = append(cols, c)
			seen[c] = struct{}{}
		}
	}

	rows := make([]records.Record, 0, len(a.Rows)+len(b.Rows))
	rows = append(rows, a.Rows...)
	rows = append(rows, b.Rows...)
	return &Dataset{Columns: cols, Rows: rows}
}

// SortByString stably sorts the rows ascending by the string value of field.
// Rows with a missing field sort before rows that have one.
func (d *Dataset) SortByString(field string) {
	sort.SliceStable(d.Rows, func(i, j int) bool {
		a, aok := d.Rows[i].String(field)
		b, bok := d.Rows[j].String(field)
		if aok != bok {
			return !aok
		}
		return a < b
	})
}
