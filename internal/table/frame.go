// Package table holds the in-memory tabular representation shared by the
// loaders and payload builders, plus the column-name resolution used to map
// heterogeneous input schemas onto the columns the pipeline needs.
package table

import (
	"sort"
	"time"
)

// Row is one record keyed by column name. Cell values are string, float64,
// int64, bool, time.Time or nil, depending on the source reader.
type Row map[string]any

// Frame is an ordered set of rows with a declared column order. The column
// order drives output column lists; rows may omit columns (treated as
// missing).
type Frame struct {
	Columns []string
	Rows    []Row
}

// NewFrame creates an empty frame with the given column order.
func NewFrame(columns ...string) *Frame {
	return &Frame{Columns: columns}
}

// HasColumn reports whether the frame declares the named column.
func (f *Frame) HasColumn(name string) bool {
	for _, c := range f.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column to the declared order if not already present.
func (f *Frame) AddColumn(name string) {
	if !f.HasColumn(name) {
		f.Columns = append(f.Columns, name)
	}
}

// RenameColumn renames a declared column in place. Row keys are moved too.
func (f *Frame) RenameColumn(from, to string) {
	if from == to {
		return
	}
	for i, c := range f.Columns {
		if c == from {
			f.Columns[i] = to
		}
	}
	for _, row := range f.Rows {
		if v, ok := row[from]; ok {
			row[to] = v
			delete(row, from)
		}
	}
}

// Append adds rows to the frame.
func (f *Frame) Append(rows ...Row) {
	f.Rows = append(f.Rows, rows...)
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Rows) }

// SortByTime stably sorts rows ascending by the time.Time value stored under
// the given column. Rows without a parsed time sort first.
func (f *Frame) SortByTime(col string) {
	sort.SliceStable(f.Rows, func(i, j int) bool {
		ti, iok := f.Rows[i][col].(time.Time)
		tj, jok := f.Rows[j][col].(time.Time)
		if !iok || !jok {
			return !iok && jok
		}
		return ti.Before(tj)
	})
}

// Filter returns a new frame with the same column order containing only the
// rows for which keep returns true. Rows are shared, not copied.
func (f *Frame) Filter(keep func(Row) bool) *Frame {
	out := &Frame{Columns: f.Columns}
	for _, row := range f.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
