package dataview

import (
	"math"
	"strconv"
	"strings"
)

// Cell is a single table value. Loaders produce float64, string, bool or nil.
type Cell = any

// Row is one record of cells.
type Row []Cell

// Table is the tabular payload of a data view.
type Table struct {
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	Rows    []Row    `json:"rows" yaml:"rows"`
}

// DataView is the input delivered to a chart on every update.
type DataView struct {
	Table *Table `json:"table" yaml:"table"`
}

// FromRows builds a data view from literal rows.
func FromRows(rows ...Row) *DataView {
	return &DataView{Table: &Table{Rows: rows}}
}

// FromRow builds a single-row data view.
func FromRow(cells ...Cell) *DataView {
	return FromRows(Row(cells))
}

// FirstRow returns the row consumed by the chart, or nil when the view has no
// table or no rows.
func (dv *DataView) FirstRow() Row {
	if dv == nil || dv.Table == nil || len(dv.Table.Rows) == 0 {
		return nil
	}
	return dv.Table.Rows[0]
}

// RowCount returns the number of rows in the view.
func (dv *DataView) RowCount() int {
	if dv == nil || dv.Table == nil {
		return 0
	}
	return len(dv.Table.Rows)
}

// Sanitized returns a copy of dv in which non-finite float cells are nil.
// The copy encodes as JSON even when dv was built by hand with NaN or Inf.
func (dv *DataView) Sanitized() *DataView {
	if dv == nil || dv.Table == nil {
		return dv
	}
	t := &Table{Columns: dv.Table.Columns, Rows: make([]Row, len(dv.Table.Rows))}
	for i, row := range dv.Table.Rows {
		clean := make(Row, len(row))
		for j, c := range row {
			if f, ok := c.(float64); ok {
				clean[j] = finiteOrNil(f)
			} else {
				clean[j] = c
			}
		}
		t.Rows[i] = clean
	}
	return &DataView{Table: t}
}

func finiteOrNil(f float64) Cell {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

// ParseNumber reports whether s is a finite decimal number.
// Surrounding whitespace is ignored; the empty string is not a number.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
