// Package data holds the tabular types of the preparation pipeline: the raw
// Table read from disk, the column-oriented Frame the stages pass along, and
// the readers and writers for both.
package data

import (
	"github.com/satdlab/satdprep/golib/errors"
	"github.com/ssor/bom"
)

var (
	// ErrMissingColumn is returned when a named column does not exist.
	ErrMissingColumn = errors.New("missing column")
	// ErrRaggedRow is returned when a row has more cells than the header.
	ErrRaggedRow = errors.New("row has more cells than the header")
)

// Table is a raw input table: a header and string rows of the same width.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable builds a table, padding short rows with empty cells. Rows longer
// than the header are an error.
func NewTable(header []string, rows [][]string) (*Table, error) {
	if len(header) > 0 {
		header[0] = string(bom.CleanBom([]byte(header[0])))
	}
	for i, row := range rows {
		switch {
		case len(row) > len(header):
			return nil, errors.Wrapf(ErrRaggedRow, "row %d has %d cells, header has %d", i+1, len(row), len(header))
		case len(row) < len(header):
			padded := make([]string, len(header))
			copy(padded, row)
			rows[i] = padded
		}
	}
	return &Table{Header: header, Rows: rows}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return -1, errors.Wrapf(ErrMissingColumn, "%q", name)
}

// Column returns a copy of the values of the named column.
func (t *Table) Column(name string) ([]string, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	vals := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		vals[i] = row[idx]
	}
	return vals, nil
}

// Frame returns the table as a frame of text columns.
func (t *Table) Frame() *Frame {
	cols := make([]Column, len(t.Header))
	for j, name := range t.Header {
		vals := make([]string, len(t.Rows))
		for i, row := range t.Rows {
			vals[i] = row[j]
		}
		cols[j] = &StringColumn{Key: name, Values: vals}
	}
	index := make([]int, len(t.Rows))
	for i := range index {
		index[i] = i
	}
	return &Frame{Index: index, Columns: cols}
}
