package data

import (
	"math"
	"strconv"

	"github.com/satdlab/satdprep/golib/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrLengthMismatch is returned when the columns of a frame differ in length.
	ErrLengthMismatch = errors.New("column lengths differ")
	// ErrDuplicateColumn is returned when two columns of a frame share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")
)

// Column is one named column of a Frame.
type Column interface {
	Name() string
	Len() int
	// Format renders row i the way it is written to CSV.
	Format(i int) string
	// Float returns the numeric value of row i, false for non-numeric columns.
	Float(i int) (float64, bool)
	// Take returns a column holding the given rows in order.
	Take(rows []int) Column
}

// StringColumn is a column of text.
type StringColumn struct {
	Key    string
	Values []string
}

// Name implements Column.
func (c *StringColumn) Name() string { return c.Key }

// Len implements Column.
func (c *StringColumn) Len() int { return len(c.Values) }

// Format implements Column.
func (c *StringColumn) Format(i int) string { return c.Values[i] }

// Float implements Column.
func (c *StringColumn) Float(i int) (float64, bool) { return 0, false }

// Take implements Column.
func (c *StringColumn) Take(rows []int) Column {
	vals := make([]string, len(rows))
	for i, r := range rows {
		vals[i] = c.Values[r]
	}
	return &StringColumn{Key: c.Key, Values: vals}
}

// IntColumn is a column of integers.
type IntColumn struct {
	Key    string
	Values []int64
}

// Name implements Column.
func (c *IntColumn) Name() string { return c.Key }

// Len implements Column.
func (c *IntColumn) Len() int { return len(c.Values) }

// Format implements Column.
func (c *IntColumn) Format(i int) string { return strconv.FormatInt(c.Values[i], 10) }

// Float implements Column.
func (c *IntColumn) Float(i int) (float64, bool) { return float64(c.Values[i]), true }

// Take implements Column.
func (c *IntColumn) Take(rows []int) Column {
	vals := make([]int64, len(rows))
	for i, r := range rows {
		vals[i] = c.Values[r]
	}
	return &IntColumn{Key: c.Key, Values: vals}
}

// FloatColumn is a column of floats.
type FloatColumn struct {
	Key    string
	Values []float64
}

// Name implements Column.
func (c *FloatColumn) Name() string { return c.Key }

// Len implements Column.
func (c *FloatColumn) Len() int { return len(c.Values) }

// Format implements Column.
func (c *FloatColumn) Format(i int) string { return FormatFloat(c.Values[i]) }

// Float implements Column.
func (c *FloatColumn) Float(i int) (float64, bool) { return c.Values[i], true }

// Take implements Column.
func (c *FloatColumn) Take(rows []int) Column {
	vals := make([]float64, len(rows))
	for i, r := range rows {
		vals[i] = c.Values[r]
	}
	return &FloatColumn{Key: c.Key, Values: vals}
}

// MatrixColumn is a view of one column of a matrix, restricted to a list of
// matrix rows.
type MatrixColumn struct {
	Key    string
	Matrix mat.Matrix
	Col    int
	// Rows maps frame rows to matrix rows; nil means the identity.
	Rows []int
	// Integer formats values as integers, for count matrices.
	Integer bool
}

// MatrixColumns returns one column per matrix column, named by position.
func MatrixColumns(m mat.Matrix, integer bool) []Column {
	_, cols := m.Dims()
	out := make([]Column, cols)
	for j := range out {
		out[j] = &MatrixColumn{Key: strconv.Itoa(j), Matrix: m, Col: j, Integer: integer}
	}
	return out
}

func (c *MatrixColumn) row(i int) int {
	if c.Rows == nil {
		return i
	}
	return c.Rows[i]
}

// Name implements Column.
func (c *MatrixColumn) Name() string { return c.Key }

// Len implements Column.
func (c *MatrixColumn) Len() int {
	if c.Rows != nil {
		return len(c.Rows)
	}
	rows, _ := c.Matrix.Dims()
	return rows
}

// Format implements Column.
func (c *MatrixColumn) Format(i int) string {
	v := c.Matrix.At(c.row(i), c.Col)
	if c.Integer {
		return strconv.FormatInt(int64(v), 10)
	}
	return FormatFloat(v)
}

// Float implements Column.
func (c *MatrixColumn) Float(i int) (float64, bool) {
	return c.Matrix.At(c.row(i), c.Col), true
}

// Take implements Column.
func (c *MatrixColumn) Take(rows []int) Column {
	mapped := make([]int, len(rows))
	for i, r := range rows {
		mapped[i] = c.row(r)
	}
	return &MatrixColumn{Key: c.Key, Matrix: c.Matrix, Col: c.Col, Rows: mapped, Integer: c.Integer}
}

// FormatFloat renders v as the shortest decimal that round trips, keeping a
// ".0" on integral values and switching to exponent form for very small or
// very large magnitudes (1e-05, 1e+16), the way Python prints floats.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.Trunc(v) == v {
		s += ".0"
	}
	return s
}

// Frame is an ordered set of equally long columns with a row index. The index
// keeps the original row labels when rows are taken out of order.
type Frame struct {
	Index   []int
	Columns []Column
}

// NewFrame builds a frame with the index 0..n-1. Column names must be unique.
func NewFrame(cols ...Column) (*Frame, error) {
	n := 0
	if len(cols) > 0 {
		n = cols[0].Len()
	}
	for _, c := range cols {
		if c.Len() != n {
			return nil, errors.Wrapf(ErrLengthMismatch, "column %q has %d rows, expected %d", c.Name(), c.Len(), n)
		}
	}
	if err := uniqueNames(cols); err != nil {
		return nil, err
	}
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	return &Frame{Index: index, Columns: cols}, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Index)
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = c.Name()
	}
	return names
}

// Column returns the column with the given name.
func (f *Frame) Column(name string) (Column, error) {
	for _, c := range f.Columns {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, errors.Wrapf(ErrMissingColumn, "%q", name)
}

// Select returns a frame with only the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		c, err := f.Column(n)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return &Frame{Index: f.Index, Columns: cols}, nil
}

// Drop returns a frame without the named columns. Unknown names are an error.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if _, err := f.Column(n); err != nil {
			return nil, err
		}
		drop[n] = true
	}
	var cols []Column
	for _, c := range f.Columns {
		if !drop[c.Name()] {
			cols = append(cols, c)
		}
	}
	return &Frame{Index: f.Index, Columns: cols}, nil
}

// Replace returns a frame where the column named like col is swapped for col.
func (f *Frame) Replace(col Column) (*Frame, error) {
	if col.Len() != f.Len() {
		return nil, errors.Wrapf(ErrLengthMismatch, "column %q has %d rows, expected %d", col.Name(), col.Len(), f.Len())
	}
	cols := make([]Column, len(f.Columns))
	found := false
	for i, c := range f.Columns {
		if !found && c.Name() == col.Name() {
			cols[i] = col
			found = true
			continue
		}
		cols[i] = c
	}
	if !found {
		return nil, errors.Wrapf(ErrMissingColumn, "%q", col.Name())
	}
	return &Frame{Index: f.Index, Columns: cols}, nil
}

// Take returns the given rows, in order, carrying their index labels along.
func (f *Frame) Take(rows []int) *Frame {
	index := make([]int, len(rows))
	for i, r := range rows {
		index[i] = f.Index[r]
	}
	cols := make([]Column, len(f.Columns))
	for i, c := range f.Columns {
		cols[i] = c.Take(rows)
	}
	return &Frame{Index: index, Columns: cols}
}

// HConcat places the columns of the frames side by side, keeping the index
// of the first. The frames are aligned by position and column names must stay
// unique.
func HConcat(frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return &Frame{}, nil
	}
	n := frames[0].Len()
	var cols []Column
	for _, fr := range frames {
		if fr.Len() != n {
			return nil, errors.Wrapf(ErrLengthMismatch, "frame has %d rows, expected %d", fr.Len(), n)
		}
		cols = append(cols, fr.Columns...)
	}
	if err := uniqueNames(cols); err != nil {
		return nil, err
	}
	return &Frame{Index: frames[0].Index, Columns: cols}, nil
}

// CheckNames returns ErrDuplicateColumn if two columns of f share a name.
func (f *Frame) CheckNames() error {
	return uniqueNames(f.Columns)
}

func uniqueNames(cols []Column) error {
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c.Name()] {
			return errors.Wrapf(ErrDuplicateColumn, "%q", c.Name())
		}
		seen[c.Name()] = true
	}
	return nil
}
