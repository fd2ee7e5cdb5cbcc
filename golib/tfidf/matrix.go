package tfidf

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a compressed sparse row matrix of term weights, one row per
// document and one column per vocabulary term.
type Matrix struct {
	rows, cols int
	indptr     []int
	indices    []int
	data       []float64
}

// Entry is a non-zero cell of a Matrix row.
type Entry struct {
	Col   int
	Value float64
}

// NewMatrix builds a rows x cols matrix from per-row entries. Entries within a
// row must have increasing columns.
func NewMatrix(cols int, rows [][]Entry) *Matrix {
	m := &Matrix{
		rows:   len(rows),
		cols:   cols,
		indptr: make([]int, 1, len(rows)+1),
	}
	for _, row := range rows {
		for _, e := range row {
			m.indices = append(m.indices, e.Col)
			m.data = append(m.data, e.Value)
		}
		m.indptr = append(m.indptr, len(m.indices))
	}
	return m
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (int, int) {
	return m.rows, m.cols
}

// NNZ returns the number of stored values.
func (m *Matrix) NNZ() int {
	return len(m.data)
}

// Row returns a copy of the stored entries of row i.
func (m *Matrix) Row(i int) []Entry {
	lo, hi := m.indptr[i], m.indptr[i+1]
	row := make([]Entry, 0, hi-lo)
	for k := lo; k < hi; k++ {
		row = append(row, Entry{Col: m.indices[k], Value: m.data[k]})
	}
	return row
}

// At returns the value at (i, j).
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(mat.ErrIndexOutOfRange)
	}
	for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
		if m.indices[k] == j {
			return m.data[k]
		}
		if m.indices[k] > j {
			break
		}
	}
	return 0
}

// ColumnSums returns the sum of every column.
func (m *Matrix) ColumnSums() []float64 {
	sums := make([]float64, m.cols)
	for k, j := range m.indices {
		sums[j] += m.data[k]
	}
	return sums
}

// normalizeRows scales each row to unit L2 norm; all-zero rows are left alone.
func (m *Matrix) normalizeRows() {
	for i := 0; i < m.rows; i++ {
		lo, hi := m.indptr[i], m.indptr[i+1]
		var sq float64
		for k := lo; k < hi; k++ {
			sq += m.data[k] * m.data[k]
		}
		if sq == 0 {
			continue
		}
		norm := math.Sqrt(sq)
		for k := lo; k < hi; k++ {
			m.data[k] /= norm
		}
	}
}

// Dense returns a dense copy of the matrix. A matrix without rows or columns
// yields nil since gonum does not allow empty dense matrices.
func (m *Matrix) Dense() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		return nil
	}
	d := mat.NewDense(m.rows, m.cols, nil)
	for i := 0; i < m.rows; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			d.Set(i, m.indices[k], m.data[k])
		}
	}
	return d
}
