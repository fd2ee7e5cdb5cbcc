package tfidf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMatrix(t *testing.T) {
	m := NewMatrix(3, [][]Entry{
		{{Col: 0, Value: 1}, {Col: 2, Value: 4}},
		{},
		{{Col: 1, Value: 2}},
	})

	rows, cols := m.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 3, m.NNZ())
	assert.Equal(t, 4.0, m.At(0, 2))
	assert.Equal(t, 0.0, m.At(1, 1))
	assert.Equal(t, []Entry{{Col: 1, Value: 2}}, m.Row(2))
	assert.Empty(t, m.Row(1))
	assert.Panics(t, func() { m.At(3, 0) })

	d := m.Dense()
	require.NotNil(t, d)
	exp := mat.NewDense(3, 3, []float64{
		1, 0, 4,
		0, 0, 0,
		0, 2, 0,
	})
	assert.True(t, mat.Equal(exp, d))

	m.normalizeRows()
	assert.InDelta(t, 1/17.0, m.At(0, 0)*m.At(0, 0), 1e-12)
	assert.Equal(t, 1.0, m.At(2, 1))
}

func TestEmptyMatrixDense(t *testing.T) {
	assert.Nil(t, NewMatrix(0, nil).Dense())
}
