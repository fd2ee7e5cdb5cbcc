package tfidf

import (
	"math"
	"testing"

	"github.com/satdlab/satdprep/golib/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDocs = []string{"the cat sat", "the cat the dog", "a bird"}

func rowValues(m *Matrix, i int) []float64 {
	_, cols := m.Dims()
	vals := make([]float64, cols)
	for j := range vals {
		vals[j] = m.At(i, j)
	}
	return vals
}

func TestCountVectorizer(t *testing.T) {
	m, vocab, err := CountVectorizer{}.FitTransform(testDocs)
	require.NoError(t, err)

	assert.Equal(t, []string{"bird", "cat", "dog", "sat", "the"}, vocab.Terms)
	assert.Equal(t, []int{1, 2, 1, 1, 2}, vocab.DocFreq)
	assert.Equal(t, 3, vocab.NumDocs)
	assert.Nil(t, vocab.IDF())

	rows, cols := m.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 5, cols)
	assert.Equal(t, []float64{0, 1, 0, 1, 1}, rowValues(m, 0))
	assert.Equal(t, []float64{0, 1, 1, 0, 2}, rowValues(m, 1))
	assert.Equal(t, []float64{1, 0, 0, 0, 0}, rowValues(m, 2))
	assert.Equal(t, 7, m.NNZ())
	assert.Equal(t, []float64{1, 2, 1, 1, 3}, m.ColumnSums())
}

func TestCountVectorizerCaseSensitive(t *testing.T) {
	_, vocab, err := CountVectorizer{}.FitTransform([]string{"Fix fix FIX"})
	require.NoError(t, err)
	assert.Equal(t, []string{"FIX", "Fix", "fix"}, vocab.Terms)

	m, vocab, err := CountVectorizer{Lowercase: true}.FitTransform([]string{"Fix fix FIX"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fix"}, vocab.Terms)
	assert.Equal(t, 3.0, m.At(0, 0))
}

func TestCountVectorizerBinary(t *testing.T) {
	m, _, err := CountVectorizer{Binary: true}.FitTransform(testDocs)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 1, 0, 1}, rowValues(m, 1))
}

func TestCountVectorizerMaxFeatures(t *testing.T) {
	m, vocab, err := CountVectorizer{MaxFeatures: 2}.FitTransform(testDocs)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "the"}, vocab.Terms)
	assert.Equal(t, []float64{1, 2}, rowValues(m, 1))
	assert.Equal(t, []float64{0, 0}, rowValues(m, 2))

	// ties on count are broken by term order
	_, vocab, err = CountVectorizer{MaxFeatures: 3}.FitTransform(testDocs)
	require.NoError(t, err)
	assert.Equal(t, []string{"bird", "cat", "the"}, vocab.Terms)
}

func TestCountVectorizerNGrams(t *testing.T) {
	_, vocab, err := CountVectorizer{MaxN: 2}.FitTransform([]string{"fix null check"})
	require.NoError(t, err)
	assert.Equal(t, []string{"check", "fix", "fix null", "null", "null check"}, vocab.Terms)
}

func TestCountVectorizerTokenizer(t *testing.T) {
	_, vocab, err := CountVectorizer{Tokenizer: text.SpaceTokenizer{}}.FitTransform([]string{"a b,"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b,"}, vocab.Terms)
}

func TestEmptyVocabulary(t *testing.T) {
	_, _, err := CountVectorizer{}.FitTransform([]string{"a", "", "!"})
	assert.Equal(t, ErrEmptyVocabulary, err)

	_, _, err = TfidfVectorizer{}.FitTransform(nil)
	assert.Equal(t, ErrEmptyVocabulary, err)
}

func TestTfidfVectorizer(t *testing.T) {
	m, vocab, err := TfidfVectorizer{Lowercase: true}.FitTransform(testDocs)
	require.NoError(t, err)

	rare := math.Log(2) + 1
	common := math.Log(4.0/3.0) + 1
	assert.InDeltaSlice(t, []float64{rare, common, rare, rare, common}, vocab.IDF(), 1e-12)

	norm := math.Sqrt(2*common*common + rare*rare)
	assert.InDeltaSlice(t, []float64{0, common / norm, 0, rare / norm, common / norm}, rowValues(m, 0), 1e-12)
	assert.InDeltaSlice(t, []float64{1, 0, 0, 0, 0}, rowValues(m, 2), 1e-12)

	for i := 0; i < 3; i++ {
		var sq float64
		for _, v := range rowValues(m, i) {
			sq += v * v
		}
		assert.InDelta(t, 1.0, sq, 1e-12)
	}
}

func TestTfidfMaxFeatures(t *testing.T) {
	_, vocab, err := TfidfVectorizer{MaxFeatures: 1000}.FitTransform(testDocs)
	require.NoError(t, err)
	assert.Equal(t, 5, vocab.Len())

	_, vocab, err = TfidfVectorizer{MaxFeatures: 1}.FitTransform(testDocs)
	require.NoError(t, err)
	assert.Equal(t, []string{"the"}, vocab.Terms)
}

func TestVocabularyTransform(t *testing.T) {
	_, vocab, err := CountVectorizer{}.FitTransform(testDocs)
	require.NoError(t, err)

	m := vocab.Transform([]string{"the unknown cat cat", ""})
	assert.Equal(t, []float64{0, 2, 0, 0, 1}, rowValues(m, 0))
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, rowValues(m, 1))

	i, ok := vocab.Index("dog")
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = vocab.Index("unknown")
	assert.False(t, ok)

	exported := vocab.Export()
	require.Len(t, exported, 5)
	assert.Equal(t, Term{Term: "the", Index: 4, DocFreq: 2}, *exported[4])
}
