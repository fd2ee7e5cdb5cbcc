package prep

import (
	"testing"

	"github.com/satdlab/satdprep/golib/errors"
	"github.com/satdlab/satdprep/golib/tfidf"
	"github.com/satdlab/satdprep/satd/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var vectorDocs = []string{"Fix bug", "fix fix", "empty"}

func TestVectorizeCountCompat(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	features, err := Vectorize(vectorDocs, VectorizeOptions{
		Mode:        CountCompat,
		MaxFeatures: 1,
		Logger:      zap.New(core),
	})
	require.NoError(t, err)

	// the bound and lowercasing of the tf-idf pass do not apply to the result
	assert.Equal(t, []string{"Fix", "bug", "empty", "fix"}, features.Vocabulary.Terms)
	assert.True(t, features.Counts)
	assert.Equal(t, 2.0, features.Matrix.At(1, 3))
	assert.Equal(t, 1, logs.FilterMessage("discarding tf-idf encoding, raw counts are used as features").Len())

	def, err := Vectorize(vectorDocs, VectorizeOptions{})
	require.NoError(t, err)
	assert.Equal(t, features.Vocabulary.Terms, def.Vocabulary.Terms)
}

func TestVectorizeTfidf(t *testing.T) {
	features, err := Vectorize(vectorDocs, VectorizeOptions{Mode: TfidfMode, MaxFeatures: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"fix"}, features.Vocabulary.Terms)
	assert.False(t, features.Counts)
	assert.Equal(t, 1.0, features.Matrix.At(0, 0))
	assert.Equal(t, 0.0, features.Matrix.At(2, 0))
}

func TestVectorizeCount(t *testing.T) {
	features, err := Vectorize(vectorDocs, VectorizeOptions{Mode: CountMode, MaxFeatures: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"bug", "fix"}, features.Vocabulary.Terms)
	assert.Equal(t, 2.0, features.Matrix.At(1, 1))
}

func TestVectorizeNGrams(t *testing.T) {
	features, err := Vectorize(vectorDocs, VectorizeOptions{Mode: CountMode, MaxN: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"bug", "empty", "fix", "fix bug", "fix fix"}, features.Vocabulary.Terms)
	assert.Equal(t, 2.0, features.Matrix.At(1, 2))
	assert.Equal(t, 1.0, features.Matrix.At(1, 4))
	assert.Equal(t, 0.0, features.Matrix.At(0, 4))
}

func TestVectorizeErrors(t *testing.T) {
	_, err := Vectorize(vectorDocs, VectorizeOptions{Mode: "word2vec"})
	assert.True(t, errors.Is(err, ErrUnknownMode))

	_, err = Vectorize([]string{"", "a"}, VectorizeOptions{})
	assert.True(t, errors.Is(err, tfidf.ErrEmptyVocabulary))
}

func TestConcat(t *testing.T) {
	features, err := Vectorize(vectorDocs, VectorizeOptions{})
	require.NoError(t, err)

	f, err := data.NewFrame(
		&data.StringColumn{Key: "v1_comment", Values: vectorDocs},
		&data.IntColumn{Key: "Bug Fix", Values: []int64{1, 0, 1}},
	)
	require.NoError(t, err)

	joined, err := Concat(features, f)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2", "3", "v1_comment", "Bug Fix"}, joined.Names())

	col, err := joined.Column("3")
	require.NoError(t, err)
	assert.Equal(t, "2", col.Format(1))

	short, err := data.NewFrame(&data.IntColumn{Key: "x", Values: []int64{1}})
	require.NoError(t, err)
	_, err = Concat(features, short)
	assert.True(t, errors.Is(err, data.ErrLengthMismatch))
}
