package prep

import (
	"testing"

	"github.com/satdlab/satdprep/golib/text"
	"github.com/satdlab/satdprep/satd/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testNormalizer(t *testing.T) *text.Normalizer {
	lem, err := text.NewMorphyLemmatizer(text.DefaultLexicon(), 64)
	require.NoError(t, err)
	return text.NewNormalizer(text.NormalizerOptions{
		StopWords:  text.EnglishStopWords(),
		Lemmatizer: lem,
	})
}

func TestClean(t *testing.T) {
	f, err := data.NewFrame(
		&data.StringColumn{Key: "v1_comment", Values: []string{"Fix the bug!!", "The", "Workarounds for broken branches", "bad \xff"}},
		&data.IntColumn{Key: "Bug Fix", Values: []int64{1, 0, 1, 0}},
	)
	require.NoError(t, err)

	core, logs := observer.New(zap.InfoLevel)
	cleaned, stats, err := Clean(f, CleanOptions{
		Column:     "v1_comment",
		Normalizer: testNormalizer(t),
		Logger:     zap.New(core),
	})
	require.NoError(t, err)

	col, err := cleaned.Column("v1_comment")
	require.NoError(t, err)
	assert.Equal(t, []string{"fix bug", "", "workaround broken branch", "empty"}, col.(*data.StringColumn).Values)
	assert.Equal(t, []string{"v1_comment", "Bug Fix"}, cleaned.Names())

	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 1, stats.Degraded)
	assert.Equal(t, 1, stats.Empty)
	assert.Equal(t, 3.0, stats.Tokens.Max)
	assert.Equal(t, 1.5, stats.Tokens.Mean)

	warnings := logs.FilterMessage("could not normalize text").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, zap.WarnLevel, warnings[0].Level)
	assert.Equal(t, "bad \xff", warnings[0].ContextMap()["input"])
	assert.EqualValues(t, 3, warnings[0].ContextMap()["row"])

	// the input frame is left untouched
	orig, err := f.Column("v1_comment")
	require.NoError(t, err)
	assert.Equal(t, "Fix the bug!!", orig.Format(0))
}

func TestCleanNumericColumnDegrades(t *testing.T) {
	f, err := data.NewFrame(&data.IntColumn{Key: "v1_comment", Values: []int64{42, 7}})
	require.NoError(t, err)

	cleaned, stats, err := Clean(f, CleanOptions{Column: "v1_comment", Normalizer: testNormalizer(t)})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Degraded)

	col, err := cleaned.Column("v1_comment")
	require.NoError(t, err)
	assert.Equal(t, "empty", col.Format(0))
	assert.Equal(t, "empty", col.Format(1))
}

func TestCleanErrors(t *testing.T) {
	f, err := data.NewFrame(&data.StringColumn{Key: "text", Values: []string{"a"}})
	require.NoError(t, err)

	_, _, err = Clean(f, CleanOptions{Column: "v1_comment", Normalizer: testNormalizer(t)})
	assert.Error(t, err)

	_, _, err = Clean(f, CleanOptions{Column: "text"})
	assert.Error(t, err)
}

func TestCleanWithProgress(t *testing.T) {
	f, err := data.NewFrame(&data.StringColumn{Key: "v1_comment", Values: []string{"Fix the bug!!", "hacks"}})
	require.NoError(t, err)

	cleaned, _, err := Clean(f, CleanOptions{Column: "v1_comment", Normalizer: testNormalizer(t), Progress: true})
	require.NoError(t, err)
	col, err := cleaned.Column("v1_comment")
	require.NoError(t, err)
	assert.Equal(t, []string{"fix bug", "hack"}, col.(*data.StringColumn).Values)
}
