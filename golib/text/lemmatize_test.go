package text

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultMorphy(t *testing.T) *MorphyLemmatizer {
	m, err := NewMorphyLemmatizer(DefaultLexicon(), 128)
	require.NoError(t, err)
	return m
}

func TestMorphyRules(t *testing.T) {
	m := newDefaultMorphy(t)

	cases := map[string]string{
		"bugs":            "bug",
		"classes":         "class",
		"class":           "class",
		"boxes":           "box",
		"branches":        "branch",
		"hashes":          "hash",
		"dependencies":    "dependency",
		"leaves":          "leaf",
		"quizzes":         "quiz",
		"methods":         "method",
		"refactorings":    "refactoring",
		"uses":            "use",
		"fix":             "fix",
		"fixes":           "fix",
		"unknownwords":    "unknownwords",
		"is":              "is",
		"workarounds":     "workaround",
		"processes":       "process",
		"implementations": "implementation",
		"rows":            "row",
		"pixels":          "pixel",
		"thresholds":      "threshold",
		"queries":         "query",
	}
	for in, exp := range cases {
		assert.Equal(t, exp, m.Lemmatize(in), in)
	}
}

func TestMorphyExceptions(t *testing.T) {
	m := newDefaultMorphy(t)

	assert.Equal(t, "child", m.Lemmatize("children"))
	assert.Equal(t, "index", m.Lemmatize("indices"))
	assert.Equal(t, "matrix", m.Lemmatize("matrices"))
	assert.Equal(t, "life", m.Lemmatize("lives"))
	assert.Equal(t, "ax", m.Lemmatize("axes"))
	// both forms are lemmas, the shorter wins
	assert.Equal(t, "data", m.Lemmatize("data"))
}

func TestMorphyCacheDisabled(t *testing.T) {
	m, err := NewMorphyLemmatizer(DefaultLexicon(), 0)
	require.NoError(t, err)
	assert.Equal(t, "bug", m.Lemmatize("bugs"))
	assert.Equal(t, "bug", m.Lemmatize("bugs"))

	_, err = NewMorphyLemmatizer(nil, 10)
	assert.Error(t, err)
}

func TestReadLexicon(t *testing.T) {
	index := "  1 header line\n  2 header line\ncat n 1 1 @ 1 0 02121620\ndog n 1 1 @ 1 0 02084071\n"
	exc := "geese goose\nmice mouse\n"

	lex, err := ReadLexicon(strings.NewReader(index), strings.NewReader(exc))
	require.NoError(t, err)
	assert.Len(t, lex.Lemmas, 2)
	assert.True(t, lex.Has("cat"))
	assert.False(t, lex.Has("1"))
	assert.Equal(t, []string{"goose"}, lex.Exceptions["geese"])

	m, err := NewMorphyLemmatizer(lex, 8)
	require.NoError(t, err)
	assert.Equal(t, "cat", m.Lemmatize("cats"))
	// exception bases missing from the index are discarded
	assert.Equal(t, "geese", m.Lemmatize("geese"))
}

func TestLoadWordNet(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/wordnet/dict/index.noun", []byte("  header\nquiz n 1 1 @ 1 0 1\nrow n 1 1 @ 1 0 2\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/wordnet/dict/noun.exc", []byte("quizzes quiz\n"), 0644))

	lex, err := LoadWordNet(fs, "/wordnet/dict")
	require.NoError(t, err)
	assert.Len(t, lex.Lemmas, 2)

	m, err := NewMorphyLemmatizer(lex, 0)
	require.NoError(t, err)
	assert.Equal(t, "quiz", m.Lemmatize("quizzes"))
	assert.Equal(t, "row", m.Lemmatize("rows"))

	_, err = LoadWordNet(fs, "/missing")
	assert.Error(t, err)
}

func TestPorterAndIdentityLemmatizers(t *testing.T) {
	assert.Equal(t, "pars", PorterLemmatizer{}.Lemmatize("parsing"))
	assert.Equal(t, "parsing", IdentityLemmatizer{}.Lemmatize("parsing"))

	ts := Lemmatize(PorterLemmatizer{})(Tokens{"cookies", "setting"})
	assert.Equal(t, Tokens{"cooki", "set"}, ts)
}
