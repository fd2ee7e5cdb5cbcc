package text

import (
	"bufio"
	"io"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/satdlab/satdprep/golib/errors"
	"github.com/satdlab/satdprep/golib/fileutil"
	"github.com/spf13/afero"
)

// Lemmatizer reduces a single lower-case word to its base form.
type Lemmatizer interface {
	Lemmatize(word string) string
}

// Lemmatize returns a TokenFunc that lemmatizes every token in place.
func Lemmatize(l Lemmatizer) TokenFunc {
	return func(ts Tokens) Tokens {
		for i, t := range ts {
			ts[i] = l.Lemmatize(t)
		}
		return ts
	}
}

// IdentityLemmatizer returns words unchanged.
type IdentityLemmatizer struct{}

// Lemmatize implements Lemmatizer.
func (IdentityLemmatizer) Lemmatize(word string) string { return word }

// PorterLemmatizer approximates lemmas with Porter stems.
type PorterLemmatizer struct{}

// Lemmatize implements Lemmatizer.
func (PorterLemmatizer) Lemmatize(word string) string {
	return Stem(Tokens{word})[0]
}

// Lexicon holds the noun lemmas and irregular noun forms of a WordNet style dictionary.
type Lexicon struct {
	Lemmas     map[string]struct{}
	Exceptions map[string][]string
}

// DefaultLexicon returns the embedded noun lexicon.
func DefaultLexicon() *Lexicon {
	index, err := dataFS.Open("data/index.noun")
	if err != nil {
		panic(err)
	}
	defer index.Close()

	exc, err := dataFS.Open("data/noun.exc")
	if err != nil {
		panic(err)
	}
	defer exc.Close()

	lex, err := ReadLexicon(index, exc)
	if err != nil {
		panic(err)
	}
	return lex
}

// LoadWordNet reads index.noun and noun.exc from a WordNet dict directory,
// either a directory on fs or an s3:// prefix.
func LoadWordNet(fs afero.Fs, dir string) (*Lexicon, error) {
	index, err := fileutil.NewReader(fs, fileutil.Join(dir, "index.noun"))
	if err != nil {
		return nil, errors.Wrapf(err, "opening wordnet index")
	}
	defer index.Close()

	exc, err := fileutil.NewReader(fs, fileutil.Join(dir, "noun.exc"))
	if err != nil {
		return nil, errors.Wrapf(err, "opening wordnet exceptions")
	}
	defer exc.Close()

	return ReadLexicon(index, exc)
}

// ReadLexicon parses a WordNet index file (lemma in the first field, header
// lines start with a space) and an exception file ("inflected base...").
func ReadLexicon(index, exceptions io.Reader) (*Lexicon, error) {
	lex := &Lexicon{
		Lemmas:     make(map[string]struct{}),
		Exceptions: make(map[string][]string),
	}

	scanner := bufio.NewScanner(index)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == ' ' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		lex.Lemmas[strings.ToLower(fields[0])] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading lemma index")
	}

	scanner = bufio.NewScanner(exceptions)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		lex.Exceptions[fields[0]] = append(lex.Exceptions[fields[0]], fields[1:]...)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading lemma exceptions")
	}
	return lex, nil
}

// Has reports whether w is a known lemma.
func (l *Lexicon) Has(w string) bool {
	_, ok := l.Lemmas[w]
	return ok
}

type substitution struct {
	old, new string
}

// noun detachment rules, applied once to the surface form
var nounRules = []substitution{
	{"s", ""},
	{"ses", "s"},
	{"ves", "f"},
	{"xes", "x"},
	{"zes", "z"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"men", "man"},
	{"ies", "y"},
}

// MorphyLemmatizer is the WordNet morphy algorithm restricted to nouns: a
// word listed as an exception yields itself and its listed bases, otherwise
// itself and the results of each detachment rule. Candidates missing from the
// lexicon are discarded and the shortest survivor wins; a word without
// survivors is returned unchanged.
type MorphyLemmatizer struct {
	lex   *Lexicon
	cache *lru.Cache
}

// NewMorphyLemmatizer builds a lemmatizer over lex memoizing up to cacheSize
// words. A cacheSize <= 0 disables memoization.
func NewMorphyLemmatizer(lex *Lexicon, cacheSize int) (*MorphyLemmatizer, error) {
	if lex == nil {
		return nil, errors.New("nil lexicon")
	}
	m := &MorphyLemmatizer{lex: lex}
	if cacheSize > 0 {
		cache, err := lru.New(cacheSize)
		if err != nil {
			return nil, errors.Wrapf(err, "creating lemma cache")
		}
		m.cache = cache
	}
	return m, nil
}

// Lemmatize implements Lemmatizer.
func (m *MorphyLemmatizer) Lemmatize(word string) string {
	if m.cache != nil {
		if lemma, ok := m.cache.Get(word); ok {
			return lemma.(string)
		}
	}
	lemma := m.lemmatize(word)
	if m.cache != nil {
		m.cache.Add(word, lemma)
	}
	return lemma
}

func (m *MorphyLemmatizer) lemmatize(word string) string {
	forms := []string{word}
	if bases, ok := m.lex.Exceptions[word]; ok {
		forms = append(forms, bases...)
	} else {
		for _, rule := range nounRules {
			if strings.HasSuffix(word, rule.old) {
				forms = append(forms, word[:len(word)-len(rule.old)]+rule.new)
			}
		}
	}

	best, found := word, false
	for _, form := range forms {
		if !m.lex.Has(form) {
			continue
		}
		if !found || len(form) < len(best) {
			best, found = form, true
		}
	}
	return best
}
