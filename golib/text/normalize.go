package text

import (
	"strings"
	"unicode/utf8"

	"github.com/satdlab/satdprep/golib/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sentinel is the text a degraded normalization yields by default.
const Sentinel = "empty"

var (
	// ErrNotText is returned for values that are not strings.
	ErrNotText = errors.New("value is not text")
	// ErrInvalidUTF8 is returned for strings that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8")
)

// Punctuation is the ASCII punctuation set removed by StripPunctuation.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// IsPunctuation returns true if r is one of the ASCII punctuation characters.
func IsPunctuation(r rune) bool {
	return r < utf8.RuneSelf && strings.IndexByte(Punctuation, byte(r)) >= 0
}

// StripPunctuation deletes ASCII punctuation from s. Nothing is inserted in
// its place, so "don't" becomes "dont".
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if IsPunctuation(r) {
			return -1
		}
		return r
	}, s)
}

// Result is the outcome of normalizing one value. A degraded result carries
// the sentinel as Text and the reason in Err.
type Result struct {
	Text     string
	Degraded bool
	Err      error
}

// NormalizerOptions configures a Normalizer. Nil StopWords keeps every token,
// a nil Lemmatizer leaves tokens as they are and an empty Sentinel means
// Sentinel.
type NormalizerOptions struct {
	StopWords  StopWords
	Lemmatizer Lemmatizer
	Sentinel   string
}

// Normalizer turns free text into a cleaned, space separated token string:
// lowercase, strip punctuation, split on whitespace, drop stop words,
// lemmatize. It holds no mutable state besides the lemmatizer's cache.
type Normalizer struct {
	sentinel  string
	processor *Processor
}

// NewNormalizer builds a Normalizer from opts.
func NewNormalizer(opts NormalizerOptions) *Normalizer {
	sentinel := opts.Sentinel
	if sentinel == "" {
		sentinel = Sentinel
	}

	var stop, lemma TokenFunc
	if opts.StopWords != nil {
		stop = opts.StopWords.Remove
	}
	if opts.Lemmatizer != nil {
		lemma = Lemmatize(opts.Lemmatizer)
	}

	return &Normalizer{
		sentinel:  sentinel,
		processor: NewProcessor(stop, lemma),
	}
}

// Sentinel returns the text used for degraded results.
func (n *Normalizer) Sentinel() string {
	return n.sentinel
}

// Normalize cleans s.
func (n *Normalizer) Normalize(s string) Result {
	if !utf8.ValidString(s) {
		return n.degrade(errors.Wrapf(ErrInvalidUTF8, "%q", s))
	}

	// a Caser keeps state between calls, so one is made per value
	lowered := cases.Lower(language.Und).String(s)
	toks := SpaceTokenizer{}.Tokenize(StripPunctuation(lowered))
	toks = n.processor.Apply(toks)
	return Result{Text: strings.Join(toks, " ")}
}

// NormalizeValue cleans v if it is a string (or []byte) and degrades to the
// sentinel for anything else, including nil.
func (n *Normalizer) NormalizeValue(v interface{}) Result {
	switch t := v.(type) {
	case string:
		return n.Normalize(t)
	case []byte:
		return n.Normalize(string(t))
	default:
		return n.degrade(errors.Wrapf(ErrNotText, "%T", v))
	}
}

func (n *Normalizer) degrade(err error) Result {
	return Result{Text: n.sentinel, Degraded: true, Err: err}
}
