package text

import (
	"strings"
	"unicode"

	porterstemmer "github.com/kiteco/go-porterstemmer"
)

// TokenFunc defines a type of function that takes in an array of tokens and
// returns an array of tokens.
type TokenFunc func(Tokens) Tokens

// Tokens represents a slice of strings
type Tokens []string

// Processor consists of a list of text processing rules.
type Processor struct {
	filters []TokenFunc
}

// NewProcessor takes a list of TokenFuncs to instantiate a Processor.
func NewProcessor(funcs ...TokenFunc) *Processor {
	f := &Processor{}
	for _, fn := range funcs {
		if fn != nil {
			f.filters = append(f.filters, fn)
		}
	}
	return f
}

// Apply applies a list of TokenFunc to transform the input tokens
func (f *Processor) Apply(ts Tokens) Tokens {
	for _, fn := range f.filters {
		ts = fn(ts)
	}
	return ts
}

// Tokenizer is generic interface for an object which breaks an input
// string into Tokens.
type Tokenizer interface {
	Tokenize(string) Tokens
}

// SpaceTokenizer splits on runs of unicode whitespace.
type SpaceTokenizer struct{}

// Tokenize satisfies the Tokenizer interface.
func (SpaceTokenizer) Tokenize(doc string) Tokens {
	return Tokens(strings.Fields(doc))
}

// WordTokenizer emits maximal runs of word characters (letters, numbers and
// underscore) that are at least MinLen runes long. With MinLen 2 this matches
// the `(?u)\b\w\w+\b` token pattern used by bag-of-words vectorizers.
type WordTokenizer struct {
	MinLen int
}

// Tokenize satisfies the Tokenizer interface.
func (t WordTokenizer) Tokenize(doc string) Tokens {
	minLen := t.MinLen
	if minLen < 1 {
		minLen = 1
	}

	var tokens Tokens
	start, runes := -1, 0
	flush := func(end int) {
		if start >= 0 && runes >= minLen {
			tokens = append(tokens, doc[start:end])
		}
		start, runes = -1, 0
	}
	for i, r := range doc {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(doc))
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Lower converts all tokens to lower case
func Lower(ts Tokens) Tokens {
	for i, t := range ts {
		ts[i] = strings.ToLower(t)
	}
	return ts
}

// Stem extracts and returns the stems of each token in the input token stream
func Stem(ts Tokens) Tokens {
	for i, t := range ts {
		ts[i] = porterstemmer.StemString(t)
	}
	return ts
}
