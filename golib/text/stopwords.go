package text

import (
	"bufio"
	"embed"
	"io"
	"strings"

	"github.com/satdlab/satdprep/golib/errors"
)

//go:embed data
var dataFS embed.FS

// StopWords is an immutable set of words removed before lemmatization.
type StopWords map[string]struct{}

// EnglishStopWords returns the NLTK english stop word list.
func EnglishStopWords() StopWords {
	f, err := dataFS.Open("data/english")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	sw, err := ReadStopWords(f)
	if err != nil {
		panic(err)
	}
	return sw
}

// ReadStopWords reads one stop word per line; blank lines are skipped.
func ReadStopWords(r io.Reader) (StopWords, error) {
	sw := make(StopWords)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		sw[w] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading stop words")
	}
	return sw, nil
}

// Contains reports whether w is a stop word.
func (sw StopWords) Contains(w string) bool {
	_, ok := sw[w]
	return ok
}

// Remove removes stop words from a token stream.
func (sw StopWords) Remove(ts Tokens) Tokens {
	var filteredTokens Tokens
	for _, t := range ts {
		if !sw.Contains(t) {
			filteredTokens = append(filteredTokens, t)
		}
	}
	return filteredTokens
}
