package text

import (
	"strings"

	"github.com/satdlab/satdprep/golib/errors"
)

// NGrams constructs the n grams (of order n) for the given token stream.
func NGrams(n int, toks []string) ([][]string, error) {
	if n < 1 || len(toks) < n {
		return nil, errors.New("not enough tokens for nGrams")
	}
	var nGrams [][]string
	for i := 0; i+n <= len(toks); i++ {
		nGrams = append(nGrams, toks[i:i+n])
	}
	return nGrams, nil
}

// JoinedNGrams returns every n gram of order lo through hi, each joined by a
// single space, ordered by order and then position. Orders longer than the
// token stream are skipped.
func JoinedNGrams(lo, hi int, toks []string) Tokens {
	if lo < 1 {
		lo = 1
	}
	var out Tokens
	for n := lo; n <= hi; n++ {
		grams, err := NGrams(n, toks)
		if err != nil {
			continue
		}
		for _, g := range grams {
			out = append(out, strings.Join(g, " "))
		}
	}
	return out
}
