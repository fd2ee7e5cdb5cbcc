package tfidf

import (
	"sort"

	"github.com/satdlab/satdprep/golib/text"
)

// Vocabulary is the fitted state of a vectorizer: the sorted term list, the
// document frequency of each term and, for tf-idf, the idf weights. It
// transforms new documents the same way the training documents were.
type Vocabulary struct {
	Terms   []string
	DocFreq []int
	NumDocs int

	index    map[string]int
	analyzer analyzer
	binary   bool
	idf      []float64
}

// Term is one row of an exported vocabulary.
type Term struct {
	Term    string `csv:"term"`
	Index   int    `csv:"index"`
	DocFreq int    `csv:"doc_freq"`
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	return len(v.Terms)
}

// Index returns the column of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// IDF returns the idf weights by column, or nil for a count vocabulary.
func (v *Vocabulary) IDF() []float64 {
	return v.idf
}

// Export returns the vocabulary as a list of terms ordered by column.
func (v *Vocabulary) Export() []*Term {
	terms := make([]*Term, 0, len(v.Terms))
	for i, t := range v.Terms {
		terms = append(terms, &Term{Term: t, Index: i, DocFreq: v.DocFreq[i]})
	}
	return terms
}

// Transform encodes docs with the fitted vocabulary; unknown terms are ignored.
func (v *Vocabulary) Transform(docs []string) *Matrix {
	rows := make([][]Entry, 0, len(docs))
	for _, doc := range docs {
		counts := make(map[int]float64)
		for _, tok := range v.analyzer.analyze(doc) {
			if j, ok := v.index[tok]; ok {
				counts[j]++
			}
		}
		row := make([]Entry, 0, len(counts))
		for j, c := range counts {
			if v.binary {
				c = 1
			}
			if v.idf != nil {
				c *= v.idf[j]
			}
			row = append(row, Entry{Col: j, Value: c})
		}
		sort.Slice(row, func(a, b int) bool { return row[a].Col < row[b].Col })
		rows = append(rows, row)
	}

	m := NewMatrix(len(v.Terms), rows)
	if v.idf != nil {
		m.normalizeRows()
	}
	return m
}

// analyzer turns a document into the tokens that are counted.
type analyzer struct {
	lowercase bool
	maxN      int
	tokenizer text.Tokenizer
}

func (a analyzer) analyze(doc string) text.Tokens {
	toks := a.tokenizer.Tokenize(doc)
	if a.lowercase {
		toks = text.Lower(toks)
	}
	if a.maxN > 1 {
		toks = text.JoinedNGrams(1, a.maxN, toks)
	}
	return toks
}
