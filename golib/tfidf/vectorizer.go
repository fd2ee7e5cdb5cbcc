package tfidf

import (
	"sort"

	"github.com/satdlab/satdprep/golib/errors"
	"github.com/satdlab/satdprep/golib/text"
)

// ErrEmptyVocabulary is returned when fitting finds no terms at all.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain no terms")

// DefaultTokenizer matches runs of two or more word characters.
var DefaultTokenizer = text.WordTokenizer{MinLen: 2}

// CountVectorizer encodes documents as raw term counts.
type CountVectorizer struct {
	// Lowercase folds tokens to lower case before counting.
	Lowercase bool
	// Binary records presence (1) instead of counts.
	Binary bool
	// MaxFeatures keeps only the most frequent terms across the corpus when > 0.
	MaxFeatures int
	// MaxN > 1 adds word n-grams of order 2 through MaxN.
	MaxN int
	// Tokenizer defaults to DefaultTokenizer.
	Tokenizer text.Tokenizer
}

// FitTransform learns the vocabulary of docs and encodes them.
func (c CountVectorizer) FitTransform(docs []string) (*Matrix, *Vocabulary, error) {
	vocab, err := fit(docs, c.analyzer(), c.MaxFeatures)
	if err != nil {
		return nil, nil, err
	}
	vocab.binary = c.Binary
	return vocab.Transform(docs), vocab, nil
}

func (c CountVectorizer) analyzer() analyzer {
	tok := c.Tokenizer
	if tok == nil {
		tok = DefaultTokenizer
	}
	return analyzer{lowercase: c.Lowercase, maxN: c.MaxN, tokenizer: tok}
}

// TfidfVectorizer encodes documents as L2 normalized tf-idf weights using raw
// term frequencies and smoothed idf.
type TfidfVectorizer struct {
	Lowercase   bool
	MaxFeatures int
	MaxN        int
	Tokenizer   text.Tokenizer
}

// FitTransform learns the vocabulary and idf weights of docs and encodes them.
func (t TfidfVectorizer) FitTransform(docs []string) (*Matrix, *Vocabulary, error) {
	counter := CountVectorizer{
		Lowercase: t.Lowercase,
		MaxN:      t.MaxN,
		Tokenizer: t.Tokenizer,
	}
	vocab, err := fit(docs, counter.analyzer(), t.MaxFeatures)
	if err != nil {
		return nil, nil, err
	}

	df := make(map[string]int, vocab.Len())
	for i, term := range vocab.Terms {
		df[term] = vocab.DocFreq[i]
	}
	idf := TrainIDFCounter(vocab.NumDocs, df)

	vocab.idf = make([]float64, vocab.Len())
	for i, term := range vocab.Terms {
		vocab.idf[i] = idf.Weight(term)
	}
	return vocab.Transform(docs), vocab, nil
}

func fit(docs []string, a analyzer, maxFeatures int) (*Vocabulary, error) {
	docFreq := make(map[string]int)
	total := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range a.analyze(doc) {
			total[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}
	if len(total) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(total))
	for t := range total {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	if maxFeatures > 0 && maxFeatures < len(terms) {
		// terms is sorted, so the stable sort breaks ties by term
		sort.SliceStable(terms, func(i, j int) bool {
			return total[terms[i]] > total[terms[j]]
		})
		terms = terms[:maxFeatures]
		sort.Strings(terms)
	}

	vocab := &Vocabulary{
		Terms:    terms,
		DocFreq:  make([]int, len(terms)),
		NumDocs:  len(docs),
		index:    make(map[string]int, len(terms)),
		analyzer: a,
	}
	for i, t := range terms {
		vocab.index[t] = i
		vocab.DocFreq[i] = docFreq[t]
	}
	return vocab, nil
}
