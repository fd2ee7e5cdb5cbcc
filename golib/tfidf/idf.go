package tfidf

import "math"

// IDFCounter keeps the inverse-document-frequency weight of each term.
type IDFCounter struct {
	NumDocs int
	Scores  map[string]float64
}

// TrainIDFCounter computes smoothed idf weights, ln((1+n)/(1+df))+1, from the
// number of documents and the document frequency of each term.
func TrainIDFCounter(numDocs int, docFreq map[string]int) *IDFCounter {
	c := &IDFCounter{
		NumDocs: numDocs,
		Scores:  make(map[string]float64, len(docFreq)),
	}
	for t, df := range docFreq {
		c.Scores[t] = smoothIDF(numDocs, df)
	}
	return c
}

// Weight returns the idf weight of t, or 0 if t was never seen.
func (c *IDFCounter) Weight(t string) float64 {
	return c.Scores[t]
}

func smoothIDF(numDocs, df int) float64 {
	return math.Log(float64(1+numDocs)/float64(1+df)) + 1
}
