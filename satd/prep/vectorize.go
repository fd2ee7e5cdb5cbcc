package prep

import (
	"github.com/satdlab/satdprep/golib/errors"
	"github.com/satdlab/satdprep/golib/logging"
	"github.com/satdlab/satdprep/golib/tfidf"
	"github.com/satdlab/satdprep/satd/data"
	"go.uber.org/zap"
)

// VectorizerMode selects the feature encoding.
type VectorizerMode string

const (
	// CountCompat computes the bounded tf-idf encoding, discards it and
	// returns unbounded case-sensitive raw counts, matching the published datasets.
	CountCompat VectorizerMode = "count-compat"
	// TfidfMode returns the bounded tf-idf encoding.
	TfidfMode VectorizerMode = "tfidf"
	// CountMode returns raw counts over the bounded vocabulary.
	CountMode VectorizerMode = "count"
)

// ErrUnknownMode is returned for an unrecognized vectorizer mode.
var ErrUnknownMode = errors.New("unknown vectorizer mode")

// VectorizeOptions configures Vectorize.
type VectorizeOptions struct {
	Mode        VectorizerMode
	MaxFeatures int
	// MaxN > 1 adds word n-grams of order 2 through MaxN.
	MaxN   int
	Logger *zap.Logger
}

// Features is the vectorized text: the matrix, the vocabulary that produced
// it, and whether its values are integral counts.
type Features struct {
	Matrix     *tfidf.Matrix
	Vocabulary *tfidf.Vocabulary
	Counts     bool
}

// Vectorize encodes docs as a feature matrix, one row per doc.
func Vectorize(docs []string, opts VectorizeOptions) (*Features, error) {
	logger := logging.OrNop(opts.Logger)

	switch opts.Mode {
	case CountCompat, "":
		tf := tfidf.TfidfVectorizer{Lowercase: true, MaxFeatures: opts.MaxFeatures, MaxN: opts.MaxN}
		weighted, weightedVocab, err := tf.FitTransform(docs)
		if err != nil {
			return nil, errors.Wrapf(err, "tf-idf encoding")
		}
		_, cols := weighted.Dims()
		logger.Warn("discarding tf-idf encoding, raw counts are used as features",
			zap.Int("tfidf_features", cols),
			zap.Int("tfidf_vocabulary", weightedVocab.Len()))

		m, vocab, err := tfidf.CountVectorizer{MaxN: opts.MaxN}.FitTransform(docs)
		if err != nil {
			return nil, errors.Wrapf(err, "count encoding")
		}
		return &Features{Matrix: m, Vocabulary: vocab, Counts: true}, nil

	case TfidfMode:
		m, vocab, err := tfidf.TfidfVectorizer{Lowercase: true, MaxFeatures: opts.MaxFeatures, MaxN: opts.MaxN}.FitTransform(docs)
		if err != nil {
			return nil, errors.Wrapf(err, "tf-idf encoding")
		}
		return &Features{Matrix: m, Vocabulary: vocab}, nil

	case CountMode:
		m, vocab, err := tfidf.CountVectorizer{Lowercase: true, MaxFeatures: opts.MaxFeatures, MaxN: opts.MaxN}.FitTransform(docs)
		if err != nil {
			return nil, errors.Wrapf(err, "count encoding")
		}
		return &Features{Matrix: m, Vocabulary: vocab, Counts: true}, nil

	default:
		return nil, errors.Wrapf(ErrUnknownMode, "%q", opts.Mode)
	}
}

// Frame returns the features as columns named "0".."V-1", backed by a dense
// copy of the matrix.
func (f *Features) Frame() (*data.Frame, error) {
	dense := f.Matrix.Dense()
	if dense == nil {
		return nil, errors.Wrapf(tfidf.ErrEmptyVocabulary, "no feature columns")
	}
	return data.NewFrame(data.MatrixColumns(dense, f.Counts)...)
}

// Concat places the feature columns before the columns of frame. Rows are
// aligned by position.
func Concat(features *Features, frame *data.Frame) (*data.Frame, error) {
	rows, _ := features.Matrix.Dims()
	if rows != frame.Len() {
		return nil, errors.Wrapf(data.ErrLengthMismatch, "%d feature rows, %d records", rows, frame.Len())
	}
	fr, err := features.Frame()
	if err != nil {
		return nil, err
	}
	joined, err := data.HConcat(fr, frame)
	if err != nil {
		return nil, errors.Wrapf(err, "feature columns are named by position")
	}
	return joined, nil
}
