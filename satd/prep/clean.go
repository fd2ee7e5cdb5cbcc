package prep

import (
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/satdlab/satdprep/golib/errors"
	"github.com/satdlab/satdprep/golib/logging"
	"github.com/satdlab/satdprep/golib/text"
	"github.com/satdlab/satdprep/satd/data"
	"github.com/sbwhitecap/tqdm"
	"github.com/sbwhitecap/tqdm/iterators"
	"go.uber.org/zap"
)

// CleanOptions configures Clean.
type CleanOptions struct {
	Column     string
	Normalizer *text.Normalizer
	Logger     *zap.Logger
	// Progress shows a progress bar on stderr.
	Progress bool
}

// TokenSummary describes the number of tokens per cleaned record.
type TokenSummary struct {
	Mean   float64
	Median float64
	P95    float64
	Max    float64
}

// CleanStats counts the records Clean processed.
type CleanStats struct {
	Rows     int
	Degraded int
	Empty    int
	Tokens   TokenSummary
}

// Clean normalizes every value of the text column. Values that cannot be
// normalized are logged and replaced by the normalizer's sentinel; they never
// fail the run.
func Clean(f *data.Frame, opts CleanOptions) (*data.Frame, CleanStats, error) {
	logger := logging.OrNop(opts.Logger)
	if opts.Normalizer == nil {
		return nil, CleanStats{}, errors.New("no normalizer")
	}

	col, err := f.Column(opts.Column)
	if err != nil {
		return nil, CleanStats{}, errors.Wrapf(err, "text column")
	}

	cleanStats := CleanStats{Rows: col.Len()}
	cleaned := make([]string, col.Len())
	counts := make(stats.Float64Data, 0, col.Len())

	clean := func(i int) {
		res := opts.Normalizer.NormalizeValue(cellValue(col, i))
		if res.Degraded {
			cleanStats.Degraded++
			logger.Warn("could not normalize text",
				zap.String("input", col.Format(i)),
				zap.Int("row", f.Index[i]),
				zap.Error(res.Err))
		} else if res.Text == "" {
			cleanStats.Empty++
		}
		cleaned[i] = res.Text
		counts = append(counts, float64(len(strings.Fields(res.Text))))
	}

	if opts.Progress && col.Len() > 0 {
		err = tqdm.With(iterators.Interval(0, col.Len()), "Cleaning text", func(v interface{}) (brk bool) {
			clean(v.(int))
			return
		})
		if err != nil {
			return nil, CleanStats{}, errors.Wrapf(err, "cleaning text")
		}
	} else {
		for i := 0; i < col.Len(); i++ {
			clean(i)
		}
	}

	cleanStats.Tokens = summarizeTokens(counts)

	out, err := f.Replace(&data.StringColumn{Key: opts.Column, Values: cleaned})
	if err != nil {
		return nil, CleanStats{}, err
	}

	logger.Info("cleaned text",
		zap.Int("rows", cleanStats.Rows),
		zap.Int("degraded", cleanStats.Degraded),
		zap.Int("empty", cleanStats.Empty),
		zap.Float64("mean_tokens", cleanStats.Tokens.Mean))

	return out, cleanStats, nil
}

// cellValue returns the value handed to the normalizer: text for string
// columns, the number itself for numeric ones.
func cellValue(col data.Column, i int) interface{} {
	if s, ok := col.(*data.StringColumn); ok {
		return s.Values[i]
	}
	if v, ok := col.Float(i); ok {
		return v
	}
	return col.Format(i)
}

func summarizeTokens(counts stats.Float64Data) TokenSummary {
	if len(counts) == 0 {
		return TokenSummary{}
	}
	var s TokenSummary
	s.Mean, _ = counts.Mean()
	s.Median, _ = counts.Median()
	s.P95, _ = counts.Percentile(95)
	s.Max, _ = counts.Max()
	return s
}
