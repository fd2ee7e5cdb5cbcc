package prep

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/satdlab/satdprep/golib/errors"
	"github.com/satdlab/satdprep/golib/fileutil"
	"github.com/satdlab/satdprep/golib/logging"
	"github.com/satdlab/satdprep/golib/tfidf"
	"github.com/satdlab/satdprep/satd/config"
	"github.com/satdlab/satdprep/satd/data"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Files written next to the split artifacts.
const (
	PreprocessedFile = "Preprocessed.csv"
	VocabularyFile   = "vocabulary.csv"
)

// ErrNoLabels is returned when the label column holds no labels at all.
var ErrNoLabels = errors.New("no labels found")

// Pipeline runs the whole preparation: load, aggregate, clean, vectorize,
// split and write.
type Pipeline struct {
	Config   *config.Config
	Fs       afero.Fs
	Logger   *zap.Logger
	Progress bool
}

// Result holds everything a run produced.
type Result struct {
	Aggregated *Aggregated
	Clean      CleanStats
	Features   *Features
	Dataset    *data.Frame
	Splits     *Splits
	Report     *Report
}

// Run executes the pipeline. Any error aborts the run; only text that cannot
// be normalized is tolerated, as sentinel rows.
func (p *Pipeline) Run() (*Result, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config")
	}
	fs := p.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	logger := logging.OrNop(p.Logger)
	report := &Report{Written: make(map[string]int64)}

	normalizer, err := cfg.Normalizer(fs)
	if err != nil {
		return nil, errors.Wrapf(err, "text resources")
	}

	table, err := data.Load(fs, cfg.Input)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded input", zap.String("path", cfg.Input), zap.Int("rows", table.Len()))

	agg, err := Aggregate(table, AggregateOptions{
		IDColumn:       cfg.Columns.ID,
		TextColumn:     cfg.Columns.Text,
		LabelColumn:    cfg.Columns.Label,
		Encoding:       LabelEncoding(cfg.LabelEncoding),
		KeepFirstPerID: cfg.KeepFirstPerID,
		Logger:         logger,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "aggregate")
	}
	if len(agg.Labels) == 0 && !cfg.PositionalLabels {
		return nil, errors.Wrapf(ErrNoLabels, "column %q", cfg.Columns.Label)
	}
	report.Aggregate = agg.Stats
	report.Labels = agg.Labels

	if err := p.write(fs, cfg.OutputDir, PreprocessedFile, report, func(w io.Writer) error {
		return data.WriteCSV(w, agg.Frame)
	}); err != nil {
		return nil, err
	}

	cleaned, cleanStats, err := Clean(agg.Frame, CleanOptions{
		Column:     cfg.Columns.Text,
		Normalizer: normalizer,
		Logger:     logger,
		Progress:   p.Progress,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "clean")
	}
	report.Clean = cleanStats

	textCol, err := cleaned.Column(cfg.Columns.Text)
	if err != nil {
		return nil, err
	}
	docs := make([]string, textCol.Len())
	for i := range docs {
		docs[i] = textCol.Format(i)
	}

	features, err := Vectorize(docs, VectorizeOptions{
		Mode:        VectorizerMode(cfg.Vectorizer),
		MaxFeatures: cfg.MaxFeatures,
		MaxN:        cfg.NGramMax,
		Logger:      logger,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "vectorize")
	}
	report.Vocabulary = features.Vocabulary.Len()

	dataset, err := Concat(features, cleaned)
	if err != nil {
		return nil, errors.Wrapf(err, "concat")
	}

	splitOpts := SplitOptions{
		TestSize:   cfg.TestSize,
		Seed:       cfg.Seed,
		TextColumn: cfg.Columns.Text,
		LabelCount: cfg.LabelCount,
	}
	if !cfg.PositionalLabels {
		splitOpts.LabelColumns = agg.Labels
	}
	splits, err := Split(dataset, splitOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "split")
	}
	report.Train, report.Test = splits.Len()

	written, err := splits.Write(fs, cfg.OutputDir)
	for name, n := range written {
		report.Written[name] = n
	}
	if err != nil {
		return nil, errors.Wrapf(err, "write splits")
	}

	if err := p.write(fs, cfg.OutputDir, VocabularyFile, report, func(w io.Writer) error {
		return WriteVocabulary(w, features.Vocabulary)
	}); err != nil {
		return nil, err
	}

	report.Log(logger)
	return &Result{
		Aggregated: agg,
		Clean:      cleanStats,
		Features:   features,
		Dataset:    dataset,
		Splits:     splits,
		Report:     report,
	}, nil
}

func (p *Pipeline) write(fs afero.Fs, dir, name string, report *Report, write func(io.Writer) error) error {
	n, err := fileutil.WriteFile(fs, fileutil.Join(dir, name), write)
	if err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	report.Written[name] = n
	return nil
}

// WriteVocabulary writes the terms of vocab, one row per feature column.
func WriteVocabulary(w io.Writer, vocab *tfidf.Vocabulary) error {
	return gocsv.Marshal(vocab.Export(), w)
}
