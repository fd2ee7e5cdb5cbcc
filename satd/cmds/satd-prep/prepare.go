package main

import (
	"fmt"
	"math"
	"time"

	"github.com/satdlab/satdprep/golib/cmdline"
	"github.com/satdlab/satdprep/satd/prep"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var prepareCmd = cmdline.Command{
	Name:     "prepare",
	Synopsis: "build the train/test feature and label files from the raw comments",
	Args:     &prepareArgs{},
}

type prepareArgs struct {
	CommonArgs
	Input       string `arg:"--input" help:"input table (.csv, .tsv, .xlsx, local or s3://)"`
	Output      string `arg:"--output" help:"output directory (local or s3://)"`
	Vectorizer  string `arg:"--vectorizer" help:"count-compat, tfidf or count"`
	MaxFeatures *int   `arg:"--max-features" help:"vocabulary bound of the tf-idf encoding"`
	NGramMax    *int   `arg:"--ngram-max" help:"largest word n-gram order in the vocabulary"`
	Seed        *int   `arg:"--seed" help:"seed of the train/test shuffle"`
	Progress    bool   `arg:"--progress" help:"show a progress bar while cleaning"`
	Report      bool   `arg:"--report" help:"print a run summary"`

	fs afero.Fs `arg:"-"`
}

func (args *prepareArgs) Validate() error {
	if args.Seed != nil && (*args.Seed < 0 || int64(*args.Seed) > math.MaxUint32) {
		return fmt.Errorf("--seed must be between 0 and %d", uint32(math.MaxUint32))
	}
	if args.NGramMax != nil && *args.NGramMax < 1 {
		return fmt.Errorf("--ngram-max must be at least 1")
	}
	return nil
}

func (args *prepareArgs) Handle() error {
	start := time.Now()
	fs := args.fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	logger, err := args.logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := args.config(fs)
	if err != nil {
		return err
	}
	if args.Input != "" {
		cfg.Input = args.Input
	}
	if args.Output != "" {
		cfg.OutputDir = args.Output
	}
	if args.Vectorizer != "" {
		cfg.Vectorizer = args.Vectorizer
	}
	if args.MaxFeatures != nil {
		cfg.MaxFeatures = *args.MaxFeatures
	}
	if args.NGramMax != nil {
		cfg.NGramMax = *args.NGramMax
	}
	if args.Seed != nil {
		cfg.Seed = uint32(*args.Seed)
	}

	p := &prep.Pipeline{
		Config:   cfg,
		Fs:       fs,
		Logger:   logger,
		Progress: args.Progress,
	}
	res, err := p.Run()
	if err != nil {
		return err
	}

	logger.Debug("prepare finished", zap.Duration("took", time.Since(start)))
	if args.Report {
		fmt.Print(res.Report.String())
	}
	fmt.Println("The data is ready")
	return nil
}
