package main

import (
	"github.com/satdlab/satdprep/golib/cmdline"
	"github.com/satdlab/satdprep/golib/errors"
	"github.com/satdlab/satdprep/satd/data"
	"github.com/satdlab/satdprep/satd/prep"
	"github.com/spf13/afero"
)

var cleanCmd = cmdline.Command{
	Name:     "clean",
	Synopsis: "normalize the text column of a table",
	Args:     &cleanArgs{},
}

type cleanArgs struct {
	CommonArgs
	In       string `arg:"positional,required" help:"input table"`
	Out      string `arg:"positional,required" help:"output csv"`
	Column   string `arg:"--column" help:"text column, defaults to the configured one"`
	Progress bool   `arg:"--progress" help:"show a progress bar"`

	fs afero.Fs `arg:"-"`
}

func (args *cleanArgs) Handle() error {
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
	column := args.Column
	if column == "" {
		column = cfg.Columns.Text
	}

	normalizer, err := cfg.Normalizer(fs)
	if err != nil {
		return err
	}

	table, err := data.Load(fs, args.In)
	if err != nil {
		return err
	}

	cleaned, _, err := prep.Clean(table.Frame(), prep.CleanOptions{
		Column:     column,
		Normalizer: normalizer,
		Logger:     logger,
		Progress:   args.Progress,
	})
	if err != nil {
		return errors.Wrapf(err, "clean")
	}

	_, err = data.WriteFile(fs, args.Out, cleaned)
	return err
}
