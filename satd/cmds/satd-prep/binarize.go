package main

import (
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/satdlab/satdprep/golib/cmdline"
	"github.com/satdlab/satdprep/satd/data"
	"github.com/satdlab/satdprep/satd/prep"
	"github.com/spf13/afero"
)

var binarizeCmd = cmdline.Command{
	Name:     "binarize",
	Synopsis: "one-hot encode a comma separated multi-label column",
	Args:     &binarizeArgs{},
}

type binarizeArgs struct {
	CommonArgs
	In     string `arg:"positional,required" help:"input table"`
	Out    string `arg:"positional,required" help:"output csv with one 0/1 column per label"`
	Column string `arg:"--column" help:"label column, defaults to the configured one"`

	fs     afero.Fs  `arg:"-"`
	stdout io.Writer `arg:"-"`
}

// classCount is one row of the summary printed after binarizing.
type classCount struct {
	Class   string `csv:"class"`
	Records int    `csv:"records"`
}

func (args *binarizeArgs) Handle() error {
	fs := args.fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	stdout := args.stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	cfg, err := args.config(fs)
	if err != nil {
		return err
	}
	column := args.Column
	if column == "" {
		column = cfg.Columns.Label
	}

	table, err := data.Load(fs, args.In)
	if err != nil {
		return err
	}
	values, err := table.Column(column)
	if err != nil {
		return err
	}

	labels := prep.BinarizeLabels(values)
	if _, err := data.WriteFile(fs, args.Out, labels.Frame()); err != nil {
		return err
	}

	counts := make([]*classCount, len(labels.Classes))
	for j, class := range labels.Classes {
		c := &classCount{Class: class}
		for _, row := range labels.Rows {
			c.Records += int(row[j])
		}
		counts[j] = c
	}
	return gocsv.Marshal(counts, stdout)
}
