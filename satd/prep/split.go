package prep

import (
	"math"

	"github.com/satdlab/satdprep/golib/errors"
	"github.com/satdlab/satdprep/golib/fileutil"
	"github.com/satdlab/satdprep/golib/mtrand"
	"github.com/satdlab/satdprep/satd/data"
	"github.com/spf13/afero"
)

var (
	// ErrTooFewColumns is returned when a frame has fewer columns than the
	// number of trailing label columns.
	ErrTooFewColumns = errors.New("too few columns for label slicing")
	// ErrEmptyPartition is returned when the train or test partition would be empty.
	ErrEmptyPartition = errors.New("empty partition")
	// ErrTestSize is returned for a test fraction outside (0, 1).
	ErrTestSize = errors.New("test size must be between 0 and 1")
)

// Artifact file names written by Splits.Write.
const (
	TrainFeaturesFile = "Train_Features.csv"
	TrainLabelsFile   = "Train_Labels.csv"
	TestFeaturesFile  = "Test_Features.csv"
	TestLabelsFile    = "Test_Labels.csv"
)

// SplitOptions configures Split. Label columns are either named explicitly in
// LabelColumns or, when that is empty, taken as the last LabelCount columns.
type SplitOptions struct {
	TestSize     float64
	Seed         uint32
	TextColumn   string
	LabelColumns []string
	LabelCount   int
}

// DefaultSplitOptions returns a 70/30 split seeded with 42 over the last ten
// columns.
func DefaultSplitOptions() SplitOptions {
	return SplitOptions{
		TestSize:   0.30,
		Seed:       42,
		TextColumn: "v1_comment",
		LabelCount: 10,
	}
}

// Splits holds the four partitions. Rows keep their index label from the
// split frame.
type Splits struct {
	TrainFeatures *data.Frame
	TrainLabels   *data.Frame
	TestFeatures  *data.Frame
	TestLabels    *data.Frame
}

// Split shuffles the rows of f with a seeded permutation, assigns the first
// ceil(TestSize*n) shuffled rows to the test partition and the rest to train,
// separates features from labels, drops the text column from the features and
// clamps label values above 0 to 1.
func Split(f *data.Frame, opts SplitOptions) (*Splits, error) {
	if !(opts.TestSize > 0 && opts.TestSize < 1) {
		return nil, errors.Wrapf(ErrTestSize, "got %v", opts.TestSize)
	}
	if err := f.CheckNames(); err != nil {
		return nil, err
	}

	labelNames, err := labelColumns(f, opts)
	if err != nil {
		return nil, err
	}
	if _, err := f.Column(opts.TextColumn); err != nil {
		return nil, errors.Wrapf(err, "text column")
	}

	exclude := make(map[string]bool, len(labelNames)+1)
	for _, n := range labelNames {
		exclude[n] = true
	}
	exclude[opts.TextColumn] = true
	var featureNames []string
	for _, n := range f.Names() {
		if !exclude[n] {
			featureNames = append(featureNames, n)
		}
	}

	n := f.Len()
	nTest := int(math.Ceil(opts.TestSize * float64(n)))
	nTrain := n - nTest
	if nTest == 0 || nTrain <= 0 {
		return nil, errors.Wrapf(ErrEmptyPartition, "%d rows with test size %v gives %d train and %d test rows", n, opts.TestSize, nTrain, nTest)
	}

	perm := mtrand.Permutation(n, opts.Seed)
	test, train := perm[:nTest], perm[nTest:]

	features, err := f.Select(featureNames...)
	if err != nil {
		return nil, err
	}
	labels, err := f.Select(labelNames...)
	if err != nil {
		return nil, err
	}
	labels, err = binarize(labels)
	if err != nil {
		return nil, err
	}

	return &Splits{
		TrainFeatures: features.Take(train),
		TrainLabels:   labels.Take(train),
		TestFeatures:  features.Take(test),
		TestLabels:    labels.Take(test),
	}, nil
}

func labelColumns(f *data.Frame, opts SplitOptions) ([]string, error) {
	if len(opts.LabelColumns) > 0 {
		for _, n := range opts.LabelColumns {
			if _, err := f.Column(n); err != nil {
				return nil, errors.Wrapf(err, "label column")
			}
		}
		return opts.LabelColumns, nil
	}

	names := f.Names()
	if opts.LabelCount <= 0 || len(names) < opts.LabelCount {
		return nil, errors.Wrapf(ErrTooFewColumns, "%d columns, %d label columns", len(names), opts.LabelCount)
	}
	return names[len(names)-opts.LabelCount:], nil
}

// binarize sets every label value above 0 to 1 and leaves the others alone.
func binarize(f *data.Frame) (*data.Frame, error) {
	cols := make([]data.Column, len(f.Columns))
	for j, c := range f.Columns {
		vals := make([]int64, c.Len())
		for i := range vals {
			v, ok := c.Float(i)
			if !ok {
				return nil, errors.Errorf("label column %q is not numeric", c.Name())
			}
			if v > 0 {
				v = 1
			}
			vals[i] = int64(v)
		}
		cols[j] = &data.IntColumn{Key: c.Name(), Values: vals}
	}
	return &data.Frame{Index: f.Index, Columns: cols}, nil
}

// Len returns the number of train and test rows.
func (s *Splits) Len() (train, test int) {
	return s.TrainFeatures.Len(), s.TestFeatures.Len()
}

// Write persists the four partitions under dir, a local directory on fs or an
// s3:// prefix, and returns the number of bytes written per file.
func (s *Splits) Write(fs afero.Fs, dir string) (map[string]int64, error) {
	written := make(map[string]int64, 4)
	for _, out := range []struct {
		name  string
		frame *data.Frame
	}{
		{TrainFeaturesFile, s.TrainFeatures},
		{TrainLabelsFile, s.TrainLabels},
		{TestFeaturesFile, s.TestFeatures},
		{TestLabelsFile, s.TestLabels},
	} {
		n, err := data.WriteFile(fs, fileutil.Join(dir, out.name), out.frame)
		if err != nil {
			return written, errors.Wrapf(err, "%s", out.name)
		}
		written[out.name] = n
	}
	return written, nil
}
