package data

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/satdlab/satdprep/golib/errors"
	"github.com/satdlab/satdprep/golib/fileutil"
	"github.com/spf13/afero"
)

// WriteCSV writes f as comma separated values: a header row whose first cell
// is empty, then one row per record led by its index label.
func WriteCSV(w io.Writer, f *Frame) error {
	writer := csv.NewWriter(w)

	record := make([]string, len(f.Columns)+1)
	for i, c := range f.Columns {
		record[i+1] = c.Name()
	}
	if err := writer.Write(record); err != nil {
		return err
	}

	for i, idx := range f.Index {
		record[0] = strconv.Itoa(idx)
		for j, c := range f.Columns {
			record[j+1] = c.Format(i)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes f as CSV to a path on fs or an s3:// URI and returns the
// number of bytes written.
func WriteFile(fs afero.Fs, path string, f *Frame) (int64, error) {
	n, err := fileutil.WriteFile(fs, path, func(w io.Writer) error {
		return WriteCSV(w, f)
	})
	if err != nil {
		return n, errors.Wrapf(err, "writing frame")
	}
	return n, nil
}
