package fileutil

import (
	"io"
	"io/ioutil"
	"path/filepath"

	"github.com/satdlab/satdprep/golib/awsutil"
	"github.com/satdlab/satdprep/golib/errors"
	"github.com/spf13/afero"
)

// NamedWriteCloser is a file-like object extending io.WriteCloser with a string Name() similar to os.File.Name()
type NamedWriteCloser = awsutil.NamedWriteCloser

// NewReader opens a local or remote path for reading. If the path looks like
// "s3://bucket/path/to/object" then this will read an object from S3. Otherwise, this
// will read the path from fs.
func NewReader(fs afero.Fs, path string) (io.ReadCloser, error) {
	if awsutil.IsS3URI(path) {
		return awsutil.NewS3Reader(path)
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// NewBufferedWriter opens a local or remote path for writing. If the path starts with
// "s3://", then this will write to a buffer, copying to s3 on close. Otherwise,
// this will create the file (and its parent directories) on fs.
func NewBufferedWriter(fs afero.Fs, path string) (NamedWriteCloser, error) {
	if awsutil.IsS3URI(path) {
		return awsutil.NewBufferedS3Writer(path)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return fs.Create(path)
}

// ReadFile reads the contents of a local or remote path.
func ReadFile(fs afero.Fs, path string) ([]byte, error) {
	r, err := NewReader(fs, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return data, nil
}

// WriteFile writes data to a local or remote path and returns the number of
// bytes written. The error from closing the writer is reported, since remote
// writers upload on close.
func WriteFile(fs afero.Fs, path string, write func(io.Writer) error) (n int64, err error) {
	w, err := NewBufferedWriter(fs, path)
	if err != nil {
		return 0, errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
	}()

	cw := &countingWriter{w: w}
	if err := write(cw); err != nil {
		return cw.n, errors.Wrapf(err, "writing %s", path)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
