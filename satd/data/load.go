package data

import (
	"bytes"
	"encoding/csv"
	"io"
	"io/ioutil"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/satdlab/satdprep/golib/errors"
	"github.com/satdlab/satdprep/golib/fileutil"
	"github.com/spf13/afero"
	"github.com/ssor/bom"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for input files that are neither delimited
// text nor xlsx workbooks.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// sheets that never hold the data table
var skipSheets = map[string]bool{
	"info":     true,
	"metadata": true,
	"about":    true,
	"readme":   true,
	"notes":    true,
}

// Load reads the table at path, which is either a path on fs or an s3:// URI.
// The format is chosen by extension: .csv, .tsv or .xlsx, each optionally
// gzipped (.csv.gz).
func Load(fs afero.Fs, p string) (*Table, error) {
	rc, err := fileutil.NewReader(fs, p)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", p)
	}
	defer rc.Close()

	var r io.Reader = rc
	name := strings.ToLower(p)
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", p)
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	}

	var t *Table
	switch ext := path.Ext(name); ext {
	case ".csv", ".txt":
		t, err = ReadDelimited(r, ',')
	case ".tsv":
		t, err = ReadDelimited(r, '\t')
	case ".xlsx":
		t, err = ReadXLSX(r)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", p)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", p)
	}
	return t, nil
}

// ReadDelimited reads a delimited table whose first record is the header. An
// empty input yields an empty table.
func ReadDelimited(r io.Reader, comma rune) (*Table, error) {
	r, err := bom.NewReaderWithoutBom(r)
	if err != nil {
		return nil, errors.Wrapf(err, "reading delimited input")
	}
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing delimited input")
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	return NewTable(records[0], records[1:])
}

// ReadXLSX reads the first data sheet of a workbook, skipping sheets named
// like metadata (info, readme, ...).
func ReadXLSX(r io.Reader) (*Table, error) {
	content, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrapf(err, "opening workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	sheet := sheets[len(sheets)-1]
	for _, s := range sheets {
		if !skipSheets[strings.ToLower(s)] {
			sheet = s
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %s", sheet)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	// excelize trims trailing empty cells, so only the header width is authoritative
	header := rows[0]
	body := rows[1:]
	for i, row := range body {
		if len(row) > len(header) {
			body[i] = row[:len(header)]
		}
	}
	return NewTable(header, body)
}
