package data

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/satdlab/satdprep/golib/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = "\ufeffsatd_id,v1_comment,refactoring_type\n" +
	"1,\"Fix the bug!!\",Bug Fix\n" +
	"1,\"Fix the bug!!\",Rename\n" +
	"2,\"multi\nline, quoted\"\n"

func TestReadDelimited(t *testing.T) {
	table, err := ReadDelimited(strings.NewReader(sampleCSV), ',')
	require.NoError(t, err)

	assert.Equal(t, []string{"satd_id", "v1_comment", "refactoring_type"}, table.Header)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"2", "multi\nline, quoted", ""}, table.Rows[2])

	labels, err := table.Column("refactoring_type")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bug Fix", "Rename", ""}, labels)

	_, err = table.Column("nope")
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestNewTableStripsBOM(t *testing.T) {
	table, err := NewTable([]string{"\ufeffsatd_id", "v1_comment"}, [][]string{{"1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"satd_id", "v1_comment"}, table.Header)
	assert.Equal(t, [][]string{{"1", ""}}, table.Rows)

	table, err = ReadDelimited(strings.NewReader("\ufeffa\tb\n1\t2\n"), '\t')
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Header)
}

func TestReadDelimitedRagged(t *testing.T) {
	_, err := ReadDelimited(strings.NewReader("a,b\n1,2,3\n"), ',')
	assert.True(t, errors.Is(err, ErrRaggedRow))
}

func TestReadDelimitedEmpty(t *testing.T) {
	table, err := ReadDelimited(strings.NewReader(""), ',')
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())

	table, err = ReadDelimited(strings.NewReader("a\tb\n"), '\t')
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Header)
	assert.Equal(t, 0, table.Len())
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in/data.csv", []byte(sampleCSV), 0644))
	require.NoError(t, afero.WriteFile(fs, "/in/data.tsv", []byte("a\tb\n1\t2\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/in/data.json", []byte("{}"), 0644))

	table, err := Load(fs, "/in/data.csv")
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	table, err = Load(fs, "/in/data.tsv")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}}, table.Rows)

	_, err = Load(fs, "/in/data.json")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = Load(fs, "/in/missing.csv")
	assert.Error(t, err)
}

func TestLoadGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in/data.CSV.gz", buf.Bytes(), 0644))

	table, err := Load(fs, "/in/data.CSV.gz")
	require.NoError(t, err)
	assert.Equal(t, "satd_id", table.Header[0])
	assert.Equal(t, 3, table.Len())

	require.NoError(t, afero.WriteFile(fs, "/in/plain.csv.gz", []byte(sampleCSV), 0644))
	_, err = Load(fs, "/in/plain.csv.gz")
	assert.Error(t, err)
}

func TestLoadXLSX(t *testing.T) {
	wb := excelize.NewFile()
	defer wb.Close()

	// the default sheet is renamed to a metadata name and skipped
	require.NoError(t, wb.SetSheetName("Sheet1", "README"))
	_, err := wb.NewSheet("comments")
	require.NoError(t, err)
	require.NoError(t, wb.SetSheetRow("comments", "A1", &[]interface{}{"satd_id", "v1_comment", "refactoring_type"}))
	require.NoError(t, wb.SetSheetRow("comments", "A2", &[]interface{}{1, "Fix the bug!!", "Bug Fix"}))
	require.NoError(t, wb.SetSheetRow("comments", "A3", &[]interface{}{2, "no label"}))

	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in/data.xlsx", buf.Bytes(), 0644))

	table, err := Load(fs, "/in/data.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"satd_id", "v1_comment", "refactoring_type"}, table.Header)
	assert.Equal(t, [][]string{
		{"1", "Fix the bug!!", "Bug Fix"},
		{"2", "no label", ""},
	}, table.Rows)

	_, err = ReadXLSX(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}

func TestTableFrame(t *testing.T) {
	table, err := ReadDelimited(strings.NewReader("a,b\n1,x\n2,y\n"), ',')
	require.NoError(t, err)

	f := table.Frame()
	assert.Equal(t, []int{0, 1}, f.Index)
	assert.Equal(t, []string{"a", "b"}, f.Names())
	col, err := f.Column("b")
	require.NoError(t, err)
	assert.Equal(t, "y", col.Format(1))
}
