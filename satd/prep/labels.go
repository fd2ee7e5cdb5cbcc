package prep

import (
	"sort"
	"strings"
	"unicode"

	"github.com/satdlab/satdprep/satd/data"
)

// LabelEncoding selects how a label cell turns into label columns.
type LabelEncoding string

const (
	// OneHotEncoding treats the whole cell as one category.
	OneHotEncoding LabelEncoding = "onehot"
	// MultiLabelEncoding splits the cell into comma separated labels.
	MultiLabelEncoding LabelEncoding = "multi"
)

// LabelMatrix is a 0/1 indicator table, one column per class.
type LabelMatrix struct {
	Classes []string
	Rows    [][]int64
}

// ParseLabels removes every whitespace character from s, splits it on commas
// and discards empty labels.
func ParseLabels(s string) []string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	var labels []string
	for _, l := range strings.Split(compact, ",") {
		if l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

// BinarizeLabels encodes label lists such as "Extract Method, Rename" as one
// indicator column per distinct label, classes sorted.
func BinarizeLabels(values []string) *LabelMatrix {
	parsed := make([][]string, len(values))
	for i, v := range values {
		parsed[i] = ParseLabels(v)
	}
	return indicators(parsed)
}

// OneHot encodes each value as a single category, one indicator column per
// distinct non-empty value, classes sorted. Empty values get no indicator.
func OneHot(values []string) *LabelMatrix {
	parsed := make([][]string, len(values))
	for i, v := range values {
		if v != "" {
			parsed[i] = []string{v}
		}
	}
	return indicators(parsed)
}

// Encode applies the encoding to values.
func (e LabelEncoding) Encode(values []string) *LabelMatrix {
	if e == MultiLabelEncoding {
		return BinarizeLabels(values)
	}
	return OneHot(values)
}

func indicators(parsed [][]string) *LabelMatrix {
	seen := make(map[string]struct{})
	for _, labels := range parsed {
		for _, l := range labels {
			seen[l] = struct{}{}
		}
	}
	classes := make([]string, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	col := make(map[string]int, len(classes))
	for i, c := range classes {
		col[c] = i
	}

	rows := make([][]int64, len(parsed))
	for i, labels := range parsed {
		rows[i] = make([]int64, len(classes))
		for _, l := range labels {
			rows[i][col[l]] = 1
		}
	}
	return &LabelMatrix{Classes: classes, Rows: rows}
}

// Columns returns one integer column per class.
func (m *LabelMatrix) Columns() []data.Column {
	cols := make([]data.Column, len(m.Classes))
	for j, c := range m.Classes {
		vals := make([]int64, len(m.Rows))
		for i, row := range m.Rows {
			vals[i] = row[j]
		}
		cols[j] = &data.IntColumn{Key: c, Values: vals}
	}
	return cols
}

// Frame returns the matrix as a frame with the index 0..n-1.
func (m *LabelMatrix) Frame() *data.Frame {
	index := make([]int, len(m.Rows))
	for i := range index {
		index[i] = i
	}
	return &data.Frame{Index: index, Columns: m.Columns()}
}
