package prep

import (
	"math"
	"sort"
	"strconv"
	"strings"

	spooky "github.com/dgryski/go-spooky"
	"github.com/satdlab/satdprep/golib/errors"
	"github.com/satdlab/satdprep/golib/logging"
	"github.com/satdlab/satdprep/satd/data"
	"go.uber.org/zap"
)

// AggregateOptions names the input columns and controls deduplication.
type AggregateOptions struct {
	IDColumn    string
	TextColumn  string
	LabelColumn string
	Encoding    LabelEncoding
	// KeepFirstPerID keeps only the first (id, text) group of each id.
	KeepFirstPerID bool
	Logger         *zap.Logger
}

// DefaultAggregateOptions returns the column names of the SATD dataset.
func DefaultAggregateOptions() AggregateOptions {
	return AggregateOptions{
		IDColumn:       "satd_id",
		TextColumn:     "v1_comment",
		LabelColumn:    "refactoring_type",
		Encoding:       OneHotEncoding,
		KeepFirstPerID: true,
	}
}

// AggregateStats counts what aggregation dropped and merged.
type AggregateStats struct {
	InputRows      int
	EmptyText      int
	MissingID      int
	Groups         int
	DuplicateIDs   int
	OutputRows     int
	DroppedColumns []string
}

// Aggregated is the deduplicated table: the text column, the summed numeric
// passthrough columns and one count column per label.
type Aggregated struct {
	Frame  *data.Frame
	Labels []string
	Stats  AggregateStats
}

type group struct {
	id, text string
	rows     []int
}

// Aggregate drops rows without text or identifier, encodes the label column,
// groups rows by (identifier, text) summing the encodings and numeric
// passthrough columns, orders groups by identifier then text and drops the
// identifier.
func Aggregate(t *data.Table, opts AggregateOptions) (*Aggregated, error) {
	logger := logging.OrNop(opts.Logger)

	idIdx, err := t.ColumnIndex(opts.IDColumn)
	if err != nil {
		return nil, errors.Wrapf(err, "identifier column")
	}
	textIdx, err := t.ColumnIndex(opts.TextColumn)
	if err != nil {
		return nil, errors.Wrapf(err, "text column")
	}
	labelIdx, err := t.ColumnIndex(opts.LabelColumn)
	if err != nil {
		return nil, errors.Wrapf(err, "label column")
	}

	stats := AggregateStats{InputRows: t.Len()}

	var kept []int
	for i, row := range t.Rows {
		switch {
		case strings.TrimSpace(row[textIdx]) == "":
			stats.EmptyText++
		case strings.TrimSpace(row[idIdx]) == "":
			stats.MissingID++
		default:
			kept = append(kept, i)
		}
	}
	if stats.EmptyText > 0 || stats.MissingID > 0 {
		logger.Info("dropped rows",
			zap.Int("empty_text", stats.EmptyText),
			zap.Int("missing_id", stats.MissingID))
	}

	labelValues := make([]string, len(kept))
	for k, i := range kept {
		labelValues[k] = t.Rows[i][labelIdx]
	}
	encoded := opts.Encoding.Encode(labelValues)

	groups := groupRows(t, kept, idIdx, textIdx)
	sortGroups(groups)
	stats.Groups = len(groups)

	if opts.KeepFirstPerID {
		var unique []*group
		seen := make(map[string]bool)
		for _, g := range groups {
			if seen[g.id] {
				stats.DuplicateIDs++
				continue
			}
			seen[g.id] = true
			unique = append(unique, g)
		}
		groups = unique
	}
	stats.OutputRows = len(groups)

	// kept position of every table row, for indexing the encoded labels
	pos := make(map[int]int, len(kept))
	for k, i := range kept {
		pos[i] = k
	}

	texts := make([]string, len(groups))
	for gi, g := range groups {
		texts[gi] = g.text
	}
	cols := []data.Column{&data.StringColumn{Key: opts.TextColumn, Values: texts}}

	for ci, name := range t.Header {
		if ci == idIdx || ci == textIdx || ci == labelIdx {
			continue
		}
		col, ok := sumPassthrough(t, name, ci, groups)
		if !ok {
			stats.DroppedColumns = append(stats.DroppedColumns, name)
			continue
		}
		cols = append(cols, col)
	}
	if len(stats.DroppedColumns) > 0 {
		logger.Info("dropped non-numeric columns", zap.Strings("columns", stats.DroppedColumns))
	}

	for j, class := range encoded.Classes {
		sums := make([]int64, len(groups))
		for gi, g := range groups {
			for _, r := range g.rows {
				sums[gi] += encoded.Rows[pos[r]][j]
			}
		}
		cols = append(cols, &data.IntColumn{Key: class, Values: sums})
	}

	frame, err := data.NewFrame(cols...)
	if err != nil {
		return nil, err
	}

	logger.Info("aggregated records",
		zap.Int("input_rows", stats.InputRows),
		zap.Int("groups", stats.Groups),
		zap.Int("duplicate_ids", stats.DuplicateIDs),
		zap.Int("output_rows", stats.OutputRows),
		zap.Int("labels", len(encoded.Classes)))

	return &Aggregated{Frame: frame, Labels: encoded.Classes, Stats: stats}, nil
}

// groupRows collects rows by (identifier, text) in first-seen order.
func groupRows(t *data.Table, rows []int, idIdx, textIdx int) []*group {
	var groups []*group
	byHash := make(map[uint64][]*group)
	for _, i := range rows {
		id, text := t.Rows[i][idIdx], t.Rows[i][textIdx]
		h := groupKey(id, text)

		var found *group
		for _, g := range byHash[h] {
			if g.id == id && g.text == text {
				found = g
				break
			}
		}
		if found == nil {
			found = &group{id: id, text: text}
			byHash[h] = append(byHash[h], found)
			groups = append(groups, found)
		}
		found.rows = append(found.rows, i)
	}
	return groups
}

func groupKey(id, text string) uint64 {
	buf := make([]byte, 0, len(id)+len(text)+1)
	buf = append(buf, id...)
	buf = append(buf, 0)
	buf = append(buf, text...)
	return spooky.Hash64(buf)
}

// sortGroups orders by identifier, numerically when every identifier is a
// number, then by text.
func sortGroups(groups []*group) {
	numeric := true
	ids := make(map[string]float64, len(groups))
	for _, g := range groups {
		v, err := strconv.ParseFloat(strings.TrimSpace(g.id), 64)
		if err != nil {
			numeric = false
			break
		}
		ids[g.id] = v
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.id != b.id {
			if numeric && ids[a.id] != ids[b.id] {
				return ids[a.id] < ids[b.id]
			}
			if !numeric {
				return a.id < b.id
			}
		}
		return a.text < b.text
	})
}

// redundant index columns written by earlier dataframe exports
func isIndexColumn(name string) bool {
	return name == "" || name == "index" || strings.HasPrefix(name, "Unnamed:")
}

// sumPassthrough sums a column per group. Only columns whose non-empty values
// are all numbers are kept; they stay integers when every cell is an integer.
func sumPassthrough(t *data.Table, name string, ci int, groups []*group) (data.Column, bool) {
	if isIndexColumn(name) {
		return nil, false
	}

	integer := true
	for _, row := range t.Rows {
		cell := strings.TrimSpace(row[ci])
		if cell == "" {
			integer = false
			continue
		}
		if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
			continue
		}
		integer = false
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return nil, false
		}
	}

	if integer {
		sums := make([]int64, len(groups))
		for gi, g := range groups {
			for _, r := range g.rows {
				v, _ := strconv.ParseInt(strings.TrimSpace(t.Rows[r][ci]), 10, 64)
				sums[gi] += v
			}
		}
		return &data.IntColumn{Key: name, Values: sums}, true
	}

	sums := make([]float64, len(groups))
	for gi, g := range groups {
		for _, r := range g.rows {
			v, err := strconv.ParseFloat(strings.TrimSpace(t.Rows[r][ci]), 64)
			if err != nil || math.IsNaN(v) {
				continue
			}
			sums[gi] += v
		}
	}
	return &data.FloatColumn{Key: name, Values: sums}, true
}
