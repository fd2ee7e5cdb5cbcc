package prep

import (
	"fmt"
	"sort"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
)

// Report summarizes a pipeline run.
type Report struct {
	Aggregate  AggregateStats
	Labels     []string
	Clean      CleanStats
	Vocabulary int
	Train      int
	Test       int
	// Written maps artifact names to their size in bytes.
	Written map[string]int64
}

// Log writes the report as one structured entry.
func (r *Report) Log(logger *zap.Logger) {
	logger.Info("run complete",
		zap.Int("input_rows", r.Aggregate.InputRows),
		zap.Int("empty_text", r.Aggregate.EmptyText),
		zap.Int("records", r.Aggregate.OutputRows),
		zap.Strings("labels", r.Labels),
		zap.Int("degraded", r.Clean.Degraded),
		zap.Float64("median_tokens", r.Clean.Tokens.Median),
		zap.Float64("p95_tokens", r.Clean.Tokens.P95),
		zap.Int("vocabulary", r.Vocabulary),
		zap.Int("train", r.Train),
		zap.Int("test", r.Test),
		zap.String("written", humanize.Bytes(uint64(r.totalWritten()))))
}

func (r *Report) totalWritten() int64 {
	var total int64
	for _, n := range r.Written {
		total += n
	}
	return total
}

// String renders the report for people.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "records: %d of %d input rows (%d without text, %d duplicate ids)\n",
		r.Aggregate.OutputRows, r.Aggregate.InputRows, r.Aggregate.EmptyText, r.Aggregate.DuplicateIDs)
	fmt.Fprintf(&b, "labels: %s\n", strings.Join(r.Labels, ", "))
	fmt.Fprintf(&b, "degraded texts: %d, tokens per record: mean %.1f, max %.0f\n",
		r.Clean.Degraded, r.Clean.Tokens.Mean, r.Clean.Tokens.Max)
	fmt.Fprintf(&b, "vocabulary: %d terms\n", r.Vocabulary)
	fmt.Fprintf(&b, "split: %d train, %d test\n", r.Train, r.Test)

	if len(r.Written) == 0 {
		return b.String()
	}
	names := make([]string, 0, len(r.Written))
	for n := range r.Written {
		names = append(names, n)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"artifact", "size"})
	table.SetAutoFormatHeaders(false)
	for _, n := range names {
		table.Append([]string{n, humanize.Bytes(uint64(r.Written[n]))})
	}
	table.Render()
	return b.String()
}
