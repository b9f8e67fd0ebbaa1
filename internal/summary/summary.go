// Package summary computes descriptive statistics over a loaded table:
// per-column summaries, a missingness table, top categories, and a Pearson
// correlation matrix across numeric columns.
package summary

import (
	"math"
	"sort"

	"github.com/peekknuf/eda-cli/internal/dataset"
)

// ValueCount is one categorical value and how often it appears.
type ValueCount struct {
	Value string
	Count int
}

// ColumnSummary describes a single column.
type ColumnSummary struct {
	Name         string
	Kind         dataset.Kind
	NonNull      int
	MissingCount int
	MissingShare float64
	Distinct     int

	// Numeric statistics, valid when Kind is numeric and NonNull > 0.
	Min  float64
	Max  float64
	Mean float64
	Std  float64
}

// DatasetSummary describes the whole table.
type DatasetSummary struct {
	NRows   int
	NCols   int
	Columns []ColumnSummary
}

// Describe computes the per-column summary for every column in file order.
func Describe(t *dataset.Table) *DatasetSummary {
	ds := &DatasetSummary{
		NRows:   t.NumRows(),
		NCols:   t.NumCols(),
		Columns: make([]ColumnSummary, 0, t.NumCols()),
	}

	for _, c := range t.Columns() {
		cs := ColumnSummary{
			Name:         c.Name,
			Kind:         c.Kind,
			NonNull:      c.NonMissingCount(),
			MissingCount: c.MissingCount(),
			Distinct:     c.DistinctCount(),
		}
		if ds.NRows > 0 {
			cs.MissingShare = float64(cs.MissingCount) / float64(ds.NRows)
		}
		if c.Kind == dataset.KindNumeric && cs.NonNull > 0 {
			cs.Min, cs.Max, cs.Mean, cs.Std = numericStats(c)
		}
		ds.Columns = append(ds.Columns, cs)
	}
	return ds
}

// numericStats returns min, max, mean and sample standard deviation over
// the non-missing cells, using Welford's update for numerical stability.
func numericStats(c *dataset.Column) (minV, maxV, mean, std float64) {
	minV = math.Inf(1)
	maxV = math.Inf(-1)
	n := 0
	m2 := 0.0
	for i := range c.Floats {
		if c.Missing[i] {
			continue
		}
		x := c.Floats[i]
		if x < minV {
			minV = x
		}
		if x > maxV {
			maxV = x
		}
		n++
		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)
	}
	if n > 1 {
		std = math.Sqrt(m2 / float64(n-1))
	}
	return minV, maxV, mean, std
}

// MissingColumn is one row of the missingness table.
type MissingColumn struct {
	Name         string
	MissingCount int
	MissingShare float64
}

// MissingTable lists columns that contain at least one missing value,
// in file order.
func MissingTable(t *dataset.Table) []MissingColumn {
	var out []MissingColumn
	for _, c := range t.Columns() {
		n := c.MissingCount()
		if n == 0 {
			continue
		}
		share := 0.0
		if t.NumRows() > 0 {
			share = float64(n) / float64(t.NumRows())
		}
		out = append(out, MissingColumn{Name: c.Name, MissingCount: n, MissingShare: share})
	}
	return out
}

// ColumnTop holds the most frequent values of one categorical column.
type ColumnTop struct {
	Column string
	Values []ValueCount
}

// TopCategories returns the top-k values for up to maxColumns categorical
// columns. Ties break by value so repeated runs produce identical output.
func TopCategories(t *dataset.Table, maxColumns, topK int) []ColumnTop {
	var out []ColumnTop
	for _, c := range t.Columns() {
		if c.Kind != dataset.KindCategorical {
			continue
		}
		if maxColumns > 0 && len(out) >= maxColumns {
			break
		}

		counts := make(map[string]int)
		for i, v := range c.Values {
			if !c.Missing[i] {
				counts[v]++
			}
		}
		if len(counts) == 0 {
			continue
		}

		vals := make([]ValueCount, 0, len(counts))
		for v, n := range counts {
			vals = append(vals, ValueCount{Value: v, Count: n})
		}
		sort.Slice(vals, func(i, j int) bool {
			if vals[i].Count != vals[j].Count {
				return vals[i].Count > vals[j].Count
			}
			return vals[i].Value < vals[j].Value
		})
		if topK > 0 && len(vals) > topK {
			vals = vals[:topK]
		}
		out = append(out, ColumnTop{Column: c.Name, Values: vals})
	}
	return out
}
