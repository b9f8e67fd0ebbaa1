// Package quality derives boolean data-quality flags and a weighted-penalty
// quality score from an in-memory table. The analysis is a pure function of
// (table, config): it never mutates the table and the same input always
// produces the same report.
package quality

import (
	"strings"

	"github.com/peekknuf/eda-cli/internal/dataset"
)

// Flags is the fixed set of boolean quality indicators.
type Flags struct {
	HasMissing                   bool
	HasDuplicateRows             bool
	HasConstantColumn            bool
	HasHighCardinalityCategories bool
	HasSuspiciousIDDuplicates    bool
	HasManyZeroValues            bool
}

// ColumnCount pairs a column name with an integer finding.
type ColumnCount struct {
	Column string
	Count  int
}

// ColumnShare pairs a column name with a share in [0,1].
type ColumnShare struct {
	Column string
	Share  float64
}

// Metrics holds the evidence behind each flag. Each flag in Flags is true
// iff its collection here is non-empty (or its scalar count is positive).
type Metrics struct {
	// MissingShares maps every column to its share of missing cells.
	MissingShares map[string]float64
	// DuplicateRowCount counts rows that exactly duplicate an earlier row.
	DuplicateRowCount int
	// ConstantColumns lists columns with exactly one distinct non-missing
	// value. A column of only missing values is not constant; the
	// missingness check already covers it.
	ConstantColumns []string
	// HighCardinalityColumns lists categorical columns whose distinct
	// count exceeds the configured threshold.
	HighCardinalityColumns []ColumnCount
	// SuspiciousIDColumns lists identifier-like columns with duplicated
	// values.
	SuspiciousIDColumns []ColumnCount
	// ManyZeroColumns lists numeric columns whose zero share exceeds the
	// configured threshold.
	ManyZeroColumns []ColumnShare
}

// Report is the complete result of one analysis run.
type Report struct {
	Flags   Flags
	Score   float64
	Metrics Metrics
}

// Flag is one named boolean indicator, used for ordered rendering.
type Flag struct {
	Name string
	Set  bool
}

// OrderedFlags returns the flags under their canonical names, in a stable
// order suitable for rendering.
func (r *Report) OrderedFlags() []Flag {
	return []Flag{
		{"has_missing", r.Flags.HasMissing},
		{"has_duplicate_rows", r.Flags.HasDuplicateRows},
		{"has_constant_column", r.Flags.HasConstantColumn},
		{"has_high_cardinality_categories", r.Flags.HasHighCardinalityCategories},
		{"has_suspicious_id_duplicates", r.Flags.HasSuspiciousIDDuplicates},
		{"has_many_zero_values", r.Flags.HasManyZeroValues},
	}
}

// Analyze runs all quality checks over the table and computes the score.
// It fails only for an invalid config; any data content, including an
// empty table, yields a normal report.
func Analyze(t *dataset.Table, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rep := &Report{
		Metrics: Metrics{MissingShares: make(map[string]float64, t.NumCols())},
	}

	nRows := t.NumRows()

	// Missingness.
	maxMissingShare := 0.0
	for _, c := range t.Columns() {
		share := 0.0
		if nRows > 0 {
			share = float64(c.MissingCount()) / float64(nRows)
		}
		rep.Metrics.MissingShares[c.Name] = share
		if share > maxMissingShare {
			maxMissingShare = share
		}
		if c.MissingCount() > 0 {
			rep.Flags.HasMissing = true
		}
	}

	// Duplicate rows. First occurrence is not a duplicate.
	if nRows > 0 && t.NumCols() > 0 {
		seen := make(map[string]struct{}, nRows)
		for i := 0; i < nRows; i++ {
			key := t.RowKey(i)
			if _, ok := seen[key]; ok {
				rep.Metrics.DuplicateRowCount++
			} else {
				seen[key] = struct{}{}
			}
		}
	}
	rep.Flags.HasDuplicateRows = rep.Metrics.DuplicateRowCount > 0

	// Constant columns.
	for _, c := range t.Columns() {
		if c.NonMissingCount() > 0 && c.DistinctCount() == 1 {
			rep.Metrics.ConstantColumns = append(rep.Metrics.ConstantColumns, c.Name)
		}
	}
	rep.Flags.HasConstantColumn = len(rep.Metrics.ConstantColumns) > 0

	// High-cardinality categorical columns.
	for _, c := range t.Columns() {
		if c.Kind != dataset.KindCategorical {
			continue
		}
		if n := c.DistinctCount(); n > cfg.HighCardinalityThreshold {
			rep.Metrics.HighCardinalityColumns = append(rep.Metrics.HighCardinalityColumns,
				ColumnCount{Column: c.Name, Count: n})
		}
	}
	rep.Flags.HasHighCardinalityCategories = len(rep.Metrics.HighCardinalityColumns) > 0

	// Suspicious duplicates in identifier-like columns. Missing cells
	// compare equal to each other, matching the row-duplicate rule.
	for _, c := range t.Columns() {
		if !strings.Contains(strings.ToLower(c.Name), "id") {
			continue
		}
		if n := duplicateValueCount(c); n > 0 {
			rep.Metrics.SuspiciousIDColumns = append(rep.Metrics.SuspiciousIDColumns,
				ColumnCount{Column: c.Name, Count: n})
		}
	}
	rep.Flags.HasSuspiciousIDDuplicates = len(rep.Metrics.SuspiciousIDColumns) > 0

	// Numeric columns dominated by zeros.
	for _, c := range t.Columns() {
		if c.Kind != dataset.KindNumeric || nRows == 0 {
			continue
		}
		zeros := 0
		for i := range c.Values {
			if !c.Missing[i] && c.Floats[i] == 0 {
				zeros++
			}
		}
		share := float64(zeros) / float64(nRows)
		if share > cfg.ZeroThreshold {
			rep.Metrics.ManyZeroColumns = append(rep.Metrics.ManyZeroColumns,
				ColumnShare{Column: c.Name, Share: share})
		}
	}
	rep.Flags.HasManyZeroValues = len(rep.Metrics.ManyZeroColumns) > 0

	rep.Score = score(rep, t, maxMissingShare)
	return rep, nil
}

// score applies the weighted-penalty model. Each raised flag contributes
// its own penalty; the final score is clamped to [0,1].
func score(rep *Report, t *dataset.Table, maxMissingShare float64) float64 {
	penalty := 0.0

	if rep.Flags.HasMissing {
		penalty += maxMissingShare * 0.3
	}
	if rep.Flags.HasDuplicateRows {
		dupShare := float64(rep.Metrics.DuplicateRowCount) / float64(t.NumRows())
		penalty += min(dupShare*0.5, 0.2)
	}
	if rep.Flags.HasConstantColumn {
		penalty += 0.1 * float64(len(rep.Metrics.ConstantColumns)) / float64(t.NumCols())
	}
	if rep.Flags.HasHighCardinalityCategories {
		penalty += 0.15
	}
	if rep.Flags.HasSuspiciousIDDuplicates {
		penalty += 0.2
	}
	if rep.Flags.HasManyZeroValues {
		penalty += 0.1
	}

	s := 1.0 - penalty
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// duplicateValueCount counts cells that duplicate an earlier cell in the
// same column.
func duplicateValueCount(c *dataset.Column) int {
	seen := make(map[string]struct{}, len(c.Values))
	dups := 0
	for i, v := range c.Values {
		key := "v" + v
		if c.Missing[i] {
			key = "m"
		}
		if _, ok := seen[key]; ok {
			dups++
		} else {
			seen[key] = struct{}{}
		}
	}
	return dups
}
