package dataset

import (
	"strconv"
	"strings"
)

// Kind classifies the semantic type of a column. It is resolved once when
// the table is loaded so downstream checks never re-probe cell values.
type Kind int

const (
	KindNumeric Kind = iota
	KindCategorical
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCategorical:
		return "categorical"
	default:
		return "other"
	}
}

// Column is a single named column of a table. Values holds the raw cell
// text, Missing marks cells that carried a missing-value token, and for
// numeric columns Floats holds the parsed value for every non-missing cell
// (entries for missing cells are zero and must not be read).
type Column struct {
	Name    string
	Kind    Kind
	Values  []string
	Missing []bool
	Floats  []float64
}

// MissingCount returns the number of missing cells in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, m := range c.Missing {
		if m {
			n++
		}
	}
	return n
}

// NonMissingCount returns the number of cells holding a real value.
func (c *Column) NonMissingCount() int {
	return len(c.Values) - c.MissingCount()
}

// DistinctCount returns the number of distinct non-missing values.
func (c *Column) DistinctCount() int {
	seen := make(map[string]struct{}, len(c.Values))
	for i, v := range c.Values {
		if c.Missing[i] {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Table is an ordered set of equally long columns. It is immutable after
// loading; analyzers only read it.
type Table struct {
	cols  []*Column
	nRows int
}

// NewTable builds a table from pre-populated columns. All columns must have
// the same length; the row count is taken from the first column.
func NewTable(cols []*Column) *Table {
	t := &Table{cols: cols}
	if len(cols) > 0 {
		t.nRows = len(cols[0].Values)
	}
	return t
}

func (t *Table) NumRows() int { return t.nRows }

func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns the columns in file order.
func (t *Table) Columns() []*Column { return t.cols }

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.cols {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// RowKey returns a comparison key for row i. Two rows are exact duplicates
// iff their keys are equal. Each cell is length-prefixed so cell contents
// cannot shift bytes across cell boundaries, and missing cells get a
// marker that no prefixed value can start with.
func (t *Table) RowKey(i int) string {
	var sb strings.Builder
	for _, c := range t.cols {
		if c.Missing[i] {
			sb.WriteString("m;")
			continue
		}
		sb.WriteString(strconv.Itoa(len(c.Values[i])))
		sb.WriteByte(':')
		sb.WriteString(c.Values[i])
	}
	return sb.String()
}
