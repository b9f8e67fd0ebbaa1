package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/peekknuf/eda-cli/internal/dataset"
	"github.com/peekknuf/eda-cli/internal/summary"
)

const histogramBins = 10

// histogram renders a numeric column as a mermaid bar chart so the report
// stays a single self-contained Markdown file.
func histogram(c *dataset.Column) string {
	var vals []float64
	for i := range c.Floats {
		if !c.Missing[i] {
			vals = append(vals, c.Floats[i])
		}
	}
	if len(vals) == 0 {
		return ""
	}

	minV, maxV := vals[0], vals[0]
	for _, v := range vals {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	bins := histogramBins
	if minV == maxV {
		bins = 1
	}
	counts := make([]int, bins)
	width := (maxV - minV) / float64(bins)
	for _, v := range vals {
		idx := 0
		if width > 0 {
			idx = int((v - minV) / width)
			if idx >= bins {
				idx = bins - 1
			}
		}
		counts[idx]++
	}

	labels := make([]string, bins)
	for i := range labels {
		mid := minV
		if width > 0 {
			mid = minV + (float64(i)+0.5)*width
		}
		labels[i] = fmt.Sprintf("\"%.4g\"", mid)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\nxychart-beta\n")
	fmt.Fprintf(&sb, "    title \"%s\"\n", chartSafe(c.Name))
	fmt.Fprintf(&sb, "    x-axis [%s]\n", strings.Join(labels, ", "))
	sb.WriteString("    y-axis \"count\"\n")
	fmt.Fprintf(&sb, "    bar [%s]\n", joinInts(counts))
	sb.WriteString("```\n")
	return sb.String()
}

// categoryBar renders the top values of a categorical column as a mermaid
// bar chart.
func categoryBar(top summary.ColumnTop) string {
	if len(top.Values) == 0 {
		return ""
	}
	labels := make([]string, len(top.Values))
	counts := make([]int, len(top.Values))
	for i, vc := range top.Values {
		labels[i] = fmt.Sprintf("\"%s\"", chartSafe(vc.Value))
		counts[i] = vc.Count
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\nxychart-beta\n")
	fmt.Fprintf(&sb, "    title \"%s\"\n", chartSafe(top.Column))
	fmt.Fprintf(&sb, "    x-axis [%s]\n", strings.Join(labels, ", "))
	sb.WriteString("    y-axis \"count\"\n")
	fmt.Fprintf(&sb, "    bar [%s]\n", joinInts(counts))
	sb.WriteString("```\n")
	return sb.String()
}

// missingBars renders per-column missingness as fixed-width text bars.
func missingBars(rows []summary.MissingColumn) string {
	const cells = 20
	var sb strings.Builder
	sb.WriteString("| Column | Missing | Share |  |\n")
	sb.WriteString("|---|---:|---:|---|\n")
	for _, r := range rows {
		filled := int(math.Round(r.MissingShare * cells))
		if filled == 0 && r.MissingCount > 0 {
			filled = 1
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
		fmt.Fprintf(&sb, "| %s | %d | %.1f%% | `%s` |\n",
			tableSafe(r.Name), r.MissingCount, r.MissingShare*100, bar)
	}
	return sb.String()
}

const missingMatrixMaxRows = 30

// missingMatrix renders a row-by-column map of missing cells for the
// first rows of the table, mirroring the per-column bars with the actual
// positions of the gaps.
func missingMatrix(t *dataset.Table) string {
	rows := t.NumRows()
	if rows > missingMatrixMaxRows {
		rows = missingMatrixMaxRows
	}
	var sb strings.Builder
	sb.WriteString("| Row |")
	for _, c := range t.Columns() {
		fmt.Fprintf(&sb, " %s |", tableSafe(c.Name))
	}
	sb.WriteString("\n|---:|")
	sb.WriteString(strings.Repeat(":---:|", t.NumCols()))
	sb.WriteString("\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "| %d |", i)
		for _, c := range t.Columns() {
			if c.Missing[i] {
				sb.WriteString(" ● |")
			} else {
				sb.WriteString(" · |")
			}
		}
		sb.WriteString("\n")
	}
	if t.NumRows() > rows {
		fmt.Fprintf(&sb, "\nFirst %d of %d rows shown.\n", rows, t.NumRows())
	}
	return sb.String()
}

// correlationTable renders the matrix as a Markdown table.
func correlationTable(m *summary.CorrMatrix) string {
	var sb strings.Builder
	sb.WriteString("| |")
	for _, c := range m.Columns {
		fmt.Fprintf(&sb, " %s |", tableSafe(c))
	}
	sb.WriteString("\n|---|")
	sb.WriteString(strings.Repeat("---:|", len(m.Columns)))
	sb.WriteString("\n")
	for i, c := range m.Columns {
		fmt.Fprintf(&sb, "| **%s** |", tableSafe(c))
		for j := range m.Columns {
			v := m.Values[i][j]
			if math.IsNaN(v) {
				sb.WriteString(" – |")
			} else {
				fmt.Fprintf(&sb, " %.2f |", v)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return strings.Join(parts, ", ")
}

// chartSafe strips characters that break mermaid string literals.
func chartSafe(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.ReplaceAll(s, "\n", " ")
}

// tableSafe keeps cell text from breaking Markdown tables.
func tableSafe(s string) string {
	s = strings.ReplaceAll(s, "|", "/")
	return strings.ReplaceAll(s, "\n", " ")
}
