// Package report renders a full EDA report for a table: a Markdown file
// with embedded mermaid charts plus CSV artifacts for the summary,
// missingness, correlation and top-category tables.
package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/peekknuf/eda-cli/internal/dataset"
	"github.com/peekknuf/eda-cli/internal/quality"
	"github.com/peekknuf/eda-cli/internal/summary"
)

// Params controls report generation.
type Params struct {
	Title           string
	Source          string
	MaxHistColumns  int
	TopKCategories  int
	MinMissingShare float64
}

// Steps is the number of progress steps a Write call reports.
const Steps = 5

// Writer renders reports into an output directory.
type Writer struct {
	OutDir string
	// Progress, when set, is called after each completed step.
	Progress func()
}

func (w *Writer) step() {
	if w.Progress != nil {
		w.Progress()
	}
}

// Write generates report.md and all tabular artifacts. It returns the path
// of the Markdown report.
func (w *Writer) Write(t *dataset.Table, q *quality.Report, p Params) (string, error) {
	if err := os.MkdirAll(w.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	ds := summary.Describe(t)
	missing := summary.MissingTable(t)
	corr := summary.CorrelationMatrix(t)
	topCats := summary.TopCategories(t, 0, p.TopKCategories)
	w.step()

	if err := w.writeSummaryCSV(ds); err != nil {
		return "", err
	}
	w.step()

	if len(missing) > 0 {
		if err := w.writeMissingCSV(missing); err != nil {
			return "", err
		}
	}
	if !corr.Empty() {
		if err := w.writeCorrelationCSV(corr); err != nil {
			return "", err
		}
	}
	w.step()

	if err := w.writeTopCategories(topCats); err != nil {
		return "", err
	}
	w.step()

	mdPath := filepath.Join(w.OutDir, "report.md")
	md := renderMarkdown(t, ds, q, missing, corr, topCats, p)
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("write report.md: %w", err)
	}
	w.step()

	return mdPath, nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.OutDir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	for _, r := range rows {
		if err := cw.Write(r); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (w *Writer) writeSummaryCSV(ds *summary.DatasetSummary) error {
	rows := make([][]string, 0, len(ds.Columns))
	for _, c := range ds.Columns {
		row := []string{
			c.Name, c.Kind.String(),
			strconv.Itoa(c.NonNull),
			fmt.Sprintf("%.4f", c.MissingShare),
			strconv.Itoa(c.Distinct),
		}
		if c.Kind == dataset.KindNumeric && c.NonNull > 0 {
			row = append(row,
				formatFloat(c.Min), formatFloat(c.Max),
				formatFloat(c.Mean), formatFloat(c.Std))
		} else {
			row = append(row, "", "", "", "")
		}
		rows = append(rows, row)
	}
	return w.writeCSV("summary.csv",
		[]string{"name", "kind", "non_null", "missing_share", "distinct", "min", "max", "mean", "std"},
		rows)
}

func (w *Writer) writeMissingCSV(missing []summary.MissingColumn) error {
	rows := make([][]string, 0, len(missing))
	for _, m := range missing {
		rows = append(rows, []string{
			m.Name, strconv.Itoa(m.MissingCount), fmt.Sprintf("%.4f", m.MissingShare),
		})
	}
	return w.writeCSV("missing.csv", []string{"name", "missing_count", "missing_share"}, rows)
}

func (w *Writer) writeCorrelationCSV(m *summary.CorrMatrix) error {
	rows := make([][]string, 0, len(m.Columns))
	for i, name := range m.Columns {
		row := []string{name}
		for j := range m.Columns {
			if math.IsNaN(m.Values[i][j]) {
				row = append(row, "")
			} else {
				row = append(row, fmt.Sprintf("%.6f", m.Values[i][j]))
			}
		}
		rows = append(rows, row)
	}
	return w.writeCSV("correlation.csv", append([]string{""}, m.Columns...), rows)
}

func (w *Writer) writeTopCategories(tops []summary.ColumnTop) error {
	if len(tops) == 0 {
		return nil
	}
	dir := filepath.Join(w.OutDir, "top_categories")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create top_categories dir: %w", err)
	}
	// Sanitized stems can collide ("a b" and "a_b" both map to "a_b"),
	// so repeats get a numeric suffix.
	seen := make(map[string]int, len(tops))
	for _, top := range tops {
		rows := make([][]string, 0, len(top.Values))
		for _, vc := range top.Values {
			rows = append(rows, []string{vc.Value, strconv.Itoa(vc.Count)})
		}
		stem := fileSafe(top.Column)
		seen[stem]++
		if n := seen[stem]; n > 1 {
			stem = fmt.Sprintf("%s_%d", stem, n)
		}
		name := filepath.Join("top_categories", stem+".csv")
		if err := w.writeCSV(name, []string{"value", "count"}, rows); err != nil {
			return err
		}
	}
	return nil
}

func renderMarkdown(t *dataset.Table, ds *summary.DatasetSummary, q *quality.Report,
	missing []summary.MissingColumn, corr *summary.CorrMatrix,
	topCats []summary.ColumnTop, p Params) string {

	var sb strings.Builder

	title := p.Title
	if title == "" {
		title = "EDA Report"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if p.Source != "" {
		fmt.Fprintf(&sb, "Source file: `%s`\n\n", p.Source)
	}
	fmt.Fprintf(&sb, "Rows: **%s**, columns: **%d**\n\n",
		humanize.Comma(int64(ds.NRows)), ds.NCols)

	sb.WriteString("## Data quality\n\n")
	fmt.Fprintf(&sb, "Quality score: **%.2f**\n\n", q.Score)
	for _, f := range q.OrderedFlags() {
		mark := " "
		if f.Set {
			mark = "x"
		}
		fmt.Fprintf(&sb, "- [%s] `%s`\n", mark, f.Name)
	}
	sb.WriteString("\n")
	writeQualityEvidence(&sb, q)

	sb.WriteString("## Columns\n\n")
	sb.WriteString("| Column | Kind | Non-null | Missing | Distinct | Min | Max | Mean | Std |\n")
	sb.WriteString("|---|---|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, c := range ds.Columns {
		if c.Kind == dataset.KindNumeric && c.NonNull > 0 {
			fmt.Fprintf(&sb, "| %s | %s | %d | %.1f%% | %d | %s | %s | %s | %s |\n",
				tableSafe(c.Name), c.Kind, c.NonNull, c.MissingShare*100, c.Distinct,
				formatFloat(c.Min), formatFloat(c.Max), formatFloat(c.Mean), formatFloat(c.Std))
		} else {
			fmt.Fprintf(&sb, "| %s | %s | %d | %.1f%% | %d | | | | |\n",
				tableSafe(c.Name), c.Kind, c.NonNull, c.MissingShare*100, c.Distinct)
		}
	}
	sb.WriteString("\nFull table in `summary.csv`.\n\n")

	sb.WriteString("## Missing values\n\n")
	if len(missing) == 0 {
		sb.WriteString("No missing values.\n\n")
	} else {
		sb.WriteString(missingBars(missing))
		highlightMissing(&sb, missing, p.MinMissingShare)
		sb.WriteString("\n### Matrix\n\n")
		sb.WriteString(missingMatrix(t))
		sb.WriteString("\nDetails in `missing.csv`.\n\n")
	}

	sb.WriteString("## Correlation of numeric columns\n\n")
	if corr.Empty() {
		sb.WriteString("Not enough numeric columns for correlation.\n\n")
	} else {
		sb.WriteString(correlationTable(corr))
		sb.WriteString("\nDetails in `correlation.csv`.\n\n")
	}

	sb.WriteString("## Categorical columns\n\n")
	if len(topCats) == 0 {
		sb.WriteString("No categorical columns found.\n\n")
	} else {
		for _, top := range topCats {
			fmt.Fprintf(&sb, "### %s\n\n", tableSafe(top.Column))
			sb.WriteString(categoryBar(top))
			sb.WriteString("\n")
		}
		sb.WriteString("Per-column tables in `top_categories/`.\n\n")
	}

	sb.WriteString("## Histograms\n\n")
	histCount := 0
	for _, c := range t.Columns() {
		if c.Kind != dataset.KindNumeric {
			continue
		}
		if p.MaxHistColumns > 0 && histCount >= p.MaxHistColumns {
			break
		}
		if h := histogram(c); h != "" {
			sb.WriteString(h)
			sb.WriteString("\n")
			histCount++
		}
	}
	if histCount == 0 {
		sb.WriteString("No numeric columns to plot.\n")
	}

	return sb.String()
}

func writeQualityEvidence(sb *strings.Builder, q *quality.Report) {
	m := q.Metrics
	if q.Flags.HasDuplicateRows {
		fmt.Fprintf(sb, "Duplicate rows: **%d**\n\n", m.DuplicateRowCount)
	}
	if q.Flags.HasConstantColumn {
		fmt.Fprintf(sb, "Constant columns: `%s`\n\n", strings.Join(m.ConstantColumns, "`, `"))
	}
	if q.Flags.HasHighCardinalityCategories {
		for _, cc := range m.HighCardinalityColumns {
			fmt.Fprintf(sb, "- `%s` has %d distinct values\n", cc.Column, cc.Count)
		}
		sb.WriteString("\n")
	}
	if q.Flags.HasSuspiciousIDDuplicates {
		for _, cc := range m.SuspiciousIDColumns {
			fmt.Fprintf(sb, "- `%s` has %d duplicated identifiers\n", cc.Column, cc.Count)
		}
		sb.WriteString("\n")
	}
	if q.Flags.HasManyZeroValues {
		for _, cs := range m.ManyZeroColumns {
			fmt.Fprintf(sb, "- `%s` is %.1f%% zeros\n", cs.Column, cs.Share*100)
		}
		sb.WriteString("\n")
	}
}

func highlightMissing(sb *strings.Builder, missing []summary.MissingColumn, minShare float64) {
	if minShare <= 0 {
		return
	}
	var bad []string
	for _, m := range missing {
		if m.MissingShare >= minShare {
			bad = append(bad, m.Name)
		}
	}
	if len(bad) > 0 {
		fmt.Fprintf(sb, "\nColumns with missing share ≥ %.0f%%: `%s`\n",
			minShare*100, strings.Join(bad, "`, `"))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// fileSafe turns a column name into a safe file stem.
func fileSafe(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "column"
	}
	return sb.String()
}
