package summary

import (
	"math"

	"github.com/peekknuf/eda-cli/internal/dataset"
)

// CorrMatrix is a symmetric Pearson correlation matrix over the numeric
// columns of a table. Values is row-major; Values[i][i] is always 1.
// Pairs without enough overlapping rows are NaN.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// Empty reports whether the matrix has fewer than two columns.
func (m *CorrMatrix) Empty() bool {
	return m == nil || len(m.Columns) < 2
}

// CorrelationMatrix computes pairwise Pearson correlations across all
// numeric columns. A row contributes to a pair only when both cells are
// present, so columns with disjoint missing patterns stay comparable.
func CorrelationMatrix(t *dataset.Table) *CorrMatrix {
	var numeric []*dataset.Column
	for _, c := range t.Columns() {
		if c.Kind == dataset.KindNumeric {
			numeric = append(numeric, c)
		}
	}

	m := &CorrMatrix{}
	for _, c := range numeric {
		m.Columns = append(m.Columns, c.Name)
	}
	if len(numeric) < 2 {
		return m
	}

	n := len(numeric)
	m.Values = make([][]float64, n)
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
		m.Values[i][i] = 1
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pearson(numeric[i], numeric[j], t.NumRows())
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pearson(a, b *dataset.Column, nRows int) float64 {
	var n, sumX, sumY, sumXX, sumYY, sumXY float64
	for i := 0; i < nRows; i++ {
		if a.Missing[i] || b.Missing[i] {
			continue
		}
		x, y := a.Floats[i], b.Floats[i]
		n++
		sumX += x
		sumY += y
		sumXX += x * x
		sumYY += y * y
		sumXY += x * y
	}
	if n < 2 {
		return math.NaN()
	}
	den := math.Sqrt(n*sumXX-sumX*sumX) * math.Sqrt(n*sumYY-sumY*sumY)
	if den == 0 {
		return math.NaN()
	}
	return (n*sumXY - sumX*sumY) / den
}
