package summary

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peekknuf/eda-cli/internal/dataset"
)

func sampleTable() *dataset.Table {
	age := &dataset.Column{
		Name:    "age",
		Kind:    dataset.KindNumeric,
		Values:  []string{"10", "20", "30", ""},
		Missing: []bool{false, false, false, true},
		Floats:  []float64{10, 20, 30, 0},
	}
	height := &dataset.Column{
		Name:    "height",
		Kind:    dataset.KindNumeric,
		Values:  []string{"140", "150", "160", "170"},
		Missing: []bool{false, false, false, false},
		Floats:  []float64{140, 150, 160, 170},
	}
	city := &dataset.Column{
		Name:    "city",
		Kind:    dataset.KindCategorical,
		Values:  []string{"A", "B", "A", ""},
		Missing: []bool{false, false, false, true},
	}
	return dataset.NewTable([]*dataset.Column{age, height, city})
}

func TestDescribe(t *testing.T) {
	ds := Describe(sampleTable())

	assert.Equal(t, 4, ds.NRows)
	assert.Equal(t, 3, ds.NCols)
	require.Len(t, ds.Columns, 3)

	age := ds.Columns[0]
	assert.Equal(t, "age", age.Name)
	assert.Equal(t, dataset.KindNumeric, age.Kind)
	assert.Equal(t, 3, age.NonNull)
	assert.InDelta(t, 0.25, age.MissingShare, 1e-9)
	assert.InDelta(t, 10, age.Min, 1e-9)
	assert.InDelta(t, 30, age.Max, 1e-9)
	assert.InDelta(t, 20, age.Mean, 1e-9)
	assert.InDelta(t, 10, age.Std, 1e-9)

	city := ds.Columns[2]
	assert.Equal(t, dataset.KindCategorical, city.Kind)
	assert.Equal(t, 2, city.Distinct)
}

func TestDescribe_EmptyTable(t *testing.T) {
	ds := Describe(dataset.NewTable(nil))
	assert.Zero(t, ds.NRows)
	assert.Zero(t, ds.NCols)
	assert.Empty(t, ds.Columns)
}

func TestMissingTable(t *testing.T) {
	rows := MissingTable(sampleTable())
	require.Len(t, rows, 2)
	assert.Equal(t, "age", rows[0].Name)
	assert.Equal(t, 1, rows[0].MissingCount)
	assert.Equal(t, "city", rows[1].Name)
	assert.InDelta(t, 0.25, rows[1].MissingShare, 1e-9)
}

func TestTopCategories(t *testing.T) {
	tops := TopCategories(sampleTable(), 5, 2)
	require.Len(t, tops, 1)
	assert.Equal(t, "city", tops[0].Column)
	require.Len(t, tops[0].Values, 2)
	assert.Equal(t, ValueCount{Value: "A", Count: 2}, tops[0].Values[0])
	assert.Equal(t, ValueCount{Value: "B", Count: 1}, tops[0].Values[1])
}

func TestTopCategories_TopKLimit(t *testing.T) {
	c := &dataset.Column{
		Name:    "c",
		Kind:    dataset.KindCategorical,
		Values:  []string{"x", "y", "z", "x"},
		Missing: make([]bool, 4),
	}
	tops := TopCategories(dataset.NewTable([]*dataset.Column{c}), 0, 1)
	require.Len(t, tops, 1)
	assert.Equal(t, []ValueCount{{Value: "x", Count: 2}}, tops[0].Values)
}

func TestCorrelationMatrix(t *testing.T) {
	m := CorrelationMatrix(sampleTable())
	require.False(t, m.Empty())
	assert.Equal(t, []string{"age", "height"}, m.Columns)

	// age and height rise together over the overlapping rows.
	r := m.Values[0][1]
	assert.InDelta(t, 1.0, r, 1e-9)
	assert.Equal(t, m.Values[0][1], m.Values[1][0])
	assert.Equal(t, 1.0, m.Values[0][0])
}

func TestCorrelationMatrix_TooFewNumericColumns(t *testing.T) {
	city := &dataset.Column{
		Name:    "city",
		Kind:    dataset.KindCategorical,
		Values:  []string{"A", "B"},
		Missing: make([]bool, 2),
	}
	m := CorrelationMatrix(dataset.NewTable([]*dataset.Column{city}))
	assert.True(t, m.Empty())
}

func TestCorrelationMatrix_ConstantColumnIsNaN(t *testing.T) {
	a := &dataset.Column{
		Name:    "a",
		Kind:    dataset.KindNumeric,
		Values:  []string{"1", "1", "1"},
		Missing: make([]bool, 3),
		Floats:  []float64{1, 1, 1},
	}
	b := &dataset.Column{
		Name:    "b",
		Kind:    dataset.KindNumeric,
		Values:  []string{"1", "2", "3"},
		Missing: make([]bool, 3),
		Floats:  []float64{1, 2, 3},
	}
	m := CorrelationMatrix(dataset.NewTable([]*dataset.Column{a, b}))
	assert.True(t, math.IsNaN(m.Values[0][1]))
}
