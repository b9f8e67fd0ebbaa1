package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV_Kinds(t *testing.T) {
	path := writeCSV(t, `age,height,city,notes
10,140,A,short
20,150,B,some
30,160,A,more
,170,,text`)

	tbl, err := LoadCSV(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, 4, tbl.NumRows())
	assert.Equal(t, 4, tbl.NumCols())

	age := tbl.Column("age")
	require.NotNil(t, age)
	assert.Equal(t, KindNumeric, age.Kind)
	assert.Equal(t, 1, age.MissingCount())
	assert.Equal(t, []float64{10, 20, 30, 0}, age.Floats)

	city := tbl.Column("city")
	require.NotNil(t, city)
	assert.Equal(t, KindCategorical, city.Kind)
	assert.Equal(t, 2, city.DistinctCount())
}

func TestLoadCSV_MissingTokens(t *testing.T) {
	path := writeCSV(t, `a,b
1,x
NA,null
NaN,None
4,N/A`)

	tbl, err := LoadCSV(path, Options{})
	require.NoError(t, err)

	a := tbl.Column("a")
	assert.Equal(t, KindNumeric, a.Kind)
	assert.Equal(t, 2, a.MissingCount())

	b := tbl.Column("b")
	assert.Equal(t, KindCategorical, b.Kind)
	assert.Equal(t, 3, b.MissingCount())
	assert.Equal(t, 1, b.DistinctCount())
}

func TestLoadCSV_MixedColumnIsNotNumeric(t *testing.T) {
	path := writeCSV(t, `v
1
2
oops`)

	tbl, err := LoadCSV(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, KindCategorical, tbl.Column("v").Kind)
	assert.Nil(t, tbl.Column("v").Floats)
}

func TestLoadCSV_FloatsAndExponents(t *testing.T) {
	path := writeCSV(t, `v
1.5
-2.25
3e2
+0.5`)

	tbl, err := LoadCSV(path, Options{})
	require.NoError(t, err)
	v := tbl.Column("v")
	assert.Equal(t, KindNumeric, v.Kind)
	assert.Equal(t, []float64{1.5, -2.25, 300, 0.5}, v.Floats)
}

func TestLoadCSV_SniffsSemicolon(t *testing.T) {
	path := writeCSV(t, "a;b\n1;2\n3;4\n")

	tbl, err := LoadCSV(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumCols())
	assert.Equal(t, KindNumeric, tbl.Column("b").Kind)
}

func TestLoadCSV_RaggedRowsArePadded(t *testing.T) {
	path := writeCSV(t, "a,b,c\n1,2\n3,4,5\n")

	tbl, err := LoadCSV(path, Options{})
	require.NoError(t, err)
	c := tbl.Column("c")
	assert.Equal(t, 1, c.MissingCount())
}

func TestLoadCSV_MaxRows(t *testing.T) {
	path := writeCSV(t, "a\n1\n2\n3\n4\n")

	tbl, err := LoadCSV(path, Options{MaxRows: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
}

func TestLoadCSV_MaxRowsStopsReading(t *testing.T) {
	// A malformed row past the limit must never be reached.
	path := writeCSV(t, "a\n1\n2\n\"broken\n")

	tbl, err := LoadCSV(path, Options{MaxRows: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	tbl, err := LoadCSV(path, Options{})
	require.NoError(t, err)
	assert.Zero(t, tbl.NumRows())
	assert.Zero(t, tbl.NumCols())
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	assert.Error(t, err)
}

func TestRowKey_MissingNeverEqualsValue(t *testing.T) {
	a := &Column{Name: "a", Values: []string{"", ""}, Missing: []bool{true, false}}
	tbl := NewTable([]*Column{a})
	assert.NotEqual(t, tbl.RowKey(0), tbl.RowKey(1))
}

func TestRowKey_CellBoundariesCannotShift(t *testing.T) {
	// The same bytes split differently across two columns must not
	// produce the same key, even when cells contain control characters.
	a := &Column{Name: "a", Values: []string{"x\x1f", "x"}, Missing: []bool{false, false}}
	b := &Column{Name: "b", Values: []string{"y", "\x1fy"}, Missing: []bool{false, false}}
	tbl := NewTable([]*Column{a, b})
	assert.NotEqual(t, tbl.RowKey(0), tbl.RowKey(1))

	// Identical rows still collide.
	c := &Column{Name: "a", Values: []string{"x", "x"}, Missing: []bool{false, false}}
	d := &Column{Name: "b", Values: []string{"y", "y"}, Missing: []bool{false, false}}
	tbl2 := NewTable([]*Column{c, d})
	assert.Equal(t, tbl2.RowKey(0), tbl2.RowKey(1))
}
