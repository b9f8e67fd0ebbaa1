package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// missingTokens are the cell values treated as missing markers, matched
// after trimming surrounding whitespace.
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"null": {},
	"NULL": {},
	"NaN":  {},
	"nan":  {},
	"None": {},
}

// maxCategoryLen is the longest trimmed cell still considered categorical.
// Longer text demotes the column to KindOther (free text).
const maxCategoryLen = 64

// Options controls CSV loading.
type Options struct {
	// Delimiter for the file. If 0, auto-detects among ',', ';', '\t'.
	Delimiter rune
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
}

// LoadCSV reads a CSV file into a Table. The first record is the header.
// Ragged rows are padded with missing cells to the header width. Column
// kinds are resolved once here, after all rows are read.
func LoadCSV(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}

	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return NewTable(nil), nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make([]*Column, len(header))
	for i, h := range header {
		cols[i] = &Column{Name: strings.TrimSpace(h)}
	}

	nRows := 0
	for {
		if opt.MaxRows > 0 && nRows >= opt.MaxRows {
			break
		}
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", nRows+1, err)
		}
		nRows++
		for i, c := range cols {
			var v string
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			_, miss := missingTokens[v]
			c.Values = append(c.Values, v)
			c.Missing = append(c.Missing, miss)
		}
	}

	for _, c := range cols {
		resolveKind(c)
	}

	return NewTable(cols), nil
}

// resolveKind assigns the column kind and, for numeric columns, fills the
// parsed float slice. A column is numeric when every non-missing cell
// parses as an int or float literal and at least one such cell exists.
// An all-missing column stays categorical with no values.
func resolveKind(c *Column) {
	numeric := true
	nonMissing := 0
	for i, v := range c.Values {
		if c.Missing[i] {
			continue
		}
		nonMissing++
		if !isIntLiteral(v) && !isFloatLiteral(v) {
			numeric = false
			break
		}
	}

	if numeric && nonMissing > 0 {
		c.Kind = KindNumeric
		c.Floats = make([]float64, len(c.Values))
		for i, v := range c.Values {
			if c.Missing[i] {
				continue
			}
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				// Validators accepted it, so this is unreachable for
				// well-formed input; treat as missing to stay safe.
				c.Missing[i] = true
				continue
			}
			c.Floats[i] = x
		}
		return
	}

	for i, v := range c.Values {
		if !c.Missing[i] && len(v) > maxCategoryLen {
			c.Kind = KindOther
			return
		}
	}
	c.Kind = KindCategorical
}

// isIntLiteral quickly checks if a string is an integer literal.
func isIntLiteral(str string) bool {
	if len(str) == 0 || len(str) > 19 {
		return false
	}
	i := 0
	if str[0] == '-' || str[0] == '+' {
		if len(str) == 1 {
			return false
		}
		i = 1
	}
	for ; i < len(str); i++ {
		c := str[i]
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isFloatLiteral quickly checks if a string is a float literal with a dot
// or exponent.
func isFloatLiteral(str string) bool {
	if len(str) == 0 || len(str) > 25 {
		return false
	}
	hasDot := false
	hasExp := false
	hasDigit := false
	i := 0
	if str[0] == '-' || str[0] == '+' {
		if len(str) == 1 {
			return false
		}
		i = 1
	}
	for ; i < len(str); i++ {
		c := str[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c == '.':
			if hasDot || hasExp {
				return false
			}
			hasDot = true
		case c == 'e' || c == 'E':
			if hasExp || !hasDigit || i == len(str)-1 {
				return false
			}
			hasExp = true
			if str[i+1] == '-' || str[i+1] == '+' {
				i++
				if i == len(str)-1 {
					return false
				}
			}
		default:
			return false
		}
	}
	return hasDigit && (hasDot || hasExp)
}

// sniffDelimiter picks the delimiter with the most occurrences in the
// first line of the file, defaulting to a comma.
func sniffDelimiter(path string) rune {
	f, err := os.Open(path)
	if err != nil {
		return ','
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return ','
	}
	line := sc.Text()

	best := ','
	bestCount := strings.Count(line, ",")
	for _, cand := range []string{";", "\t"} {
		if n := strings.Count(line, cand); n > bestCount {
			bestCount = n
			best = rune(cand[0])
		}
	}
	return best
}
