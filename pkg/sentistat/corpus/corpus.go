// Package corpus loads the annotated spreadsheet into an in-memory table.
package corpus

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrColumnNotFound is returned when a column spec matches neither a
	// header name nor a valid position.
	ErrColumnNotFound = errors.New("corpus: column not found")
	// ErrUnsupportedFormat is returned for input files with an unknown extension.
	ErrUnsupportedFormat = errors.New("corpus: unsupported input format")
)

// ColumnSpec addresses a column by header name, falling back to its position.
type ColumnSpec struct {
	Name  string `yaml:"name" json:"name"`
	Index int    `yaml:"index" json:"index"`
}

func (c ColumnSpec) String() string {
	if c.Name != "" {
		return fmt.Sprintf("%s(#%d)", c.Name, c.Index)
	}
	return fmt.Sprintf("#%d", c.Index)
}

// Table is the header row plus the non-blank data rows of one sheet.
type Table struct {
	Source string
	Header []string
	Rows   [][]string
}

// NewTable builds a table from raw rows: the first skipRows rows are
// dropped, the next row becomes the header and fully blank rows are removed.
func NewTable(source string, raw [][]string, skipRows int) (*Table, error) {
	if skipRows < 0 {
		skipRows = 0
	}
	if len(raw) <= skipRows {
		return nil, fmt.Errorf("corpus: %s has no header row after skipping %d rows", source, skipRows)
	}
	header := make([]string, len(raw[skipRows]))
	for i, h := range raw[skipRows] {
		header[i] = strings.TrimSpace(h)
	}
	t := &Table{Source: source, Header: header}
	for _, row := range raw[skipRows+1:] {
		if blank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Shape returns the number of data rows and the width of the widest row.
func (t *Table) Shape() (rows, cols int) {
	cols = len(t.Header)
	for _, r := range t.Rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return len(t.Rows), cols
}

// Resolve returns the position a column spec refers to in this table.
func (t *Table) Resolve(spec ColumnSpec) (int, error) {
	if spec.Name != "" {
		for i, h := range t.Header {
			if h == spec.Name {
				return i, nil
			}
		}
		for i, h := range t.Header {
			if strings.EqualFold(h, spec.Name) {
				return i, nil
			}
		}
	}
	_, cols := t.Shape()
	if spec.Index < 0 || spec.Index >= cols {
		return -1, fmt.Errorf("%w: %s in %s", ErrColumnNotFound, spec, t.Source)
	}
	return spec.Index, nil
}

// Column returns every data row's cell for the given column. Cells past the
// end of a short row read as "".
func (t *Table) Column(spec ColumnSpec) ([]string, error) {
	idx, err := t.Resolve(spec)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = cell(r, idx)
	}
	return out, nil
}

// OptionalColumn is like Column but returns blank cells when the column
// does not exist.
func (t *Table) OptionalColumn(spec ColumnSpec) []string {
	col, err := t.Column(spec)
	if err != nil {
		return make([]string, len(t.Rows))
	}
	return col
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
