package webtab

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// CellKind identifies the type of value held by a Cell.
type CellKind int

// CellKind constants.
const (
	CellNull CellKind = iota
	CellString
	CellNumber
)

// Cell is a single value in a Table: a string, a number, or null.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
}

// StringCell returns a cell holding s.
func StringCell(s string) Cell {
	return Cell{Kind: CellString, Str: s}
}

// NumberCell returns a cell holding f.
func NumberCell(f float64) Cell {
	return Cell{Kind: CellNumber, Num: f}
}

// NullCell returns an empty cell.
func NullCell() Cell {
	return Cell{Kind: CellNull}
}

// TextCell returns a string cell for non-blank s and a null cell otherwise.
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return NullCell()
	}
	return StringCell(s)
}

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool {
	return c.Kind == CellNull
}

// String returns the display text of the cell. Null cells render as "".
func (c Cell) String() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	}
	return ""
}

// Float returns the numeric value of the cell. String cells are parsed
// after removing thousands separators.
func (c Cell) Float() (float64, bool) {
	switch c.Kind {
	case CellNumber:
		return c.Num, true
	case CellString:
		s := strings.ReplaceAll(strings.TrimSpace(c.Str), ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// MarshalJSON encodes the cell as a JSON string, number, or null.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellString:
		return json.Marshal(c.Str)
	case CellNumber:
		return json.Marshal(c.Num)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes a JSON string, number, or null into the cell.
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = NullCell()
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = StringCell(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return Errorf(EINVALID, "cell must be a string, number or null")
	}
	*c = NumberCell(f)
	return nil
}

// Table is an ordered list of named columns and rows of cells.
// Every row has exactly one cell per column.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]Cell `json:"rows"`
}

// NewTable returns an empty table with the given columns.
func NewTable(columns ...string) *Table {
	if columns == nil {
		columns = []string{}
	}
	return &Table{Columns: columns, Rows: [][]Cell{}}
}

// AppendRow adds a row to the table. Short rows are padded with null cells.
// Returns EINVALID if the row has more cells than the table has columns.
func (t *Table) AppendRow(cells ...Cell) error {
	if len(cells) > len(t.Columns) {
		return Errorf(EINVALID, "row has %d cells, table has %d columns", len(cells), len(t.Columns))
	}
	row := make([]Cell, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
	return nil
}

// Validate returns an error if any row does not match the column count.
func (t *Table) Validate() error {
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return Errorf(EINVALID, "row %d has %d cells, table has %d columns", i, len(row), len(t.Columns))
		}
	}
	return nil
}

// Summary holds overview statistics for a table.
type Summary struct {
	Rows           int            `json:"rows"`
	Columns        int            `json:"columns"`
	NumericColumns int            `json:"numericColumns"`
	MissingValues  int            `json:"missingValues"`
	ColumnMissing  map[string]int `json:"columnMissing"`
}

// Summarize computes overview statistics for t. A column is numeric when it
// has at least one value and every non-null value parses as a number.
func Summarize(t *Table) Summary {
	if t == nil {
		return Summary{ColumnMissing: map[string]int{}}
	}
	s := Summary{
		Rows:          len(t.Rows),
		Columns:       len(t.Columns),
		ColumnMissing: make(map[string]int, len(t.Columns)),
	}
	for col, name := range t.Columns {
		missing, values, numeric := 0, 0, 0
		for _, row := range t.Rows {
			if col >= len(row) || row[col].IsNull() {
				missing++
				continue
			}
			values++
			if _, ok := row[col].Float(); ok {
				numeric++
			}
		}
		if values > 0 && numeric == values {
			s.NumericColumns++
		}
		s.MissingValues += missing
		s.ColumnMissing[name] += missing
	}
	return s
}
