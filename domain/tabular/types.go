// Package tabular holds the schema-less table produced from an uploaded
// dataset file.
//
// Delimited-text rows always carry string cells and may lack trailing keys
// when a line is short. Spreadsheet rows carry typed cells. Consumers must
// look keys up with Row.Get rather than assume presence.
package tabular

import (
	"encoding/json"
	"strconv"
)

// CellType defines the variant stored in a Cell
type CellType string

const (
	CellTypeEmpty   CellType = "empty"
	CellTypeString  CellType = "string"
	CellTypeNumber  CellType = "number"
	CellTypeBoolean CellType = "boolean"
)

// Cell is a raw field value: string, number, boolean or empty.
type Cell struct {
	Type   CellType
	Text   string
	Number float64
	Bool   bool
}

// NewStringCell creates a string cell. An empty string stays a string cell;
// delimited text distinguishes "" from a missing key.
func NewStringCell(s string) Cell {
	return Cell{Type: CellTypeString, Text: s}
}

// NewNumberCell creates a numeric cell
func NewNumberCell(n float64) Cell {
	return Cell{Type: CellTypeNumber, Number: n}
}

// NewBoolCell creates a boolean cell
func NewBoolCell(b bool) Cell {
	return Cell{Type: CellTypeBoolean, Bool: b}
}

// EmptyCell creates the blank-cell default supplied by the spreadsheet decoder
func EmptyCell() Cell {
	return Cell{Type: CellTypeEmpty}
}

// IsEmpty reports whether the cell is blank or an empty string
func (c Cell) IsEmpty() bool {
	return c.Type == CellTypeEmpty || c.Type == "" || (c.Type == CellTypeString && c.Text == "")
}

// String renders the cell the way it would appear in a text file
func (c Cell) String() string {
	switch c.Type {
	case CellTypeString:
		return c.Text
	case CellTypeNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellTypeBoolean:
		return strconv.FormatBool(c.Bool)
	}
	return ""
}

// Value returns the cell as a plain Go value (string, float64, bool or "").
func (c Cell) Value() any {
	switch c.Type {
	case CellTypeNumber:
		return c.Number
	case CellTypeBoolean:
		return c.Bool
	}
	return c.String()
}

// MarshalJSON encodes the cell as its plain JSON value; blanks become "".
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Value())
}

// UnmarshalJSON decodes a plain JSON scalar into a cell; null becomes empty.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*c = EmptyCell()
	case string:
		*c = NewStringCell(t)
	case float64:
		*c = NewNumberCell(t)
	case bool:
		*c = NewBoolCell(t)
	default:
		*c = NewStringCell(string(data))
	}
	return nil
}

// Row maps column name to cell value
type Row map[string]Cell

// Get looks a column up defensively
func (r Row) Get(column string) (Cell, bool) {
	c, ok := r[column]
	return c, ok
}

// Text returns the column rendered as text, or "" when the key is absent
func (r Row) Text(column string) string {
	if c, ok := r[column]; ok {
		return c.String()
	}
	return ""
}

// ParsedTable is the column list plus row records produced per upload.
type ParsedTable struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewParsedTable returns an empty table with non-nil slices
func NewParsedTable() *ParsedTable {
	return &ParsedTable{Columns: []string{}, Rows: []Row{}}
}

// HasColumn reports whether name is one of the table's columns
func (t *ParsedTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Head returns a shallow copy limited to the first n rows.
// n <= 0 means no limit.
func (t *ParsedTable) Head(n int) *ParsedTable {
	if n <= 0 || n >= len(t.Rows) {
		return &ParsedTable{Columns: t.Columns, Rows: t.Rows}
	}
	return &ParsedTable{Columns: t.Columns, Rows: t.Rows[:n]}
}
