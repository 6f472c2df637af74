package sniffer

import (
	"errors"
	"testing"

	"modelbench/domain/core"
	"modelbench/domain/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) tabular.Cell { return tabular.NewStringCell(s) }

func TestParseDelimited(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		input   string
		columns []string
		rows    []tabular.Row
	}{
		{
			name:    "comma separated",
			file:    "data.csv",
			input:   "a,b\n1,2\n3,4",
			columns: []string{"a", "b"},
			rows:    []tabular.Row{{"a": str("1"), "b": str("2")}, {"a": str("3"), "b": str("4")}},
		},
		{
			name:    "tab separated",
			file:    "data.txt",
			input:   "a\tb\n1\t2\n3\t4",
			columns: []string{"a", "b"},
			rows:    []tabular.Row{{"a": str("1"), "b": str("2")}, {"a": str("3"), "b": str("4")}},
		},
		{
			name:    "mixed separators",
			file:    "data.csv",
			input:   "a,b\tc\n1\t2,3",
			columns: []string{"a", "b", "c"},
			rows:    []tabular.Row{{"a": str("1"), "b": str("2"), "c": str("3")}},
		},
		{
			name:    "header trimmed and data kept verbatim",
			file:    "data.csv",
			input:   " name , age \n Bob , 3 ",
			columns: []string{"name", "age"},
			rows:    []tabular.Row{{"name": str(" Bob "), "age": str(" 3 ")}},
		},
		{
			name:    "trailing line break ignored",
			file:    "data.csv",
			input:   "a,b\n1,2\n",
			columns: []string{"a", "b"},
			rows:    []tabular.Row{{"a": str("1"), "b": str("2")}},
		},
		{
			name:    "crlf line endings",
			file:    "data.csv",
			input:   "a,b\r\n1,2\r\n",
			columns: []string{"a", "b"},
			rows:    []tabular.Row{{"a": str("1"), "b": str("2")}},
		},
		{
			name:    "short line lacks trailing keys",
			file:    "data.csv",
			input:   "a,b,c\n1",
			columns: []string{"a", "b", "c"},
			rows:    []tabular.Row{{"a": str("1")}},
		},
		{
			name:    "extra fields dropped",
			file:    "data.csv",
			input:   "a,b\n1,2,3,4",
			columns: []string{"a", "b"},
			rows:    []tabular.Row{{"a": str("1"), "b": str("2")}},
		},
		{
			name:    "header only",
			file:    "data.csv",
			input:   "a,b",
			columns: []string{"a", "b"},
			rows:    []tabular.Row{},
		},
		{
			name:    "byte order mark stripped",
			file:    "data.csv",
			input:   "\ufeffid,v\n7,x",
			columns: []string{"id", "v"},
			rows:    []tabular.Row{{"id": str("7"), "v": str("x")}},
		},
		{
			name:    "empty input",
			file:    "data.csv",
			input:   "",
			columns: []string{},
			rows:    []tabular.Row{},
		},
		{
			name:    "whitespace-only lines at the ends dropped",
			file:    "data.csv",
			input:   "\n \na,b\n1,2\n \n",
			columns: []string{"a", "b"},
			rows:    []tabular.Row{{"a": str("1"), "b": str("2")}},
		},
		{
			name:    "blank line between records kept",
			file:    "data.csv",
			input:   "a,b\n1,2\n \n3,4",
			columns: []string{"a", "b"},
			rows:    []tabular.Row{{"a": str("1"), "b": str("2")}, {"a": str(" ")}, {"a": str("3"), "b": str("4")}},
		},
		{
			name:    "duplicate header keeps the last field",
			file:    "data.csv",
			input:   "a,a\n1,2",
			columns: []string{"a", "a"},
			rows:    []tabular.Row{{"a": str("2")}},
		},
		{
			name:    "whitespace only",
			file:    "data.txt",
			input:   " \n\n",
			columns: []string{},
			rows:    []tabular.Row{},
		},
	}

	s := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := s.Parse(tt.file, []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.columns, table.Columns)
			assert.Equal(t, tt.rows, table.Rows)
		})
	}
}

func TestParseDelimitedHeaderFieldCount(t *testing.T) {
	table, err := New(Options{}).Parse("wide.csv", []byte("a, b ,c,\td"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "", "d"}, table.Columns)
	assert.Empty(t, table.Rows)
}

func TestParseDelimitedPadShortRows(t *testing.T) {
	table, err := New(Options{PadShortRows: true}).Parse("data.csv", []byte("a,b,c\n1"))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	assert.Equal(t, tabular.Row{"a": str("1"), "b": tabular.EmptyCell(), "c": tabular.EmptyCell()}, table.Rows[0])
}

func TestParseDelimitedPadKeepsDuplicateHeaderValue(t *testing.T) {
	for _, opts := range []Options{{}, {PadShortRows: true}} {
		table, err := New(opts).Parse("data.csv", []byte("a,a,b\n1"))
		require.NoError(t, err)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, str("1"), table.Rows[0]["a"], "pad=%v", opts.PadShortRows)
	}

	table, err := New(Options{PadShortRows: true}).Parse("data.csv", []byte("a,a,b\n1"))
	require.NoError(t, err)
	assert.Equal(t, tabular.Row{"a": str("1"), "b": tabular.EmptyCell()}, table.Rows[0])
}

func TestParseDelimitedInvalidUTF8(t *testing.T) {
	_, err := New(Options{}).Parse("data.csv", []byte{'a', ',', 'b', '\n', 0xff, 0xfe})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrDecode))

	var decodeErr *tabular.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, tabular.FormatDelimited, decodeErr.Format)
}

func TestParseUnsupportedFormat(t *testing.T) {
	table, err := New(Options{}).Parse("report.PDF", []byte("%PDF-1.7"))
	assert.Nil(t, table)
	require.Error(t, err)

	var unsupported *tabular.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "pdf", unsupported.Extension)
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat))
}

func TestParseIsIdempotent(t *testing.T) {
	s := New(Options{})
	input := []byte("x,y\n1,2\n3")

	first, err := s.Parse("data.csv", input)
	require.NoError(t, err)
	second, err := s.Parse("data.csv", input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
