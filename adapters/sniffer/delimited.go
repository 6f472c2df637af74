package sniffer

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"modelbench/domain/tabular"
)

var (
	utf8BOM        = []byte{0xEF, 0xBB, 0xBF}
	errInvalidUTF8 = errors.New("content is not valid UTF-8")
)

// parseDelimited handles comma- or tab-separated text. The header is split
// and trimmed; data fields are kept verbatim and zipped by position.
func (s *Sniffer) parseDelimited(data []byte) (*tabular.ParsedTable, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, decodeError(tabular.FormatDelimited, errInvalidUTF8)
	}

	table := tabular.NewParsedTable()

	lines := trimBlankLines(strings.Split(string(data), "\n"))
	if len(lines) == 0 {
		return table, nil
	}

	for _, f := range splitFields(lines[0]) {
		table.Columns = append(table.Columns, strings.TrimSpace(f))
	}

	for _, line := range lines[1:] {
		fields := splitFields(line)
		row := make(tabular.Row, len(table.Columns))
		for i, col := range table.Columns {
			if i < len(fields) {
				row[col] = tabular.NewStringCell(fields[i])
			} else if _, set := row[col]; !set && s.opts.PadShortRows {
				row[col] = tabular.EmptyCell()
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// trimBlankLines drops whitespace-only lines at either end of the text.
// Blank lines between records are kept.
func trimBlankLines(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// splitFields splits a line on every comma or tab. Quoting is not
// interpreted.
func splitFields(line string) []string {
	line = strings.TrimSuffix(line, "\r")
	return strings.Split(strings.ReplaceAll(line, "\t", ","), ",")
}
