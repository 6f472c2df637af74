package sniffer

import (
	"fmt"

	"modelbench/domain/tabular"
)

const emptyHeader = "__EMPTY"

// shapeGrid turns a sheet grid into records keyed by the first used row.
// The used range starts at the first non-blank row and leftmost non-blank
// column. Fully blank data rows are skipped and blanks inside the range
// become empty cells.
func shapeGrid(grid [][]tabular.Cell) *tabular.ParsedTable {
	table := tabular.NewParsedTable()

	top, left, width := usedRange(grid)
	if top < 0 {
		return table
	}

	headers := uniqueHeaders(rangeRow(grid[top], left, width))
	for _, cells := range grid[top+1:] {
		values := rangeRow(cells, left, width)
		if isBlank(values) {
			continue
		}
		row := make(tabular.Row, width)
		for i, h := range headers {
			row[h] = values[i]
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) > 0 {
		table.Columns = headers
	}
	return table
}

// usedRange returns the first non-blank row, the leftmost non-blank column
// and the range width. top is -1 when the grid holds no values.
func usedRange(grid [][]tabular.Cell) (top, left, width int) {
	top, left = -1, -1
	right := -1
	for r, cells := range grid {
		for c, cell := range cells {
			if cell.IsEmpty() {
				continue
			}
			if top < 0 {
				top = r
			}
			if left < 0 || c < left {
				left = c
			}
			if c > right {
				right = c
			}
		}
	}
	if top < 0 {
		return -1, 0, 0
	}
	return top, left, right - left + 1
}

func rangeRow(cells []tabular.Cell, left, width int) []tabular.Cell {
	out := make([]tabular.Cell, width)
	for i := range out {
		if c := left + i; c < len(cells) && !cells[c].IsEmpty() {
			out[i] = cells[c]
		} else {
			out[i] = tabular.EmptyCell()
		}
	}
	return out
}

func isBlank(cells []tabular.Cell) bool {
	for _, c := range cells {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// uniqueHeaders names blank header cells __EMPTY and suffixes repeats with
// _1, _2 and so on, skipping names already taken.
func uniqueHeaders(cells []tabular.Cell) []string {
	seen := make(map[string]int, len(cells))
	headers := make([]string, len(cells))
	for i, cell := range cells {
		base := cell.String()
		if cell.IsEmpty() {
			base = emptyHeader
		}
		name := base
		if n, dup := seen[base]; dup {
			for {
				n++
				name = fmt.Sprintf("%s_%d", base, n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		headers[i] = name
	}
	return headers
}
