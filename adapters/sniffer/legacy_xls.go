package sniffer

import (
	"bytes"
	"fmt"

	"modelbench/domain/tabular"

	"github.com/extrame/xls"
)

// readLegacyGrid reads the first sheet of a BIFF workbook. The legacy reader
// only exposes formatted text, so every cell is a string.
func readLegacyGrid(data []byte) ([][]tabular.Cell, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open legacy workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, errNoSheets
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errNoSheets
	}

	grid := make([][]tabular.Cell, 0, int(sheet.MaxRow)+1)
	for r := 0; r <= int(sheet.MaxRow); r++ {
		row := legacyRow(sheet, r)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		var cells []tabular.Cell
		for c := 0; c <= row.LastCol(); c++ {
			if text := row.Col(c); text != "" {
				cells = append(cells, make([]tabular.Cell, c+1-len(cells))...)
				cells[c] = tabular.NewStringCell(text)
			}
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// legacyRow returns nil for rows without a record; the reader panics on
// those instead of reporting them missing.
func legacyRow(sheet *xls.WorkSheet, r int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(r)
}
