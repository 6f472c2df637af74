package sniffer

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"modelbench/domain/tabular"

	"github.com/xuri/excelize/v2"
)

var (
	errNoSheets = errors.New("workbook contains no sheets")
	// oleSignature prefixes legacy BIFF workbooks (OLE2 compound files).
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// parseSpreadsheet decodes the first sheet, by workbook order, of an xlsx or
// legacy xls workbook.
func (s *Sniffer) parseSpreadsheet(data []byte) (table *tabular.ParsedTable, err error) {
	defer guard(tabular.FormatSpreadsheet, &err)

	var grid [][]tabular.Cell
	if bytes.HasPrefix(data, oleSignature) {
		grid, err = readLegacyGrid(data)
	} else {
		grid, err = readWorkbookGrid(data)
	}
	if err != nil {
		return nil, decodeError(tabular.FormatSpreadsheet, err)
	}
	return shapeGrid(grid), nil
}

// readWorkbookGrid reads the first sheet of an OOXML workbook with typed
// cells. Raw values are used so numbers are not run through number formats.
func readWorkbookGrid(data []byte) ([][]tabular.Cell, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	grid := make([][]tabular.Cell, len(rows))
	for r, values := range rows {
		cells := make([]tabular.Cell, len(values))
		for c, raw := range values {
			cell, err := workbookCell(f, sheet, c+1, r+1, raw)
			if err != nil {
				return nil, err
			}
			cells[c] = cell
		}
		grid[r] = cells
	}
	return grid, nil
}

// workbookCell types a raw value by the cell's stored type. col and row are
// 1-based.
func workbookCell(f *excelize.File, sheet string, col, row int, raw string) (tabular.Cell, error) {
	if raw == "" {
		return tabular.EmptyCell(), nil
	}

	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return tabular.Cell{}, err
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return tabular.Cell{}, fmt.Errorf("cell %s: %w", name, err)
	}

	switch typ {
	case excelize.CellTypeBool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return tabular.NewBoolCell(b), nil
		}
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeDate:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return tabular.NewNumberCell(n), nil
		}
	}
	return tabular.NewStringCell(raw), nil
}
