package workbook

import (
	"context"
	"fmt"
	"io"

	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

// ExcelDecoder reads one worksheet of an Open XML workbook. With no sheet
// configured the first sheet is used.
type ExcelDecoder struct {
	Sheet string
}

func NewExcelDecoder(sheet string) *ExcelDecoder {
	return &ExcelDecoder{Sheet: sheet}
}

func (d *ExcelDecoder) Decode(_ context.Context, r io.Reader) (domain.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := d.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	// Stored values, not the number-formatted display text.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
	}

	grid := make(domain.Grid, 0, len(rows))
	for i, raw := range rows {
		row := make(domain.Row, 0, len(raw))
		for j, value := range raw {
			if value == "" {
				row = append(row, domain.EmptyCell())
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheet, axis)
			if err != nil {
				return nil, fmt.Errorf("get type of %s!%s: %w", sheet, axis, err)
			}
			row = append(row, excelCell(cellType, value))
		}
		grid = append(grid, row)
	}
	return grid, nil
}

func excelCell(cellType excelize.CellType, value string) domain.Cell {
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return domain.ParseNumberCell(value)
	case excelize.CellTypeBool:
		if value == "1" {
			return domain.TextCell("TRUE")
		}
		return domain.TextCell("FALSE")
	default:
		return domain.TextCell(value)
	}
}
