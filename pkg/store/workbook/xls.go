package workbook

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	"github.com/yamitzky/xlrd-go"
)

// XLSDecoder reads one worksheet of a legacy BIFF (.xls) workbook.
type XLSDecoder struct {
	Sheet string
}

func NewXLSDecoder(sheet string) *XLSDecoder {
	return &XLSDecoder{Sheet: sheet}
}

func (d *XLSDecoder) Decode(_ context.Context, r io.Reader) (domain.Grid, error) {
	// xlrd opens workbooks by path.
	tmp, err := os.CreateTemp("", "sheet-atlas-*.xls")
	if err != nil {
		return nil, fmt.Errorf("create temp workbook: %w", err)
	}
	defer os.Remove(tmp.Name())

	_, err = io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("buffer workbook: %w", err)
	}

	book, err := xlrd.OpenWorkbook(tmp.Name(), nil)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	var sheet *xlrd.Sheet
	if d.Sheet == "" {
		sheet, err = book.SheetByIndex(0)
	} else {
		sheet, err = book.SheetByName(d.Sheet)
	}
	if err != nil {
		return nil, fmt.Errorf("get sheet %q: %w", d.Sheet, err)
	}

	return gridFromXLS(sheet.NRows, sheet.NCols, func(rowx, colx int) (int, interface{}) {
		return sheet.CellType(rowx, colx), sheet.CellValue(rowx, colx)
	}), nil
}

func gridFromXLS(nrows, ncols int, cell func(rowx, colx int) (int, interface{})) domain.Grid {
	grid := make(domain.Grid, 0, nrows)
	for i := 0; i < nrows; i++ {
		row := make(domain.Row, 0, ncols)
		for j := 0; j < ncols; j++ {
			ctype, value := cell(i, j)
			row = append(row, xlsCell(ctype, value))
		}
		grid = append(grid, row)
	}
	return grid
}

func xlsCell(ctype int, value interface{}) domain.Cell {
	switch ctype {
	case xlrd.XL_CELL_NUMBER, xlrd.XL_CELL_DATE:
		if v, ok := value.(float64); ok {
			return domain.NumberCell(v)
		}
		return domain.ParseNumberCell(fmt.Sprint(value))
	case xlrd.XL_CELL_TEXT:
		s, _ := value.(string)
		if s == "" {
			return domain.EmptyCell()
		}
		return domain.TextCell(s)
	case xlrd.XL_CELL_BOOLEAN:
		switch v := value.(type) {
		case bool:
			if v {
				return domain.TextCell("TRUE")
			}
		case int:
			if v != 0 {
				return domain.TextCell("TRUE")
			}
		}
		return domain.TextCell("FALSE")
	default:
		return domain.EmptyCell()
	}
}
