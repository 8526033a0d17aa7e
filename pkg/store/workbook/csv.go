package workbook

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/de-tools/sheet-atlas/pkg/models/domain"
)

type CSVDecoder struct {
	Comma rune
}

func NewCSVDecoder() *CSVDecoder {
	return &CSVDecoder{Comma: ','}
}

func (d *CSVDecoder) Decode(_ context.Context, r io.Reader) (domain.Grid, error) {
	reader := csv.NewReader(r)
	reader.Comma = d.Comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, record)
	}
	return domain.GridFromStrings(rows), nil
}
