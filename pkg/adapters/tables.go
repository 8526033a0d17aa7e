package adapters

import (
	"slices"

	"github.com/de-tools/sheet-atlas/pkg/models/api"
	"github.com/de-tools/sheet-atlas/pkg/models/domain"
)

func MapRowSumDomainToApi(sum domain.RowSum) api.RowSumResponse {
	values := slices.Clone(sum.NumericValues)
	if values == nil {
		values = []float64{}
	}
	return api.RowSumResponse{
		TableName:       sum.TableName,
		RowName:         sum.RowLabel,
		Sum:             sum.Sum,
		ValuesProcessed: sum.ValuesProcessed,
		NumericValues:   values,
	}
}

func MapSectionsDomainToApi(sections []domain.Section) []api.Section {
	out := make([]api.Section, 0, len(sections))
	for _, s := range sections {
		rows := s.Rows
		if rows == nil {
			rows = []int{}
		}
		out = append(out, api.Section{
			Name:      s.Name,
			MarkerRow: s.MarkerRow,
			StartRow:  s.StartRow,
			Rows:      rows,
		})
	}
	return out
}
