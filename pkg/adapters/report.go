package adapters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/de-tools/sheet-atlas/pkg/models/domain"
)

func MapTablesToReport(location string, tables map[string][]string, names []string) *domain.Report {
	details := make([]domain.ReportDetail, 0, len(names))
	for _, name := range names {
		details = append(details, domain.ReportDetail{
			Name:  name,
			Value: len(tables[name]),
			Unit:  "rows",
		})
	}
	return &domain.Report{
		Title:    "Tables",
		Location: location,
		Sections: []domain.ReportSection{{
			Title:   "Detected tables",
			Summary: map[string]interface{}{"Tables": len(names)},
			Details: details,
		}},
	}
}

func MapRowLabelsToReport(location, table string, labels []string) *domain.Report {
	details := make([]domain.ReportDetail, 0, len(labels))
	for i, label := range labels {
		details = append(details, domain.ReportDetail{Name: label, Value: i + 1})
	}
	return &domain.Report{
		Title:    table,
		Location: location,
		Sections: []domain.ReportSection{{
			Title:   "Rows",
			Summary: map[string]interface{}{"Rows": len(labels)},
			Details: details,
		}},
	}
}

func MapRowSumToReport(location string, sum domain.RowSum) *domain.Report {
	details := make([]domain.ReportDetail, 0, len(sum.NumericValues))
	for i, v := range sum.NumericValues {
		details = append(details, domain.ReportDetail{
			Name:  "Value " + strconv.Itoa(i+1),
			Value: formatNumber(v),
		})
	}
	return &domain.Report{
		Title:    fmt.Sprintf("%s / %s", sum.TableName, sum.RowLabel),
		Location: location,
		Sections: []domain.ReportSection{{
			Title: "Row sum",
			Summary: map[string]interface{}{
				"Sum":              formatNumber(sum.Sum),
				"Values processed": sum.ValuesProcessed,
			},
			Details: details,
		}},
	}
}

func MapSectionsToReport(location string, sections []domain.Section) *domain.Report {
	details := make([]domain.ReportDetail, 0, len(sections))
	for _, s := range sections {
		rows := make([]string, 0, len(s.Rows))
		for _, r := range s.Rows {
			rows = append(rows, strconv.Itoa(r))
		}
		details = append(details, domain.ReportDetail{
			Name:        s.Name,
			Value:       s.MarkerRow,
			Unit:        "marker",
			Description: fmt.Sprintf("start %d, rows [%s]", s.StartRow, strings.Join(rows, " ")),
		})
	}
	return &domain.Report{
		Title:    "Sections",
		Location: location,
		Sections: []domain.ReportSection{{
			Title:   "Detected sections",
			Summary: map[string]interface{}{"Sections": len(sections)},
			Details: details,
		}},
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
