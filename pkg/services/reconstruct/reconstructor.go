// Package reconstruct rebuilds the logical tables of a capital-budgeting workbook
// from a raw cell grid, using keyword markers found in the first column.
package reconstruct

import (
	"context"
	"strings"
	"unicode"

	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Reconstruct scans the grid and returns the non-empty tables in discovery order.
func Reconstruct(grid domain.Grid) *domain.Tables {
	return ReconstructContext(context.Background(), grid)
}

// ReconstructContext is Reconstruct with debug tracing to the context logger.
func ReconstructContext(ctx context.Context, grid domain.Grid) *domain.Tables {
	return Build(ctx, grid, ScanContext(ctx, grid))
}

// Scan detects section markers and the candidate rows that belong to each section.
func Scan(grid domain.Grid) []domain.Section {
	return ScanContext(context.Background(), grid)
}

func ScanContext(ctx context.Context, grid domain.Grid) []domain.Section {
	logger := zerolog.Ctx(ctx)

	var sections []domain.Section
	byName := make(map[string]int)
	current := -1

	for i, row := range grid {
		first := strings.TrimSpace(row.At(0).String())

		if p, ok := matchSection(strings.ToUpper(first)); ok {
			start := i
			if p.headerOnly {
				start = i + 1
			}
			section := domain.Section{Name: p.name, MarkerRow: i, StartRow: start, Rows: []int{}}
			// A repeated marker restarts the section in place.
			if idx, seen := byName[p.name]; seen {
				sections[idx] = section
				current = idx
			} else {
				byName[p.name] = len(sections)
				sections = append(sections, section)
				current = len(sections) - 1
			}
			logger.Debug().Str("table", p.name).Int("row", i).Msg("found table marker")
		}

		if current >= 0 && isCandidate(first) {
			sections[current].Rows = append(sections[current].Rows, i)
			logger.Debug().
				Str("table", sections[current].Name).
				Int("row", i).
				Str("label", first).
				Msg("added candidate row")
		}
	}

	return sections
}

// Build materializes sections into tables. Rows without a label or without any
// non-blank value are skipped, duplicate labels keep their first values, and
// sections that end up empty are dropped.
func Build(ctx context.Context, grid domain.Grid, sections []domain.Section) *domain.Tables {
	logger := zerolog.Ctx(ctx)
	tables := domain.NewTables()

	for _, section := range sections {
		if len(section.Rows) == 0 {
			logger.Debug().Str("table", section.Name).Msg("no rows found for table")
			continue
		}

		table := domain.NewTable(section.Name)
		for _, idx := range section.Rows {
			if idx < 0 || idx >= len(grid) {
				continue
			}
			row := grid[idx]
			labelCell := row.At(0)
			if labelCell.IsBlank() {
				continue
			}

			values := make([]domain.Cell, 0, len(row))
			for col := 1; col < len(row); col++ {
				if !row[col].IsBlank() {
					values = append(values, row[col])
				}
			}
			if len(values) == 0 {
				continue
			}
			table.Add(labelCell.String(), values)
		}

		if table.Len() == 0 {
			continue
		}
		tables.Put(table)
		logger.Debug().Str("table", table.Name).Int("rows", table.Len()).Msg("added table")
	}

	return tables
}

func isCandidate(first string) bool {
	if _, reserved := reservedLabels[first]; reserved {
		return false
	}
	if strings.Contains(first, "=") {
		return true
	}
	if strings.IndexFunc(first, unicode.IsDigit) >= 0 {
		return true
	}
	lower := strings.ToLower(first)
	for _, kw := range labelKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
