package domain

import (
	"math"
	"strconv"
	"strings"
)

type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
)

// Cell is a single workbook value. The zero value is an empty cell.
// Raw keeps the source text of a number read from text so it prints unchanged.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Raw    string
}

func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// ParseCell classifies raw decoded text: "" is empty, a plain float is a number,
// everything else (including "$1,200" or "12%") stays text. Numbers keep raw
// as their printed form, so "0012" is still "0012" when used as a label.
func ParseCell(raw string) Cell {
	if raw == "" {
		return EmptyCell()
	}
	if v, ok := parseNumber(raw); ok {
		return Cell{Kind: CellNumber, Number: v, Raw: raw}
	}
	return TextCell(raw)
}

// ParseNumberCell is ParseCell for values stored as numbers: the canonical
// float form is printed, and anything unparseable stays text.
func ParseNumberCell(raw string) Cell {
	if raw == "" {
		return EmptyCell()
	}
	if v, ok := parseNumber(raw); ok {
		return NumberCell(v)
	}
	return TextCell(raw)
}

func parseNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// String is the single stringification rule used for marker matching,
// row labels and value normalization.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		if c.Raw != "" {
			return c.Raw
		}
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Text
	default:
		return ""
	}
}

// IsBlank reports whether the cell is missing or holds only whitespace.
func (c Cell) IsBlank() bool {
	return c.Kind == CellEmpty || strings.TrimSpace(c.String()) == ""
}

type Row []Cell

// At returns the cell at col, or an empty cell when the row is shorter.
func (r Row) At(col int) Cell {
	if col < 0 || col >= len(r) {
		return EmptyCell()
	}
	return r[col]
}

// Grid is an ordered sequence of rows as read from a single worksheet.
type Grid []Row

// Width is the length of the longest row.
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// GridFromStrings builds a grid from decoded sheet text, classifying each cell with ParseCell.
func GridFromStrings(rows [][]string) Grid {
	grid := make(Grid, 0, len(rows))
	for _, raw := range rows {
		row := make(Row, 0, len(raw))
		for _, v := range raw {
			row = append(row, ParseCell(v))
		}
		grid = append(grid, row)
	}
	return grid
}
