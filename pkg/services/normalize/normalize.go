// Package normalize turns formatted workbook values into floats.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/sheet-atlas/pkg/models/domain"
)

var ErrUnparseable = errors.New("value is not numeric")

// Currency glyphs and the mojibake left behind when they are decoded with the wrong code page.
var formatting = strings.NewReplacer(
	"$", "",
	",", "",
	"£", "",
	"€", "",
	"¥", "",
	"Â", "",
	"Ł", "",
	"â", "",
	"‚", "",
	"¬", "",
	"Ą", "",
)

type Result struct {
	Value   float64
	Percent bool
}

// Parse normalizes a cell: "(x)" becomes -x, currency glyphs, thousands
// separators and "%" are removed. Percentages keep their magnitude ("12%" is 12).
// Empty cells parse to zero without error.
func Parse(c domain.Cell) (Result, error) {
	switch c.Kind {
	case domain.CellEmpty:
		return Result{}, nil
	case domain.CellNumber:
		return Result{Value: c.Number}, nil
	}

	s := strings.TrimSpace(c.String())
	if s == "" {
		return Result{}, nil
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) >= 2 {
		s = "-" + s[1:len(s)-1]
	}

	s = formatting.Replace(s)

	percent := strings.Contains(s, "%")
	s = strings.ReplaceAll(s, "%", "")

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Result{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
	}
	return Result{Value: v, Percent: percent}, nil
}

// Value is Parse without the error: anything unparseable is 0.
func Value(c domain.Cell) float64 {
	r, err := Parse(c)
	if err != nil {
		return 0
	}
	return r.Value
}

// String normalizes raw text as if it had been read from a text cell.
func String(s string) float64 {
	return Value(domain.ParseCell(s))
}
