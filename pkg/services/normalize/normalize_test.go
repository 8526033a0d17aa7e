package normalize

import (
	"testing"

	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"$1,200", 1200},
		{"(500)", -500},
		{"12%", 12},
		{"", 0},
		{"N/A", 0},
		{"  $ 3,000.50 ", 3000.5},
		{"($1,000)", -1000},
		{"(12%)", -12},
		{"€250", 250},
		{"£99.99", 99.99},
		{"¥10000", 10000},
		{"Â£40", 40},
		{"â‚¬15", 15},
		{"-7.5", -7.5},
		{"1e3", 1000},
		{"()", 0},
		{"NaN", 0},
		{"inf", 0},
		{"12 %", 12},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, String(tt.input))
		})
	}
}

func TestValue_CellKinds(t *testing.T) {
	assert.Equal(t, 0.0, Value(domain.EmptyCell()))
	assert.Equal(t, 0.0, Value(domain.Cell{}))
	assert.Equal(t, 0.085, Value(domain.NumberCell(0.085)))
	assert.Equal(t, -20.0, Value(domain.TextCell("(20)")))
	assert.Equal(t, 0.0, Value(domain.TextCell("   ")))
}

func TestParse_ReportsFailures(t *testing.T) {
	_, err := Parse(domain.TextCell("N/A"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnparseable)

	r, err := Parse(domain.TextCell("5%"))
	require.NoError(t, err)
	assert.Equal(t, Result{Value: 5, Percent: true}, r)

	r, err = Parse(domain.EmptyCell())
	require.NoError(t, err)
	assert.Equal(t, Result{}, r)
}

func TestValue_RowSum(t *testing.T) {
	row := []domain.Cell{domain.TextCell("$100"), domain.TextCell("(20)"), domain.TextCell("5%")}

	var sum float64
	for _, c := range row {
		sum += Value(c)
	}
	assert.Equal(t, 85.0, sum)
}
