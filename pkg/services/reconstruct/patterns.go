package reconstruct

import "strings"

const (
	InitialInvestment     = "Initial Investment"
	CashflowDetails       = "Cashflow Details"
	RevenueProjections    = "Revenue Projections"
	OperatingExpenses     = "Operating Expenses"
	DiscountRate          = "Discount Rate"
	WorkingCapital        = "Working Capital"
	GrowthRates           = "Growth Rates"
	OperatingCashflows    = "Operating Cashflows"
	SalvageValue          = "Salvage Value"
	InvestmentMeasures    = "Investment Measures"
	BookValueDepreciation = "Book Value & Depreciation"
)

// pattern maps a marker test on upper-cased column-one text to a canonical table name.
// headerOnly markers start their table on the following row.
type pattern struct {
	name       string
	headerOnly bool
	match      func(upper string) bool
}

func containsAll(parts ...string) func(string) bool {
	return func(s string) bool {
		for _, p := range parts {
			if !strings.Contains(s, p) {
				return false
			}
		}
		return true
	}
}

func containsAny(parts ...string) func(string) bool {
	return func(s string) bool {
		for _, p := range parts {
			if strings.Contains(s, p) {
				return true
			}
		}
		return false
	}
}

// Order matters: the first matching pattern wins.
var patterns = []pattern{
	{name: InitialInvestment, headerOnly: true, match: containsAll("INITIAL INVESTMENT")},
	{name: CashflowDetails, match: containsAll("CASHFLOW", "DETAIL")},
	{name: RevenueProjections, headerOnly: true, match: containsAll("REVENUE", "PROJECTION")},
	{name: OperatingExpenses, headerOnly: true, match: containsAll("OPERATING", "EXPENSE")},
	{name: DiscountRate, match: containsAll("DISCOUNT RATE")},
	{name: WorkingCapital, headerOnly: true, match: containsAll("WORKING CAPITAL")},
	{name: GrowthRates, headerOnly: true, match: containsAll("GROWTH RATE")},
	{name: OperatingCashflows, headerOnly: true, match: containsAll("OPERATING CASHFLOW")},
	{name: SalvageValue, headerOnly: true, match: containsAll("SALVAGE VALUE")},
	{name: InvestmentMeasures, match: containsAny("INVESTMENT MEASURE", "NPV")},
	{name: BookValueDepreciation, headerOnly: true, match: containsAll("BOOK VALUE", "DEPRECIATION")},
}

// reservedLabels are compared against trimmed column-one text as written, not upper-cased.
// A lower-case header such as "Discount rate" therefore still passes the candidate filter.
var reservedLabels = map[string]struct{}{
	"":                          {},
	"INITIAL INVESTMENT":        {},
	"CASHFLOW DETAILS":          {},
	"REVENUE PROJECTIONS":       {},
	"OPERATING EXPENSES":        {},
	"DISCOUNT RATE":             {},
	"WORKING CAPITAL":           {},
	"GROWTH RATES":              {},
	"OPERATING CASHFLOWS":       {},
	"SALVAGE VALUE":             {},
	"BOOK VALUE & DEPRECIATION": {},
	"INVESTMENT MEASURES":       {},
}

var labelKeywords = []string{"cost", "rate", "value", "investment", "revenue", "expense"}

// TableNames lists every canonical table name in pattern order.
func TableNames() []string {
	names := make([]string, 0, len(patterns))
	for _, p := range patterns {
		names = append(names, p.name)
	}
	return names
}

func matchSection(upper string) (pattern, bool) {
	for _, p := range patterns {
		if p.match(upper) {
			return p, true
		}
	}
	return pattern{}, false
}
