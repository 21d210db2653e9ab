package tour

import "github.com/shopspring/decimal"

// DefaultMargin is the assumed profit margin for tours without a configured
// entry. Used by the margin-based profit strategy when an order carries no
// ticket breakdown.
var DefaultMargin = decimal.NewFromFloat(0.25)

// MarginTable maps canonical tour keys to their configured profit margins.
// Lookup falls back to DefaultMargin, so an empty table is valid.
type MarginTable map[string]decimal.Decimal

// NewMarginTable builds a MarginTable from raw configuration values. Keys are
// normalized so config entries may use whichever spelling the operator knows.
func NewMarginTable(raw map[string]float64) MarginTable {
	t := make(MarginTable, len(raw))
	for name, margin := range raw {
		t[NormalizeKey(name)] = decimal.NewFromFloat(margin)
	}
	return t
}

// MarginFor returns the margin for the given free-text tour name.
func (t MarginTable) MarginFor(name string) decimal.Decimal {
	if margin, ok := t[NormalizeKey(name)]; ok {
		return margin
	}
	return DefaultMargin
}
