package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// FinancialSummary holds the metric set computed for every cell of the
// report, whether a single tour in a period, a period total, or the grand
// total.
type FinancialSummary struct {
	Revenue          decimal.Decimal `json:"revenue"`
	Cost             decimal.Decimal `json:"cost"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	AdSpend          decimal.Decimal `json:"ad_spend"`
	OperationalCosts decimal.Decimal `json:"operational_costs"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	POAS             decimal.Decimal `json:"poas"`
	OrderCount       int             `json:"order_count"`
}

// Finalize derives the metrics that depend on the accumulated ones. Gross
// profit is accumulated per order, not derived here, so orders missing a
// ticket-cost breakdown still report their projected margin. Net profit
// subtracts ad spend from gross profit; operational costs are subtracted too
// when includeOperational is set, which only the period and grand totals do
// so tour columns stay comparable to their ad spend. POAS is
// profit-on-ad-spend, zero when there was no spend.
func (s *FinancialSummary) Finalize(includeOperational bool) {
	s.NetProfit = s.GrossProfit.Sub(s.AdSpend)
	if includeOperational {
		s.NetProfit = s.NetProfit.Sub(s.OperationalCosts)
	}
	if s.AdSpend.IsPositive() {
		s.POAS = s.Revenue.Div(s.AdSpend).Round(4)
	} else {
		s.POAS = decimal.Zero
	}
}

// TourRow is one tour's (or fallback column's) summary within a period.
type TourRow struct {
	Key         string           `json:"key"`          // normalized join key
	DisplayName string           `json:"display_name"` // first spelling seen wins
	Summary     FinancialSummary `json:"summary"`
}

// PeriodReport is one period's slice of the matrix: per-tour rows plus the
// period total.
type PeriodReport struct {
	Period PeriodBucket        `json:"period"`
	Tours  map[string]*TourRow `json:"tours"`
	Total  FinancialSummary    `json:"total"`
}

// SortedTours returns the period's tour rows ordered by display name for
// stable output.
func (p *PeriodReport) SortedTours() []*TourRow {
	rows := make([]*TourRow, 0, len(p.Tours))
	for _, row := range p.Tours {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].DisplayName < rows[j].DisplayName
	})
	return rows
}

// ProfitabilityMatrix is the full Period x Tour report for one granularity.
type ProfitabilityMatrix struct {
	Granularity Granularity              `json:"granularity"`
	Periods     map[string]*PeriodReport `json:"periods"`
	GrandTotal  FinancialSummary         `json:"grand_total"`
}

// SortedPeriods returns the report's periods in ascending key order. Keys
// are zero-padded so lexicographic order is chronological order.
func (m *ProfitabilityMatrix) SortedPeriods() []*PeriodReport {
	keys := make([]string, 0, len(m.Periods))
	for key := range m.Periods {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	periods := make([]*PeriodReport, 0, len(keys))
	for _, key := range keys {
		periods = append(periods, m.Periods[key])
	}
	return periods
}
