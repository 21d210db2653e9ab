package report

import (
	"time"

	"github.com/tourdesk/backend/internal/domain/advertising"
	"github.com/tourdesk/backend/internal/domain/booking"
	"github.com/tourdesk/backend/internal/domain/finance"
	"github.com/tourdesk/backend/internal/domain/tour"
)

// AggregateInput carries everything Aggregate needs. It holds plain slices
// so the aggregation stays a pure function over loaded data.
type AggregateInput struct {
	Orders       []*booking.Order
	AdSpend      []*advertising.AdSpendRecord
	MonthlyCosts []*finance.MonthlyCostRecord
	Granularity  Granularity
	Location     *time.Location
}

// Aggregate builds the Period x Tour profitability matrix.
//
// Orders establish the periods and tour rows; ad spend joins onto them by
// normalized tour key, with unmatched spend kept visible under the order
// side's spelling when any valid order used that key, otherwise under the ad
// platform's literal name; monthly overhead attaches to period totals at
// month and year granularity. All accumulation happens in the returned
// matrix, the inputs are never mutated.
func Aggregate(in AggregateInput) *ProfitabilityMatrix {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	matrix := &ProfitabilityMatrix{
		Granularity: in.Granularity,
		Periods:     make(map[string]*PeriodReport),
	}

	periodFor := func(t time.Time) *PeriodReport {
		bucket := BucketTime(t, in.Granularity, loc)
		period, ok := matrix.Periods[bucket.Key]
		if !ok {
			period = &PeriodReport{
				Period: bucket,
				Tours:  make(map[string]*TourRow),
			}
			matrix.Periods[bucket.Key] = period
		}
		return period
	}

	rowFor := func(period *PeriodReport, key, displayName string) *TourRow {
		row, ok := period.Tours[key]
		if !ok {
			row = &TourRow{Key: key, DisplayName: displayName}
			period.Tours[key] = row
		}
		return row
	}

	// The first valid order's spelling names the row everywhere, so the same
	// tour never shows up under two spellings across periods.
	names := make(map[string]string)
	for _, o := range in.Orders {
		if !o.IsAggregatable() {
			continue
		}
		key := tour.NormalizeKey(o.Tour)
		if _, ok := names[key]; !ok {
			names[key] = o.Tour
		}
	}

	for _, o := range in.Orders {
		if !o.IsAggregatable() {
			continue
		}
		period := periodFor(o.BucketDate())
		key := tour.NormalizeKey(o.Tour)
		row := rowFor(period, key, names[key])

		row.Summary.Revenue = row.Summary.Revenue.Add(o.TotalCost)
		if o.TotalTicketCost != nil {
			row.Summary.Cost = row.Summary.Cost.Add(*o.TotalTicketCost)
		}
		row.Summary.GrossProfit = row.Summary.GrossProfit.Add(*o.ProjectedProfit)
		row.Summary.OrderCount++

		period.Total.Revenue = period.Total.Revenue.Add(o.TotalCost)
		if o.TotalTicketCost != nil {
			period.Total.Cost = period.Total.Cost.Add(*o.TotalTicketCost)
		}
		period.Total.GrossProfit = period.Total.GrossProfit.Add(*o.ProjectedProfit)
		period.Total.OrderCount++
	}

	for _, spend := range in.AdSpend {
		period := periodFor(spend.Date)
		key := tour.NormalizeKey(spend.TourName)
		row, ok := period.Tours[key]
		if !ok {
			// No orders for this tour in the period. Keep the spend visible,
			// preferring the order side's spelling over the ad platform's.
			name, known := names[key]
			if !known {
				name = spend.TourName
			}
			row = rowFor(period, key, name)
		}
		row.Summary.AdSpend = row.Summary.AdSpend.Add(spend.Cost)
		period.Total.AdSpend = period.Total.AdSpend.Add(spend.Cost)
	}

	if in.Granularity.SupportsOperationalCosts() {
		for _, cost := range in.MonthlyCosts {
			monthStart := time.Date(cost.Year, time.Month(cost.Month), 1, 0, 0, 0, 0, loc)
			bucket := BucketTime(monthStart, in.Granularity, loc)
			period, ok := matrix.Periods[bucket.Key]
			if !ok {
				// Overhead for a month with no orders and no ad spend has
				// nothing to attach to.
				continue
			}
			period.Total.OperationalCosts = period.Total.OperationalCosts.Add(cost.OperationalTotal())
		}
	}

	for _, period := range matrix.Periods {
		for _, row := range period.Tours {
			row.Summary.Finalize(false)
		}
		period.Total.Finalize(true)

		matrix.GrandTotal.Revenue = matrix.GrandTotal.Revenue.Add(period.Total.Revenue)
		matrix.GrandTotal.Cost = matrix.GrandTotal.Cost.Add(period.Total.Cost)
		matrix.GrandTotal.GrossProfit = matrix.GrandTotal.GrossProfit.Add(period.Total.GrossProfit)
		matrix.GrandTotal.AdSpend = matrix.GrandTotal.AdSpend.Add(period.Total.AdSpend)
		matrix.GrandTotal.OperationalCosts = matrix.GrandTotal.OperationalCosts.Add(period.Total.OperationalCosts)
		matrix.GrandTotal.OrderCount += period.Total.OrderCount
	}
	matrix.GrandTotal.Finalize(true)

	return matrix
}
