package booking

import (
	"github.com/shopspring/decimal"

	"github.com/tourdesk/backend/internal/domain/tour"
)

// FixedProfitPerTicket is the assumed supplier payout per ticket. Profit is
// whatever revenue remains after paying the supplier this much per seat.
var FixedProfitPerTicket = decimal.NewFromInt(11)

// staleProfitRatio marks the threshold above which a stored projected profit
// is treated as computed by the old revenue-share formula and due for a
// recompute.
var staleProfitRatio = decimal.NewFromFloat(0.9)

// ProfitBreakdown is the result of a profit computation: the supplier ticket
// cost and the remaining projected profit. The two always sum to the order's
// total cost.
type ProfitBreakdown struct {
	TicketCost      decimal.Decimal
	ProjectedProfit decimal.Decimal
	TicketBased     bool
}

// ComputeProfit derives an order's ticket cost and projected profit.
//
// When the order carries ticket lines, each ticket contributes the fixed
// per-ticket profit and the rest of its share is supplier cost, floored at
// zero so heavily discounted orders never report negative cost. When there is
// no ticket data the tour's configured margin (or the default) is applied to
// revenue instead.
func ComputeProfit(o *Order, margins tour.MarginTable) ProfitBreakdown {
	tickets := o.TotalTickets()
	if tickets > 0 {
		perTicket := o.TotalCost.Div(decimal.NewFromInt(int64(tickets)))
		costPerTicket := perTicket.Sub(FixedProfitPerTicket)
		if costPerTicket.IsNegative() {
			costPerTicket = decimal.Zero
		}
		ticketCost := costPerTicket.Mul(decimal.NewFromInt(int64(tickets))).Round(2)
		return ProfitBreakdown{
			TicketCost:      ticketCost,
			ProjectedProfit: o.TotalCost.Sub(ticketCost),
			TicketBased:     true,
		}
	}

	margin := margins.MarginFor(o.Tour)
	profit := o.TotalCost.Mul(margin).Round(2)
	return ProfitBreakdown{
		TicketCost:      o.TotalCost.Sub(profit),
		ProjectedProfit: profit,
	}
}

// LooksStale reports whether the order's stored profit looks like output of
// the retired revenue-share formula, which booked nearly all revenue as
// profit. Any order whose profit exceeds 90% of revenue qualifies.
func LooksStale(o *Order) bool {
	if o.ProjectedProfit == nil || !o.TotalCost.IsPositive() {
		return false
	}
	return o.ProjectedProfit.Div(o.TotalCost).GreaterThan(staleProfitRatio)
}

// NeedsRecompute reports whether the order's stored profit fields are
// missing or stale.
func NeedsRecompute(o *Order) bool {
	if o.ProjectedProfit == nil || o.TotalTicketCost == nil {
		return true
	}
	return LooksStale(o)
}

// IsRecomputeCandidate reports whether the recompute job should touch this
// order: it has revenue, is not in a terminally excluded status, and its
// profit fields need a fresh pass.
func IsRecomputeCandidate(o *Order) bool {
	return o.TotalCost.IsPositive() &&
		!o.Status.ExcludesFromFinancials() &&
		NeedsRecompute(o)
}
