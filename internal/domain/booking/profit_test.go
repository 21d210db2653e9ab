package booking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/backend/internal/domain/tour"
)

func orderWith(total float64, tickets int) *Order {
	o := &Order{
		Tour:      "Castle Tour",
		Status:    OrderStatusCompleted,
		TotalCost: decimal.NewFromFloat(total),
		Currency:  "EUR",
	}
	if tickets > 0 {
		o.Tickets = []TicketLine{{Description: "Adult", Quantity: tickets}}
	}
	return o
}

func TestComputeProfit_TicketBased(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		tickets    int
		wantCost   string
		wantProfit string
	}{
		{"three tickets", 100, 3, "67", "33"},
		{"single ticket", 50, 1, "39", "11"},
		{"cheap order floors cost at zero", 20, 3, "0", "20"},
		{"exact per-ticket profit", 33, 3, "0", "33"},
		{"free order", 0, 2, "0", "0"},
	}

	margins := tour.MarginTable{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb := ComputeProfit(orderWith(tt.total, tt.tickets), margins)
			assert.True(t, pb.TicketBased)
			assert.True(t, pb.TicketCost.Equal(decimal.RequireFromString(tt.wantCost)),
				"ticket cost = %s", pb.TicketCost)
			assert.True(t, pb.ProjectedProfit.Equal(decimal.RequireFromString(tt.wantProfit)),
				"projected profit = %s", pb.ProjectedProfit)
		})
	}
}

func TestComputeProfit_SumsToTotal(t *testing.T) {
	// Awkward division: 100 / 3 does not terminate, but cost + profit must
	// still reconstruct revenue exactly.
	pb := ComputeProfit(orderWith(100, 3), tour.MarginTable{})
	sum := pb.TicketCost.Add(pb.ProjectedProfit)
	assert.True(t, sum.Equal(decimal.NewFromInt(100)), "sum = %s", sum)
}

func TestComputeProfit_MarginFallback(t *testing.T) {
	t.Run("default margin", func(t *testing.T) {
		pb := ComputeProfit(orderWith(100, 0), tour.MarginTable{})
		assert.False(t, pb.TicketBased)
		assert.True(t, pb.ProjectedProfit.Equal(decimal.NewFromInt(25)))
		assert.True(t, pb.TicketCost.Equal(decimal.NewFromInt(75)))
	})

	t.Run("configured margin", func(t *testing.T) {
		margins := tour.NewMarginTable(map[string]float64{"Castle Tour": 0.4})
		pb := ComputeProfit(orderWith(200, 0), margins)
		assert.True(t, pb.ProjectedProfit.Equal(decimal.NewFromInt(80)))
		assert.True(t, pb.TicketCost.Equal(decimal.NewFromInt(120)))
	})

	t.Run("zero-quantity lines fall back to margin", func(t *testing.T) {
		o := orderWith(100, 0)
		o.Tickets = []TicketLine{{Description: "Placeholder", Quantity: 0}}
		pb := ComputeProfit(o, tour.MarginTable{})
		assert.False(t, pb.TicketBased)
	})
}

func TestLooksStale(t *testing.T) {
	mustDec := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	tests := []struct {
		name   string
		total  string
		profit *decimal.Decimal
		want   bool
	}{
		{"legacy revenue-share profit", "100", mustDec("95"), true},
		{"healthy ticket-based profit", "100", mustDec("33"), false},
		{"exactly at threshold", "100", mustDec("90"), false},
		{"just above threshold", "100", mustDec("90.01"), true},
		{"no profit on record", "100", nil, false},
		{"zero revenue", "0", mustDec("5"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{TotalCost: decimal.RequireFromString(tt.total), ProjectedProfit: tt.profit}
			assert.Equal(t, tt.want, LooksStale(o))
		})
	}
}

func TestNeedsRecompute(t *testing.T) {
	profit := decimal.NewFromInt(33)
	cost := decimal.NewFromInt(67)

	missing := &Order{TotalCost: decimal.NewFromInt(100)}
	assert.True(t, NeedsRecompute(missing))

	stale := &Order{TotalCost: decimal.NewFromInt(100)}
	staleProfit := decimal.NewFromInt(95)
	stale.ProjectedProfit = &staleProfit
	stale.TotalTicketCost = &cost
	assert.True(t, NeedsRecompute(stale))

	fresh := &Order{TotalCost: decimal.NewFromInt(100)}
	fresh.ProjectedProfit = &profit
	fresh.TotalTicketCost = &cost
	assert.False(t, NeedsRecompute(fresh))
}

func TestApplyProfit(t *testing.T) {
	o := orderWith(100, 3)
	pb := ComputeProfit(o, tour.MarginTable{})
	o.ApplyProfit(pb)

	require.NotNil(t, o.TotalTicketCost)
	require.NotNil(t, o.ProjectedProfit)
	assert.True(t, o.TotalTicketCost.Equal(decimal.NewFromInt(67)))
	assert.True(t, o.ProjectedProfit.Equal(decimal.NewFromInt(33)))
}
