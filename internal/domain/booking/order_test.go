package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus(t *testing.T) {
	t.Run("valid statuses", func(t *testing.T) {
		for _, s := range []OrderStatus{
			OrderStatusUnprocessed, OrderStatusPending, OrderStatusPendingPayment,
			OrderStatusOnHold, OrderStatusCompleted, OrderStatusCancelled,
			OrderStatusRefunded, OrderStatusFailed,
		} {
			assert.True(t, s.IsValid(), "status %s", s)
		}
		assert.False(t, OrderStatus("shipped").IsValid())
	})

	t.Run("financial exclusion", func(t *testing.T) {
		assert.True(t, OrderStatusCancelled.ExcludesFromFinancials())
		assert.True(t, OrderStatusFailed.ExcludesFromFinancials())
		assert.True(t, OrderStatusRefunded.ExcludesFromFinancials())
		assert.False(t, OrderStatusCompleted.ExcludesFromFinancials())
		assert.False(t, OrderStatusPendingPayment.ExcludesFromFinancials())
		assert.False(t, OrderStatusOnHold.ExcludesFromFinancials())
	})
}

func TestOrderTotalTickets(t *testing.T) {
	o := &Order{Tickets: []TicketLine{
		{Description: "Adult", Quantity: 2},
		{Description: "Child", Quantity: 1},
		{Description: "Bad import", Quantity: -3},
	}}
	assert.Equal(t, 3, o.TotalTickets())

	assert.Equal(t, 0, (&Order{}).TotalTickets())
}

func TestOrderBucketDate(t *testing.T) {
	created := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	purchased := time.Date(2026, 1, 7, 9, 30, 0, 0, time.UTC)

	o := &Order{}
	o.CreatedAt = created
	assert.Equal(t, created, o.BucketDate())

	o.PurchaseDate = &purchased
	assert.Equal(t, purchased, o.BucketDate())
}

func TestOrderDisplayID(t *testing.T) {
	id := uuid.New()
	o := &Order{}
	o.ID = id
	assert.Equal(t, id.String(), o.DisplayID())

	o.OrderNumber = "WC-1042"
	assert.Equal(t, "WC-1042", o.DisplayID())
}

func TestOrderIsAggregatable(t *testing.T) {
	profit := decimal.NewFromInt(33)

	base := func() *Order {
		return &Order{
			Status:          OrderStatusCompleted,
			TotalCost:       decimal.NewFromInt(100),
			ProjectedProfit: &profit,
		}
	}

	assert.True(t, base().IsAggregatable())

	refunded := base()
	refunded.Status = OrderStatusRefunded
	assert.False(t, refunded.IsAggregatable())

	zero := base()
	zero.TotalCost = decimal.Zero
	assert.False(t, zero.IsAggregatable())

	uncomputed := base()
	uncomputed.ProjectedProfit = nil
	assert.False(t, uncomputed.IsAggregatable())
}
