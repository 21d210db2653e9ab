package booking

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderRepository defines order data access for aggregation and recompute.
type OrderRepository interface {
	// ListAll returns every stored order.
	ListAll(ctx context.Context) ([]*Order, error)
	// UpdateProfitFields persists the two derived profit columns for one
	// order, leaving everything else untouched.
	UpdateProfitFields(ctx context.Context, id string, ticketCost, projectedProfit decimal.Decimal) error
}
