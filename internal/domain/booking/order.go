package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tourdesk/backend/internal/domain/shared"
)

// OrderStatus represents the lifecycle state of a booking order. Values
// mirror the ticketing storefront the orders are synced from.
type OrderStatus string

const (
	OrderStatusUnprocessed    OrderStatus = "unprocessed"
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPendingPayment OrderStatus = "pending-payment"
	OrderStatusOnHold         OrderStatus = "on-hold"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusRefunded       OrderStatus = "refunded"
	OrderStatusFailed         OrderStatus = "failed"
)

// IsValid checks if the status is a known OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusUnprocessed, OrderStatusPending, OrderStatusPendingPayment,
		OrderStatusOnHold, OrderStatusCompleted, OrderStatusCancelled,
		OrderStatusRefunded, OrderStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// ExcludesFromFinancials returns true for statuses that permanently remove an
// order from every financial aggregate, regardless of its other fields.
func (s OrderStatus) ExcludesFromFinancials() bool {
	return s == OrderStatusCancelled || s == OrderStatusFailed || s == OrderStatusRefunded
}

// TicketLine is one line of an order's ticket breakdown.
type TicketLine struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Order is a revenue-bearing booking record. Intake and status changes happen
// in external systems; this engine only ever writes the two derived profit
// fields, and only through the recompute job.
type Order struct {
	shared.BaseEntity
	OrderNumber     string           `json:"order_number"` // external display id, may be empty
	Tour            string           `json:"tour"`         // free text, spelling varies by source
	Status          OrderStatus      `json:"status"`
	TotalCost       decimal.Decimal  `json:"total_cost"` // customer-paid revenue
	Currency        string           `json:"currency"`   // carried through, never converted
	Tickets         []TicketLine     `json:"tickets"`
	TotalTicketCost *decimal.Decimal `json:"total_ticket_cost"` // derived, owned by the profit calculator
	ProjectedProfit *decimal.Decimal `json:"projected_profit"`  // derived, owned by the profit calculator
	PurchaseDate    *time.Time       `json:"purchase_date"`
}

// TotalTickets returns the summed ticket quantity across all lines.
func (o *Order) TotalTickets() int {
	total := 0
	for _, line := range o.Tickets {
		if line.Quantity > 0 {
			total += line.Quantity
		}
	}
	return total
}

// BucketDate returns the timestamp used for period bucketing: the purchase
// date when the storefront provided one, otherwise the record creation time.
func (o *Order) BucketDate() time.Time {
	if o.PurchaseDate != nil {
		return *o.PurchaseDate
	}
	return o.CreatedAt
}

// DisplayID returns the external order number when present, falling back to
// the store-assigned id. Used in logs and error reports.
func (o *Order) DisplayID() string {
	if o.OrderNumber != "" {
		return o.OrderNumber
	}
	return o.ID.String()
}

// IsAggregatable reports whether the order is eligible for financial
// aggregates: not in an excluded status, positive revenue, and a computed
// profit on record.
func (o *Order) IsAggregatable() bool {
	return !o.Status.ExcludesFromFinancials() &&
		o.TotalCost.IsPositive() &&
		o.ProjectedProfit != nil
}

// ApplyProfit writes a computed profit breakdown onto the order.
func (o *Order) ApplyProfit(pb ProfitBreakdown) {
	ticketCost := pb.TicketCost
	profit := pb.ProjectedProfit
	o.TotalTicketCost = &ticketCost
	o.ProjectedProfit = &profit
	o.UpdatedAt = time.Now()
}
