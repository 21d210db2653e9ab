package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tourdesk/backend/internal/domain/booking"
)

// OrderModel maps booking.Order to the orders table
type OrderModel struct {
	BaseModel
	OrderNumber     string            `gorm:"size:64;index"`
	Tour            string            `gorm:"size:255;not null;index"`
	Status          string            `gorm:"size:32;not null;index"`
	TotalCost       decimal.Decimal   `gorm:"type:decimal(20,4);not null;default:0"`
	Currency        string            `gorm:"size:8;not null;default:'EUR'"`
	TotalTicketCost *decimal.Decimal  `gorm:"type:decimal(20,4)"`
	ProjectedProfit *decimal.Decimal  `gorm:"type:decimal(20,4)"`
	PurchaseDate    *time.Time        `gorm:"index"`
	Tickets         []TicketLineModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for OrderModel
func (OrderModel) TableName() string {
	return "orders"
}

// TicketLineModel maps one line of an order's ticket breakdown
type TicketLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"size:255"`
	Quantity    int             `gorm:"not null;default:0"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
}

// TableName returns the table name for TicketLineModel
func (TicketLineModel) TableName() string {
	return "order_ticket_lines"
}

// ToDomain converts OrderModel to a domain Order
func (m *OrderModel) ToDomain() *booking.Order {
	order := &booking.Order{
		BaseEntity:      m.BaseModel.ToDomain(),
		OrderNumber:     m.OrderNumber,
		Tour:            m.Tour,
		Status:          booking.OrderStatus(m.Status),
		TotalCost:       m.TotalCost,
		Currency:        m.Currency,
		TotalTicketCost: m.TotalTicketCost,
		ProjectedProfit: m.ProjectedProfit,
		PurchaseDate:    m.PurchaseDate,
	}
	for _, line := range m.Tickets {
		order.Tickets = append(order.Tickets, booking.TicketLine{
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
	return order
}

// FromDomain populates OrderModel from a domain Order
func (m *OrderModel) FromDomain(order *booking.Order) {
	m.BaseModel.FromDomainBaseEntity(order.BaseEntity)
	m.OrderNumber = order.OrderNumber
	m.Tour = order.Tour
	m.Status = order.Status.String()
	m.TotalCost = order.TotalCost
	m.Currency = order.Currency
	m.TotalTicketCost = order.TotalTicketCost
	m.ProjectedProfit = order.ProjectedProfit
	m.PurchaseDate = order.PurchaseDate

	m.Tickets = m.Tickets[:0]
	for _, line := range order.Tickets {
		m.Tickets = append(m.Tickets, TicketLineModel{
			ID:          uuid.New(),
			OrderID:     m.ID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
}
