package persistence

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tourdesk/backend/internal/domain/booking"
	"github.com/tourdesk/backend/internal/domain/shared"
	"github.com/tourdesk/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements booking.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// ListAll returns every stored order with its ticket lines
func (r *GormOrderRepository) ListAll(ctx context.Context) ([]*booking.Order, error) {
	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Tickets").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	orders := make([]*booking.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, rows[i].ToDomain())
	}
	return orders, nil
}

// UpdateProfitFields persists only the two derived profit columns
func (r *GormOrderRepository) UpdateProfitFields(ctx context.Context, id string, ticketCost, projectedProfit decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_ticket_cost": ticketCost,
			"projected_profit":  projectedProfit,
		})
	if result.Error != nil {
		return fmt.Errorf("updating profit fields for order %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
