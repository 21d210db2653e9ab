package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tourdesk/backend/internal/domain/advertising"
	"github.com/tourdesk/backend/internal/infrastructure/persistence/models"
)

// GormAdSpendRepository implements advertising.AdSpendRepository using GORM
type GormAdSpendRepository struct {
	db *gorm.DB
}

// NewGormAdSpendRepository creates a new GormAdSpendRepository
func NewGormAdSpendRepository(db *gorm.DB) *GormAdSpendRepository {
	return &GormAdSpendRepository{db: db}
}

// ListAll returns every stored ad spend record
func (r *GormAdSpendRepository) ListAll(ctx context.Context) ([]*advertising.AdSpendRecord, error) {
	var rows []models.AdSpendRecordModel
	if err := r.db.WithContext(ctx).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing ad spend records: %w", err)
	}

	records := make([]*advertising.AdSpendRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].ToDomain())
	}
	return records, nil
}
