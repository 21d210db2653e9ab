package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tourdesk/backend/internal/domain/finance"
	"github.com/tourdesk/backend/internal/infrastructure/persistence/models"
)

// GormMonthlyCostRepository implements finance.MonthlyCostRepository using GORM
type GormMonthlyCostRepository struct {
	db *gorm.DB
}

// NewGormMonthlyCostRepository creates a new GormMonthlyCostRepository
func NewGormMonthlyCostRepository(db *gorm.DB) *GormMonthlyCostRepository {
	return &GormMonthlyCostRepository{db: db}
}

// ListAll returns every stored monthly cost record
func (r *GormMonthlyCostRepository) ListAll(ctx context.Context) ([]*finance.MonthlyCostRecord, error) {
	var rows []models.MonthlyCostRecordModel
	if err := r.db.WithContext(ctx).
		Order("year ASC, month ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing monthly cost records: %w", err)
	}

	records := make([]*finance.MonthlyCostRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].ToDomain())
	}
	return records, nil
}
