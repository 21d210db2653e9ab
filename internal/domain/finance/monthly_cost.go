package finance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tourdesk/backend/internal/domain/shared"
)

// MonthlyCostRecord captures one month of fixed operational overhead broken
// down by category. At most one record exists per calendar month.
type MonthlyCostRecord struct {
	shared.BaseEntity
	Year      int             `json:"year"`
	Month     int             `json:"month"` // 1-12
	Salaries  decimal.Decimal `json:"salaries"`
	Rent      decimal.Decimal `json:"rent"`
	Software  decimal.Decimal `json:"software"`
	Utilities decimal.Decimal `json:"utilities"`
	Other     decimal.Decimal `json:"other"`
	Currency  string          `json:"currency"`
	Notes     string          `json:"notes"`
}

// PeriodKey returns the month period key the record belongs to, e.g. "2026-01".
func (r *MonthlyCostRecord) PeriodKey() string {
	return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
}

// OperationalTotal returns the sum of all cost categories for the month.
func (r *MonthlyCostRecord) OperationalTotal() decimal.Decimal {
	return r.Salaries.Add(r.Rent).Add(r.Software).Add(r.Utilities).Add(r.Other)
}

// MonthlyCostRepository defines monthly cost data access.
type MonthlyCostRepository interface {
	ListAll(ctx context.Context) ([]*MonthlyCostRecord, error)
}
