package models

import (
	"github.com/shopspring/decimal"

	"github.com/tourdesk/backend/internal/domain/finance"
)

// MonthlyCostRecordModel maps finance.MonthlyCostRecord to the monthly_costs table
type MonthlyCostRecordModel struct {
	BaseModel
	Year      int             `gorm:"not null;uniqueIndex:idx_monthly_costs_period"`
	Month     int             `gorm:"not null;uniqueIndex:idx_monthly_costs_period"`
	Salaries  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Rent      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Software  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Utilities decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Other     decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Currency  string          `gorm:"size:8;not null;default:'EUR'"`
	Notes     string          `gorm:"type:text"`
}

// TableName returns the table name for MonthlyCostRecordModel
func (MonthlyCostRecordModel) TableName() string {
	return "monthly_costs"
}

// ToDomain converts MonthlyCostRecordModel to a domain MonthlyCostRecord
func (m *MonthlyCostRecordModel) ToDomain() *finance.MonthlyCostRecord {
	return &finance.MonthlyCostRecord{
		BaseEntity: m.BaseModel.ToDomain(),
		Year:       m.Year,
		Month:      m.Month,
		Salaries:   m.Salaries,
		Rent:       m.Rent,
		Software:   m.Software,
		Utilities:  m.Utilities,
		Other:      m.Other,
		Currency:   m.Currency,
		Notes:      m.Notes,
	}
}

// FromDomain populates MonthlyCostRecordModel from a domain MonthlyCostRecord
func (m *MonthlyCostRecordModel) FromDomain(record *finance.MonthlyCostRecord) {
	m.BaseModel.FromDomainBaseEntity(record.BaseEntity)
	m.Year = record.Year
	m.Month = record.Month
	m.Salaries = record.Salaries
	m.Rent = record.Rent
	m.Software = record.Software
	m.Utilities = record.Utilities
	m.Other = record.Other
	m.Currency = record.Currency
	m.Notes = record.Notes
}
