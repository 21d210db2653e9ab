package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tourdesk/backend/internal/domain/advertising"
)

// AdSpendRecordModel maps advertising.AdSpendRecord to the ad_spend_records table
type AdSpendRecordModel struct {
	BaseModel
	Date     time.Time       `gorm:"type:date;not null;index"`
	TourName string          `gorm:"size:255;not null;index"`
	Cost     decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Currency string          `gorm:"size:8;not null;default:'EUR'"`
	Source   string          `gorm:"size:64"`
}

// TableName returns the table name for AdSpendRecordModel
func (AdSpendRecordModel) TableName() string {
	return "ad_spend_records"
}

// ToDomain converts AdSpendRecordModel to a domain AdSpendRecord
func (m *AdSpendRecordModel) ToDomain() *advertising.AdSpendRecord {
	return &advertising.AdSpendRecord{
		BaseEntity: m.BaseModel.ToDomain(),
		Date:       m.Date,
		TourName:   m.TourName,
		Cost:       m.Cost,
		Currency:   m.Currency,
		Source:     m.Source,
	}
}

// FromDomain populates AdSpendRecordModel from a domain AdSpendRecord
func (m *AdSpendRecordModel) FromDomain(record *advertising.AdSpendRecord) {
	m.BaseModel.FromDomainBaseEntity(record.BaseEntity)
	m.Date = record.Date
	m.TourName = record.TourName
	m.Cost = record.Cost
	m.Currency = record.Currency
	m.Source = record.Source
}
