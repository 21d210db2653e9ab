package advertising

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tourdesk/backend/internal/domain/shared"
)

// AdSpendRecord is one day of advertising spend attributed to a tour. The
// tour name is free text entered in the ad platform and only lines up with
// order tour names after normalization.
type AdSpendRecord struct {
	shared.BaseEntity
	Date     time.Time       `json:"date"`
	TourName string          `json:"tour_name"`
	Cost     decimal.Decimal `json:"cost"`
	Currency string          `json:"currency"`
	Source   string          `json:"source"` // ad platform, e.g. "google", "meta"
}

// AdSpendRepository defines ad spend data access.
type AdSpendRepository interface {
	ListAll(ctx context.Context) ([]*AdSpendRecord, error)
}
