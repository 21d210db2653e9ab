package finance

import (
	"context"

	"github.com/tourdesk/backend/internal/domain/finance"
)

// MonthlyCostService exposes read access to monthly operational cost records.
type MonthlyCostService struct {
	monthlyCostRepo finance.MonthlyCostRepository
}

// NewMonthlyCostService creates a new MonthlyCostService.
func NewMonthlyCostService(monthlyCostRepo finance.MonthlyCostRepository) *MonthlyCostService {
	return &MonthlyCostService{monthlyCostRepo: monthlyCostRepo}
}

// MonthlyCostResponse is one monthly cost record in list responses.
type MonthlyCostResponse struct {
	ID        string  `json:"id"`
	Period    string  `json:"period"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Salaries  float64 `json:"salaries"`
	Rent      float64 `json:"rent"`
	Software  float64 `json:"software"`
	Utilities float64 `json:"utilities"`
	Other     float64 `json:"other"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
	Notes     string  `json:"notes,omitempty"`
}

// List returns all monthly cost records with their category totals.
func (s *MonthlyCostService) List(ctx context.Context) ([]MonthlyCostResponse, error) {
	records, err := s.monthlyCostRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]MonthlyCostResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, MonthlyCostResponse{
			ID:        r.ID.String(),
			Period:    r.PeriodKey(),
			Year:      r.Year,
			Month:     r.Month,
			Salaries:  r.Salaries.InexactFloat64(),
			Rent:      r.Rent.InexactFloat64(),
			Software:  r.Software.InexactFloat64(),
			Utilities: r.Utilities.InexactFloat64(),
			Other:     r.Other.InexactFloat64(),
			Total:     r.OperationalTotal().InexactFloat64(),
			Currency:  r.Currency,
			Notes:     r.Notes,
		})
	}
	return resp, nil
}
