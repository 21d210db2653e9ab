package advertising

import (
	"context"
	"time"

	"github.com/tourdesk/backend/internal/domain/advertising"
	"github.com/tourdesk/backend/internal/domain/tour"
)

// AdSpendService exposes read access to imported ad spend records.
type AdSpendService struct {
	adSpendRepo advertising.AdSpendRepository
}

// NewAdSpendService creates a new AdSpendService.
func NewAdSpendService(adSpendRepo advertising.AdSpendRepository) *AdSpendService {
	return &AdSpendService{adSpendRepo: adSpendRepo}
}

// AdSpendResponse is one spend record in list responses.
type AdSpendResponse struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	TourName string    `json:"tour_name"`
	TourKey  string    `json:"tour_key"`
	Cost     float64   `json:"cost"`
	Currency string    `json:"currency"`
	Source   string    `json:"source"`
}

// List returns all ad spend records with their normalized join keys.
func (s *AdSpendService) List(ctx context.Context) ([]AdSpendResponse, error) {
	records, err := s.adSpendRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]AdSpendResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, AdSpendResponse{
			ID:       r.ID.String(),
			Date:     r.Date,
			TourName: r.TourName,
			TourKey:  tour.NormalizeKey(r.TourName),
			Cost:     r.Cost.InexactFloat64(),
			Currency: r.Currency,
			Source:   r.Source,
		})
	}
	return resp, nil
}
