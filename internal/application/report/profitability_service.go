package report

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tourdesk/backend/internal/domain/advertising"
	"github.com/tourdesk/backend/internal/domain/booking"
	"github.com/tourdesk/backend/internal/domain/finance"
	"github.com/tourdesk/backend/internal/domain/report"
)

// ProfitabilityService builds profitability reports from the stored record
// sets. It only ever reads; profit fields are written by the recompute job.
type ProfitabilityService struct {
	orderRepo       booking.OrderRepository
	adSpendRepo     advertising.AdSpendRepository
	monthlyCostRepo finance.MonthlyCostRepository
	location        *time.Location
	logger          *zap.Logger
}

// NewProfitabilityService creates a new ProfitabilityService. All bucketing
// happens in loc so reports are reproducible regardless of server timezone.
func NewProfitabilityService(
	orderRepo booking.OrderRepository,
	adSpendRepo advertising.AdSpendRepository,
	monthlyCostRepo finance.MonthlyCostRepository,
	loc *time.Location,
	logger *zap.Logger,
) *ProfitabilityService {
	if loc == nil {
		loc = time.UTC
	}
	return &ProfitabilityService{
		orderRepo:       orderRepo,
		adSpendRepo:     adSpendRepo,
		monthlyCostRepo: monthlyCostRepo,
		location:        loc,
		logger:          logger,
	}
}

// ProfitabilityQuery is the parsed report request.
type ProfitabilityQuery struct {
	Granularity  report.Granularity
	PeriodFilter string // exact bucket key, empty means all periods
}

// FinancialSummaryResponse is the JSON shape of one metric set.
type FinancialSummaryResponse struct {
	Revenue          float64 `json:"revenue"`
	Cost             float64 `json:"cost"`
	GrossProfit      float64 `json:"gross_profit"`
	AdSpend          float64 `json:"ad_spend"`
	OperationalCosts float64 `json:"operational_costs"`
	NetProfit        float64 `json:"net_profit"`
	POAS             float64 `json:"poas"`
	OrderCount       int     `json:"order_count"`
}

// TourRowResponse is one tour column within a period.
type TourRowResponse struct {
	Key         string                   `json:"key"`
	DisplayName string                   `json:"display_name"`
	Summary     FinancialSummaryResponse `json:"summary"`
}

// PeriodReportResponse is one period's rows plus its total.
type PeriodReportResponse struct {
	Key   string                   `json:"key"`
	Label string                   `json:"label"`
	Tours []TourRowResponse        `json:"tours"`
	Total FinancialSummaryResponse `json:"total"`
}

// ProfitabilityResponse is the full report payload.
type ProfitabilityResponse struct {
	Granularity string                   `json:"granularity"`
	Periods     []PeriodReportResponse   `json:"periods"`
	GrandTotal  FinancialSummaryResponse `json:"grand_total"`
}

// GetProfitability loads all three record sets, aggregates them at the
// requested granularity and optionally narrows the result to one period.
func (s *ProfitabilityService) GetProfitability(ctx context.Context, query ProfitabilityQuery) (*ProfitabilityResponse, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	adSpend, err := s.adSpendRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	monthlyCosts, err := s.monthlyCostRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	matrix := report.Aggregate(report.AggregateInput{
		Orders:       orders,
		AdSpend:      adSpend,
		MonthlyCosts: monthlyCosts,
		Granularity:  query.Granularity,
		Location:     s.location,
	})

	s.logger.Debug("profitability report built",
		zap.String("granularity", query.Granularity.String()),
		zap.Int("orders", len(orders)),
		zap.Int("ad_spend_records", len(adSpend)),
		zap.Int("periods", len(matrix.Periods)))

	resp := &ProfitabilityResponse{
		Granularity: query.Granularity.String(),
		Periods:     make([]PeriodReportResponse, 0, len(matrix.Periods)),
		GrandTotal:  toSummaryResponse(matrix.GrandTotal),
	}
	for _, period := range matrix.SortedPeriods() {
		if query.PeriodFilter != "" && period.Period.Key != query.PeriodFilter {
			continue
		}
		resp.Periods = append(resp.Periods, toPeriodResponse(period))
	}
	return resp, nil
}

func toPeriodResponse(period *report.PeriodReport) PeriodReportResponse {
	resp := PeriodReportResponse{
		Key:   period.Period.Key,
		Label: period.Period.Label,
		Tours: make([]TourRowResponse, 0, len(period.Tours)),
		Total: toSummaryResponse(period.Total),
	}
	for _, row := range period.SortedTours() {
		resp.Tours = append(resp.Tours, TourRowResponse{
			Key:         row.Key,
			DisplayName: row.DisplayName,
			Summary:     toSummaryResponse(row.Summary),
		})
	}
	return resp
}

func toSummaryResponse(s report.FinancialSummary) FinancialSummaryResponse {
	return FinancialSummaryResponse{
		Revenue:          s.Revenue.InexactFloat64(),
		Cost:             s.Cost.InexactFloat64(),
		GrossProfit:      s.GrossProfit.InexactFloat64(),
		AdSpend:          s.AdSpend.InexactFloat64(),
		OperationalCosts: s.OperationalCosts.InexactFloat64(),
		NetProfit:        s.NetProfit.InexactFloat64(),
		POAS:             s.POAS.InexactFloat64(),
		OrderCount:       s.OrderCount,
	}
}
