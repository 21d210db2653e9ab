// Package integration provides integration testing for the TourDesk backend
// API. This file exercises the full recompute-then-report flow against a real
// database.
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	advertisingapp "github.com/tourdesk/backend/internal/application/advertising"
	bookingapp "github.com/tourdesk/backend/internal/application/booking"
	reportapp "github.com/tourdesk/backend/internal/application/report"
	"github.com/tourdesk/backend/internal/domain/booking"
	"github.com/tourdesk/backend/internal/domain/report"
	"github.com/tourdesk/backend/internal/domain/tour"
	"github.com/tourdesk/backend/internal/infrastructure/persistence"
	"github.com/tourdesk/backend/internal/infrastructure/persistence/models"
	"github.com/tourdesk/backend/internal/interfaces/http/handler"
	"github.com/tourdesk/backend/internal/interfaces/http/middleware"
	"github.com/tourdesk/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func setupEngine(t *testing.T, tdb *TestDB) *gin.Engine {
	t.Helper()

	orderRepo := persistence.NewGormOrderRepository(tdb.DB)
	adSpendRepo := persistence.NewGormAdSpendRepository(tdb.DB)
	monthlyCostRepo := persistence.NewGormMonthlyCostRepository(tdb.DB)

	logger := zap.NewNop()
	profitabilityService := reportapp.NewProfitabilityService(orderRepo, adSpendRepo, monthlyCostRepo, time.UTC, logger)
	recomputeService := bookingapp.NewRecomputeService(orderRepo, tour.NewMarginTable(nil), bookingapp.RecomputeConfig{
		MaxOrders: 100,
		BatchSize: 10,
	}, logger)
	adSpendService := advertisingapp.NewAdSpendService(adSpendRepo)

	engine := gin.New()
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewReportHandler(profitabilityService, report.GranularityMonth)).
		Register(handler.NewRecomputeHandler(recomputeService)).
		Register(handler.NewAdSpendHandler(adSpendService))
	r.Setup()
	return engine
}

func seedOrder(t *testing.T, tdb *TestDB, tourName, total string, quantity int, purchased time.Time) uuid.UUID {
	t.Helper()

	m := models.OrderModel{
		OrderNumber:  "ORD-" + uuid.NewString()[:8],
		Tour:         tourName,
		Status:       booking.OrderStatusCompleted.String(),
		TotalCost:    decimal.RequireFromString(total),
		Currency:     "EUR",
		PurchaseDate: &purchased,
		Tickets: []models.TicketLineModel{
			{ID: uuid.New(), Description: "Adult", Quantity: quantity, UnitPrice: decimal.Zero},
		},
	}
	m.ID = uuid.New()
	m.CreatedAt = purchased
	m.UpdatedAt = purchased
	require.NoError(t, tdb.DB.Create(&m).Error)
	return m.ID
}

func TestRecomputeAndProfitabilityReport(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	engine := setupEngine(t, tdb)

	jan := time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC)
	seedOrder(t, tdb, "Corvin Castle Tour", "100.00", 3, jan)
	seedOrder(t, tdb, "Corvin's castle", "50.00", 1, jan)

	spend := models.AdSpendRecordModel{
		Date:     jan,
		TourName: "corvin castle tour",
		Cost:     decimal.RequireFromString("30.00"),
		Currency: "EUR",
		Source:   "google",
	}
	spend.ID = uuid.New()
	require.NoError(t, tdb.DB.Create(&spend).Error)

	costs := models.MonthlyCostRecordModel{
		Year:     2026,
		Month:    1,
		Salaries: decimal.RequireFromString("1000.00"),
		Rent:     decimal.RequireFromString("500.00"),
		Currency: "EUR",
	}
	costs.ID = uuid.New()
	require.NoError(t, tdb.DB.Create(&costs).Error)

	// Freshly synced orders carry no profit fields, so the report sees none
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/profitability?granularity=month", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	var before reportapp.ProfitabilityResponse
	require.NoError(t, json.Unmarshal(resp.Data, &before))
	assert.Empty(t, before.Periods)

	// Recompute fills in the derived profit columns
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/recompute-profits", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var runReport bookingapp.RecomputeReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runReport))
	assert.True(t, runReport.Success)
	assert.Equal(t, 2, runReport.UpdatedCount)
	assert.Equal(t, 0, runReport.ErrorCount)
	assert.Equal(t, 0, runReport.Remaining)

	// Both spellings now land in one column with a shared ad spend join
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/profitability?granularity=month", nil))
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var after reportapp.ProfitabilityResponse
	require.NoError(t, json.Unmarshal(resp.Data, &after))

	require.Len(t, after.Periods, 1)
	period := after.Periods[0]
	assert.Equal(t, "2026-01", period.Key)
	assert.Equal(t, "January 2026", period.Label)

	require.Len(t, period.Tours, 1)
	row := period.Tours[0]
	assert.Equal(t, "corvin castle", row.Key)
	assert.Equal(t, "Corvin Castle Tour", row.DisplayName)
	assert.InDelta(t, 150.0, row.Summary.Revenue, 0.001)
	assert.InDelta(t, 30.0, row.Summary.AdSpend, 0.001)
	assert.Equal(t, 2, row.Summary.OrderCount)

	// 100/3 tickets -> 33 profit, 50/1 ticket -> 11 profit
	assert.InDelta(t, 44.0, row.Summary.GrossProfit, 0.001)

	// Monthly overhead is only subtracted from the period total
	assert.InDelta(t, 0.0, row.Summary.OperationalCosts, 0.001)
	assert.InDelta(t, 1500.0, period.Total.OperationalCosts, 0.001)
	assert.InDelta(t, 44.0-30.0-1500.0, period.Total.NetProfit, 0.001)

	// A second run finds nothing left to do
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/recompute-profits", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runReport))
	assert.Equal(t, 0, runReport.ProcessedThisRun)
	assert.Equal(t, 0, runReport.UpdatedCount)
}

func TestAdSpendListAPI(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	engine := setupEngine(t, tdb)

	spend := models.AdSpendRecordModel{
		Date:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		TourName: "Bran Castle Tour",
		Cost:     decimal.RequireFromString("12.50"),
		Currency: "EUR",
		Source:   "meta",
	}
	spend.ID = uuid.New()
	require.NoError(t, tdb.DB.Create(&spend).Error)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ad-spend", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                            `json:"success"`
		Data    []advertisingapp.AdSpendResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Bran Castle Tour", resp.Data[0].TourName)
	assert.Equal(t, "bran castle", resp.Data[0].TourKey)
}
