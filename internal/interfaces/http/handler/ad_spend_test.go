package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	advertisingapp "github.com/tourdesk/backend/internal/application/advertising"
	"github.com/tourdesk/backend/internal/domain/advertising"
	"github.com/tourdesk/backend/internal/interfaces/http/dto"
)

func setupAdSpendRouter(t *testing.T, repo *MockAdSpendRepository) *gin.Engine {
	t.Helper()

	h := NewAdSpendHandler(advertisingapp.NewAdSpendService(repo))
	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestAdSpendHandler_List(t *testing.T) {
	repo := new(MockAdSpendRepository)
	repo.On("ListAll", mock.Anything).Return([]*advertising.AdSpendRecord{
		{
			Date:     time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC),
			TourName: "Corvin's castle tour",
			Cost:     decimal.RequireFromString("25.50"),
			Currency: "EUR",
			Source:   "google",
		},
	}, nil)

	engine := setupAdSpendRouter(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ad-spend", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	records := resp.Data.([]interface{})
	require.Len(t, records, 1)
	record := records[0].(map[string]interface{})
	assert.Equal(t, "Corvin's castle tour", record["tour_name"])
	assert.Equal(t, "corvin castle", record["tour_key"])
	assert.InDelta(t, 25.50, record["cost"], 0.001)
}

func TestAdSpendHandler_List_StoreFailure(t *testing.T) {
	repo := new(MockAdSpendRepository)
	repo.On("ListAll", mock.Anything).Return(nil, errors.New("timeout"))

	engine := setupAdSpendRouter(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ad-spend", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
