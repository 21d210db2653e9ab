package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/tourdesk/backend/internal/application/finance"
)

// MonthlyCostHandler handles monthly operational cost API endpoints
type MonthlyCostHandler struct {
	BaseHandler
	service *financeapp.MonthlyCostService
}

// NewMonthlyCostHandler creates a new MonthlyCostHandler
func NewMonthlyCostHandler(service *financeapp.MonthlyCostService) *MonthlyCostHandler {
	return &MonthlyCostHandler{
		service: service,
	}
}

// List returns all monthly operational cost records
func (h *MonthlyCostHandler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// RegisterRoutes registers monthly cost routes
func (h *MonthlyCostHandler) RegisterRoutes(rg *gin.RouterGroup) {
	costs := rg.Group("/monthly-costs")
	{
		costs.GET("", h.List)
	}
}
