package handler

import (
	"github.com/gin-gonic/gin"

	advertisingapp "github.com/tourdesk/backend/internal/application/advertising"
)

// AdSpendHandler handles ad spend API endpoints
type AdSpendHandler struct {
	BaseHandler
	service *advertisingapp.AdSpendService
}

// NewAdSpendHandler creates a new AdSpendHandler
func NewAdSpendHandler(service *advertisingapp.AdSpendService) *AdSpendHandler {
	return &AdSpendHandler{
		service: service,
	}
}

// List returns all ad spend records
func (h *AdSpendHandler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// RegisterRoutes registers ad spend routes
func (h *AdSpendHandler) RegisterRoutes(rg *gin.RouterGroup) {
	adSpend := rg.Group("/ad-spend")
	{
		adSpend.GET("", h.List)
	}
}
