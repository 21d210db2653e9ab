package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/tourdesk/backend/internal/application/report"
	"github.com/tourdesk/backend/internal/domain/report"
)

// ReportHandler handles profitability report API endpoints
type ReportHandler struct {
	BaseHandler
	service            *reportapp.ProfitabilityService
	defaultGranularity report.Granularity
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *reportapp.ProfitabilityService, defaultGranularity report.Granularity) *ReportHandler {
	if !defaultGranularity.IsValid() {
		defaultGranularity = report.GranularityMonth
	}
	return &ReportHandler{
		service:            service,
		defaultGranularity: defaultGranularity,
	}
}

// ProfitabilityRequest represents query parameters for the profitability report
type ProfitabilityRequest struct {
	Granularity string `form:"granularity"`
	Period      string `form:"period" binding:"omitempty,periodkey"`
}

// GetProfitability returns the profitability matrix at the requested
// granularity, optionally narrowed to a single period key
func (h *ReportHandler) GetProfitability(c *gin.Context) {
	var req ProfitabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	granularity := h.defaultGranularity
	if req.Granularity != "" {
		parsed, err := report.ParseGranularity(req.Granularity)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		granularity = parsed
	}

	result, err := h.service.GetProfitability(c.Request.Context(), reportapp.ProfitabilityQuery{
		Granularity:  granularity,
		PeriodFilter: req.Period,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/profitability", h.GetProfitability)
	}
}
