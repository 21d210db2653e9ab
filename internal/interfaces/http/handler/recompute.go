package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookingapp "github.com/tourdesk/backend/internal/application/booking"
	"github.com/tourdesk/backend/internal/interfaces/http/dto"
)

// RecomputeHandler handles the admin profit recompute endpoints
type RecomputeHandler struct {
	BaseHandler
	service *bookingapp.RecomputeService
}

// NewRecomputeHandler creates a new RecomputeHandler
func NewRecomputeHandler(service *bookingapp.RecomputeService) *RecomputeHandler {
	return &RecomputeHandler{
		service: service,
	}
}

// TriggerRecompute runs one bounded recompute pass and returns its report.
// The report is returned as-is: a partially processed run with per-order
// errors or remaining candidates is still a 200 so callers can inspect it
// and decide whether to trigger another pass.
func (h *RecomputeHandler) TriggerRecompute(c *gin.Context) {
	report, err := h.service.Run(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// RecomputeStatusResponse represents the current recompute state
type RecomputeStatusResponse struct {
	Running    bool                        `json:"running"`
	LastReport *bookingapp.RecomputeReport `json:"last_report,omitempty"`
}

// GetRecomputeStatus returns whether a run is active and the last report
func (h *RecomputeHandler) GetRecomputeStatus(c *gin.Context) {
	status := RecomputeStatusResponse{
		Running:    h.service.IsRunning(),
		LastReport: h.service.LastReport(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// RegisterRoutes registers admin recompute routes
func (h *RecomputeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.POST("/recompute-profits", h.TriggerRecompute)
		admin.GET("/recompute-profits/status", h.GetRecomputeStatus)
	}
}
