package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"itemvault/internal/services"
)

// DashboardHandler serves the dashboard aggregates
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetOverview returns the dashboard aggregates
// @Summary     Dashboard overview
// @Description Totals, the most recent items, seven days of activity and the per-category distribution
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} dashboard.Aggregates "Aggregates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	agg, err := h.dashboardService.GetOverview()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, agg)
}
