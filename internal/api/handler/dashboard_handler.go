package handler

import (
	"github.com/gin-gonic/gin"

	"sports-scheduler/internal/service"
	"sports-scheduler/pkg/response"
)

// DashboardHandler the home screen numbers.
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Summary GET /api/v1/dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	summary, err := h.dashboardSvc.Summary(c.Request.Context(), id)
	if err != nil {
		handleKind(c, err)
		return
	}
	response.OK(c, summary)
}
