package handler

import (
	"net/http"

	dashboardService "bouncearound.com/daycare/internal/modules/dashboard/service"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service dashboardService.DashboardService
}

func NewDashboardHandler(service dashboardService.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
