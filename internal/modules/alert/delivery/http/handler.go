package handler

import (
	"net/http"

	"bouncearound.com/daycare/internal/modules/alert/dto"
	alertService "bouncearound.com/daycare/internal/modules/alert/service"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	service alertService.AlertService
}

func NewAlertHandler(service alertService.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

func (h *AlertHandler) GetAlerts(c *gin.Context) {
	var filter dto.AlertFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	alerts, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (h *AlertHandler) ResolveAlert(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	alert, err := h.service.Resolve(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, alert)
}

func (h *AlertHandler) RunScan(c *gin.Context) {
	result, err := h.service.Scan(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
