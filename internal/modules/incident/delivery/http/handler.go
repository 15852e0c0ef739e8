package handler

import (
	"net/http"

	"bouncearound.com/daycare/internal/middleware"
	"bouncearound.com/daycare/internal/modules/incident/dto"
	incidentService "bouncearound.com/daycare/internal/modules/incident/service"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type IncidentHandler struct {
	service incidentService.IncidentService
}

func NewIncidentHandler(service incidentService.IncidentService) *IncidentHandler {
	return &IncidentHandler{service: service}
}

func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateIncidentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	report, err := h.service.Create(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

func (h *IncidentHandler) GetIncidents(c *gin.Context) {
	var filter dto.IncidentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *IncidentHandler) GetChildIncidents(c *gin.Context) {
	childID, ok := response.ParseUUIDParam(c, "child_id")
	if !ok {
		return
	}

	var dates commonDto.DateRangeQuery
	if err := c.ShouldBindQuery(&dates); err != nil {
		response.BindError(c, err)
		return
	}

	reports, err := h.service.ListByChild(c.Request.Context(), childID, dates)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

func (h *IncidentHandler) GetIncident(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *IncidentHandler) UpdateIncident(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateIncidentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	report, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *IncidentHandler) DeleteIncident(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *IncidentHandler) GetPendingParentNotification(c *gin.Context) {
	pending, err := h.service.PendingParentNotification(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, pending)
}

func (h *IncidentHandler) GetRequiringDCFS(c *gin.Context) {
	var query struct {
		Notified *bool `form:"notified"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	reports, err := h.service.RequiringDCFS(c.Request.Context(), query.Notified)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

func (h *IncidentHandler) GetStatistics(c *gin.Context) {
	var dates commonDto.DateRangeQuery
	if err := c.ShouldBindQuery(&dates); err != nil {
		response.BindError(c, err)
		return
	}

	stats, err := h.service.Statistics(c.Request.Context(), dates)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *IncidentHandler) NotifyParent(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var query struct {
		Method string `form:"notification_method" binding:"required"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	report, err := h.service.MarkParentNotified(c.Request.Context(), id, query.Method)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *IncidentHandler) NotifyDCFS(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.service.MarkDCFSNotified(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
