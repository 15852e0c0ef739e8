package handler

import (
	"net/http"

	"bouncearound.com/daycare/internal/middleware"
	"bouncearound.com/daycare/internal/modules/medication/dto"
	medicationService "bouncearound.com/daycare/internal/modules/medication/service"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type MedicationHandler struct {
	service medicationService.MedicationService
}

func NewMedicationHandler(service medicationService.MedicationService) *MedicationHandler {
	return &MedicationHandler{service: service}
}

type activeQuery struct {
	IsActive *bool `form:"is_active"`
}

func (h *MedicationHandler) CreateAuthorization(c *gin.Context) {
	var input dto.CreateAuthorizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	auth, err := h.service.CreateAuthorization(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, auth)
}

func (h *MedicationHandler) GetAuthorizations(c *gin.Context) {
	var filter dto.AuthorizationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	auths, err := h.service.ListAuthorizations(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, auths)
}

func (h *MedicationHandler) GetChildAuthorizations(c *gin.Context) {
	childID, ok := response.ParseUUIDParam(c, "child_id")
	if !ok {
		return
	}

	var q activeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	auths, err := h.service.ListChildAuthorizations(c.Request.Context(), childID, q.IsActive)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, auths)
}

func (h *MedicationHandler) GetActiveToday(c *gin.Context) {
	auths, err := h.service.ActiveToday(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, auths)
}

func (h *MedicationHandler) GetAuthorization(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	auth, err := h.service.GetAuthorization(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, auth)
}

func (h *MedicationHandler) UpdateAuthorization(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateAuthorizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	auth, err := h.service.UpdateAuthorization(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, auth)
}

func (h *MedicationHandler) DeactivateAuthorization(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	auth, err := h.service.DeactivateAuthorization(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, auth)
}

func (h *MedicationHandler) DeleteAuthorization(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteAuthorization(c.Request.Context(), actor, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *MedicationHandler) CreateLog(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	entry, err := h.service.CreateLog(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *MedicationHandler) GetLogs(c *gin.Context) {
	var filter dto.LogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	logs, err := h.service.ListLogs(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

func (h *MedicationHandler) GetChildLogs(c *gin.Context) {
	childID, ok := response.ParseUUIDParam(c, "child_id")
	if !ok {
		return
	}

	var dates commonDto.DateRangeQuery
	if err := c.ShouldBindQuery(&dates); err != nil {
		response.BindError(c, err)
		return
	}

	logs, err := h.service.ListChildLogs(c.Request.Context(), childID, dates)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

func (h *MedicationHandler) GetTodayLogs(c *gin.Context) {
	logs, err := h.service.TodayLogs(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

func (h *MedicationHandler) GetAuthorizationLogs(c *gin.Context) {
	authID, ok := response.ParseUUIDParam(c, "authorization_id")
	if !ok {
		return
	}

	logs, err := h.service.ListAuthorizationLogs(c.Request.Context(), authID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

func (h *MedicationHandler) GetLog(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.service.GetLog(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *MedicationHandler) UpdateLog(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	entry, err := h.service.UpdateLog(c.Request.Context(), actor, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *MedicationHandler) DeleteLog(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteLog(c.Request.Context(), actor, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *MedicationHandler) GetSchedule(c *gin.Context) {
	childID, ok := response.ParseUUIDParam(c, "child_id")
	if !ok {
		return
	}

	schedule, err := h.service.Schedule(c.Request.Context(), childID, c.Param("date"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}
