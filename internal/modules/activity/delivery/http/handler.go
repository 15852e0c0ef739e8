package handler

import (
	"net/http"

	"bouncearound.com/daycare/internal/middleware"
	"bouncearound.com/daycare/internal/modules/activity/dto"
	activityService "bouncearound.com/daycare/internal/modules/activity/service"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	service activityService.ActivityService
}

func NewActivityHandler(service activityService.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	activity, err := h.service.Create(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

func (h *ActivityHandler) GetActivities(c *gin.Context) {
	var filter dto.ActivityFilter
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

func (h *ActivityHandler) GetToday(c *gin.Context) {
	var filter dto.ActivityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.Today(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ActivityHandler) GetChildActivities(c *gin.Context) {
	childID, ok := response.ParseUUIDParam(c, "child_id")
	if !ok {
		return
	}

	var filter dto.ActivityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.ListByChild(c.Request.Context(), childID, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ActivityHandler) GetChildActivitiesForDate(c *gin.Context) {
	childID, ok := response.ParseUUIDParam(c, "child_id")
	if !ok {
		return
	}

	activities, err := h.service.ListForDay(c.Request.Context(), childID, c.Param("date"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, activities)
}

func (h *ActivityHandler) GetDailySummary(c *gin.Context) {
	childID, ok := response.ParseUUIDParam(c, "child_id")
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), childID, c.Param("date"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *ActivityHandler) GetActivity(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	activity, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	activity, err := h.service.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
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
