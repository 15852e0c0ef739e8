package handler

import (
	"net/http"

	"bouncearound.com/daycare/internal/middleware"
	"bouncearound.com/daycare/internal/modules/announcement/dto"
	announcementService "bouncearound.com/daycare/internal/modules/announcement/service"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	service announcementService.AnnouncementService
}

func NewAnnouncementHandler(service announcementService.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateAnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	a, err := h.service.Create(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

func (h *AnnouncementHandler) GetAnnouncements(c *gin.Context) {
	var filter dto.AnnouncementFilter
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

func (h *AnnouncementHandler) GetActiveAnnouncements(c *gin.Context) {
	items, err := h.service.Active(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateAnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
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
