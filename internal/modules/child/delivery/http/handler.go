package handler

import (
	"net/http"

	"bouncearound.com/daycare/internal/middleware"
	"bouncearound.com/daycare/internal/modules/child/dto"
	childService "bouncearound.com/daycare/internal/modules/child/service"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type ChildHandler struct {
	service childService.ChildService
}

func NewChildHandler(service childService.ChildService) *ChildHandler {
	return &ChildHandler{service: service}
}

func (h *ChildHandler) CreateChild(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateChildInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	child, err := h.service.Create(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, child)
}

func (h *ChildHandler) GetChildren(c *gin.Context) {
	var filter dto.ChildFilter
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

func (h *ChildHandler) GetChild(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	child, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, child)
}

func (h *ChildHandler) UpdateChild(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateChildInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	child, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, child)
}

func (h *ChildHandler) DeactivateChild(c *gin.Context) {
	h.setActive(c, false)
}

func (h *ChildHandler) ActivateChild(c *gin.Context) {
	h.setActive(c, true)
}

func (h *ChildHandler) setActive(c *gin.Context, active bool) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	child, err := h.service.SetActive(c.Request.Context(), id, active)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, child)
}

func (h *ChildHandler) DeleteChild(c *gin.Context) {
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
