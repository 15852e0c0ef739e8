package handler

import (
	"net/http"

	"bouncearound.com/daycare/internal/middleware"
	"bouncearound.com/daycare/internal/modules/parent/dto"
	parentService "bouncearound.com/daycare/internal/modules/parent/service"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type ParentHandler struct {
	service parentService.ParentService
}

func NewParentHandler(service parentService.ParentService) *ParentHandler {
	return &ParentHandler{service: service}
}

func (h *ParentHandler) CreateParent(c *gin.Context) {
	var input dto.CreateParentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	parent, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, parent)
}

func (h *ParentHandler) GetParents(c *gin.Context) {
	var filter dto.ParentFilter
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

func (h *ParentHandler) GetParent(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	parent, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, parent)
}

func (h *ParentHandler) UpdateParent(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateParentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	parent, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, parent)
}

func (h *ParentHandler) DeleteParent(c *gin.Context) {
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

func (h *ParentHandler) CreateRelationship(c *gin.Context) {
	var input dto.CreateRelationshipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	link, err := h.service.Link(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

// GetChildRelationships serves both /parents/relationships/child/:child_id and /children/:id/parents.
func (h *ParentHandler) GetChildRelationships(c *gin.Context) {
	param := "child_id"
	if c.Param(param) == "" {
		param = "id"
	}
	childID, ok := response.ParseUUIDParam(c, param)
	if !ok {
		return
	}

	links, err := h.service.LinksForChild(c.Request.Context(), childID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, links)
}

func (h *ParentHandler) GetParentRelationships(c *gin.Context) {
	parentID, ok := response.ParseUUIDParam(c, "parent_id")
	if !ok {
		return
	}

	links, err := h.service.LinksForParent(c.Request.Context(), parentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, links)
}

func (h *ParentHandler) UpdateRelationship(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateRelationshipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	link, err := h.service.UpdateLink(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *ParentHandler) DeleteRelationship(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Unlink(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.NoContent(c)
}
