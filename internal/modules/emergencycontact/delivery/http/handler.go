package handler

import (
	"net/http"
	"strconv"

	"bouncearound.com/daycare/internal/modules/emergencycontact/dto"
	contactService "bouncearound.com/daycare/internal/modules/emergencycontact/service"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	service contactService.ContactService
}

func NewContactHandler(service contactService.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var input dto.CreateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	contact, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) GetChildContacts(c *gin.Context) {
	childID, ok := response.ParseUUIDParam(c, "child_id")
	if !ok {
		return
	}

	contacts, err := h.service.ListByChild(c.Request.Context(), childID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) GetContact(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	contact, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) UpdateContact(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	contact, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *ContactHandler) ReorderContact(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	newPriority, err := strconv.Atoi(c.Param("new_priority"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "new_priority must be an integer"})
		return
	}

	contact, err := h.service.Reorder(c.Request.Context(), id, newPriority)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) GetMissingContacts(c *gin.Context) {
	missing, err := h.service.MissingContacts(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, missing)
}
