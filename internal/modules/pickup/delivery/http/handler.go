package handler

import (
	"net/http"

	"bouncearound.com/daycare/internal/middleware"
	"bouncearound.com/daycare/internal/modules/pickup/dto"
	pickupService "bouncearound.com/daycare/internal/modules/pickup/service"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type PickupHandler struct {
	service pickupService.PickupService
}

func NewPickupHandler(service pickupService.PickupService) *PickupHandler {
	return &PickupHandler{service: service}
}

func (h *PickupHandler) CreatePickup(c *gin.Context) {
	var input dto.CreatePickupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	pickup, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pickup)
}

func (h *PickupHandler) GetChildPickups(c *gin.Context) {
	childID, ok := response.ParseUUIDParam(c, "child_id")
	if !ok {
		return
	}

	var query dto.ChildPickupQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	pickups, err := h.service.ListByChild(c.Request.Context(), childID, query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, pickups)
}

func (h *PickupHandler) GetActivePickups(c *gin.Context) {
	var query dto.ActivePickupQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.ListActive(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PickupHandler) GetPickup(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	pickup, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, pickup)
}

func (h *PickupHandler) UpdatePickup(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdatePickupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	pickup, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, pickup)
}

func (h *PickupHandler) DeactivatePickup(c *gin.Context) {
	h.setActive(c, false)
}

func (h *PickupHandler) ActivatePickup(c *gin.Context) {
	h.setActive(c, true)
}

func (h *PickupHandler) setActive(c *gin.Context, active bool) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	pickup, err := h.service.SetActive(c.Request.Context(), id, active)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, pickup)
}

func (h *PickupHandler) DeletePickup(c *gin.Context) {
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

func (h *PickupHandler) SearchByName(c *gin.Context) {
	var query dto.NameSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	pickups, err := h.service.SearchByName(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, pickups)
}

func (h *PickupHandler) VerifyPickup(c *gin.Context) {
	childID, ok := response.ParseUUIDParam(c, "child_id")
	if !ok {
		return
	}

	res, err := h.service.Verify(c.Request.Context(), childID, c.Param("pickup_name"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PickupHandler) GetPhotoVerificationRequired(c *gin.Context) {
	pickups, err := h.service.PhotoVerificationRequired(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, pickups)
}
