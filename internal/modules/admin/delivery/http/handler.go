package handler

import (
	"net/http"

	"bouncearound.com/daycare/internal/middleware"
	"bouncearound.com/daycare/internal/modules/admin/dto"
	adminService "bouncearound.com/daycare/internal/modules/admin/service"
	userDto "bouncearound.com/daycare/internal/modules/user/dto"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService adminService.AdminService
}

func NewAdminHandler(adminService adminService.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	var filter userDto.UserFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.adminService.ListStaff(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var input dto.CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.adminService.CreateStaff(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.adminService.UpdateStaff(c.Request.Context(), actor, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	h.setActive(c, false)
}

func (h *AdminHandler) ActivateUser(c *gin.Context) {
	h.setActive(c, true)
}

func (h *AdminHandler) setActive(c *gin.Context, active bool) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.adminService.SetActive(c.Request.Context(), actor, id, active)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteStaff(c.Request.Context(), actor, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.NoContent(c)
}
