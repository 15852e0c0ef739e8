package handler

import (
	"net/http"

	"bouncearound.com/daycare/internal/middleware"
	"bouncearound.com/daycare/internal/modules/attendance/dto"
	attendanceService "bouncearound.com/daycare/internal/modules/attendance/service"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	service attendanceService.AttendanceService
}

func NewAttendanceHandler(service attendanceService.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	attendance, err := h.service.CheckIn(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attendance)
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.CheckOutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	attendance, err := h.service.CheckOut(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, attendance)
}

func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	var filter dto.AttendanceFilter
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

func (h *AttendanceHandler) GetToday(c *gin.Context) {
	h.today(c, false)
}

func (h *AttendanceHandler) GetCheckedIn(c *gin.Context) {
	h.today(c, true)
}

func (h *AttendanceHandler) today(c *gin.Context, onlyCheckedIn bool) {
	records, err := h.service.Today(c.Request.Context(), onlyCheckedIn)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *AttendanceHandler) GetChildHistory(c *gin.Context) {
	childID, ok := response.ParseUUIDParam(c, "child_id")
	if !ok {
		return
	}

	var dates commonDto.DateRangeQuery
	if err := c.ShouldBindQuery(&dates); err != nil {
		response.BindError(c, err)
		return
	}

	records, err := h.service.ChildHistory(c.Request.Context(), childID, dates)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *AttendanceHandler) GetRecord(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	attendance, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, attendance)
}

func (h *AttendanceHandler) UpdateRecord(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateAttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	attendance, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, attendance)
}

func (h *AttendanceHandler) DeleteRecord(c *gin.Context) {
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

func (h *AttendanceHandler) GetLatePickups(c *gin.Context) {
	var dates commonDto.DateRangeQuery
	if err := c.ShouldBindQuery(&dates); err != nil {
		response.BindError(c, err)
		return
	}

	report, err := h.service.LatePickups(c.Request.Context(), dates)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
