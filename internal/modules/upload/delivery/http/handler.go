package handler

import (
	"net/http"

	"bouncearound.com/daycare/internal/modules/upload/dto"
	uploadService "bouncearound.com/daycare/internal/modules/upload/service"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	service uploadService.UploadService
}

func NewUploadHandler(service uploadService.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	var q dto.UploadQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("file is required"))
		return
	}

	res, err := h.service.Upload(c.Request.Context(), q.Folder, file)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}
