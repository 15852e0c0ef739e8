package handler

import (
	"net/http"

	"bouncearound.com/daycare/internal/middleware"
	"bouncearound.com/daycare/internal/modules/photo/dto"
	photoService "bouncearound.com/daycare/internal/modules/photo/service"
	"bouncearound.com/daycare/pkg/apperror"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type PhotoHandler struct {
	service photoService.PhotoService
}

func NewPhotoHandler(service photoService.PhotoService) *PhotoHandler {
	return &PhotoHandler{service: service}
}

func (h *PhotoHandler) CreatePhoto(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreatePhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	photo, err := h.service.Create(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, photo)
}

func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("file is required"))
		return
	}

	var form dto.UploadPhotoForm
	if err := c.ShouldBind(&form); err != nil {
		response.BindError(c, err)
		return
	}

	photo, err := h.service.Upload(c.Request.Context(), actor, file, form)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, photo)
}

func (h *PhotoHandler) GetPhotos(c *gin.Context) {
	var filter dto.PhotoFilter
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

// GetChildPhotos serves /children/:id/photos.
func (h *PhotoHandler) GetChildPhotos(c *gin.Context) {
	childID, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var page commonDto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.ListByChild(c.Request.Context(), childID, page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PhotoHandler) GetPhoto(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	photo, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, photo)
}

func (h *PhotoHandler) UpdatePhoto(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdatePhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	photo, err := h.service.UpdateCaption(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, photo)
}

func (h *PhotoHandler) TagChild(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.TagChildInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	photo, err := h.service.TagChild(c.Request.Context(), id, input.ChildID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, photo)
}

func (h *PhotoHandler) UntagChild(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	childID, ok := response.ParseUUIDParam(c, "child_id")
	if !ok {
		return
	}

	if err := h.service.UntagChild(c.Request.Context(), id, childID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
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
