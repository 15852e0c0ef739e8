package dto

import (
	"time"

	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
)

type CreatePhotoInput struct {
	PhotoURL  string         `json:"photo_url" binding:"required,max=500"`
	PhotoDate *datetime.Date `json:"photo_date" binding:"required"`
	PhotoTime *time.Time     `json:"photo_time"`
	Caption   *string        `json:"caption"`
	ChildIDs  []uuid.UUID    `json:"child_ids"`
}

// UploadPhotoForm is the multipart companion of a photo file.
type UploadPhotoForm struct {
	PhotoDate string `form:"photo_date"`
	Caption   string `form:"caption"`
	ChildIDs  string `form:"child_ids"`
}

type UpdatePhotoInput struct {
	Caption *string `json:"caption"`
}

type TagChildInput struct {
	ChildID uuid.UUID `json:"child_id" binding:"required"`
}

type PhotoFilter struct {
	commonDto.PageQuery
	ChildID   string `form:"child_id" binding:"omitempty,uuid"`
	PhotoDate string `form:"photo_date"`
}

type PhotoCriteria struct {
	commonDto.PageQuery
	ChildID   *uuid.UUID
	PhotoDate *datetime.Date
}
