package dto

import (
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
)

type CreateAnnouncementInput struct {
	Title            string         `json:"title" binding:"required,max=255"`
	Content          string         `json:"content" binding:"required"`
	AnnouncementDate *datetime.Date `json:"announcement_date"`
	Priority         string         `json:"priority"`
	IsActive         *bool          `json:"is_active"`
}

type UpdateAnnouncementInput struct {
	Title            *string        `json:"title" binding:"omitempty,max=255"`
	Content          *string        `json:"content"`
	AnnouncementDate *datetime.Date `json:"announcement_date"`
	Priority         *string        `json:"priority"`
	IsActive         *bool          `json:"is_active"`
}

type AnnouncementFilter struct {
	commonDto.PageQuery
	IsActive *bool  `form:"is_active"`
	Priority string `form:"priority"`
}
