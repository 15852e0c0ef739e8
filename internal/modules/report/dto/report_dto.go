package dto

import (
	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
)

type CreateReportInput struct {
	ChildID     uuid.UUID      `json:"child_id" binding:"required"`
	ReportDate  *datetime.Date `json:"report_date" binding:"required"`
	CustomNotes *string        `json:"custom_notes"`
	OverallMood *string        `json:"overall_mood"`
}

type GenerateReportInput struct {
	ChildID    uuid.UUID      `json:"child_id" binding:"required"`
	ReportDate *datetime.Date `json:"report_date" binding:"required"`
}

type UpdateReportInput struct {
	AIGeneratedSummary *string `json:"ai_generated_summary"`
	CustomNotes        *string `json:"custom_notes"`
	OverallMood        *string `json:"overall_mood"`
}

type ReportFilter struct {
	commonDto.PageQuery
	ChildID       string `form:"child_id" binding:"omitempty,uuid"`
	ReportDate    string `form:"report_date"`
	SentToParents *bool  `form:"sent_to_parents"`
}

type ReportCriteria struct {
	commonDto.PageQuery
	ChildID       *uuid.UUID
	ReportDate    *datetime.Date
	SentToParents *bool
}

type AddPhotoInput struct {
	PhotoID uuid.UUID `json:"photo_id" binding:"required"`
}

type Delivery struct {
	ParentID  uuid.UUID `json:"parent_id"`
	Email     string    `json:"email"`
	Delivered bool      `json:"delivered"`
	Error     string    `json:"error,omitempty"`
}

type SendResult struct {
	Report     *entity.DailyReport `json:"report"`
	Deliveries []Delivery          `json:"deliveries"`
}
