package dto

import (
	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
)

type CheckInInput struct {
	ChildID             uuid.UUID       `json:"child_id" binding:"required"`
	CheckInTime         *datetime.Clock `json:"check_in_time" binding:"required"`
	CheckInByName       string          `json:"check_in_by_name" binding:"required,max=200"`
	CheckInSignatureURL *string         `json:"check_in_signature_url" binding:"omitempty,max=500"`
	Notes               *string         `json:"notes"`
}

type CheckOutInput struct {
	CheckOutTime         *datetime.Clock `json:"check_out_time" binding:"required"`
	CheckOutByName       string          `json:"check_out_by_name" binding:"required,max=200"`
	CheckOutSignatureURL *string         `json:"check_out_signature_url" binding:"omitempty,max=500"`
	Notes                *string         `json:"notes"`
}

type UpdateAttendanceInput struct {
	CheckInByName        *string `json:"check_in_by_name" binding:"omitempty,min=1,max=200"`
	CheckInSignatureURL  *string `json:"check_in_signature_url" binding:"omitempty,max=500"`
	CheckOutByName       *string `json:"check_out_by_name" binding:"omitempty,min=1,max=200"`
	CheckOutSignatureURL *string `json:"check_out_signature_url" binding:"omitempty,max=500"`
	Notes                *string `json:"notes"`
}

type AttendanceFilter struct {
	commonDto.PageQuery
	Date       string `form:"date"`
	ChildID    string `form:"child_id" binding:"omitempty,uuid"`
	CheckedOut *bool  `form:"checked_out"`
}

// AttendanceCriteria is AttendanceFilter after parsing.
type AttendanceCriteria struct {
	commonDto.PageQuery
	Date       *datetime.Date
	ChildID    *uuid.UUID
	CheckedOut *bool
}

type LatePickupReport struct {
	DateRange            commonDto.Range     `json:"date_range"`
	TotalRecords         int                 `json:"total_records"`
	TotalBillableMinutes int                 `json:"total_billable_minutes"`
	TotalFees            float64             `json:"total_fees"`
	Records              []entity.Attendance `json:"records"`
}
