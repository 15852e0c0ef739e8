package dto

import (
	"time"

	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
)

type CreateAuthorizationInput struct {
	ChildID                    uuid.UUID      `json:"child_id" binding:"required"`
	MedicationName             string         `json:"medication_name" binding:"required,max=200"`
	Dosage                     string         `json:"dosage" binding:"required,max=100"`
	Frequency                  string         `json:"frequency" binding:"required,max=100"`
	AdministrationInstructions *string        `json:"administration_instructions"`
	StartDate                  *datetime.Date `json:"start_date" binding:"required"`
	EndDate                    *datetime.Date `json:"end_date"`
	PrescribingDoctor          *string        `json:"prescribing_doctor" binding:"omitempty,max=200"`
	ParentSignatureURL         string         `json:"parent_signature_url" binding:"required,max=500"`
	ParentSignedAt             *time.Time     `json:"parent_signed_at"`
}

type UpdateAuthorizationInput struct {
	MedicationName             *string        `json:"medication_name" binding:"omitempty,min=1,max=200"`
	Dosage                     *string        `json:"dosage" binding:"omitempty,min=1,max=100"`
	Frequency                  *string        `json:"frequency" binding:"omitempty,min=1,max=100"`
	AdministrationInstructions *string        `json:"administration_instructions"`
	StartDate                  *datetime.Date `json:"start_date"`
	EndDate                    *datetime.Date `json:"end_date"`
	PrescribingDoctor          *string        `json:"prescribing_doctor" binding:"omitempty,max=200"`
	IsActive                   *bool          `json:"is_active"`
}

type AuthorizationFilter struct {
	ChildID  string `form:"child_id" binding:"omitempty,uuid"`
	IsActive *bool  `form:"is_active"`
}

type CreateLogInput struct {
	ChildID            uuid.UUID       `json:"child_id" binding:"required"`
	AuthorizationID    uuid.UUID       `json:"authorization_id" binding:"required"`
	AdministrationDate *datetime.Date  `json:"administration_date" binding:"required"`
	AdministrationTime *datetime.Clock `json:"administration_time" binding:"required"`
	DosageGiven        string          `json:"dosage_given" binding:"required,max=100"`
	StaffSignatureURL  string          `json:"staff_signature_url" binding:"required,max=500"`
	Notes              *string         `json:"notes"`
	ParentNotified     bool            `json:"parent_notified"`
}

type UpdateLogInput struct {
	AdministrationTime *datetime.Clock `json:"administration_time"`
	DosageGiven        *string         `json:"dosage_given" binding:"omitempty,min=1,max=100"`
	StaffSignatureURL  *string         `json:"staff_signature_url" binding:"omitempty,min=1,max=500"`
	Notes              *string         `json:"notes"`
	ParentNotified     *bool           `json:"parent_notified"`
}

type LogFilter struct {
	ChildID            string `form:"child_id" binding:"omitempty,uuid"`
	AuthorizationID    string `form:"authorization_id" binding:"omitempty,uuid"`
	AdministrationDate string `form:"administration_date"`
	StartDate          string `form:"start_date"`
	EndDate            string `form:"end_date"`
}

// LogCriteria is LogFilter after parsing.
type LogCriteria struct {
	ChildID            *uuid.UUID
	AuthorizationID    *uuid.UUID
	AdministrationDate *datetime.Date
	StartDate          *datetime.Date
	EndDate            *datetime.Date
}

type AdministrationTime struct {
	Time           datetime.Clock `json:"time"`
	DosageGiven    string         `json:"dosage_given"`
	AdministeredBy uuid.UUID      `json:"administered_by"`
}

type ScheduledMedication struct {
	AuthorizationID     uuid.UUID            `json:"authorization_id"`
	MedicationName      string               `json:"medication_name"`
	Dosage              string               `json:"dosage"`
	Frequency           string               `json:"frequency"`
	Instructions        *string              `json:"instructions"`
	Administered        bool                 `json:"administered"`
	AdministrationTimes []AdministrationTime `json:"administration_times"`
}

type MedicationSchedule struct {
	ChildID     uuid.UUID             `json:"child_id"`
	ChildName   string                `json:"child_name"`
	Date        datetime.Date         `json:"date"`
	Medications []ScheduledMedication `json:"medications"`
}
