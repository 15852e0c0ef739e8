package dto

import (
	"time"

	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateEnrollmentFormInput struct {
	ChildID            uuid.UUID      `json:"child_id" binding:"required"`
	EnrollmentDate     *datetime.Date `json:"enrollment_date" binding:"required"`
	ParentSignatureURL *string        `json:"parent_signature_url" binding:"omitempty,max=500"`
	ParentSignedAt     *time.Time     `json:"parent_signed_at"`
	StaffSignatureURL  *string        `json:"staff_signature_url" binding:"omitempty,max=500"`
	StaffSignedAt      *time.Time     `json:"staff_signed_at"`
	FormData           datatypes.JSON `json:"form_data"`
	IsComplete         bool           `json:"is_complete"`
}

type UpdateEnrollmentFormInput struct {
	EnrollmentDate     *datetime.Date `json:"enrollment_date"`
	ParentSignatureURL *string        `json:"parent_signature_url" binding:"omitempty,max=500"`
	ParentSignedAt     *time.Time     `json:"parent_signed_at"`
	StaffSignatureURL  *string        `json:"staff_signature_url" binding:"omitempty,max=500"`
	StaffSignedAt      *time.Time     `json:"staff_signed_at"`
	FormData           datatypes.JSON `json:"form_data"`
	IsComplete         *bool          `json:"is_complete"`
}

type EnrollmentFormFilter struct {
	commonDto.PageQuery
	IsComplete *bool `form:"is_complete"`
}

type IncompleteForm struct {
	FormID             uuid.UUID     `json:"form_id"`
	ChildID            uuid.UUID     `json:"child_id"`
	ChildName          string        `json:"child_name"`
	EnrollmentDate     datetime.Date `json:"enrollment_date"`
	HasParentSignature bool          `json:"has_parent_signature"`
	HasStaffSignature  bool          `json:"has_staff_signature"`
}

type CreateImmunizationInput struct {
	ChildID            uuid.UUID      `json:"child_id" binding:"required"`
	VaccineName        string         `json:"vaccine_name" binding:"required,max=200"`
	AdministrationDate *datetime.Date `json:"administration_date" binding:"required"`
	ExpirationDate     *datetime.Date `json:"expiration_date"`
	DocumentURL        *string        `json:"document_url" binding:"omitempty,max=500"`
	ProviderName       *string        `json:"provider_name" binding:"omitempty,max=200"`
	Notes              *string        `json:"notes"`
	IsVerified         bool           `json:"is_verified"`
}

type UpdateImmunizationInput struct {
	VaccineName        *string        `json:"vaccine_name" binding:"omitempty,min=1,max=200"`
	AdministrationDate *datetime.Date `json:"administration_date"`
	ExpirationDate     *datetime.Date `json:"expiration_date"`
	DocumentURL        *string        `json:"document_url" binding:"omitempty,max=500"`
	ProviderName       *string        `json:"provider_name" binding:"omitempty,max=200"`
	Notes              *string        `json:"notes"`
	IsVerified         *bool          `json:"is_verified"`
}

type ImmunizationFilter struct {
	ChildID    string `form:"child_id" binding:"omitempty,uuid"`
	IsVerified *bool  `form:"is_verified"`
}

type ExpiringQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}

// Resolve returns the look-ahead window, 30 days when unset.
func (q ExpiringQuery) Resolve() int {
	if q.Days == 0 {
		return 30
	}
	return q.Days
}

type ExpiringImmunization struct {
	RecordID            uuid.UUID     `json:"record_id"`
	ChildID             uuid.UUID     `json:"child_id"`
	ChildName           string        `json:"child_name"`
	VaccineName         string        `json:"vaccine_name"`
	ExpirationDate      datetime.Date `json:"expiration_date"`
	DaysUntilExpiration int           `json:"days_until_expiration"`
	IsVerified          bool          `json:"is_verified"`
}

type CreateCredentialInput struct {
	UserID           uuid.UUID      `json:"user_id" binding:"required"`
	CredentialType   string         `json:"credential_type" binding:"required"`
	CredentialNumber *string        `json:"credential_number" binding:"omitempty,max=100"`
	IssueDate        *datetime.Date `json:"issue_date" binding:"required"`
	ExpirationDate   *datetime.Date `json:"expiration_date"`
	DocumentURL      *string        `json:"document_url" binding:"omitempty,max=500"`
	IsVerified       bool           `json:"is_verified"`
}

type UpdateCredentialInput struct {
	CredentialType   *string        `json:"credential_type"`
	CredentialNumber *string        `json:"credential_number" binding:"omitempty,max=100"`
	IssueDate        *datetime.Date `json:"issue_date"`
	ExpirationDate   *datetime.Date `json:"expiration_date"`
	DocumentURL      *string        `json:"document_url" binding:"omitempty,max=500"`
	IsVerified       *bool          `json:"is_verified"`
}

type CredentialFilter struct {
	UserID         string `form:"user_id" binding:"omitempty,uuid"`
	CredentialType string `form:"credential_type"`
	IsVerified     *bool  `form:"is_verified"`
	IsExpired      *bool  `form:"is_expired"`
}

type CredentialCriteria struct {
	UserID         *uuid.UUID
	CredentialType string
	IsVerified     *bool
	IsExpired      *bool
}

type ExpiringCredential struct {
	CredentialID        uuid.UUID     `json:"credential_id"`
	UserID              uuid.UUID     `json:"user_id"`
	StaffName           string        `json:"staff_name"`
	CredentialType      string        `json:"credential_type"`
	ExpirationDate      datetime.Date `json:"expiration_date"`
	DaysUntilExpiration int           `json:"days_until_expiration"`
	IsVerified          bool          `json:"is_verified"`
}

type ExpiredCredential struct {
	CredentialID   uuid.UUID     `json:"credential_id"`
	UserID         uuid.UUID     `json:"user_id"`
	StaffName      string        `json:"staff_name"`
	CredentialType string        `json:"credential_type"`
	ExpirationDate datetime.Date `json:"expiration_date"`
	DaysExpired    int           `json:"days_expired"`
	IsVerified     bool          `json:"is_verified"`
}
