package dto

import (
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
)

type CreateChildInput struct {
	FirstName           string         `json:"first_name" binding:"required,max=100"`
	LastName            string         `json:"last_name" binding:"required,max=100"`
	DateOfBirth         *datetime.Date `json:"date_of_birth" binding:"required"`
	Gender              *string        `json:"gender" binding:"omitempty,max=20"`
	Allergies           *string        `json:"allergies"`
	DietaryRestrictions *string        `json:"dietary_restrictions"`
	MedicalConditions   *string        `json:"medical_conditions"`
	SpecialNeeds        *string        `json:"special_needs"`
	PhotoURL            *string        `json:"photo_url" binding:"omitempty,max=500"`
	EnrollmentDate      *datetime.Date `json:"enrollment_date" binding:"required"`
	WithdrawalDate      *datetime.Date `json:"withdrawal_date"`
	IsActive            *bool          `json:"is_active"`
}

type UpdateChildInput struct {
	FirstName           *string        `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName            *string        `json:"last_name" binding:"omitempty,min=1,max=100"`
	DateOfBirth         *datetime.Date `json:"date_of_birth"`
	Gender              *string        `json:"gender" binding:"omitempty,max=20"`
	Allergies           *string        `json:"allergies"`
	DietaryRestrictions *string        `json:"dietary_restrictions"`
	MedicalConditions   *string        `json:"medical_conditions"`
	SpecialNeeds        *string        `json:"special_needs"`
	PhotoURL            *string        `json:"photo_url" binding:"omitempty,max=500"`
	EnrollmentDate      *datetime.Date `json:"enrollment_date"`
	WithdrawalDate      *datetime.Date `json:"withdrawal_date"`
	IsActive            *bool          `json:"is_active"`
}

type ChildFilter struct {
	commonDto.PageQuery
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
}
