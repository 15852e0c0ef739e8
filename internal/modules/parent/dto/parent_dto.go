package dto

import (
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
)

type CreateParentInput struct {
	FirstName        string  `json:"first_name" binding:"required,max=100"`
	LastName         string  `json:"last_name" binding:"required,max=100"`
	Email            *string `json:"email" binding:"omitempty,email"`
	PhonePrimary     string  `json:"phone_primary" binding:"required,max=20"`
	PhoneSecondary   *string `json:"phone_secondary" binding:"omitempty,max=20"`
	AddressStreet    *string `json:"address_street" binding:"omitempty,max=255"`
	AddressCity      *string `json:"address_city" binding:"omitempty,max=100"`
	AddressState     *string `json:"address_state" binding:"omitempty,max=2"`
	AddressZip       *string `json:"address_zip" binding:"omitempty,max=10"`
	Employer         *string `json:"employer" binding:"omitempty,max=255"`
	WorkPhone        *string `json:"work_phone" binding:"omitempty,max=20"`
	IsPrimaryContact bool    `json:"is_primary_contact"`
}

type UpdateParentInput struct {
	FirstName        *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName         *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Email            *string `json:"email" binding:"omitempty,email"`
	PhonePrimary     *string `json:"phone_primary" binding:"omitempty,min=1,max=20"`
	PhoneSecondary   *string `json:"phone_secondary" binding:"omitempty,max=20"`
	AddressStreet    *string `json:"address_street" binding:"omitempty,max=255"`
	AddressCity      *string `json:"address_city" binding:"omitempty,max=100"`
	AddressState     *string `json:"address_state" binding:"omitempty,max=2"`
	AddressZip       *string `json:"address_zip" binding:"omitempty,max=10"`
	Employer         *string `json:"employer" binding:"omitempty,max=255"`
	WorkPhone        *string `json:"work_phone" binding:"omitempty,max=20"`
	IsPrimaryContact *bool   `json:"is_primary_contact"`
}

type ParentFilter struct {
	commonDto.PageQuery
	Search string `form:"search"`
}

type CreateRelationshipInput struct {
	ChildID          uuid.UUID `json:"child_id" binding:"required"`
	ParentID         uuid.UUID `json:"parent_id" binding:"required"`
	RelationshipType string    `json:"relationship_type" binding:"required,max=50"`
	IsPrimary        bool      `json:"is_primary"`
	HasCustody       *bool     `json:"has_custody"`
	CanPickup        *bool     `json:"can_pickup"`
}

type UpdateRelationshipInput struct {
	RelationshipType *string `json:"relationship_type" binding:"omitempty,min=1,max=50"`
	IsPrimary        *bool   `json:"is_primary"`
	HasCustody       *bool   `json:"has_custody"`
	CanPickup        *bool   `json:"can_pickup"`
}
