package dto

import (
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
)

type CreatePickupInput struct {
	ChildID             uuid.UUID `json:"child_id" binding:"required"`
	Name                string    `json:"name" binding:"required,max=200"`
	RelationshipType    string    `json:"relationship_type" binding:"required,max=50"`
	Phone               string    `json:"phone" binding:"required,max=20"`
	PhotoURL            *string   `json:"photo_url" binding:"omitempty,max=500"`
	IdentificationNotes *string   `json:"identification_notes"`
	RequiresPassword    bool      `json:"requires_password"`
	PasswordHint        *string   `json:"password_hint" binding:"omitempty,max=255"`
	IsActive            *bool     `json:"is_active"`
}

type UpdatePickupInput struct {
	Name                *string `json:"name" binding:"omitempty,min=1,max=200"`
	RelationshipType    *string `json:"relationship_type" binding:"omitempty,min=1,max=50"`
	Phone               *string `json:"phone" binding:"omitempty,min=1,max=20"`
	PhotoURL            *string `json:"photo_url" binding:"omitempty,max=500"`
	IdentificationNotes *string `json:"identification_notes"`
	RequiresPassword    *bool   `json:"requires_password"`
	PasswordHint        *string `json:"password_hint" binding:"omitempty,max=255"`
	IsActive            *bool   `json:"is_active"`
}

type ChildPickupQuery struct {
	IsActive *bool `form:"is_active"`
}

type ActivePickupQuery struct {
	commonDto.PageQuery
}

type NameSearchQuery struct {
	Name     string `form:"name" binding:"required,min=2"`
	IsActive *bool  `form:"is_active"`
}

// PickupPerson is the identification card shown to staff at the door.
type PickupPerson struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	RelationshipType    string    `json:"relationship_type"`
	Phone               string    `json:"phone"`
	PhotoURL            *string   `json:"photo_url"`
	RequiresPassword    bool      `json:"requires_password"`
	PasswordHint        *string   `json:"password_hint,omitempty"`
	IdentificationNotes *string   `json:"identification_notes"`
}

type VerifyResponse struct {
	Authorized   bool          `json:"authorized"`
	ChildID      uuid.UUID     `json:"child_id"`
	ChildName    string        `json:"child_name"`
	PickupName   string        `json:"pickup_name,omitempty"`
	PickupPerson *PickupPerson `json:"pickup_person,omitempty"`
	Message      string        `json:"message"`
}
