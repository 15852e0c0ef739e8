package dto

import "github.com/google/uuid"

type CreateContactInput struct {
	ChildID          uuid.UUID `json:"child_id" binding:"required"`
	Name             string    `json:"name" binding:"required,max=200"`
	RelationshipType string    `json:"relationship_type" binding:"required,max=50"`
	PhonePrimary     string    `json:"phone_primary" binding:"required,max=20"`
	PhoneSecondary   *string   `json:"phone_secondary" binding:"omitempty,max=20"`
	PriorityOrder    int       `json:"priority_order" binding:"required,min=1"`
	Notes            *string   `json:"notes"`
}

type UpdateContactInput struct {
	Name             *string `json:"name" binding:"omitempty,min=1,max=200"`
	RelationshipType *string `json:"relationship_type" binding:"omitempty,min=1,max=50"`
	PhonePrimary     *string `json:"phone_primary" binding:"omitempty,min=1,max=20"`
	PhoneSecondary   *string `json:"phone_secondary" binding:"omitempty,max=20"`
	PriorityOrder    *int    `json:"priority_order" binding:"omitempty,min=1"`
	Notes            *string `json:"notes"`
}

type MissingContactsResponse struct {
	ChildID             uuid.UUID `json:"child_id"`
	ChildName           string    `json:"child_name"`
	CurrentContactCount int       `json:"current_contact_count"`
	RequiredCount       int       `json:"required_count"`
	MissingCount        int       `json:"missing_count"`
}
