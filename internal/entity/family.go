package entity

import (
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
)

type Child struct {
	Base
	FirstName           string         `gorm:"size:100;not null;index" json:"first_name"`
	LastName            string         `gorm:"size:100;not null;index" json:"last_name"`
	DateOfBirth         datetime.Date  `gorm:"not null" json:"date_of_birth"`
	Gender              *string        `gorm:"size:20" json:"gender"`
	Allergies           *string        `gorm:"type:text" json:"allergies"`
	DietaryRestrictions *string        `gorm:"type:text" json:"dietary_restrictions"`
	MedicalConditions   *string        `gorm:"type:text" json:"medical_conditions"`
	SpecialNeeds        *string        `gorm:"type:text" json:"special_needs"`
	PhotoURL            *string        `gorm:"size:500" json:"photo_url"`
	EnrollmentDate      datetime.Date  `gorm:"not null" json:"enrollment_date"`
	WithdrawalDate      *datetime.Date `json:"withdrawal_date"`
	IsActive            bool           `gorm:"not null;index" json:"is_active"`
	CreatedBy           *uuid.UUID     `gorm:"type:uuid" json:"created_by"`
}

func (c *Child) FullName() string {
	return c.FirstName + " " + c.LastName
}

type Parent struct {
	Base
	FirstName        string  `gorm:"size:100;not null;index" json:"first_name"`
	LastName         string  `gorm:"size:100;not null;index" json:"last_name"`
	Email            *string `gorm:"size:255;index" json:"email"`
	PhonePrimary     string  `gorm:"size:20;not null" json:"phone_primary"`
	PhoneSecondary   *string `gorm:"size:20" json:"phone_secondary"`
	AddressStreet    *string `gorm:"size:255" json:"address_street"`
	AddressCity      *string `gorm:"size:100" json:"address_city"`
	AddressState     *string `gorm:"size:2" json:"address_state"`
	AddressZip       *string `gorm:"size:10" json:"address_zip"`
	Employer         *string `gorm:"size:255" json:"employer"`
	WorkPhone        *string `gorm:"size:20" json:"work_phone"`
	IsPrimaryContact bool    `gorm:"not null" json:"is_primary_contact"`
}

func (p *Parent) FullName() string {
	return p.FirstName + " " + p.LastName
}

type ChildParent struct {
	Base
	ChildID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_child_parent" json:"child_id"`
	ParentID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_child_parent;index" json:"parent_id"`
	RelationshipType string    `gorm:"size:50;not null" json:"relationship_type"`
	IsPrimary        bool      `gorm:"not null" json:"is_primary"`
	HasCustody       bool      `gorm:"not null" json:"has_custody"`
	CanPickup        bool      `gorm:"not null" json:"can_pickup"`

	Child  *Child  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Parent *Parent `gorm:"constraint:OnDelete:CASCADE" json:"parent,omitempty"`
}

type EmergencyContact struct {
	Base
	ChildID          uuid.UUID `gorm:"type:uuid;not null;index" json:"child_id"`
	Name             string    `gorm:"size:200;not null" json:"name"`
	RelationshipType string    `gorm:"size:50;not null" json:"relationship_type"`
	PhonePrimary     string    `gorm:"size:20;not null" json:"phone_primary"`
	PhoneSecondary   *string   `gorm:"size:20" json:"phone_secondary"`
	PriorityOrder    int       `gorm:"not null" json:"priority_order"`
	Notes            *string   `gorm:"type:text" json:"notes"`

	Child *Child `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// MinEmergencyContacts is the DCFS floor per child.
const MinEmergencyContacts = 2

type AuthorizedPickup struct {
	Base
	ChildID             uuid.UUID `gorm:"type:uuid;not null;index" json:"child_id"`
	Name                string    `gorm:"size:200;not null;index" json:"name"`
	RelationshipType    string    `gorm:"size:50;not null" json:"relationship_type"`
	Phone               string    `gorm:"size:20;not null" json:"phone"`
	PhotoURL            *string   `gorm:"size:500" json:"photo_url"`
	IdentificationNotes *string   `gorm:"type:text" json:"identification_notes"`
	RequiresPassword    bool      `gorm:"not null" json:"requires_password"`
	PasswordHint        *string   `gorm:"size:255" json:"password_hint"`
	IsActive            bool      `gorm:"not null;index" json:"is_active"`

	Child *Child `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
