package entity

import (
	"fmt"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStaff, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q, must be one of: staff, admin", s)
}

// Capability names an operation that only some roles may perform.
type Capability string

const (
	CapDeleteRecords     Capability = "delete_records"
	CapManageStaff       Capability = "manage_staff"
	CapManageCompliance  Capability = "manage_compliance"
	CapOverrideOwnership Capability = "override_ownership"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapDeleteRecords:     true,
		CapManageStaff:       true,
		CapManageCompliance:  true,
		CapOverrideOwnership: true,
	},
	RoleStaff: {},
}

func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

// Actor is the authenticated caller as seen by services.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) Can(c Capability) bool {
	return a.Role.Can(c)
}

// Owns reports whether the actor created the record or may act on anyone's records.
func (a Actor) Owns(ownerID uuid.UUID) bool {
	return a.ID == ownerID || a.Can(CapOverrideOwnership)
}

type User struct {
	Base
	Email        string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	FirstName    string  `gorm:"size:100;not null" json:"first_name"`
	LastName     string  `gorm:"size:100;not null" json:"last_name"`
	Phone        *string `gorm:"size:20" json:"phone"`
	Role         Role    `gorm:"size:20;not null;index" json:"role"`
	IsActive     bool    `gorm:"not null" json:"is_active"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
