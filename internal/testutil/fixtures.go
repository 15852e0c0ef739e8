package testutil

import (
	"testing"

	"bouncearound.com/daycare/internal/entity"
	"gorm.io/gorm"
)

// Fixtures binds the create helpers to one test and database.
type Fixtures struct {
	t  *testing.T
	DB *gorm.DB
}

func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, DB: db}
}

func (f *Fixtures) Child(first, last string) *entity.Child {
	return CreateChild(f.t, f.DB, first, last)
}

func (f *Fixtures) User(role entity.Role) *entity.User {
	return CreateUser(f.t, f.DB, role)
}

func (f *Fixtures) Actor(role entity.Role) entity.Actor {
	return Actor(f.User(role))
}
