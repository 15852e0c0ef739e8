package bootstrap

import (
	"errors"
	"fmt"

	"bouncearound.com/daycare/internal/entity"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Child{},
		&entity.Parent{},
		&entity.ChildParent{},
		&entity.EmergencyContact{},
		&entity.AuthorizedPickup{},
		&entity.Attendance{},
		&entity.Activity{},
		&entity.IncidentReport{},
		&entity.MedicationAuthorization{},
		&entity.MedicationLog{},
		&entity.EnrollmentForm{},
		&entity.ImmunizationRecord{},
		&entity.StaffCredential{},
		&entity.ComplianceAlert{},
		&entity.Photo{},
		&entity.ChildPhoto{},
		&entity.DailyReport{},
		&entity.ReportPhoto{},
		&entity.Announcement{},
		&entity.Notification{},
	)
}

// SeedAdminUser creates the first administrator when no admin exists yet.
func SeedAdminUser(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("role = ?", entity.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Debug().Msg("admin user already exists, skipping seed")
		return nil
	}

	if password == "" {
		return errors.New("SEED_ADMIN_PASSWORD is required to seed the first admin")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := entity.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    "Facility",
		LastName:     "Administrator",
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info().Str("email", email).Msg("admin user seeded")
	return nil
}
