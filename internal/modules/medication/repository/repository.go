package repository

import (
	"context"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/medication/dto"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicationRepository interface {
	CreateAuthorization(ctx context.Context, auth *entity.MedicationAuthorization) error
	FindAuthorization(ctx context.Context, id uuid.UUID) (*entity.MedicationAuthorization, error)
	ListAuthorizations(ctx context.Context, childID *uuid.UUID, isActive *bool) ([]entity.MedicationAuthorization, error)
	// ListValidOn returns active authorizations covering the day, optionally for one child.
	ListValidOn(ctx context.Context, day datetime.Date, childID *uuid.UUID) ([]entity.MedicationAuthorization, error)
	UpdateAuthorization(ctx context.Context, auth *entity.MedicationAuthorization) error
	DeleteAuthorization(ctx context.Context, id uuid.UUID) error

	CreateLog(ctx context.Context, log *entity.MedicationLog) error
	FindLog(ctx context.Context, id uuid.UUID) (*entity.MedicationLog, error)
	ListLogs(ctx context.Context, criteria dto.LogCriteria) ([]entity.MedicationLog, error)
	UpdateLog(ctx context.Context, log *entity.MedicationLog) error
	DeleteLog(ctx context.Context, id uuid.UUID) error
}

type medicationRepository struct {
	db *gorm.DB
}

func NewMedicationRepository(db *gorm.DB) MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) CreateAuthorization(ctx context.Context, auth *entity.MedicationAuthorization) error {
	return r.db.WithContext(ctx).Omit("Child").Create(auth).Error
}

func (r *medicationRepository) FindAuthorization(ctx context.Context, id uuid.UUID) (*entity.MedicationAuthorization, error) {
	var auth entity.MedicationAuthorization
	if err := r.db.WithContext(ctx).First(&auth, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &auth, nil
}

func (r *medicationRepository) ListAuthorizations(ctx context.Context, childID *uuid.UUID, isActive *bool) ([]entity.MedicationAuthorization, error) {
	query := r.db.WithContext(ctx).Model(&entity.MedicationAuthorization{})
	if childID != nil {
		query = query.Where("child_id = ?", *childID)
	}
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}

	var auths []entity.MedicationAuthorization
	err := query.Order("start_date DESC").Find(&auths).Error
	return auths, err
}

func (r *medicationRepository) ListValidOn(ctx context.Context, day datetime.Date, childID *uuid.UUID) ([]entity.MedicationAuthorization, error) {
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("start_date <= ?", day).
		Where("end_date IS NULL OR end_date >= ?", day)
	if childID != nil {
		query = query.Where("child_id = ?", *childID)
	}

	var auths []entity.MedicationAuthorization
	err := query.Order("child_id, medication_name").Find(&auths).Error
	return auths, err
}

func (r *medicationRepository) UpdateAuthorization(ctx context.Context, auth *entity.MedicationAuthorization) error {
	return r.db.WithContext(ctx).Omit("Child").Save(auth).Error
}

func (r *medicationRepository) DeleteAuthorization(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.MedicationAuthorization{}, "id = ?", id).Error
}

func (r *medicationRepository) CreateLog(ctx context.Context, log *entity.MedicationLog) error {
	return r.db.WithContext(ctx).Omit("Child", "Authorization").Create(log).Error
}

func (r *medicationRepository) FindLog(ctx context.Context, id uuid.UUID) (*entity.MedicationLog, error) {
	var log entity.MedicationLog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *medicationRepository) ListLogs(ctx context.Context, c dto.LogCriteria) ([]entity.MedicationLog, error) {
	query := r.db.WithContext(ctx).Model(&entity.MedicationLog{})
	if c.ChildID != nil {
		query = query.Where("child_id = ?", *c.ChildID)
	}
	if c.AuthorizationID != nil {
		query = query.Where("authorization_id = ?", *c.AuthorizationID)
	}
	if c.AdministrationDate != nil {
		query = query.Where("administration_date = ?", *c.AdministrationDate)
	}
	if c.StartDate != nil {
		query = query.Where("administration_date >= ?", *c.StartDate)
	}
	if c.EndDate != nil {
		query = query.Where("administration_date <= ?", *c.EndDate)
	}

	var logs []entity.MedicationLog
	err := query.Order("administration_date DESC, administration_time DESC").Find(&logs).Error
	return logs, err
}

func (r *medicationRepository) UpdateLog(ctx context.Context, log *entity.MedicationLog) error {
	return r.db.WithContext(ctx).Omit("Child", "Authorization").Save(log).Error
}

func (r *medicationRepository) DeleteLog(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.MedicationLog{}, "id = ?", id).Error
}
