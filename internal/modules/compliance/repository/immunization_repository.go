package repository

import (
	"context"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImmunizationRepository interface {
	Create(ctx context.Context, record *entity.ImmunizationRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ImmunizationRecord, error)
	List(ctx context.Context, childID *uuid.UUID, isVerified *bool) ([]entity.ImmunizationRecord, error)
	// ListExpiringBetween returns records expiring in [from, to], soonest first, with the child loaded.
	ListExpiringBetween(ctx context.Context, from, to datetime.Date) ([]entity.ImmunizationRecord, error)
	CountExpiringBetween(ctx context.Context, from, to datetime.Date) (int64, error)
	// RefreshExpired rewrites is_expired flags that disagree with today's date.
	RefreshExpired(ctx context.Context, today datetime.Date) (int64, error)
	Update(ctx context.Context, record *entity.ImmunizationRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type immunizationRepository struct {
	db *gorm.DB
}

func NewImmunizationRepository(db *gorm.DB) ImmunizationRepository {
	return &immunizationRepository{db: db}
}

func (r *immunizationRepository) Create(ctx context.Context, record *entity.ImmunizationRecord) error {
	return r.db.WithContext(ctx).Omit("Child").Create(record).Error
}

func (r *immunizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ImmunizationRecord, error) {
	var record entity.ImmunizationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *immunizationRepository) List(ctx context.Context, childID *uuid.UUID, isVerified *bool) ([]entity.ImmunizationRecord, error) {
	query := r.db.WithContext(ctx).Model(&entity.ImmunizationRecord{})
	if childID != nil {
		query = query.Where("child_id = ?", *childID)
	}
	if isVerified != nil {
		query = query.Where("is_verified = ?", *isVerified)
	}

	var records []entity.ImmunizationRecord
	err := query.Order("administration_date DESC").Find(&records).Error
	return records, err
}

func (r *immunizationRepository) expiringBetween(ctx context.Context, from, to datetime.Date) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entity.ImmunizationRecord{}).
		Where("expiration_date IS NOT NULL").
		Where("expiration_date >= ? AND expiration_date <= ?", from, to)
}

func (r *immunizationRepository) ListExpiringBetween(ctx context.Context, from, to datetime.Date) ([]entity.ImmunizationRecord, error) {
	var records []entity.ImmunizationRecord
	err := r.expiringBetween(ctx, from, to).
		Preload("Child").
		Order("expiration_date").
		Find(&records).Error
	return records, err
}

func (r *immunizationRepository) CountExpiringBetween(ctx context.Context, from, to datetime.Date) (int64, error) {
	var count int64
	err := r.expiringBetween(ctx, from, to).Count(&count).Error
	return count, err
}

func (r *immunizationRepository) RefreshExpired(ctx context.Context, today datetime.Date) (int64, error) {
	return refreshExpired(r.db.WithContext(ctx), &entity.ImmunizationRecord{}, today)
}

func (r *immunizationRepository) Update(ctx context.Context, record *entity.ImmunizationRecord) error {
	return r.db.WithContext(ctx).Omit("Child").Save(record).Error
}

func (r *immunizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ImmunizationRecord{}, "id = ?", id).Error
}

// refreshExpired flips is_expired on rows of model whose expiration_date says otherwise.
func refreshExpired(db *gorm.DB, model any, today datetime.Date) (int64, error) {
	var changed int64
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(model).
			Where("is_expired = ?", false).
			Where("expiration_date IS NOT NULL AND expiration_date < ?", today).
			Update("is_expired", true)
		if res.Error != nil {
			return res.Error
		}
		changed += res.RowsAffected

		res = tx.Model(model).
			Where("is_expired = ?", true).
			Where("expiration_date IS NULL OR expiration_date >= ?", today).
			Update("is_expired", false)
		if res.Error != nil {
			return res.Error
		}
		changed += res.RowsAffected
		return nil
	})
	return changed, err
}
