package repository

import (
	"context"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/compliance/dto"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CredentialRepository interface {
	Create(ctx context.Context, credential *entity.StaffCredential) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.StaffCredential, error)
	List(ctx context.Context, criteria dto.CredentialCriteria) ([]entity.StaffCredential, error)
	// ListByUser orders by expiration with open-ended credentials last.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.StaffCredential, error)
	ListExpiringBetween(ctx context.Context, from, to datetime.Date) ([]entity.StaffCredential, error)
	ListExpiredBefore(ctx context.Context, day datetime.Date) ([]entity.StaffCredential, error)
	CountExpiringBetween(ctx context.Context, from, to datetime.Date) (int64, error)
	CountExpiredBefore(ctx context.Context, day datetime.Date) (int64, error)
	RefreshExpired(ctx context.Context, today datetime.Date) (int64, error)
	Update(ctx context.Context, credential *entity.StaffCredential) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type credentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Create(ctx context.Context, credential *entity.StaffCredential) error {
	return r.db.WithContext(ctx).Omit("User").Create(credential).Error
}

func (r *credentialRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.StaffCredential, error) {
	var credential entity.StaffCredential
	if err := r.db.WithContext(ctx).First(&credential, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &credential, nil
}

func (r *credentialRepository) List(ctx context.Context, c dto.CredentialCriteria) ([]entity.StaffCredential, error) {
	query := r.db.WithContext(ctx).Model(&entity.StaffCredential{})
	if c.UserID != nil {
		query = query.Where("user_id = ?", *c.UserID)
	}
	if c.CredentialType != "" {
		query = query.Where("credential_type = ?", c.CredentialType)
	}
	if c.IsVerified != nil {
		query = query.Where("is_verified = ?", *c.IsVerified)
	}
	if c.IsExpired != nil {
		query = query.Where("is_expired = ?", *c.IsExpired)
	}

	var credentials []entity.StaffCredential
	err := query.Order("created_at DESC").Find(&credentials).Error
	return credentials, err
}

func (r *credentialRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.StaffCredential, error) {
	var credentials []entity.StaffCredential
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("CASE WHEN expiration_date IS NULL THEN 1 ELSE 0 END, expiration_date").
		Find(&credentials).Error
	return credentials, err
}

func (r *credentialRepository) expiringBetween(ctx context.Context, from, to datetime.Date) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entity.StaffCredential{}).
		Where("expiration_date IS NOT NULL").
		Where("expiration_date >= ? AND expiration_date <= ?", from, to)
}

func (r *credentialRepository) expiredBefore(ctx context.Context, day datetime.Date) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entity.StaffCredential{}).
		Where("expiration_date IS NOT NULL AND expiration_date < ?", day)
}

func (r *credentialRepository) ListExpiringBetween(ctx context.Context, from, to datetime.Date) ([]entity.StaffCredential, error) {
	var credentials []entity.StaffCredential
	err := r.expiringBetween(ctx, from, to).
		Preload("User").
		Order("expiration_date").
		Find(&credentials).Error
	return credentials, err
}

func (r *credentialRepository) ListExpiredBefore(ctx context.Context, day datetime.Date) ([]entity.StaffCredential, error) {
	var credentials []entity.StaffCredential
	err := r.expiredBefore(ctx, day).
		Preload("User").
		Order("expiration_date DESC").
		Find(&credentials).Error
	return credentials, err
}

func (r *credentialRepository) CountExpiringBetween(ctx context.Context, from, to datetime.Date) (int64, error) {
	var count int64
	err := r.expiringBetween(ctx, from, to).Count(&count).Error
	return count, err
}

func (r *credentialRepository) CountExpiredBefore(ctx context.Context, day datetime.Date) (int64, error) {
	var count int64
	err := r.expiredBefore(ctx, day).Count(&count).Error
	return count, err
}

func (r *credentialRepository) RefreshExpired(ctx context.Context, today datetime.Date) (int64, error) {
	return refreshExpired(r.db.WithContext(ctx), &entity.StaffCredential{}, today)
}

func (r *credentialRepository) Update(ctx context.Context, credential *entity.StaffCredential) error {
	return r.db.WithContext(ctx).Omit("User").Save(credential).Error
}

func (r *credentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.StaffCredential{}, "id = ?", id).Error
}
