package repository

import (
	"context"
	"strings"

	"bouncearound.com/daycare/internal/entity"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PickupRepository interface {
	Create(ctx context.Context, pickup *entity.AuthorizedPickup) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AuthorizedPickup, error)
	FindByChild(ctx context.Context, childID uuid.UUID, isActive *bool) ([]entity.AuthorizedPickup, error)
	ListActive(ctx context.Context, page commonDto.PageQuery) ([]entity.AuthorizedPickup, int64, error)
	SearchByName(ctx context.Context, name string, isActive *bool) ([]entity.AuthorizedPickup, error)
	FindActiveMatch(ctx context.Context, childID uuid.UUID, name string) (*entity.AuthorizedPickup, error)
	ListWithoutPhoto(ctx context.Context) ([]entity.AuthorizedPickup, error)
	Update(ctx context.Context, pickup *entity.AuthorizedPickup) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type pickupRepository struct {
	db *gorm.DB
}

func NewPickupRepository(db *gorm.DB) PickupRepository {
	return &pickupRepository{db: db}
}

func (r *pickupRepository) Create(ctx context.Context, pickup *entity.AuthorizedPickup) error {
	return r.db.WithContext(ctx).Create(pickup).Error
}

func (r *pickupRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AuthorizedPickup, error) {
	var pickup entity.AuthorizedPickup
	if err := r.db.WithContext(ctx).First(&pickup, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pickup, nil
}

func (r *pickupRepository) FindByChild(ctx context.Context, childID uuid.UUID, isActive *bool) ([]entity.AuthorizedPickup, error) {
	query := r.db.WithContext(ctx).Where("child_id = ?", childID)
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}

	var pickups []entity.AuthorizedPickup
	err := query.Order("name ASC").Find(&pickups).Error
	return pickups, err
}

func (r *pickupRepository) ListActive(ctx context.Context, page commonDto.PageQuery) ([]entity.AuthorizedPickup, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.AuthorizedPickup{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var pickups []entity.AuthorizedPickup
	err := query.
		Order("name ASC").
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&pickups).Error
	return pickups, total, err
}

func (r *pickupRepository) SearchByName(ctx context.Context, name string, isActive *bool) ([]entity.AuthorizedPickup, error) {
	query := r.db.WithContext(ctx).Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}

	var pickups []entity.AuthorizedPickup
	err := query.Order("name ASC").Find(&pickups).Error
	return pickups, err
}

// FindActiveMatch returns the first active pickup for the child whose name
// contains name, ignoring case.
func (r *pickupRepository) FindActiveMatch(ctx context.Context, childID uuid.UUID, name string) (*entity.AuthorizedPickup, error) {
	var pickup entity.AuthorizedPickup
	err := r.db.WithContext(ctx).
		Where("child_id = ? AND is_active = ?", childID, true).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%").
		Order("name ASC").
		First(&pickup).Error
	if err != nil {
		return nil, err
	}
	return &pickup, nil
}

func (r *pickupRepository) ListWithoutPhoto(ctx context.Context) ([]entity.AuthorizedPickup, error) {
	var pickups []entity.AuthorizedPickup
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("photo_url IS NULL OR photo_url = ''").
		Order("created_at DESC").
		Find(&pickups).Error
	return pickups, err
}

func (r *pickupRepository) Update(ctx context.Context, pickup *entity.AuthorizedPickup) error {
	return r.db.WithContext(ctx).Omit("Child").Save(pickup).Error
}

func (r *pickupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.AuthorizedPickup{}, "id = ?", id).Error
}
