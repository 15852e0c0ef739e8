package repository

import (
	"context"
	"strings"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/parent/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParentRepository interface {
	Create(ctx context.Context, parent *entity.Parent) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Parent, error)
	List(ctx context.Context, filter dto.ParentFilter) ([]entity.Parent, int64, error)
	Update(ctx context.Context, parent *entity.Parent) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateLink(ctx context.Context, link *entity.ChildParent) error
	FindLinkByID(ctx context.Context, id uuid.UUID) (*entity.ChildParent, error)
	FindLinksByChild(ctx context.Context, childID uuid.UUID) ([]entity.ChildParent, error)
	FindLinksByParent(ctx context.Context, parentID uuid.UUID) ([]entity.ChildParent, error)
	LinkExists(ctx context.Context, childID, parentID uuid.UUID) (bool, error)
	UpdateLink(ctx context.Context, link *entity.ChildParent) error
	DeleteLink(ctx context.Context, id uuid.UUID) error
}

type parentRepository struct {
	db *gorm.DB
}

func NewParentRepository(db *gorm.DB) ParentRepository {
	return &parentRepository{db: db}
}

func (r *parentRepository) Create(ctx context.Context, parent *entity.Parent) error {
	return r.db.WithContext(ctx).Create(parent).Error
}

func (r *parentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Parent, error) {
	var parent entity.Parent
	if err := r.db.WithContext(ctx).First(&parent, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *parentRepository) List(ctx context.Context, filter dto.ParentFilter) ([]entity.Parent, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Parent{})

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone_primary) LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var parents []entity.Parent
	err := query.
		Order("last_name ASC, first_name ASC").
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&parents).Error
	return parents, total, err
}

func (r *parentRepository) Update(ctx context.Context, parent *entity.Parent) error {
	return r.db.WithContext(ctx).Save(parent).Error
}

func (r *parentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Parent{}, "id = ?", id).Error
}

func (r *parentRepository) CreateLink(ctx context.Context, link *entity.ChildParent) error {
	return r.db.WithContext(ctx).Omit("Child", "Parent").Create(link).Error
}

func (r *parentRepository) FindLinkByID(ctx context.Context, id uuid.UUID) (*entity.ChildParent, error) {
	var link entity.ChildParent
	if err := r.db.WithContext(ctx).Preload("Parent").First(&link, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *parentRepository) FindLinksByChild(ctx context.Context, childID uuid.UUID) ([]entity.ChildParent, error) {
	var links []entity.ChildParent
	err := r.db.WithContext(ctx).
		Preload("Parent").
		Where("child_id = ?", childID).
		Order("is_primary DESC, created_at ASC").
		Find(&links).Error
	return links, err
}

func (r *parentRepository) FindLinksByParent(ctx context.Context, parentID uuid.UUID) ([]entity.ChildParent, error) {
	var links []entity.ChildParent
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&links).Error
	return links, err
}

func (r *parentRepository) LinkExists(ctx context.Context, childID, parentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ChildParent{}).
		Where("child_id = ? AND parent_id = ?", childID, parentID).
		Count(&count).Error
	return count > 0, err
}

func (r *parentRepository) UpdateLink(ctx context.Context, link *entity.ChildParent) error {
	return r.db.WithContext(ctx).Omit("Child", "Parent").Save(link).Error
}

func (r *parentRepository) DeleteLink(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ChildParent{}, "id = ?", id).Error
}
