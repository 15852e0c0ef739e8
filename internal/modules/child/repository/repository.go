package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/child/dto"
	"bouncearound.com/daycare/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Require loads a child, mapping a missing row to a 404 for callers in other modules.
func Require(ctx context.Context, repo ChildRepository, id uuid.UUID) (*entity.Child, error) {
	child, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Child with ID %s not found", id))
		}
		return nil, err
	}
	return child, nil
}

type ChildRepository interface {
	Create(ctx context.Context, child *entity.Child) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Child, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Child, error)
	List(ctx context.Context, filter dto.ChildFilter) ([]entity.Child, int64, error)
	ListActive(ctx context.Context) ([]entity.Child, error)
	CountActive(ctx context.Context) (int64, error)
	Update(ctx context.Context, child *entity.Child) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type childRepository struct {
	db *gorm.DB
}

func NewChildRepository(db *gorm.DB) ChildRepository {
	return &childRepository{db: db}
}

func (r *childRepository) Create(ctx context.Context, child *entity.Child) error {
	return r.db.WithContext(ctx).Create(child).Error
}

func (r *childRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Child, error) {
	var child entity.Child
	if err := r.db.WithContext(ctx).First(&child, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &child, nil
}

func (r *childRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Child, error) {
	var children []entity.Child
	if len(ids) == 0 {
		return children, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&children).Error
	return children, err
}

func (r *childRepository) List(ctx context.Context, filter dto.ChildFilter) ([]entity.Child, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Child{})

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var children []entity.Child
	err := query.
		Order("last_name ASC, first_name ASC").
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&children).Error
	return children, total, err
}

func (r *childRepository) ListActive(ctx context.Context) ([]entity.Child, error) {
	var children []entity.Child
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("last_name ASC, first_name ASC").
		Find(&children).Error
	return children, err
}

func (r *childRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Child{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *childRepository) Update(ctx context.Context, child *entity.Child) error {
	return r.db.WithContext(ctx).Save(child).Error
}

func (r *childRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Child{}, "id = ?", id).Error
}
