package repository

import (
	"context"

	"bouncearound.com/daycare/internal/entity"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentFormRepository interface {
	Create(ctx context.Context, form *entity.EnrollmentForm) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.EnrollmentForm, error)
	FindByChild(ctx context.Context, childID uuid.UUID) (*entity.EnrollmentForm, error)
	List(ctx context.Context, isComplete *bool, page commonDto.PageQuery) ([]entity.EnrollmentForm, int64, error)
	// ListIncomplete preloads the child.
	ListIncomplete(ctx context.Context) ([]entity.EnrollmentForm, error)
	CountIncomplete(ctx context.Context) (int64, error)
	Update(ctx context.Context, form *entity.EnrollmentForm) error
}

type enrollmentFormRepository struct {
	db *gorm.DB
}

func NewEnrollmentFormRepository(db *gorm.DB) EnrollmentFormRepository {
	return &enrollmentFormRepository{db: db}
}

func (r *enrollmentFormRepository) Create(ctx context.Context, form *entity.EnrollmentForm) error {
	return r.db.WithContext(ctx).Omit("Child").Create(form).Error
}

func (r *enrollmentFormRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.EnrollmentForm, error) {
	var form entity.EnrollmentForm
	if err := r.db.WithContext(ctx).First(&form, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *enrollmentFormRepository) FindByChild(ctx context.Context, childID uuid.UUID) (*entity.EnrollmentForm, error) {
	var form entity.EnrollmentForm
	if err := r.db.WithContext(ctx).First(&form, "child_id = ?", childID).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *enrollmentFormRepository) List(ctx context.Context, isComplete *bool, page commonDto.PageQuery) ([]entity.EnrollmentForm, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.EnrollmentForm{})
	if isComplete != nil {
		query = query.Where("is_complete = ?", *isComplete)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var forms []entity.EnrollmentForm
	err := query.Order("enrollment_date DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&forms).Error
	return forms, total, err
}

func (r *enrollmentFormRepository) ListIncomplete(ctx context.Context) ([]entity.EnrollmentForm, error) {
	var forms []entity.EnrollmentForm
	err := r.db.WithContext(ctx).
		Preload("Child").
		Where("is_complete = ?", false).
		Order("enrollment_date").
		Find(&forms).Error
	return forms, err
}

func (r *enrollmentFormRepository) CountIncomplete(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.EnrollmentForm{}).Where("is_complete = ?", false).Count(&count).Error
	return count, err
}

func (r *enrollmentFormRepository) Update(ctx context.Context, form *entity.EnrollmentForm) error {
	return r.db.WithContext(ctx).Omit("Child").Save(form).Error
}
