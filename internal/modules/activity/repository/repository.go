package repository

import (
	"context"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/activity/dto"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error)
	List(ctx context.Context, criteria dto.ActivityCriteria) ([]entity.Activity, int64, error)
	// ListForDay returns the child's activities for one day in activity time order.
	ListForDay(ctx context.Context, childID uuid.UUID, date datetime.Date) ([]entity.Activity, error)
	Update(ctx context.Context, activity *entity.Activity) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	var activity entity.Activity
	if err := r.db.WithContext(ctx).First(&activity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) List(ctx context.Context, criteria dto.ActivityCriteria) ([]entity.Activity, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Activity{})

	if criteria.ActivityDate != nil {
		query = query.Where("activity_date = ?", *criteria.ActivityDate)
	}
	if criteria.StartDate != nil {
		query = query.Where("activity_date >= ?", *criteria.StartDate)
	}
	if criteria.EndDate != nil {
		query = query.Where("activity_date <= ?", *criteria.EndDate)
	}
	if criteria.ChildID != nil {
		query = query.Where("child_id = ?", *criteria.ChildID)
	}
	if criteria.ActivityType != "" {
		query = query.Where("activity_type = ?", criteria.ActivityType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []entity.Activity
	err := query.
		Order("activity_date DESC, activity_time DESC").
		Limit(criteria.PageSize).
		Offset(criteria.Offset()).
		Find(&activities).Error
	return activities, total, err
}

func (r *activityRepository) ListForDay(ctx context.Context, childID uuid.UUID, date datetime.Date) ([]entity.Activity, error) {
	var activities []entity.Activity
	err := r.db.WithContext(ctx).
		Where("child_id = ? AND activity_date = ?", childID, date).
		Order("activity_time ASC").
		Find(&activities).Error
	return activities, err
}

func (r *activityRepository) Update(ctx context.Context, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Omit("Child").Save(activity).Error
}

func (r *activityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Activity{}, "id = ?", id).Error
}
