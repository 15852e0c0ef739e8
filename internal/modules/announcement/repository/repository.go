package repository

import (
	"context"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/announcement/dto"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// priorityRank sorts urgent first.
const priorityRank = "CASE priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'normal' THEN 2 ELSE 3 END"

type AnnouncementRepository interface {
	Create(ctx context.Context, a *entity.Announcement) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Announcement, error)
	List(ctx context.Context, filter dto.AnnouncementFilter) ([]entity.Announcement, int64, error)
	// ListActive returns active announcements dated on or before day.
	ListActive(ctx context.Context, day datetime.Date) ([]entity.Announcement, error)
	Update(ctx context.Context, a *entity.Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, a *entity.Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *announcementRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Announcement, error) {
	var a entity.Announcement
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepository) List(ctx context.Context, filter dto.AnnouncementFilter) ([]entity.Announcement, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Announcement{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.Announcement
	err := query.Order("announcement_date DESC").Order("created_at DESC").
		Offset(filter.Offset()).Limit(filter.PageSize).
		Find(&items).Error
	return items, total, err
}

func (r *announcementRepository) ListActive(ctx context.Context, day datetime.Date) ([]entity.Announcement, error) {
	var items []entity.Announcement
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND announcement_date <= ?", true, day).
		Order(priorityRank).
		Order("announcement_date DESC").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *announcementRepository) Update(ctx context.Context, a *entity.Announcement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *announcementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Announcement{}, "id = ?", id).Error
}
