package repository

import (
	"context"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/report/dto"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.DailyReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DailyReport, error)
	FindByChildAndDate(ctx context.Context, childID uuid.UUID, day datetime.Date) (*entity.DailyReport, error)
	List(ctx context.Context, criteria dto.ReportCriteria) ([]entity.DailyReport, int64, error)
	Update(ctx context.Context, report *entity.DailyReport) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddPhoto(ctx context.Context, link *entity.ReportPhoto) error
	ListPhotos(ctx context.Context, reportID uuid.UUID) ([]entity.Photo, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *entity.DailyReport) error {
	return r.db.WithContext(ctx).Omit("Child").Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DailyReport, error) {
	var report entity.DailyReport
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindByChildAndDate(ctx context.Context, childID uuid.UUID, day datetime.Date) (*entity.DailyReport, error) {
	var report entity.DailyReport
	if err := r.db.WithContext(ctx).First(&report, "child_id = ? AND report_date = ?", childID, day).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, c dto.ReportCriteria) ([]entity.DailyReport, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.DailyReport{})
	if c.ChildID != nil {
		query = query.Where("child_id = ?", *c.ChildID)
	}
	if c.ReportDate != nil {
		query = query.Where("report_date = ?", *c.ReportDate)
	}
	if c.SentToParents != nil {
		query = query.Where("sent_to_parents = ?", *c.SentToParents)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []entity.DailyReport
	err := query.Order("report_date DESC, created_at DESC").
		Offset(c.Offset()).
		Limit(c.PageSize).
		Find(&reports).Error
	return reports, total, err
}

func (r *reportRepository) Update(ctx context.Context, report *entity.DailyReport) error {
	return r.db.WithContext(ctx).Omit("Child").Save(report).Error
}

func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.DailyReport{}, "id = ?", id).Error
}

func (r *reportRepository) AddPhoto(ctx context.Context, link *entity.ReportPhoto) error {
	return r.db.WithContext(ctx).Omit("Report", "Photo").Create(link).Error
}

func (r *reportRepository) ListPhotos(ctx context.Context, reportID uuid.UUID) ([]entity.Photo, error) {
	var photos []entity.Photo
	err := r.db.WithContext(ctx).
		Joins("JOIN report_photos ON report_photos.photo_id = photos.id").
		Where("report_photos.report_id = ?", reportID).
		Order("photos.photo_time").
		Find(&photos).Error
	return photos, err
}
