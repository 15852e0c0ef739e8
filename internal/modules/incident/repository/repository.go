package repository

import (
	"context"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/incident/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IncidentRepository interface {
	Create(ctx context.Context, report *entity.IncidentReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.IncidentReport, error)
	// List applies the criteria; the returned total is only meaningful when paginating.
	List(ctx context.Context, criteria dto.IncidentCriteria) ([]entity.IncidentReport, int64, error)
	Update(ctx context.Context, report *entity.IncidentReport) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountPending(ctx context.Context) (parent int64, dcfs int64, err error)
}

type incidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) IncidentRepository {
	return &incidentRepository{db: db}
}

func (r *incidentRepository) Create(ctx context.Context, report *entity.IncidentReport) error {
	return r.db.WithContext(ctx).Omit("Child").Create(report).Error
}

func (r *incidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.IncidentReport, error) {
	var report entity.IncidentReport
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *incidentRepository) List(ctx context.Context, c dto.IncidentCriteria) ([]entity.IncidentReport, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.IncidentReport{})

	if c.ChildID != nil {
		query = query.Where("child_id = ?", *c.ChildID)
	}
	if c.IncidentType != "" {
		query = query.Where("incident_type = ?", c.IncidentType)
	}
	if c.StartDate != nil {
		query = query.Where("incident_date >= ?", *c.StartDate)
	}
	if c.EndDate != nil {
		query = query.Where("incident_date <= ?", *c.EndDate)
	}
	if c.ParentNotified != nil {
		query = query.Where("parent_notified = ?", *c.ParentNotified)
	}
	if c.DCFSRequired != nil {
		query = query.Where("dcfs_notification_required = ?", *c.DCFSRequired)
	}
	if c.DCFSNotified != nil {
		if *c.DCFSNotified {
			query = query.Where("dcfs_notified_at IS NOT NULL")
		} else {
			query = query.Where("dcfs_notified_at IS NULL")
		}
	}

	var total int64
	if c.PageSize > 0 {
		if err := query.Count(&total).Error; err != nil {
			return nil, 0, err
		}
		query = query.Limit(c.PageSize).Offset(c.Offset())
	}

	var reports []entity.IncidentReport
	err := query.Preload("Child").Order("incident_date DESC, incident_time DESC").Find(&reports).Error
	return reports, total, err
}

func (r *incidentRepository) Update(ctx context.Context, report *entity.IncidentReport) error {
	return r.db.WithContext(ctx).Omit("Child").Save(report).Error
}

func (r *incidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.IncidentReport{}, "id = ?", id).Error
}

func (r *incidentRepository) CountPending(ctx context.Context) (int64, int64, error) {
	var parent, dcfs int64
	if err := r.db.WithContext(ctx).Model(&entity.IncidentReport{}).
		Where("parent_notified = ?", false).
		Count(&parent).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.WithContext(ctx).Model(&entity.IncidentReport{}).
		Where("dcfs_notification_required = ? AND dcfs_notified_at IS NULL", true).
		Count(&dcfs).Error
	return parent, dcfs, err
}
