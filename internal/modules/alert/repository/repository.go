package repository

import (
	"context"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/alert/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *entity.ComplianceAlert) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ComplianceAlert, error)
	List(ctx context.Context, filter dto.AlertFilter) ([]entity.ComplianceAlert, error)
	OpenKeys(ctx context.Context) (map[dto.AlertKey]struct{}, error)
	CountUnresolved(ctx context.Context) (int64, error)
	Update(ctx context.Context, alert *entity.ComplianceAlert) error
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *entity.ComplianceAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ComplianceAlert, error) {
	var alert entity.ComplianceAlert
	if err := r.db.WithContext(ctx).First(&alert, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) List(ctx context.Context, filter dto.AlertFilter) ([]entity.ComplianceAlert, error) {
	query := r.db.WithContext(ctx).Model(&entity.ComplianceAlert{})
	if filter.IsResolved != nil {
		query = query.Where("is_resolved = ?", *filter.IsResolved)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}
	if filter.AlertType != "" {
		query = query.Where("alert_type = ?", filter.AlertType)
	}

	var alerts []entity.ComplianceAlert
	err := query.Order("due_date").Order("created_at DESC").Find(&alerts).Error
	return alerts, err
}

func (r *alertRepository) OpenKeys(ctx context.Context) (map[dto.AlertKey]struct{}, error) {
	var rows []struct {
		AlertType string
		EntityID  uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Model(&entity.ComplianceAlert{}).
		Select("alert_type, entity_id").
		Where("is_resolved = ?", false).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	keys := make(map[dto.AlertKey]struct{}, len(rows))
	for _, row := range rows {
		keys[dto.AlertKey{AlertType: row.AlertType, EntityID: row.EntityID}] = struct{}{}
	}
	return keys, nil
}

func (r *alertRepository) CountUnresolved(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ComplianceAlert{}).Where("is_resolved = ?", false).Count(&count).Error
	return count, err
}

func (r *alertRepository) Update(ctx context.Context, alert *entity.ComplianceAlert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}
