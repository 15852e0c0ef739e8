package repository

import (
	"context"

	"bouncearound.com/daycare/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *entity.EmergencyContact) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.EmergencyContact, error)
	FindByChild(ctx context.Context, childID uuid.UUID) ([]entity.EmergencyContact, error)
	PriorityTaken(ctx context.Context, childID uuid.UUID, priority int, excludeID uuid.UUID) (bool, error)
	CountByChild(ctx context.Context, childID uuid.UUID) (int64, error)
	CountsByChild(ctx context.Context) (map[uuid.UUID]int, error)
	Update(ctx context.Context, contact *entity.EmergencyContact) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, id uuid.UUID, newPriority int) (*entity.EmergencyContact, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *entity.EmergencyContact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.EmergencyContact, error) {
	var contact entity.EmergencyContact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) FindByChild(ctx context.Context, childID uuid.UUID) ([]entity.EmergencyContact, error) {
	var contacts []entity.EmergencyContact
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("priority_order ASC").
		Find(&contacts).Error
	return contacts, err
}

func (r *contactRepository) PriorityTaken(ctx context.Context, childID uuid.UUID, priority int, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.EmergencyContact{}).
		Where("child_id = ? AND priority_order = ?", childID, priority)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *contactRepository) CountByChild(ctx context.Context, childID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.EmergencyContact{}).
		Where("child_id = ?", childID).
		Count(&count).Error
	return count, err
}

func (r *contactRepository) CountsByChild(ctx context.Context) (map[uuid.UUID]int, error) {
	var rows []struct {
		ChildID uuid.UUID
		Total   int
	}
	err := r.db.WithContext(ctx).Model(&entity.EmergencyContact{}).
		Select("child_id, COUNT(*) AS total").
		Group("child_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.ChildID] = row.Total
	}
	return counts, nil
}

func (r *contactRepository) Update(ctx context.Context, contact *entity.EmergencyContact) error {
	return r.db.WithContext(ctx).Omit("Child").Save(contact).Error
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.EmergencyContact{}, "id = ?", id).Error
}

// Reorder moves one contact to newPriority and shifts the contacts between
// the old and new positions by one, all under a row lock on the child's contacts.
func (r *contactRepository) Reorder(ctx context.Context, id uuid.UUID, newPriority int) (*entity.EmergencyContact, error) {
	var moved entity.EmergencyContact

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&moved, "id = ?", id).Error; err != nil {
			return err
		}

		oldPriority := moved.PriorityOrder
		if oldPriority == newPriority {
			return nil
		}

		var siblings []entity.EmergencyContact
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("child_id = ? AND id <> ?", moved.ChildID, moved.ID).
			Order("priority_order ASC").
			Find(&siblings).Error; err != nil {
			return err
		}

		for _, c := range siblings {
			p := c.PriorityOrder
			switch {
			case newPriority < oldPriority && p >= newPriority && p < oldPriority:
				p++
			case newPriority > oldPriority && p > oldPriority && p <= newPriority:
				p--
			default:
				continue
			}
			if err := tx.Model(&entity.EmergencyContact{}).Where("id = ?", c.ID).Update("priority_order", p).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&entity.EmergencyContact{}).Where("id = ?", moved.ID).Update("priority_order", newPriority).Error; err != nil {
			return err
		}
		return tx.First(&moved, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &moved, nil
}
