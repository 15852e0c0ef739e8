package repository

import (
	"context"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/photo/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PhotoRepository interface {
	// Create stores the photo together with its child tags.
	Create(ctx context.Context, photo *entity.Photo) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Photo, error)
	List(ctx context.Context, criteria dto.PhotoCriteria) ([]entity.Photo, int64, error)
	Update(ctx context.Context, photo *entity.Photo) error
	Tag(ctx context.Context, tag *entity.ChildPhoto) error
	// Untag reports false when the child was not tagged.
	Untag(ctx context.Context, photoID, childID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *entity.Photo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags := photo.Children
		if err := tx.Omit("Children").Create(photo).Error; err != nil {
			return err
		}
		for i := range tags {
			tags[i].PhotoID = photo.ID
		}
		if len(tags) > 0 {
			if err := tx.Omit("Child").Create(&tags).Error; err != nil {
				return err
			}
		}
		photo.Children = tags
		return nil
	})
}

func (r *photoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Photo, error) {
	var photo entity.Photo
	if err := r.db.WithContext(ctx).Preload("Children").First(&photo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) List(ctx context.Context, c dto.PhotoCriteria) ([]entity.Photo, int64, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&entity.Photo{})
	if c.ChildID != nil {
		tagged := db.Model(&entity.ChildPhoto{}).Select("photo_id").Where("child_id = ?", *c.ChildID)
		query = query.Where("id IN (?)", tagged)
	}
	if c.PhotoDate != nil {
		query = query.Where("photo_date = ?", *c.PhotoDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var photos []entity.Photo
	err := query.Preload("Children").
		Order("photo_date DESC, photo_time DESC").
		Offset(c.Offset()).
		Limit(c.PageSize).
		Find(&photos).Error
	return photos, total, err
}

func (r *photoRepository) Update(ctx context.Context, photo *entity.Photo) error {
	return r.db.WithContext(ctx).Omit("Children").Save(photo).Error
}

func (r *photoRepository) Tag(ctx context.Context, tag *entity.ChildPhoto) error {
	return r.db.WithContext(ctx).Omit("Child").Create(tag).Error
}

func (r *photoRepository) Untag(ctx context.Context, photoID, childID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&entity.ChildPhoto{}, "photo_id = ? AND child_id = ?", photoID, childID)
	return res.RowsAffected > 0, res.Error
}

func (r *photoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.ChildPhoto{}, "photo_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Photo{}, "id = ?", id).Error
	})
}
