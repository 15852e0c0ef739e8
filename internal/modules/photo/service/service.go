package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"bouncearound.com/daycare/internal/entity"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/photo/dto"
	"bouncearound.com/daycare/internal/modules/photo/repository"
	uploadService "bouncearound.com/daycare/internal/modules/upload/service"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PhotoService interface {
	Create(ctx context.Context, actor entity.Actor, input dto.CreatePhotoInput) (*entity.Photo, error)
	Upload(ctx context.Context, actor entity.Actor, file *multipart.FileHeader, form dto.UploadPhotoForm) (*entity.Photo, error)
	List(ctx context.Context, filter dto.PhotoFilter) (*commonDto.Paginated[entity.Photo], error)
	ListByChild(ctx context.Context, childID uuid.UUID, page commonDto.PageQuery) (*commonDto.Paginated[entity.Photo], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Photo, error)
	UpdateCaption(ctx context.Context, id uuid.UUID, input dto.UpdatePhotoInput) (*entity.Photo, error)
	TagChild(ctx context.Context, id, childID uuid.UUID) (*entity.Photo, error)
	UntagChild(ctx context.Context, id, childID uuid.UUID) error
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
}

type photoService struct {
	repo      repository.PhotoRepository
	childRepo childRepo.ChildRepository
	uploads   uploadService.UploadService
	loc       *time.Location
	now       func() time.Time
}

func NewPhotoService(repo repository.PhotoRepository, childRepo childRepo.ChildRepository, uploads uploadService.UploadService, loc *time.Location) PhotoService {
	if loc == nil {
		loc = time.UTC
	}
	return &photoService{
		repo:      repo,
		childRepo: childRepo,
		uploads:   uploads,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *photoService) requireChildren(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return unique, nil
	}

	found, err := s.childRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	exists := make(map[uuid.UUID]bool, len(found))
	for _, c := range found {
		exists[c.ID] = true
	}
	for _, id := range unique {
		if !exists[id] {
			return nil, apperror.NotFound(fmt.Sprintf("Child with ID %s not found", id))
		}
	}
	return unique, nil
}

func (s *photoService) Create(ctx context.Context, actor entity.Actor, input dto.CreatePhotoInput) (*entity.Photo, error) {
	childIDs, err := s.requireChildren(ctx, input.ChildIDs)
	if err != nil {
		return nil, err
	}

	takenAt := s.now()
	if input.PhotoTime != nil {
		takenAt = *input.PhotoTime
	}

	photo := &entity.Photo{
		PhotoURL:   input.PhotoURL,
		PhotoDate:  *input.PhotoDate,
		PhotoTime:  takenAt,
		Caption:    input.Caption,
		UploadedBy: actor.ID,
	}
	for _, id := range childIDs {
		photo.Children = append(photo.Children, entity.ChildPhoto{ChildID: id})
	}

	if err := s.repo.Create(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func parseChildIDs(raw string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, apperror.InvalidInput(fmt.Sprintf("invalid child id %q", part))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *photoService) Upload(ctx context.Context, actor entity.Actor, file *multipart.FileHeader, form dto.UploadPhotoForm) (*entity.Photo, error) {
	day := datetime.DateOf(s.now().In(s.loc))
	if form.PhotoDate != "" {
		parsed, err := datetime.ParseDate(form.PhotoDate)
		if err != nil {
			return nil, apperror.InvalidInput(err.Error())
		}
		day = parsed
	}
	childIDs, err := parseChildIDs(form.ChildIDs)
	if err != nil {
		return nil, err
	}
	// fail before storing anything
	if _, err := s.requireChildren(ctx, childIDs); err != nil {
		return nil, err
	}

	stored, err := s.uploads.Upload(ctx, uploadService.FolderPhotos, file)
	if err != nil {
		return nil, err
	}

	input := dto.CreatePhotoInput{
		PhotoURL:  stored.URL,
		PhotoDate: &day,
		ChildIDs:  childIDs,
	}
	if form.Caption != "" {
		input.Caption = &form.Caption
	}

	photo, err := s.Create(ctx, actor, input)
	if err != nil {
		s.uploads.Remove(ctx, stored.URL)
		return nil, err
	}
	return photo, nil
}

func (s *photoService) List(ctx context.Context, filter dto.PhotoFilter) (*commonDto.Paginated[entity.Photo], error) {
	filter.Normalize(20)
	c := dto.PhotoCriteria{PageQuery: filter.PageQuery}
	if filter.ChildID != "" {
		id, err := uuid.Parse(filter.ChildID)
		if err != nil {
			return nil, apperror.InvalidInput("invalid child_id")
		}
		c.ChildID = &id
	}
	var err error
	if c.PhotoDate, err = datetime.ParseOptionalDate(filter.PhotoDate); err != nil {
		return nil, apperror.InvalidInput(err.Error())
	}

	photos, total, err := s.repo.List(ctx, c)
	if err != nil {
		return nil, err
	}
	return commonDto.NewPaginated(photos, filter.PageQuery, total), nil
}

func (s *photoService) ListByChild(ctx context.Context, childID uuid.UUID, page commonDto.PageQuery) (*commonDto.Paginated[entity.Photo], error) {
	if _, err := childRepo.Require(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}
	page.Normalize(20)
	photos, total, err := s.repo.List(ctx, dto.PhotoCriteria{PageQuery: page, ChildID: &childID})
	if err != nil {
		return nil, err
	}
	return commonDto.NewPaginated(photos, page, total), nil
}

func (s *photoService) Get(ctx context.Context, id uuid.UUID) (*entity.Photo, error) {
	photo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Photo with ID %s not found", id))
		}
		return nil, err
	}
	return photo, nil
}

func (s *photoService) UpdateCaption(ctx context.Context, id uuid.UUID, input dto.UpdatePhotoInput) (*entity.Photo, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	photo.Caption = input.Caption
	if err := s.repo.Update(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *photoService) TagChild(ctx context.Context, id, childID uuid.UUID) (*entity.Photo, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if _, err := childRepo.Require(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}

	if err := s.repo.Tag(ctx, &entity.ChildPhoto{PhotoID: id, ChildID: childID}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Child is already tagged in this photo")
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *photoService) UntagChild(ctx context.Context, id, childID uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	removed, err := s.repo.Untag(ctx, id, childID)
	if err != nil {
		return err
	}
	if !removed {
		return apperror.NotFound("Child is not tagged in this photo")
	}
	return nil
}

func (s *photoService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(photo.UploadedBy) {
		return apperror.Forbidden("You can only delete photos you uploaded")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.uploads.Remove(ctx, photo.PhotoURL)
	log.Info().Str("photo_id", id.String()).Msg("photo deleted")
	return nil
}
