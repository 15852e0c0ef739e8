package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/announcement/dto"
	"bouncearound.com/daycare/internal/modules/announcement/repository"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"bouncearound.com/daycare/pkg/validator"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type AnnouncementService interface {
	Create(ctx context.Context, actor entity.Actor, input dto.CreateAnnouncementInput) (*entity.Announcement, error)
	List(ctx context.Context, filter dto.AnnouncementFilter) (*commonDto.Paginated[entity.Announcement], error)
	Active(ctx context.Context) ([]entity.Announcement, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Announcement, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateAnnouncementInput) (*entity.Announcement, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
}

type announcementService struct {
	repo    repository.AnnouncementRepository
	content *bluemonday.Policy
	plain   *bluemonday.Policy
	loc     *time.Location
	now     func() time.Time
}

func NewAnnouncementService(repo repository.AnnouncementRepository, loc *time.Location) AnnouncementService {
	if loc == nil {
		loc = time.UTC
	}
	return &announcementService{
		repo:    repo,
		content: bluemonday.UGCPolicy(),
		plain:   bluemonday.StrictPolicy(),
		loc:     loc,
		now:     time.Now,
	}
}

func (s *announcementService) today() datetime.Date {
	return datetime.DateOf(s.now().In(s.loc))
}

func (s *announcementService) cleanTitle(title string) (string, error) {
	title = strings.TrimSpace(s.plain.Sanitize(title))
	if title == "" {
		return "", apperror.BadRequest("Announcement title cannot be empty")
	}
	return title, nil
}

func (s *announcementService) cleanContent(content string) (string, error) {
	content = strings.TrimSpace(s.content.Sanitize(content))
	if content == "" {
		return "", apperror.BadRequest("Announcement content cannot be empty")
	}
	return content, nil
}

func (s *announcementService) Create(ctx context.Context, actor entity.Actor, input dto.CreateAnnouncementInput) (*entity.Announcement, error) {
	priority := entity.PriorityNormal
	if input.Priority != "" {
		if err := validator.OneOf("priority", input.Priority, entity.AnnouncementPriorities); err != nil {
			return nil, err
		}
		priority = entity.AnnouncementPriority(input.Priority)
	}

	title, err := s.cleanTitle(input.Title)
	if err != nil {
		return nil, err
	}
	content, err := s.cleanContent(input.Content)
	if err != nil {
		return nil, err
	}

	a := &entity.Announcement{
		Title:            title,
		Content:          content,
		AnnouncementDate: s.today(),
		Priority:         priority,
		IsActive:         true,
		CreatedBy:        actor.ID,
	}
	if input.AnnouncementDate != nil {
		a.AnnouncementDate = *input.AnnouncementDate
	}
	if input.IsActive != nil {
		a.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *announcementService) List(ctx context.Context, filter dto.AnnouncementFilter) (*commonDto.Paginated[entity.Announcement], error) {
	filter.Normalize(20)
	if filter.Priority != "" {
		if err := validator.OneOf("priority", filter.Priority, entity.AnnouncementPriorities); err != nil {
			return nil, err
		}
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return commonDto.NewPaginated(items, filter.PageQuery, total), nil
}

func (s *announcementService) Active(ctx context.Context) ([]entity.Announcement, error) {
	return s.repo.ListActive(ctx, s.today())
}

func (s *announcementService) Get(ctx context.Context, id uuid.UUID) (*entity.Announcement, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Announcement with ID %s not found", id))
		}
		return nil, err
	}
	return a, nil
}

func (s *announcementService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateAnnouncementInput) (*entity.Announcement, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Priority != nil {
		if err := validator.OneOf("priority", *input.Priority, entity.AnnouncementPriorities); err != nil {
			return nil, err
		}
		a.Priority = entity.AnnouncementPriority(*input.Priority)
	}
	if input.Title != nil {
		if a.Title, err = s.cleanTitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if input.Content != nil {
		if a.Content, err = s.cleanContent(*input.Content); err != nil {
			return nil, err
		}
	}
	if input.AnnouncementDate != nil {
		a.AnnouncementDate = *input.AnnouncementDate
	}
	if input.IsActive != nil {
		a.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *announcementService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(a.CreatedBy) {
		return apperror.Forbidden("You can only delete announcements you created")
	}
	return s.repo.Delete(ctx, id)
}
