package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/activity/dto"
	"bouncearound.com/daycare/internal/modules/activity/repository"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"bouncearound.com/daycare/pkg/validator"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityService interface {
	Create(ctx context.Context, actor entity.Actor, input dto.CreateActivityInput) (*entity.Activity, error)
	List(ctx context.Context, filter dto.ActivityFilter) (*commonDto.Paginated[entity.Activity], error)
	Today(ctx context.Context, filter dto.ActivityFilter) (*commonDto.Paginated[entity.Activity], error)
	ListByChild(ctx context.Context, childID uuid.UUID, filter dto.ActivityFilter) (*commonDto.Paginated[entity.Activity], error)
	ListForDay(ctx context.Context, childID uuid.UUID, date string) ([]entity.Activity, error)
	Summary(ctx context.Context, childID uuid.UUID, date string) (*dto.ActivitySummary, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Activity, error)
	Update(ctx context.Context, actor entity.Actor, id uuid.UUID, input dto.UpdateActivityInput) (*entity.Activity, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
}

type activityService struct {
	repo      repository.ActivityRepository
	childRepo childRepo.ChildRepository
	loc       *time.Location
}

func NewActivityService(repo repository.ActivityRepository, childRepo childRepo.ChildRepository, loc *time.Location) ActivityService {
	if loc == nil {
		loc = time.UTC
	}
	return &activityService{
		repo:      repo,
		childRepo: childRepo,
		loc:       loc,
	}
}

func validateType(v string) error {
	return validator.OneOf("activity type", v, entity.ActivityTypes)
}

func validateMood(v *string) error {
	if v == nil || *v == "" {
		return nil
	}
	return validator.OneOf("mood", *v, entity.Moods)
}

func (s *activityService) Create(ctx context.Context, actor entity.Actor, input dto.CreateActivityInput) (*entity.Activity, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, input.ChildID); err != nil {
		return nil, err
	}
	if err := validateType(input.ActivityType); err != nil {
		return nil, err
	}
	if err := validateMood(input.Mood); err != nil {
		return nil, err
	}

	activity := &entity.Activity{
		ChildID:         input.ChildID,
		ActivityDate:    *input.ActivityDate,
		ActivityTime:    *input.ActivityTime,
		ActivityType:    entity.ActivityType(input.ActivityType),
		ActivityName:    input.ActivityName,
		Description:     input.Description,
		Mood:            moodOf(input.Mood),
		DurationMinutes: input.DurationMinutes,
		Notes:           input.Notes,
		LoggedBy:        actor.ID,
	}
	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func moodOf(v *string) *entity.Mood {
	if v == nil || *v == "" {
		return nil
	}
	m := entity.Mood(*v)
	return &m
}

func (s *activityService) criteria(filter dto.ActivityFilter) (dto.ActivityCriteria, error) {
	filter.Normalize(50)
	c := dto.ActivityCriteria{
		PageQuery:    filter.PageQuery,
		ActivityType: filter.ActivityType,
	}

	var err error
	if c.ActivityDate, err = datetime.ParseOptionalDate(filter.ActivityDate); err != nil {
		return c, apperror.InvalidInput(err.Error())
	}
	if c.StartDate, err = datetime.ParseOptionalDate(filter.StartDate); err != nil {
		return c, apperror.InvalidInput(err.Error())
	}
	if c.EndDate, err = datetime.ParseOptionalDate(filter.EndDate); err != nil {
		return c, apperror.InvalidInput(err.Error())
	}
	if filter.ChildID != "" {
		id, err := uuid.Parse(filter.ChildID)
		if err != nil {
			return c, apperror.InvalidInput("invalid child_id")
		}
		c.ChildID = &id
	}
	return c, nil
}

func (s *activityService) list(ctx context.Context, c dto.ActivityCriteria) (*commonDto.Paginated[entity.Activity], error) {
	activities, total, err := s.repo.List(ctx, c)
	if err != nil {
		return nil, err
	}
	return commonDto.NewPaginated(activities, c.PageQuery, total), nil
}

func (s *activityService) List(ctx context.Context, filter dto.ActivityFilter) (*commonDto.Paginated[entity.Activity], error) {
	c, err := s.criteria(filter)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, c)
}

func (s *activityService) Today(ctx context.Context, filter dto.ActivityFilter) (*commonDto.Paginated[entity.Activity], error) {
	c, err := s.criteria(filter)
	if err != nil {
		return nil, err
	}
	today := datetime.Today(s.loc)
	c.ActivityDate = &today
	c.StartDate, c.EndDate = nil, nil
	return s.list(ctx, c)
}

func (s *activityService) ListByChild(ctx context.Context, childID uuid.UUID, filter dto.ActivityFilter) (*commonDto.Paginated[entity.Activity], error) {
	if _, err := childRepo.Require(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}
	c, err := s.criteria(filter)
	if err != nil {
		return nil, err
	}
	c.ChildID = &childID
	return s.list(ctx, c)
}

func (s *activityService) ListForDay(ctx context.Context, childID uuid.UUID, date string) ([]entity.Activity, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}
	day, err := datetime.ParseDate(date)
	if err != nil {
		return nil, apperror.InvalidInput(err.Error())
	}
	return s.repo.ListForDay(ctx, childID, day)
}

func (s *activityService) Summary(ctx context.Context, childID uuid.UUID, date string) (*dto.ActivitySummary, error) {
	child, err := childRepo.Require(ctx, s.childRepo, childID)
	if err != nil {
		return nil, err
	}
	day, err := datetime.ParseDate(date)
	if err != nil {
		return nil, apperror.InvalidInput(err.Error())
	}

	activities, err := s.repo.ListForDay(ctx, childID, day)
	if err != nil {
		return nil, err
	}
	summary := Summarize(child, day, activities)
	return &summary, nil
}

// Summarize folds one day of activities, which must be in activity time
// order. The predominant mood is the most frequent one; ties go to the mood
// seen first.
func Summarize(child *entity.Child, day datetime.Date, activities []entity.Activity) dto.ActivitySummary {
	summary := dto.ActivitySummary{
		ChildID:          child.ID,
		ChildName:        child.FullName(),
		Date:             day,
		TotalActivities:  len(activities),
		ActivitiesByType: map[string]int{},
		Moods:            []string{},
	}

	moodCounts := map[string]int{}
	for _, a := range activities {
		summary.ActivitiesByType[string(a.ActivityType)]++

		if a.Mood != nil && *a.Mood != "" {
			mood := string(*a.Mood)
			summary.Moods = append(summary.Moods, mood)
			moodCounts[mood]++
		}

		switch a.ActivityType {
		case entity.ActivityNap:
			if a.DurationMinutes != nil {
				summary.TotalNapDuration += *a.DurationMinutes
			}
		case entity.ActivityMeal:
			summary.MealCount++
		case entity.ActivityDiaper:
			summary.DiaperCount++
		}
	}

	best := 0
	for _, mood := range summary.Moods {
		if moodCounts[mood] > best {
			best = moodCounts[mood]
			m := mood
			summary.PredominantMood = &m
		}
	}
	return summary
}

func (s *activityService) Get(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Activity with ID %s not found", id))
		}
		return nil, err
	}
	return activity, nil
}

func (s *activityService) Update(ctx context.Context, actor entity.Actor, id uuid.UUID, input dto.UpdateActivityInput) (*entity.Activity, error) {
	activity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(activity.LoggedBy) {
		return nil, apperror.Forbidden("You can only update activities you logged")
	}

	if input.ActivityType != nil {
		if err := validateType(*input.ActivityType); err != nil {
			return nil, err
		}
		activity.ActivityType = entity.ActivityType(*input.ActivityType)
	}
	if input.Mood != nil {
		if err := validateMood(input.Mood); err != nil {
			return nil, err
		}
		activity.Mood = moodOf(input.Mood)
	}
	if input.ActivityDate != nil {
		activity.ActivityDate = *input.ActivityDate
	}
	if input.ActivityTime != nil {
		activity.ActivityTime = *input.ActivityTime
	}
	if input.ActivityName != nil {
		activity.ActivityName = *input.ActivityName
	}
	if input.Description != nil {
		activity.Description = input.Description
	}
	if input.DurationMinutes != nil {
		activity.DurationMinutes = input.DurationMinutes
	}
	if input.Notes != nil {
		activity.Notes = input.Notes
	}

	if err := s.repo.Update(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	activity, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(activity.LoggedBy) {
		return apperror.Forbidden("You can only delete activities you logged")
	}
	return s.repo.Delete(ctx, id)
}
