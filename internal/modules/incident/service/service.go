package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"bouncearound.com/daycare/internal/entity"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/incident/dto"
	"bouncearound.com/daycare/internal/modules/incident/repository"
	notifService "bouncearound.com/daycare/internal/modules/notification/service"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"bouncearound.com/daycare/pkg/validator"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const previewLength = 100

type IncidentService interface {
	Create(ctx context.Context, actor entity.Actor, input dto.CreateIncidentInput) (*entity.IncidentReport, error)
	List(ctx context.Context, filter dto.IncidentFilter) (*commonDto.Paginated[entity.IncidentReport], error)
	ListByChild(ctx context.Context, childID uuid.UUID, dates commonDto.DateRangeQuery) ([]entity.IncidentReport, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.IncidentReport, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateIncidentInput) (*entity.IncidentReport, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
	PendingParentNotification(ctx context.Context) ([]dto.PendingNotification, error)
	RequiringDCFS(ctx context.Context, notified *bool) ([]dto.DCFSReport, error)
	Statistics(ctx context.Context, dates commonDto.DateRangeQuery) (*dto.IncidentStatistics, error)
	MarkParentNotified(ctx context.Context, id uuid.UUID, method string) (*entity.IncidentReport, error)
	MarkDCFSNotified(ctx context.Context, id uuid.UUID) (*entity.IncidentReport, error)
}

type incidentService struct {
	repo      repository.IncidentRepository
	childRepo childRepo.ChildRepository
	notifier  notifService.Notifier
	loc       *time.Location
	now       func() time.Time
}

func NewIncidentService(repo repository.IncidentRepository, childRepo childRepo.ChildRepository, notifier notifService.Notifier, loc *time.Location) IncidentService {
	if loc == nil {
		loc = time.UTC
	}
	return &incidentService{
		repo:      repo,
		childRepo: childRepo,
		notifier:  notifier,
		loc:       loc,
		now:       time.Now,
	}
}

func validateType(v string) error {
	return validator.OneOf("incident type", v, entity.IncidentTypes)
}

func parseMethod(v *string) (*entity.NotificationMethod, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	if err := validator.OneOf("notification method", *v, entity.NotificationMethods); err != nil {
		return nil, err
	}
	m := entity.NotificationMethod(*v)
	return &m, nil
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLength {
		return s
	}
	return string(r[:previewLength]) + "..."
}

func childName(r *entity.IncidentReport) string {
	if r.Child == nil {
		return ""
	}
	return r.Child.FullName()
}

func (s *incidentService) Create(ctx context.Context, actor entity.Actor, input dto.CreateIncidentInput) (*entity.IncidentReport, error) {
	child, err := childRepo.Require(ctx, s.childRepo, input.ChildID)
	if err != nil {
		return nil, err
	}
	if err := validateType(input.IncidentType); err != nil {
		return nil, err
	}
	method, err := parseMethod(input.ParentNotificationMethod)
	if err != nil {
		return nil, err
	}

	report := &entity.IncidentReport{
		ChildID:                  child.ID,
		IncidentDate:             *input.IncidentDate,
		IncidentTime:             *input.IncidentTime,
		IncidentType:             entity.IncidentType(input.IncidentType),
		Description:              input.Description,
		Circumstances:            input.Circumstances,
		InjuryDescription:        input.InjuryDescription,
		BodyPartAffected:         input.BodyPartAffected,
		ActionTaken:              input.ActionTaken,
		Witnesses:                input.Witnesses,
		PhotoURL:                 input.PhotoURL,
		ParentNotified:           input.ParentNotified,
		ParentNotificationMethod: method,
		DCFSNotificationRequired: input.DCFSNotificationRequired,
		StaffSignatureURL:        input.StaffSignatureURL,
		ReportedBy:               actor.ID,
	}
	now := s.now()
	if report.ParentNotified {
		report.ParentNotifiedAt = &now
	}
	if report.StaffSignatureURL != nil {
		report.StaffSignedAt = &now
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	log.Info().
		Str("incident_id", report.ID.String()).
		Str("child_id", child.ID.String()).
		Str("type", string(report.IncidentType)).
		Bool("dcfs_required", report.DCFSNotificationRequired).
		Msg("incident reported")

	entityID := report.ID
	if err := s.notifier.NotifyAdmins(ctx, entity.Notification{
		Type:       notifService.TypeIncident,
		Title:      fmt.Sprintf("New %s incident", report.IncidentType),
		Message:    fmt.Sprintf("%s: %s", child.FullName(), preview(report.Description)),
		EntityType: "incident_report",
		EntityID:   &entityID,
	}); err != nil {
		log.Warn().Err(err).Str("incident_id", report.ID.String()).Msg("failed to notify admins about incident")
	}

	return report, nil
}

func (s *incidentService) criteria(filter dto.IncidentFilter) (dto.IncidentCriteria, error) {
	c := dto.IncidentCriteria{
		PageQuery:      filter.PageQuery,
		IncidentType:   filter.IncidentType,
		ParentNotified: filter.ParentNotified,
		DCFSRequired:   filter.DCFSRequired,
	}
	var err error
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

func (s *incidentService) List(ctx context.Context, filter dto.IncidentFilter) (*commonDto.Paginated[entity.IncidentReport], error) {
	filter.Normalize(20)
	c, err := s.criteria(filter)
	if err != nil {
		return nil, err
	}
	reports, total, err := s.repo.List(ctx, c)
	if err != nil {
		return nil, err
	}
	return commonDto.NewPaginated(reports, filter.PageQuery, total), nil
}

func (s *incidentService) ListByChild(ctx context.Context, childID uuid.UUID, dates commonDto.DateRangeQuery) ([]entity.IncidentReport, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}
	c, err := s.criteria(dto.IncidentFilter{StartDate: dates.StartDate, EndDate: dates.EndDate})
	if err != nil {
		return nil, err
	}
	c.ChildID = &childID
	reports, _, err := s.repo.List(ctx, c)
	return reports, err
}

func (s *incidentService) Get(ctx context.Context, id uuid.UUID) (*entity.IncidentReport, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Incident report with ID %s not found", id))
		}
		return nil, err
	}
	return report, nil
}

func (s *incidentService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateIncidentInput) (*entity.IncidentReport, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.IncidentType != nil {
		if err := validateType(*input.IncidentType); err != nil {
			return nil, err
		}
		report.IncidentType = entity.IncidentType(*input.IncidentType)
	}
	if input.ParentNotificationMethod != nil {
		method, err := parseMethod(input.ParentNotificationMethod)
		if err != nil {
			return nil, err
		}
		report.ParentNotificationMethod = method
	}
	if input.IncidentDate != nil {
		report.IncidentDate = *input.IncidentDate
	}
	if input.IncidentTime != nil {
		report.IncidentTime = *input.IncidentTime
	}
	if input.Description != nil {
		report.Description = *input.Description
	}
	if input.Circumstances != nil {
		report.Circumstances = input.Circumstances
	}
	if input.InjuryDescription != nil {
		report.InjuryDescription = input.InjuryDescription
	}
	if input.BodyPartAffected != nil {
		report.BodyPartAffected = input.BodyPartAffected
	}
	if input.ActionTaken != nil {
		report.ActionTaken = *input.ActionTaken
	}
	if input.Witnesses != nil {
		report.Witnesses = input.Witnesses
	}
	if input.PhotoURL != nil {
		report.PhotoURL = input.PhotoURL
	}
	if input.ParentNotified != nil {
		if *input.ParentNotified && !report.ParentNotified {
			now := s.now()
			report.ParentNotifiedAt = &now
		}
		report.ParentNotified = *input.ParentNotified
	}
	if input.DCFSNotificationRequired != nil {
		report.DCFSNotificationRequired = *input.DCFSNotificationRequired
	}
	if input.DCFSNotifiedAt != nil {
		report.DCFSNotifiedAt = input.DCFSNotifiedAt
	}
	if input.StaffSignatureURL != nil {
		report.StaffSignatureURL = input.StaffSignatureURL
		now := s.now()
		report.StaffSignedAt = &now
	}

	if err := s.repo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *incidentService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if !actor.Can(entity.CapDeleteRecords) {
		return apperror.Forbidden("Only administrators can delete incident reports")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *incidentService) PendingParentNotification(ctx context.Context) ([]dto.PendingNotification, error) {
	pending := false
	reports, _, err := s.repo.List(ctx, dto.IncidentCriteria{ParentNotified: &pending})
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]dto.PendingNotification, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		happened := r.IncidentDate.At(r.IncidentTime, s.loc)
		hours := math.Round(now.Sub(happened).Hours()*10) / 10
		out = append(out, dto.PendingNotification{
			ReportID:           r.ID,
			ChildID:            r.ChildID,
			ChildName:          childName(r),
			IncidentType:       string(r.IncidentType),
			IncidentDate:       r.IncidentDate,
			IncidentTime:       r.IncidentTime,
			HoursSinceIncident: hours,
			Description:        preview(r.Description),
		})
	}
	return out, nil
}

func (s *incidentService) RequiringDCFS(ctx context.Context, notified *bool) ([]dto.DCFSReport, error) {
	required := true
	reports, _, err := s.repo.List(ctx, dto.IncidentCriteria{DCFSRequired: &required, DCFSNotified: notified})
	if err != nil {
		return nil, err
	}

	out := make([]dto.DCFSReport, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		out = append(out, dto.DCFSReport{
			ReportID:       r.ID,
			ChildID:        r.ChildID,
			ChildName:      childName(r),
			IncidentType:   string(r.IncidentType),
			IncidentDate:   r.IncidentDate,
			IncidentTime:   r.IncidentTime,
			DCFSNotified:   r.DCFSNotifiedAt != nil,
			DCFSNotifiedAt: r.DCFSNotifiedAt,
			Description:    preview(r.Description),
		})
	}
	return out, nil
}

func (s *incidentService) Statistics(ctx context.Context, dates commonDto.DateRangeQuery) (*dto.IncidentStatistics, error) {
	c, err := s.criteria(dto.IncidentFilter{StartDate: dates.StartDate, EndDate: dates.EndDate})
	if err != nil {
		return nil, err
	}
	reports, _, err := s.repo.List(ctx, c)
	if err != nil {
		return nil, err
	}

	stats := &dto.IncidentStatistics{
		TotalIncidents: len(reports),
		ByType:         map[string]int{},
		DateRange:      dto.OpenRange{Start: c.StartDate, End: c.EndDate},
	}
	for _, r := range reports {
		stats.ByType[string(r.IncidentType)]++

		if r.ParentNotified {
			stats.ParentNotification.Notified++
		} else {
			stats.ParentNotification.Pending++
		}

		if r.DCFSNotificationRequired {
			stats.DCFSNotification.Required++
			if r.DCFSNotifiedAt != nil {
				stats.DCFSNotification.Completed++
			} else {
				stats.DCFSNotification.Pending++
			}
		}

		if r.IncidentType == entity.IncidentInjury {
			stats.Injuries++
		}
	}
	return stats, nil
}

func (s *incidentService) MarkParentNotified(ctx context.Context, id uuid.UUID, method string) (*entity.IncidentReport, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m, err := parseMethod(&method)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperror.InvalidInput("notification_method is required")
	}

	now := s.now()
	report.ParentNotified = true
	report.ParentNotifiedAt = &now
	report.ParentNotificationMethod = m

	if err := s.repo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *incidentService) MarkDCFSNotified(ctx context.Context, id uuid.UUID) (*entity.IncidentReport, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !report.DCFSNotificationRequired {
		return nil, apperror.BadRequest("This incident does not require DCFS notification")
	}

	now := s.now()
	report.DCFSNotifiedAt = &now
	if err := s.repo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
