package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bouncearound.com/daycare/internal/entity"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/medication/dto"
	"bouncearound.com/daycare/internal/modules/medication/repository"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type MedicationService interface {
	CreateAuthorization(ctx context.Context, input dto.CreateAuthorizationInput) (*entity.MedicationAuthorization, error)
	ListAuthorizations(ctx context.Context, filter dto.AuthorizationFilter) ([]entity.MedicationAuthorization, error)
	ListChildAuthorizations(ctx context.Context, childID uuid.UUID, isActive *bool) ([]entity.MedicationAuthorization, error)
	ActiveToday(ctx context.Context) ([]entity.MedicationAuthorization, error)
	GetAuthorization(ctx context.Context, id uuid.UUID) (*entity.MedicationAuthorization, error)
	UpdateAuthorization(ctx context.Context, id uuid.UUID, input dto.UpdateAuthorizationInput) (*entity.MedicationAuthorization, error)
	DeactivateAuthorization(ctx context.Context, id uuid.UUID) (*entity.MedicationAuthorization, error)
	DeleteAuthorization(ctx context.Context, actor entity.Actor, id uuid.UUID) error

	CreateLog(ctx context.Context, actor entity.Actor, input dto.CreateLogInput) (*entity.MedicationLog, error)
	ListLogs(ctx context.Context, filter dto.LogFilter) ([]entity.MedicationLog, error)
	ListChildLogs(ctx context.Context, childID uuid.UUID, dates commonDto.DateRangeQuery) ([]entity.MedicationLog, error)
	TodayLogs(ctx context.Context) ([]entity.MedicationLog, error)
	ListAuthorizationLogs(ctx context.Context, authorizationID uuid.UUID) ([]entity.MedicationLog, error)
	GetLog(ctx context.Context, id uuid.UUID) (*entity.MedicationLog, error)
	UpdateLog(ctx context.Context, actor entity.Actor, id uuid.UUID, input dto.UpdateLogInput) (*entity.MedicationLog, error)
	DeleteLog(ctx context.Context, actor entity.Actor, id uuid.UUID) error

	Schedule(ctx context.Context, childID uuid.UUID, date string) (*dto.MedicationSchedule, error)
}

type medicationService struct {
	repo      repository.MedicationRepository
	childRepo childRepo.ChildRepository
	loc       *time.Location
	now       func() time.Time
}

func NewMedicationService(repo repository.MedicationRepository, childRepo childRepo.ChildRepository, loc *time.Location) MedicationService {
	if loc == nil {
		loc = time.UTC
	}
	return &medicationService{
		repo:      repo,
		childRepo: childRepo,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *medicationService) today() datetime.Date {
	return datetime.DateOf(s.now().In(s.loc))
}

func (s *medicationService) CreateAuthorization(ctx context.Context, input dto.CreateAuthorizationInput) (*entity.MedicationAuthorization, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, input.ChildID); err != nil {
		return nil, err
	}

	signedAt := s.now()
	if input.ParentSignedAt != nil {
		signedAt = *input.ParentSignedAt
	}

	auth := &entity.MedicationAuthorization{
		ChildID:                    input.ChildID,
		MedicationName:             input.MedicationName,
		Dosage:                     input.Dosage,
		Frequency:                  input.Frequency,
		AdministrationInstructions: input.AdministrationInstructions,
		StartDate:                  *input.StartDate,
		EndDate:                    input.EndDate,
		PrescribingDoctor:          input.PrescribingDoctor,
		ParentSignatureURL:         input.ParentSignatureURL,
		ParentSignedAt:             signedAt,
		IsActive:                   true,
	}
	if err := s.repo.CreateAuthorization(ctx, auth); err != nil {
		return nil, err
	}
	return auth, nil
}

func (s *medicationService) ListAuthorizations(ctx context.Context, filter dto.AuthorizationFilter) ([]entity.MedicationAuthorization, error) {
	var childID *uuid.UUID
	if filter.ChildID != "" {
		id, err := uuid.Parse(filter.ChildID)
		if err != nil {
			return nil, apperror.InvalidInput("invalid child_id")
		}
		childID = &id
	}
	return s.repo.ListAuthorizations(ctx, childID, filter.IsActive)
}

func (s *medicationService) ListChildAuthorizations(ctx context.Context, childID uuid.UUID, isActive *bool) ([]entity.MedicationAuthorization, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}
	return s.repo.ListAuthorizations(ctx, &childID, isActive)
}

func (s *medicationService) ActiveToday(ctx context.Context) ([]entity.MedicationAuthorization, error) {
	return s.repo.ListValidOn(ctx, s.today(), nil)
}

func (s *medicationService) GetAuthorization(ctx context.Context, id uuid.UUID) (*entity.MedicationAuthorization, error) {
	auth, err := s.repo.FindAuthorization(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Medication authorization with ID %s not found", id))
		}
		return nil, err
	}
	return auth, nil
}

func (s *medicationService) UpdateAuthorization(ctx context.Context, id uuid.UUID, input dto.UpdateAuthorizationInput) (*entity.MedicationAuthorization, error) {
	auth, err := s.GetAuthorization(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.MedicationName != nil {
		auth.MedicationName = *input.MedicationName
	}
	if input.Dosage != nil {
		auth.Dosage = *input.Dosage
	}
	if input.Frequency != nil {
		auth.Frequency = *input.Frequency
	}
	if input.AdministrationInstructions != nil {
		auth.AdministrationInstructions = input.AdministrationInstructions
	}
	if input.StartDate != nil {
		auth.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		auth.EndDate = input.EndDate
	}
	if input.PrescribingDoctor != nil {
		auth.PrescribingDoctor = input.PrescribingDoctor
	}
	if input.IsActive != nil {
		auth.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateAuthorization(ctx, auth); err != nil {
		return nil, err
	}
	return auth, nil
}

func (s *medicationService) DeactivateAuthorization(ctx context.Context, id uuid.UUID) (*entity.MedicationAuthorization, error) {
	auth, err := s.GetAuthorization(ctx, id)
	if err != nil {
		return nil, err
	}
	auth.IsActive = false
	if err := s.repo.UpdateAuthorization(ctx, auth); err != nil {
		return nil, err
	}
	return auth, nil
}

func (s *medicationService) DeleteAuthorization(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if !actor.Can(entity.CapDeleteRecords) {
		return apperror.Forbidden("Only administrators can delete medication authorizations")
	}
	if _, err := s.GetAuthorization(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteAuthorization(ctx, id)
}

// checkAdministration applies the log admission rules in their reporting order.
func checkAdministration(auth *entity.MedicationAuthorization, childID uuid.UUID, day datetime.Date) error {
	if !auth.IsActive {
		return apperror.BadRequest("Cannot log medication: Authorization is inactive")
	}
	if auth.ChildID != childID {
		return apperror.BadRequest("Authorization does not match the specified child")
	}
	if day.Before(auth.StartDate) {
		return apperror.BadRequest(fmt.Sprintf("Administration date is before authorization start date (%s)", auth.StartDate))
	}
	if auth.EndDate != nil && day.After(*auth.EndDate) {
		return apperror.BadRequest(fmt.Sprintf("Administration date is after authorization end date (%s)", *auth.EndDate))
	}
	return nil
}

func (s *medicationService) CreateLog(ctx context.Context, actor entity.Actor, input dto.CreateLogInput) (*entity.MedicationLog, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, input.ChildID); err != nil {
		return nil, err
	}
	auth, err := s.GetAuthorization(ctx, input.AuthorizationID)
	if err != nil {
		return nil, err
	}
	if err := checkAdministration(auth, input.ChildID, *input.AdministrationDate); err != nil {
		return nil, err
	}

	entry := &entity.MedicationLog{
		ChildID:            input.ChildID,
		AuthorizationID:    auth.ID,
		AdministrationDate: *input.AdministrationDate,
		AdministrationTime: *input.AdministrationTime,
		DosageGiven:        input.DosageGiven,
		StaffSignatureURL:  input.StaffSignatureURL,
		AdministeredBy:     actor.ID,
		Notes:              input.Notes,
		ParentNotified:     input.ParentNotified,
	}
	if err := s.repo.CreateLog(ctx, entry); err != nil {
		return nil, err
	}

	log.Info().
		Str("log_id", entry.ID.String()).
		Str("authorization_id", auth.ID.String()).
		Str("child_id", entry.ChildID.String()).
		Msg("medication administered")
	return entry, nil
}

func (s *medicationService) ListLogs(ctx context.Context, filter dto.LogFilter) ([]entity.MedicationLog, error) {
	var c dto.LogCriteria
	for _, p := range []struct {
		raw  string
		dst  **uuid.UUID
		name string
	}{
		{filter.ChildID, &c.ChildID, "child_id"},
		{filter.AuthorizationID, &c.AuthorizationID, "authorization_id"},
	} {
		if p.raw == "" {
			continue
		}
		id, err := uuid.Parse(p.raw)
		if err != nil {
			return nil, apperror.InvalidInput("invalid " + p.name)
		}
		*p.dst = &id
	}

	var err error
	if c.AdministrationDate, err = datetime.ParseOptionalDate(filter.AdministrationDate); err != nil {
		return nil, apperror.InvalidInput(err.Error())
	}
	if c.StartDate, err = datetime.ParseOptionalDate(filter.StartDate); err != nil {
		return nil, apperror.InvalidInput(err.Error())
	}
	if c.EndDate, err = datetime.ParseOptionalDate(filter.EndDate); err != nil {
		return nil, apperror.InvalidInput(err.Error())
	}
	return s.repo.ListLogs(ctx, c)
}

func (s *medicationService) ListChildLogs(ctx context.Context, childID uuid.UUID, dates commonDto.DateRangeQuery) ([]entity.MedicationLog, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}
	return s.ListLogs(ctx, dto.LogFilter{
		ChildID:   childID.String(),
		StartDate: dates.StartDate,
		EndDate:   dates.EndDate,
	})
}

func (s *medicationService) TodayLogs(ctx context.Context) ([]entity.MedicationLog, error) {
	today := s.today()
	return s.repo.ListLogs(ctx, dto.LogCriteria{AdministrationDate: &today})
}

func (s *medicationService) ListAuthorizationLogs(ctx context.Context, authorizationID uuid.UUID) ([]entity.MedicationLog, error) {
	if _, err := s.GetAuthorization(ctx, authorizationID); err != nil {
		return nil, err
	}
	return s.repo.ListLogs(ctx, dto.LogCriteria{AuthorizationID: &authorizationID})
}

func (s *medicationService) GetLog(ctx context.Context, id uuid.UUID) (*entity.MedicationLog, error) {
	entry, err := s.repo.FindLog(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Medication log with ID %s not found", id))
		}
		return nil, err
	}
	return entry, nil
}

func (s *medicationService) UpdateLog(ctx context.Context, actor entity.Actor, id uuid.UUID, input dto.UpdateLogInput) (*entity.MedicationLog, error) {
	entry, err := s.GetLog(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(entry.AdministeredBy) {
		return nil, apperror.Forbidden("You can only update logs you created")
	}

	if input.AdministrationTime != nil {
		entry.AdministrationTime = *input.AdministrationTime
	}
	if input.DosageGiven != nil {
		entry.DosageGiven = *input.DosageGiven
	}
	if input.StaffSignatureURL != nil {
		entry.StaffSignatureURL = *input.StaffSignatureURL
	}
	if input.Notes != nil {
		entry.Notes = input.Notes
	}
	if input.ParentNotified != nil {
		entry.ParentNotified = *input.ParentNotified
	}

	if err := s.repo.UpdateLog(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *medicationService) DeleteLog(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	entry, err := s.GetLog(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(entry.AdministeredBy) {
		return apperror.Forbidden("You can only delete logs you created")
	}
	return s.repo.DeleteLog(ctx, id)
}

func (s *medicationService) Schedule(ctx context.Context, childID uuid.UUID, date string) (*dto.MedicationSchedule, error) {
	day, err := datetime.ParseDate(date)
	if err != nil {
		return nil, apperror.InvalidInput(err.Error())
	}
	child, err := childRepo.Require(ctx, s.childRepo, childID)
	if err != nil {
		return nil, err
	}

	auths, err := s.repo.ListValidOn(ctx, day, &childID)
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.ListLogs(ctx, dto.LogCriteria{ChildID: &childID, AdministrationDate: &day})
	if err != nil {
		return nil, err
	}

	given := make(map[uuid.UUID][]dto.AdministrationTime)
	// logs arrive newest first; the schedule reads in time order
	for i := len(logs) - 1; i >= 0; i-- {
		l := logs[i]
		given[l.AuthorizationID] = append(given[l.AuthorizationID], dto.AdministrationTime{
			Time:           l.AdministrationTime,
			DosageGiven:    l.DosageGiven,
			AdministeredBy: l.AdministeredBy,
		})
	}

	schedule := &dto.MedicationSchedule{
		ChildID:     child.ID,
		ChildName:   child.FullName(),
		Date:        day,
		Medications: make([]dto.ScheduledMedication, 0, len(auths)),
	}
	for _, a := range auths {
		times := given[a.ID]
		if times == nil {
			times = []dto.AdministrationTime{}
		}
		schedule.Medications = append(schedule.Medications, dto.ScheduledMedication{
			AuthorizationID:     a.ID,
			MedicationName:      a.MedicationName,
			Dosage:              a.Dosage,
			Frequency:           a.Frequency,
			Instructions:        a.AdministrationInstructions,
			Administered:        len(times) > 0,
			AdministrationTimes: times,
		})
	}
	return schedule, nil
}
