package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bouncearound.com/daycare/internal/entity"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/compliance/dto"
	"bouncearound.com/daycare/internal/modules/compliance/repository"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImmunizationService interface {
	Create(ctx context.Context, input dto.CreateImmunizationInput) (*entity.ImmunizationRecord, error)
	List(ctx context.Context, filter dto.ImmunizationFilter) ([]entity.ImmunizationRecord, error)
	ListByChild(ctx context.Context, childID uuid.UUID) ([]entity.ImmunizationRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.ImmunizationRecord, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateImmunizationInput) (*entity.ImmunizationRecord, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
	ExpiringSoon(ctx context.Context, days int) ([]dto.ExpiringImmunization, error)
}

type immunizationService struct {
	repo      repository.ImmunizationRepository
	childRepo childRepo.ChildRepository
	loc       *time.Location
	now       func() time.Time
}

func NewImmunizationService(repo repository.ImmunizationRepository, childRepo childRepo.ChildRepository, loc *time.Location) ImmunizationService {
	if loc == nil {
		loc = time.UTC
	}
	return &immunizationService{
		repo:      repo,
		childRepo: childRepo,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *immunizationService) today() datetime.Date {
	return datetime.DateOf(s.now().In(s.loc))
}

func (s *immunizationService) Create(ctx context.Context, input dto.CreateImmunizationInput) (*entity.ImmunizationRecord, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, input.ChildID); err != nil {
		return nil, err
	}

	record := &entity.ImmunizationRecord{
		ChildID:            input.ChildID,
		VaccineName:        input.VaccineName,
		AdministrationDate: *input.AdministrationDate,
		ExpirationDate:     input.ExpirationDate,
		DocumentURL:        input.DocumentURL,
		ProviderName:       input.ProviderName,
		Notes:              input.Notes,
		IsVerified:         input.IsVerified,
		IsExpired:          entity.ExpiredOn(input.ExpirationDate, s.today()),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *immunizationService) List(ctx context.Context, filter dto.ImmunizationFilter) ([]entity.ImmunizationRecord, error) {
	var childID *uuid.UUID
	if filter.ChildID != "" {
		id, err := uuid.Parse(filter.ChildID)
		if err != nil {
			return nil, apperror.InvalidInput("invalid child_id")
		}
		childID = &id
	}
	return s.repo.List(ctx, childID, filter.IsVerified)
}

func (s *immunizationService) ListByChild(ctx context.Context, childID uuid.UUID) ([]entity.ImmunizationRecord, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, &childID, nil)
}

func (s *immunizationService) Get(ctx context.Context, id uuid.UUID) (*entity.ImmunizationRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Immunization record with ID %s not found", id))
		}
		return nil, err
	}
	return record, nil
}

func (s *immunizationService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateImmunizationInput) (*entity.ImmunizationRecord, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.VaccineName != nil {
		record.VaccineName = *input.VaccineName
	}
	if input.AdministrationDate != nil {
		record.AdministrationDate = *input.AdministrationDate
	}
	if input.ExpirationDate != nil {
		record.ExpirationDate = input.ExpirationDate
		record.IsExpired = entity.ExpiredOn(input.ExpirationDate, s.today())
	}
	if input.DocumentURL != nil {
		record.DocumentURL = input.DocumentURL
	}
	if input.ProviderName != nil {
		record.ProviderName = input.ProviderName
	}
	if input.Notes != nil {
		record.Notes = input.Notes
	}
	if input.IsVerified != nil {
		record.IsVerified = *input.IsVerified
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *immunizationService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if !actor.Can(entity.CapDeleteRecords) {
		return apperror.Forbidden("Only administrators can delete immunization records")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *immunizationService) ExpiringSoon(ctx context.Context, days int) ([]dto.ExpiringImmunization, error) {
	today := s.today()
	records, err := s.repo.ListExpiringBetween(ctx, today, today.AddDays(days))
	if err != nil {
		return nil, err
	}

	out := make([]dto.ExpiringImmunization, 0, len(records))
	for _, r := range records {
		if r.Child == nil || r.ExpirationDate == nil {
			continue
		}
		out = append(out, dto.ExpiringImmunization{
			RecordID:            r.ID,
			ChildID:             r.ChildID,
			ChildName:           r.Child.FullName(),
			VaccineName:         r.VaccineName,
			ExpirationDate:      *r.ExpirationDate,
			DaysUntilExpiration: today.DaysUntil(*r.ExpirationDate),
			IsVerified:          r.IsVerified,
		})
	}
	return out, nil
}
