package service

import (
	"context"
	"errors"
	"fmt"

	"bouncearound.com/daycare/internal/entity"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/compliance/dto"
	"bouncearound.com/daycare/internal/modules/compliance/repository"
	"bouncearound.com/daycare/pkg/apperror"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const duplicateFormMessage = "Enrollment form already exists for this child"

type EnrollmentService interface {
	Create(ctx context.Context, actor entity.Actor, input dto.CreateEnrollmentFormInput) (*entity.EnrollmentForm, error)
	List(ctx context.Context, filter dto.EnrollmentFormFilter) (*commonDto.Paginated[entity.EnrollmentForm], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.EnrollmentForm, error)
	GetByChild(ctx context.Context, childID uuid.UUID) (*entity.EnrollmentForm, error)
	Update(ctx context.Context, actor entity.Actor, id uuid.UUID, input dto.UpdateEnrollmentFormInput) (*entity.EnrollmentForm, error)
	Incomplete(ctx context.Context) ([]dto.IncompleteForm, error)
}

type enrollmentService struct {
	repo      repository.EnrollmentFormRepository
	childRepo childRepo.ChildRepository
}

func NewEnrollmentService(repo repository.EnrollmentFormRepository, childRepo childRepo.ChildRepository) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		childRepo: childRepo,
	}
}

func (s *enrollmentService) Create(ctx context.Context, actor entity.Actor, input dto.CreateEnrollmentFormInput) (*entity.EnrollmentForm, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, input.ChildID); err != nil {
		return nil, err
	}

	_, err := s.repo.FindByChild(ctx, input.ChildID)
	if err == nil {
		return nil, apperror.Conflict(duplicateFormMessage)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	form := &entity.EnrollmentForm{
		ChildID:            input.ChildID,
		EnrollmentDate:     *input.EnrollmentDate,
		ParentSignatureURL: input.ParentSignatureURL,
		ParentSignedAt:     input.ParentSignedAt,
		StaffSignatureURL:  input.StaffSignatureURL,
		StaffSignedAt:      input.StaffSignedAt,
		FormData:           input.FormData,
		IsComplete:         input.IsComplete,
	}
	if form.IsComplete {
		id := actor.ID
		form.CompletedBy = &id
	}

	if err := s.repo.Create(ctx, form); err != nil {
		// two creates can race past the lookup; the unique index decides
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict(duplicateFormMessage)
		}
		return nil, err
	}
	return form, nil
}

func (s *enrollmentService) List(ctx context.Context, filter dto.EnrollmentFormFilter) (*commonDto.Paginated[entity.EnrollmentForm], error) {
	filter.Normalize(20)
	forms, total, err := s.repo.List(ctx, filter.IsComplete, filter.PageQuery)
	if err != nil {
		return nil, err
	}
	return commonDto.NewPaginated(forms, filter.PageQuery, total), nil
}

func (s *enrollmentService) Get(ctx context.Context, id uuid.UUID) (*entity.EnrollmentForm, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Enrollment form with ID %s not found", id))
		}
		return nil, err
	}
	return form, nil
}

func (s *enrollmentService) GetByChild(ctx context.Context, childID uuid.UUID) (*entity.EnrollmentForm, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}
	form, err := s.repo.FindByChild(ctx, childID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("No enrollment form found for child with ID %s", childID))
		}
		return nil, err
	}
	return form, nil
}

func (s *enrollmentService) Update(ctx context.Context, actor entity.Actor, id uuid.UUID, input dto.UpdateEnrollmentFormInput) (*entity.EnrollmentForm, error) {
	form, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.IsComplete != nil {
		if *input.IsComplete && !form.IsComplete {
			completedBy := actor.ID
			form.CompletedBy = &completedBy
		}
		form.IsComplete = *input.IsComplete
	}
	if input.EnrollmentDate != nil {
		form.EnrollmentDate = *input.EnrollmentDate
	}
	if input.ParentSignatureURL != nil {
		form.ParentSignatureURL = input.ParentSignatureURL
	}
	if input.ParentSignedAt != nil {
		form.ParentSignedAt = input.ParentSignedAt
	}
	if input.StaffSignatureURL != nil {
		form.StaffSignatureURL = input.StaffSignatureURL
	}
	if input.StaffSignedAt != nil {
		form.StaffSignedAt = input.StaffSignedAt
	}
	if input.FormData != nil {
		form.FormData = input.FormData
	}

	if err := s.repo.Update(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *enrollmentService) Incomplete(ctx context.Context) ([]dto.IncompleteForm, error) {
	forms, err := s.repo.ListIncomplete(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.IncompleteForm, 0, len(forms))
	for _, f := range forms {
		if f.Child == nil {
			continue
		}
		out = append(out, dto.IncompleteForm{
			FormID:             f.ID,
			ChildID:            f.ChildID,
			ChildName:          f.Child.FullName(),
			EnrollmentDate:     f.EnrollmentDate,
			HasParentSignature: f.ParentSignatureURL != nil,
			HasStaffSignature:  f.StaffSignatureURL != nil,
		})
	}
	return out, nil
}
