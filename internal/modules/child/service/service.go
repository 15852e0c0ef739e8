package service

import (
	"context"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/child/dto"
	"bouncearound.com/daycare/internal/modules/child/repository"
	search "bouncearound.com/daycare/internal/modules/search/service"
	"bouncearound.com/daycare/pkg/apperror"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ChildService interface {
	Create(ctx context.Context, actor entity.Actor, input dto.CreateChildInput) (*entity.Child, error)
	List(ctx context.Context, filter dto.ChildFilter) (*commonDto.Paginated[entity.Child], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Child, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateChildInput) (*entity.Child, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Child, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
}

type childService struct {
	repo    repository.ChildRepository
	indexer search.Indexer
}

func NewChildService(repo repository.ChildRepository, indexer search.Indexer) ChildService {
	return &childService{
		repo:    repo,
		indexer: indexer,
	}
}

func (s *childService) Create(ctx context.Context, actor entity.Actor, input dto.CreateChildInput) (*entity.Child, error) {
	child := &entity.Child{
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		DateOfBirth:         *input.DateOfBirth,
		Gender:              input.Gender,
		Allergies:           input.Allergies,
		DietaryRestrictions: input.DietaryRestrictions,
		MedicalConditions:   input.MedicalConditions,
		SpecialNeeds:        input.SpecialNeeds,
		PhotoURL:            input.PhotoURL,
		EnrollmentDate:      *input.EnrollmentDate,
		WithdrawalDate:      input.WithdrawalDate,
		IsActive:            true,
		CreatedBy:           &actor.ID,
	}
	if input.IsActive != nil {
		child.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, child); err != nil {
		return nil, err
	}

	s.indexer.IndexChild(child)
	log.Info().Str("child_id", child.ID.String()).Str("created_by", actor.ID.String()).Msg("child profile created")
	return child, nil
}

func (s *childService) List(ctx context.Context, filter dto.ChildFilter) (*commonDto.Paginated[entity.Child], error) {
	filter.Normalize(20)
	children, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return commonDto.NewPaginated(children, filter.PageQuery, total), nil
}

func (s *childService) Get(ctx context.Context, id uuid.UUID) (*entity.Child, error) {
	return repository.Require(ctx, s.repo, id)
}

func (s *childService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateChildInput) (*entity.Child, error) {
	child, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		child.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		child.LastName = *input.LastName
	}
	if input.DateOfBirth != nil {
		child.DateOfBirth = *input.DateOfBirth
	}
	if input.Gender != nil {
		child.Gender = input.Gender
	}
	if input.Allergies != nil {
		child.Allergies = input.Allergies
	}
	if input.DietaryRestrictions != nil {
		child.DietaryRestrictions = input.DietaryRestrictions
	}
	if input.MedicalConditions != nil {
		child.MedicalConditions = input.MedicalConditions
	}
	if input.SpecialNeeds != nil {
		child.SpecialNeeds = input.SpecialNeeds
	}
	if input.PhotoURL != nil {
		child.PhotoURL = input.PhotoURL
	}
	if input.EnrollmentDate != nil {
		child.EnrollmentDate = *input.EnrollmentDate
	}
	if input.WithdrawalDate != nil {
		child.WithdrawalDate = input.WithdrawalDate
	}
	if input.IsActive != nil {
		child.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, child); err != nil {
		return nil, err
	}

	s.indexer.IndexChild(child)
	return child, nil
}

func (s *childService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Child, error) {
	return s.Update(ctx, id, dto.UpdateChildInput{IsActive: &active})
}

func (s *childService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if !actor.Can(entity.CapDeleteRecords) {
		return apperror.Forbidden("Only administrators can delete child profiles")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.indexer.Remove(search.IndexChildren, id)
	log.Info().Str("child_id", id.String()).Str("deleted_by", actor.ID.String()).Msg("child profile deleted")
	return nil
}
