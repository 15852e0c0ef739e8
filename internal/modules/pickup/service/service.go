package service

import (
	"context"
	"errors"
	"fmt"

	"bouncearound.com/daycare/internal/entity"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/pickup/dto"
	"bouncearound.com/daycare/internal/modules/pickup/repository"
	search "bouncearound.com/daycare/internal/modules/search/service"
	"bouncearound.com/daycare/pkg/apperror"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	msgAuthorized    = "This person IS authorized to pick up this child"
	msgNotAuthorized = "This person is NOT authorized to pick up this child"
)

type PickupService interface {
	Create(ctx context.Context, input dto.CreatePickupInput) (*entity.AuthorizedPickup, error)
	ListByChild(ctx context.Context, childID uuid.UUID, query dto.ChildPickupQuery) ([]entity.AuthorizedPickup, error)
	ListActive(ctx context.Context, query dto.ActivePickupQuery) (*commonDto.Paginated[entity.AuthorizedPickup], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.AuthorizedPickup, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdatePickupInput) (*entity.AuthorizedPickup, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.AuthorizedPickup, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
	SearchByName(ctx context.Context, query dto.NameSearchQuery) ([]entity.AuthorizedPickup, error)
	Verify(ctx context.Context, childID uuid.UUID, name string) (*dto.VerifyResponse, error)
	PhotoVerificationRequired(ctx context.Context) ([]entity.AuthorizedPickup, error)
}

type pickupService struct {
	repo      repository.PickupRepository
	childRepo childRepo.ChildRepository
	indexer   search.Indexer
}

func NewPickupService(repo repository.PickupRepository, childRepo childRepo.ChildRepository, indexer search.Indexer) PickupService {
	return &pickupService{
		repo:      repo,
		childRepo: childRepo,
		indexer:   indexer,
	}
}

func (s *pickupService) Create(ctx context.Context, input dto.CreatePickupInput) (*entity.AuthorizedPickup, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, input.ChildID); err != nil {
		return nil, err
	}

	pickup := &entity.AuthorizedPickup{
		ChildID:             input.ChildID,
		Name:                input.Name,
		RelationshipType:    input.RelationshipType,
		Phone:               input.Phone,
		PhotoURL:            input.PhotoURL,
		IdentificationNotes: input.IdentificationNotes,
		RequiresPassword:    input.RequiresPassword,
		PasswordHint:        input.PasswordHint,
		IsActive:            true,
	}
	if input.IsActive != nil {
		pickup.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, pickup); err != nil {
		return nil, err
	}

	s.indexer.IndexPickup(pickup)
	log.Info().Str("pickup_id", pickup.ID.String()).Str("child_id", pickup.ChildID.String()).Msg("authorized pickup added")
	return pickup, nil
}

func (s *pickupService) ListByChild(ctx context.Context, childID uuid.UUID, query dto.ChildPickupQuery) ([]entity.AuthorizedPickup, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}
	return s.repo.FindByChild(ctx, childID, query.IsActive)
}

func (s *pickupService) ListActive(ctx context.Context, query dto.ActivePickupQuery) (*commonDto.Paginated[entity.AuthorizedPickup], error) {
	query.Normalize(50)
	pickups, total, err := s.repo.ListActive(ctx, query.PageQuery)
	if err != nil {
		return nil, err
	}
	return commonDto.NewPaginated(pickups, query.PageQuery, total), nil
}

func (s *pickupService) Get(ctx context.Context, id uuid.UUID) (*entity.AuthorizedPickup, error) {
	pickup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Authorized pickup with ID %s not found", id))
		}
		return nil, err
	}
	return pickup, nil
}

func (s *pickupService) Update(ctx context.Context, id uuid.UUID, input dto.UpdatePickupInput) (*entity.AuthorizedPickup, error) {
	pickup, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		pickup.Name = *input.Name
	}
	if input.RelationshipType != nil {
		pickup.RelationshipType = *input.RelationshipType
	}
	if input.Phone != nil {
		pickup.Phone = *input.Phone
	}
	if input.PhotoURL != nil {
		pickup.PhotoURL = input.PhotoURL
	}
	if input.IdentificationNotes != nil {
		pickup.IdentificationNotes = input.IdentificationNotes
	}
	if input.RequiresPassword != nil {
		pickup.RequiresPassword = *input.RequiresPassword
	}
	if input.PasswordHint != nil {
		pickup.PasswordHint = input.PasswordHint
	}
	if input.IsActive != nil {
		pickup.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, pickup); err != nil {
		return nil, err
	}
	s.indexer.IndexPickup(pickup)
	return pickup, nil
}

func (s *pickupService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.AuthorizedPickup, error) {
	return s.Update(ctx, id, dto.UpdatePickupInput{IsActive: &active})
}

func (s *pickupService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if !actor.Can(entity.CapDeleteRecords) {
		return apperror.Forbidden("Only administrators can permanently delete authorized pickup persons")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.indexer.Remove(search.IndexPickups, id)
	log.Info().Str("pickup_id", id.String()).Str("deleted_by", actor.ID.String()).Msg("authorized pickup deleted")
	return nil
}

func (s *pickupService) SearchByName(ctx context.Context, query dto.NameSearchQuery) ([]entity.AuthorizedPickup, error) {
	active := true
	if query.IsActive != nil {
		active = *query.IsActive
	}
	return s.repo.SearchByName(ctx, query.Name, &active)
}

func (s *pickupService) Verify(ctx context.Context, childID uuid.UUID, name string) (*dto.VerifyResponse, error) {
	child, err := childRepo.Require(ctx, s.childRepo, childID)
	if err != nil {
		return nil, err
	}

	res := &dto.VerifyResponse{
		ChildID:   child.ID,
		ChildName: child.FullName(),
	}

	pickup, err := s.repo.FindActiveMatch(ctx, childID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			res.PickupName = name
			res.Message = msgNotAuthorized
			log.Warn().Str("child_id", childID.String()).Str("pickup_name", name).Msg("pickup verification failed")
			return res, nil
		}
		return nil, err
	}

	person := &dto.PickupPerson{
		ID:                  pickup.ID,
		Name:                pickup.Name,
		RelationshipType:    pickup.RelationshipType,
		Phone:               pickup.Phone,
		PhotoURL:            pickup.PhotoURL,
		RequiresPassword:    pickup.RequiresPassword,
		IdentificationNotes: pickup.IdentificationNotes,
	}
	if pickup.RequiresPassword {
		person.PasswordHint = pickup.PasswordHint
	}

	res.Authorized = true
	res.PickupPerson = person
	res.Message = msgAuthorized
	return res, nil
}

func (s *pickupService) PhotoVerificationRequired(ctx context.Context) ([]entity.AuthorizedPickup, error) {
	return s.repo.ListWithoutPhoto(ctx)
}
