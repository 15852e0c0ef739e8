package service

import (
	"context"
	"errors"
	"fmt"

	"bouncearound.com/daycare/internal/entity"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/emergencycontact/dto"
	"bouncearound.com/daycare/internal/modules/emergencycontact/repository"
	"bouncearound.com/daycare/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactService interface {
	Create(ctx context.Context, input dto.CreateContactInput) (*entity.EmergencyContact, error)
	ListByChild(ctx context.Context, childID uuid.UUID) ([]entity.EmergencyContact, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.EmergencyContact, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateContactInput) (*entity.EmergencyContact, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, id uuid.UUID, newPriority int) (*entity.EmergencyContact, error)
	MissingContacts(ctx context.Context) ([]dto.MissingContactsResponse, error)
}

type contactService struct {
	repo      repository.ContactRepository
	childRepo childRepo.ChildRepository
}

func NewContactService(repo repository.ContactRepository, childRepo childRepo.ChildRepository) ContactService {
	return &contactService{
		repo:      repo,
		childRepo: childRepo,
	}
}

func (s *contactService) Create(ctx context.Context, input dto.CreateContactInput) (*entity.EmergencyContact, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, input.ChildID); err != nil {
		return nil, err
	}

	taken, err := s.repo.PriorityTaken(ctx, input.ChildID, input.PriorityOrder, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.BadRequest(fmt.Sprintf("Priority order %d is already assigned to another contact for this child", input.PriorityOrder))
	}

	contact := &entity.EmergencyContact{
		ChildID:          input.ChildID,
		Name:             input.Name,
		RelationshipType: input.RelationshipType,
		PhonePrimary:     input.PhonePrimary,
		PhoneSecondary:   input.PhoneSecondary,
		PriorityOrder:    input.PriorityOrder,
		Notes:            input.Notes,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *contactService) ListByChild(ctx context.Context, childID uuid.UUID) ([]entity.EmergencyContact, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}
	return s.repo.FindByChild(ctx, childID)
}

func (s *contactService) Get(ctx context.Context, id uuid.UUID) (*entity.EmergencyContact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Emergency contact with ID %s not found", id))
		}
		return nil, err
	}
	return contact, nil
}

func (s *contactService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateContactInput) (*entity.EmergencyContact, error) {
	contact, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PriorityOrder != nil && *input.PriorityOrder != contact.PriorityOrder {
		taken, err := s.repo.PriorityTaken(ctx, contact.ChildID, *input.PriorityOrder, contact.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.BadRequest(fmt.Sprintf("Priority order %d is already assigned to another contact", *input.PriorityOrder))
		}
		contact.PriorityOrder = *input.PriorityOrder
	}

	if input.Name != nil {
		contact.Name = *input.Name
	}
	if input.RelationshipType != nil {
		contact.RelationshipType = *input.RelationshipType
	}
	if input.PhonePrimary != nil {
		contact.PhonePrimary = *input.PhonePrimary
	}
	if input.PhoneSecondary != nil {
		contact.PhoneSecondary = input.PhoneSecondary
	}
	if input.Notes != nil {
		contact.Notes = input.Notes
	}

	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, id uuid.UUID) error {
	contact, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.CountByChild(ctx, contact.ChildID)
	if err != nil {
		return err
	}
	if count <= entity.MinEmergencyContacts {
		return apperror.BadRequest(fmt.Sprintf("Cannot delete emergency contact. DCFS requires minimum %d emergency contacts per child.", entity.MinEmergencyContacts))
	}

	return s.repo.Delete(ctx, id)
}

func (s *contactService) Reorder(ctx context.Context, id uuid.UUID, newPriority int) (*entity.EmergencyContact, error) {
	if newPriority < 1 {
		return nil, apperror.InvalidInput("new_priority must be at least 1")
	}

	contact, err := s.repo.Reorder(ctx, id, newPriority)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Emergency contact with ID %s not found", id))
		}
		return nil, err
	}
	return contact, nil
}

func (s *contactService) MissingContacts(ctx context.Context) ([]dto.MissingContactsResponse, error) {
	children, err := s.childRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountsByChild(ctx)
	if err != nil {
		return nil, err
	}

	missing := []dto.MissingContactsResponse{}
	for _, child := range children {
		count := counts[child.ID]
		if count >= entity.MinEmergencyContacts {
			continue
		}
		missing = append(missing, dto.MissingContactsResponse{
			ChildID:             child.ID,
			ChildName:           child.FullName(),
			CurrentContactCount: count,
			RequiredCount:       entity.MinEmergencyContacts,
			MissingCount:        entity.MinEmergencyContacts - count,
		})
	}
	return missing, nil
}
