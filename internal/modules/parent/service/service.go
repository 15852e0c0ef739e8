package service

import (
	"context"
	"errors"
	"fmt"

	"bouncearound.com/daycare/internal/entity"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/parent/dto"
	"bouncearound.com/daycare/internal/modules/parent/repository"
	search "bouncearound.com/daycare/internal/modules/search/service"
	"bouncearound.com/daycare/pkg/apperror"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParentService interface {
	Create(ctx context.Context, input dto.CreateParentInput) (*entity.Parent, error)
	List(ctx context.Context, filter dto.ParentFilter) (*commonDto.Paginated[entity.Parent], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Parent, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateParentInput) (*entity.Parent, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error

	Link(ctx context.Context, input dto.CreateRelationshipInput) (*entity.ChildParent, error)
	LinksForChild(ctx context.Context, childID uuid.UUID) ([]entity.ChildParent, error)
	LinksForParent(ctx context.Context, parentID uuid.UUID) ([]entity.ChildParent, error)
	UpdateLink(ctx context.Context, id uuid.UUID, input dto.UpdateRelationshipInput) (*entity.ChildParent, error)
	Unlink(ctx context.Context, id uuid.UUID) error
}

type parentService struct {
	repo      repository.ParentRepository
	childRepo childRepo.ChildRepository
	indexer   search.Indexer
}

func NewParentService(repo repository.ParentRepository, childRepo childRepo.ChildRepository, indexer search.Indexer) ParentService {
	return &parentService{
		repo:      repo,
		childRepo: childRepo,
		indexer:   indexer,
	}
}

func (s *parentService) Create(ctx context.Context, input dto.CreateParentInput) (*entity.Parent, error) {
	parent := &entity.Parent{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		PhonePrimary:     input.PhonePrimary,
		PhoneSecondary:   input.PhoneSecondary,
		AddressStreet:    input.AddressStreet,
		AddressCity:      input.AddressCity,
		AddressState:     input.AddressState,
		AddressZip:       input.AddressZip,
		Employer:         input.Employer,
		WorkPhone:        input.WorkPhone,
		IsPrimaryContact: input.IsPrimaryContact,
	}
	if err := s.repo.Create(ctx, parent); err != nil {
		return nil, err
	}

	s.indexer.IndexParent(parent)
	return parent, nil
}

func (s *parentService) List(ctx context.Context, filter dto.ParentFilter) (*commonDto.Paginated[entity.Parent], error) {
	filter.Normalize(20)
	parents, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return commonDto.NewPaginated(parents, filter.PageQuery, total), nil
}

func (s *parentService) Get(ctx context.Context, id uuid.UUID) (*entity.Parent, error) {
	parent, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Parent with ID %s not found", id))
		}
		return nil, err
	}
	return parent, nil
}

func (s *parentService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateParentInput) (*entity.Parent, error) {
	parent, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		parent.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		parent.LastName = *input.LastName
	}
	if input.Email != nil {
		parent.Email = input.Email
	}
	if input.PhonePrimary != nil {
		parent.PhonePrimary = *input.PhonePrimary
	}
	if input.PhoneSecondary != nil {
		parent.PhoneSecondary = input.PhoneSecondary
	}
	if input.AddressStreet != nil {
		parent.AddressStreet = input.AddressStreet
	}
	if input.AddressCity != nil {
		parent.AddressCity = input.AddressCity
	}
	if input.AddressState != nil {
		parent.AddressState = input.AddressState
	}
	if input.AddressZip != nil {
		parent.AddressZip = input.AddressZip
	}
	if input.Employer != nil {
		parent.Employer = input.Employer
	}
	if input.WorkPhone != nil {
		parent.WorkPhone = input.WorkPhone
	}
	if input.IsPrimaryContact != nil {
		parent.IsPrimaryContact = *input.IsPrimaryContact
	}

	if err := s.repo.Update(ctx, parent); err != nil {
		return nil, err
	}

	s.indexer.IndexParent(parent)
	return parent, nil
}

func (s *parentService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if !actor.Can(entity.CapDeleteRecords) {
		return apperror.Forbidden("Only administrators can delete parent profiles")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.indexer.Remove(search.IndexParents, id)
	return nil
}

func (s *parentService) Link(ctx context.Context, input dto.CreateRelationshipInput) (*entity.ChildParent, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, input.ChildID); err != nil {
		return nil, err
	}
	parent, err := s.Get(ctx, input.ParentID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.LinkExists(ctx, input.ChildID, input.ParentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("Relationship between this child and parent already exists")
	}

	link := &entity.ChildParent{
		ChildID:          input.ChildID,
		ParentID:         input.ParentID,
		RelationshipType: input.RelationshipType,
		IsPrimary:        input.IsPrimary,
		HasCustody:       true,
		CanPickup:        true,
	}
	if input.HasCustody != nil {
		link.HasCustody = *input.HasCustody
	}
	if input.CanPickup != nil {
		link.CanPickup = *input.CanPickup
	}

	if err := s.repo.CreateLink(ctx, link); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Relationship between this child and parent already exists")
		}
		return nil, err
	}
	link.Parent = parent
	return link, nil
}

func (s *parentService) LinksForChild(ctx context.Context, childID uuid.UUID) ([]entity.ChildParent, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}
	return s.repo.FindLinksByChild(ctx, childID)
}

func (s *parentService) LinksForParent(ctx context.Context, parentID uuid.UUID) ([]entity.ChildParent, error) {
	if _, err := s.Get(ctx, parentID); err != nil {
		return nil, err
	}
	return s.repo.FindLinksByParent(ctx, parentID)
}

func (s *parentService) getLink(ctx context.Context, id uuid.UUID) (*entity.ChildParent, error) {
	link, err := s.repo.FindLinkByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Relationship with ID %s not found", id))
		}
		return nil, err
	}
	return link, nil
}

func (s *parentService) UpdateLink(ctx context.Context, id uuid.UUID, input dto.UpdateRelationshipInput) (*entity.ChildParent, error) {
	link, err := s.getLink(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.RelationshipType != nil {
		link.RelationshipType = *input.RelationshipType
	}
	if input.IsPrimary != nil {
		link.IsPrimary = *input.IsPrimary
	}
	if input.HasCustody != nil {
		link.HasCustody = *input.HasCustody
	}
	if input.CanPickup != nil {
		link.CanPickup = *input.CanPickup
	}

	if err := s.repo.UpdateLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *parentService) Unlink(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getLink(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteLink(ctx, id)
}
