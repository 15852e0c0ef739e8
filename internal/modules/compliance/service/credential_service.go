package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/compliance/dto"
	"bouncearound.com/daycare/internal/modules/compliance/repository"
	userRepo "bouncearound.com/daycare/internal/modules/user/repository"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	"bouncearound.com/daycare/pkg/validator"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CredentialService interface {
	Create(ctx context.Context, input dto.CreateCredentialInput) (*entity.StaffCredential, error)
	List(ctx context.Context, filter dto.CredentialFilter) ([]entity.StaffCredential, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.StaffCredential, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.StaffCredential, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateCredentialInput) (*entity.StaffCredential, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
	ExpiringSoon(ctx context.Context, days int) ([]dto.ExpiringCredential, error)
	Expired(ctx context.Context) ([]dto.ExpiredCredential, error)
}

type credentialService struct {
	repo     repository.CredentialRepository
	userRepo userRepo.UserRepository
	loc      *time.Location
	now      func() time.Time
}

func NewCredentialService(repo repository.CredentialRepository, userRepo userRepo.UserRepository, loc *time.Location) CredentialService {
	if loc == nil {
		loc = time.UTC
	}
	return &credentialService{
		repo:     repo,
		userRepo: userRepo,
		loc:      loc,
		now:      time.Now,
	}
}

func (s *credentialService) today() datetime.Date {
	return datetime.DateOf(s.now().In(s.loc))
}

func (s *credentialService) requireUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("User with ID %s not found", id))
		}
		return nil, err
	}
	return user, nil
}

func validateCredentialType(v string) error {
	return validator.OneOf("credential type", v, entity.CredentialTypes)
}

func (s *credentialService) Create(ctx context.Context, input dto.CreateCredentialInput) (*entity.StaffCredential, error) {
	if _, err := s.requireUser(ctx, input.UserID); err != nil {
		return nil, err
	}
	if err := validateCredentialType(input.CredentialType); err != nil {
		return nil, err
	}

	credential := &entity.StaffCredential{
		UserID:           input.UserID,
		CredentialType:   entity.CredentialType(input.CredentialType),
		CredentialNumber: input.CredentialNumber,
		IssueDate:        *input.IssueDate,
		ExpirationDate:   input.ExpirationDate,
		DocumentURL:      input.DocumentURL,
		IsVerified:       input.IsVerified,
		IsExpired:        entity.ExpiredOn(input.ExpirationDate, s.today()),
	}
	if err := s.repo.Create(ctx, credential); err != nil {
		return nil, err
	}
	return credential, nil
}

func (s *credentialService) List(ctx context.Context, filter dto.CredentialFilter) ([]entity.StaffCredential, error) {
	c := dto.CredentialCriteria{
		CredentialType: filter.CredentialType,
		IsVerified:     filter.IsVerified,
		IsExpired:      filter.IsExpired,
	}
	if filter.UserID != "" {
		id, err := uuid.Parse(filter.UserID)
		if err != nil {
			return nil, apperror.InvalidInput("invalid user_id")
		}
		c.UserID = &id
	}
	return s.repo.List(ctx, c)
}

func (s *credentialService) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.StaffCredential, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *credentialService) Get(ctx context.Context, id uuid.UUID) (*entity.StaffCredential, error) {
	credential, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Staff credential with ID %s not found", id))
		}
		return nil, err
	}
	return credential, nil
}

func (s *credentialService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateCredentialInput) (*entity.StaffCredential, error) {
	credential, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CredentialType != nil {
		if err := validateCredentialType(*input.CredentialType); err != nil {
			return nil, err
		}
		credential.CredentialType = entity.CredentialType(*input.CredentialType)
	}
	if input.CredentialNumber != nil {
		credential.CredentialNumber = input.CredentialNumber
	}
	if input.IssueDate != nil {
		credential.IssueDate = *input.IssueDate
	}
	if input.ExpirationDate != nil {
		credential.ExpirationDate = input.ExpirationDate
		credential.IsExpired = entity.ExpiredOn(input.ExpirationDate, s.today())
	}
	if input.DocumentURL != nil {
		credential.DocumentURL = input.DocumentURL
	}
	if input.IsVerified != nil {
		credential.IsVerified = *input.IsVerified
	}

	if err := s.repo.Update(ctx, credential); err != nil {
		return nil, err
	}
	return credential, nil
}

func (s *credentialService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if !actor.Can(entity.CapDeleteRecords) {
		return apperror.Forbidden("Only administrators can delete staff credentials")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func staffName(c *entity.StaffCredential) string {
	if c.User == nil {
		return ""
	}
	return c.User.FullName()
}

func (s *credentialService) ExpiringSoon(ctx context.Context, days int) ([]dto.ExpiringCredential, error) {
	today := s.today()
	credentials, err := s.repo.ListExpiringBetween(ctx, today, today.AddDays(days))
	if err != nil {
		return nil, err
	}

	out := make([]dto.ExpiringCredential, 0, len(credentials))
	for i := range credentials {
		c := &credentials[i]
		out = append(out, dto.ExpiringCredential{
			CredentialID:        c.ID,
			UserID:              c.UserID,
			StaffName:           staffName(c),
			CredentialType:      string(c.CredentialType),
			ExpirationDate:      *c.ExpirationDate,
			DaysUntilExpiration: today.DaysUntil(*c.ExpirationDate),
			IsVerified:          c.IsVerified,
		})
	}
	return out, nil
}

func (s *credentialService) Expired(ctx context.Context) ([]dto.ExpiredCredential, error) {
	today := s.today()
	credentials, err := s.repo.ListExpiredBefore(ctx, today)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ExpiredCredential, 0, len(credentials))
	for i := range credentials {
		c := &credentials[i]
		out = append(out, dto.ExpiredCredential{
			CredentialID:   c.ID,
			UserID:         c.UserID,
			StaffName:      staffName(c),
			CredentialType: string(c.CredentialType),
			ExpirationDate: *c.ExpirationDate,
			DaysExpired:    c.ExpirationDate.DaysUntil(today),
			IsVerified:     c.IsVerified,
		})
	}
	return out, nil
}
