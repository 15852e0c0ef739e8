package service

import (
	"context"
	"errors"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/admin/dto"
	userDto "bouncearound.com/daycare/internal/modules/user/dto"
	userRepo "bouncearound.com/daycare/internal/modules/user/repository"
	userService "bouncearound.com/daycare/internal/modules/user/service"
	"bouncearound.com/daycare/pkg/apperror"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminService interface {
	ListStaff(ctx context.Context, filter userDto.UserFilter) (*commonDto.Paginated[entity.User], error)
	CreateStaff(ctx context.Context, input dto.CreateStaffInput) (*entity.User, error)
	UpdateStaff(ctx context.Context, actor entity.Actor, id uuid.UUID, input dto.UpdateStaffInput) (*entity.User, error)
	SetActive(ctx context.Context, actor entity.Actor, id uuid.UUID, active bool) (*entity.User, error)
	DeleteStaff(ctx context.Context, actor entity.Actor, id uuid.UUID) error
}

type adminService struct {
	userRepo userRepo.UserRepository
	auth     userService.AuthService
}

func NewAdminService(userRepo userRepo.UserRepository, auth userService.AuthService) AdminService {
	return &adminService{
		userRepo: userRepo,
		auth:     auth,
	}
}

func (s *adminService) ListStaff(ctx context.Context, filter userDto.UserFilter) (*commonDto.Paginated[entity.User], error) {
	filter.Normalize(20)
	if filter.Role != "" {
		if _, err := entity.ParseRole(filter.Role); err != nil {
			return nil, apperror.BadRequest(err.Error())
		}
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return commonDto.NewPaginated(users, filter.PageQuery, total), nil
}

func (s *adminService) CreateStaff(ctx context.Context, input dto.CreateStaffInput) (*entity.User, error) {
	return s.auth.Register(ctx, userDto.RegisterInput{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Role:      input.Role,
	})
}

func (s *adminService) findUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *adminService) UpdateStaff(ctx context.Context, actor entity.Actor, id uuid.UUID, input dto.UpdateStaffInput) (*entity.User, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Role != nil {
		role, err := entity.ParseRole(*input.Role)
		if err != nil {
			return nil, apperror.BadRequest(err.Error())
		}
		if user.ID == actor.ID && role != user.Role {
			return nil, apperror.BadRequest("You cannot change your own role")
		}
		user.Role = role
	}
	if input.IsActive != nil {
		if user.ID == actor.ID && !*input.IsActive {
			return nil, apperror.BadRequest("You cannot deactivate your own account")
		}
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *adminService) SetActive(ctx context.Context, actor entity.Actor, id uuid.UUID, active bool) (*entity.User, error) {
	return s.UpdateStaff(ctx, actor, id, dto.UpdateStaffInput{IsActive: &active})
}

func (s *adminService) DeleteStaff(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if id == actor.ID {
		return apperror.BadRequest("You cannot delete your own account")
	}
	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("user_id", id.String()).Str("deleted_by", actor.ID.String()).Msg("staff account deleted")
	return nil
}
