package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/user/dto"
	"bouncearound.com/daycare/internal/modules/user/repository"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/ratelimit"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, input dto.UpdateMeInput) (*entity.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input dto.ChangePasswordInput) error
}

// LoginPolicy bounds login attempts per email address.
type LoginPolicy struct {
	Attempts int
	Window   time.Duration
}

const loginScope = "login"

type authService struct {
	repo     repository.UserRepository
	limiter  *ratelimit.Limiter
	secret   string
	tokenTTL time.Duration
	policy   LoginPolicy
}

func NewAuthService(repo repository.UserRepository, limiter *ratelimit.Limiter, secret string, tokenTTL time.Duration, policy LoginPolicy) AuthService {
	return &authService{
		repo:     repo,
		limiter:  limiter,
		secret:   secret,
		tokenTTL: tokenTTL,
		policy:   policy,
	}
}

// HashPassword is shared with staff management so every stored hash uses the same cost.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*entity.User, error) {
	role := entity.RoleStaff
	if input.Role != "" {
		parsed, err := entity.ParseRole(input.Role)
		if err != nil {
			return nil, apperror.BadRequest(err.Error())
		}
		role = parsed
	}
	// admins are created through staff management only
	if role == entity.RoleAdmin {
		return nil, apperror.Forbidden("Administrator accounts can only be created by an administrator")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hashed,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Str("role", string(role)).Msg("user registered")
	return user, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	allowed, retryAfter, err := s.limiter.Allow(ctx, loginScope, email, s.policy.Attempts, s.policy.Window)
	if err != nil {
		// Fail open when redis is unreachable.
		log.Warn().Err(err).Msg("login rate limit check failed")
	} else if !allowed {
		return nil, apperror.RateLimited(fmt.Sprintf("Too many login attempts. Try again in %d seconds", int(retryAfter.Seconds())))
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("Incorrect email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.Unauthorized("Incorrect email or password")
	}

	if !user.IsActive {
		return nil, apperror.Forbidden("Inactive user account")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		User:        user,
	}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateMe(ctx context.Context, userID uuid.UUID, input dto.UpdateMeInput) (*entity.User, error) {
	user, err := s.Me(ctx, userID)
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

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, input dto.ChangePasswordInput) error {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return apperror.Unauthorized("Current password is incorrect")
	}

	hashed, err := HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	return s.repo.Update(ctx, user)
}

func (s *authService) generateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}
