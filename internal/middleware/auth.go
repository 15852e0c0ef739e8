package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bouncearound.com/daycare/internal/entity"
	userRepo "bouncearound.com/daycare/internal/modules/user/repository"
	"bouncearound.com/daycare/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ctxUserID   = "user_id"
	ctxUserRole = "user_role"
	ctxUser     = "user"
)

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	secret   string
}

func NewAuthMiddleware(userRepo userRepo.UserRepository, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		secret:   secret,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = parts[1]
			}
		}

		// Fallback to query parameter "token" (useful for WebSockets)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Inactive user account"})
			return
		}

		c.Set(ctxUserID, user.ID.String())
		c.Set(ctxUserRole, user.Role)
		c.Set(ctxUser, user)
		c.Next()
	}
}

// RequireCapability must run after RequireAuth.
func (m *AuthMiddleware) RequireCapability(capability entity.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := CurrentActor(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if !actor.Can(capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not enough permissions"})
			return
		}
		c.Next()
	}
}

// CurrentActor returns the caller stored by RequireAuth.
func CurrentActor(c *gin.Context) (entity.Actor, error) {
	rawID, ok := c.Get(ctxUserID)
	if !ok {
		return entity.Actor{}, apperror.ErrUnauthorized
	}
	id, err := uuid.Parse(rawID.(string))
	if err != nil {
		return entity.Actor{}, apperror.ErrUnauthorized
	}
	role, _ := c.Get(ctxUserRole)
	r, _ := role.(entity.Role)
	return entity.Actor{ID: id, Role: r}, nil
}

// CurrentUser returns the user record loaded by RequireAuth.
func CurrentUser(c *gin.Context) (*entity.User, error) {
	raw, ok := c.Get(ctxUser)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}
	user, ok := raw.(*entity.User)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}
	return user, nil
}
