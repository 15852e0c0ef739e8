package response

import (
	"net/http"

	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		if code == http.StatusInternalServerError {
			c.JSON(code, gin.H{"error": "internal server error"})
			return
		}
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// BindError reports a request that could not be decoded or failed binding tags.
func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validator.FormatValidationError(err)})
}

// ParseUUIDParam reads a path parameter as a UUID, writing a 422 when it is malformed.
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
