// Package testutil provides an in-memory database and fixtures for service and handler tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bouncearound.com/daycare/internal/bootstrap"
	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/pkg/database"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory SQLite database with foreign keys enabled
// and the full schema migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared&_foreign_keys=on", name, uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig(false))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, bootstrap.Migrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, role entity.Role) *entity.User {
	t.Helper()
	u := &entity.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     string(role),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(u).Error)
	return u
}

func Actor(u *entity.User) entity.Actor {
	return entity.Actor{ID: u.ID, Role: u.Role}
}

func CreateChild(t *testing.T, db *gorm.DB, first, last string) *entity.Child {
	t.Helper()
	c := &entity.Child{
		FirstName:      first,
		LastName:       last,
		DateOfBirth:    datetime.NewDate(2021, 3, 20),
		EnrollmentDate: datetime.NewDate(2024, 1, 15),
		IsActive:       true,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func Ptr[T any](v T) *T {
	return &v
}

func MustDate(t *testing.T, s string) datetime.Date {
	t.Helper()
	d, err := datetime.ParseDate(s)
	require.NoError(t, err)
	return d
}

// Token signs an access token for user the same way the auth service does.
func Token(t *testing.T, secret string, user *entity.User) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// JSONRequest builds a request with an optional JSON body and bearer token.
func JSONRequest(t *testing.T, method, target string, body any, token string) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
