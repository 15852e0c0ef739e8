package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/admin/dto"
	"bouncearound.com/daycare/internal/modules/admin/service"
	userDto "bouncearound.com/daycare/internal/modules/user/dto"
	userRepo "bouncearound.com/daycare/internal/modules/user/repository"
	userService "bouncearound.com/daycare/internal/modules/user/service"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffManagement(t *testing.T) {
	db := testutil.NewDB(t)
	repo := userRepo.NewUserRepository(db)
	auth := userService.NewAuthService(repo, ratelimit.New(nil), "s", time.Minute, userService.LoginPolicy{})
	svc := service.NewAdminService(repo, auth)
	ctx := context.Background()

	admin := testutil.CreateUser(t, db, entity.RoleAdmin)
	actor := testutil.Actor(admin)

	staff, err := svc.CreateStaff(ctx, dto.CreateStaffInput{
		Email:     "teacher@example.com",
		Password:  "password123",
		FirstName: "Ana",
		LastName:  "Ruiz",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, staff.Role)

	t.Run("promote and deactivate", func(t *testing.T) {
		role := "admin"
		updated, err := svc.UpdateStaff(ctx, actor, staff.ID, dto.UpdateStaffInput{Role: &role})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, updated.Role)

		updated, err = svc.SetActive(ctx, actor, staff.ID, false)
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
	})

	t.Run("cannot deactivate or delete yourself", func(t *testing.T) {
		_, err := svc.SetActive(ctx, actor, admin.ID, false)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

		err = svc.DeleteStaff(ctx, actor, admin.ID)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
	})

	t.Run("list filters by active flag", func(t *testing.T) {
		active := true
		page, err := svc.ListStaff(ctx, userDto.UserFilter{IsActive: &active})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Meta.TotalItems)
		assert.Equal(t, admin.ID, page.Data[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteStaff(ctx, actor, staff.ID))
		err := svc.DeleteStaff(ctx, actor, staff.ID)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})
}
