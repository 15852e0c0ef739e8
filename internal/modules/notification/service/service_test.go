package service_test

import (
	"context"
	"net/http"
	"testing"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/notification/repository"
	"bouncearound.com/daycare/internal/modules/notification/service"
	userRepo "bouncearound.com/daycare/internal/modules/user/repository"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewNotificationService(repository.NewNotificationRepository(db), userRepo.NewUserRepository(db), nil)
	ctx := context.Background()

	admin := testutil.CreateUser(t, db, entity.RoleAdmin)
	second := testutil.CreateUser(t, db, entity.RoleAdmin)
	retired := testutil.CreateUser(t, db, entity.RoleAdmin)
	require.NoError(t, db.Model(retired).Update("is_active", false).Error)
	staff := testutil.CreateUser(t, db, entity.RoleStaff)

	require.NoError(t, svc.NotifyAdmins(ctx, entity.Notification{
		Type:    service.TypeIncident,
		Title:   "New incident report",
		Message: "Injury reported for Emma Johnson",
	}))

	for _, u := range []*entity.User{admin, second} {
		count, err := svc.UnreadCount(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	}
	for _, u := range []*entity.User{retired, staff} {
		count, err := svc.UnreadCount(ctx, u.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	}

	page, err := svc.GetNotifications(ctx, admin.ID, commonDto.PageQuery{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 20, page.Meta.PageSize)
	note := page.Data[0]

	t.Run("cannot mark someone else's notification", func(t *testing.T) {
		err := svc.MarkAsRead(ctx, second.ID, note.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})

	t.Run("owner marks read", func(t *testing.T) {
		require.NoError(t, svc.MarkAsRead(ctx, admin.ID, note.ID))
		count, err := svc.UnreadCount(ctx, admin.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("mark all", func(t *testing.T) {
		updated, err := svc.MarkAllAsRead(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated)
	})
}
