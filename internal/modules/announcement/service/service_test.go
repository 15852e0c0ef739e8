package service_test

import (
	"context"
	"net/http"
	"testing"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/announcement/dto"
	"bouncearound.com/daycare/internal/modules/announcement/repository"
	"bouncearound.com/daycare/internal/modules/announcement/service"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncements(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewAnnouncementService(repository.NewAnnouncementRepository(db), nil)
	ctx := context.Background()

	author := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
	other := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
	admin := testutil.Actor(testutil.CreateUser(t, db, entity.RoleAdmin))
	today := datetime.Today(nil)

	t.Run("content is sanitised and priority defaults to normal", func(t *testing.T) {
		a, err := svc.Create(ctx, author, dto.CreateAnnouncementInput{
			Title:   "Picture day",
			Content: `<p>Bring a smile</p><script>alert(1)</script>`,
		})
		require.NoError(t, err)
		assert.Equal(t, "<p>Bring a smile</p>", a.Content)
		assert.Equal(t, entity.PriorityNormal, a.Priority)
		assert.True(t, a.IsActive)
		assert.Equal(t, author.ID, a.CreatedBy)
		assert.True(t, a.AnnouncementDate.Equal(today))
	})

	t.Run("invalid priority is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, author, dto.CreateAnnouncementInput{Title: "x", Content: "y", Priority: "asap"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
		assert.Equal(t, "Invalid priority. Must be one of: low, normal, high, urgent", err.Error())
	})

	t.Run("script-only content is empty", func(t *testing.T) {
		_, err := svc.Create(ctx, author, dto.CreateAnnouncementInput{Title: "x", Content: "<script>x</script>"})
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
	})

	t.Run("active lists urgent first and hides future or inactive", func(t *testing.T) {
		yesterday := today.AddDays(-1)
		tomorrow := today.AddDays(1)

		urgent, err := svc.Create(ctx, author, dto.CreateAnnouncementInput{Title: "Closure", Content: "Snow day", Priority: "urgent", AnnouncementDate: &yesterday})
		require.NoError(t, err)
		low, err := svc.Create(ctx, author, dto.CreateAnnouncementInput{Title: "Menu", Content: "New snacks", Priority: "low"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, author, dto.CreateAnnouncementInput{Title: "Later", Content: "Future", Priority: "urgent", AnnouncementDate: &tomorrow})
		require.NoError(t, err)
		_, err = svc.Create(ctx, author, dto.CreateAnnouncementInput{Title: "Old", Content: "Hidden", Priority: "high", IsActive: testutil.Ptr(false)})
		require.NoError(t, err)

		active, err := svc.Active(ctx)
		require.NoError(t, err)
		require.Len(t, active, 3)
		assert.Equal(t, urgent.ID, active[0].ID)
		assert.Equal(t, entity.PriorityNormal, active[1].Priority)
		assert.Equal(t, low.ID, active[2].ID)
	})

	t.Run("list filters", func(t *testing.T) {
		page, err := svc.List(ctx, dto.AnnouncementFilter{Priority: "urgent"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Meta.TotalItems)

		page, err = svc.List(ctx, dto.AnnouncementFilter{IsActive: testutil.Ptr(false)})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Meta.TotalItems)
	})

	t.Run("update and delete", func(t *testing.T) {
		a, err := svc.Create(ctx, author, dto.CreateAnnouncementInput{Title: "Field trip", Content: "Zoo"})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, a.ID, dto.UpdateAnnouncementInput{Priority: testutil.Ptr("high"), IsActive: testutil.Ptr(false)})
		require.NoError(t, err)
		assert.Equal(t, entity.PriorityHigh, updated.Priority)
		assert.False(t, updated.IsActive)

		err = svc.Delete(ctx, other, a.ID)
		assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))
		require.NoError(t, svc.Delete(ctx, author, a.ID))

		b, err := svc.Create(ctx, author, dto.CreateAnnouncementInput{Title: "Fire drill", Content: "Friday"})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, admin, b.ID))

		_, err = svc.Get(ctx, uuid.New())
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})
}
