package service_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"bouncearound.com/daycare/internal/entity"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/incident/dto"
	"bouncearound.com/daycare/internal/modules/incident/repository"
	"bouncearound.com/daycare/internal/modules/incident/service"
	notifRepo "bouncearound.com/daycare/internal/modules/notification/repository"
	notifService "bouncearound.com/daycare/internal/modules/notification/service"
	userRepo "bouncearound.com/daycare/internal/modules/user/repository"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newServices(db *gorm.DB) (service.IncidentService, notifService.NotificationService) {
	notifier := notifService.NewNotificationService(notifRepo.NewNotificationRepository(db), userRepo.NewUserRepository(db), nil)
	return service.NewIncidentService(repository.NewIncidentRepository(db), childRepo.NewChildRepository(db), notifier, nil), notifier
}

func TestIncidentWorkflow(t *testing.T) {
	db := testutil.NewDB(t)
	svc, notifier := newServices(db)
	ctx := context.Background()

	staff := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
	admin := testutil.CreateUser(t, db, entity.RoleAdmin)
	child := testutil.CreateChild(t, db, "Emma", "Johnson")

	day := datetime.NewDate(2024, 3, 4)
	clock := datetime.NewClock(10, 30, 0)
	base := dto.CreateIncidentInput{
		ChildID:      child.ID,
		IncidentDate: &day,
		IncidentTime: &clock,
		IncidentType: "injury",
		Description:  strings.Repeat("a", 120),
		ActionTaken:  "Ice pack applied",
	}

	t.Run("invalid type and method", func(t *testing.T) {
		bad := base
		bad.IncidentType = "fall"
		_, err := svc.Create(ctx, staff, bad)
		require.Error(t, err)
		assert.Equal(t, "Invalid incident type. Must be one of: injury, illness, behavioral, accident, other", err.Error())

		bad = base
		bad.ParentNotificationMethod = testutil.Ptr("fax")
		_, err = svc.Create(ctx, staff, bad)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
	})

	report, err := svc.Create(ctx, staff, base)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, report.ReportedBy)
	assert.Nil(t, report.ParentNotifiedAt)

	t.Run("admins are notified", func(t *testing.T) {
		count, err := notifier.UnreadCount(ctx, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("pending parent notification", func(t *testing.T) {
		pending, err := svc.PendingParentNotification(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "Emma Johnson", pending[0].ChildName)
		assert.Equal(t, strings.Repeat("a", 100)+"...", pending[0].Description)
		assert.Greater(t, pending[0].HoursSinceIncident, 0.0)
	})

	t.Run("notify parent", func(t *testing.T) {
		_, err := svc.MarkParentNotified(ctx, report.ID, "carrier pigeon")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

		updated, err := svc.MarkParentNotified(ctx, report.ID, "phone")
		require.NoError(t, err)
		assert.True(t, updated.ParentNotified)
		require.NotNil(t, updated.ParentNotifiedAt)
		require.NotNil(t, updated.ParentNotificationMethod)
		assert.Equal(t, entity.NotifyPhone, *updated.ParentNotificationMethod)

		pending, err := svc.PendingParentNotification(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("dcfs notification requires the flag", func(t *testing.T) {
		_, err := svc.MarkDCFSNotified(ctx, report.ID)
		require.Error(t, err)
		assert.Equal(t, "This incident does not require DCFS notification", err.Error())

		flagged := base
		flagged.IncidentType = "accident"
		flagged.DCFSNotificationRequired = true
		flagged.ParentNotified = true
		serious, err := svc.Create(ctx, staff, flagged)
		require.NoError(t, err)
		require.NotNil(t, serious.ParentNotifiedAt)

		open, err := svc.RequiringDCFS(ctx, testutil.Ptr(false))
		require.NoError(t, err)
		require.Len(t, open, 1)

		_, err = svc.MarkDCFSNotified(ctx, serious.ID)
		require.NoError(t, err)

		open, err = svc.RequiringDCFS(ctx, testutil.Ptr(false))
		require.NoError(t, err)
		assert.Empty(t, open)
	})

	t.Run("statistics", func(t *testing.T) {
		stats, err := svc.Statistics(ctx, commonDto.DateRangeQuery{})
		require.NoError(t, err)
		assert.Equal(t, 2, stats.TotalIncidents)
		assert.Equal(t, map[string]int{"injury": 1, "accident": 1}, stats.ByType)
		assert.Equal(t, 2, stats.ParentNotification.Notified)
		assert.Equal(t, 1, stats.DCFSNotification.Required)
		assert.Equal(t, 1, stats.DCFSNotification.Completed)
		assert.Equal(t, 1, stats.Injuries)
		assert.Nil(t, stats.DateRange.Start)
	})

	t.Run("filters and delete", func(t *testing.T) {
		page, err := svc.List(ctx, dto.IncidentFilter{IncidentType: "injury"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Meta.TotalItems)

		err = svc.Delete(ctx, staff, report.ID)
		assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))
		require.NoError(t, svc.Delete(ctx, testutil.Actor(admin), report.ID))
	})
}
