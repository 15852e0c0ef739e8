package service_test

import (
	"context"
	"net/http"
	"testing"

	"bouncearound.com/daycare/internal/config"
	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/attendance/dto"
	"bouncearound.com/daycare/internal/modules/attendance/repository"
	"bouncearound.com/daycare/internal/modules/attendance/service"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, s string) *datetime.Clock {
	t.Helper()
	c, err := datetime.ParseClock(s)
	require.NoError(t, err)
	return &c
}

func TestLateness(t *testing.T) {
	policy := config.DefaultAttendancePolicy()

	tests := []struct {
		name     string
		checkout string
		late     bool
		minutes  int
		fee      float64
	}{
		{"before pickup", "17:45:00", false, 0, 0},
		{"inside grace", "18:10:00", false, 0, 0},
		{"exactly at grace", "18:15:00", false, 0, 0},
		{"partial minute after grace", "18:15:59", false, 0, 0},
		{"five minutes billable", "18:20:00", true, 5, 5},
		{"half hour late", "18:45:00", true, 30, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			late, minutes, fee := service.Lateness(policy, *clock(t, tt.checkout))
			assert.Equal(t, tt.late, late)
			assert.Equal(t, tt.minutes, minutes)
			assert.InDelta(t, tt.fee, fee, 0.001)
		})
	}

	t.Run("fee rate applies per billable minute", func(t *testing.T) {
		p := policy
		p.FeePerMinute = 1.5
		_, minutes, fee := service.Lateness(p, *clock(t, "18:25:00"))
		assert.Equal(t, 10, minutes)
		assert.InDelta(t, 15.0, fee, 0.001)
	})
}

func TestCheckInAndOut(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewAttendanceService(
		repository.NewAttendanceRepository(db),
		childRepo.NewChildRepository(db),
		config.DefaultAttendancePolicy(),
	)
	ctx := context.Background()
	staff := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
	child := testutil.CreateChild(t, db, "Emma", "Johnson")

	record, err := svc.CheckIn(ctx, staff, dto.CheckInInput{
		ChildID:       child.ID,
		CheckInTime:   clock(t, "08:00"),
		CheckInByName: "Sarah Johnson",
		Notes:         testutil.Ptr("Slight cough"),
	})
	require.NoError(t, err)
	assert.Equal(t, staff.ID, record.RecordedBy)
	assert.False(t, record.CheckedOut())

	t.Run("second check-in same day rejected", func(t *testing.T) {
		_, err := svc.CheckIn(ctx, staff, dto.CheckInInput{
			ChildID:       child.ID,
			CheckInTime:   clock(t, "09:00"),
			CheckInByName: "Sarah Johnson",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
		assert.Equal(t, "Child already checked in today at 08:00:00", err.Error())
	})

	t.Run("inactive child rejected", func(t *testing.T) {
		other := testutil.CreateChild(t, db, "Noah", "Smith")
		require.NoError(t, db.Model(other).Update("is_active", false).Error)

		_, err := svc.CheckIn(ctx, staff, dto.CheckInInput{
			ChildID:       other.ID,
			CheckInTime:   clock(t, "08:30"),
			CheckInByName: "Dad",
		})
		require.Error(t, err)
		assert.Equal(t, "Cannot check in inactive child", err.Error())
	})

	t.Run("checkout before check-in rejected", func(t *testing.T) {
		_, err := svc.CheckOut(ctx, record.ID, dto.CheckOutInput{
			CheckOutTime:   clock(t, "07:30"),
			CheckOutByName: "Sarah Johnson",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
	})

	t.Run("late checkout bills minutes past grace", func(t *testing.T) {
		out, err := svc.CheckOut(ctx, record.ID, dto.CheckOutInput{
			CheckOutTime:   clock(t, "18:20"),
			CheckOutByName: "Sarah Johnson",
			Notes:          testutil.Ptr("Picked up by mom"),
		})
		require.NoError(t, err)
		assert.True(t, out.IsLatePickup)
		assert.Equal(t, 5, out.LatePickupMinutes)
		require.NotNil(t, out.Notes)
		assert.Equal(t, "Slight cough\n[Checkout] Picked up by mom", *out.Notes)

		stored, err := svc.Get(ctx, record.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.CheckOutTime)
		assert.Equal(t, "18:20:00", stored.CheckOutTime.String())
		assert.True(t, stored.IsLatePickup)
	})

	t.Run("double checkout rejected", func(t *testing.T) {
		_, err := svc.CheckOut(ctx, record.ID, dto.CheckOutInput{
			CheckOutTime:   clock(t, "18:30"),
			CheckOutByName: "Sarah Johnson",
		})
		require.Error(t, err)
		assert.Equal(t, "Child already checked out at 18:20:00", err.Error())
	})

	t.Run("late pickup report totals", func(t *testing.T) {
		report, err := svc.LatePickups(ctx, commonDto.DateRangeQuery{})
		require.NoError(t, err)
		assert.Equal(t, 1, report.TotalRecords)
		assert.Equal(t, 5, report.TotalBillableMinutes)
		assert.InDelta(t, 5.0, report.TotalFees, 0.001)
	})

	t.Run("today lists the record", func(t *testing.T) {
		all, err := svc.Today(ctx, false)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		present, err := svc.Today(ctx, true)
		require.NoError(t, err)
		assert.Empty(t, present)
	})

	t.Run("checkout of unknown record", func(t *testing.T) {
		_, err := svc.CheckOut(ctx, uuid.New(), dto.CheckOutInput{
			CheckOutTime:   clock(t, "17:00"),
			CheckOutByName: "Someone",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})

	t.Run("only admins delete", func(t *testing.T) {
		err := svc.Delete(ctx, staff, record.ID)
		assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))

		admin := testutil.Actor(testutil.CreateUser(t, db, entity.RoleAdmin))
		require.NoError(t, svc.Delete(ctx, admin, record.ID))
	})
}
