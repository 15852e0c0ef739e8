package service_test

import (
	"context"
	"net/http"
	"testing"

	"bouncearound.com/daycare/internal/entity"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/medication/dto"
	"bouncearound.com/daycare/internal/modules/medication/repository"
	"bouncearound.com/daycare/internal/modules/medication/service"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicationLogging(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewMedicationService(repository.NewMedicationRepository(db), childRepo.NewChildRepository(db), nil)
	ctx := context.Background()

	staff := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
	other := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
	admin := testutil.Actor(testutil.CreateUser(t, db, entity.RoleAdmin))
	child := testutil.CreateChild(t, db, "Emma", "Johnson")
	sibling := testutil.CreateChild(t, db, "Liam", "Johnson")

	start := datetime.NewDate(2024, 1, 1)
	end := datetime.NewDate(2024, 1, 10)
	auth, err := svc.CreateAuthorization(ctx, dto.CreateAuthorizationInput{
		ChildID:            child.ID,
		MedicationName:     "Amoxicillin",
		Dosage:             "5ml",
		Frequency:          "twice daily",
		StartDate:          &start,
		EndDate:            &end,
		ParentSignatureURL: "https://example.com/sig.png",
	})
	require.NoError(t, err)
	assert.True(t, auth.IsActive)
	assert.False(t, auth.ParentSignedAt.IsZero())

	logInput := func(childID uuid.UUID, day datetime.Date, clock datetime.Clock) dto.CreateLogInput {
		return dto.CreateLogInput{
			ChildID:            childID,
			AuthorizationID:    auth.ID,
			AdministrationDate: &day,
			AdministrationTime: &clock,
			DosageGiven:        "5ml",
			StaffSignatureURL:  "https://example.com/staff.png",
		}
	}

	t.Run("outside the authorization window", func(t *testing.T) {
		_, err := svc.CreateLog(ctx, staff, logInput(child.ID, datetime.NewDate(2024, 1, 15), datetime.NewClock(9, 0, 0)))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
		assert.Equal(t, "Administration date is after authorization end date (2024-01-10)", err.Error())

		_, err = svc.CreateLog(ctx, staff, logInput(child.ID, datetime.NewDate(2023, 12, 31), datetime.NewClock(9, 0, 0)))
		require.Error(t, err)
		assert.Equal(t, "Administration date is before authorization start date (2024-01-01)", err.Error())
	})

	t.Run("child mismatch", func(t *testing.T) {
		_, err := svc.CreateLog(ctx, staff, logInput(sibling.ID, datetime.NewDate(2024, 1, 5), datetime.NewClock(9, 0, 0)))
		require.Error(t, err)
		assert.Equal(t, "Authorization does not match the specified child", err.Error())
	})

	t.Run("unknown authorization", func(t *testing.T) {
		in := logInput(child.ID, datetime.NewDate(2024, 1, 5), datetime.NewClock(9, 0, 0))
		in.AuthorizationID = uuid.New()
		_, err := svc.CreateLog(ctx, staff, in)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})

	morning, err := svc.CreateLog(ctx, staff, logInput(child.ID, datetime.NewDate(2024, 1, 5), datetime.NewClock(9, 0, 0)))
	require.NoError(t, err)
	assert.Equal(t, staff.ID, morning.AdministeredBy)
	_, err = svc.CreateLog(ctx, staff, logInput(child.ID, datetime.NewDate(2024, 1, 5), datetime.NewClock(15, 30, 0)))
	require.NoError(t, err)

	t.Run("schedule lists doses in time order", func(t *testing.T) {
		schedule, err := svc.Schedule(ctx, child.ID, "2024-01-05")
		require.NoError(t, err)
		assert.Equal(t, "Emma Johnson", schedule.ChildName)
		require.Len(t, schedule.Medications, 1)
		med := schedule.Medications[0]
		assert.True(t, med.Administered)
		require.Len(t, med.AdministrationTimes, 2)
		assert.Equal(t, "09:00:00", med.AdministrationTimes[0].Time.String())
		assert.Equal(t, "15:30:00", med.AdministrationTimes[1].Time.String())

		later, err := svc.Schedule(ctx, child.ID, "2024-01-06")
		require.NoError(t, err)
		require.Len(t, later.Medications, 1)
		assert.False(t, later.Medications[0].Administered)
		assert.Empty(t, later.Medications[0].AdministrationTimes)

		outside, err := svc.Schedule(ctx, child.ID, "2024-02-01")
		require.NoError(t, err)
		assert.Empty(t, outside.Medications)
	})

	t.Run("only the administering staffer or an admin edits a log", func(t *testing.T) {
		_, err := svc.UpdateLog(ctx, other, morning.ID, dto.UpdateLogInput{Notes: testutil.Ptr("late")})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))

		updated, err := svc.UpdateLog(ctx, admin, morning.ID, dto.UpdateLogInput{Notes: testutil.Ptr("with food")})
		require.NoError(t, err)
		assert.Equal(t, "with food", *updated.Notes)

		err = svc.DeleteLog(ctx, other, morning.ID)
		require.Error(t, err)
		require.NoError(t, svc.DeleteLog(ctx, staff, morning.ID))
	})

	t.Run("inactive authorization rejects logs", func(t *testing.T) {
		_, err := svc.DeactivateAuthorization(ctx, auth.ID)
		require.NoError(t, err)

		_, err = svc.CreateLog(ctx, staff, logInput(child.ID, datetime.NewDate(2024, 1, 5), datetime.NewClock(10, 0, 0)))
		require.Error(t, err)
		assert.Equal(t, "Cannot log medication: Authorization is inactive", err.Error())
	})

	t.Run("delete authorization requires admin", func(t *testing.T) {
		err := svc.DeleteAuthorization(ctx, staff, auth.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))
		require.NoError(t, svc.DeleteAuthorization(ctx, admin, auth.ID))

		_, err = svc.GetAuthorization(ctx, auth.ID)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})
}

func TestAuthorizationValidOn(t *testing.T) {
	end := datetime.NewDate(2024, 1, 10)
	auth := entity.MedicationAuthorization{StartDate: datetime.NewDate(2024, 1, 1), EndDate: &end}

	assert.True(t, auth.ValidOn(datetime.NewDate(2024, 1, 1)))
	assert.True(t, auth.ValidOn(datetime.NewDate(2024, 1, 10)))
	assert.False(t, auth.ValidOn(datetime.NewDate(2024, 1, 11)))
	assert.False(t, auth.ValidOn(datetime.NewDate(2023, 12, 31)))

	auth.EndDate = nil
	assert.True(t, auth.ValidOn(datetime.NewDate(2030, 6, 1)))
}
