package service_test

import (
	"context"
	"net/http"
	"testing"

	"bouncearound.com/daycare/internal/entity"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/compliance/dto"
	"bouncearound.com/daycare/internal/modules/compliance/repository"
	"bouncearound.com/daycare/internal/modules/compliance/service"
	userRepo "bouncearound.com/daycare/internal/modules/user/repository"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentForms(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewEnrollmentService(repository.NewEnrollmentFormRepository(db), childRepo.NewChildRepository(db))
	ctx := context.Background()

	staff := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
	child := testutil.CreateChild(t, db, "Emma", "Johnson")
	day := datetime.NewDate(2024, 1, 15)

	form, err := svc.Create(ctx, staff, dto.CreateEnrollmentFormInput{
		ChildID:        child.ID,
		EnrollmentDate: &day,
		FormData:       []byte(`{"allergies":"none"}`),
	})
	require.NoError(t, err)
	assert.Nil(t, form.CompletedBy)

	t.Run("second form for the same child conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, staff, dto.CreateEnrollmentFormInput{ChildID: child.ID, EnrollmentDate: &day})
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))
	})

	t.Run("missing child", func(t *testing.T) {
		_, err := svc.Create(ctx, staff, dto.CreateEnrollmentFormInput{ChildID: uuid.New(), EnrollmentDate: &day})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})

	incomplete, err := svc.Incomplete(ctx)
	require.NoError(t, err)
	require.Len(t, incomplete, 1)
	assert.Equal(t, "Emma Johnson", incomplete[0].ChildName)
	assert.False(t, incomplete[0].HasParentSignature)

	t.Run("completion stamps completed_by once", func(t *testing.T) {
		updated, err := svc.Update(ctx, staff, form.ID, dto.UpdateEnrollmentFormInput{IsComplete: testutil.Ptr(true)})
		require.NoError(t, err)
		require.NotNil(t, updated.CompletedBy)
		assert.Equal(t, staff.ID, *updated.CompletedBy)

		other := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
		again, err := svc.Update(ctx, other, form.ID, dto.UpdateEnrollmentFormInput{IsComplete: testutil.Ptr(true)})
		require.NoError(t, err)
		assert.Equal(t, staff.ID, *again.CompletedBy)

		remaining, err := svc.Incomplete(ctx)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("lookup by child", func(t *testing.T) {
		got, err := svc.GetByChild(ctx, child.ID)
		require.NoError(t, err)
		assert.Equal(t, form.ID, got.ID)

		lonely := testutil.CreateChild(t, db, "Liam", "Smith")
		_, err = svc.GetByChild(ctx, lonely.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})
}

func TestImmunizationsExpiringSoon(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewImmunizationService(repository.NewImmunizationRepository(db), childRepo.NewChildRepository(db), nil)
	ctx := context.Background()

	child := testutil.CreateChild(t, db, "Emma", "Johnson")
	today := datetime.Today(nil)

	create := func(name string, expires *datetime.Date) *entity.ImmunizationRecord {
		given := today.AddDays(-300)
		record, err := svc.Create(ctx, dto.CreateImmunizationInput{
			ChildID:            child.ID,
			VaccineName:        name,
			AdministrationDate: &given,
			ExpirationDate:     expires,
		})
		require.NoError(t, err)
		return record
	}

	soon := create("MMR", testutil.Ptr(today.AddDays(10)))
	create("DTaP", testutil.Ptr(today.AddDays(90)))
	lapsed := create("Flu", testutil.Ptr(today.AddDays(-1)))
	create("Polio", nil)

	assert.False(t, soon.IsExpired)
	assert.True(t, lapsed.IsExpired)

	records, err := svc.ExpiringSoon(ctx, 30)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "MMR", records[0].VaccineName)
	assert.Equal(t, 10, records[0].DaysUntilExpiration)

	records, err = svc.ExpiringSoon(ctx, 365)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	t.Run("delete requires admin", func(t *testing.T) {
		staff := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
		err := svc.Delete(ctx, staff, soon.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))
	})
}

func TestStaffCredentials(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewCredentialService(repository.NewCredentialRepository(db), userRepo.NewUserRepository(db), nil)
	ctx := context.Background()

	staff := testutil.CreateUser(t, db, entity.RoleStaff)
	today := datetime.Today(nil)
	issued := today.AddDays(-365)

	input := func(kind string, expires *datetime.Date) dto.CreateCredentialInput {
		return dto.CreateCredentialInput{
			UserID:         staff.ID,
			CredentialType: kind,
			IssueDate:      &issued,
			ExpirationDate: expires,
		}
	}

	t.Run("unknown type", func(t *testing.T) {
		_, err := svc.Create(ctx, input("Lifeguard", nil))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
		assert.Contains(t, err.Error(), "Invalid credential type. Must be one of: CPR, First Aid")
	})

	t.Run("unknown user", func(t *testing.T) {
		in := input("CPR", nil)
		in.UserID = uuid.New()
		_, err := svc.Create(ctx, in)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})

	cpr, err := svc.Create(ctx, input("CPR", testutil.Ptr(today.AddDays(20))))
	require.NoError(t, err)
	assert.False(t, cpr.IsExpired)

	tb, err := svc.Create(ctx, input("TB Test", testutil.Ptr(today.AddDays(-3))))
	require.NoError(t, err)
	assert.True(t, tb.IsExpired)

	_, err = svc.Create(ctx, input("Background Check", nil))
	require.NoError(t, err)

	expiring, err := svc.ExpiringSoon(ctx, 30)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "CPR", expiring[0].CredentialType)
	assert.Equal(t, "Test staff", expiring[0].StaffName)
	assert.Equal(t, 20, expiring[0].DaysUntilExpiration)

	expired, err := svc.Expired(ctx)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, 3, expired[0].DaysExpired)

	t.Run("open-ended credentials sort last", func(t *testing.T) {
		list, err := svc.ListByUser(ctx, staff.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, tb.ID, list[0].ID)
		assert.Nil(t, list[2].ExpirationDate)
	})

	t.Run("renewal recomputes is_expired", func(t *testing.T) {
		renewed, err := svc.Update(ctx, tb.ID, dto.UpdateCredentialInput{ExpirationDate: testutil.Ptr(today.AddDays(365))})
		require.NoError(t, err)
		assert.False(t, renewed.IsExpired)
	})
}
