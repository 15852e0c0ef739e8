package service_test

import (
	"context"
	"net/http"
	"testing"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/child/dto"
	"bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/child/service"
	search "bouncearound.com/daycare/internal/modules/search/service"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChildLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewChildService(repository.NewChildRepository(db), search.NewMeiliSearchService(nil))
	ctx := context.Background()

	staff := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
	admin := testutil.Actor(testutil.CreateUser(t, db, entity.RoleAdmin))

	dob := datetime.NewDate(2021, 3, 20)
	enrolled := datetime.NewDate(2024, 1, 15)
	child, err := svc.Create(ctx, staff, dto.CreateChildInput{
		FirstName:      "Emma",
		LastName:       "Johnson",
		DateOfBirth:    &dob,
		EnrollmentDate: &enrolled,
	})
	require.NoError(t, err)
	assert.True(t, child.IsActive)
	require.NotNil(t, child.CreatedBy)
	assert.Equal(t, staff.ID, *child.CreatedBy)

	t.Run("deactivate then activate", func(t *testing.T) {
		updated, err := svc.SetActive(ctx, child.ID, false)
		require.NoError(t, err)
		assert.False(t, updated.IsActive)

		updated, err = svc.SetActive(ctx, child.ID, true)
		require.NoError(t, err)
		assert.True(t, updated.IsActive)

		reloaded, err := svc.Get(ctx, child.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.IsActive)
		assert.Equal(t, "2021-03-20", reloaded.DateOfBirth.String())
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		allergies := "Peanuts"
		updated, err := svc.Update(ctx, child.ID, dto.UpdateChildInput{Allergies: &allergies})
		require.NoError(t, err)
		assert.Equal(t, "Emma", updated.FirstName)
		require.NotNil(t, updated.Allergies)
		assert.Equal(t, "Peanuts", *updated.Allergies)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		testutil.CreateChild(t, db, "Liam", "Anderson")

		page, err := svc.List(ctx, dto.ChildFilter{Search: "JOHN"})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, child.ID, page.Data[0].ID)

		page, err = svc.List(ctx, dto.ChildFilter{PageQuery: commonDto.PageQuery{PageSize: 1}})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Meta.TotalItems)
		assert.Equal(t, 2, page.Meta.TotalPages)
		assert.Equal(t, "Anderson", page.Data[0].LastName)
	})

	t.Run("only admins delete", func(t *testing.T) {
		err := svc.Delete(ctx, staff, child.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))
		assert.Equal(t, "Only administrators can delete child profiles", err.Error())

		require.NoError(t, svc.Delete(ctx, admin, child.ID))

		_, err = svc.Get(ctx, child.ID)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})
}

func TestDeleteCascadesToChildRecords(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewChildService(repository.NewChildRepository(db), search.NewMeiliSearchService(nil))
	ctx := context.Background()
	admin := testutil.Actor(testutil.CreateUser(t, db, entity.RoleAdmin))

	child := testutil.CreateChild(t, db, "Noah", "Smith")
	require.NoError(t, db.Create(&entity.EmergencyContact{
		ChildID:          child.ID,
		Name:             "Grandma",
		RelationshipType: "grandparent",
		PhonePrimary:     "555-0100",
		PriorityOrder:    1,
	}).Error)

	require.NoError(t, svc.Delete(ctx, admin, child.ID))

	var count int64
	require.NoError(t, db.Model(&entity.EmergencyContact{}).Where("child_id = ?", child.ID).Count(&count).Error)
	assert.Zero(t, count)
}
