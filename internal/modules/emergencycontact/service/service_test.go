package service_test

import (
	"context"
	"net/http"
	"testing"

	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/emergencycontact/dto"
	"bouncearound.com/daycare/internal/modules/emergencycontact/repository"
	"bouncearound.com/daycare/internal/modules/emergencycontact/service"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContact(childID uuid.UUID, name string, priority int) dto.CreateContactInput {
	return dto.CreateContactInput{
		ChildID:          childID,
		Name:             name,
		RelationshipType: "Grandparent",
		PhonePrimary:     "555-0100",
		PriorityOrder:    priority,
	}
}

func TestContactPriorities(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewContactService(repository.NewContactRepository(db), childRepo.NewChildRepository(db))
	ctx := context.Background()

	child := testutil.CreateChild(t, db, "Emma", "Johnson")

	a, err := svc.Create(ctx, newContact(child.ID, "Alice", 1))
	require.NoError(t, err)
	b, err := svc.Create(ctx, newContact(child.ID, "Bob", 2))
	require.NoError(t, err)
	c, err := svc.Create(ctx, newContact(child.ID, "Carol", 3))
	require.NoError(t, err)

	t.Run("duplicate priority rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, newContact(child.ID, "Dan", 2))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
		assert.Contains(t, err.Error(), "Priority order 2 is already assigned")
	})

	t.Run("unknown child", func(t *testing.T) {
		_, err := svc.Create(ctx, newContact(uuid.New(), "Eve", 1))
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})

	t.Run("update to taken priority rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, a.ID, dto.UpdateContactInput{PriorityOrder: testutil.Ptr(3)})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

		// same value is not a collision with itself
		updated, err := svc.Update(ctx, a.ID, dto.UpdateContactInput{PriorityOrder: testutil.Ptr(1), Name: testutil.Ptr("Alicia")})
		require.NoError(t, err)
		assert.Equal(t, "Alicia", updated.Name)
	})

	t.Run("reorder moves earlier and shifts siblings down", func(t *testing.T) {
		moved, err := svc.Reorder(ctx, c.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, moved.PriorityOrder)
		assert.True(t, moved.UpdatedAt.After(c.UpdatedAt))

		stored, err := svc.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, stored.UpdatedAt.Equal(moved.UpdatedAt))

		list, err := svc.ListByChild(ctx, child.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []uuid.UUID{c.ID, a.ID, b.ID}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})
		assert.Equal(t, []int{1, 2, 3}, []int{list[0].PriorityOrder, list[1].PriorityOrder, list[2].PriorityOrder})
	})

	t.Run("reorder moves later and shifts siblings up", func(t *testing.T) {
		_, err := svc.Reorder(ctx, c.ID, 3)
		require.NoError(t, err)

		list, err := svc.ListByChild(ctx, child.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})
	})

	t.Run("reorder rejects priority below one", func(t *testing.T) {
		_, err := svc.Reorder(ctx, a.ID, 0)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, apperror.MapErrorToStatus(err))
	})

	t.Run("reorder unknown contact", func(t *testing.T) {
		_, err := svc.Reorder(ctx, uuid.New(), 1)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})
}

func TestDeleteKeepsMinimumContacts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewContactService(repository.NewContactRepository(db), childRepo.NewChildRepository(db))
	ctx := context.Background()

	child := testutil.CreateChild(t, db, "Liam", "Anderson")
	first, err := svc.Create(ctx, newContact(child.ID, "Alice", 1))
	require.NoError(t, err)
	_, err = svc.Create(ctx, newContact(child.ID, "Bob", 2))
	require.NoError(t, err)

	err = svc.Delete(ctx, first.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
	assert.Contains(t, err.Error(), "minimum 2 emergency contacts")

	_, err = svc.Create(ctx, newContact(child.ID, "Carol", 3))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, first.ID))

	_, err = svc.Get(ctx, first.ID)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
}

func TestMissingContacts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewContactService(repository.NewContactRepository(db), childRepo.NewChildRepository(db))
	ctx := context.Background()

	covered := testutil.CreateChild(t, db, "Emma", "Johnson")
	partial := testutil.CreateChild(t, db, "Liam", "Anderson")
	inactive := testutil.CreateChild(t, db, "Noah", "Smith")
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	for i, name := range []string{"Alice", "Bob"} {
		_, err := svc.Create(ctx, newContact(covered.ID, name, i+1))
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, newContact(partial.ID, "Carol", 1))
	require.NoError(t, err)

	missing, err := svc.MissingContacts(ctx)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, partial.ID, missing[0].ChildID)
	assert.Equal(t, "Liam Anderson", missing[0].ChildName)
	assert.Equal(t, 1, missing[0].CurrentContactCount)
	assert.Equal(t, 1, missing[0].MissingCount)
}
