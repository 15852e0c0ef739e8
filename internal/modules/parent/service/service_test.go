package service_test

import (
	"context"
	"net/http"
	"testing"

	"bouncearound.com/daycare/internal/entity"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/parent/dto"
	"bouncearound.com/daycare/internal/modules/parent/repository"
	"bouncearound.com/daycare/internal/modules/parent/service"
	search "bouncearound.com/daycare/internal/modules/search/service"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (service.ParentService, *testutil.Fixtures) {
	db := testutil.NewDB(t)
	svc := service.NewParentService(repository.NewParentRepository(db), childRepo.NewChildRepository(db), search.NewMeiliSearchService(nil))
	return svc, testutil.NewFixtures(t, db)
}

func TestParentSearch(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	email := "sarah.j@example.com"
	_, err := svc.Create(ctx, dto.CreateParentInput{FirstName: "Sarah", LastName: "Johnson", Email: &email, PhonePrimary: "555-0101"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateParentInput{FirstName: "Mike", LastName: "Brown", PhonePrimary: "555-0199"})
	require.NoError(t, err)

	page, err := svc.List(ctx, dto.ParentFilter{Search: "SARAH.J"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Johnson", page.Data[0].LastName)

	page, err = svc.List(ctx, dto.ParentFilter{Search: "0199"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Brown", page.Data[0].LastName)

	page, err = svc.List(ctx, dto.ParentFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Brown", "Johnson"}, []string{page.Data[0].LastName, page.Data[1].LastName})
}

func TestRelationships(t *testing.T) {
	svc, fx := newService(t)
	ctx := context.Background()

	child := fx.Child("Emma", "Johnson")
	parent, err := svc.Create(ctx, dto.CreateParentInput{FirstName: "Sarah", LastName: "Johnson", PhonePrimary: "555-0101"})
	require.NoError(t, err)

	link, err := svc.Link(ctx, dto.CreateRelationshipInput{ChildID: child.ID, ParentID: parent.ID, RelationshipType: "mother", IsPrimary: true})
	require.NoError(t, err)
	assert.True(t, link.HasCustody)
	assert.True(t, link.CanPickup)

	t.Run("duplicate pair conflicts", func(t *testing.T) {
		_, err := svc.Link(ctx, dto.CreateRelationshipInput{ChildID: child.ID, ParentID: parent.ID, RelationshipType: "guardian"})
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))
	})

	t.Run("missing child or parent", func(t *testing.T) {
		_, err := svc.Link(ctx, dto.CreateRelationshipInput{ChildID: uuid.New(), ParentID: parent.ID, RelationshipType: "mother"})
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))

		_, err = svc.Link(ctx, dto.CreateRelationshipInput{ChildID: child.ID, ParentID: uuid.New(), RelationshipType: "mother"})
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})

	t.Run("explicit false flags are kept", func(t *testing.T) {
		other, err := svc.Create(ctx, dto.CreateParentInput{FirstName: "Tom", LastName: "Johnson", PhonePrimary: "555-0102"})
		require.NoError(t, err)

		no := false
		link, err := svc.Link(ctx, dto.CreateRelationshipInput{ChildID: child.ID, ParentID: other.ID, RelationshipType: "father", HasCustody: &no, CanPickup: &no})
		require.NoError(t, err)

		links, err := svc.LinksForChild(ctx, child.ID)
		require.NoError(t, err)
		require.Len(t, links, 2)
		for _, l := range links {
			require.NotNil(t, l.Parent)
			if l.ID == link.ID {
				assert.False(t, l.HasCustody)
				assert.False(t, l.CanPickup)
			}
		}
	})

	t.Run("only admins delete parents", func(t *testing.T) {
		err := svc.Delete(ctx, fx.Actor(entity.RoleStaff), parent.ID)
		assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))

		require.NoError(t, svc.Delete(ctx, fx.Actor(entity.RoleAdmin), parent.ID))
		links, err := svc.LinksForChild(ctx, child.ID)
		require.NoError(t, err)
		assert.Len(t, links, 1)
	})
}
