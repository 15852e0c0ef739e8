package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"bouncearound.com/daycare/internal/entity"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/pickup/dto"
	"bouncearound.com/daycare/internal/modules/pickup/repository"
	"bouncearound.com/daycare/internal/modules/pickup/service"
	search "bouncearound.com/daycare/internal/modules/search/service"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(db *gorm.DB) service.PickupService {
	return service.NewPickupService(
		repository.NewPickupRepository(db),
		childRepo.NewChildRepository(db),
		search.NewMeiliSearchService(nil),
	)
}

func decodeKeys(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestVerifyPickup(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	ctx := context.Background()

	child := testutil.CreateChild(t, db, "Emma", "Johnson")
	grandma, err := svc.Create(ctx, dto.CreatePickupInput{
		ChildID:          child.ID,
		Name:             "Margaret Johnson",
		RelationshipType: "Grandmother",
		Phone:            "555-0101",
		RequiresPassword: true,
		PasswordHint:     testutil.Ptr("favourite flower"),
	})
	require.NoError(t, err)
	assert.True(t, grandma.IsActive)

	_, err = svc.Create(ctx, dto.CreatePickupInput{
		ChildID:          child.ID,
		Name:             "Tom Neighbor",
		RelationshipType: "Neighbor",
		Phone:            "555-0102",
		PasswordHint:     testutil.Ptr("should stay hidden"),
	})
	require.NoError(t, err)

	t.Run("case insensitive partial match", func(t *testing.T) {
		res, err := svc.Verify(ctx, child.ID, "margaret")
		require.NoError(t, err)
		assert.True(t, res.Authorized)
		require.NotNil(t, res.PickupPerson)
		assert.Equal(t, grandma.ID, res.PickupPerson.ID)
		require.NotNil(t, res.PickupPerson.PasswordHint)
		assert.Equal(t, "favourite flower", *res.PickupPerson.PasswordHint)
		assert.Equal(t, "Emma Johnson", res.ChildName)
	})

	t.Run("hint hidden when no password is required", func(t *testing.T) {
		res, err := svc.Verify(ctx, child.ID, "tom")
		require.NoError(t, err)
		require.True(t, res.Authorized)

		person := decodeKeys(t, res)["pickup_person"].(map[string]any)
		assert.NotContains(t, person, "password_hint")
	})

	t.Run("no match leaks no pickup details", func(t *testing.T) {
		res, err := svc.Verify(ctx, child.ID, "Stranger")
		require.NoError(t, err)
		assert.False(t, res.Authorized)
		assert.Equal(t, "This person is NOT authorized to pick up this child", res.Message)

		body := decodeKeys(t, res)
		assert.NotContains(t, body, "pickup_person")
		assert.Equal(t, "Stranger", body["pickup_name"])
	})

	t.Run("inactive pickups do not verify", func(t *testing.T) {
		_, err := svc.SetActive(ctx, grandma.ID, false)
		require.NoError(t, err)

		res, err := svc.Verify(ctx, child.ID, "Margaret")
		require.NoError(t, err)
		assert.False(t, res.Authorized)
	})

	t.Run("unknown child", func(t *testing.T) {
		_, err := svc.Verify(ctx, uuid.New(), "Margaret")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})
}

func TestPickupQueries(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	ctx := context.Background()

	child := testutil.CreateChild(t, db, "Liam", "Anderson")
	withPhoto, err := svc.Create(ctx, dto.CreatePickupInput{
		ChildID: child.ID, Name: "Anna Anderson", RelationshipType: "Aunt", Phone: "555-0201",
		PhotoURL: testutil.Ptr("https://example.com/anna.jpg"),
	})
	require.NoError(t, err)
	noPhoto, err := svc.Create(ctx, dto.CreatePickupInput{
		ChildID: child.ID, Name: "Bill Anderson", RelationshipType: "Uncle", Phone: "555-0202",
	})
	require.NoError(t, err)
	inactive, err := svc.Create(ctx, dto.CreatePickupInput{
		ChildID: child.ID, Name: "Andy Old", RelationshipType: "Friend", Phone: "555-0203",
		IsActive: testutil.Ptr(false),
	})
	require.NoError(t, err)

	t.Run("search by name defaults to active", func(t *testing.T) {
		found, err := svc.SearchByName(ctx, dto.NameSearchQuery{Name: "and"})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, withPhoto.ID, found[0].ID)

		found, err = svc.SearchByName(ctx, dto.NameSearchQuery{Name: "and", IsActive: testutil.Ptr(false)})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, inactive.ID, found[0].ID)
	})

	t.Run("photo verification lists active pickups without photo", func(t *testing.T) {
		pending, err := svc.PhotoVerificationRequired(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, noPhoto.ID, pending[0].ID)
	})

	t.Run("child list filters by active flag", func(t *testing.T) {
		all, err := svc.ListByChild(ctx, child.ID, dto.ChildPickupQuery{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		active, err := svc.ListByChild(ctx, child.ID, dto.ChildPickupQuery{IsActive: testutil.Ptr(true)})
		require.NoError(t, err)
		assert.Len(t, active, 2)
	})

	t.Run("active list is paginated", func(t *testing.T) {
		page, err := svc.ListActive(ctx, dto.ActivePickupQuery{})
		require.NoError(t, err)
		assert.Equal(t, 50, page.Meta.PageSize)
		assert.Equal(t, int64(2), page.Meta.TotalItems)
	})

	t.Run("only admins delete", func(t *testing.T) {
		staff := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
		err := svc.Delete(ctx, staff, noPhoto.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))

		admin := testutil.Actor(testutil.CreateUser(t, db, entity.RoleAdmin))
		require.NoError(t, svc.Delete(ctx, admin, noPhoto.ID))
		_, err = svc.Get(ctx, noPhoto.ID)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})
}
