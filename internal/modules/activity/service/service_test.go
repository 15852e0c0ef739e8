package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/activity/dto"
	"bouncearound.com/daycare/internal/modules/activity/repository"
	"bouncearound.com/daycare/internal/modules/activity/service"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 4, hour, minute, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	child := &entity.Child{FirstName: "Emma", LastName: "Johnson"}
	day := datetime.NewDate(2024, 3, 4)
	mood := func(m entity.Mood) *entity.Mood { return &m }

	activities := []entity.Activity{
		{ActivityType: entity.ActivityMeal, ActivityTime: at(8, 0), Mood: mood(entity.MoodTired)},
		{ActivityType: entity.ActivityPlay, ActivityTime: at(9, 0), Mood: mood(entity.MoodHappy)},
		{ActivityType: entity.ActivityNap, ActivityTime: at(12, 0), DurationMinutes: testutil.Ptr(45)},
		{ActivityType: entity.ActivityNap, ActivityTime: at(15, 0), DurationMinutes: testutil.Ptr(30), Mood: mood(entity.MoodHappy)},
		{ActivityType: entity.ActivityDiaper, ActivityTime: at(16, 0), Mood: mood(entity.MoodTired)},
		{ActivityType: entity.ActivityMeal, ActivityTime: at(17, 0)},
	}

	summary := service.Summarize(child, day, activities)
	assert.Equal(t, "Emma Johnson", summary.ChildName)
	assert.Equal(t, 6, summary.TotalActivities)
	assert.Equal(t, map[string]int{"meal": 2, "play": 1, "nap": 2, "diaper": 1}, summary.ActivitiesByType)
	assert.Equal(t, 75, summary.TotalNapDuration)
	assert.Equal(t, 2, summary.MealCount)
	assert.Equal(t, 1, summary.DiaperCount)
	assert.Equal(t, []string{"tired", "happy", "happy", "tired"}, summary.Moods)

	// tired and happy tie; tired was logged first
	require.NotNil(t, summary.PredominantMood)
	assert.Equal(t, "tired", *summary.PredominantMood)

	empty := service.Summarize(child, day, nil)
	assert.Nil(t, empty.PredominantMood)
	assert.Equal(t, 0, empty.TotalActivities)
}

func TestActivityRules(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewActivityService(repository.NewActivityRepository(db), childRepo.NewChildRepository(db), time.UTC)
	ctx := context.Background()

	child := testutil.CreateChild(t, db, "Emma", "Johnson")
	staff := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
	other := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
	admin := testutil.Actor(testutil.CreateUser(t, db, entity.RoleAdmin))

	day := datetime.NewDate(2024, 3, 4)
	input := func(kind string, hour int, mood *string) dto.CreateActivityInput {
		ts := at(hour, 0)
		return dto.CreateActivityInput{
			ChildID:      child.ID,
			ActivityDate: &day,
			ActivityTime: &ts,
			ActivityType: kind,
			ActivityName: kind,
			Mood:         mood,
		}
	}

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.Create(ctx, staff, input("swimming", 9, nil))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
		assert.Equal(t, "Invalid activity type. Must be one of: meal, nap, diaper, play, learning, outdoor", err.Error())
	})

	t.Run("invalid mood", func(t *testing.T) {
		_, err := svc.Create(ctx, staff, input("play", 9, testutil.Ptr("grumpy")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid mood. Must be one of:")
	})

	logged, err := svc.Create(ctx, staff, input("meal", 8, testutil.Ptr("happy")))
	require.NoError(t, err)
	assert.Equal(t, staff.ID, logged.LoggedBy)
	_, err = svc.Create(ctx, staff, input("play", 10, testutil.Ptr("energetic")))
	require.NoError(t, err)

	t.Run("summary for the day", func(t *testing.T) {
		summary, err := svc.Summary(ctx, child.ID, "2024-03-04")
		require.NoError(t, err)
		assert.Equal(t, 2, summary.TotalActivities)
		require.NotNil(t, summary.PredominantMood)
		assert.Equal(t, "happy", *summary.PredominantMood)
	})

	t.Run("only the logger or an admin may change it", func(t *testing.T) {
		_, err := svc.Update(ctx, other, logged.ID, dto.UpdateActivityInput{Notes: testutil.Ptr("x")})
		require.Error(t, err)
		assert.Equal(t, "You can only update activities you logged", err.Error())

		err = svc.Delete(ctx, other, logged.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))

		updated, err := svc.Update(ctx, admin, logged.ID, dto.UpdateActivityInput{Notes: testutil.Ptr("ate well")})
		require.NoError(t, err)
		require.NotNil(t, updated.Notes)
		assert.Equal(t, "ate well", *updated.Notes)

		require.NoError(t, svc.Delete(ctx, staff, logged.ID))
	})
}
