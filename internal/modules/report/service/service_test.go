package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"bouncearound.com/daycare/internal/entity"
	activityRepo "bouncearound.com/daycare/internal/modules/activity/repository"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	parentRepo "bouncearound.com/daycare/internal/modules/parent/repository"
	photoRepo "bouncearound.com/daycare/internal/modules/photo/repository"
	"bouncearound.com/daycare/internal/modules/report/dto"
	"bouncearound.com/daycare/internal/modules/report/repository"
	"bouncearound.com/daycare/internal/modules/report/service"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGenerator struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeGenerator) Close() error { return nil }

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent   []sentMail
	reject map[string]bool
}

func (f *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if f.reject[to] {
		return errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func newService(t *testing.T, db *gorm.DB, gen *fakeGenerator, mail *fakeMailer) service.ReportService {
	t.Helper()
	deps := service.Deps{
		Reports:    repository.NewReportRepository(db),
		Children:   childRepo.NewChildRepository(db),
		Activities: activityRepo.NewActivityRepository(db),
		Parents:    parentRepo.NewParentRepository(db),
		Photos:     photoRepo.NewPhotoRepository(db),
		Mailer:     mail,
		Cooldown:   time.Minute,
	}
	if gen != nil {
		deps.Generator = gen
	}
	return service.NewReportService(deps)
}

func logActivity(t *testing.T, db *gorm.DB, child *entity.Child, staff *entity.User, day datetime.Date, hour int, typ entity.ActivityType, name string, mood entity.Mood) {
	t.Helper()
	m := mood
	require.NoError(t, db.Create(&entity.Activity{
		ChildID:      child.ID,
		ActivityDate: day,
		ActivityTime: time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC),
		ActivityType: typ,
		ActivityName: name,
		Mood:         &m,
		LoggedBy:     staff.ID,
	}).Error)
}

func linkParent(t *testing.T, db *gorm.DB, child *entity.Child, first string, email *string) *entity.Parent {
	t.Helper()
	p := &entity.Parent{FirstName: first, LastName: child.LastName, Email: email, PhonePrimary: "555-0100"}
	require.NoError(t, db.Create(p).Error)
	require.NoError(t, db.Create(&entity.ChildParent{
		ChildID:          child.ID,
		ParentID:         p.ID,
		RelationshipType: "parent",
	}).Error)
	return p
}

func TestCreateReport(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(t, db, nil, &fakeMailer{})
	ctx := context.Background()

	staff := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
	emma := testutil.CreateChild(t, db, "Emma", "Johnson")
	day := datetime.NewDate(2024, 3, 4)

	report, err := svc.Create(ctx, staff, dto.CreateReportInput{
		ChildID:     emma.ID,
		ReportDate:  &day,
		CustomNotes: testutil.Ptr("Great painting session"),
		OverallMood: testutil.Ptr("happy"),
	})
	require.NoError(t, err)
	assert.False(t, report.SentToParents)
	require.NotNil(t, report.GeneratedBy)
	assert.Equal(t, staff.ID, *report.GeneratedBy)

	_, err = svc.Create(ctx, staff, dto.CreateReportInput{ChildID: emma.ID, ReportDate: &day})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))
	assert.Equal(t, "Daily report already exists for this child on this date", err.Error())

	_, err = svc.Create(ctx, staff, dto.CreateReportInput{ChildID: uuid.New(), ReportDate: &day})
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))

	other := day.AddDays(1)
	_, err = svc.Create(ctx, staff, dto.CreateReportInput{ChildID: emma.ID, ReportDate: &other, OverallMood: testutil.Ptr("grumpy")})
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

	_, err = svc.Get(ctx, uuid.New())
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))

	t.Run("list filters by child and date", func(t *testing.T) {
		page, err := svc.List(ctx, dto.ReportFilter{ChildID: emma.ID.String(), ReportDate: "2024-03-04"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Meta.TotalItems)

		page, err = svc.List(ctx, dto.ReportFilter{ReportDate: "2024-03-05"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Meta.TotalItems)
	})

	t.Run("only admins delete", func(t *testing.T) {
		err := svc.Delete(ctx, staff, report.ID)
		assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))

		admin := testutil.Actor(testutil.CreateUser(t, db, entity.RoleAdmin))
		require.NoError(t, svc.Delete(ctx, admin, report.ID))
		_, err = svc.Get(ctx, report.ID)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})
}

func TestGenerateReport(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, entity.RoleStaff)
	staff := testutil.Actor(user)
	emma := testutil.CreateChild(t, db, "Emma", "Johnson")
	day := datetime.NewDate(2024, 3, 4)

	logActivity(t, db, emma, user, day, 9, entity.ActivityPlay, "Block tower", entity.MoodHappy)
	logActivity(t, db, emma, user, day, 12, entity.ActivityMeal, "Lunch", entity.MoodHappy)
	logActivity(t, db, emma, user, day, 15, entity.ActivityPlay, "Sandbox", entity.MoodTired)

	t.Run("unconfigured generator is unavailable", func(t *testing.T) {
		svc := newService(t, db, nil, &fakeMailer{})
		_, err := svc.Generate(ctx, staff, dto.GenerateReportInput{ChildID: emma.ID, ReportDate: &day})
		require.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, apperror.MapErrorToStatus(err))
	})

	t.Run("generator failure is unavailable", func(t *testing.T) {
		svc := newService(t, db, &fakeGenerator{err: errors.New("quota")}, &fakeMailer{})
		_, err := svc.Generate(ctx, staff, dto.GenerateReportInput{ChildID: emma.ID, ReportDate: &day})
		require.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, apperror.MapErrorToStatus(err))
	})

	gen := &fakeGenerator{reply: "  Emma had a wonderful day building towers.  "}
	svc := newService(t, db, gen, &fakeMailer{})

	report, err := svc.Generate(ctx, staff, dto.GenerateReportInput{ChildID: emma.ID, ReportDate: &day})
	require.NoError(t, err)
	require.NotNil(t, report.AIGeneratedSummary)
	assert.Equal(t, "Emma had a wonderful day building towers.", *report.AIGeneratedSummary)
	require.NotNil(t, report.OverallMood)
	assert.Equal(t, "happy", *report.OverallMood)
	assert.Contains(t, string(report.ActivitiesSummary), `"total_activities":3`)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Emma Johnson")
	assert.Contains(t, gen.prompts[0], "Block tower")
	assert.Contains(t, gen.prompts[0], "Meals: 1")

	t.Run("regenerating updates the same report and keeps the mood", func(t *testing.T) {
		_, err := svc.Update(ctx, report.ID, dto.UpdateReportInput{OverallMood: testutil.Ptr("energetic")})
		require.NoError(t, err)

		gen.reply = "A second take."
		again, err := svc.Generate(ctx, staff, dto.GenerateReportInput{ChildID: emma.ID, ReportDate: &day})
		require.NoError(t, err)
		assert.Equal(t, report.ID, again.ID)
		assert.Equal(t, "A second take.", *again.AIGeneratedSummary)
		assert.Equal(t, "energetic", *again.OverallMood)
	})
}

func TestSendReport(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	mail := &fakeMailer{reject: map[string]bool{"bounce@example.com": true}}
	svc := newService(t, db, nil, mail)

	staff := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
	emma := testutil.CreateChild(t, db, "Emma", "Johnson")
	day := datetime.NewDate(2024, 3, 4)

	empty, err := svc.Create(ctx, staff, dto.CreateReportInput{ChildID: emma.ID, ReportDate: &day})
	require.NoError(t, err)

	_, err = svc.Send(ctx, empty.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

	_, err = svc.Update(ctx, empty.ID, dto.UpdateReportInput{CustomNotes: testutil.Ptr("Emma shared her snack with a friend.")})
	require.NoError(t, err)

	mom := linkParent(t, db, emma, "Sarah", testutil.Ptr("sarah@example.com"))
	linkParent(t, db, emma, "Mark", testutil.Ptr("bounce@example.com"))
	linkParent(t, db, emma, "Nana", nil)

	res, err := svc.Send(ctx, empty.ID)
	require.NoError(t, err)
	require.Len(t, res.Deliveries, 2)

	delivered := 0
	for _, d := range res.Deliveries {
		if d.Delivered {
			delivered++
			assert.Equal(t, mom.ID, d.ParentID)
		} else {
			assert.Equal(t, "mailbox unavailable", d.Error)
		}
	}
	assert.Equal(t, 1, delivered)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "sarah@example.com", mail.sent[0].to)
	assert.True(t, strings.HasPrefix(mail.sent[0].subject, "Daily report for Emma"))
	assert.Contains(t, mail.sent[0].body, "shared her snack")

	assert.True(t, res.Report.SentToParents)
	assert.NotNil(t, res.Report.SentAt)

	stored, err := svc.Get(ctx, empty.ID)
	require.NoError(t, err)
	assert.True(t, stored.SentToParents)
}

func TestReportPhotos(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := newService(t, db, nil, &fakeMailer{})

	user := testutil.CreateUser(t, db, entity.RoleStaff)
	emma := testutil.CreateChild(t, db, "Emma", "Johnson")
	day := datetime.NewDate(2024, 3, 4)

	report, err := svc.Create(ctx, testutil.Actor(user), dto.CreateReportInput{ChildID: emma.ID, ReportDate: &day})
	require.NoError(t, err)

	photo := &entity.Photo{
		PhotoURL:   "https://files.test/photos/a.jpg",
		PhotoDate:  day,
		PhotoTime:  time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		UploadedBy: user.ID,
	}
	require.NoError(t, db.Create(photo).Error)

	photos, err := svc.AddPhoto(ctx, report.ID, photo.ID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, photo.ID, photos[0].ID)

	_, err = svc.AddPhoto(ctx, report.ID, photo.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))

	_, err = svc.AddPhoto(ctx, report.ID, uuid.New())
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))

	listed, err := svc.ListPhotos(ctx, report.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
