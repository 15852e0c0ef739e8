package service_test

import (
	"context"
	"testing"

	"bouncearound.com/daycare/internal/entity"
	alertRepo "bouncearound.com/daycare/internal/modules/alert/repository"
	attendanceRepo "bouncearound.com/daycare/internal/modules/attendance/repository"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	complianceRepo "bouncearound.com/daycare/internal/modules/compliance/repository"
	"bouncearound.com/daycare/internal/modules/dashboard/service"
	incidentRepo "bouncearound.com/daycare/internal/modules/incident/repository"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewDashboardService(service.Deps{
		Children:      childRepo.NewChildRepository(db),
		Attendance:    attendanceRepo.NewAttendanceRepository(db),
		Incidents:     incidentRepo.NewIncidentRepository(db),
		Credentials:   complianceRepo.NewCredentialRepository(db),
		Immunizations: complianceRepo.NewImmunizationRepository(db),
		Forms:         complianceRepo.NewEnrollmentFormRepository(db),
		Alerts:        alertRepo.NewAlertRepository(db),
	})
	ctx := context.Background()

	empty, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, *empty)

	staff := testutil.CreateUser(t, db, entity.RoleStaff)
	emma := testutil.CreateChild(t, db, "Emma", "Johnson")
	liam := testutil.CreateChild(t, db, "Liam", "Smith")
	today := datetime.Today(nil)

	out := datetime.NewClock(18, 20, 0)
	require.NoError(t, db.Create(&entity.Attendance{
		ChildID:           emma.ID,
		AttendanceDate:    today,
		CheckInTime:       datetime.NewClock(8, 0, 0),
		CheckInByName:     "Sarah Johnson",
		CheckOutTime:      &out,
		CheckOutByName:    testutil.Ptr("Sarah Johnson"),
		IsLatePickup:      true,
		LatePickupMinutes: 20,
		LatePickupFee:     20,
		RecordedBy:        staff.ID,
	}).Error)
	require.NoError(t, db.Create(&entity.Attendance{
		ChildID:        liam.ID,
		AttendanceDate: today,
		CheckInTime:    datetime.NewClock(8, 30, 0),
		CheckInByName:  "Tom Smith",
		RecordedBy:     staff.ID,
	}).Error)

	require.NoError(t, db.Create(&entity.EnrollmentForm{ChildID: liam.ID, EnrollmentDate: today}).Error)

	soon := today.AddDays(10)
	lapsed := today.AddDays(-3)
	require.NoError(t, db.Create(&entity.StaffCredential{UserID: staff.ID, CredentialType: "CPR", IssueDate: today.AddDays(-300), ExpirationDate: &soon}).Error)
	require.NoError(t, db.Create(&entity.StaffCredential{UserID: staff.ID, CredentialType: "TB Test", IssueDate: today.AddDays(-400), ExpirationDate: &lapsed, IsExpired: true}).Error)

	require.NoError(t, db.Create(&entity.ComplianceAlert{
		AlertType:   "incomplete_form",
		EntityType:  "enrollment_form",
		EntityID:    liam.ID,
		Description: "Enrollment form incomplete",
		Severity:    entity.SeverityMedium,
	}).Error)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.ActiveChildren)
	assert.Equal(t, int64(2), summary.CheckedInToday)
	assert.Equal(t, int64(1), summary.CheckedOutToday)
	assert.Equal(t, int64(1), summary.LatePickupsToday)
	assert.Equal(t, int64(1), summary.ExpiringCredentials30d)
	assert.Equal(t, int64(1), summary.ExpiredCredentials)
	assert.Equal(t, int64(1), summary.IncompleteEnrollmentForms)
	assert.Equal(t, int64(1), summary.UnresolvedAlerts)
	assert.Zero(t, summary.ExpiringImmunizations30d)
}
