package service_test

import (
	"context"
	"net/http"
	"testing"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/alert/dto"
	"bouncearound.com/daycare/internal/modules/alert/repository"
	"bouncearound.com/daycare/internal/modules/alert/service"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	complianceRepo "bouncearound.com/daycare/internal/modules/compliance/repository"
	contactRepo "bouncearound.com/daycare/internal/modules/emergencycontact/repository"
	contactService "bouncearound.com/daycare/internal/modules/emergencycontact/service"
	notifRepo "bouncearound.com/daycare/internal/modules/notification/repository"
	notifService "bouncearound.com/daycare/internal/modules/notification/service"
	userRepo "bouncearound.com/daycare/internal/modules/user/repository"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplianceScan(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	users := userRepo.NewUserRepository(db)
	notifier := notifService.NewNotificationService(notifRepo.NewNotificationRepository(db), users, nil)
	children := childRepo.NewChildRepository(db)
	credentials := complianceRepo.NewCredentialRepository(db)

	svc := service.NewAlertService(service.Deps{
		Alerts:        repository.NewAlertRepository(db),
		Credentials:   credentials,
		Immunizations: complianceRepo.NewImmunizationRepository(db),
		Forms:         complianceRepo.NewEnrollmentFormRepository(db),
		Contacts:      contactService.NewContactService(contactRepo.NewContactRepository(db), children),
		Notifier:      notifier,
	})

	admin := testutil.CreateUser(t, db, entity.RoleAdmin)
	staff := testutil.CreateUser(t, db, entity.RoleStaff)
	child := testutil.CreateChild(t, db, "Emma", "Johnson")
	today := datetime.Today(nil)

	// stored without the expired flag so the scan has to correct it
	lapsed := &entity.StaffCredential{
		UserID:         staff.ID,
		CredentialType: entity.CredentialCPR,
		IssueDate:      today.AddDays(-400),
		ExpirationDate: testutil.Ptr(today.AddDays(-2)),
	}
	require.NoError(t, db.Create(lapsed).Error)

	require.NoError(t, db.Create(&entity.ImmunizationRecord{
		ChildID:            child.ID,
		VaccineName:        "MMR",
		AdministrationDate: today.AddDays(-300),
		ExpirationDate:     testutil.Ptr(today.AddDays(5)),
	}).Error)

	first, err := svc.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Created)
	assert.Equal(t, int64(1), first.RefreshedFlags)

	types := map[string]entity.AlertSeverity{}
	for _, a := range first.Alerts {
		types[a.AlertType] = a.Severity
	}
	assert.Equal(t, map[string]entity.AlertSeverity{
		entity.AlertExpiredCredential:    entity.SeverityCritical,
		entity.AlertExpiringImmunization: entity.SeverityMedium,
		entity.AlertMissingContacts:      entity.SeverityHigh,
	}, types)

	stored, err := credentials.FindByID(ctx, lapsed.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsExpired)

	unread, err := notifier.UnreadCount(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	t.Run("rescan does not duplicate open alerts", func(t *testing.T) {
		again, err := svc.Scan(ctx)
		require.NoError(t, err)
		assert.Zero(t, again.Created)
		assert.Equal(t, 3, again.Skipped)
		assert.Zero(t, again.RefreshedFlags)
	})

	t.Run("resolved alerts are raised again", func(t *testing.T) {
		var missing entity.ComplianceAlert
		for _, a := range first.Alerts {
			if a.AlertType == entity.AlertMissingContacts {
				missing = a
			}
		}
		resolved, err := svc.Resolve(ctx, missing.ID)
		require.NoError(t, err)
		assert.True(t, resolved.IsResolved)
		assert.NotNil(t, resolved.ResolvedAt)

		again, err := svc.Scan(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, again.Created)
	})

	t.Run("filters", func(t *testing.T) {
		open := false
		alerts, err := svc.List(ctx, dto.AlertFilter{IsResolved: &open, Severity: "critical"})
		require.NoError(t, err)
		require.Len(t, alerts, 1)
		assert.Equal(t, lapsed.ID, alerts[0].EntityID)

		_, err = svc.List(ctx, dto.AlertFilter{Severity: "severe"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
	})

	t.Run("resolve unknown alert", func(t *testing.T) {
		_, err := svc.Resolve(ctx, uuid.New())
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})
}
