package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/alert/dto"
	"bouncearound.com/daycare/internal/modules/alert/repository"
	complianceRepo "bouncearound.com/daycare/internal/modules/compliance/repository"
	contactService "bouncearound.com/daycare/internal/modules/emergencycontact/service"
	notifService "bouncearound.com/daycare/internal/modules/notification/service"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	"bouncearound.com/daycare/pkg/validator"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LookaheadDays bounds the "expiring soon" alerts.
const LookaheadDays = 30

type AlertService interface {
	List(ctx context.Context, filter dto.AlertFilter) ([]entity.ComplianceAlert, error)
	Resolve(ctx context.Context, id uuid.UUID) (*entity.ComplianceAlert, error)
	Scan(ctx context.Context) (*dto.ScanResult, error)
}

type Deps struct {
	Alerts        repository.AlertRepository
	Credentials   complianceRepo.CredentialRepository
	Immunizations complianceRepo.ImmunizationRepository
	Forms         complianceRepo.EnrollmentFormRepository
	Contacts      contactService.ContactService
	Notifier      notifService.Notifier
	Location      *time.Location
}

type alertService struct {
	Deps
	now func() time.Time
}

func NewAlertService(deps Deps) AlertService {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &alertService{Deps: deps, now: time.Now}
}

func (s *alertService) List(ctx context.Context, filter dto.AlertFilter) ([]entity.ComplianceAlert, error) {
	if filter.Severity != "" {
		if err := validator.OneOf("severity", filter.Severity, entity.AlertSeverities); err != nil {
			return nil, err
		}
	}
	return s.Alerts.List(ctx, filter)
}

func (s *alertService) Resolve(ctx context.Context, id uuid.UUID) (*entity.ComplianceAlert, error) {
	alert, err := s.Alerts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Compliance alert with ID %s not found", id))
		}
		return nil, err
	}
	if alert.IsResolved {
		return alert, nil
	}

	now := s.now()
	alert.IsResolved = true
	alert.ResolvedAt = &now
	if err := s.Alerts.Update(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *alertService) candidates(ctx context.Context, today datetime.Date) ([]entity.ComplianceAlert, error) {
	var out []entity.ComplianceAlert
	horizon := today.AddDays(LookaheadDays)

	expiring, err := s.Credentials.ListExpiringBetween(ctx, today, horizon)
	if err != nil {
		return nil, err
	}
	for _, c := range expiring {
		out = append(out, entity.ComplianceAlert{
			AlertType:   entity.AlertExpiringCredential,
			EntityType:  entity.AlertEntityStaff,
			EntityID:    c.ID,
			Description: fmt.Sprintf("%s for %s expires on %s", c.CredentialType, userName(c.User), c.ExpirationDate),
			DueDate:     c.ExpirationDate,
			Severity:    entity.SeverityHigh,
		})
	}

	expired, err := s.Credentials.ListExpiredBefore(ctx, today)
	if err != nil {
		return nil, err
	}
	for _, c := range expired {
		out = append(out, entity.ComplianceAlert{
			AlertType:   entity.AlertExpiredCredential,
			EntityType:  entity.AlertEntityStaff,
			EntityID:    c.ID,
			Description: fmt.Sprintf("%s for %s expired on %s", c.CredentialType, userName(c.User), c.ExpirationDate),
			DueDate:     c.ExpirationDate,
			Severity:    entity.SeverityCritical,
		})
	}

	immunizations, err := s.Immunizations.ListExpiringBetween(ctx, today, horizon)
	if err != nil {
		return nil, err
	}
	for _, r := range immunizations {
		out = append(out, entity.ComplianceAlert{
			AlertType:   entity.AlertExpiringImmunization,
			EntityType:  entity.AlertEntityChild,
			EntityID:    r.ID,
			Description: fmt.Sprintf("%s immunization for %s expires on %s", r.VaccineName, childName(r.Child), r.ExpirationDate),
			DueDate:     r.ExpirationDate,
			Severity:    entity.SeverityMedium,
		})
	}

	forms, err := s.Forms.ListIncomplete(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range forms {
		out = append(out, entity.ComplianceAlert{
			AlertType:   entity.AlertIncompleteForm,
			EntityType:  entity.AlertEntityDocument,
			EntityID:    f.ID,
			Description: fmt.Sprintf("Enrollment form for %s is incomplete", childName(f.Child)),
			Severity:    entity.SeverityMedium,
		})
	}

	missing, err := s.Contacts.MissingContacts(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range missing {
		out = append(out, entity.ComplianceAlert{
			AlertType:   entity.AlertMissingContacts,
			EntityType:  entity.AlertEntityChild,
			EntityID:    m.ChildID,
			Description: fmt.Sprintf("%s has %d of %d required emergency contacts", m.ChildName, m.CurrentContactCount, m.RequiredCount),
			Severity:    entity.SeverityHigh,
		})
	}

	return out, nil
}

func (s *alertService) Scan(ctx context.Context) (*dto.ScanResult, error) {
	today := datetime.DateOf(s.now().In(s.Location))
	result := &dto.ScanResult{Alerts: []entity.ComplianceAlert{}}

	for _, refresh := range []func(context.Context, datetime.Date) (int64, error){
		s.Credentials.RefreshExpired,
		s.Immunizations.RefreshExpired,
	} {
		n, err := refresh(ctx, today)
		if err != nil {
			return nil, err
		}
		result.RefreshedFlags += n
	}

	candidates, err := s.candidates(ctx, today)
	if err != nil {
		return nil, err
	}
	open, err := s.Alerts.OpenKeys(ctx)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		alert := candidates[i]
		key := dto.AlertKey{AlertType: alert.AlertType, EntityID: alert.EntityID}
		if _, exists := open[key]; exists {
			result.Skipped++
			continue
		}
		if err := s.Alerts.Create(ctx, &alert); err != nil {
			return nil, err
		}
		open[key] = struct{}{}
		result.Alerts = append(result.Alerts, alert)
	}
	result.Created = len(result.Alerts)

	log.Info().
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Int64("refreshed_flags", result.RefreshedFlags).
		Msg("compliance scan finished")

	if result.Created > 0 && s.Notifier != nil {
		if err := s.Notifier.NotifyAdmins(ctx, entity.Notification{
			Type:       notifService.TypeComplianceAlert,
			Title:      "New compliance alerts",
			Message:    fmt.Sprintf("%d new compliance alert(s) need attention", result.Created),
			EntityType: "compliance_alert",
		}); err != nil {
			log.Warn().Err(err).Msg("failed to notify admins about compliance alerts")
		}
	}

	return result, nil
}

func userName(u *entity.User) string {
	if u == nil {
		return "unknown staff"
	}
	return u.FullName()
}

func childName(c *entity.Child) string {
	if c == nil {
		return "unknown child"
	}
	return c.FullName()
}
