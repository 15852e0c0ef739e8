package service

import (
	"context"
	"time"

	alertRepo "bouncearound.com/daycare/internal/modules/alert/repository"
	attendanceRepo "bouncearound.com/daycare/internal/modules/attendance/repository"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	complianceRepo "bouncearound.com/daycare/internal/modules/compliance/repository"
	"bouncearound.com/daycare/internal/modules/dashboard/dto"
	incidentRepo "bouncearound.com/daycare/internal/modules/incident/repository"
	"bouncearound.com/daycare/pkg/datetime"
	"golang.org/x/sync/errgroup"
)

const lookaheadDays = 30

type DashboardService interface {
	Summary(ctx context.Context) (*dto.Summary, error)
}

type Deps struct {
	Children      childRepo.ChildRepository
	Attendance    attendanceRepo.AttendanceRepository
	Incidents     incidentRepo.IncidentRepository
	Credentials   complianceRepo.CredentialRepository
	Immunizations complianceRepo.ImmunizationRepository
	Forms         complianceRepo.EnrollmentFormRepository
	Alerts        alertRepo.AlertRepository
	Location      *time.Location
}

type dashboardService struct {
	Deps
	now func() time.Time
}

func NewDashboardService(deps Deps) DashboardService {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &dashboardService{Deps: deps, now: time.Now}
}

// Summary runs the counts concurrently; the first failure cancels the rest.
func (s *dashboardService) Summary(ctx context.Context) (*dto.Summary, error) {
	today := datetime.DateOf(s.now().In(s.Location))
	horizon := today.AddDays(lookaheadDays)

	var out dto.Summary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.ActiveChildren, err = s.Children.CountActive(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.CheckedInToday, out.CheckedOutToday, out.LatePickupsToday, err = s.Attendance.CountByDate(ctx, today)
		return err
	})
	g.Go(func() (err error) {
		out.PendingParentNotifications, out.PendingDCFSNotifications, err = s.Incidents.CountPending(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.ExpiringCredentials30d, err = s.Credentials.CountExpiringBetween(ctx, today, horizon)
		return err
	})
	g.Go(func() (err error) {
		out.ExpiredCredentials, err = s.Credentials.CountExpiredBefore(ctx, today)
		return err
	})
	g.Go(func() (err error) {
		out.ExpiringImmunizations30d, err = s.Immunizations.CountExpiringBetween(ctx, today, horizon)
		return err
	})
	g.Go(func() (err error) {
		out.IncompleteEnrollmentForms, err = s.Forms.CountIncomplete(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.UnresolvedAlerts, err = s.Alerts.CountUnresolved(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
