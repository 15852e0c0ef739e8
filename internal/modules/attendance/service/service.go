package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"bouncearound.com/daycare/internal/config"
	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/attendance/dto"
	"bouncearound.com/daycare/internal/modules/attendance/repository"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const defaultHistoryDays = 30

type AttendanceService interface {
	CheckIn(ctx context.Context, actor entity.Actor, input dto.CheckInInput) (*entity.Attendance, error)
	CheckOut(ctx context.Context, id uuid.UUID, input dto.CheckOutInput) (*entity.Attendance, error)
	List(ctx context.Context, filter dto.AttendanceFilter) (*commonDto.Paginated[entity.Attendance], error)
	Today(ctx context.Context, onlyCheckedIn bool) ([]entity.Attendance, error)
	ChildHistory(ctx context.Context, childID uuid.UUID, dates commonDto.DateRangeQuery) ([]entity.Attendance, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Attendance, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateAttendanceInput) (*entity.Attendance, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
	LatePickups(ctx context.Context, dates commonDto.DateRangeQuery) (*dto.LatePickupReport, error)
}

type attendanceService struct {
	repo      repository.AttendanceRepository
	childRepo childRepo.ChildRepository
	policy    config.AttendancePolicy
	now       func() time.Time
}

func NewAttendanceService(repo repository.AttendanceRepository, childRepo childRepo.ChildRepository, policy config.AttendancePolicy) AttendanceService {
	if policy.Location == nil {
		policy.Location = time.UTC
	}
	return &attendanceService{
		repo:      repo,
		childRepo: childRepo,
		policy:    policy,
		now:       time.Now,
	}
}

// Lateness applies the pickup policy to a checkout time. Minutes up to and
// including the grace period are free; billable minutes are the remainder.
func Lateness(policy config.AttendancePolicy, checkout datetime.Clock) (late bool, billable int, fee float64) {
	minutesLate := checkout.MinutesSince(policy.StandardPickupTime)
	if minutesLate <= policy.GraceMinutes {
		return false, 0, 0
	}
	billable = minutesLate - policy.GraceMinutes
	fee = math.Round(float64(billable)*policy.FeePerMinute*100) / 100
	return true, billable, fee
}

func (s *attendanceService) today() datetime.Date {
	return datetime.DateOf(s.now().In(s.policy.Location))
}

func (s *attendanceService) CheckIn(ctx context.Context, actor entity.Actor, input dto.CheckInInput) (*entity.Attendance, error) {
	child, err := childRepo.Require(ctx, s.childRepo, input.ChildID)
	if err != nil {
		return nil, err
	}
	if !child.IsActive {
		return nil, apperror.BadRequest("Cannot check in inactive child")
	}

	today := s.today()
	existing, err := s.repo.FindByChildAndDate(ctx, child.ID, today)
	if err == nil {
		return nil, alreadyCheckedIn(existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	attendance := &entity.Attendance{
		ChildID:             child.ID,
		AttendanceDate:      today,
		CheckInTime:         *input.CheckInTime,
		CheckInByName:       input.CheckInByName,
		CheckInSignatureURL: input.CheckInSignatureURL,
		Notes:               input.Notes,
		RecordedBy:          actor.ID,
	}
	if err := s.repo.Create(ctx, attendance); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race to a concurrent check-in
			if existing, findErr := s.repo.FindByChildAndDate(ctx, child.ID, today); findErr == nil {
				return nil, alreadyCheckedIn(existing)
			}
			return nil, apperror.BadRequest("Child already checked in today")
		}
		return nil, err
	}

	log.Info().
		Str("child_id", child.ID.String()).
		Str("date", today.String()).
		Str("time", attendance.CheckInTime.String()).
		Msg("child checked in")
	return attendance, nil
}

func alreadyCheckedIn(existing *entity.Attendance) error {
	return apperror.BadRequest(fmt.Sprintf("Child already checked in today at %s", existing.CheckInTime))
}

func (s *attendanceService) CheckOut(ctx context.Context, id uuid.UUID, input dto.CheckOutInput) (*entity.Attendance, error) {
	attendance, err := s.repo.WithLock(ctx, id, func(a *entity.Attendance) error {
		if a.CheckedOut() {
			return apperror.BadRequest(fmt.Sprintf("Child already checked out at %s", *a.CheckOutTime))
		}
		if *input.CheckOutTime <= a.CheckInTime {
			return apperror.BadRequest(fmt.Sprintf("Check-out time must be after check-in time (%s)", a.CheckInTime))
		}

		checkout := *input.CheckOutTime
		byName := input.CheckOutByName
		a.CheckOutTime = &checkout
		a.CheckOutByName = &byName
		a.CheckOutSignatureURL = input.CheckOutSignatureURL

		if input.Notes != nil && *input.Notes != "" {
			if a.Notes != nil && *a.Notes != "" {
				merged := *a.Notes + "\n[Checkout] " + *input.Notes
				a.Notes = &merged
			} else {
				a.Notes = input.Notes
			}
		}

		a.IsLatePickup, a.LatePickupMinutes, a.LatePickupFee = Lateness(s.policy, checkout)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}

	event := log.Info()
	if attendance.IsLatePickup {
		event = log.Warn().Int("late_minutes", attendance.LatePickupMinutes).Float64("fee", attendance.LatePickupFee)
	}
	event.Str("attendance_id", attendance.ID.String()).Str("time", attendance.CheckOutTime.String()).Msg("child checked out")
	return attendance, nil
}

func (s *attendanceService) List(ctx context.Context, filter dto.AttendanceFilter) (*commonDto.Paginated[entity.Attendance], error) {
	filter.Normalize(50)
	criteria := dto.AttendanceCriteria{
		PageQuery:  filter.PageQuery,
		CheckedOut: filter.CheckedOut,
	}

	date, err := datetime.ParseOptionalDate(filter.Date)
	if err != nil {
		return nil, apperror.InvalidInput(err.Error())
	}
	criteria.Date = date

	if filter.ChildID != "" {
		childID, err := uuid.Parse(filter.ChildID)
		if err != nil {
			return nil, apperror.InvalidInput("invalid child_id")
		}
		criteria.ChildID = &childID
	}

	records, total, err := s.repo.List(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return commonDto.NewPaginated(records, filter.PageQuery, total), nil
}

func (s *attendanceService) Today(ctx context.Context, onlyCheckedIn bool) ([]entity.Attendance, error) {
	return s.repo.ListByDate(ctx, s.today(), onlyCheckedIn)
}

func (s *attendanceService) ChildHistory(ctx context.Context, childID uuid.UUID, dates commonDto.DateRangeQuery) ([]entity.Attendance, error) {
	if _, err := childRepo.Require(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}
	start, end, err := dates.Resolve(s.today(), defaultHistoryDays)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByChild(ctx, childID, start, end)
}

func (s *attendanceService) Get(ctx context.Context, id uuid.UUID) (*entity.Attendance, error) {
	attendance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	return attendance, nil
}

func notFound(id uuid.UUID) error {
	return apperror.NotFound(fmt.Sprintf("Attendance record with ID %s not found", id))
}

func (s *attendanceService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateAttendanceInput) (*entity.Attendance, error) {
	attendance, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CheckInByName != nil {
		attendance.CheckInByName = *input.CheckInByName
	}
	if input.CheckInSignatureURL != nil {
		attendance.CheckInSignatureURL = input.CheckInSignatureURL
	}
	if input.CheckOutByName != nil {
		attendance.CheckOutByName = input.CheckOutByName
	}
	if input.CheckOutSignatureURL != nil {
		attendance.CheckOutSignatureURL = input.CheckOutSignatureURL
	}
	if input.Notes != nil {
		attendance.Notes = input.Notes
	}

	if err := s.repo.Update(ctx, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

func (s *attendanceService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if !actor.Can(entity.CapDeleteRecords) {
		return apperror.Forbidden("Only administrators can delete attendance records")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *attendanceService) LatePickups(ctx context.Context, dates commonDto.DateRangeQuery) (*dto.LatePickupReport, error) {
	start, end, err := dates.Resolve(s.today(), defaultHistoryDays)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListLatePickups(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &dto.LatePickupReport{
		DateRange:    commonDto.Range{StartDate: start, EndDate: end},
		TotalRecords: len(records),
		Records:      records,
	}
	if report.Records == nil {
		report.Records = []entity.Attendance{}
	}
	for _, r := range records {
		report.TotalBillableMinutes += r.LatePickupMinutes
		report.TotalFees += r.LatePickupFee
	}
	report.TotalFees = math.Round(report.TotalFees*100) / 100
	return report, nil
}
