package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"bouncearound.com/daycare/internal/entity"
	activityDto "bouncearound.com/daycare/internal/modules/activity/dto"
	activityRepo "bouncearound.com/daycare/internal/modules/activity/repository"
	activityService "bouncearound.com/daycare/internal/modules/activity/service"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	parentRepo "bouncearound.com/daycare/internal/modules/parent/repository"
	photoRepo "bouncearound.com/daycare/internal/modules/photo/repository"
	"bouncearound.com/daycare/internal/modules/report/dto"
	"bouncearound.com/daycare/internal/modules/report/repository"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"bouncearound.com/daycare/pkg/llm"
	"bouncearound.com/daycare/pkg/mailer"
	"bouncearound.com/daycare/pkg/ratelimit"
	"bouncearound.com/daycare/pkg/validator"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	generateScope   = "report_generate"
	duplicateReport = "Daily report already exists for this child on this date"
)

type ReportService interface {
	Create(ctx context.Context, actor entity.Actor, input dto.CreateReportInput) (*entity.DailyReport, error)
	Generate(ctx context.Context, actor entity.Actor, input dto.GenerateReportInput) (*entity.DailyReport, error)
	List(ctx context.Context, filter dto.ReportFilter) (*commonDto.Paginated[entity.DailyReport], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.DailyReport, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateReportInput) (*entity.DailyReport, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
	Send(ctx context.Context, id uuid.UUID) (*dto.SendResult, error)
	AddPhoto(ctx context.Context, id, photoID uuid.UUID) ([]entity.Photo, error)
	ListPhotos(ctx context.Context, id uuid.UUID) ([]entity.Photo, error)
}

type Deps struct {
	Reports    repository.ReportRepository
	Children   childRepo.ChildRepository
	Activities activityRepo.ActivityRepository
	Parents    parentRepo.ParentRepository
	Photos     photoRepo.PhotoRepository
	// Generator may be nil; generation then answers 503.
	Generator llm.TextGenerator
	Mailer    mailer.Mailer
	Limiter   *ratelimit.Limiter
	Cooldown  time.Duration
}

type reportService struct {
	Deps
	now func() time.Time
}

func NewReportService(deps Deps) ReportService {
	return &reportService{Deps: deps, now: time.Now}
}

func validateMood(mood *string) error {
	if mood == nil || *mood == "" {
		return nil
	}
	return validator.OneOf("mood", *mood, entity.Moods)
}

func (s *reportService) Create(ctx context.Context, actor entity.Actor, input dto.CreateReportInput) (*entity.DailyReport, error) {
	if _, err := childRepo.Require(ctx, s.Children, input.ChildID); err != nil {
		return nil, err
	}
	if err := validateMood(input.OverallMood); err != nil {
		return nil, err
	}

	_, err := s.Reports.FindByChildAndDate(ctx, input.ChildID, *input.ReportDate)
	if err == nil {
		return nil, apperror.Conflict(duplicateReport)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	author := actor.ID
	report := &entity.DailyReport{
		ChildID:     input.ChildID,
		ReportDate:  *input.ReportDate,
		CustomNotes: input.CustomNotes,
		OverallMood: input.OverallMood,
		GeneratedBy: &author,
	}
	if err := s.Reports.Create(ctx, report); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict(duplicateReport)
		}
		return nil, err
	}
	return report, nil
}

func buildPrompt(summary activityDto.ActivitySummary, activities []entity.Activity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a warm, concise daily report (3-5 sentences) for the parents of %s about their day on %s.\n", summary.ChildName, summary.Date)
	b.WriteString("Use only the facts below. Do not invent events. Plain text, no headings.\n\n")
	fmt.Fprintf(&b, "Activities logged: %d\n", summary.TotalActivities)
	if summary.TotalNapDuration > 0 {
		fmt.Fprintf(&b, "Total nap time: %d minutes\n", summary.TotalNapDuration)
	}
	if summary.MealCount > 0 {
		fmt.Fprintf(&b, "Meals: %d\n", summary.MealCount)
	}
	if summary.PredominantMood != nil {
		fmt.Fprintf(&b, "Overall mood: %s\n", *summary.PredominantMood)
	}
	b.WriteString("\nTimeline:\n")
	for _, a := range activities {
		fmt.Fprintf(&b, "- %s %s: %s", a.ActivityTime.Format("15:04"), a.ActivityType, a.ActivityName)
		if a.Mood != nil {
			fmt.Fprintf(&b, " (mood: %s)", *a.Mood)
		}
		if a.Notes != nil && *a.Notes != "" {
			fmt.Fprintf(&b, ". Notes: %s", *a.Notes)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *reportService) Generate(ctx context.Context, actor entity.Actor, input dto.GenerateReportInput) (*entity.DailyReport, error) {
	child, err := childRepo.Require(ctx, s.Children, input.ChildID)
	if err != nil {
		return nil, err
	}
	if s.Generator == nil {
		return nil, apperror.Unavailable("Report generation is not configured", llm.ErrNotConfigured)
	}

	allowed, retryAfter, err := s.Limiter.Cooldown(ctx, generateScope, child.ID.String(), s.Cooldown)
	if err != nil {
		log.Warn().Err(err).Msg("report cooldown check failed, continuing")
	} else if !allowed {
		return nil, apperror.RateLimited(fmt.Sprintf("A report for this child was generated recently. Try again in %d seconds", int(retryAfter.Seconds())+1))
	}

	day := *input.ReportDate
	activities, err := s.Activities.ListForDay(ctx, child.ID, day)
	if err != nil {
		return nil, err
	}
	summary := activityService.Summarize(child, day, activities)

	text, err := s.Generator.GenerateText(ctx, buildPrompt(summary, activities))
	if err != nil {
		log.Error().Err(err).Str("child_id", child.ID.String()).Msg("report generation failed")
		return nil, apperror.Unavailable("Report generation failed", err)
	}
	text = strings.TrimSpace(text)

	raw, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	report, err := s.Reports.FindByChildAndDate(ctx, child.ID, day)
	creating := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !creating {
		return nil, err
	}
	if creating {
		report = &entity.DailyReport{ChildID: child.ID, ReportDate: day}
	}

	author := actor.ID
	report.AIGeneratedSummary = &text
	report.ActivitiesSummary = datatypes.JSON(raw)
	report.GeneratedBy = &author
	if report.OverallMood == nil && summary.PredominantMood != nil {
		report.OverallMood = summary.PredominantMood
	}

	if creating {
		err = s.Reports.Create(ctx, report)
	} else {
		err = s.Reports.Update(ctx, report)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("report_id", report.ID.String()).
		Str("child_id", child.ID.String()).
		Int("activities", summary.TotalActivities).
		Msg("daily report generated")
	return report, nil
}

func (s *reportService) List(ctx context.Context, filter dto.ReportFilter) (*commonDto.Paginated[entity.DailyReport], error) {
	filter.Normalize(20)
	c := dto.ReportCriteria{PageQuery: filter.PageQuery, SentToParents: filter.SentToParents}
	if filter.ChildID != "" {
		id, err := uuid.Parse(filter.ChildID)
		if err != nil {
			return nil, apperror.InvalidInput("invalid child_id")
		}
		c.ChildID = &id
	}
	var err error
	if c.ReportDate, err = datetime.ParseOptionalDate(filter.ReportDate); err != nil {
		return nil, apperror.InvalidInput(err.Error())
	}

	reports, total, err := s.Reports.List(ctx, c)
	if err != nil {
		return nil, err
	}
	return commonDto.NewPaginated(reports, filter.PageQuery, total), nil
}

func (s *reportService) Get(ctx context.Context, id uuid.UUID) (*entity.DailyReport, error) {
	report, err := s.Reports.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Daily report with ID %s not found", id))
		}
		return nil, err
	}
	return report, nil
}

func (s *reportService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateReportInput) (*entity.DailyReport, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateMood(input.OverallMood); err != nil {
		return nil, err
	}

	if input.AIGeneratedSummary != nil {
		report.AIGeneratedSummary = input.AIGeneratedSummary
	}
	if input.CustomNotes != nil {
		report.CustomNotes = input.CustomNotes
	}
	if input.OverallMood != nil {
		report.OverallMood = input.OverallMood
	}

	if err := s.Reports.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if !actor.Can(entity.CapDeleteRecords) {
		return apperror.Forbidden("Only administrators can delete daily reports")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.Reports.Delete(ctx, id)
}

func reportBody(child *entity.Child, report *entity.DailyReport) string {
	var parts []string
	if report.AIGeneratedSummary != nil && *report.AIGeneratedSummary != "" {
		parts = append(parts, *report.AIGeneratedSummary)
	}
	if report.CustomNotes != nil && *report.CustomNotes != "" {
		parts = append(parts, "Notes from our staff:\n"+*report.CustomNotes)
	}
	if len(parts) == 0 {
		return ""
	}
	if report.OverallMood != nil && *report.OverallMood != "" {
		parts = append(parts, fmt.Sprintf("Overall mood: %s", *report.OverallMood))
	}
	return fmt.Sprintf("Daily report for %s, %s\n\n%s\n", child.FullName(), report.ReportDate, strings.Join(parts, "\n\n"))
}

func (s *reportService) Send(ctx context.Context, id uuid.UUID) (*dto.SendResult, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	child, err := childRepo.Require(ctx, s.Children, report.ChildID)
	if err != nil {
		return nil, err
	}

	body := reportBody(child, report)
	if body == "" {
		return nil, apperror.BadRequest("Report has no content to send")
	}

	links, err := s.Parents.FindLinksByChild(ctx, child.ID)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Daily report for %s (%s)", child.FirstName, report.ReportDate)
	deliveries := []dto.Delivery{}
	delivered := 0
	for _, link := range links {
		if link.Parent == nil || link.Parent.Email == nil || *link.Parent.Email == "" {
			continue
		}
		d := dto.Delivery{ParentID: link.ParentID, Email: *link.Parent.Email}
		if err := s.Mailer.Send(ctx, d.Email, subject, body); err != nil {
			log.Warn().Err(err).Str("report_id", report.ID.String()).Str("parent_id", d.ParentID.String()).Msg("report delivery failed")
			d.Error = err.Error()
		} else {
			d.Delivered = true
			delivered++
		}
		deliveries = append(deliveries, d)
	}

	if delivered > 0 {
		now := s.now()
		report.SentToParents = true
		report.SentAt = &now
		if err := s.Reports.Update(ctx, report); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("report_id", report.ID.String()).
		Int("recipients", len(deliveries)).
		Int("delivered", delivered).
		Msg("daily report sent")
	return &dto.SendResult{Report: report, Deliveries: deliveries}, nil
}

func (s *reportService) AddPhoto(ctx context.Context, id, photoID uuid.UUID) ([]entity.Photo, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.Photos.FindByID(ctx, photoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Photo with ID %s not found", photoID))
		}
		return nil, err
	}

	if err := s.Reports.AddPhoto(ctx, &entity.ReportPhoto{ReportID: id, PhotoID: photoID}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Photo is already attached to this report")
		}
		return nil, err
	}
	return s.Reports.ListPhotos(ctx, id)
}

func (s *reportService) ListPhotos(ctx context.Context, id uuid.UUID) ([]entity.Photo, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.Reports.ListPhotos(ctx, id)
}
