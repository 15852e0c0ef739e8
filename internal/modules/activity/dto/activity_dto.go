package dto

import (
	"time"

	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
)

type CreateActivityInput struct {
	ChildID         uuid.UUID      `json:"child_id" binding:"required"`
	ActivityDate    *datetime.Date `json:"activity_date" binding:"required"`
	ActivityTime    *time.Time     `json:"activity_time" binding:"required"`
	ActivityType    string         `json:"activity_type" binding:"required"`
	ActivityName    string         `json:"activity_name" binding:"required,max=200"`
	Description     *string        `json:"description"`
	Mood            *string        `json:"mood"`
	DurationMinutes *int           `json:"duration_minutes" binding:"omitempty,min=0"`
	Notes           *string        `json:"notes"`
}

type UpdateActivityInput struct {
	ActivityDate    *datetime.Date `json:"activity_date"`
	ActivityTime    *time.Time     `json:"activity_time"`
	ActivityType    *string        `json:"activity_type"`
	ActivityName    *string        `json:"activity_name" binding:"omitempty,min=1,max=200"`
	Description     *string        `json:"description"`
	Mood            *string        `json:"mood"`
	DurationMinutes *int           `json:"duration_minutes" binding:"omitempty,min=0"`
	Notes           *string        `json:"notes"`
}

type ActivityFilter struct {
	commonDto.PageQuery
	ActivityDate string `form:"activity_date"`
	ChildID      string `form:"child_id" binding:"omitempty,uuid"`
	ActivityType string `form:"activity_type"`
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
}

// ActivityCriteria is ActivityFilter after parsing.
type ActivityCriteria struct {
	commonDto.PageQuery
	ActivityDate *datetime.Date
	ChildID      *uuid.UUID
	ActivityType string
	StartDate    *datetime.Date
	EndDate      *datetime.Date
}

type ActivitySummary struct {
	ChildID          uuid.UUID      `json:"child_id"`
	ChildName        string         `json:"child_name"`
	Date             datetime.Date  `json:"date"`
	TotalActivities  int            `json:"total_activities"`
	ActivitiesByType map[string]int `json:"activities_by_type"`
	Moods            []string       `json:"moods"`
	PredominantMood  *string        `json:"predominant_mood"`
	TotalNapDuration int            `json:"total_nap_duration"`
	MealCount        int            `json:"meal_count"`
	DiaperCount      int            `json:"diaper_count"`
}
