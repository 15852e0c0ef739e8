package entity

import (
	"time"

	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
)

type Attendance struct {
	Base
	ChildID              uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_child_date" json:"child_id"`
	AttendanceDate       datetime.Date   `gorm:"not null;uniqueIndex:idx_attendance_child_date;index" json:"attendance_date"`
	CheckInTime          datetime.Clock  `gorm:"not null" json:"check_in_time"`
	CheckInByName        string          `gorm:"size:200;not null" json:"check_in_by_name"`
	CheckInSignatureURL  *string         `gorm:"size:500" json:"check_in_signature_url"`
	CheckOutTime         *datetime.Clock `json:"check_out_time"`
	CheckOutByName       *string         `gorm:"size:200" json:"check_out_by_name"`
	CheckOutSignatureURL *string         `gorm:"size:500" json:"check_out_signature_url"`
	IsLatePickup         bool            `gorm:"not null;index" json:"is_late_pickup"`
	LatePickupMinutes    int             `gorm:"not null" json:"late_pickup_minutes"`
	LatePickupFee        float64         `gorm:"not null" json:"late_pickup_fee"`
	Notes                *string         `gorm:"type:text" json:"notes"`
	RecordedBy           uuid.UUID       `gorm:"type:uuid;not null" json:"recorded_by"`

	Child *Child `gorm:"constraint:OnDelete:CASCADE" json:"child,omitempty"`
}

func (a *Attendance) CheckedOut() bool {
	return a.CheckOutTime != nil
}

type ActivityType string

const (
	ActivityMeal     ActivityType = "meal"
	ActivityNap      ActivityType = "nap"
	ActivityDiaper   ActivityType = "diaper"
	ActivityPlay     ActivityType = "play"
	ActivityLearning ActivityType = "learning"
	ActivityOutdoor  ActivityType = "outdoor"
)

var ActivityTypes = []ActivityType{ActivityMeal, ActivityNap, ActivityDiaper, ActivityPlay, ActivityLearning, ActivityOutdoor}

type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodEnergetic Mood = "energetic"
	MoodTired     Mood = "tired"
	MoodCranky    Mood = "cranky"
	MoodNeutral   Mood = "neutral"
)

var Moods = []Mood{MoodHappy, MoodSad, MoodEnergetic, MoodTired, MoodCranky, MoodNeutral}

type Activity struct {
	Base
	ChildID         uuid.UUID     `gorm:"type:uuid;not null;index" json:"child_id"`
	ActivityDate    datetime.Date `gorm:"not null;index" json:"activity_date"`
	ActivityTime    time.Time     `gorm:"not null" json:"activity_time"`
	ActivityType    ActivityType  `gorm:"size:50;not null;index" json:"activity_type"`
	ActivityName    string        `gorm:"size:200;not null" json:"activity_name"`
	Description     *string       `gorm:"type:text" json:"description"`
	Mood            *Mood         `gorm:"size:50" json:"mood"`
	DurationMinutes *int          `json:"duration_minutes"`
	Notes           *string       `gorm:"type:text" json:"notes"`
	LoggedBy        uuid.UUID     `gorm:"type:uuid;not null" json:"logged_by"`

	Child *Child `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
