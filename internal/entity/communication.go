package entity

import (
	"time"

	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DailyReport struct {
	Base
	ChildID            uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_report_child_date" json:"child_id"`
	ReportDate         datetime.Date  `gorm:"not null;uniqueIndex:idx_report_child_date;index" json:"report_date"`
	AIGeneratedSummary *string        `gorm:"column:ai_generated_summary;type:text" json:"ai_generated_summary"`
	CustomNotes        *string        `gorm:"type:text" json:"custom_notes"`
	OverallMood        *string        `gorm:"size:50" json:"overall_mood"`
	SentToParents      bool           `gorm:"not null;index" json:"sent_to_parents"`
	SentAt             *time.Time     `json:"sent_at"`
	ActivitiesSummary  datatypes.JSON `json:"activities_summary"`
	GeneratedBy        *uuid.UUID     `gorm:"type:uuid" json:"generated_by"`

	Child *Child `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type ReportPhoto struct {
	Base
	ReportID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_report_photo" json:"report_id"`
	PhotoID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_report_photo;index" json:"photo_id"`

	Report *DailyReport `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Photo  *Photo       `gorm:"constraint:OnDelete:CASCADE" json:"photo,omitempty"`
}

type AnnouncementPriority string

const (
	PriorityLow    AnnouncementPriority = "low"
	PriorityNormal AnnouncementPriority = "normal"
	PriorityHigh   AnnouncementPriority = "high"
	PriorityUrgent AnnouncementPriority = "urgent"
)

var AnnouncementPriorities = []AnnouncementPriority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}

type Announcement struct {
	Base
	Title            string               `gorm:"size:255;not null" json:"title"`
	Content          string               `gorm:"type:text;not null" json:"content"`
	AnnouncementDate datetime.Date        `gorm:"not null;index" json:"announcement_date"`
	Priority         AnnouncementPriority `gorm:"size:20;not null;index" json:"priority"`
	IsActive         bool                 `gorm:"not null;index" json:"is_active"`
	CreatedBy        uuid.UUID            `gorm:"type:uuid;not null" json:"created_by"`
}

type Photo struct {
	Base
	PhotoURL   string        `gorm:"size:500;not null" json:"photo_url"`
	PhotoDate  datetime.Date `gorm:"not null;index" json:"photo_date"`
	PhotoTime  time.Time     `gorm:"not null" json:"photo_time"`
	Caption    *string       `gorm:"type:text" json:"caption"`
	UploadedBy uuid.UUID     `gorm:"type:uuid;not null" json:"uploaded_by"`

	Children []ChildPhoto `gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE" json:"children,omitempty"`
}

type ChildPhoto struct {
	Base
	PhotoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_child_photo" json:"photo_id"`
	ChildID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_child_photo;index" json:"child_id"`

	Child *Child `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Notification struct {
	Base
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type       string     `gorm:"size:50;not null" json:"type"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	Message    string     `gorm:"type:text" json:"message"`
	EntityType string     `gorm:"size:50" json:"entity_type"`
	EntityID   *uuid.UUID `gorm:"type:uuid" json:"entity_id"`
	IsRead     bool       `gorm:"not null;index" json:"is_read"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
