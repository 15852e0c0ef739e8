package dto

import (
	"time"

	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
)

type CreateIncidentInput struct {
	ChildID                  uuid.UUID       `json:"child_id" binding:"required"`
	IncidentDate             *datetime.Date  `json:"incident_date" binding:"required"`
	IncidentTime             *datetime.Clock `json:"incident_time" binding:"required"`
	IncidentType             string          `json:"incident_type" binding:"required"`
	Description              string          `json:"description" binding:"required"`
	Circumstances            *string         `json:"circumstances"`
	InjuryDescription        *string         `json:"injury_description"`
	BodyPartAffected         *string         `json:"body_part_affected" binding:"omitempty,max=100"`
	ActionTaken              string          `json:"action_taken" binding:"required"`
	Witnesses                *string         `json:"witnesses"`
	PhotoURL                 *string         `json:"photo_url" binding:"omitempty,max=500"`
	ParentNotified           bool            `json:"parent_notified"`
	ParentNotificationMethod *string         `json:"parent_notification_method"`
	DCFSNotificationRequired bool            `json:"dcfs_notification_required"`
	StaffSignatureURL        *string         `json:"staff_signature_url" binding:"omitempty,max=500"`
}

type UpdateIncidentInput struct {
	IncidentDate             *datetime.Date  `json:"incident_date"`
	IncidentTime             *datetime.Clock `json:"incident_time"`
	IncidentType             *string         `json:"incident_type"`
	Description              *string         `json:"description" binding:"omitempty,min=1"`
	Circumstances            *string         `json:"circumstances"`
	InjuryDescription        *string         `json:"injury_description"`
	BodyPartAffected         *string         `json:"body_part_affected" binding:"omitempty,max=100"`
	ActionTaken              *string         `json:"action_taken" binding:"omitempty,min=1"`
	Witnesses                *string         `json:"witnesses"`
	PhotoURL                 *string         `json:"photo_url" binding:"omitempty,max=500"`
	ParentNotified           *bool           `json:"parent_notified"`
	ParentNotificationMethod *string         `json:"parent_notification_method"`
	DCFSNotificationRequired *bool           `json:"dcfs_notification_required"`
	DCFSNotifiedAt           *time.Time      `json:"dcfs_notified_at"`
	StaffSignatureURL        *string         `json:"staff_signature_url" binding:"omitempty,max=500"`
}

type IncidentFilter struct {
	commonDto.PageQuery
	ChildID        string `form:"child_id" binding:"omitempty,uuid"`
	IncidentType   string `form:"incident_type"`
	StartDate      string `form:"start_date"`
	EndDate        string `form:"end_date"`
	ParentNotified *bool  `form:"parent_notified"`
	DCFSRequired   *bool  `form:"dcfs_required"`
}

// IncidentCriteria is IncidentFilter after parsing. A zero PageSize means unpaginated.
type IncidentCriteria struct {
	commonDto.PageQuery
	ChildID        *uuid.UUID
	IncidentType   string
	StartDate      *datetime.Date
	EndDate        *datetime.Date
	ParentNotified *bool
	DCFSRequired   *bool
	DCFSNotified   *bool
}

type PendingNotification struct {
	ReportID           uuid.UUID      `json:"report_id"`
	ChildID            uuid.UUID      `json:"child_id"`
	ChildName          string         `json:"child_name"`
	IncidentType       string         `json:"incident_type"`
	IncidentDate       datetime.Date  `json:"incident_date"`
	IncidentTime       datetime.Clock `json:"incident_time"`
	HoursSinceIncident float64        `json:"hours_since_incident"`
	Description        string         `json:"description"`
}

type DCFSReport struct {
	ReportID       uuid.UUID      `json:"report_id"`
	ChildID        uuid.UUID      `json:"child_id"`
	ChildName      string         `json:"child_name"`
	IncidentType   string         `json:"incident_type"`
	IncidentDate   datetime.Date  `json:"incident_date"`
	IncidentTime   datetime.Clock `json:"incident_time"`
	DCFSNotified   bool           `json:"dcfs_notified"`
	DCFSNotifiedAt *time.Time     `json:"dcfs_notified_at"`
	Description    string         `json:"description"`
}

type NotificationCounts struct {
	Notified int `json:"notified"`
	Pending  int `json:"pending"`
}

type DCFSCounts struct {
	Required  int `json:"required"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

type OpenRange struct {
	Start *datetime.Date `json:"start"`
	End   *datetime.Date `json:"end"`
}

type IncidentStatistics struct {
	TotalIncidents     int                `json:"total_incidents"`
	ByType             map[string]int     `json:"by_type"`
	ParentNotification NotificationCounts `json:"parent_notification"`
	DCFSNotification   DCFSCounts         `json:"dcfs_notification"`
	Injuries           int                `json:"injuries"`
	DateRange          OpenRange          `json:"date_range"`
}
