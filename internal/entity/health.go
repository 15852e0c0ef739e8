package entity

import (
	"time"

	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
)

type IncidentType string

const (
	IncidentInjury     IncidentType = "injury"
	IncidentIllness    IncidentType = "illness"
	IncidentBehavioral IncidentType = "behavioral"
	IncidentAccident   IncidentType = "accident"
	IncidentOther      IncidentType = "other"
)

var IncidentTypes = []IncidentType{IncidentInjury, IncidentIllness, IncidentBehavioral, IncidentAccident, IncidentOther}

type NotificationMethod string

const (
	NotifyPhone    NotificationMethod = "phone"
	NotifyEmail    NotificationMethod = "email"
	NotifyInPerson NotificationMethod = "in-person"
	NotifySMS      NotificationMethod = "sms"
)

var NotificationMethods = []NotificationMethod{NotifyPhone, NotifyEmail, NotifyInPerson, NotifySMS}

type IncidentReport struct {
	Base
	ChildID                  uuid.UUID           `gorm:"type:uuid;not null;index" json:"child_id"`
	IncidentDate             datetime.Date       `gorm:"not null;index" json:"incident_date"`
	IncidentTime             datetime.Clock      `gorm:"not null" json:"incident_time"`
	IncidentType             IncidentType        `gorm:"size:50;not null;index" json:"incident_type"`
	Description              string              `gorm:"type:text;not null" json:"description"`
	Circumstances            *string             `gorm:"type:text" json:"circumstances"`
	InjuryDescription        *string             `gorm:"type:text" json:"injury_description"`
	BodyPartAffected         *string             `gorm:"size:100" json:"body_part_affected"`
	ActionTaken              string              `gorm:"type:text;not null" json:"action_taken"`
	Witnesses                *string             `gorm:"type:text" json:"witnesses"`
	PhotoURL                 *string             `gorm:"size:500" json:"photo_url"`
	ParentNotified           bool                `gorm:"not null;index" json:"parent_notified"`
	ParentNotifiedAt         *time.Time          `json:"parent_notified_at"`
	ParentNotificationMethod *NotificationMethod `gorm:"size:50" json:"parent_notification_method"`
	DCFSNotificationRequired bool                `gorm:"column:dcfs_notification_required;not null;index" json:"dcfs_notification_required"`
	DCFSNotifiedAt           *time.Time          `gorm:"column:dcfs_notified_at" json:"dcfs_notified_at"`
	StaffSignatureURL        *string             `gorm:"size:500" json:"staff_signature_url"`
	StaffSignedAt            *time.Time          `json:"staff_signed_at"`
	ReportedBy               uuid.UUID           `gorm:"type:uuid;not null" json:"reported_by"`

	Child *Child `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type MedicationAuthorization struct {
	Base
	ChildID                    uuid.UUID      `gorm:"type:uuid;not null;index" json:"child_id"`
	MedicationName             string         `gorm:"size:200;not null" json:"medication_name"`
	Dosage                     string         `gorm:"size:100;not null" json:"dosage"`
	Frequency                  string         `gorm:"size:100;not null" json:"frequency"`
	AdministrationInstructions *string        `gorm:"type:text" json:"administration_instructions"`
	StartDate                  datetime.Date  `gorm:"not null;index" json:"start_date"`
	EndDate                    *datetime.Date `gorm:"index" json:"end_date"`
	PrescribingDoctor          *string        `gorm:"size:200" json:"prescribing_doctor"`
	ParentSignatureURL         string         `gorm:"size:500;not null" json:"parent_signature_url"`
	ParentSignedAt             time.Time      `gorm:"not null" json:"parent_signed_at"`
	IsActive                   bool           `gorm:"not null;index" json:"is_active"`

	Child *Child `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// ValidOn reports whether d falls in [StartDate, EndDate], with an open end when EndDate is nil.
func (m *MedicationAuthorization) ValidOn(d datetime.Date) bool {
	if d.Before(m.StartDate) {
		return false
	}
	return m.EndDate == nil || !d.After(*m.EndDate)
}

type MedicationLog struct {
	Base
	ChildID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"child_id"`
	AuthorizationID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"authorization_id"`
	AdministrationDate datetime.Date  `gorm:"not null;index" json:"administration_date"`
	AdministrationTime datetime.Clock `gorm:"not null" json:"administration_time"`
	DosageGiven        string         `gorm:"size:100;not null" json:"dosage_given"`
	StaffSignatureURL  string         `gorm:"size:500;not null" json:"staff_signature_url"`
	AdministeredBy     uuid.UUID      `gorm:"type:uuid;not null" json:"administered_by"`
	Notes              *string        `gorm:"type:text" json:"notes"`
	ParentNotified     bool           `gorm:"not null" json:"parent_notified"`

	Child         *Child                   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Authorization *MedicationAuthorization `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
