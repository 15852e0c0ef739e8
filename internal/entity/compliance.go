package entity

import (
	"time"

	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EnrollmentForm struct {
	Base
	ChildID            uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"child_id"`
	EnrollmentDate     datetime.Date  `gorm:"not null" json:"enrollment_date"`
	ParentSignatureURL *string        `gorm:"size:500" json:"parent_signature_url"`
	ParentSignedAt     *time.Time     `json:"parent_signed_at"`
	StaffSignatureURL  *string        `gorm:"size:500" json:"staff_signature_url"`
	StaffSignedAt      *time.Time     `json:"staff_signed_at"`
	FormData           datatypes.JSON `json:"form_data"`
	IsComplete         bool           `gorm:"not null;index" json:"is_complete"`
	CompletedBy        *uuid.UUID     `gorm:"type:uuid" json:"completed_by"`

	Child *Child `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type ImmunizationRecord struct {
	Base
	ChildID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"child_id"`
	VaccineName        string         `gorm:"size:200;not null" json:"vaccine_name"`
	AdministrationDate datetime.Date  `gorm:"not null" json:"administration_date"`
	ExpirationDate     *datetime.Date `gorm:"index" json:"expiration_date"`
	DocumentURL        *string        `gorm:"size:500" json:"document_url"`
	ProviderName       *string        `gorm:"size:200" json:"provider_name"`
	Notes              *string        `gorm:"type:text" json:"notes"`
	IsVerified         bool           `gorm:"not null" json:"is_verified"`
	IsExpired          bool           `gorm:"not null;index" json:"is_expired"`

	Child *Child `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type CredentialType string

const (
	CredentialCPR              CredentialType = "CPR"
	CredentialFirstAid         CredentialType = "First Aid"
	CredentialBackgroundCheck  CredentialType = "Background Check"
	CredentialTBTest           CredentialType = "TB Test"
	CredentialDCFSTraining     CredentialType = "DCFS Training"
	CredentialFingerprinting   CredentialType = "Fingerprinting"
	CredentialMandatedReporter CredentialType = "Mandated Reporter"
)

var CredentialTypes = []CredentialType{
	CredentialCPR,
	CredentialFirstAid,
	CredentialBackgroundCheck,
	CredentialTBTest,
	CredentialDCFSTraining,
	CredentialFingerprinting,
	CredentialMandatedReporter,
}

type StaffCredential struct {
	Base
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CredentialType   CredentialType `gorm:"size:100;not null;index" json:"credential_type"`
	CredentialNumber *string        `gorm:"size:100" json:"credential_number"`
	IssueDate        datetime.Date  `gorm:"not null" json:"issue_date"`
	ExpirationDate   *datetime.Date `gorm:"index" json:"expiration_date"`
	DocumentURL      *string        `gorm:"size:500" json:"document_url"`
	IsVerified       bool           `gorm:"not null" json:"is_verified"`
	IsExpired        bool           `gorm:"not null;index" json:"is_expired"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// ExpiredOn is the persisted expiry rule: a record is expired once its
// expiration date is strictly before the given day.
func ExpiredOn(expiration *datetime.Date, today datetime.Date) bool {
	return expiration != nil && expiration.Before(today)
}

type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

var AlertSeverities = []AlertSeverity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

const (
	AlertExpiringCredential   = "expiring_credential"
	AlertExpiredCredential    = "expired_credential"
	AlertExpiringImmunization = "expiring_immunization"
	AlertIncompleteForm       = "incomplete_form"
	AlertMissingContacts      = "missing_emergency_contacts"
)

const (
	AlertEntityChild    = "child"
	AlertEntityStaff    = "staff"
	AlertEntityDocument = "document"
)

type ComplianceAlert struct {
	Base
	AlertType   string         `gorm:"size:100;not null;index" json:"alert_type"`
	EntityType  string         `gorm:"size:50;not null;index" json:"entity_type"`
	EntityID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"entity_id"`
	Description string         `gorm:"type:text;not null" json:"description"`
	DueDate     *datetime.Date `gorm:"index" json:"due_date"`
	Severity    AlertSeverity  `gorm:"size:20;not null;index" json:"severity"`
	IsResolved  bool           `gorm:"not null;index" json:"is_resolved"`
	ResolvedAt  *time.Time     `json:"resolved_at"`
}
