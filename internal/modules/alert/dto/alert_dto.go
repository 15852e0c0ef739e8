package dto

import (
	"bouncearound.com/daycare/internal/entity"
	"github.com/google/uuid"
)

type AlertFilter struct {
	IsResolved *bool  `form:"is_resolved"`
	Severity   string `form:"severity"`
	AlertType  string `form:"alert_type"`
}

// AlertKey identifies an alert for de-duplication.
type AlertKey struct {
	AlertType string
	EntityID  uuid.UUID
}

type ScanResult struct {
	Created        int                      `json:"created"`
	Skipped        int                      `json:"skipped"`
	RefreshedFlags int64                    `json:"refreshed_flags"`
	Alerts         []entity.ComplianceAlert `json:"alerts"`
}
