package dto

type Summary struct {
	ActiveChildren             int64 `json:"active_children"`
	CheckedInToday             int64 `json:"checked_in_today"`
	CheckedOutToday            int64 `json:"checked_out_today"`
	LatePickupsToday           int64 `json:"late_pickups_today"`
	PendingParentNotifications int64 `json:"pending_parent_notifications"`
	PendingDCFSNotifications   int64 `json:"pending_dcfs_notifications"`
	ExpiringCredentials30d     int64 `json:"expiring_credentials_30d"`
	ExpiredCredentials         int64 `json:"expired_credentials"`
	ExpiringImmunizations30d   int64 `json:"expiring_immunizations_30d"`
	IncompleteEnrollmentForms  int64 `json:"incomplete_enrollment_forms"`
	UnresolvedAlerts           int64 `json:"unresolved_alerts"`
}
