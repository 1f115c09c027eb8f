package constants

const (
	// Notification settings keys
	SettingExpiryReminders = "expiry_reminders_enabled"
	SettingExpiredAlerts   = "expired_alerts_enabled"

	// Default settings values
	DefaultExpiryReminders = true
	DefaultExpiredAlerts   = true
)
