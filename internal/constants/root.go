package constants

import "time"

const (
	AppName           = "smartshelf"
	Version           = "v0.2.0"
	DefaultConfigPath = "~/.config/smartshelf/smartshelf.db"

	// Keyring entries
	KeyringSessionUser  = "session-token"
	KeyringDatabaseUser = "database-connection"

	// DateFormat is the calendar-date format used for expiry dates (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ReminderLeadDays is how many days before expiry the one-shot reminder fires.
	ReminderLeadDays = 3

	// NearExpiryThresholdDays is the inclusive upper bound of the near-expiry band.
	NearExpiryThresholdDays = 3

	// ExpiredAlertInterval is the cadence of the repeating expired alert.
	ExpiredAlertInterval = 24 * time.Hour

	// Notification agent discovery
	AgentIdentifier   = "smartshelf-agent"
	AgentLockfileName = "agent.lock"

	// DefaultChannelName is the notification channel configured after the
	// first permission grant, on hosts that require one.
	DefaultChannelName = "default"
)
