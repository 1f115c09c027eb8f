package models

// Settings holds the persisted notification preferences. Each boolean
// governs whether new notifications of its kind may be scheduled; flipping
// one off also bulk-cancels existing notifications of that kind.
type Settings struct {
	ExpiryReminders bool `json:"expiry_reminders"`
	ExpiredAlerts   bool `json:"expired_alerts"`
}

// DefaultSettings returns the out-of-the-box preferences: both notification
// kinds enabled.
func DefaultSettings() Settings {
	return Settings{
		ExpiryReminders: true,
		ExpiredAlerts:   true,
	}
}

// EnabledFor reports whether scheduling is permitted for the given kind.
func (s Settings) EnabledFor(kind NotificationKind) bool {
	switch kind {
	case KindExpiryReminder:
		return s.ExpiryReminders
	case KindExpiredAlert:
		return s.ExpiredAlerts
	default:
		return false
	}
}
