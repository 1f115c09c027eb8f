package expiry

import (
	"fmt"
	"time"

	"github.com/smartshelf/smartshelf/internal/constants"
)

// Status is the freshness classification of an item relative to its expiry date.
type Status string

const (
	StatusSafe       Status = "safe"
	StatusNearExpiry Status = "near-expiry"
	StatusExpired    Status = "expired"
)

// Label returns the display text for the status.
func (s Status) Label() string {
	switch s {
	case StatusExpired:
		return "Expired"
	case StatusNearExpiry:
		return "Near Expiry"
	default:
		return "Safe"
	}
}

// Color returns the severity hint for the status as a hex color.
func (s Status) Color() string {
	switch s {
	case StatusExpired:
		return "#f44336"
	case StatusNearExpiry:
		return "#ff9800"
	default:
		return "#4caf50"
	}
}

// Classification is derived from (now, expiry) on every read and never persisted.
type Classification struct {
	Status          Status
	DaysUntilExpiry int
	Message         string
}

// DaysUntil returns the number of calendar days from now until the start of
// the expiry date, rounded up. An item expiring today yields 0; negative
// values mean the item is already expired.
func DaysUntil(now, expiry time.Time) int {
	startOfDay := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, now.Location())
	diff := startOfDay.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// Classify maps a reference instant and an expiry date to a freshness status,
// signed day count, and human-readable countdown message.
func Classify(now, expiry time.Time) Classification {
	days := DaysUntil(now, expiry)

	c := Classification{
		DaysUntilExpiry: days,
		Message:         message(days),
	}

	switch {
	case days < 0:
		c.Status = StatusExpired
	case days <= constants.NearExpiryThresholdDays:
		c.Status = StatusNearExpiry
	default:
		c.Status = StatusSafe
	}

	return c
}

func message(days int) string {
	switch {
	case days < 0:
		n := -days
		if n == 1 {
			return "Expired 1 day ago"
		}
		return fmt.Sprintf("Expired %d days ago", n)
	case days == 0:
		return "Expires today!"
	case days == 1:
		return "Expires tomorrow"
	default:
		// Days two and three read the same as farther-out dates even though
		// they sit inside the near-expiry band.
		return fmt.Sprintf("Expires in %d days", days)
	}
}
