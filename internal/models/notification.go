package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/smartshelf/smartshelf/internal/constants"
)

// NotificationKind discriminates the one-shot pre-expiry reminder from the
// repeating post-expiry alert.
type NotificationKind string

const (
	KindExpiryReminder NotificationKind = "expiry-reminder"
	KindExpiredAlert   NotificationKind = "expired-alert"
)

func (k NotificationKind) Valid() bool {
	return k == KindExpiryReminder || k == KindExpiredAlert
}

// NotificationPayload is the payload registered with the host notification
// primitive and handed back on tap. The JSON field names are part of the
// host contract and must round-trip unchanged.
type NotificationPayload struct {
	ItemID     string           `json:"itemId"`
	ItemName   string           `json:"itemName"`
	ExpiryDate string           `json:"expiryDate"`
	Kind       NotificationKind `json:"type"`
}

func (p *NotificationPayload) Validate() error {
	if p.ItemID == "" {
		return fmt.Errorf("payload item id cannot be empty")
	}

	if !p.Kind.Valid() {
		return fmt.Errorf("unknown notification kind: %q", p.Kind)
	}

	if _, err := time.Parse(constants.DateFormat, p.ExpiryDate); err != nil {
		return fmt.Errorf("invalid payload expiry date (expected YYYY-MM-DD): %w", err)
	}

	return nil
}

// ParsePayload decodes and validates a payload once, at the host-callback
// boundary. Callers downstream may rely on the result being well-formed.
func ParsePayload(data []byte) (NotificationPayload, error) {
	var p NotificationPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return NotificationPayload{}, fmt.Errorf("failed to decode notification payload: %w", err)
	}
	if err := p.Validate(); err != nil {
		return NotificationPayload{}, err
	}
	return p, nil
}

// ScheduledNotification is the bookkeeping record for a trigger registered
// with the host. The host owns the live state; this log exists for
// cancellation bookkeeping and diagnostics.
type ScheduledNotification struct {
	ID             string           `json:"id"`
	ItemID         string           `json:"item_id"`
	NotificationID string           `json:"notification_id"`
	Kind           NotificationKind `json:"kind"`
	ScheduledFor   time.Time        `json:"scheduled_for"`
	Repeats        bool             `json:"repeats"`
	Cancelled      bool             `json:"cancelled"`
	CreatedAt      time.Time        `json:"created_at"`
}

// NotificationHistory records a delivered notification and whether the user
// tapped it.
type NotificationHistory struct {
	ID             string           `json:"id"`
	ItemID         string           `json:"item_id"`
	NotificationID string           `json:"notification_id"`
	Kind           NotificationKind `json:"kind"`
	SentAt         time.Time        `json:"sent_at"`
	WasClicked     bool             `json:"was_clicked"`
	ClickedAt      *time.Time       `json:"clicked_at,omitempty"`
}
