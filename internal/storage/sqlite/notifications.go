package sqlite

import (
	"fmt"
	"time"

	"github.com/smartshelf/smartshelf/internal/models"
)

func (s *Store) RecordScheduled(n models.ScheduledNotification) error {
	_, err := s.db.Exec(`
		INSERT INTO scheduled_notifications (id, item_id, notification_id, kind, scheduled_for, repeats, is_cancelled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		n.ID, n.ItemID, n.NotificationID, string(n.Kind),
		n.ScheduledFor.Format(time.RFC3339), n.Repeats, n.Cancelled,
		n.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record scheduled notification: %w", err)
	}
	return nil
}

// MarkCancelled flags every log row carrying the notification id. Rows that
// are already cancelled, or ids never recorded, are not errors.
func (s *Store) MarkCancelled(notificationID string) error {
	_, err := s.db.Exec(`
		UPDATE scheduled_notifications SET is_cancelled = 1 WHERE notification_id = ?
	`, notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification cancelled: %w", err)
	}
	return nil
}

func (s *Store) GetNotificationLog(includeCancelled bool) ([]models.ScheduledNotification, error) {
	query := `
		SELECT id, item_id, notification_id, kind, scheduled_for, repeats, is_cancelled, created_at
		FROM scheduled_notifications
	`
	if !includeCancelled {
		query += " WHERE is_cancelled = 0"
	}
	query += " ORDER BY scheduled_for ASC"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification log: %w", err)
	}
	defer rows.Close()

	var log []models.ScheduledNotification
	for rows.Next() {
		var n models.ScheduledNotification
		var kind, scheduledStr, createdStr string
		if err := rows.Scan(
			&n.ID, &n.ItemID, &n.NotificationID, &kind,
			&scheduledStr, &n.Repeats, &n.Cancelled, &createdStr,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification log row: %w", err)
		}
		n.Kind = models.NotificationKind(kind)
		if n.ScheduledFor, err = time.Parse(time.RFC3339, scheduledStr); err != nil {
			return nil, fmt.Errorf("failed to parse scheduled_for: %w", err)
		}
		if n.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		log = append(log, n)
	}

	return log, rows.Err()
}

func (s *Store) RecordHistory(h models.NotificationHistory) error {
	var clickedStr *string
	if h.ClickedAt != nil {
		str := h.ClickedAt.Format(time.RFC3339)
		clickedStr = &str
	}

	_, err := s.db.Exec(`
		INSERT INTO notification_history (id, item_id, notification_id, kind, sent_at, was_clicked, clicked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		h.ID, h.ItemID, h.NotificationID, string(h.Kind),
		h.SentAt.Format(time.RFC3339), h.WasClicked, clickedStr,
	)
	if err != nil {
		return fmt.Errorf("failed to record notification history: %w", err)
	}
	return nil
}

func (s *Store) GetHistoryForItem(itemID string) ([]models.NotificationHistory, error) {
	rows, err := s.db.Query(`
		SELECT id, item_id, notification_id, kind, sent_at, was_clicked, clicked_at
		FROM notification_history
		WHERE item_id = ?
		ORDER BY sent_at DESC
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification history: %w", err)
	}
	defer rows.Close()

	var history []models.NotificationHistory
	for rows.Next() {
		var h models.NotificationHistory
		var kind, sentStr string
		var clickedStr *string
		if err := rows.Scan(&h.ID, &h.ItemID, &h.NotificationID, &kind, &sentStr, &h.WasClicked, &clickedStr); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		h.Kind = models.NotificationKind(kind)
		if h.SentAt, err = time.Parse(time.RFC3339, sentStr); err != nil {
			return nil, fmt.Errorf("failed to parse sent_at: %w", err)
		}
		if clickedStr != nil {
			clicked, err := time.Parse(time.RFC3339, *clickedStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse clicked_at: %w", err)
			}
			h.ClickedAt = &clicked
		}
		history = append(history, h)
	}

	return history, rows.Err()
}
