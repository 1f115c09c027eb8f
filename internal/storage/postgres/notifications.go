package postgres

import (
	"fmt"

	"github.com/smartshelf/smartshelf/internal/models"
)

func (s *Store) RecordScheduled(n models.ScheduledNotification) error {
	_, err := s.db.Exec(`
		INSERT INTO scheduled_notifications (id, item_id, notification_id, kind, scheduled_for, repeats, is_cancelled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		n.ID, n.ItemID, n.NotificationID, string(n.Kind),
		n.ScheduledFor, n.Repeats, n.Cancelled, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record scheduled notification: %w", err)
	}
	return nil
}

func (s *Store) MarkCancelled(notificationID string) error {
	_, err := s.db.Exec(`
		UPDATE scheduled_notifications SET is_cancelled = TRUE WHERE notification_id = $1
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
		query += " WHERE is_cancelled = FALSE"
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
		var kind string
		if err := rows.Scan(
			&n.ID, &n.ItemID, &n.NotificationID, &kind,
			&n.ScheduledFor, &n.Repeats, &n.Cancelled, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification log row: %w", err)
		}
		n.Kind = models.NotificationKind(kind)
		log = append(log, n)
	}

	return log, rows.Err()
}

func (s *Store) RecordHistory(h models.NotificationHistory) error {
	_, err := s.db.Exec(`
		INSERT INTO notification_history (id, item_id, notification_id, kind, sent_at, was_clicked, clicked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		h.ID, h.ItemID, h.NotificationID, string(h.Kind),
		h.SentAt, h.WasClicked, h.ClickedAt,
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
		WHERE item_id = $1
		ORDER BY sent_at DESC
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification history: %w", err)
	}
	defer rows.Close()

	var history []models.NotificationHistory
	for rows.Next() {
		var h models.NotificationHistory
		var kind string
		if err := rows.Scan(&h.ID, &h.ItemID, &h.NotificationID, &kind, &h.SentAt, &h.WasClicked, &h.ClickedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		h.Kind = models.NotificationKind(kind)
		history = append(history, h)
	}

	return history, rows.Err()
}
