package postgres

import (
	"fmt"

	"github.com/smartshelf/smartshelf/internal/constants"
	"github.com/smartshelf/smartshelf/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case constants.SettingExpiryReminders:
			settings.ExpiryReminders = value == "true"
		case constants.SettingExpiredAlerts:
			settings.ExpiredAlerts = value == "true"
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings %w", models.ErrNotFound)
	}

	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(constants.SettingExpiryReminders, fmt.Sprintf("%v", settings.ExpiryReminders)); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingExpiredAlerts, fmt.Sprintf("%v", settings.ExpiredAlerts)); err != nil {
		return err
	}

	return tx.Commit()
}
