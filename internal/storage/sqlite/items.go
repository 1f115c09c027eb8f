package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/smartshelf/smartshelf/internal/constants"
	"github.com/smartshelf/smartshelf/internal/models"
)

func (s *Store) AddItem(item models.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO items (id, name, category, quantity, expiry_date, qr_code_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID, item.Name, item.Category, item.Quantity,
		item.ExpiryDate.Format(constants.DateFormat), item.QRCodeID,
		item.CreatedAt.Format(time.RFC3339), item.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	return nil
}

func (s *Store) GetItem(id string) (models.Item, error) {
	return s.getItemBy("id", id)
}

func (s *Store) GetItemByQRCode(qrCodeID string) (models.Item, error) {
	return s.getItemBy("qr_code_id", qrCodeID)
}

func (s *Store) getItemBy(column, value string) (models.Item, error) {
	var item models.Item
	var expiryStr, createdStr, updatedStr string

	err := s.db.QueryRow(fmt.Sprintf(`
		SELECT id, name, category, quantity, expiry_date, qr_code_id, created_at, updated_at
		FROM items
		WHERE %s = ?
	`, column), value).Scan(
		&item.ID, &item.Name, &item.Category, &item.Quantity,
		&expiryStr, &item.QRCodeID, &createdStr, &updatedStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, fmt.Errorf("item %w", models.ErrNotFound)
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to get item: %w", err)
	}

	return scanItemDates(item, expiryStr, createdStr, updatedStr)
}

func (s *Store) GetAllItems() ([]models.Item, error) {
	rows, err := s.db.Query(`
		SELECT id, name, category, quantity, expiry_date, qr_code_id, created_at, updated_at
		FROM items
		ORDER BY expiry_date ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var expiryStr, createdStr, updatedStr string
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Category, &item.Quantity,
			&expiryStr, &item.QRCodeID, &createdStr, &updatedStr,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item, err = scanItemDates(item, expiryStr, createdStr, updatedStr)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *Store) UpdateItem(item models.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	result, err := s.db.Exec(`
		UPDATE items
		SET name = ?, category = ?, quantity = ?, expiry_date = ?, updated_at = ?
		WHERE id = ?
	`,
		item.Name, item.Category, item.Quantity,
		item.ExpiryDate.Format(constants.DateFormat),
		item.UpdatedAt.Format(time.RFC3339), item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("item %w", models.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteItem(id string) error {
	result, err := s.db.Exec("DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("item %w", models.ErrNotFound)
	}
	return nil
}

func scanItemDates(item models.Item, expiryStr, createdStr, updatedStr string) (models.Item, error) {
	var err error
	// Expiry dates are calendar dates; UTC midnight keeps them
	// comparison-stable across backends.
	if item.ExpiryDate, err = time.Parse(constants.DateFormat, expiryStr); err != nil {
		return models.Item{}, fmt.Errorf("failed to parse expiry date: %w", err)
	}
	if item.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return models.Item{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if item.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return models.Item{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return item, nil
}
