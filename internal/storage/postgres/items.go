package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/smartshelf/smartshelf/internal/models"
)

func (s *Store) AddItem(item models.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO items (id, name, category, quantity, expiry_date, qr_code_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		item.ID, item.Name, item.Category, item.Quantity,
		item.ExpiryDate, item.QRCodeID, item.CreatedAt, item.UpdatedAt,
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

	err := s.db.QueryRow(fmt.Sprintf(`
		SELECT id, name, category, quantity, expiry_date, qr_code_id, created_at, updated_at
		FROM items
		WHERE %s = $1
	`, column), value).Scan(
		&item.ID, &item.Name, &item.Category, &item.Quantity,
		&item.ExpiryDate, &item.QRCodeID, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, fmt.Errorf("item %w", models.ErrNotFound)
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
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
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Category, &item.Quantity,
			&item.ExpiryDate, &item.QRCodeID, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
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
		SET name = $1, category = $2, quantity = $3, expiry_date = $4, updated_at = $5
		WHERE id = $6
	`,
		item.Name, item.Category, item.Quantity, item.ExpiryDate, item.UpdatedAt, item.ID,
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
	result, err := s.db.Exec("DELETE FROM items WHERE id = $1", id)
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
