package models

import (
	"fmt"
	"strings"
	"time"
)

// Categories is the closed set of item categories.
var Categories = []string{
	"Dairy",
	"Meat",
	"Vegetables",
	"Fruits",
	"Grains",
	"Beverages",
	"Snacks",
	"Frozen",
	"Other",
}

// Item is a tracked inventory item. ExpiryDate is a calendar date with no
// time component.
type Item struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Quantity   int       `json:"quantity"`
	ExpiryDate time.Time `json:"expiry_date"`
	QRCodeID   string    `json:"qr_code_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("item name cannot be empty")
	}

	if !ValidCategory(i.Category) {
		return fmt.Errorf("invalid category: %s (must be one of %s)", i.Category, strings.Join(Categories, ", "))
	}

	if i.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	if i.ExpiryDate.IsZero() {
		return fmt.Errorf("expiry date cannot be empty")
	}

	return nil
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
