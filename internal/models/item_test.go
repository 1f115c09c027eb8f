package models

import (
	"testing"
	"time"
)

func TestItem_Validate(t *testing.T) {
	expiry := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{
			name: "valid item",
			item: Item{
				ID:         "test-id",
				Name:       "Milk",
				Category:   "Dairy",
				Quantity:   1,
				ExpiryDate: expiry,
			},
			wantErr: false,
		},
		{
			name: "empty name",
			item: Item{
				Name:       "  ",
				Category:   "Dairy",
				Quantity:   1,
				ExpiryDate: expiry,
			},
			wantErr: true,
		},
		{
			name: "unknown category",
			item: Item{
				Name:       "Milk",
				Category:   "Electronics",
				Quantity:   1,
				ExpiryDate: expiry,
			},
			wantErr: true,
		},
		{
			name: "zero quantity",
			item: Item{
				Name:       "Milk",
				Category:   "Dairy",
				Quantity:   0,
				ExpiryDate: expiry,
			},
			wantErr: true,
		},
		{
			name: "missing expiry date",
			item: Item{
				Name:     "Milk",
				Category: "Dairy",
				Quantity: 1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = false", c)
		}
	}
	if ValidCategory("dairy") {
		t.Error("ValidCategory is case-sensitive; lowercase should be rejected")
	}
}
