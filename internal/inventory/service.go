// Package inventory is the write path for tracked items. It owns the
// cascade between item mutations and their notifications: creation attempts
// both notification kinds, an expiry edit cancels stale triggers before
// rescheduling, and deletion cancels everything for the item.
package inventory

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/smartshelf/smartshelf/internal/logger"
	"github.com/smartshelf/smartshelf/internal/models"
	"github.com/smartshelf/smartshelf/internal/scheduler"
	"github.com/smartshelf/smartshelf/internal/storage"
)

type Service struct {
	store     storage.Provider
	scheduler *scheduler.Scheduler
	now       func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store storage.Provider, sched *scheduler.Scheduler, opts ...Option) *Service {
	s := &Service{
		store:     store,
		scheduler: sched,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateItem persists a new item and then attempts to schedule its
// notifications. The item write is the transactional boundary: scheduling
// failures are logged and never roll it back.
func (s *Service) CreateItem(ctx context.Context, name, category string, quantity int, expiryDate time.Time) (models.Item, error) {
	now := s.now()
	item := models.Item{
		ID:         uuid.NewString(),
		Name:       name,
		Category:   category,
		Quantity:   quantity,
		ExpiryDate: expiryDate,
		QRCodeID:   newQRCodeID(now),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.AddItem(item); err != nil {
		return models.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	if _, err := s.scheduler.ScheduleForItem(ctx, item); err != nil {
		logger.Warn("Failed to schedule notifications for new item", "item", item.Name, "error", err)
	}

	return item, nil
}

// UpdateItem persists edits to an existing item. An expiry change cancels
// the item's stale triggers and schedules fresh ones; triggers are never
// mutated in place.
func (s *Service) UpdateItem(ctx context.Context, item models.Item) (models.Item, error) {
	existing, err := s.store.GetItem(item.ID)
	if err != nil {
		return models.Item{}, err
	}

	expiryChanged := !existing.ExpiryDate.Equal(item.ExpiryDate)
	if expiryChanged {
		if err := s.scheduler.CancelAllForItem(ctx, item.ID); err != nil {
			logger.Warn("Failed to cancel stale notifications before expiry edit", "item", item.Name, "error", err)
		}
	}

	item.QRCodeID = existing.QRCodeID
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = s.now()
	if err := s.store.UpdateItem(item); err != nil {
		return models.Item{}, fmt.Errorf("failed to update item: %w", err)
	}

	if expiryChanged {
		if _, err := s.scheduler.ScheduleForItem(ctx, item); err != nil {
			logger.Warn("Failed to reschedule notifications after expiry edit", "item", item.Name, "error", err)
		}
	}

	return item, nil
}

// UpdateItemExpiry is the cancel-then-reschedule edit for just the expiry
// date.
func (s *Service) UpdateItemExpiry(ctx context.Context, id string, expiryDate time.Time) (models.Item, error) {
	item, err := s.store.GetItem(id)
	if err != nil {
		return models.Item{}, err
	}
	item.ExpiryDate = expiryDate
	return s.UpdateItem(ctx, item)
}

// DeleteItem cancels the item's notifications and removes it. The cascade
// cancel is attempted first so a half-finished delete leaves no orphaned
// triggers; cancel failure does not block the delete.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if err := s.scheduler.CancelAllForItem(ctx, id); err != nil {
		logger.Warn("Failed to cancel notifications for deleted item", "id", id, "error", err)
	}

	return s.store.DeleteItem(id)
}

func (s *Service) GetItem(id string) (models.Item, error) {
	return s.store.GetItem(id)
}

// GetByQRCode resolves a scanned QR code to its item.
func (s *Service) GetByQRCode(qrCodeID string) (models.Item, error) {
	return s.store.GetItemByQRCode(qrCodeID)
}

// List returns all items ordered soonest-expiring first.
func (s *Service) List() ([]models.Item, error) {
	return s.store.GetAllItems()
}

// newQRCodeID builds a `<timestamp>_<random>` id, both parts base36.
func newQRCodeID(now time.Time) string {
	timestamp := strconv.FormatInt(now.UnixMilli(), 36)
	random := strconv.FormatInt(rand.Int64N(1<<48), 36)
	return timestamp + "_" + random
}
