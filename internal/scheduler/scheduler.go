// Package scheduler orchestrates expiry notifications: it computes trigger
// times from an item's expiry date, registers them with the notification
// host, and exposes the cancel operations that item edits, settings toggles,
// and sign-out rely on.
//
// Scheduling is best-effort: the item write path never fails because a
// notification could not be registered. The scheduler holds no cache of
// scheduled notifications; every query re-reads the host.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartshelf/smartshelf/internal/constants"
	"github.com/smartshelf/smartshelf/internal/logger"
	"github.com/smartshelf/smartshelf/internal/models"
	"github.com/smartshelf/smartshelf/internal/notify"
	"github.com/smartshelf/smartshelf/internal/settings"
	"github.com/smartshelf/smartshelf/internal/storage"
)

const (
	reminderTitle = "🕒 Expiry Reminder"
	alertTitle    = "⚠️ Item Expired"
)

type Scheduler struct {
	host     notify.Host
	store    storage.Provider
	settings *settings.Service
	now      func() time.Time

	mu                sync.Mutex
	permissionGranted bool
}

type Option func(*Scheduler)

// WithClock overrides the time source. Tests pin it to a fixed instant.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func New(host notify.Host, store storage.Provider, settingsSvc *settings.Service, opts ...Option) *Scheduler {
	s := &Scheduler{
		host:     host,
		store:    store,
		settings: settingsSvc,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubscribeSettings registers the scheduler on the settings service so that
// flipping a kind off bulk-cancels its existing notifications.
func (s *Scheduler) SubscribeSettings() {
	s.settings.Subscribe(func(old, updated models.Settings) {
		ctx := context.Background()
		for _, kind := range []models.NotificationKind{models.KindExpiryReminder, models.KindExpiredAlert} {
			if old.EnabledFor(kind) && !updated.EnabledFor(kind) {
				if err := s.CancelAllOfKind(ctx, kind); err != nil {
					logger.Error("Failed to cancel notifications after settings change", "kind", kind, "error", err)
				}
			}
		}
	})
}

// RequestPermission asks the host for notification permission, caching a
// grant for the process lifetime. Denial and host failure both report false.
func (s *Scheduler) RequestPermission(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.permissionGranted {
		return true
	}

	if err := s.host.RequestPermission(ctx); err != nil {
		if errors.Is(err, notify.ErrPermissionDenied) {
			logger.Info("Notification permission denied")
		} else {
			logger.Warn("Failed to request notification permission", "error", err)
		}
		return false
	}

	s.permissionGranted = true
	return true
}

// ScheduleExpiryReminder registers a one-shot reminder firing
// constants.ReminderLeadDays before the item's expiry date. Returns an empty
// id without error when no reminder is warranted: the kind is disabled,
// permission is not granted, or the reminder time has already passed.
func (s *Scheduler) ScheduleExpiryReminder(ctx context.Context, item models.Item) (string, error) {
	enabled, err := s.kindEnabled(models.KindExpiryReminder)
	if err != nil {
		return "", err
	}
	if !enabled {
		return "", nil
	}

	if !s.RequestPermission(ctx) {
		return "", nil
	}

	now := s.now()
	reminderTime := item.ExpiryDate.AddDate(0, 0, -constants.ReminderLeadDays)
	if !reminderTime.After(now) {
		logger.Debug("Skipping expiry reminder, trigger time already passed", "item", item.Name)
		return "", nil
	}

	id, err := s.host.ScheduleOneShot(ctx, notify.Request{
		Title:   reminderTitle,
		Body:    fmt.Sprintf("%s expires in %d days!", item.Name, constants.ReminderLeadDays),
		Payload: payloadFor(item, models.KindExpiryReminder),
		FireAt:  reminderTime,
	})
	if err != nil {
		return "", fmt.Errorf("failed to schedule expiry reminder: %w", err)
	}

	s.recordScheduled(item.ID, id, models.KindExpiryReminder, reminderTime, false)
	logger.Debug("Scheduled expiry reminder", "item", item.Name, "id", id, "fireAt", reminderTime)
	return id, nil
}

// ScheduleExpiredAlert registers a repeating daily alert for an item that is
// already past its expiry date. Items not yet expired yield no schedule.
func (s *Scheduler) ScheduleExpiredAlert(ctx context.Context, item models.Item) (string, error) {
	enabled, err := s.kindEnabled(models.KindExpiredAlert)
	if err != nil {
		return "", err
	}
	if !enabled {
		return "", nil
	}

	if !s.RequestPermission(ctx) {
		return "", nil
	}

	now := s.now()
	if item.ExpiryDate.After(now) {
		logger.Debug("Skipping expired alert, item not yet expired", "item", item.Name)
		return "", nil
	}

	firstFire := now.Add(constants.ExpiredAlertInterval)
	id, err := s.host.ScheduleRepeating(ctx, notify.Request{
		Title:   alertTitle,
		Body:    fmt.Sprintf("%s has expired! Please check and remove it.", item.Name),
		Payload: payloadFor(item, models.KindExpiredAlert),
		FireAt:  firstFire,
	}, constants.ExpiredAlertInterval)
	if err != nil {
		return "", fmt.Errorf("failed to schedule expired alert: %w", err)
	}

	s.recordScheduled(item.ID, id, models.KindExpiredAlert, firstFire, true)
	logger.Debug("Scheduled expired alert", "item", item.Name, "id", id)
	return id, nil
}

// ScheduleForItem attempts both kinds for a freshly written item. Each kind
// independently no-ops when its precondition fails; at most one can succeed
// for any given expiry date. Returns the ids that were registered.
func (s *Scheduler) ScheduleForItem(ctx context.Context, item models.Item) ([]string, error) {
	var ids []string
	var errs []error

	if id, err := s.ScheduleExpiryReminder(ctx, item); err != nil {
		errs = append(errs, err)
	} else if id != "" {
		ids = append(ids, id)
	}

	if id, err := s.ScheduleExpiredAlert(ctx, item); err != nil {
		errs = append(errs, err)
	} else if id != "" {
		ids = append(ids, id)
	}

	return ids, errors.Join(errs...)
}

// Cancel removes a single notification. Unknown or already-fired ids are a
// no-op.
func (s *Scheduler) Cancel(ctx context.Context, notificationID string) error {
	if err := s.host.Cancel(ctx, notificationID); err != nil {
		return fmt.Errorf("failed to cancel notification %s: %w", notificationID, err)
	}

	if err := s.store.MarkCancelled(notificationID); err != nil {
		logger.Warn("Failed to mark notification cancelled in log", "id", notificationID, "error", err)
	}
	return nil
}

// CancelAllForItem cancels every scheduled notification whose payload
// references the item. Used when an item is deleted or its expiry edited.
func (s *Scheduler) CancelAllForItem(ctx context.Context, itemID string) error {
	return s.cancelWhere(ctx, func(n notify.Scheduled) bool {
		return n.Payload.ItemID == itemID
	})
}

// CancelAllOfKind cancels every scheduled notification of the given kind,
// leaving the other kind untouched.
func (s *Scheduler) CancelAllOfKind(ctx context.Context, kind models.NotificationKind) error {
	return s.cancelWhere(ctx, func(n notify.Scheduled) bool {
		return n.Payload.Kind == kind
	})
}

// CancelAll unconditionally cancels everything. Used on sign-out.
func (s *Scheduler) CancelAll(ctx context.Context) error {
	return s.cancelWhere(ctx, func(notify.Scheduled) bool { return true })
}

// cancelWhere snapshots the host's scheduled list and cancels each match.
// Cancellation continues past individual failures; re-running after a
// partial failure is safe.
func (s *Scheduler) cancelWhere(ctx context.Context, match func(notify.Scheduled) bool) error {
	scheduled, err := s.host.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list scheduled notifications: %w", err)
	}

	var errs []error
	for _, n := range scheduled {
		if !match(n) {
			continue
		}
		if err := s.Cancel(ctx, n.ID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ListScheduled returns the host's current scheduled notifications. This is
// always a live read, never served from the bookkeeping log.
func (s *Scheduler) ListScheduled(ctx context.Context) ([]notify.Scheduled, error) {
	return s.host.ListAll(ctx)
}

func (s *Scheduler) kindEnabled(kind models.NotificationKind) (bool, error) {
	current, err := s.settings.Get()
	if err != nil {
		return false, fmt.Errorf("failed to read notification settings: %w", err)
	}
	return current.EnabledFor(kind), nil
}

// recordScheduled appends a bookkeeping row. The host owns the live state,
// so a log failure is not a scheduling failure.
func (s *Scheduler) recordScheduled(itemID, notificationID string, kind models.NotificationKind, fireAt time.Time, repeats bool) {
	record := models.ScheduledNotification{
		ID:             uuid.NewString(),
		ItemID:         itemID,
		NotificationID: notificationID,
		Kind:           kind,
		ScheduledFor:   fireAt,
		Repeats:        repeats,
		CreatedAt:      s.now(),
	}
	if err := s.store.RecordScheduled(record); err != nil {
		logger.Warn("Failed to record scheduled notification", "id", notificationID, "error", err)
	}
}

func payloadFor(item models.Item, kind models.NotificationKind) models.NotificationPayload {
	return models.NotificationPayload{
		ItemID:     item.ID,
		ItemName:   item.Name,
		ExpiryDate: item.ExpiryDate.Format(constants.DateFormat),
		Kind:       kind,
	}
}
