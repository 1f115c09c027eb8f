package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/smartshelf/smartshelf/internal/models"
	"github.com/smartshelf/smartshelf/internal/notify"
	"github.com/smartshelf/smartshelf/internal/scheduler"
	"github.com/smartshelf/smartshelf/internal/settings"
	"github.com/smartshelf/smartshelf/internal/storage"
)

type fakeHost struct {
	scheduleErr error
	nextID      int
	scheduled   map[string]notify.Scheduled
}

func newFakeHost() *fakeHost {
	return &fakeHost{scheduled: map[string]notify.Scheduled{}}
}

func (f *fakeHost) RequestPermission(context.Context) error { return nil }

func (f *fakeHost) ScheduleOneShot(_ context.Context, req notify.Request) (string, error) {
	return f.add(req, false)
}

func (f *fakeHost) ScheduleRepeating(_ context.Context, req notify.Request, _ time.Duration) (string, error) {
	return f.add(req, true)
}

func (f *fakeHost) add(req notify.Request, repeats bool) (string, error) {
	if f.scheduleErr != nil {
		return "", f.scheduleErr
	}
	f.nextID++
	id := fmt.Sprintf("n%d", f.nextID)
	f.scheduled[id] = notify.Scheduled{ID: id, Payload: req.Payload, FireAt: req.FireAt, Repeats: repeats}
	return id, nil
}

func (f *fakeHost) Cancel(_ context.Context, id string) error {
	delete(f.scheduled, id)
	return nil
}

func (f *fakeHost) ListAll(context.Context) ([]notify.Scheduled, error) {
	var out []notify.Scheduled
	for _, n := range f.scheduled {
		out = append(out, n)
	}
	return out, nil
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, host notify.Host) (*Service, storage.Provider) {
	t.Helper()
	store := storage.NewSQLiteStore(t.TempDir() + "/smartshelf.db")
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := func() time.Time { return testNow }
	sched := scheduler.New(host, store, settings.NewService(store), scheduler.WithClock(clock))
	return NewService(store, sched, WithClock(clock)), store
}

func TestCreateItemSchedulesReminder(t *testing.T) {
	host := newFakeHost()
	svc, store := newTestService(t, host)

	expiry := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	item, err := svc.CreateItem(context.Background(), "Milk", "Dairy", 2, expiry)
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if item.ID == "" || item.QRCodeID == "" {
		t.Errorf("item missing generated ids: %+v", item)
	}
	if !strings.Contains(item.QRCodeID, "_") {
		t.Errorf("QRCodeID = %q, want timestamp_random shape", item.QRCodeID)
	}

	stored, err := store.GetItem(item.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if stored.Name != "Milk" {
		t.Errorf("stored name = %q", stored.Name)
	}

	if len(host.scheduled) != 1 {
		t.Fatalf("host has %d scheduled, want 1 reminder", len(host.scheduled))
	}
	for _, n := range host.scheduled {
		if n.Payload.Kind != models.KindExpiryReminder || n.Payload.ItemID != item.ID {
			t.Errorf("scheduled payload = %+v", n.Payload)
		}
	}
}

func TestCreateExpiredItemSchedulesAlert(t *testing.T) {
	host := newFakeHost()
	svc, _ := newTestService(t, host)

	expiry := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.CreateItem(context.Background(), "Old Yogurt", "Dairy", 1, expiry); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	if len(host.scheduled) != 1 {
		t.Fatalf("host has %d scheduled, want 1 alert", len(host.scheduled))
	}
	for _, n := range host.scheduled {
		if n.Payload.Kind != models.KindExpiredAlert || !n.Repeats {
			t.Errorf("scheduled = %+v, want repeating expired alert", n)
		}
	}
}

func TestCreateItemSurvivesSchedulingFailure(t *testing.T) {
	host := newFakeHost()
	host.scheduleErr = errors.New("quota exceeded")
	svc, store := newTestService(t, host)

	expiry := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	item, err := svc.CreateItem(context.Background(), "Milk", "Dairy", 1, expiry)
	if err != nil {
		t.Fatalf("CreateItem must not fail on scheduling errors: %v", err)
	}

	if _, err := store.GetItem(item.ID); err != nil {
		t.Errorf("item should be persisted despite scheduling failure: %v", err)
	}
}

func TestCreateItemRejectsInvalidInput(t *testing.T) {
	host := newFakeHost()
	svc, _ := newTestService(t, host)
	ctx := context.Background()
	expiry := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	if _, err := svc.CreateItem(ctx, "", "Dairy", 1, expiry); err == nil {
		t.Error("empty name should be rejected")
	}
	if _, err := svc.CreateItem(ctx, "Milk", "Plastics", 1, expiry); err == nil {
		t.Error("unknown category should be rejected")
	}
	if len(host.scheduled) != 0 {
		t.Errorf("nothing should be scheduled for rejected items, got %d", len(host.scheduled))
	}
}

func TestUpdateExpiryCancelsThenReschedules(t *testing.T) {
	host := newFakeHost()
	svc, _ := newTestService(t, host)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, "Milk", "Dairy", 1, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	var originalID string
	for id := range host.scheduled {
		originalID = id
	}

	updated, err := svc.UpdateItemExpiry(ctx, item.ID, time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("UpdateItemExpiry failed: %v", err)
	}
	if !updated.ExpiryDate.Equal(time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expiry = %v", updated.ExpiryDate)
	}

	if len(host.scheduled) != 1 {
		t.Fatalf("host has %d scheduled, want 1 fresh reminder", len(host.scheduled))
	}
	if _, stale := host.scheduled[originalID]; stale {
		t.Error("stale reminder should have been cancelled")
	}
}

func TestUpdateWithoutExpiryChangeKeepsTriggers(t *testing.T) {
	host := newFakeHost()
	svc, _ := newTestService(t, host)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, "Milk", "Dairy", 1, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	var originalID string
	for id := range host.scheduled {
		originalID = id
	}

	item.Quantity = 5
	if _, err := svc.UpdateItem(ctx, item); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	if _, ok := host.scheduled[originalID]; !ok {
		t.Error("trigger should be untouched when expiry is unchanged")
	}
	if len(host.scheduled) != 1 {
		t.Errorf("host has %d scheduled, want 1", len(host.scheduled))
	}
}

func TestDeleteItemCancelsNotifications(t *testing.T) {
	host := newFakeHost()
	svc, store := newTestService(t, host)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, "Milk", "Dairy", 1, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	if err := svc.DeleteItem(ctx, item.ID); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}

	if len(host.scheduled) != 0 {
		t.Errorf("host still has %d scheduled after delete", len(host.scheduled))
	}
	if _, err := store.GetItem(item.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetItem after delete error = %v, want ErrNotFound", err)
	}
}

func TestGetByQRCode(t *testing.T) {
	host := newFakeHost()
	svc, _ := newTestService(t, host)

	item, err := svc.CreateItem(context.Background(), "Milk", "Dairy", 1, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	found, err := svc.GetByQRCode(item.QRCodeID)
	if err != nil {
		t.Fatalf("GetByQRCode failed: %v", err)
	}
	if found.ID != item.ID {
		t.Errorf("found %s, want %s", found.ID, item.ID)
	}

	if _, err := svc.GetByQRCode("bogus"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown code error = %v, want ErrNotFound", err)
	}
}
