package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/smartshelf/smartshelf/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(t.TempDir() + "/smartshelf.db")
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testItem() models.Item {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return models.Item{
		ID:         "item-1",
		Name:       "Milk",
		Category:   "Dairy",
		Quantity:   2,
		ExpiryDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		QRCodeID:   "qr-abc123",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestInitSeedsDefaultSettings(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if !settings.ExpiryReminders || !settings.ExpiredAlerts {
		t.Errorf("default settings = %+v, want both enabled", settings)
	}
}

func TestSaveAndGetSettings(t *testing.T) {
	store := newTestStore(t)

	want := models.Settings{ExpiryReminders: false, ExpiredAlerts: true}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got != want {
		t.Errorf("GetSettings = %+v, want %+v", got, want)
	}
}

func TestItemRoundTrip(t *testing.T) {
	store := newTestStore(t)
	item := testItem()

	if err := store.AddItem(item); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	got, err := store.GetItem(item.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Name != item.Name || got.Category != item.Category || got.Quantity != item.Quantity {
		t.Errorf("GetItem = %+v, want %+v", got, item)
	}
	if !got.ExpiryDate.Equal(item.ExpiryDate) {
		t.Errorf("ExpiryDate = %v, want %v", got.ExpiryDate, item.ExpiryDate)
	}

	byQR, err := store.GetItemByQRCode(item.QRCodeID)
	if err != nil {
		t.Fatalf("GetItemByQRCode failed: %v", err)
	}
	if byQR.ID != item.ID {
		t.Errorf("GetItemByQRCode returned item %s, want %s", byQR.ID, item.ID)
	}
}

func TestGetItemNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetItem("missing")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetItem error = %v, want ErrNotFound", err)
	}
}

func TestUpdateItem(t *testing.T) {
	store := newTestStore(t)
	item := testItem()
	if err := store.AddItem(item); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	item.Name = "Whole Milk"
	item.ExpiryDate = item.ExpiryDate.AddDate(0, 0, 7)
	if err := store.UpdateItem(item); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	got, err := store.GetItem(item.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Name != "Whole Milk" {
		t.Errorf("Name = %q, want %q", got.Name, "Whole Milk")
	}
	if !got.ExpiryDate.Equal(item.ExpiryDate) {
		t.Errorf("ExpiryDate = %v, want %v", got.ExpiryDate, item.ExpiryDate)
	}

	missing := testItem()
	missing.ID = "missing"
	if err := store.UpdateItem(missing); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("UpdateItem on missing item error = %v, want ErrNotFound", err)
	}
}

func TestDeleteItem(t *testing.T) {
	store := newTestStore(t)
	item := testItem()
	if err := store.AddItem(item); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if err := store.DeleteItem(item.ID); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if _, err := store.GetItem(item.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetItem after delete error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteItem(item.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second DeleteItem error = %v, want ErrNotFound", err)
	}
}

func TestGetAllItemsOrderedByExpiry(t *testing.T) {
	store := newTestStore(t)

	later := testItem()
	later.ID = "item-later"
	later.QRCodeID = "qr-later"
	later.ExpiryDate = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	sooner := testItem()
	sooner.ID = "item-sooner"
	sooner.QRCodeID = "qr-sooner"
	sooner.ExpiryDate = time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	for _, item := range []models.Item{later, sooner} {
		if err := store.AddItem(item); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
	}

	items, err := store.GetAllItems()
	if err != nil {
		t.Fatalf("GetAllItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != "item-sooner" || items[1].ID != "item-later" {
		t.Errorf("items out of order: %s, %s", items[0].ID, items[1].ID)
	}
}

func TestNotificationLog(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	reminder := models.ScheduledNotification{
		ID:             "sched-1",
		ItemID:         "item-1",
		NotificationID: "notif-1",
		Kind:           models.KindExpiryReminder,
		ScheduledFor:   now.AddDate(0, 0, 2),
		CreatedAt:      now,
	}
	alert := models.ScheduledNotification{
		ID:             "sched-2",
		ItemID:         "item-1",
		NotificationID: "notif-2",
		Kind:           models.KindExpiredAlert,
		ScheduledFor:   now.Add(24 * time.Hour),
		Repeats:        true,
		CreatedAt:      now,
	}

	for _, n := range []models.ScheduledNotification{reminder, alert} {
		if err := store.RecordScheduled(n); err != nil {
			t.Fatalf("RecordScheduled failed: %v", err)
		}
	}

	if err := store.MarkCancelled("notif-1"); err != nil {
		t.Fatalf("MarkCancelled failed: %v", err)
	}
	// Unknown ids are a no-op.
	if err := store.MarkCancelled("never-scheduled"); err != nil {
		t.Fatalf("MarkCancelled on unknown id failed: %v", err)
	}

	active, err := store.GetNotificationLog(false)
	if err != nil {
		t.Fatalf("GetNotificationLog failed: %v", err)
	}
	if len(active) != 1 || active[0].NotificationID != "notif-2" {
		t.Errorf("active log = %+v, want only notif-2", active)
	}
	if !active[0].Repeats {
		t.Error("notif-2 should be marked repeating")
	}

	all, err := store.GetNotificationLog(true)
	if err != nil {
		t.Fatalf("GetNotificationLog(true) failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("full log has %d entries, want 2", len(all))
	}
}

func TestNotificationHistory(t *testing.T) {
	store := newTestStore(t)
	sent := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	clicked := sent.Add(5 * time.Minute)

	entries := []models.NotificationHistory{
		{
			ID:             "hist-1",
			ItemID:         "item-1",
			NotificationID: "notif-1",
			Kind:           models.KindExpiryReminder,
			SentAt:         sent,
		},
		{
			ID:             "hist-2",
			ItemID:         "item-1",
			NotificationID: "notif-2",
			Kind:           models.KindExpiredAlert,
			SentAt:         sent.Add(time.Hour),
			WasClicked:     true,
			ClickedAt:      &clicked,
		},
	}
	for _, h := range entries {
		if err := store.RecordHistory(h); err != nil {
			t.Fatalf("RecordHistory failed: %v", err)
		}
	}

	history, err := store.GetHistoryForItem("item-1")
	if err != nil {
		t.Fatalf("GetHistoryForItem failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d history entries, want 2", len(history))
	}
	// Newest first.
	if history[0].ID != "hist-2" {
		t.Errorf("first entry = %s, want hist-2", history[0].ID)
	}
	if history[0].ClickedAt == nil || !history[0].ClickedAt.Equal(clicked) {
		t.Errorf("ClickedAt = %v, want %v", history[0].ClickedAt, clicked)
	}
	if history[1].ClickedAt != nil {
		t.Errorf("hist-1 ClickedAt = %v, want nil", history[1].ClickedAt)
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(t.TempDir() + "/missing.db")
	if err := store.Load(); err == nil {
		t.Error("Load on uninitialized path should fail")
	}
}
