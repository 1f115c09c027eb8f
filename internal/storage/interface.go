package storage

import "github.com/smartshelf/smartshelf/internal/models"

// Provider is the persistence contract shared by the SQLite and PostgreSQL
// backends. Lookup methods return models.ErrNotFound (possibly wrapped) when
// no matching row exists.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Items
	AddItem(models.Item) error
	GetItem(id string) (models.Item, error)
	GetItemByQRCode(qrCodeID string) (models.Item, error)
	GetAllItems() ([]models.Item, error)
	UpdateItem(models.Item) error
	DeleteItem(id string) error

	// Notification bookkeeping. The scheduling agent owns the live
	// notification state; these records are a best-effort audit log.
	RecordScheduled(models.ScheduledNotification) error
	MarkCancelled(notificationID string) error
	GetNotificationLog(includeCancelled bool) ([]models.ScheduledNotification, error)
	RecordHistory(models.NotificationHistory) error
	GetHistoryForItem(itemID string) ([]models.NotificationHistory, error)

	// Utils
	GetConfigPath() string
}
