// Package notify abstracts the host notification primitive. The production
// implementation talks to the local smartshelf-agent process over a
// lockfile-discovered webhook; tests substitute an in-memory fake.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/smartshelf/smartshelf/internal/models"
)

var (
	// ErrAgentNotRunning means the notification agent could not be discovered
	// or validated.
	ErrAgentNotRunning = errors.New("smartshelf-agent is not running")

	// ErrPermissionDenied means the host refused notification permission.
	ErrPermissionDenied = errors.New("notification permission denied")
)

// Request describes a notification to register with the host.
type Request struct {
	Title   string                     `json:"title"`
	Body    string                     `json:"body"`
	Payload models.NotificationPayload `json:"data"`
	FireAt  time.Time                  `json:"fire_at"`
}

// Scheduled is a notification currently registered with the host.
type Scheduled struct {
	ID      string                     `json:"id"`
	Payload models.NotificationPayload `json:"data"`
	FireAt  time.Time                  `json:"fire_at"`
	Repeats bool                       `json:"repeats"`
}

// Host is the scheduling surface the agent exposes. Schedule calls return
// the host-assigned notification id. Cancel of an id the host no longer
// knows is not an error.
type Host interface {
	RequestPermission(ctx context.Context) error
	ScheduleOneShot(ctx context.Context, req Request) (string, error)
	ScheduleRepeating(ctx context.Context, req Request, interval time.Duration) (string, error)
	Cancel(ctx context.Context, notificationID string) error
	ListAll(ctx context.Context) ([]Scheduled, error)
}
