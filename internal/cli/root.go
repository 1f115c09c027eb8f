package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartshelf/smartshelf/internal/constants"
	"github.com/smartshelf/smartshelf/internal/expiry"
	"github.com/smartshelf/smartshelf/internal/inventory"
	"github.com/smartshelf/smartshelf/internal/notify"
	"github.com/smartshelf/smartshelf/internal/scheduler"
	"github.com/smartshelf/smartshelf/internal/session"
	"github.com/smartshelf/smartshelf/internal/settings"
	"github.com/smartshelf/smartshelf/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Settings  *settings.Service
	Host      notify.Host
	Scheduler *scheduler.Scheduler
	Inventory *inventory.Service
	Session   *session.Manager
}

// ParseDate parses a YYYY-MM-DD expiry date into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return date, nil
}

// StatusBadge renders a classification's label in its severity color.
func StatusBadge(c expiry.Classification) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Status.Color()))
	return style.Render(c.Status.Label())
}
