package settings

import (
	"fmt"

	"github.com/smartshelf/smartshelf/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	ExpiryReminders *bool `help:"Enable or disable pre-expiry reminders. Disabling cancels existing ones."`
	ExpiredAlerts   *bool `help:"Enable or disable daily expired alerts. Disabling cancels existing ones."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	current, err := ctx.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List || (c.ExpiryReminders == nil && c.ExpiredAlerts == nil) {
		fmt.Println("Notification Settings:")
		fmt.Printf("  Expiry Reminders: %v\n", current.ExpiryReminders)
		fmt.Printf("  Expired Alerts:   %v\n", current.ExpiredAlerts)
		return nil
	}

	if c.ExpiryReminders != nil {
		current.ExpiryReminders = *c.ExpiryReminders
	}
	if c.ExpiredAlerts != nil {
		current.ExpiredAlerts = *c.ExpiredAlerts
	}

	// Update dispatches to the scheduler's listener, which bulk-cancels any
	// kind that was switched off.
	if err := ctx.Settings.Update(current); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
