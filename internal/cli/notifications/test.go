package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/smartshelf/smartshelf/internal/cli"
	"github.com/smartshelf/smartshelf/internal/constants"
	"github.com/smartshelf/smartshelf/internal/models"
	"github.com/smartshelf/smartshelf/internal/notify"
)

type NotificationTestCmd struct {
	Delay time.Duration `default:"5s" help:"How far in the future the test notification fires."`
}

// Run fires a throwaway notification through the agent to verify the
// delivery path end to end.
func (c *NotificationTestCmd) Run(cliCtx *cli.Context) error {
	ctx := context.Background()

	if !cliCtx.Scheduler.RequestPermission(ctx) {
		return fmt.Errorf("notification permission not granted")
	}

	fireAt := time.Now().Add(c.Delay)
	id, err := cliCtx.Host.ScheduleOneShot(ctx, notify.Request{
		Title: "🔔 Test Notification",
		Body:  "SmartShelf notifications are working!",
		Payload: models.NotificationPayload{
			ItemID:     "test",
			ItemName:   "Test Item",
			ExpiryDate: fireAt.Format(constants.DateFormat),
			Kind:       models.KindExpiryReminder,
		},
		FireAt: fireAt,
	})
	if err != nil {
		return fmt.Errorf("failed to schedule test notification: %w", err)
	}

	fmt.Printf("Test notification %s fires in %s\n", id, c.Delay)
	return nil
}
