package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/smartshelf/smartshelf/internal/cli"
)

type NotificationListCmd struct {
	Log bool `help:"Show the local bookkeeping log instead of the agent's live state."`
	All bool `help:"With --log, include cancelled entries."`
}

func (c *NotificationListCmd) Run(ctx *cli.Context) error {
	if c.Log {
		return c.printLog(ctx)
	}

	scheduled, err := ctx.Scheduler.ListScheduled(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list scheduled notifications: %w", err)
	}
	if len(scheduled) == 0 {
		fmt.Println("No scheduled notifications")
		return nil
	}

	fmt.Println("Scheduled notifications:")
	for _, n := range scheduled {
		repeats := ""
		if n.Repeats {
			repeats = " (repeats daily)"
		}
		fmt.Printf("  %s  %s  %s  fires %s%s\n",
			n.ID, n.Payload.Kind, n.Payload.ItemName, n.FireAt.Format(time.RFC3339), repeats)
	}
	return nil
}

func (c *NotificationListCmd) printLog(ctx *cli.Context) error {
	log, err := ctx.Store.GetNotificationLog(c.All)
	if err != nil {
		return fmt.Errorf("failed to read notification log: %w", err)
	}
	if len(log) == 0 {
		fmt.Println("Notification log is empty")
		return nil
	}

	fmt.Println("Notification log:")
	for _, n := range log {
		state := "active"
		if n.Cancelled {
			state = "cancelled"
		}
		fmt.Printf("  %s  %s  item=%s  scheduled for %s  [%s]\n",
			n.NotificationID, n.Kind, n.ItemID, n.ScheduledFor.Format(time.RFC3339), state)
	}
	return nil
}
