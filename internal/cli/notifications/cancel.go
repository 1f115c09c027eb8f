package notifications

import (
	"context"
	"fmt"

	"github.com/smartshelf/smartshelf/internal/cli"
	"github.com/smartshelf/smartshelf/internal/models"
)

type NotificationCancelCmd struct {
	ID   string `arg:"" optional:"" help:"Notification ID to cancel."`
	Item string `help:"Cancel all notifications for an item ID."`
	Kind string `help:"Cancel all notifications of a kind." enum:"expiry-reminder,expired-alert," default:""`
	All  bool   `help:"Cancel every scheduled notification."`
}

func (c *NotificationCancelCmd) Run(cliCtx *cli.Context) error {
	ctx := context.Background()

	switch {
	case c.All:
		if err := cliCtx.Scheduler.CancelAll(ctx); err != nil {
			return err
		}
		fmt.Println("Cancelled all scheduled notifications")
	case c.Item != "":
		if err := cliCtx.Scheduler.CancelAllForItem(ctx, c.Item); err != nil {
			return err
		}
		fmt.Printf("Cancelled notifications for item %s\n", c.Item)
	case c.Kind != "":
		if err := cliCtx.Scheduler.CancelAllOfKind(ctx, models.NotificationKind(c.Kind)); err != nil {
			return err
		}
		fmt.Printf("Cancelled all %s notifications\n", c.Kind)
	case c.ID != "":
		if err := cliCtx.Scheduler.Cancel(ctx, c.ID); err != nil {
			return err
		}
		fmt.Printf("Cancelled %s\n", c.ID)
	default:
		return fmt.Errorf("specify a notification ID, --item, --kind, or --all")
	}
	return nil
}
