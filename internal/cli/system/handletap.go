package system

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smartshelf/smartshelf/internal/cli"
	"github.com/smartshelf/smartshelf/internal/expiry"
	"github.com/smartshelf/smartshelf/internal/logger"
	"github.com/smartshelf/smartshelf/internal/models"
)

// HandleTapCmd is invoked by the agent when the user taps a delivered
// notification. The payload is validated here, once, at the callback
// boundary; everything downstream works with the typed form.
type HandleTapCmd struct {
	Payload        string `required:"" help:"JSON notification payload."`
	NotificationID string `help:"Host notification id of the tapped notification."`
}

func (c *HandleTapCmd) Run(ctx *cli.Context) error {
	payload, err := models.ParsePayload([]byte(c.Payload))
	if err != nil {
		return err
	}

	now := time.Now()
	history := models.NotificationHistory{
		ID:             uuid.NewString(),
		ItemID:         payload.ItemID,
		NotificationID: c.NotificationID,
		Kind:           payload.Kind,
		SentAt:         now,
		WasClicked:     true,
		ClickedAt:      &now,
	}
	if err := ctx.Store.RecordHistory(history); err != nil {
		logger.Warn("Failed to record notification tap", "item", payload.ItemID, "error", err)
	}

	item, err := ctx.Inventory.GetItem(payload.ItemID)
	if err != nil {
		// The item may have been deleted since the notification fired.
		fmt.Printf("%s (no longer tracked)\n", payload.ItemName)
		return nil
	}

	classification := expiry.Classify(now, item.ExpiryDate)
	fmt.Printf("%s\n", item.Name)
	fmt.Printf("  Status: %s - %s\n", cli.StatusBadge(classification), classification.Message)
	return nil
}
