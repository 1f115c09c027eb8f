package items

import (
	"fmt"
	"time"

	"github.com/smartshelf/smartshelf/internal/cli"
	"github.com/smartshelf/smartshelf/internal/constants"
	"github.com/smartshelf/smartshelf/internal/expiry"
)

type ItemShowCmd struct {
	ID      string `arg:"" help:"Item ID."`
	History bool   `help:"Show notification history for the item."`
}

func (c *ItemShowCmd) Run(ctx *cli.Context) error {
	item, err := ctx.Inventory.GetItem(c.ID)
	if err != nil {
		return err
	}

	classification := expiry.Classify(time.Now(), item.ExpiryDate)
	fmt.Printf("%s\n", item.Name)
	fmt.Printf("  Status:   %s - %s\n", cli.StatusBadge(classification), classification.Message)
	fmt.Printf("  Category: %s\n", item.Category)
	fmt.Printf("  Quantity: %d\n", item.Quantity)
	fmt.Printf("  Expires:  %s\n", item.ExpiryDate.Format(constants.DateFormat))
	fmt.Printf("  QR code:  %s\n", item.QRCodeID)
	fmt.Printf("  Added:    %s\n", item.CreatedAt.Format(time.RFC3339))

	if c.History {
		history, err := ctx.Store.GetHistoryForItem(item.ID)
		if err != nil {
			return fmt.Errorf("failed to get notification history: %w", err)
		}
		fmt.Println("\nNotification history:")
		if len(history) == 0 {
			fmt.Println("  (none)")
		}
		for _, h := range history {
			clicked := ""
			if h.WasClicked {
				clicked = " (tapped)"
			}
			fmt.Printf("  %s  %s%s\n", h.SentAt.Format(time.RFC3339), h.Kind, clicked)
		}
	}
	return nil
}
