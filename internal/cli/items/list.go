package items

import (
	"fmt"
	"time"

	"github.com/smartshelf/smartshelf/internal/cli"
	"github.com/smartshelf/smartshelf/internal/expiry"
)

type ItemListCmd struct {
	ShowIDs bool   `help:"Show item IDs." name:"show-ids"`
	Status  string `help:"Filter by status (safe, near-expiry, expired)." enum:"safe,near-expiry,expired," default:""`
}

func (c *ItemListCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Inventory.List()
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}
	if len(items) == 0 {
		fmt.Println("No items found")
		return nil
	}

	now := time.Now()
	shown := 0
	for _, item := range items {
		classification := expiry.Classify(now, item.ExpiryDate)
		if c.Status != "" && string(classification.Status) != c.Status {
			continue
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", item.ID)
		}

		fmt.Printf("  [%s] %s%s x%d - %s\n",
			cli.StatusBadge(classification), item.Name, idStr, item.Quantity, classification.Message)
		shown++
	}

	if shown == 0 {
		fmt.Printf("No items with status %q\n", c.Status)
	}
	return nil
}
