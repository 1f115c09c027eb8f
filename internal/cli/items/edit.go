package items

import (
	"context"
	"fmt"

	"github.com/smartshelf/smartshelf/internal/cli"
)

type ItemEditCmd struct {
	ID       string  `arg:"" help:"Item ID."`
	Name     *string `help:"New item name."`
	Category *string `help:"New category."`
	Quantity *int    `help:"New quantity."`
	Expiry   *string `help:"New expiry date (YYYY-MM-DD). Cancels and reschedules the item's notifications."`
}

func (c *ItemEditCmd) Run(ctx *cli.Context) error {
	item, err := ctx.Inventory.GetItem(c.ID)
	if err != nil {
		return err
	}

	updated := false
	if c.Name != nil {
		item.Name = *c.Name
		updated = true
	}
	if c.Category != nil {
		item.Category = *c.Category
		updated = true
	}
	if c.Quantity != nil {
		item.Quantity = *c.Quantity
		updated = true
	}
	if c.Expiry != nil {
		expiryDate, err := cli.ParseDate(*c.Expiry)
		if err != nil {
			return err
		}
		item.ExpiryDate = expiryDate
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified.")
		return nil
	}

	if _, err := ctx.Inventory.UpdateItem(context.Background(), item); err != nil {
		return err
	}
	fmt.Printf("Updated %s\n", item.Name)
	return nil
}
