package items

import (
	"context"
	"fmt"

	"github.com/smartshelf/smartshelf/internal/cli"
)

type ItemDeleteCmd struct {
	ID string `arg:"" help:"Item ID."`
}

func (c *ItemDeleteCmd) Run(ctx *cli.Context) error {
	item, err := ctx.Inventory.GetItem(c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Inventory.DeleteItem(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", item.Name)
	return nil
}
