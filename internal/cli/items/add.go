package items

import (
	"context"
	"fmt"
	"time"

	"github.com/smartshelf/smartshelf/internal/cli"
	"github.com/smartshelf/smartshelf/internal/expiry"
)

type ItemAddCmd struct {
	Name     string `arg:"" help:"Item name."`
	Expiry   string `required:"" help:"Expiry date (YYYY-MM-DD)."`
	Category string `default:"Other" help:"Item category."`
	Quantity int    `default:"1" help:"Quantity on the shelf."`
}

func (c *ItemAddCmd) Run(ctx *cli.Context) error {
	expiryDate, err := cli.ParseDate(c.Expiry)
	if err != nil {
		return err
	}

	item, err := ctx.Inventory.CreateItem(context.Background(), c.Name, c.Category, c.Quantity, expiryDate)
	if err != nil {
		return err
	}

	classification := expiry.Classify(time.Now(), item.ExpiryDate)
	fmt.Printf("Added %s (%s) x%d\n", item.Name, item.Category, item.Quantity)
	fmt.Printf("  Status:  %s - %s\n", cli.StatusBadge(classification), classification.Message)
	fmt.Printf("  QR code: %s\n", item.QRCodeID)
	return nil
}
