package items

import (
	"fmt"
	"time"

	"github.com/smartshelf/smartshelf/internal/cli"
	"github.com/smartshelf/smartshelf/internal/constants"
	"github.com/smartshelf/smartshelf/internal/expiry"
)

type ItemScanCmd struct {
	Code string `arg:"" help:"Scanned QR code ID."`
}

func (c *ItemScanCmd) Run(ctx *cli.Context) error {
	item, err := ctx.Inventory.GetByQRCode(c.Code)
	if err != nil {
		return err
	}

	classification := expiry.Classify(time.Now(), item.ExpiryDate)
	fmt.Printf("%s (%s) x%d\n", item.Name, item.Category, item.Quantity)
	fmt.Printf("  Status:  %s - %s\n", cli.StatusBadge(classification), classification.Message)
	fmt.Printf("  Expires: %s\n", item.ExpiryDate.Format(constants.DateFormat))
	fmt.Printf("  ID:      %s\n", item.ID)
	return nil
}
