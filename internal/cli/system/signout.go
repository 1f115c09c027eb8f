package system

import (
	"context"
	"fmt"

	"github.com/smartshelf/smartshelf/internal/cli"
)

type SignInCmd struct {
	Token string `required:"" help:"Session token issued by the auth backend."`
}

func (c *SignInCmd) Run(ctx *cli.Context) error {
	if err := ctx.Session.SignIn(c.Token); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	fmt.Println("Signed in")
	return nil
}

type SignOutCmd struct{}

// Run cancels all scheduled notifications before clearing the session, so
// nothing fires for a user who is no longer signed in.
func (c *SignOutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Session.SignOut(context.Background()); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}
