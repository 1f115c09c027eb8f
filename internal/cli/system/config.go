package system

import (
	"errors"
	"fmt"

	"github.com/smartshelf/smartshelf/internal/keyring"
	"github.com/smartshelf/smartshelf/internal/storage/postgres"
)

type ConfigSetConnectionCmd struct {
	ConnStr string `arg:"" help:"PostgreSQL connection string to store in the OS keyring. May include a password; the keyring is the one place credentials are allowed."`
}

func (c *ConfigSetConnectionCmd) Run() error {
	// Allow embedded credentials here but still reject malformed strings.
	if _, err := postgres.ValidateConnString(c.ConnStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return err
	}
	if err := keyring.SetConnectionString(c.ConnStr); err != nil {
		return fmt.Errorf("failed to store connection string: %w", err)
	}
	fmt.Println("Connection string stored in keyring")
	return nil
}

type ConfigClearConnectionCmd struct{}

func (c *ConfigClearConnectionCmd) Run() error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return fmt.Errorf("failed to clear connection string: %w", err)
	}
	fmt.Println("Connection string removed from keyring")
	return nil
}
