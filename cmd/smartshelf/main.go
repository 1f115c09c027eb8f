package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/smartshelf/smartshelf/internal/cli"
	"github.com/smartshelf/smartshelf/internal/cli/items"
	"github.com/smartshelf/smartshelf/internal/cli/notifications"
	clisettings "github.com/smartshelf/smartshelf/internal/cli/settings"
	"github.com/smartshelf/smartshelf/internal/cli/system"
	"github.com/smartshelf/smartshelf/internal/constants"
	apperrors "github.com/smartshelf/smartshelf/internal/errors"
	"github.com/smartshelf/smartshelf/internal/inventory"
	"github.com/smartshelf/smartshelf/internal/keyring"
	"github.com/smartshelf/smartshelf/internal/logger"
	"github.com/smartshelf/smartshelf/internal/notify"
	"github.com/smartshelf/smartshelf/internal/scheduler"
	"github.com/smartshelf/smartshelf/internal/session"
	"github.com/smartshelf/smartshelf/internal/settings"
	"github.com/smartshelf/smartshelf/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging."`
	Config  string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string; use the OS keyring, environment variables, or .pgpass instead." default:"~/.config/smartshelf/smartshelf.db"`

	Init    system.InitCmd    `cmd:"" help:"Initialize smartshelf storage."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	SignIn  system.SignInCmd  `cmd:"" name:"signin" help:"Store a session token."`
	SignOut system.SignOutCmd `cmd:"" name:"signout" help:"Sign out and cancel all scheduled notifications."`
	Items   struct {
		Add    items.ItemAddCmd    `cmd:"" help:"Add a new item."`
		List   items.ItemListCmd   `cmd:"" help:"List tracked items with their expiry status."`
		Show   items.ItemShowCmd   `cmd:"" help:"Show a single item."`
		Edit   items.ItemEditCmd   `cmd:"" help:"Edit an item. Changing the expiry reschedules its notifications."`
		Delete items.ItemDeleteCmd `cmd:"" help:"Delete an item and cancel its notifications."`
		Scan   items.ItemScanCmd   `cmd:"" help:"Look up an item by its QR code."`
	} `cmd:"" help:"Manage tracked items."`
	Notifications struct {
		List   notifications.NotificationListCmd   `cmd:"" help:"List scheduled notifications."`
		Cancel notifications.NotificationCancelCmd `cmd:"" help:"Cancel scheduled notifications."`
		Test   notifications.NotificationTestCmd   `cmd:"" help:"Send a test notification."`
	} `cmd:"" help:"Manage scheduled notifications."`
	Settings clisettings.SettingsCmd `cmd:"" help:"Manage notification settings."`
	ConfigCmd struct {
		SetConnection   system.ConfigSetConnectionCmd   `cmd:"" name:"set-connection" help:"Store a PostgreSQL connection string in the OS keyring."`
		ClearConnection system.ConfigClearConnectionCmd `cmd:"" name:"clear-connection" help:"Remove the stored connection string."`
	} `cmd:"" name:"config" help:"Manage stored configuration."`
	HandleTap system.HandleTapCmd     `cmd:"" name:"handle-tap" hidden:"" help:"Handle a notification tap (used by the agent)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Shelf inventory tracker with expiry notifications"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	config := expandPath(CLI.Config)

	// A connection string stored in the keyring takes over when the user
	// has not pointed --config anywhere else.
	if CLI.Config == constants.DefaultConfigPath {
		if connStr, err := keyring.GetConnectionString(); err == nil && connStr != "" {
			config = connStr
		}
	}

	logDir := filepath.Dir(expandPath(constants.DefaultConfigPath))
	if !storage.IsPostgresConnString(config) {
		logDir = filepath.Dir(config)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	var store storage.Provider
	if storage.IsPostgresConnString(config) {
		if storage.HasEmbeddedCredentials(config) {
			fmt.Fprintf(os.Stderr, "Error: PostgreSQL connection strings with embedded credentials are not allowed.\n")
			fmt.Fprintf(os.Stderr, "       Store the full connection string in the OS keyring, or use a\n")
			fmt.Fprintf(os.Stderr, "       passwordless string with environment variables or .pgpass.\n")
			os.Exit(1)
		}
		store = storage.NewPostgresStore(config)
	} else {
		store = storage.NewSQLiteStore(config)
	}

	settingsSvc := settings.NewService(store)
	host := notify.NewAgentHost()
	sched := scheduler.New(host, store, settingsSvc)
	sched.SubscribeSettings()

	appCtx := &cli.Context{
		Store:     store,
		Settings:  settingsSvc,
		Host:      host,
		Scheduler: sched,
		Inventory: inventory.NewService(store, sched),
		Session:   session.NewManager(sched),
	}

	// Doctor reports load failures itself, init creates the database, and
	// the config commands only touch the keyring.
	skipLoad := map[string]bool{"init": true, "doctor": true, "set-connection": true, "clear-connection": true}
	if selected := ctx.Selected(); selected != nil && !skipLoad[selected.Name] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}

// expandPath resolves a leading ~ against the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
