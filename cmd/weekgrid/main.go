package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/weekgrid/internal/cli"
	"github.com/julianstephens/weekgrid/internal/cli/activity"
	"github.com/julianstephens/weekgrid/internal/cli/report"
	"github.com/julianstephens/weekgrid/internal/cli/settings"
	"github.com/julianstephens/weekgrid/internal/cli/system"
	"github.com/julianstephens/weekgrid/internal/constants"
	apperrors "github.com/julianstephens/weekgrid/internal/errors"
	"github.com/julianstephens/weekgrid/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path (.db for SQLite, .json for a JSON file) or PostgreSQL connection string. Connection strings must NOT embed credentials; use 'weekgrid keyring set' instead." type:"string" default:"${defaultConfig}" env:"WEEKGRID_CONFIG"`
	Debug   bool   `help:"Log debug output to stderr." env:"WEEKGRID_DEBUG"`

	Init       system.InitCmd       `cmd:"" help:"Initialize weekgrid storage."`
	Migrate    system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor     system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui        system.TuiCmd        `cmd:"" help:"Browse weeks interactively." default:"1"`
	Import     activity.ImportCmd   `cmd:"" help:"Import activity intervals from a file."`
	List       activity.ListCmd     `cmd:"" help:"List the intervals overlapping a week."`
	Delete     activity.DeleteCmd   `cmd:"" help:"Delete an interval."`
	Weeks      report.WeeksCmd      `cmd:"" help:"List weeks with activity."`
	Show       report.ShowCmd       `cmd:"" help:"Show a week's coverage grid."`
	Stats      report.StatsCmd      `cmd:"" help:"Show a week's coverage statistics."`
	Settings   settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring    system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	DebugTools system.DebugCmd      `cmd:"" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Weekly activity coverage grid"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":       constants.Version,
			"defaultConfig": constants.DefaultConfigPath,
		},
	)

	if err := initLogger(CLI.Config, CLI.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}

	store, err := cli.ResolveProvider(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	// init creates the store; every other command needs it to exist.
	if ctx.Command() != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(store)
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// initLogger writes logs next to a file database, or under the default
// config directory for PostgreSQL.
func initLogger(config string, debug bool) error {
	dir := constants.DefaultConfigPath
	if !cli.IsConnString(config) {
		dir = config
	}
	path, err := cli.ExpandPath(dir)
	if err != nil {
		return err
	}
	return logger.Init(logger.Config{
		Debug:     debug,
		ConfigDir: filepath.Dir(path),
	})
}
