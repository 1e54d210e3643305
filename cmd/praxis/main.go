package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/calumwright/praxis/internal/cli"
	"github.com/calumwright/praxis/internal/constants"
	"github.com/calumwright/praxis/internal/errors"
	"github.com/calumwright/praxis/internal/keyring"
	"github.com/calumwright/praxis/internal/logger"
	"github.com/calumwright/praxis/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use the OS keyring, environment variables, or .pgpass instead." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init      cli.InitCmd      `cmd:"" help:"Initialize praxis storage."`
	Paths     cli.PathsCmd     `cmd:"" help:"List available paths or show one path's contract."`
	Activate  cli.ActivateCmd  `cmd:"" help:"Activate a path with day and time-slot selections."`
	Record    cli.RecordCmd    `cmd:"" help:"Record a practice session."`
	Sessions  cli.SessionsCmd  `cmd:"" help:"List or delete recorded sessions."`
	Status    cli.StatusCmd    `cmd:"" help:"Show adherence status for the active path."`
	Rail      cli.RailCmd      `cmd:"" help:"Show the curriculum rail (ASCII calendar strip)."`
	Benchmark cli.BenchmarkCmd `cmd:"" help:"Record or clear the breath benchmark."`
	Vacation  cli.VacationCmd  `cmd:"" help:"Toggle vacation mode."`
	Settings  cli.SettingsCmd  `cmd:"" help:"Manage application settings."`
	Doctor    cli.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Tui       cli.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Backup    struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Path contract and adherence companion for daily practice"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	configPath := expandHome(CLI.Config)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(configPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store, err := selectStore(configPath)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{Store: store}

	// Load the store before running the command (init handles its own loading)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

// selectStore picks the storage backend from the config value: a PostgreSQL
// connection string, a .json file path, or a SQLite file path. The bare
// "postgres" keyword resolves the connection string from the OS keyring.
func selectStore(config string) (storage.Provider, error) {
	if config == "postgres" {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, errors.WithHint(
				fmt.Errorf("no connection string in OS keyring: %w", err),
				"Store one with 'praxis settings --set-connection-string'.")
		}
		config = connStr
	}

	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		if storage.HasEmbeddedCredentials(config) {
			return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed; use the OS keyring, environment variables, or .pgpass")
		}
		return storage.NewPostgresStore(config), nil
	}
	if strings.HasSuffix(config, ".json") {
		return storage.NewJSONStore(config), nil
	}
	return storage.NewSQLiteStore(config), nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
