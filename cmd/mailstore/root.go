package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vullk4n/gestao-de-emails/internal/logging"
	"github.com/vullk4n/gestao-de-emails/internal/model"
	"github.com/vullk4n/gestao-de-emails/internal/store"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	configPath string

	ojson bool

	rootCmd = &cobra.Command{
		Use:                "mailstore",
		Short:              "Organize email records in a local database",
		Long:               "mailstore keeps emails, their categories, flags and attachment metadata in a single SQLite file.",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  openApp,
		PersistentPostRunE: closeApp,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&ojson, "json", false, "output as JSON")

	rootCmd.AddCommand(
		initCommand(),
		categoryCommand(),
		emailCommand(),
		attachCommand(),
		searchCommand(),
		statsCommand(),
		purgeCommand(),
		ingestCommand(),
		userCommand(),
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version
}

// app is the per-invocation state shared by subcommands.
type app struct {
	cfg        *model.AppConfig
	configPath string
	store      *store.SQLiteStore
	logger     *log.Logger
	logFile    *os.File
}

type appContextKey struct{}

func appFromContext(ctx context.Context) *app {
	if a, ok := ctx.Value(appContextKey{}).(*app); ok {
		return a
	}
	return nil
}

// openApp loads the configuration, builds the logger and opens the store.
// Every invocation initializes the schema, which is a no-op once applied.
func openApp(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	path := configPath
	if path == "" {
		path = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(path)
	if err != nil {
		return err
	}

	logger, f, err := logging.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	ctx = log.WithContext(ctx, logger)

	s, err := store.NewSQLiteStore(ctx, cfg.Database.Path,
		store.WithLogger(logger),
		store.WithBusyTimeout(cfg.Database.BusyTimeout),
	)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return fmt.Errorf("opening %s: %w", cfg.Database.Path, err)
	}

	cmd.SetContext(context.WithValue(ctx, appContextKey{}, &app{
		cfg:        cfg,
		configPath: path,
		store:      s,
		logger:     logger,
		logFile:    f,
	}))
	return nil
}

func closeApp(cmd *cobra.Command, _ []string) error {
	a := appFromContext(cmd.Context())
	if a == nil {
		return nil
	}
	if a.logFile != nil {
		defer a.logFile.Close()
	}
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

func initCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database and write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a := appFromContext(ctx)

			if _, err := os.Stat(a.configPath); os.IsNotExist(err) {
				if err := model.SaveConfig(a.configPath, a.cfg); err != nil {
					return err
				}
				cmd.Printf("Wrote config %s\n", a.configPath)
			}

			categories, err := a.store.ListCategories(ctx)
			if err != nil {
				return err
			}
			cmd.Printf("Database %s ready with %d categories\n", a.cfg.Database.Path, len(categories))
			return nil
		},
	}

	return cmd
}
