// ABOUTME: Root Cobra command for the ironlog CLI.
// ABOUTME: Loads config and the persisted store in PersistentPreRunE, closes the backend after.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harperreed/ironlog/internal/config"
	"github.com/harperreed/ironlog/internal/logging"
	"github.com/harperreed/ironlog/internal/session"
	"github.com/harperreed/ironlog/internal/storage"
)

var (
	cfg     *config.Config
	backend storage.Backend
	store   *session.Store
	logger  *log.Logger

	dataDirFlag  string
	logLevelFlag string
)

// commands that never touch the store
var storeless = map[string]bool{
	"help":          true,
	"version":       true,
	"install-skill": true,
	"completion":    true,
	"migrate":       true,
}

var rootCmd = &cobra.Command{
	Use:   "ironlog",
	Short: "Strength training logger",
	Long: `ironlog is a local-first logger for strength training sessions.

QUICK START:

  $ ironlog split show                     # See the weekly training split
  $ ironlog session start 1                # Start day 1 (Push)
  $ ironlog session set chest_fly 20 12    # Log 20kg x 12
  $ ironlog session suggest chest_fly      # Log a set prefilled from last time
  $ ironlog session finish                 # Save and show the summary

ANALYTICS:

  $ ironlog history                        # Finished sessions
  $ ironlog tip lat_pulldown               # Progressive-overload tip
  $ ironlog stats                          # Workload ratio, muscle loads, recovery
  $ ironlog insight                        # AI coaching analysis

DATA STORAGE:

  State is one snapshot document, saved after every change. The default
  backend is SQLite at ~/.local/share/ironlog/ironlog.db. Set "backend":
  "charm" in ~/.config/ironlog/config.json to sync through Charm Cloud.

MCP INTEGRATION:

  Run 'ironlog mcp' to expose the same store to an AI assistant. The CLI
  and a running server take turns on the data directory: each change
  reloads whatever the other saved before applying its own.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		if storeless[cmd.Name()] {
			return nil
		}
		return openStore(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		var saveErr error
		if store != nil {
			saveErr = store.Err()
		}
		if err := closeStore(); err != nil {
			return err
		}
		if saveErr != nil {
			return fmt.Errorf("changes were not saved: %w", saveErr)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() error {
	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dataDirFlag != "" {
		c.DataDir = dataDirFlag
	}
	if logLevelFlag != "" {
		c.LogLevel = logLevelFlag
	}
	cfg = c
	logger = logging.New(os.Stderr, cfg.GetLogLevel())
	return nil
}

func openStore(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	snap, err := storage.LoadSnapshot(ctx, b)
	if err != nil {
		_ = b.Close()
		return fmt.Errorf("failed to load data: %w", err)
	}
	p := storage.NewPersister(b,
		storage.WithLock(storage.NewLock(cfg.GetDataDir())),
		storage.WithPersisterLogger(logger.WithPrefix("storage")),
	)
	backend = b
	store = session.New(nil,
		session.WithSnapshot(snap),
		session.WithPersister(p),
		session.WithLogger(logger.WithPrefix("session")),
	)
	return nil
}

// checkSaved reports a failed save before a command confirms success.
func checkSaved() error {
	if err := store.Err(); err != nil {
		return fmt.Errorf("changes were not saved: %w", err)
	}
	return nil
}

func closeStore() error {
	store = nil
	if backend == nil {
		return nil
	}
	err := backend.Close()
	backend = nil
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
}
