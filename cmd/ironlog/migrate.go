// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Moves the snapshot between SQLite and Charm KV.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/ironlog/internal/config"
	"github.com/harperreed/ironlog/internal/models"
	"github.com/harperreed/ironlog/internal/session"
	"github.com/harperreed/ironlog/internal/storage"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between SQLite and Charm KV",
	Long: `Copy all ironlog data from one storage backend to another.

The destination snapshot is overwritten. Afterwards set "backend" in
~/.config/ironlog/config.json to use the destination.

USAGE:

  ironlog migrate --from sqlite --to charm --dry-run   # Preview
  ironlog migrate --from sqlite --to charm             # Copy to Charm Cloud
  ironlog migrate --from charm --to sqlite             # Copy back to local`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %s", migrateFrom)
		}
		src, err := cfg.OpenBackend(migrateFrom)
		if err != nil {
			return fmt.Errorf("open %s: %w", migrateFrom, err)
		}
		defer func() { _ = src.Close() }()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()
			data, err := src.Load(cmd.Context(), models.SnapshotName)
			if errors.Is(err, storage.ErrSnapshotNotFound) {
				fmt.Printf("Nothing stored in %s.\n", migrateFrom)
				return nil
			}
			if err != nil {
				return err
			}
			snap, err := session.DecodeSnapshot(data)
			if err != nil {
				return err
			}
			fmt.Printf("Would copy %d workouts, %d body metrics, %d recovery logs (%d bytes) from %s to %s.\n",
				len(snap.Workouts), len(snap.BodyMetrics), len(snap.RecoveryLogs), len(data), migrateFrom, migrateTo)
			return nil
		}

		dst, err := cfg.OpenBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("open %s: %w", migrateTo, err)
		}
		defer func() { _ = dst.Close() }()

		sum, err := storage.MigrateData(cmd.Context(), src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		color.Green("✓ Migrated %s → %s", migrateFrom, migrateTo)
		fmt.Printf("  Workouts:      %d\n", sum.Workouts)
		fmt.Printf("  Body metrics:  %d\n", sum.BodyMetrics)
		fmt.Printf("  Recovery logs: %d\n", sum.RecoveryLogs)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", config.BackendSQLite, "source backend: sqlite or charm")
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendCharm, "destination backend: sqlite or charm")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
