// ABOUTME: CLI commands for exporting and importing ironlog data.
// ABOUTME: Supports JSON, YAML, and Markdown export; JSON import replaces all data.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/ironlog/internal/storage"
)

var (
	exportOutput string
	exportSince  string
	importYes    bool
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export training data",
	Long: `Export training data in various formats.

FORMATS:

  json       Full snapshot (suitable for backup/restore)
  yaml       Workouts grouped by training day (human-readable)
  markdown   Markdown tables (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include data since this date (YYYY-MM-DD, markdown only)

EXAMPLES:

  ironlog export json -o backup.json
  ironlog export yaml
  ironlog export markdown --since 2025-01-01`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := store.Snapshot()
		now := time.Now()

		var data []byte
		var err error
		switch args[0] {
		case "json":
			data, err = storage.ExportJSON(snap, now)
		case "yaml":
			data, err = storage.ExportYAML(snap, store, now)
		case "markdown":
			var since *time.Time
			if exportSince != "" {
				t, err := time.ParseInLocation("2006-01-02", exportSince, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			data = []byte(storage.ExportMarkdown(snap, store, since, now))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data from a JSON backup",
	Long: `Replace all data with a JSON backup made by 'ironlog export json'.

The current history, settings, and active session are overwritten, so
--yes is required.

EXAMPLES:

  ironlog import backup.json --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		snap, err := storage.ImportJSON(data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		if !importYes {
			return fmt.Errorf("import replaces all %d workouts with %d from %s; pass --yes to confirm",
				len(store.History()), len(snap.Workouts), args[0])
		}
		store.Restore(snap)
		color.Green("✓ Imported %d workouts from %s", len(snap.Workouts), args[0])
		return nil
	},
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data and restore defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("reset deletes all workouts, metrics, and settings; pass --yes to confirm")
		}
		store.Reset()
		color.Green("✓ All data reset")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include data since date (YYYY-MM-DD)")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "confirm replacing all data")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "confirm reset")

	rootCmd.AddCommand(exportCmd, importCmd, resetCmd)
}
