// ABOUTME: CLI commands for body-weight tracking.
// ABOUTME: Logs and lists body metrics.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/ironlog/internal/models"
)

var (
	bodyFat   float64
	bodyAt    string
	bodyLimit int
)

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Track body weight and body fat",
}

var bodyAddCmd = &cobra.Command{
	Use:   "add <weight>",
	Short: "Log body weight",
	Long: `Log a body-weight sample, optionally with body fat percentage.

EXAMPLES:

  ironlog body add 82.5
  ironlog body add 82.5 --fat 14.2
  ironlog body add 83 --at "2025-01-10 07:00"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := models.ParseWeight(args[0])
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[0])
		}
		m := models.NewBodyMetric(w)
		if cmd.Flags().Changed("fat") {
			if bodyFat < 0 || bodyFat > 100 {
				return fmt.Errorf("body fat must be 0-100, got %g", bodyFat)
			}
			m.WithBodyFat(bodyFat)
		}
		if bodyAt != "" {
			t, err := parseTime(bodyAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", bodyAt)
			}
			m.WithTimestamp(t)
		}

		saved := store.AddBodyMetric(*m)
		if err := checkSaved(); err != nil {
			return err
		}
		color.Green("✓ Logged body weight")
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint(shortID(saved.ID)), weightText(saved.Weight))
		return nil
	},
}

var bodyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List body metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics := store.BodyMetrics()
		if len(metrics) == 0 {
			fmt.Println("No body metrics logged.")
			return nil
		}
		if bodyLimit > 0 && len(metrics) > bodyLimit {
			metrics = metrics[:bodyLimit]
		}
		rows := make([][]string, len(metrics))
		for i, m := range metrics {
			fat := "-"
			if m.BodyFat != nil {
				fat = strconv.FormatFloat(*m.BodyFat, 'f', 1, 64) + "%"
			}
			rows[i] = []string{shortID(m.ID), m.Timestamp.Local().Format("2006-01-02 15:04"), weightText(m.Weight), fat}
		}
		fmt.Println(renderTable([]string{"ID", "Date", "Weight", "Body fat"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight}))
		return nil
	},
}

func init() {
	bodyAddCmd.Flags().Float64Var(&bodyFat, "fat", 0, "body fat percentage")
	bodyAddCmd.Flags().StringVar(&bodyAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	bodyListCmd.Flags().IntVarP(&bodyLimit, "limit", "n", 20, "number of entries to show (0 for all)")

	bodyCmd.AddCommand(bodyAddCmd, bodyListCmd)
	rootCmd.AddCommand(bodyCmd)
}
