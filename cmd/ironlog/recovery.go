// ABOUTME: CLI commands for recovery logging.
// ABOUTME: Sleep, energy, motivation, and joint pain samples.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/ironlog/internal/models"
)

var (
	recoverySleepQuality int
	recoveryEnergy       int
	recoveryMotivation   int
	recoveryLeftElbow    int
	recoveryRightElbow   int
	recoveryLowerBack    int
	recoveryNotes        string
	recoveryAt           string
	recoveryLimit        int
)

var recoveryCmd = &cobra.Command{
	Use:     "recovery",
	Aliases: []string{"rec"},
	Short:   "Track sleep, energy, and joint pain",
}

var recoveryAddCmd = &cobra.Command{
	Use:   "add <sleep-hours>",
	Short: "Log a recovery sample",
	Long: `Log a recovery sample. Quality, energy, and motivation are 1-5
(default 3). Pain is 0-10 per joint (default 0).

EXAMPLES:

  ironlog recovery add 7.5
  ironlog recovery add 6 --energy 2 --lower-back 4 --notes "stiff"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sleep, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid sleep hours: %s", args[0])
		}
		l := models.NewRecoveryLog(sleep)
		l.SleepQuality = recoverySleepQuality
		l.Energy = recoveryEnergy
		l.Motivation = recoveryMotivation
		l.Pain = models.PainLevels{
			LeftElbow:  recoveryLeftElbow,
			RightElbow: recoveryRightElbow,
			LowerBack:  recoveryLowerBack,
		}
		l.Notes = recoveryNotes
		if recoveryAt != "" {
			t, err := parseTime(recoveryAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", recoveryAt)
			}
			l.Timestamp = t
		}

		saved, err := store.AddRecoveryLog(*l)
		if err != nil {
			return err
		}
		color.Green("✓ Logged recovery")
		fmt.Printf("  %s sleep %.1fh  energy %d  motivation %d\n",
			color.New(color.Faint).Sprint(shortID(saved.ID)), saved.SleepHours, saved.Energy, saved.Motivation)
		return nil
	},
}

var recoveryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recovery logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		logs := store.RecoveryLogs()
		if len(logs) == 0 {
			fmt.Println("No recovery logs.")
			return nil
		}
		if recoveryLimit > 0 && len(logs) > recoveryLimit {
			logs = logs[:recoveryLimit]
		}
		rows := make([][]string, len(logs))
		for i, l := range logs {
			rows[i] = []string{
				l.Timestamp.Local().Format("2006-01-02"),
				strconv.FormatFloat(l.SleepHours, 'f', 1, 64),
				strconv.Itoa(l.SleepQuality),
				strconv.Itoa(l.Energy),
				strconv.Itoa(l.Motivation),
				fmt.Sprintf("%d/%d/%d", l.Pain.LeftElbow, l.Pain.RightElbow, l.Pain.LowerBack),
				truncate(l.Notes, 30),
			}
		}
		fmt.Println(renderTable(
			[]string{"Date", "Sleep", "Quality", "Energy", "Motivation", "Pain L/R/Back", "Notes"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
		))
		return nil
	},
}

func init() {
	f := recoveryAddCmd.Flags()
	f.IntVar(&recoverySleepQuality, "quality", 3, "sleep quality 1-5")
	f.IntVar(&recoveryEnergy, "energy", 3, "energy 1-5")
	f.IntVar(&recoveryMotivation, "motivation", 3, "motivation 1-5")
	f.IntVar(&recoveryLeftElbow, "left-elbow", 0, "left elbow pain 0-10")
	f.IntVar(&recoveryRightElbow, "right-elbow", 0, "right elbow pain 0-10")
	f.IntVar(&recoveryLowerBack, "lower-back", 0, "lower back pain 0-10")
	f.StringVarP(&recoveryNotes, "notes", "n", "", "notes")
	f.StringVar(&recoveryAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	recoveryListCmd.Flags().IntVarP(&recoveryLimit, "limit", "n", 20, "number of entries to show (0 for all)")

	recoveryCmd.AddCommand(recoveryAddCmd, recoveryListCmd)
	rootCmd.AddCommand(recoveryCmd)
}
