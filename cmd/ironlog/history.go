// ABOUTME: CLI commands for finished sessions.
// ABOUTME: Lists, shows, and deletes workouts from history.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyDay   int
	deleteYes    bool
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "List finished sessions",
	Long: `List finished sessions, newest first.

The ID column is an 8-character prefix usable with 'history show' and
'history delete'.

EXAMPLES:

  ironlog history            # Last 20 sessions
  ironlog history -n 50      # Last 50 sessions
  ironlog history --day 3    # Only leg days`,
	RunE: func(cmd *cobra.Command, args []string) error {
		history := store.History()
		if len(history) == 0 {
			fmt.Println("No finished sessions yet.")
			return nil
		}

		rows := make([][]string, 0, len(history))
		for _, w := range history {
			if historyDay > 0 && w.DayNumber != historyDay {
				continue
			}
			duration := "-"
			if w.EndTime != nil {
				duration = fmt.Sprintf("%d min", int(w.EndTime.Sub(w.StartTime).Minutes()))
			}
			rows = append(rows, []string{
				shortID(w.ID),
				w.StartTime.Local().Format("2006-01-02 15:04"),
				truncate(w.DayName, 32),
				duration,
				strconv.Itoa(w.SetCount()),
				fmt.Sprintf("%g", w.Volume()),
			})
			if historyLimit > 0 && len(rows) >= historyLimit {
				break
			}
		}
		fmt.Println(renderTable(
			[]string{"ID", "Date", "Day", "Duration", "Sets", "Volume"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
		))
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a finished session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := findWorkout(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint(w.DayName), color.New(color.Faint).Sprint(w.ID.String()))
		fmt.Printf("Started: %s\n", w.StartTime.Local().Format("2006-01-02 15:04"))
		if w.EndTime != nil {
			fmt.Printf("Duration: %d min\n", int(w.EndTime.Sub(w.StartTime).Minutes()))
		}
		fmt.Printf("Volume: %g  Sets: %d\n", w.Volume(), w.SetCount())
		if w.Notes != "" {
			fmt.Printf("Notes: %s\n", w.Notes)
		}
		fmt.Println()

		rows := [][]string{}
		for _, g := range w.Exercises {
			for i, s := range g.Sets {
				name := ""
				if i == 0 {
					name = store.ExerciseName(g.ExerciseID)
				}
				rir := ""
				if s.RIR != nil {
					rir = strconv.Itoa(int(*s.RIR))
				}
				failure := ""
				if s.IsFailure {
					failure = "yes"
				}
				rows = append(rows, []string{name, string(s.Type), fmt.Sprintf("%g", float64(s.Weight)), strconv.Itoa(int(s.Reps)), rir, failure})
			}
		}
		fmt.Println(renderTable(
			[]string{"Exercise", "Type", "Weight", "Reps", "RIR", "Failure"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
		))
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm", "del"},
	Short:   "Delete a finished session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := findWorkout(args[0])
		if err != nil {
			return err
		}
		if !deleteYes {
			return fmt.Errorf("deleting %s (%s) cannot be undone; pass --yes to confirm", shortID(w.ID), w.DayName)
		}
		if !store.DeleteWorkout(w.ID) {
			return fmt.Errorf("workout not found: %s", args[0])
		}
		color.Green("✓ Deleted %s", shortID(w.ID))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of sessions to show (0 for all)")
	historyCmd.Flags().IntVar(&historyDay, "day", 0, "only show sessions for this training day")
	historyDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "confirm deletion")

	historyCmd.AddCommand(historyShowCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
