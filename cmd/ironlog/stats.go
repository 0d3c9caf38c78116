// ABOUTME: CLI commands for derived training metrics.
// ABOUTME: Workload ratio, muscle loads, recovery, weekly reps, and progression tips.
package main

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/ironlog/internal/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workload, muscle loads, recovery, and weekly reps",
	Long: `Show metrics derived from finished sessions and recovery logs.

  Workload   acute (7 day) and chronic (28 day weekly average) volume and
             their ratio. 0.8 to 1.3 is the optimal band.
  Muscles    7 day volume per muscle group.
  Recovery   average sleep and energy/motivation score of the last 5 logs.
  Week       reps per day for the last 7 days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		f := store.FatigueReport(now)

		color.New(color.Bold).Println("Workload")
		fmt.Printf("  Acute:   %g\n", f.Workload.Acute)
		fmt.Printf("  Chronic: %g\n", f.Workload.Chronic)
		fmt.Printf("  Ratio:   %.2f %s\n\n", f.Workload.Ratio, statusText(f.Status))

		if len(f.MuscleLoads) > 0 {
			groups := make([]string, 0, len(f.MuscleLoads))
			for g := range f.MuscleLoads {
				groups = append(groups, g)
			}
			sort.Slice(groups, func(i, j int) bool {
				return f.MuscleLoads[groups[i]] > f.MuscleLoads[groups[j]]
			})
			rows := make([][]string, len(groups))
			for i, g := range groups {
				rows[i] = []string{g, fmt.Sprintf("%g", f.MuscleLoads[g])}
			}
			fmt.Println(renderTable([]string{"Muscle group", "Volume (7d)"}, rows, []columnAlignment{alignLeft, alignRight}))
			fmt.Println()
		}

		color.New(color.Bold).Println("Recovery")
		if f.Recovery.Samples == 0 {
			fmt.Println("  No recovery logs.")
		} else {
			fmt.Printf("  Sleep: %.1f h  Score: %.0f%%  (%d logs)\n", f.Recovery.AvgSleep, f.Recovery.Score*100, f.Recovery.Samples)
		}
		fmt.Println()

		week := store.WeeklyReps(now)
		rows := make([][]string, 0, len(week.Days))
		for _, d := range week.Days {
			rows = append(rows, []string{d.Label, d.Date.Format("01-02"), strconv.Itoa(d.Reps)})
		}
		fmt.Println(renderTable([]string{"Day", "Date", "Reps"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
		fmt.Printf("Total %d reps  Active days %d  Avg %d/day  Consistency %d%%\n",
			week.TotalReps, week.ActiveDays, week.AvgPerDay, week.Consistency)
		return nil
	},
}

var tipCmd = &cobra.Command{
	Use:   "tip <exercise>",
	Short: "Show a progressive-overload tip for an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tip := store.ProgressionTip(args[0])
		fmt.Printf("%s\n", color.New(color.Bold).Sprint(store.ExerciseName(args[0])))
		switch tip.Status {
		case analytics.TipIncrease:
			color.Green("  %s", tip.Text)
		case analytics.TipDrop:
			color.Red("  %s", tip.Text)
		default:
			color.Yellow("  %s", tip.Text)
		}
		w, r := store.SuggestNextSet(args[0])
		if w > 0 || r > 0 {
			fmt.Printf("  Next set: %s x %d\n", weightText(w), r)
		}
		return nil
	},
}

func statusText(s analytics.LoadStatus) string {
	switch s {
	case analytics.LoadOver:
		return color.RedString("(%s)", s)
	case analytics.LoadUnder:
		return color.YellowString("(%s)", s)
	default:
		return color.GreenString("(%s)", s)
	}
}

func init() {
	rootCmd.AddCommand(statsCmd, tipCmd)
}
