// ABOUTME: CLI commands for the weekly training split.
// ABOUTME: Shows days and edits each day's exercise template.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Show and edit the weekly training split",
	Long: `Show and edit the weekly training split. Each day holds an ordered
exercise template that seeds new sessions.

EXAMPLES:

  ironlog split show                           # All days
  ironlog split show 1                         # Day 1 with exercise details
  ironlog split swap 1 chest_fly cable_crossover
  ironlog split add 4 hammer_curls
  ironlog split move 2 1 3                     # Day 2: move exercise 1 to position 3`,
}

var splitShowCmd = &cobra.Command{
	Use:   "show [day]",
	Short: "Show the split or one day",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			rows := [][]string{}
			for _, d := range store.TrainingDays() {
				count := strconv.Itoa(len(d.ExerciseIDs))
				if d.IsRestDay() {
					count = "rest"
				}
				rows = append(rows, []string{strconv.Itoa(d.Number), d.Name, d.Focus, count})
			}
			fmt.Println(renderTable([]string{"Day", "Name", "Focus", "Exercises"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight}))
			return nil
		}

		n, err := parseDay(args[0])
		if err != nil {
			return err
		}
		d, ok := store.TrainingDay(n)
		if !ok {
			return fmt.Errorf("no training day %d", n)
		}
		fmt.Printf("%s  %s\n", color.New(color.Bold).Sprintf("Day %d: %s", d.Number, d.Name), color.New(color.Faint).Sprint(d.Focus))
		if d.IsRestDay() {
			fmt.Println("Rest day.")
			return nil
		}
		rows := make([][]string, len(d.ExerciseIDs))
		for i, id := range d.ExerciseIDs {
			ex, _ := store.Lookup(id)
			rows[i] = []string{strconv.Itoa(i + 1), id, ex.DisplayName(), ex.TargetMuscle}
		}
		fmt.Println(renderTable([]string{"#", "ID", "Exercise", "Target"}, rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}))
		return nil
	},
}

var splitSwapCmd = &cobra.Command{
	Use:   "swap <day> <old-exercise> <new-exercise>",
	Short: "Replace an exercise in a day's template",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseDay(args[0])
		if err != nil {
			return err
		}
		if _, ok := store.Lookup(args[2]); !ok {
			return fmt.Errorf("unknown exercise: %s", args[2])
		}
		if !store.SwapDayExercise(n, args[1], args[2]) {
			return fmt.Errorf("%s is not in day %d", args[1], n)
		}
		color.Green("✓ Day %d: %s → %s", n, store.ExerciseName(args[1]), store.ExerciseName(args[2]))
		return nil
	},
}

var splitAddCmd = &cobra.Command{
	Use:   "add <day> <exercise>",
	Short: "Append an exercise to a day's template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseDay(args[0])
		if err != nil {
			return err
		}
		if _, ok := store.Lookup(args[1]); !ok {
			return fmt.Errorf("unknown exercise: %s", args[1])
		}
		if !store.AddDayExercise(n, args[1]) {
			return fmt.Errorf("could not add %s to day %d", args[1], n)
		}
		color.Green("✓ Day %d: added %s", n, store.ExerciseName(args[1]))
		return nil
	},
}

var splitRemoveCmd = &cobra.Command{
	Use:     "remove <day> <exercise>",
	Aliases: []string{"rm"},
	Short:   "Remove an exercise from a day's template",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseDay(args[0])
		if err != nil {
			return err
		}
		if !store.RemoveDayExercise(n, args[1]) {
			return fmt.Errorf("%s is not in day %d", args[1], n)
		}
		color.Green("✓ Day %d: removed %s", n, store.ExerciseName(args[1]))
		return nil
	},
}

var splitMoveCmd = &cobra.Command{
	Use:   "move <day> <from> <to>",
	Short: "Reorder a day's template (1-based positions)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseDay(args[0])
		if err != nil {
			return err
		}
		from, to, err := parsePositions(args[1], args[2])
		if err != nil {
			return err
		}
		if !store.ReorderDayExercise(n, from, to) {
			return fmt.Errorf("positions out of range for day %d", n)
		}
		color.Green("✓ Day %d: moved %d to %d", n, from+1, to+1)
		return nil
	},
}

func parseDay(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid day: %s", s)
	}
	return n, nil
}

func init() {
	splitCmd.AddCommand(splitShowCmd, splitSwapCmd, splitAddCmd, splitRemoveCmd, splitMoveCmd)
	rootCmd.AddCommand(splitCmd)
}
