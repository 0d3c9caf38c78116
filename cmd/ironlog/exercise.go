// ABOUTME: CLI commands for the exercise catalog.
// ABOUTME: Searches local and web catalogs, shows details, and adds custom exercises.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/ironlog/internal/catalog"
	"github.com/harperreed/ironlog/internal/models"
)

var (
	searchGroup    string
	searchWeb      bool
	searchRegister bool

	customGroup     string
	customTarget    string
	customEquipment string
	customNotes     string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Browse the exercise catalog",
}

var exerciseSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search exercises by name and muscle group",
	Long: `Search the built-in and custom catalog. With --web, query ExerciseDB
instead (needs an API key in config or IRONLOG_EXERCISE_API_KEY); add
--register to save the results as custom exercises.

EXAMPLES:

  ironlog exercise search curl
  ironlog exercise search --group Back
  ironlog exercise search "face pull" --web --register`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		if searchWeb {
			return searchRemote(cmd.Context(), query)
		}

		results := store.SearchExercises(query, searchGroup)
		if len(results) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}
		rows := make([][]string, len(results))
		for i, ex := range results {
			rows[i] = []string{ex.ID, ex.DisplayName(), ex.MuscleGroup, ex.TargetMuscle, string(ex.Source)}
		}
		fmt.Println(renderTable([]string{"ID", "Name", "Group", "Target", "Source"}, rows, nil))
		return nil
	},
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <exercise>",
	Short: "Show exercise details and logged history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, ok := store.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown exercise: %s", args[0])
		}
		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint(ex.DisplayName()), color.New(color.Faint).Sprint(ex.ID))
		fmt.Printf("Group: %s  Target: %s\n", ex.MuscleGroup, ex.TargetMuscle)
		if ex.Equipment != "" {
			fmt.Printf("Equipment: %s\n", ex.Equipment)
		}
		if ex.Notes != "" {
			fmt.Printf("Notes: %s\n", ex.Notes)
		}
		if ex.PainWarning != "" {
			color.Yellow("! %s", ex.PainWarning)
		}
		for i, step := range append(ex.FormSteps, ex.Instructions...) {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
		if ex.VideoURL != "" {
			fmt.Printf("Video: %s\n", ex.VideoURL)
		}

		sets := store.ExerciseHistory(ex.ID)
		if len(sets) == 0 {
			return nil
		}
		fmt.Println()
		rows := make([][]string, len(sets))
		for i, s := range sets {
			rows[i] = []string{s.Timestamp.Local().Format("2006-01-02"), string(s.Type), weightText(s.Weight), fmt.Sprint(s.Reps)}
		}
		fmt.Println(renderTable([]string{"Date", "Type", "Weight", "Reps"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight}))
		fmt.Println(color.New(color.Faint).Sprint(store.ProgressionTip(ex.ID).Text))
		return nil
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <id> <name>",
	Short: "Add a custom exercise",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex := models.Exercise{
			ID:           args[0],
			Name:         args[1],
			MuscleGroup:  customGroup,
			TargetMuscle: customTarget,
			Equipment:    customEquipment,
			Notes:        customNotes,
			Source:       models.SourceCustom,
		}
		if !store.RegisterCustomExercise(ex) {
			return fmt.Errorf("exercise %s already exists", args[0])
		}
		color.Green("✓ Added %s", ex.DisplayName())
		return nil
	},
}

func searchRemote(ctx context.Context, query string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	client := catalog.NewRemoteClient(cfg.RemoteCatalog(), catalog.WithLogger(logger.WithPrefix("catalog")))

	var results []catalog.WebExercise
	switch {
	case query != "":
		results = client.SearchByName(ctx, query)
	case searchGroup != "":
		results = client.ListByBodyPart(ctx, catalog.MapFilterToBodyPart(searchGroup))
	default:
		return fmt.Errorf("web search needs a query or --group")
	}
	if len(results) == 0 {
		fmt.Println("No exercises found.")
		return nil
	}

	rows := make([][]string, len(results))
	registered := 0
	for i, w := range results {
		ex := w.ToExercise()
		rows[i] = []string{ex.ID, ex.DisplayName(), ex.MuscleGroup, strings.ToLower(w.Equipment)}
		if searchRegister && store.RegisterCustomExercise(ex) {
			registered++
		}
	}
	fmt.Println(renderTable([]string{"ID", "Name", "Group", "Equipment"}, rows, nil))
	if searchRegister {
		color.Green("✓ Registered %d exercises", registered)
	}
	return nil
}

func init() {
	exerciseSearchCmd.Flags().StringVarP(&searchGroup, "group", "g", "", "muscle group filter")
	exerciseSearchCmd.Flags().BoolVar(&searchWeb, "web", false, "search ExerciseDB")
	exerciseSearchCmd.Flags().BoolVar(&searchRegister, "register", false, "save web results as custom exercises")

	exerciseAddCmd.Flags().StringVarP(&customGroup, "group", "g", "", "muscle group")
	exerciseAddCmd.Flags().StringVar(&customTarget, "target", "", "target muscle")
	exerciseAddCmd.Flags().StringVar(&customEquipment, "equipment", "", "equipment")
	exerciseAddCmd.Flags().StringVarP(&customNotes, "notes", "n", "", "notes")

	exerciseCmd.AddCommand(exerciseSearchCmd, exerciseShowCmd, exerciseAddCmd)
	rootCmd.AddCommand(exerciseCmd)
}
