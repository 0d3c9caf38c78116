// ABOUTME: CLI commands for the active training session.
// ABOUTME: Start, log and edit sets, reorder, finish, and cancel.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harperreed/ironlog/internal/controller"
	"github.com/harperreed/ironlog/internal/models"
	"github.com/harperreed/ironlog/internal/session"
	"github.com/harperreed/ironlog/internal/timer"
)

var (
	startName    string
	startReplace bool

	setType    string
	setRIR     string
	setFailure bool
	setNotes   string
	setRest    bool

	editWeight  string
	editReps    string
	editType    string
	editRIR     string
	editNoRIR   bool
	editFailure string
	editNotes   string

	finishNotes string
	cancelYes   bool
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Run the active training session",
	Long: `Run the active training session.

Only one session is active at a time. It is saved after every change, so
closing the terminal never loses logged sets.

EXAMPLES:

  ironlog session start 2                 # Start day 2 with its exercises
  ironlog session set lat_pulldown 45 10  # Log a working set
  ironlog session set lat_pulldown 50 8 --failure --rest
  ironlog session show                    # Current sets and totals
  ironlog session finish --notes "felt strong"`,
}

var sessionStartCmd = &cobra.Command{
	Use:   "start <day>",
	Short: "Start a session for a training day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid day: %s", args[0])
		}
		var opts []session.StartOption
		if startReplace {
			opts = append(opts, session.ReplaceActive())
		}
		if err := store.StartSession(day, startName, opts...); err != nil {
			if errors.Is(err, session.ErrSessionActive) {
				return fmt.Errorf("a session is already running; finish it, cancel it, or pass --replace")
			}
			return err
		}

		active := store.Active()
		color.Green("✓ Started %s", active.DayName)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(shortID(active.ID)))
		for i, g := range active.Exercises {
			fmt.Printf("  %d. %s\n", i+1, store.ExerciseName(g.ExerciseID))
		}
		return nil
	},
}

var sessionAddCmd = &cobra.Command{
	Use:   "add <exercise>",
	Short: "Add an exercise to the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if store.Active() == nil {
			return controller.ErrNoActiveSession
		}
		if !store.AddExercise(args[0]) {
			return fmt.Errorf("%s is already in the session", args[0])
		}
		color.Green("✓ Added %s", store.ExerciseName(args[0]))
		return nil
	},
}

var sessionRemoveCmd = &cobra.Command{
	Use:     "remove <exercise>",
	Aliases: []string{"rm"},
	Short:   "Remove an exercise and its sets",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if store.Active() == nil {
			return controller.ErrNoActiveSession
		}
		if !store.RemoveExercise(args[0]) {
			return fmt.Errorf("%s is not in the session", args[0])
		}
		color.Green("✓ Removed %s", store.ExerciseName(args[0]))
		return nil
	},
}

var sessionMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Reorder exercises (1-based positions)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := parsePositions(args[0], args[1])
		if err != nil {
			return err
		}
		ctl, _ := newController(false)
		if !ctl.Reorder(from, to) {
			return fmt.Errorf("positions out of range")
		}
		color.Green("✓ Moved exercise %d to %d", from+1, to+1)
		return nil
	},
}

var sessionSetCmd = &cobra.Command{
	Use:   "set <exercise> <weight> <reps>",
	Short: "Log a set",
	Long: `Log a set for an exercise in the active session. The exercise is added
to the session when missing.

With --rest the set is marked complete and, when auto-start is on, the
rest countdown runs in the foreground until it expires. Ctrl-C skips it.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		exerciseID := args[0]
		w, err := models.ParseWeight(args[1])
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[1])
		}
		r, err := models.ParseReps(args[2])
		if err != nil {
			return fmt.Errorf("invalid reps: %s", args[2])
		}
		st, err := models.ParseSetType(setType)
		if err != nil {
			return err
		}
		in := models.SetInput{Type: st, Weight: w, Reps: r, IsFailure: setFailure, Notes: setNotes}
		if cmd.Flags().Changed("rir") {
			rir, err := models.ParseRIR(setRIR)
			if err != nil {
				return fmt.Errorf("invalid rir: %s", setRIR)
			}
			in.RIR = &rir
		}

		if store.Active() == nil {
			return controller.ErrNoActiveSession
		}
		store.AddExercise(exerciseID)
		id, ok := store.AddSet(exerciseID, in)
		if err := checkSaved(); err != nil {
			return err
		}
		if !ok {
			return controller.ErrNoActiveSession
		}
		color.Green("✓ Logged %s", store.ExerciseName(exerciseID))
		fmt.Printf("  %s %s x %d\n", color.New(color.Faint).Sprint(shortID(id)), weightText(w), r)

		if setRest {
			return completeAndRest(cmd.Context(), exerciseID, id)
		}
		return nil
	},
}

var sessionSuggestCmd = &cobra.Command{
	Use:   "suggest <exercise>",
	Short: "Log a set prefilled from the previous session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if store.Active() == nil {
			return controller.ErrNoActiveSession
		}
		store.AddExercise(args[0])
		ctl, _ := newController(false)
		id, err := ctl.AddSuggestedSet(args[0])
		if err != nil {
			return err
		}
		set := lookupSet(args[0], id)
		color.Green("✓ Logged %s", store.ExerciseName(args[0]))
		fmt.Printf("  %s %s x %d\n", color.New(color.Faint).Sprint(shortID(id)), weightText(set.Weight), set.Reps)
		tip := store.ProgressionTip(args[0])
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(tip.Text))
		return nil
	},
}

var sessionEditCmd = &cobra.Command{
	Use:   "edit <exercise> <set-id>",
	Short: "Edit a logged set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		active := store.Active()
		if active == nil {
			return controller.ErrNoActiveSession
		}
		setID, err := findSet(active, args[0], args[1])
		if err != nil {
			return err
		}
		patch, err := buildPatch(cmd)
		if err != nil {
			return err
		}
		if !store.UpdateSet(args[0], setID, patch) {
			return fmt.Errorf("set not found: %s", args[1])
		}
		set := lookupSet(args[0], setID)
		color.Green("✓ Updated set %s", shortID(setID))
		fmt.Printf("  %s x %d (%s)\n", weightText(set.Weight), set.Reps, set.Type)
		return nil
	},
}

var sessionRemoveSetCmd = &cobra.Command{
	Use:   "rm-set <exercise> <set-id>",
	Short: "Remove a logged set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		active := store.Active()
		if active == nil {
			return controller.ErrNoActiveSession
		}
		setID, err := findSet(active, args[0], args[1])
		if err != nil {
			return err
		}
		store.RemoveSet(args[0], setID)
		color.Green("✓ Removed set %s", shortID(setID))
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		active := store.Active()
		if active == nil {
			fmt.Println("No active session.")
			return nil
		}
		stats, _ := store.ActiveStats()

		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint(active.DayName), color.New(color.Faint).Sprint(shortID(active.ID)))
		fmt.Printf("Elapsed: %s  Volume: %g  Sets: %d  Exercises: %d\n\n",
			stats.Elapsed.Truncate(time.Second), stats.Volume, stats.Sets, stats.Exercises)

		for i, g := range active.Exercises {
			ex, _ := store.Lookup(g.ExerciseID)
			fmt.Printf("%d. %s\n", i+1, color.New(color.Bold).Sprint(ex.DisplayName()))
			if ex.PainWarning != "" {
				fmt.Printf("   %s\n", color.YellowString("! %s", ex.PainWarning))
			}
			if prev := store.PreviousSessionSets(g.ExerciseID); len(prev) > 0 {
				fmt.Printf("   %s\n", color.New(color.Faint).Sprint("last time: "+formatSets(prev)))
			}
			for _, s := range g.Sets {
				fmt.Printf("   %s  %-8s %s x %d%s\n",
					color.New(color.Faint).Sprint(shortID(s.ID)), s.Type, weightText(s.Weight), s.Reps, setSuffix(s))
			}
		}
		return nil
	},
}

var sessionFinishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the session and show the summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, _ := newController(false)
		sum, err := ctl.Finish(finishNotes)
		if saveErr := checkSaved(); saveErr != nil {
			return saveErr
		}
		if err != nil {
			return err
		}
		printSummary(sum)
		store.ConsumeSummary()
		return nil
	},
}

var sessionCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the active session",
	Long: `Discard the active session without saving it to history.

Sessions with logged sets need --yes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, _ := newController(false)
		if err := ctl.Discard(cancelYes); err != nil {
			if errors.Is(err, controller.ErrConfirmationNeeded) {
				return fmt.Errorf("the session has logged sets; pass --yes to discard them")
			}
			return err
		}
		color.Green("✓ Session discarded")
		return nil
	},
}

// newController wires a rest timer to the store's settings. With foreground
// set, the countdown is printed and the returned context ends when the
// countdown stops.
func newController(foreground bool) (*controller.Controller, *restRun) {
	settings := store.Settings()
	rest := time.Duration(settings.DefaultRestSeconds) * time.Second
	bell := timer.Bell{W: os.Stdout}
	haptic := timer.NewHapticAlerter(bell, store)

	run := &restRun{}
	opts := []timer.Option{
		timer.WithAlerters(timer.NewToneAlerter(bell, store), haptic),
		timer.WithLogger(logger.WithPrefix("timer")),
	}
	if foreground {
		run.ctx, run.cancel = context.WithCancel(context.Background())
		opts = append(opts, timer.WithOnChange(func(remaining time.Duration, running bool) {
			if !running {
				fmt.Print("\r\033[K")
				run.cancel()
				return
			}
			fmt.Printf("\rRest %s ", formatClock(remaining))
		}))
	}
	run.timer = timer.New(rest, opts...)
	ctl := controller.New(store, run.timer,
		controller.WithHaptics(haptic),
		controller.WithLogger(logger.WithPrefix("controller")),
	)
	return ctl, run
}

type restRun struct {
	timer  *timer.RestTimer
	ctx    context.Context
	cancel context.CancelFunc
}

func completeAndRest(parent context.Context, exerciseID string, setID uuid.UUID) error {
	ctl, run := newController(true)
	defer run.cancel()

	started, err := ctl.CompleteSet(exerciseID, setID)
	if err != nil {
		return err
	}
	if _, running := run.timer.Remaining(); !started || !running {
		return nil
	}
	waitRest(parent, run)
	return nil
}

// waitRest blocks until the countdown ends or the user interrupts it.
func waitRest(parent context.Context, run *restRun) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		run.cancel()
	}()

	_ = run.timer.Run(run.ctx)
	if ctx.Err() != nil {
		run.timer.Skip()
		fmt.Println("Rest skipped.")
		return
	}
	color.Green("✓ Rest complete")
}

func buildPatch(cmd *cobra.Command) (models.SetPatch, error) {
	var patch models.SetPatch
	flags := cmd.Flags()
	if flags.Changed("weight") {
		w, err := models.ParseWeight(editWeight)
		if err != nil {
			return patch, fmt.Errorf("invalid weight: %s", editWeight)
		}
		patch.Weight = &w
	}
	if flags.Changed("reps") {
		r, err := models.ParseReps(editReps)
		if err != nil {
			return patch, fmt.Errorf("invalid reps: %s", editReps)
		}
		patch.Reps = &r
	}
	if flags.Changed("type") {
		st, err := models.ParseSetType(editType)
		if err != nil {
			return patch, err
		}
		patch.Type = &st
	}
	if flags.Changed("rir") {
		rir, err := models.ParseRIR(editRIR)
		if err != nil {
			return patch, fmt.Errorf("invalid rir: %s", editRIR)
		}
		patch.RIR = &rir
	}
	patch.ClearRIR = editNoRIR
	if flags.Changed("failure") {
		f, err := strconv.ParseBool(editFailure)
		if err != nil {
			return patch, fmt.Errorf("invalid failure flag: %s", editFailure)
		}
		patch.IsFailure = &f
	}
	if flags.Changed("notes") {
		notes := editNotes
		patch.Notes = &notes
	}
	return patch, nil
}

func parsePositions(a, b string) (int, int, error) {
	from, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid position: %s", a)
	}
	to, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid position: %s", b)
	}
	return from - 1, to - 1, nil
}

func lookupSet(exerciseID string, id uuid.UUID) models.Set {
	active := store.Active()
	if active == nil {
		return models.Set{}
	}
	if g := active.Group(exerciseID); g != nil {
		for _, s := range g.Sets {
			if s.ID == id {
				return s
			}
		}
	}
	return models.Set{}
}

func formatSets(sets []models.Set) string {
	parts := make([]string, len(sets))
	for i, s := range sets {
		parts[i] = fmt.Sprintf("%gx%d", float64(s.Weight), s.Reps)
	}
	return strings.Join(parts, ", ")
}

func setSuffix(s models.Set) string {
	var b strings.Builder
	if s.RIR != nil {
		fmt.Fprintf(&b, "  RIR %d", *s.RIR)
	}
	if s.IsFailure {
		b.WriteString("  " + color.RedString("failure"))
	}
	if s.Notes != "" {
		b.WriteString("  " + color.New(color.Faint).Sprint("("+s.Notes+")"))
	}
	return b.String()
}

func formatClock(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func printSummary(sum *models.WorkoutSummary) {
	color.Green("✓ Finished %s", sum.DayName)
	fmt.Printf("  Duration:  %d min\n", sum.DurationMinutes)
	fmt.Printf("  Volume:    %g\n", sum.TotalVolume)
	fmt.Printf("  Exercises: %d\n", sum.ExerciseCount)
	fmt.Printf("  Sets:      %d\n", sum.SetCount)
	if len(sum.PRsBroken) > 0 {
		fmt.Println()
		color.Yellow("Personal records:")
		for _, pr := range sum.PRsBroken {
			fmt.Printf("  %s  %s x %d\n", pr.ExerciseName, weightText(pr.Weight), pr.Reps)
		}
	}
}

func init() {
	sessionStartCmd.Flags().StringVar(&startName, "name", "", "session name (defaults to the day's name)")
	sessionStartCmd.Flags().BoolVar(&startReplace, "replace", false, "discard a running session and start fresh")

	sessionSetCmd.Flags().StringVarP(&setType, "type", "t", "working", "set type: warmup, working, dropset")
	sessionSetCmd.Flags().StringVar(&setRIR, "rir", "", "reps in reserve")
	sessionSetCmd.Flags().BoolVarP(&setFailure, "failure", "f", false, "set was taken to failure")
	sessionSetCmd.Flags().StringVarP(&setNotes, "notes", "n", "", "set notes")
	sessionSetCmd.Flags().BoolVar(&setRest, "rest", false, "complete the set and run the rest timer")

	sessionEditCmd.Flags().StringVar(&editWeight, "weight", "", "new weight")
	sessionEditCmd.Flags().StringVar(&editReps, "reps", "", "new reps")
	sessionEditCmd.Flags().StringVarP(&editType, "type", "t", "", "new set type")
	sessionEditCmd.Flags().StringVar(&editRIR, "rir", "", "reps in reserve")
	sessionEditCmd.Flags().BoolVar(&editNoRIR, "no-rir", false, "clear reps in reserve")
	sessionEditCmd.Flags().StringVar(&editFailure, "failure", "", "taken to failure: true or false")
	sessionEditCmd.Flags().StringVarP(&editNotes, "notes", "n", "", "set notes")

	sessionFinishCmd.Flags().StringVarP(&finishNotes, "notes", "n", "", "session notes")
	sessionCancelCmd.Flags().BoolVarP(&cancelYes, "yes", "y", false, "discard logged sets without asking")

	sessionCmd.AddCommand(sessionStartCmd, sessionAddCmd, sessionRemoveCmd, sessionMoveCmd,
		sessionSetCmd, sessionSuggestCmd, sessionEditCmd, sessionRemoveSetCmd,
		sessionShowCmd, sessionFinishCmd, sessionCancelCmd)
	rootCmd.AddCommand(sessionCmd)
}
