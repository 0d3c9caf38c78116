// ABOUTME: MCP tool implementations for workout sessions and analytics.
// ABOUTME: Numeric input is validated here before reaching the store.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/ironlog/internal/analytics"
	"github.com/harperreed/ironlog/internal/models"
	"github.com/harperreed/ironlog/internal/session"
)

var errNoActiveSession = errors.New("no active session")

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_session",
		Description: "Start a workout session for a training day of the split",
	}, s.handleStartSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add an exercise to the active session",
	}, s.handleAddExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_set",
		Description: "Log a set for an exercise in the active session",
	}, s.handleAddSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_set",
		Description: "Change fields of a logged set; omitted fields are unchanged",
	}, s.handleUpdateSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_set",
		Description: "Remove a logged set from the active session",
	}, s.handleRemoveSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reorder_exercise",
		Description: "Move an exercise within the active session",
	}, s.handleReorderExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_session",
		Description: "Finish the active session and return its summary",
	}, s.handleFinishSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "cancel_session",
		Description: "Discard the active session without saving it (requires confirm)",
	}, s.handleCancelSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_active",
		Description: "Get the active session with running totals",
	}, s.handleGetActive)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "exercise_history",
		Description: "List past sets for an exercise, newest first",
	}, s.handleExerciseHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "progression_tip",
		Description: "Get a progressive-overload recommendation for an exercise",
	}, s.handleProgressionTip)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "fatigue_report",
		Description: "Get workload ratio, weekly muscle loads and recovery",
	}, s.handleFatigueReport)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_body_metric",
		Description: "Record body weight and optional body fat",
	}, s.handleLogBodyMetric)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_recovery",
		Description: "Record sleep, energy, motivation and joint pain",
	}, s.handleLogRecovery)
}

// Tool input/output types. Outputs carrying UUIDs or timestamps are
// returned as any so no output schema is inferred for them.

type startSessionInput struct {
	Day     int    `json:"day" jsonschema:"Training day number of the split (1-7)"`
	Name    string `json:"name,omitempty" jsonschema:"Session name, defaults to the day name"`
	Replace bool   `json:"replace,omitempty" jsonschema:"Cancel an already active session first"`
}

type sessionOutput struct {
	ID        string   `json:"id"`
	DayName   string   `json:"day_name"`
	Exercises []string `json:"exercises"`
	Message   string   `json:"message"`
}

type exerciseInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise ID, e.g. lat_pulldown"`
}

type addSetInput struct {
	ExerciseID string  `json:"exercise_id" jsonschema:"Exercise ID"`
	Weight     float64 `json:"weight" jsonschema:"Load in the configured unit"`
	Reps       int     `json:"reps" jsonschema:"Repetitions"`
	Type       string  `json:"type,omitempty" jsonschema:"Set type: warmup, working or dropset (default working)"`
	RIR        *int    `json:"rir,omitempty" jsonschema:"Reps in reserve"`
	Failure    bool    `json:"failure,omitempty" jsonschema:"Set taken to failure"`
	Notes      string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type setOutput struct {
	SetID   string `json:"set_id"`
	Message string `json:"message"`
}

type updateSetInput struct {
	ExerciseID string   `json:"exercise_id" jsonschema:"Exercise ID"`
	SetID      string   `json:"set_id" jsonschema:"Set ID"`
	Weight     *float64 `json:"weight,omitempty" jsonschema:"New load"`
	Reps       *int     `json:"reps,omitempty" jsonschema:"New repetitions"`
	Type       *string  `json:"type,omitempty" jsonschema:"New set type"`
	RIR        *int     `json:"rir,omitempty" jsonschema:"New reps in reserve"`
	Failure    *bool    `json:"failure,omitempty" jsonschema:"New failure flag"`
	Notes      *string  `json:"notes,omitempty" jsonschema:"New notes"`
}

type removeSetInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise ID"`
	SetID      string `json:"set_id" jsonschema:"Set ID"`
}

type reorderInput struct {
	From int `json:"from" jsonschema:"Current zero-based position"`
	To   int `json:"to" jsonschema:"New zero-based position"`
}

type finishInput struct {
	Notes string `json:"notes,omitempty" jsonschema:"Session notes"`
}

type summaryOutput struct {
	Summary models.WorkoutSummary `json:"summary"`
	Message string                `json:"message"`
}

type confirmInput struct {
	Confirm bool `json:"confirm" jsonschema:"Must be true to discard the session"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type emptyInput struct{}

type activeOutput struct {
	Active  bool                   `json:"active"`
	Session *models.WorkoutSession `json:"session,omitempty"`
	Stats   *session.Stats         `json:"stats,omitempty"`
}

type historyInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise ID"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Max sets (default 20)"`
}

type historyOutput struct {
	Exercise string       `json:"exercise"`
	Sets     []models.Set `json:"sets"`
}

type tipOutput struct {
	Exercise string        `json:"exercise"`
	Tip      analytics.Tip `json:"tip"`
}

type bodyMetricInput struct {
	Weight  float64  `json:"weight" jsonschema:"Body weight"`
	BodyFat *float64 `json:"body_fat,omitempty" jsonschema:"Body fat percentage"`
}

type bodyMetricOutput struct {
	Metric  models.BodyMetric `json:"metric"`
	Message string            `json:"message"`
}

type recoveryInput struct {
	SleepHours   float64 `json:"sleep_hours" jsonschema:"Hours slept"`
	SleepQuality int     `json:"sleep_quality,omitempty" jsonschema:"Sleep quality 1-5 (default 3)"`
	Energy       int     `json:"energy,omitempty" jsonschema:"Energy 1-5 (default 3)"`
	Motivation   int     `json:"motivation,omitempty" jsonschema:"Motivation 1-5 (default 3)"`
	LeftElbow    int     `json:"left_elbow,omitempty" jsonschema:"Left elbow pain 0-10"`
	RightElbow   int     `json:"right_elbow,omitempty" jsonschema:"Right elbow pain 0-10"`
	LowerBack    int     `json:"lower_back,omitempty" jsonschema:"Lower back pain 0-10"`
	Notes        string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type recoveryOutput struct {
	Log     models.RecoveryLog `json:"log"`
	Message string             `json:"message"`
}

// Tool handlers

func (s *Server) handleStartSession(ctx context.Context, req *mcp.CallToolRequest, input startSessionInput) (*mcp.CallToolResult, sessionOutput, error) {
	s.refresh()
	var opts []session.StartOption
	if input.Replace {
		opts = append(opts, session.ReplaceActive())
	}
	if err := s.store.StartSession(input.Day, input.Name, opts...); err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to start session: %w", err)
	}
	if err := s.saved(); err != nil {
		return nil, sessionOutput{}, err
	}
	active := s.store.Active()
	out := sessionOutput{
		ID:        active.ID.String(),
		DayName:   active.DayName,
		Exercises: make([]string, 0, len(active.Exercises)),
	}
	for _, g := range active.Exercises {
		out.Exercises = append(out.Exercises, g.ExerciseID)
	}
	out.Message = fmt.Sprintf("Started %s with %d exercises", active.DayName, len(out.Exercises))
	return nil, out, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input exerciseInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.refresh()
	if s.store.Active() == nil {
		return nil, simpleOutput{}, errNoActiveSession
	}
	added := s.store.AddExercise(input.ExerciseID)
	if err := s.saved(); err != nil {
		return nil, simpleOutput{}, err
	}
	if !added {
		return nil, simpleOutput{Message: fmt.Sprintf("%s is already in the session", input.ExerciseID)}, nil
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Added %s", s.store.ExerciseName(input.ExerciseID))}, nil
}

func (s *Server) handleAddSet(ctx context.Context, req *mcp.CallToolRequest, input addSetInput) (*mcp.CallToolResult, setOutput, error) {
	s.refresh()
	w, err := models.NewWeight(input.Weight)
	if err != nil {
		return nil, setOutput{}, err
	}
	r, err := models.NewReps(input.Reps)
	if err != nil {
		return nil, setOutput{}, err
	}
	rir, err := rirFrom(input.RIR)
	if err != nil {
		return nil, setOutput{}, err
	}
	in := models.SetInput{Weight: w, Reps: r, RIR: rir, IsFailure: input.Failure, Notes: input.Notes}
	if input.Type != "" {
		if in.Type, err = models.ParseSetType(input.Type); err != nil {
			return nil, setOutput{}, err
		}
	}
	id, ok := s.store.AddSet(input.ExerciseID, in)
	if err := s.saved(); err != nil {
		return nil, setOutput{}, err
	}
	if !ok {
		return nil, setOutput{}, errNoActiveSession
	}
	return nil, setOutput{
		SetID:   id.String(),
		Message: fmt.Sprintf("Logged %s: %g x %d", s.store.ExerciseName(input.ExerciseID), float64(w), int(r)),
	}, nil
}

func (s *Server) handleUpdateSet(ctx context.Context, req *mcp.CallToolRequest, input updateSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.refresh()
	id, err := uuid.Parse(input.SetID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid set id: %w", err)
	}
	var patch models.SetPatch
	if input.Weight != nil {
		w, err := models.NewWeight(*input.Weight)
		if err != nil {
			return nil, simpleOutput{}, err
		}
		patch.Weight = &w
	}
	if input.Reps != nil {
		r, err := models.NewReps(*input.Reps)
		if err != nil {
			return nil, simpleOutput{}, err
		}
		patch.Reps = &r
	}
	if input.Type != nil {
		st, err := models.ParseSetType(*input.Type)
		if err != nil {
			return nil, simpleOutput{}, err
		}
		patch.Type = &st
	}
	if patch.RIR, err = rirFrom(input.RIR); err != nil {
		return nil, simpleOutput{}, err
	}
	patch.IsFailure = input.Failure
	patch.Notes = input.Notes

	updated := s.store.UpdateSet(input.ExerciseID, id, patch)
	if err := s.saved(); err != nil {
		return nil, simpleOutput{}, err
	}
	if !updated {
		return nil, simpleOutput{}, fmt.Errorf("set not found: %s", input.SetID)
	}
	return nil, simpleOutput{Message: "Set updated"}, nil
}

func (s *Server) handleRemoveSet(ctx context.Context, req *mcp.CallToolRequest, input removeSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.refresh()
	id, err := uuid.Parse(input.SetID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid set id: %w", err)
	}
	removed := s.store.RemoveSet(input.ExerciseID, id)
	if err := s.saved(); err != nil {
		return nil, simpleOutput{}, err
	}
	if !removed {
		return nil, simpleOutput{}, fmt.Errorf("set not found: %s", input.SetID)
	}
	return nil, simpleOutput{Message: "Set removed"}, nil
}

func (s *Server) handleReorderExercise(ctx context.Context, req *mcp.CallToolRequest, input reorderInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.refresh()
	if s.store.Active() == nil {
		return nil, simpleOutput{}, errNoActiveSession
	}
	moved := s.store.ReorderExercise(input.From, input.To)
	if err := s.saved(); err != nil {
		return nil, simpleOutput{}, err
	}
	if !moved {
		return nil, simpleOutput{Message: "Order unchanged"}, nil
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Moved exercise %d to %d", input.From, input.To)}, nil
}

func (s *Server) handleFinishSession(ctx context.Context, req *mcp.CallToolRequest, input finishInput) (*mcp.CallToolResult, any, error) {
	s.refresh()
	sum, ok := s.store.FinishSession(input.Notes)
	if !ok {
		return nil, nil, errNoActiveSession
	}
	// The caller receives the summary here, so it is not kept pending.
	s.store.ConsumeSummary()
	if err := s.saved(); err != nil {
		return nil, nil, err
	}
	return nil, summaryOutput{
		Summary: *sum,
		Message: fmt.Sprintf("Finished %s: %d sets, %g volume, %d PRs", sum.DayName, sum.SetCount, sum.TotalVolume, len(sum.PRsBroken)),
	}, nil
}

func (s *Server) handleCancelSession(ctx context.Context, req *mcp.CallToolRequest, input confirmInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.refresh()
	if !input.Confirm {
		return nil, simpleOutput{}, errors.New("confirm must be true to discard the session")
	}
	cancelled := s.store.CancelSession()
	if err := s.saved(); err != nil {
		return nil, simpleOutput{}, err
	}
	if !cancelled {
		return nil, simpleOutput{}, errNoActiveSession
	}
	return nil, simpleOutput{Message: "Session discarded"}, nil
}

func (s *Server) handleGetActive(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	s.refresh()
	active := s.store.Active()
	if active == nil {
		return nil, activeOutput{}, nil
	}
	stats, _ := s.store.ActiveStats()
	return nil, activeOutput{Active: true, Session: active, Stats: &stats}, nil
}

func (s *Server) handleExerciseHistory(ctx context.Context, req *mcp.CallToolRequest, input historyInput) (*mcp.CallToolResult, any, error) {
	s.refresh()
	if input.Limit <= 0 {
		input.Limit = 20
	}
	sets := s.store.ExerciseHistory(input.ExerciseID)
	if len(sets) > input.Limit {
		sets = sets[:input.Limit]
	}
	return nil, historyOutput{Exercise: s.store.ExerciseName(input.ExerciseID), Sets: sets}, nil
}

func (s *Server) handleProgressionTip(ctx context.Context, req *mcp.CallToolRequest, input exerciseInput) (*mcp.CallToolResult, tipOutput, error) {
	s.refresh()
	return nil, tipOutput{
		Exercise: s.store.ExerciseName(input.ExerciseID),
		Tip:      s.store.ProgressionTip(input.ExerciseID),
	}, nil
}

func (s *Server) handleFatigueReport(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, session.Fatigue, error) {
	s.refresh()
	return nil, s.store.FatigueReport(s.now()), nil
}

func (s *Server) handleLogBodyMetric(ctx context.Context, req *mcp.CallToolRequest, input bodyMetricInput) (*mcp.CallToolResult, any, error) {
	s.refresh()
	w, err := models.NewWeight(input.Weight)
	if err != nil {
		return nil, nil, err
	}
	m := models.NewBodyMetric(w)
	if input.BodyFat != nil {
		if *input.BodyFat < 0 || *input.BodyFat > 100 {
			return nil, nil, fmt.Errorf("%w: body fat %v", models.ErrInvalidNumber, *input.BodyFat)
		}
		m.WithBodyFat(*input.BodyFat)
	}
	saved := s.store.AddBodyMetric(*m)
	if err := s.saved(); err != nil {
		return nil, nil, err
	}
	return nil, bodyMetricOutput{Metric: saved, Message: fmt.Sprintf("Logged body weight %g", float64(w))}, nil
}

func (s *Server) handleLogRecovery(ctx context.Context, req *mcp.CallToolRequest, input recoveryInput) (*mcp.CallToolResult, any, error) {
	s.refresh()
	l := models.NewRecoveryLog(input.SleepHours)
	if input.SleepQuality != 0 {
		l.SleepQuality = input.SleepQuality
	}
	if input.Energy != 0 {
		l.Energy = input.Energy
	}
	if input.Motivation != 0 {
		l.Motivation = input.Motivation
	}
	l.Pain = models.PainLevels{LeftElbow: input.LeftElbow, RightElbow: input.RightElbow, LowerBack: input.LowerBack}
	l.Notes = input.Notes

	saved, err := s.store.AddRecoveryLog(*l)
	if err != nil {
		return nil, nil, err
	}
	if err := s.saved(); err != nil {
		return nil, nil, err
	}
	return nil, recoveryOutput{Log: saved, Message: fmt.Sprintf("Logged recovery: %.1fh sleep", saved.SleepHours)}, nil
}

// rirFrom validates optional reps-in-reserve input.
func rirFrom(v *int) (*models.RIR, error) {
	if v == nil {
		return nil, nil
	}
	rir, err := models.NewRIR(*v)
	if err != nil {
		return nil, err
	}
	return &rir, nil
}
