// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, resource handlers and a client round trip.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/ironlog/internal/models"
	"github.com/harperreed/ironlog/internal/session"
	"github.com/harperreed/ironlog/internal/storage"
)

var testNow = time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)

// setupTestServer creates a server over a fresh in-memory store.
func setupTestServer(t *testing.T) (*Server, *session.Store) {
	t.Helper()

	clock := testNow
	store := session.New(nil, session.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	server, err := NewServer(store, WithClock(func() time.Time { return clock.Add(time.Hour) }))
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, store
}

func startDay(t *testing.T, s *Server, day int) {
	t.Helper()
	if _, _, err := s.handleStartSession(context.Background(), &mcp.CallToolRequest{}, startSessionInput{Day: day}); err != nil {
		t.Fatalf("start_session failed: %v", err)
	}
}

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.store == nil {
		t.Error("Expected non-nil store")
	}
}

func TestHandleStartSession(t *testing.T) {
	server, store := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleStartSession(ctx, &mcp.CallToolRequest{}, startSessionInput{Day: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.DayName != "Pull (Back/Biceps)" {
		t.Errorf("DayName = %q", out.DayName)
	}
	if len(out.Exercises) != 6 {
		t.Errorf("Expected 6 seeded exercises, got %d", len(out.Exercises))
	}

	_, _, err = server.handleStartSession(ctx, &mcp.CallToolRequest{}, startSessionInput{Day: 1})
	if !errors.Is(err, session.ErrSessionActive) {
		t.Fatalf("Expected ErrSessionActive, got %v", err)
	}

	_, out, err = server.handleStartSession(ctx, &mcp.CallToolRequest{}, startSessionInput{Day: 1, Replace: true})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if store.Active().DayNumber != 1 {
		t.Error("Expected day 1 to replace day 2")
	}
}

func TestHandleAddSet(t *testing.T) {
	server, store := setupTestServer(t)
	ctx := context.Background()

	if _, _, err := server.handleAddSet(ctx, &mcp.CallToolRequest{}, addSetInput{ExerciseID: "chest_fly", Weight: 20, Reps: 10}); !errors.Is(err, errNoActiveSession) {
		t.Fatalf("Expected errNoActiveSession, got %v", err)
	}
	startDay(t, server, 1)

	tests := []struct {
		name      string
		input     addSetInput
		wantErr   bool
		errSubstr string
	}{
		{
			name:  "working set",
			input: addSetInput{ExerciseID: "chest_fly", Weight: 20, Reps: 10},
		},
		{
			name:  "warmup with rir",
			input: addSetInput{ExerciseID: "chest_fly", Weight: 10, Reps: 15, Type: "warmup", RIR: intPtr(4)},
		},
		{
			name:      "negative weight",
			input:     addSetInput{ExerciseID: "chest_fly", Weight: -5, Reps: 10},
			wantErr:   true,
			errSubstr: "invalid number",
		},
		{
			name:      "negative reps",
			input:     addSetInput{ExerciseID: "chest_fly", Weight: 5, Reps: -1},
			wantErr:   true,
			errSubstr: "invalid number",
		},
		{
			name:      "negative rir",
			input:     addSetInput{ExerciseID: "chest_fly", Weight: 5, Reps: 10, RIR: intPtr(-3)},
			wantErr:   true,
			errSubstr: "invalid number",
		},
		{
			name:      "unknown type",
			input:     addSetInput{ExerciseID: "chest_fly", Weight: 5, Reps: 1, Type: "giant"},
			wantErr:   true,
			errSubstr: "unknown set type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := server.handleAddSet(ctx, &mcp.CallToolRequest{}, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if out.SetID == "" {
				t.Error("Expected set ID")
			}
		})
	}

	if got := store.Active().SetCount(); got != 2 {
		t.Errorf("Expected 2 logged sets, got %d", got)
	}
}

func TestHandleUpdateAndRemoveSet(t *testing.T) {
	server, store := setupTestServer(t)
	ctx := context.Background()
	startDay(t, server, 1)

	_, added, err := server.handleAddSet(ctx, &mcp.CallToolRequest{}, addSetInput{ExerciseID: "chest_fly", Weight: 20, Reps: 10})
	if err != nil {
		t.Fatalf("add_set failed: %v", err)
	}

	weight := 22.5
	failure := true
	if _, _, err := server.handleUpdateSet(ctx, &mcp.CallToolRequest{}, updateSetInput{
		ExerciseID: "chest_fly", SetID: added.SetID, Weight: &weight, Failure: &failure,
	}); err != nil {
		t.Fatalf("update_set failed: %v", err)
	}
	set := store.Active().Group("chest_fly").Sets[0]
	if set.Weight != 22.5 || !set.IsFailure || set.Reps != 10 {
		t.Errorf("Unexpected set after update: %+v", set)
	}

	if _, _, err := server.handleUpdateSet(ctx, &mcp.CallToolRequest{}, updateSetInput{
		ExerciseID: "chest_fly", SetID: added.SetID, RIR: intPtr(-1),
	}); !errors.Is(err, models.ErrInvalidNumber) {
		t.Fatalf("Expected ErrInvalidNumber for negative rir, got %v", err)
	}
	if got := store.Active().Group("chest_fly").Sets[0].RIR; got != nil {
		t.Errorf("Rejected rir should leave the set unchanged, got %d", *got)
	}

	if _, _, err := server.handleUpdateSet(ctx, &mcp.CallToolRequest{}, updateSetInput{ExerciseID: "chest_fly", SetID: "nope"}); err == nil {
		t.Error("Expected error for malformed set id")
	}

	if _, _, err := server.handleRemoveSet(ctx, &mcp.CallToolRequest{}, removeSetInput{ExerciseID: "chest_fly", SetID: added.SetID}); err != nil {
		t.Fatalf("remove_set failed: %v", err)
	}
	if _, _, err := server.handleRemoveSet(ctx, &mcp.CallToolRequest{}, removeSetInput{ExerciseID: "chest_fly", SetID: added.SetID}); err == nil {
		t.Error("Expected error removing a missing set")
	}
}

func TestHandleReorderExercise(t *testing.T) {
	server, store := setupTestServer(t)
	ctx := context.Background()
	startDay(t, server, 1)

	if _, _, err := server.handleReorderExercise(ctx, &mcp.CallToolRequest{}, reorderInput{From: 0, To: 2}); err != nil {
		t.Fatalf("reorder failed: %v", err)
	}
	if got := store.Active().Exercises[2].ExerciseID; got != "chest_fly" {
		t.Errorf("Expected chest_fly at 2, got %s", got)
	}

	_, out, err := server.handleReorderExercise(ctx, &mcp.CallToolRequest{}, reorderInput{From: 0, To: 99})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Message != "Order unchanged" {
		t.Errorf("Expected out-of-range move to be ignored, got %q", out.Message)
	}
}

func TestHandleFinishSession(t *testing.T) {
	server, store := setupTestServer(t)
	ctx := context.Background()
	startDay(t, server, 1)

	if _, _, err := server.handleAddSet(ctx, &mcp.CallToolRequest{}, addSetInput{ExerciseID: "chest_fly", Weight: 20, Reps: 10}); err != nil {
		t.Fatalf("add_set failed: %v", err)
	}

	_, out, err := server.handleFinishSession(ctx, &mcp.CallToolRequest{}, finishInput{Notes: "solid"})
	if err != nil {
		t.Fatalf("finish_session failed: %v", err)
	}
	sum := out.(summaryOutput).Summary
	if sum.TotalVolume != 200 || sum.SetCount != 1 {
		t.Errorf("Unexpected summary %+v", sum)
	}
	if len(sum.PRsBroken) != 1 {
		t.Errorf("Expected first session to set a PR, got %d", len(sum.PRsBroken))
	}
	if store.Active() != nil {
		t.Error("Expected no active session after finish")
	}
	if _, pending := store.Summary(); pending {
		t.Error("Expected summary consumed by the tool call")
	}
	if len(store.History()) != 1 {
		t.Error("Expected finished session in history")
	}

	if _, _, err := server.handleFinishSession(ctx, &mcp.CallToolRequest{}, finishInput{}); !errors.Is(err, errNoActiveSession) {
		t.Errorf("Expected errNoActiveSession, got %v", err)
	}
}

func TestHandleCancelSessionRequiresConfirm(t *testing.T) {
	server, store := setupTestServer(t)
	ctx := context.Background()
	startDay(t, server, 3)

	if _, _, err := server.handleCancelSession(ctx, &mcp.CallToolRequest{}, confirmInput{}); err == nil {
		t.Fatal("Expected error without confirm")
	}
	if store.Active() == nil {
		t.Fatal("Session should survive an unconfirmed cancel")
	}
	if _, _, err := server.handleCancelSession(ctx, &mcp.CallToolRequest{}, confirmInput{Confirm: true}); err != nil {
		t.Fatalf("cancel_session failed: %v", err)
	}
	if store.Active() != nil || len(store.History()) != 0 {
		t.Error("Expected cancelled session to be discarded")
	}
}

func TestHandleGetActive(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleGetActive(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.(activeOutput).Active {
		t.Error("Expected inactive")
	}

	startDay(t, server, 1)
	_, out, _ = server.handleGetActive(ctx, &mcp.CallToolRequest{}, emptyInput{})
	active := out.(activeOutput)
	if !active.Active || active.Session == nil || active.Stats == nil {
		t.Errorf("Unexpected active output %+v", active)
	}
}

func TestHandleHistoryAndTip(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()
	startDay(t, server, 1)
	for _, reps := range []int{12, 10, 8} {
		if _, _, err := server.handleAddSet(ctx, &mcp.CallToolRequest{}, addSetInput{ExerciseID: "chest_fly", Weight: 20, Reps: reps}); err != nil {
			t.Fatalf("add_set failed: %v", err)
		}
	}
	if _, _, err := server.handleFinishSession(ctx, &mcp.CallToolRequest{}, finishInput{}); err != nil {
		t.Fatalf("finish failed: %v", err)
	}

	_, out, err := server.handleExerciseHistory(ctx, &mcp.CallToolRequest{}, historyInput{ExerciseID: "chest_fly", Limit: 2})
	if err != nil {
		t.Fatalf("exercise_history failed: %v", err)
	}
	hist := out.(historyOutput)
	if hist.Exercise != "Chest Fly (DB/Cable)" || len(hist.Sets) != 2 {
		t.Errorf("Unexpected history %+v", hist)
	}
	if hist.Sets[0].Reps != 8 {
		t.Errorf("Expected newest set first, got %d reps", hist.Sets[0].Reps)
	}

	_, tip, err := server.handleProgressionTip(ctx, &mcp.CallToolRequest{}, exerciseInput{ExerciseID: "chest_fly"})
	if err != nil {
		t.Fatalf("progression_tip failed: %v", err)
	}
	if tip.Tip.Text == "" {
		t.Error("Expected tip text")
	}
}

func TestHandleFatigueReport(t *testing.T) {
	server, _ := setupTestServer(t)
	_, out, err := server.handleFatigueReport(context.Background(), &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("fatigue_report failed: %v", err)
	}
	if out.Workload.Ratio != 1.0 {
		t.Errorf("Expected neutral ratio without history, got %v", out.Workload.Ratio)
	}
}

func TestHandleLogBodyMetric(t *testing.T) {
	server, store := setupTestServer(t)
	ctx := context.Background()

	fat := 18.5
	if _, _, err := server.handleLogBodyMetric(ctx, &mcp.CallToolRequest{}, bodyMetricInput{Weight: 55.2, BodyFat: &fat}); err != nil {
		t.Fatalf("log_body_metric failed: %v", err)
	}
	if _, _, err := server.handleLogBodyMetric(ctx, &mcp.CallToolRequest{}, bodyMetricInput{Weight: -1}); err == nil {
		t.Error("Expected error for negative weight")
	}
	bad := 140.0
	if _, _, err := server.handleLogBodyMetric(ctx, &mcp.CallToolRequest{}, bodyMetricInput{Weight: 55, BodyFat: &bad}); !errors.Is(err, models.ErrInvalidNumber) {
		t.Errorf("Expected ErrInvalidNumber for body fat, got %v", err)
	}
	if got := len(store.BodyMetrics()); got != 1 {
		t.Errorf("Expected 1 body metric, got %d", got)
	}
}

func TestHandleLogRecovery(t *testing.T) {
	server, store := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleLogRecovery(ctx, &mcp.CallToolRequest{}, recoveryInput{SleepHours: 7.5, Energy: 4, LeftElbow: 3})
	if err != nil {
		t.Fatalf("log_recovery failed: %v", err)
	}
	l := out.(recoveryOutput).Log
	if l.Energy != 4 || l.Motivation != 3 || l.Pain.LeftElbow != 3 {
		t.Errorf("Unexpected log %+v", l)
	}

	if _, _, err := server.handleLogRecovery(ctx, &mcp.CallToolRequest{}, recoveryInput{SleepHours: 30}); err == nil {
		t.Error("Expected validation error for 30h sleep")
	}
	if got := len(store.RecoveryLogs()); got != 1 {
		t.Errorf("Expected 1 recovery log, got %d", got)
	}
}

func TestResources(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()
	startDay(t, server, 1)

	tests := []struct {
		name    string
		handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)
		uri     string
		key     string
	}{
		{"recent", server.handleRecentResource, uriRecent, "workouts"},
		{"active", server.handleActiveResource, uriActive, "session"},
		{"fatigue", server.handleFatigueResource, uriFatigue, "workload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.handler(ctx, &mcp.ReadResourceRequest{})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(result.Contents) != 1 || result.Contents[0].URI != tt.uri {
				t.Fatalf("Unexpected contents %+v", result.Contents)
			}
			var body map[string]any
			if err := json.Unmarshal([]byte(result.Contents[0].Text), &body); err != nil {
				t.Fatalf("Invalid JSON: %v", err)
			}
			if _, ok := body[tt.key]; !ok {
				t.Errorf("Expected key %q in %s", tt.key, tt.uri)
			}
		})
	}
}

func TestClientRoundTrip(t *testing.T) {
	server, store := setupTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	if _, err := server.mcpServer.Connect(ctx, serverTransport, nil); err != nil {
		t.Fatalf("server connect failed: %v", err)
	}
	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect failed: %v", err)
	}
	defer cs.Close()

	tools, err := cs.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}
	if len(tools.Tools) != 14 {
		t.Errorf("Expected 14 tools, got %d", len(tools.Tools))
	}

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "start_session",
		Arguments: map[string]any{"day": 4},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("start_session returned a tool error: %+v", res.Content)
	}
	if store.Active() == nil || store.Active().DayNumber != 4 {
		t.Error("Expected day 4 session started through the client")
	}

	read, err := cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: uriActive})
	if err != nil {
		t.Fatalf("ReadResource failed: %v", err)
	}
	if !strings.Contains(read.Contents[0].Text, `"active": true`) {
		t.Errorf("Unexpected active resource %s", read.Contents[0].Text)
	}
}

type failingPersister struct{}

func (failingPersister) Persist(models.Snapshot) error {
	return errors.New("disk full")
}

func TestMutationReportsFailedSave(t *testing.T) {
	store := session.New(nil, session.WithPersister(failingPersister{}))
	server, err := NewServer(store)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	ctx := context.Background()

	_, _, err = server.handleStartSession(ctx, &mcp.CallToolRequest{}, startSessionInput{Day: 1})
	if err == nil || !strings.Contains(err.Error(), "not saved") {
		t.Fatalf("Expected unsaved-change error, got %v", err)
	}
	if _, _, err := server.handleLogBodyMetric(ctx, &mcp.CallToolRequest{}, bodyMetricInput{Weight: 55}); err == nil {
		t.Error("Expected body metric save failure to be reported")
	}
}

func TestToolsSeeChangesFromOtherProcesses(t *testing.T) {
	dir := t.TempDir()
	openShared := func() *session.Store {
		t.Helper()
		db, err := storage.Open(filepath.Join(dir, "ironlog.db"))
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		t.Cleanup(func() { _ = db.Close() })
		snap, err := storage.LoadSnapshot(context.Background(), db)
		if err != nil {
			t.Fatalf("LoadSnapshot failed: %v", err)
		}
		p := storage.NewPersister(db, storage.WithLock(storage.NewLock(dir)))
		return session.New(nil, session.WithSnapshot(snap), session.WithPersister(p))
	}

	server, err := NewServer(openShared())
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	cli := openShared()
	if err := cli.StartSession(2, ""); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	ctx := context.Background()
	_, out, err := server.handleGetActive(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("get_active failed: %v", err)
	}
	if active := out.(activeOutput); !active.Active || active.Session.DayNumber != 2 {
		t.Fatalf("Expected the session started elsewhere, got %+v", out)
	}

	if _, _, err := server.handleAddSet(ctx, &mcp.CallToolRequest{}, addSetInput{ExerciseID: "lat_pulldown", Weight: 50, Reps: 10}); err != nil {
		t.Fatalf("add_set failed: %v", err)
	}
	if err := cli.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if got := len(cli.Active().Group("lat_pulldown").Sets); got != 1 {
		t.Errorf("Expected the server's set to reach the other store, got %d", got)
	}
}

func intPtr(v int) *int { return &v }
