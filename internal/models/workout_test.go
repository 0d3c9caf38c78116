// ABOUTME: Tests for WorkoutSession, Set, and patch models.
// ABOUTME: Validates constructors, group lookup, cloning, and patch merging.
package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewWorkoutSession(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	w := NewWorkoutSession(1, "Push", start, []string{"chest_fly", "lateral_raises", "chest_fly"})

	if w.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if len(w.Exercises) != 2 {
		t.Fatalf("expected duplicate IDs to collapse to 2 groups, got %d", len(w.Exercises))
	}
	if w.Exercises[0].ExerciseID != "chest_fly" || w.Exercises[1].ExerciseID != "lateral_raises" {
		t.Errorf("unexpected group order: %+v", w.Exercises)
	}
	if w.IsFinished() {
		t.Error("new session should not be finished")
	}
}

func TestNewWorkoutSessionRestDay(t *testing.T) {
	w := NewWorkoutSession(7, "REST DAY", time.Now(), nil)
	if len(w.Exercises) != 0 {
		t.Errorf("rest day should have no groups, got %d", len(w.Exercises))
	}
	if w.HasSets() {
		t.Error("rest day should have no sets")
	}
}

func TestWorkoutSessionVolumeAndCount(t *testing.T) {
	w := NewWorkoutSession(1, "Push", time.Now(), []string{"a", "b"})
	w.Group("a").Sets = append(w.Group("a").Sets,
		NewSet(SetInput{Weight: 40, Reps: 10}, time.Now()),
		NewSet(SetInput{Weight: 45, Reps: 8}, time.Now()),
	)
	w.Group("b").Sets = append(w.Group("b").Sets, NewSet(SetInput{Weight: 10, Reps: 12}, time.Now()))

	if got := w.SetCount(); got != 3 {
		t.Errorf("SetCount = %d, want 3", got)
	}
	if got := w.Volume(); got != 400+360+120 {
		t.Errorf("Volume = %v, want 880", got)
	}
}

func TestWorkoutSessionCloneIsDeep(t *testing.T) {
	rir := RIR(2)
	w := NewWorkoutSession(1, "Push", time.Now(), []string{"a"})
	w.Group("a").Sets = append(w.Group("a").Sets, NewSet(SetInput{Weight: 40, Reps: 10, RIR: &rir}, time.Now()))

	c := w.Clone()
	c.Group("a").Sets[0].Weight = 99
	*c.Group("a").Sets[0].RIR = 0

	if w.Group("a").Sets[0].Weight != 40 {
		t.Error("clone shares set storage with original")
	}
	if *w.Group("a").Sets[0].RIR != 2 {
		t.Error("clone shares RIR pointer with original")
	}
}

func TestNewSetDefaultsToWorking(t *testing.T) {
	s := NewSet(SetInput{Weight: 20, Reps: 5}, time.Now())
	if s.Type != SetWorking {
		t.Errorf("Type = %s, want working", s.Type)
	}
}

func TestSetPatchApply(t *testing.T) {
	rir := RIR(1)
	s := NewSet(SetInput{Type: SetWarmup, Weight: 20, Reps: 5, RIR: &rir}, time.Now())
	id := s.ID

	w := Weight(25)
	failure := true
	SetPatch{Weight: &w, IsFailure: &failure, ClearRIR: true}.Apply(&s)

	if s.ID != id {
		t.Error("patch must not change identity")
	}
	if s.Weight != 25 || !s.IsFailure || s.RIR != nil {
		t.Errorf("unexpected patched set: %+v", s)
	}
	if s.Reps != 5 || s.Type != SetWarmup {
		t.Error("unpatched fields changed")
	}
}

func TestSetValidate(t *testing.T) {
	neg := RIR(-3)
	zero := RIR(0)
	badReps := Reps(-1)
	if err := (SetInput{Weight: 10, Reps: 5, RIR: &zero}).Validate(); err != nil {
		t.Errorf("zero rir should be valid: %v", err)
	}
	if err := (SetInput{Weight: 10, Reps: 5, RIR: &neg}).Validate(); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("expected ErrInvalidNumber for negative rir, got %v", err)
	}
	if err := (SetInput{Weight: -1, Reps: 5}).Validate(); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("expected ErrInvalidNumber for negative weight, got %v", err)
	}
	if err := (SetPatch{RIR: &neg}).Validate(); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("expected ErrInvalidNumber for negative rir patch, got %v", err)
	}
	if err := (SetPatch{Reps: &badReps}).Validate(); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("expected ErrInvalidNumber for negative reps patch, got %v", err)
	}
	if err := (SetPatch{}).Validate(); err != nil {
		t.Errorf("empty patch should be valid: %v", err)
	}
}

func TestParseSetType(t *testing.T) {
	if _, err := ParseSetType("working"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseSetType("superset"); err == nil {
		t.Error("expected error for unknown type")
	}
}
