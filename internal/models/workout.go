// ABOUTME: WorkoutSession and WorkoutSummary models for strength sessions.
// ABOUTME: Sessions hold ordered exercise groups; summaries are immutable snapshots.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseGroup is the per-exercise container of sets within a session.
type ExerciseGroup struct {
	ExerciseID string `json:"exercise_id"`
	Sets       []Set  `json:"sets"`
}

// WorkoutSession is an active or finished training session.
type WorkoutSession struct {
	ID        uuid.UUID       `json:"id"`
	DayNumber int             `json:"day_number"`
	DayName   string          `json:"day_name"`
	StartTime time.Time       `json:"start_time"`
	EndTime   *time.Time      `json:"end_time,omitempty"`
	Exercises []ExerciseGroup `json:"exercises"`
	Notes     string          `json:"notes,omitempty"`
}

// NewWorkoutSession creates a session seeded with empty groups for the
// given exercise IDs. Duplicate IDs are collapsed.
func NewWorkoutSession(dayNumber int, dayName string, start time.Time, exerciseIDs []string) *WorkoutSession {
	w := &WorkoutSession{
		ID:        uuid.New(),
		DayNumber: dayNumber,
		DayName:   dayName,
		StartTime: start,
		Exercises: make([]ExerciseGroup, 0, len(exerciseIDs)),
	}
	for _, id := range exerciseIDs {
		if w.GroupIndex(id) >= 0 {
			continue
		}
		w.Exercises = append(w.Exercises, ExerciseGroup{ExerciseID: id, Sets: []Set{}})
	}
	return w
}

// WithNotes sets notes on the session.
func (w *WorkoutSession) WithNotes(notes string) *WorkoutSession {
	w.Notes = notes
	return w
}

// IsFinished reports whether the session has an end time.
func (w *WorkoutSession) IsFinished() bool {
	return w.EndTime != nil
}

// GroupIndex returns the position of the exercise group or -1.
func (w *WorkoutSession) GroupIndex(exerciseID string) int {
	for i := range w.Exercises {
		if w.Exercises[i].ExerciseID == exerciseID {
			return i
		}
	}
	return -1
}

// Group returns the exercise group for an ID, or nil.
func (w *WorkoutSession) Group(exerciseID string) *ExerciseGroup {
	if i := w.GroupIndex(exerciseID); i >= 0 {
		return &w.Exercises[i]
	}
	return nil
}

// SetCount returns the number of sets across all groups.
func (w *WorkoutSession) SetCount() int {
	n := 0
	for _, g := range w.Exercises {
		n += len(g.Sets)
	}
	return n
}

// Volume returns Σ weight×reps across all sets.
func (w *WorkoutSession) Volume() float64 {
	var total float64
	for _, g := range w.Exercises {
		for _, s := range g.Sets {
			total += s.Volume()
		}
	}
	return total
}

// HasSets reports whether any set has been logged.
func (w *WorkoutSession) HasSets() bool {
	for _, g := range w.Exercises {
		if len(g.Sets) > 0 {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate store state.
func (w *WorkoutSession) Clone() *WorkoutSession {
	if w == nil {
		return nil
	}
	out := *w
	if w.EndTime != nil {
		end := *w.EndTime
		out.EndTime = &end
	}
	out.Exercises = make([]ExerciseGroup, len(w.Exercises))
	for i, g := range w.Exercises {
		sets := make([]Set, len(g.Sets))
		for j, s := range g.Sets {
			if s.RIR != nil {
				rir := *s.RIR
				s.RIR = &rir
			}
			sets[j] = s
		}
		out.Exercises[i] = ExerciseGroup{ExerciseID: g.ExerciseID, Sets: sets}
	}
	return &out
}

// PersonalRecord is a PR broken during a session.
type PersonalRecord struct {
	ExerciseName string `json:"exercise_name"`
	Weight       Weight `json:"weight"`
	Reps         Reps   `json:"reps"`
}

// WorkoutSummary is the derived snapshot produced once per finished session.
type WorkoutSummary struct {
	ID              uuid.UUID        `json:"id"`
	DayName         string           `json:"day_name"`
	DurationMinutes int              `json:"duration_minutes"`
	TotalVolume     float64          `json:"total_volume"`
	ExerciseCount   int              `json:"exercise_count"`
	SetCount        int              `json:"set_count"`
	PRsBroken       []PersonalRecord `json:"prs_broken"`
}
