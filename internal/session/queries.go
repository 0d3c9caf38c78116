// ABOUTME: Read-only queries over the store: state copies and derived analytics.
// ABOUTME: Every result is a copy; callers can never mutate store state.
package session

import (
	"slices"
	"time"

	"github.com/harperreed/ironlog/internal/analytics"
	"github.com/harperreed/ironlog/internal/models"
)

// Active returns a copy of the active session, or nil.
func (s *Store) Active() *models.WorkoutSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Clone()
}

// Summary returns the pending summary without consuming it.
func (s *Store) Summary() (*models.WorkoutSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary == nil {
		return nil, false
	}
	sum := *s.summary
	sum.PRsBroken = slices.Clone(sum.PRsBroken)
	return &sum, true
}

// History returns finished sessions, most recent first.
func (s *Store) History() []models.WorkoutSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSessions(s.history)
}

// Workout returns one finished session by ID.
func (s *Store) Workout(id string) (*models.WorkoutSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.history {
		if s.history[i].ID.String() == id {
			return s.history[i].Clone(), true
		}
	}
	return nil, false
}

func cloneSessions(in []models.WorkoutSession) []models.WorkoutSession {
	out := make([]models.WorkoutSession, len(in))
	for i := range in {
		out[i] = *in[i].Clone()
	}
	return out
}

// Settings returns the current settings.
func (s *Store) Settings() models.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SoundEnabled reports the global sound flag.
func (s *Store) SoundEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.soundEnabled
}

// Profile returns the user profile.
func (s *Store) Profile() models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile
	p.Supplements = slices.Clone(p.Supplements)
	return p
}

// BodyMetrics returns body metrics, newest first.
func (s *Store) BodyMetrics() []models.BodyMetric {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.bodyMetrics)
}

// RecoveryLogs returns recovery logs, newest first.
func (s *Store) RecoveryLogs() []models.RecoveryLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.recoveryLogs)
}

// TrainingDays returns the training split.
func (s *Store) TrainingDays() []models.TrainingDay {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TrainingDay, len(s.days))
	for i, d := range s.days {
		out[i] = d.Clone()
	}
	return out
}

// TrainingDay returns one day of the split.
func (s *Store) TrainingDay(number int) (models.TrainingDay, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.dayLocked(number); ok {
		return d.Clone(), true
	}
	return models.TrainingDay{}, false
}

// Lookup resolves an exercise from the built-in and custom catalog.
func (s *Store) Lookup(id string) (models.Exercise, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Lookup(id)
}

// ExerciseName resolves a display name, falling back to the ID.
func (s *Store) ExerciseName(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analytics.ExerciseName(s.catalog, id)
}

// SearchExercises filters the local catalog.
func (s *Store) SearchExercises(query, group string) []models.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Search(query, group)
}

// CustomExercises returns user-registered exercises.
func (s *Store) CustomExercises() []models.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Custom()
}

// ExerciseHistory returns every historical set for an exercise, newest
// first. The active session is not included.
func (s *Store) ExerciseHistory(exerciseID string) []models.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analytics.ExerciseHistory(s.history, exerciseID)
}

// ProgressionTip recommends the next step for an exercise.
func (s *Store) ProgressionTip(exerciseID string) analytics.Tip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analytics.ProgressionTip(s.history, exerciseID)
}

// PreviousSessionSets returns the sets logged for an exercise in the most
// recent finished session that included it.
func (s *Store) PreviousSessionSets(exerciseID string) []models.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(analytics.PreviousSessionSets(s.history, exerciseID))
}

// SuggestNextSet proposes weight and reps for the next set of an exercise
// in the active session.
func (s *Store) SuggestNextSet(exerciseID string) (models.Weight, models.Reps) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var current []models.Set
	if s.active != nil {
		if g := s.active.Group(exerciseID); g != nil {
			current = g.Sets
		}
	}
	return analytics.SuggestNextSet(analytics.PreviousSessionSets(s.history, exerciseID), current)
}

// Stats describes the running totals of the active session.
type Stats struct {
	Volume    float64       `json:"volume"`
	Sets      int           `json:"sets"`
	Exercises int           `json:"exercises"`
	Elapsed   time.Duration `json:"elapsed"`
}

// ActiveStats returns running totals, or false without an active session.
func (s *Store) ActiveStats() (Stats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return Stats{}, false
	}
	st := Stats{
		Volume:  s.active.Volume(),
		Sets:    s.active.SetCount(),
		Elapsed: max(s.clock().Sub(s.active.StartTime), 0),
	}
	for _, g := range s.active.Exercises {
		if len(g.Sets) > 0 {
			st.Exercises++
		}
	}
	return st, true
}

// Fatigue bundles the training-load and recovery signals.
type Fatigue struct {
	Workload    analytics.Workload   `json:"workload"`
	Status      analytics.LoadStatus `json:"status"`
	MuscleLoads map[string]float64   `json:"muscle_loads"`
	Recovery    analytics.Recovery   `json:"recovery"`
}

// FatigueReport computes workload ratio, weekly muscle loads and recovery
// at now.
func (s *Store) FatigueReport(now time.Time) Fatigue {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := analytics.WorkloadRatio(s.history, now)
	return Fatigue{
		Workload:    w,
		Status:      analytics.ClassifyACWR(w.Ratio),
		MuscleLoads: analytics.MuscleGroupVolume(s.history, s.catalog, now),
		Recovery:    analytics.RecoveryIndex(s.recoveryLogs),
	}
}

// WeeklyReps returns the rep chart for the week containing now.
func (s *Store) WeeklyReps(now time.Time) analytics.Week {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analytics.WeeklyReps(s.history, now)
}
