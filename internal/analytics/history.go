// ABOUTME: Per-exercise history queries over finished workout sessions.
// ABOUTME: History is recomputed on every call; nothing here is memoised.
package analytics

import (
	"slices"
	"time"

	"github.com/harperreed/ironlog/internal/models"
)

// Resolver looks up catalog entries by exercise ID.
type Resolver interface {
	Lookup(id string) (models.Exercise, bool)
}

// ExerciseName resolves a display name, falling back to the raw ID.
func ExerciseName(r Resolver, id string) string {
	if r != nil {
		if ex, ok := r.Lookup(id); ok && ex.Name != "" {
			return ex.Name
		}
	}
	return id
}

// ExerciseHistory flattens every set logged for exerciseID across history,
// newest first by timestamp.
func ExerciseHistory(history []models.WorkoutSession, exerciseID string) []models.Set {
	var out []models.Set
	for i := range history {
		if g := history[i].Group(exerciseID); g != nil {
			out = append(out, g.Sets...)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Set) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if out == nil {
		out = []models.Set{}
	}
	return out
}

// BestWeightBefore returns the heaviest weight logged for exerciseID in
// sessions that started strictly before the given instant.
func BestWeightBefore(history []models.WorkoutSession, exerciseID string, before time.Time) models.Weight {
	var best models.Weight
	for i := range history {
		if !history[i].StartTime.Before(before) {
			continue
		}
		g := history[i].Group(exerciseID)
		if g == nil {
			continue
		}
		for _, s := range g.Sets {
			best = max(best, s.Weight)
		}
	}
	return best
}

// PreviousSessionSets returns the sets of the most recent history session
// that logged exerciseID, or nil. History is expected newest first.
func PreviousSessionSets(history []models.WorkoutSession, exerciseID string) []models.Set {
	for i := range history {
		if g := history[i].Group(exerciseID); g != nil && len(g.Sets) > 0 {
			return g.Sets
		}
	}
	return nil
}

// SuggestNextSet picks prefill values for the next set of an exercise:
// the previous session's set at the same position, else that session's
// last set, else the last set logged in the current session.
func SuggestNextSet(previous, current []models.Set) (models.Weight, models.Reps) {
	idx := len(current)
	switch {
	case idx < len(previous):
		return previous[idx].Weight, previous[idx].Reps
	case len(previous) > 0:
		last := previous[len(previous)-1]
		return last.Weight, last.Reps
	case len(current) > 0:
		last := current[len(current)-1]
		return last.Weight, last.Reps
	default:
		return 0, 0
	}
}
