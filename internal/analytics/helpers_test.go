// ABOUTME: Shared fixtures for analytics tests.
// ABOUTME: Builds finished sessions with deterministic timestamps.
package analytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/ironlog/internal/models"
)

var baseTime = time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC) // a Wednesday

type fakeResolver map[string]models.Exercise

func (f fakeResolver) Lookup(id string) (models.Exercise, bool) {
	ex, ok := f[id]
	return ex, ok
}

func set(w float64, reps int, at time.Time) models.Set {
	return models.Set{ID: uuid.New(), Type: models.SetWorking, Weight: models.Weight(w), Reps: models.Reps(reps), Timestamp: at}
}

func session(start time.Time, groups ...models.ExerciseGroup) models.WorkoutSession {
	end := start.Add(time.Hour)
	return models.WorkoutSession{ID: uuid.New(), DayName: "Test", StartTime: start, EndTime: &end, Exercises: groups}
}

func group(id string, sets ...models.Set) models.ExerciseGroup {
	if sets == nil {
		sets = []models.Set{}
	}
	return models.ExerciseGroup{ExerciseID: id, Sets: sets}
}
