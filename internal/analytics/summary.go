// ABOUTME: Finished-session summary computation with personal-record detection.
// ABOUTME: Produces the immutable WorkoutSummary shown on the completion screen.
package analytics

import (
	"time"

	"github.com/harperreed/ironlog/internal/models"
)

// Summarize computes the summary of a session finishing at end. History
// must not contain the session itself.
//
// A PR is a set whose weight is positive and strictly above the best weight
// for that exercise in sessions that started before this one. Only the
// heaviest PR per exercise name is kept.
func Summarize(session *models.WorkoutSession, history []models.WorkoutSession, r Resolver, end time.Time) models.WorkoutSummary {
	sum := models.WorkoutSummary{
		ID:              session.ID,
		DayName:         session.DayName,
		DurationMinutes: int(end.Sub(session.StartTime) / time.Minute),
		PRsBroken:       []models.PersonalRecord{},
	}
	if sum.DurationMinutes < 0 {
		sum.DurationMinutes = 0
	}

	prIndex := make(map[string]int)
	for _, g := range session.Exercises {
		if len(g.Sets) > 0 {
			sum.ExerciseCount++
		}
		name := ExerciseName(r, g.ExerciseID)
		best := BestWeightBefore(history, g.ExerciseID, session.StartTime)

		for _, s := range g.Sets {
			sum.TotalVolume += s.Volume()
			sum.SetCount++

			if s.Weight <= 0 || s.Weight <= best {
				continue
			}
			i, seen := prIndex[name]
			if !seen {
				prIndex[name] = len(sum.PRsBroken)
				sum.PRsBroken = append(sum.PRsBroken, models.PersonalRecord{ExerciseName: name, Weight: s.Weight, Reps: s.Reps})
				continue
			}
			if s.Weight > sum.PRsBroken[i].Weight {
				sum.PRsBroken[i].Weight = s.Weight
				sum.PRsBroken[i].Reps = s.Reps
			}
		}
	}
	return sum
}
