// ABOUTME: Progressive-overload tip derived from the most recent working set.
// ABOUTME: Only the single newest working set drives the recommendation.
package analytics

import (
	"fmt"

	"github.com/harperreed/ironlog/internal/models"
)

// WeightIncrement is the load increase suggested after a strong set.
const WeightIncrement = 2.5

// TipStatus is the direction a progression tip recommends.
type TipStatus string

const (
	TipIncrease TipStatus = "increase"
	TipMaintain TipStatus = "maintain"
	TipDrop     TipStatus = "drop"
)

// Tip is a progression recommendation for one exercise.
type Tip struct {
	Text   string    `json:"text"`
	Status TipStatus `json:"status"`
}

// ProgressionTip recommends the next step for exerciseID from history.
func ProgressionTip(history []models.WorkoutSession, exerciseID string) Tip {
	return TipFromSets(ExerciseHistory(history, exerciseID))
}

// TipFromSets evaluates sets (newest first) in order: no history, no
// working set, failure at 8+ reps, under 5 reps, otherwise maintain.
func TipFromSets(sets []models.Set) Tip {
	if len(sets) == 0 {
		return Tip{Text: "Focus on form for your first sets.", Status: TipMaintain}
	}

	var last *models.Set
	for i := range sets {
		if sets[i].Type == models.SetWorking {
			last = &sets[i]
			break
		}
	}
	if last == nil {
		return Tip{Text: "Build a baseline with working sets.", Status: TipMaintain}
	}

	switch {
	case last.IsFailure && last.Reps >= 8:
		return Tip{
			Text:   fmt.Sprintf("Hit %d reps to failure last time. Add %gkg today!", last.Reps, WeightIncrement),
			Status: TipIncrease,
		}
	case last.Reps < 5:
		return Tip{Text: "Reps are dropping. Consider maintaining or checking recovery.", Status: TipDrop}
	default:
		return Tip{Text: "Consistency is key. Aim for 8 clean reps before increasing.", Status: TipMaintain}
	}
}
