// ABOUTME: Weekly rep totals for the Monday-start calendar week.
// ABOUTME: Drives the dashboard chart and the consistency score.
package analytics

import (
	"math"
	"time"

	"github.com/harperreed/ironlog/internal/models"
)

// WeeklyGoalDays is the number of training days per week counted as 100%.
const WeeklyGoalDays = 6

// DayReps is one day of the weekly chart.
type DayReps struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
	Reps  int       `json:"reps"`
}

// Week summarises rep volume across the current calendar week.
type Week struct {
	Days        [7]DayReps `json:"days"`
	TotalReps   int        `json:"total_reps"`
	ActiveDays  int        `json:"active_days"`
	AvgPerDay   int        `json:"avg_per_active_day"`
	Consistency int        `json:"consistency"`
}

// StartOfWeek returns midnight on the Monday of t's week in t's location.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// WeeklyReps buckets reps by the day each session started.
func WeeklyReps(history []models.WorkoutSession, now time.Time) Week {
	var w Week
	monday := StartOfWeek(now)
	for i := range w.Days {
		day := monday.AddDate(0, 0, i)
		w.Days[i] = DayReps{Date: day, Label: day.Format("Mon")}
	}

	end := monday.AddDate(0, 0, len(w.Days))
	for i := range history {
		start := history[i].StartTime
		if start.Before(monday) || !start.Before(end) {
			continue
		}
		idx := len(w.Days) - 1
		for idx > 0 && start.Before(w.Days[idx].Date) {
			idx--
		}
		for _, g := range history[i].Exercises {
			for _, s := range g.Sets {
				w.Days[idx].Reps += int(s.Reps)
			}
		}
	}

	for _, d := range w.Days {
		if d.Reps > 0 {
			w.ActiveDays++
		}
		w.TotalReps += d.Reps
	}
	if w.ActiveDays > 0 {
		w.AvgPerDay = int(math.Round(float64(w.TotalReps) / float64(w.ActiveDays)))
	}
	w.Consistency = min(100, int(math.Round(float64(w.ActiveDays)/WeeklyGoalDays*100)))
	return w
}
