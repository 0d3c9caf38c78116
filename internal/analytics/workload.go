// ABOUTME: Training-load metrics: acute:chronic workload ratio and muscle volume.
// ABOUTME: Windows are measured back from an explicit "now" for testability.
package analytics

import (
	"time"

	"github.com/harperreed/ironlog/internal/models"
)

const (
	AcuteWindow   = 7 * 24 * time.Hour
	ChronicWindow = 28 * 24 * time.Hour

	// OtherMuscleGroup collects volume for exercises missing from the catalog.
	OtherMuscleGroup = "Other"
)

// Workload holds the acute and chronic loads and their ratio.
type Workload struct {
	Acute   float64 `json:"acute"`
	Chronic float64 `json:"chronic"`
	Ratio   float64 `json:"ratio"`
}

// WorkloadRatio computes ACWR. Acute is the volume of sessions started in
// the last 7 days; chronic is the 28-day volume divided by 4. The ratio is
// 1.0 when chronic load is zero.
func WorkloadRatio(history []models.WorkoutSession, now time.Time) Workload {
	var w Workload
	acuteFrom := now.Add(-AcuteWindow)
	chronicFrom := now.Add(-ChronicWindow)
	for i := range history {
		start := history[i].StartTime
		vol := history[i].Volume()
		if start.After(acuteFrom) {
			w.Acute += vol
		}
		if start.After(chronicFrom) {
			w.Chronic += vol
		}
	}
	w.Chronic /= 4
	w.Ratio = 1.0
	if w.Chronic > 0 {
		w.Ratio = w.Acute / w.Chronic
	}
	return w
}

// LoadStatus classifies an ACWR value.
type LoadStatus string

const (
	LoadUnder   LoadStatus = "underload"
	LoadOptimal LoadStatus = "optimal"
	LoadOver    LoadStatus = "overload"
)

// ClassifyACWR maps a ratio onto the 0.8-1.3 sweet spot.
func ClassifyACWR(ratio float64) LoadStatus {
	switch {
	case ratio < 0.8:
		return LoadUnder
	case ratio <= 1.3:
		return LoadOptimal
	default:
		return LoadOver
	}
}

// MuscleGroupVolume sums volume per muscle group for sessions started in
// the last 7 days.
func MuscleGroupVolume(history []models.WorkoutSession, r Resolver, now time.Time) map[string]float64 {
	out := make(map[string]float64)
	from := now.Add(-AcuteWindow)
	for i := range history {
		if !history[i].StartTime.After(from) {
			continue
		}
		for _, g := range history[i].Exercises {
			group := OtherMuscleGroup
			if r != nil {
				if ex, ok := r.Lookup(g.ExerciseID); ok && ex.MuscleGroup != "" {
					group = ex.MuscleGroup
				}
			}
			var vol float64
			for _, s := range g.Sets {
				vol += s.Volume()
			}
			out[group] += vol
		}
	}
	return out
}
