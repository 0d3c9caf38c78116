// ABOUTME: Recovery index over the most recent wellness logs.
// ABOUTME: Falls back to neutral defaults when nothing has been logged.
package analytics

import (
	"slices"

	"github.com/harperreed/ironlog/internal/models"
)

const (
	recoverySampleSize   = 5
	defaultAvgSleepHours = 7.0
	defaultRecoveryScore = 0.5
)

// Recovery is the averaged recovery signal.
type Recovery struct {
	AvgSleep float64 `json:"avg_sleep"`
	// Score blends energy and motivation into 0-1.
	Score   float64 `json:"score"`
	Samples int     `json:"samples"`
}

// RecoveryIndex averages the five newest recovery logs.
func RecoveryIndex(logs []models.RecoveryLog) Recovery {
	recent := RecentRecoveryLogs(logs, recoverySampleSize)
	if len(recent) == 0 {
		return Recovery{AvgSleep: defaultAvgSleepHours, Score: defaultRecoveryScore}
	}
	var sleep, points float64
	for _, l := range recent {
		sleep += l.SleepHours
		points += float64(l.Energy + l.Motivation)
	}
	n := float64(len(recent))
	return Recovery{
		AvgSleep: sleep / n,
		Score:    points / (n * 10),
		Samples:  len(recent),
	}
}

// RecentRecoveryLogs returns up to n logs, newest first.
func RecentRecoveryLogs(logs []models.RecoveryLog, n int) []models.RecoveryLog {
	sorted := slices.Clone(logs)
	slices.SortStableFunc(sorted, func(a, b models.RecoveryLog) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
