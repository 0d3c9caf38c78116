// ABOUTME: Export and import functionality for ironlog data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/ironlog/internal/analytics"
	"github.com/harperreed/ironlog/internal/models"
	"github.com/harperreed/ironlog/internal/session"
)

const (
	exportVersion = "1.0"
	exportTool    = "ironlog"
)

// ExportData represents the full export format for ironlog data.
type ExportData struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Tool       string          `json:"tool"`
	Data       models.Snapshot `json:"data"`
}

// NewExport wraps snap in the export envelope.
func NewExport(snap models.Snapshot, now time.Time) *ExportData {
	return &ExportData{
		Version:    exportVersion,
		ExportedAt: now,
		Tool:       exportTool,
		Data:       snap,
	}
}

// ExportJSON exports the full snapshot as JSON.
func ExportJSON(snap models.Snapshot, now time.Time) ([]byte, error) {
	return json.MarshalIndent(NewExport(snap, now), "", "  ")
}

// ImportJSON parses an export file, or a bare snapshot document, into a
// snapshot. Absent fields take their defaults.
func ImportJSON(data []byte) (models.Snapshot, error) {
	var envelope struct {
		Tool string          `json:"tool"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return models.Snapshot{}, fmt.Errorf("unmarshal JSON: %w", err)
	}
	if len(envelope.Data) > 0 {
		data = envelope.Data
	}
	return session.DecodeSnapshot(data)
}

// ExportYAML exports history grouped by training day, plus body metrics and
// recovery logs.
func ExportYAML(snap models.Snapshot, r analytics.Resolver, now time.Time) ([]byte, error) {
	unit := snap.Settings.UnitSystem.WeightUnit()
	yamlData := struct {
		Version     string                   `yaml:"version"`
		ExportedAt  string                   `yaml:"exported_at"`
		Tool        string                   `yaml:"tool"`
		Athlete     string                   `yaml:"athlete"`
		Unit        string                   `yaml:"unit"`
		Workouts    map[string][]yamlWorkout `yaml:"workouts"`
		BodyMetrics []yamlBodyMetric         `yaml:"body_metrics,omitempty"`
		Recovery    []yamlRecovery           `yaml:"recovery,omitempty"`
	}{
		Version:    exportVersion,
		ExportedAt: now.Format(time.RFC3339),
		Tool:       exportTool,
		Athlete:    snap.User.Name,
		Unit:       unit,
		Workouts:   make(map[string][]yamlWorkout),
	}

	for i := range snap.Workouts {
		w := &snap.Workouts[i]
		yw := yamlWorkout{
			ID:        shortID(w.ID.String()),
			StartedAt: w.StartTime.Format(time.RFC3339),
			Volume:    w.Volume(),
			Notes:     w.Notes,
		}
		if w.EndTime != nil {
			yw.DurationMinutes = int(w.EndTime.Sub(w.StartTime).Minutes())
		}
		for _, g := range w.Exercises {
			if len(g.Sets) == 0 {
				continue
			}
			ye := yamlExercise{Name: analytics.ExerciseName(r, g.ExerciseID)}
			for _, s := range g.Sets {
				ye.Sets = append(ye.Sets, yamlSet{
					Type:    string(s.Type),
					Weight:  float64(s.Weight),
					Reps:    int(s.Reps),
					RIR:     s.RIR,
					Failure: s.IsFailure,
				})
			}
			yw.Exercises = append(yw.Exercises, ye)
		}
		yamlData.Workouts[w.DayName] = append(yamlData.Workouts[w.DayName], yw)
	}

	for _, m := range snap.BodyMetrics {
		yamlData.BodyMetrics = append(yamlData.BodyMetrics, yamlBodyMetric{
			RecordedAt: m.Timestamp.Format(time.RFC3339),
			Weight:     float64(m.Weight),
			BodyFat:    m.BodyFat,
		})
	}

	for _, l := range snap.RecoveryLogs {
		yamlData.Recovery = append(yamlData.Recovery, yamlRecovery{
			RecordedAt:   l.Timestamp.Format(time.RFC3339),
			SleepHours:   l.SleepHours,
			SleepQuality: l.SleepQuality,
			Energy:       l.Energy,
			Motivation:   l.Motivation,
			Pain:         l.Pain,
			Notes:        l.Notes,
		})
	}

	return yaml.Marshal(yamlData)
}

type yamlWorkout struct {
	ID              string         `yaml:"id"`
	StartedAt       string         `yaml:"started_at"`
	DurationMinutes int            `yaml:"duration_minutes,omitempty"`
	Volume          float64        `yaml:"volume"`
	Notes           string         `yaml:"notes,omitempty"`
	Exercises       []yamlExercise `yaml:"exercises,omitempty"`
}

type yamlExercise struct {
	Name string    `yaml:"name"`
	Sets []yamlSet `yaml:"sets"`
}

type yamlSet struct {
	Type    string      `yaml:"type"`
	Weight  float64     `yaml:"weight"`
	Reps    int         `yaml:"reps"`
	RIR     *models.RIR `yaml:"rir,omitempty"`
	Failure bool        `yaml:"failure,omitempty"`
}

type yamlBodyMetric struct {
	RecordedAt string   `yaml:"recorded_at"`
	Weight     float64  `yaml:"weight"`
	BodyFat    *float64 `yaml:"body_fat,omitempty"`
}

type yamlRecovery struct {
	RecordedAt   string            `yaml:"recorded_at"`
	SleepHours   float64           `yaml:"sleep_hours"`
	SleepQuality int               `yaml:"sleep_quality"`
	Energy       int               `yaml:"energy"`
	Motivation   int               `yaml:"motivation"`
	Pain         models.PainLevels `yaml:"pain"`
	Notes        string            `yaml:"notes,omitempty"`
}

// ExportMarkdown exports history, body metrics and recovery logs as
// Markdown tables. A non-nil since drops older entries.
//
//nolint:gocognit,gocyclo // Linear table rendering.
func ExportMarkdown(snap models.Snapshot, r analytics.Resolver, since *time.Time, now time.Time) string {
	keep := func(t time.Time) bool {
		return since == nil || !t.Before(*since)
	}
	unit := snap.Settings.UnitSystem.WeightUnit()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# ironlog Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	var workouts []*models.WorkoutSession
	for i := range snap.Workouts {
		if keep(snap.Workouts[i].StartTime) {
			workouts = append(workouts, &snap.Workouts[i])
		}
	}
	sort.SliceStable(workouts, func(i, j int) bool {
		return workouts[i].StartTime.After(workouts[j].StartTime)
	})

	if len(workouts) > 0 {
		sb.WriteString("## Workouts\n\n")
		sb.WriteString("| Date | Day | Duration | Sets | Volume | Notes |\n")
		sb.WriteString("|------|-----|----------|------|--------|-------|\n")
		for _, w := range workouts {
			duration := ""
			if w.EndTime != nil {
				duration = fmt.Sprintf("%d min", int(w.EndTime.Sub(w.StartTime).Minutes()))
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %g %s | %s |\n",
				w.StartTime.Format("2006-01-02 15:04"), w.DayName, duration,
				w.SetCount(), w.Volume(), unit, w.Notes))
		}
		sb.WriteString("\n")

		for _, w := range workouts {
			if !w.HasSets() {
				continue
			}
			sb.WriteString(fmt.Sprintf("### %s %s\n\n", w.StartTime.Format("2006-01-02"), w.DayName))
			sb.WriteString("| Exercise | Set | Type | Weight | Reps |\n")
			sb.WriteString("|----------|-----|------|--------|------|\n")
			for _, g := range w.Exercises {
				name := analytics.ExerciseName(r, g.ExerciseID)
				for i, s := range g.Sets {
					sb.WriteString(fmt.Sprintf("| %s | %d | %s | %g %s | %d |\n",
						name, i+1, s.Type, float64(s.Weight), unit, int(s.Reps)))
				}
			}
			sb.WriteString("\n")
		}
	}

	var metrics []models.BodyMetric
	for _, m := range snap.BodyMetrics {
		if keep(m.Timestamp) {
			metrics = append(metrics, m)
		}
	}
	if len(metrics) > 0 {
		sb.WriteString("## Body Metrics\n\n")
		sb.WriteString("| Date | Weight | Body Fat |\n")
		sb.WriteString("|------|--------|----------|\n")
		for _, m := range metrics {
			fat := ""
			if m.BodyFat != nil {
				fat = fmt.Sprintf("%.1f%%", *m.BodyFat)
			}
			sb.WriteString(fmt.Sprintf("| %s | %g %s | %s |\n",
				m.Timestamp.Format("2006-01-02 15:04"), float64(m.Weight), unit, fat))
		}
		sb.WriteString("\n")
	}

	var logs []models.RecoveryLog
	for _, l := range snap.RecoveryLogs {
		if keep(l.Timestamp) {
			logs = append(logs, l)
		}
	}
	if len(logs) > 0 {
		sb.WriteString("## Recovery\n\n")
		sb.WriteString("| Date | Sleep | Quality | Energy | Motivation | Pain (L elbow / R elbow / back) | Notes |\n")
		sb.WriteString("|------|-------|---------|--------|------------|----------------------------------|-------|\n")
		for _, l := range logs {
			sb.WriteString(fmt.Sprintf("| %s | %.1fh | %d | %d | %d | %d / %d / %d | %s |\n",
				l.Timestamp.Format("2006-01-02 15:04"), l.SleepHours, l.SleepQuality,
				l.Energy, l.Motivation, l.Pain.LeftElbow, l.Pain.RightElbow, l.Pain.LowerBack, l.Notes))
		}
	}

	return sb.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
