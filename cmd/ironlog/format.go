// ABOUTME: Output helpers shared by CLI commands.
// ABOUTME: Table rendering, time parsing, and ID prefix resolution.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/harperreed/ironlog/internal/models"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func weightText(w models.Weight) string {
	return fmt.Sprintf("%g %s", float64(w), store.Settings().UnitSystem.WeightUnit())
}

// findSet resolves a set ID or unique ID prefix within an exercise group.
func findSet(w *models.WorkoutSession, exerciseID, prefix string) (uuid.UUID, error) {
	g := w.Group(exerciseID)
	if g == nil {
		return uuid.Nil, fmt.Errorf("%s is not in the session", exerciseID)
	}
	var match uuid.UUID
	found := 0
	for _, s := range g.Sets {
		if strings.HasPrefix(s.ID.String(), strings.ToLower(prefix)) {
			match = s.ID
			found++
		}
	}
	switch found {
	case 0:
		return uuid.Nil, fmt.Errorf("set not found: %s", prefix)
	case 1:
		return match, nil
	default:
		return uuid.Nil, fmt.Errorf("ambiguous prefix %s: matches multiple sets", prefix)
	}
}

// findWorkout resolves a finished session by ID or unique ID prefix.
func findWorkout(prefix string) (*models.WorkoutSession, error) {
	var match *models.WorkoutSession
	history := store.History()
	for i := range history {
		if strings.HasPrefix(history[i].ID.String(), strings.ToLower(prefix)) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous prefix %s: matches multiple workouts", prefix)
			}
			match = &history[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("workout not found: %s", prefix)
	}
	return match, nil
}
