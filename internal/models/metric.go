// ABOUTME: BodyMetric and RecoveryLog models for body and wellness tracking.
// ABOUTME: Both are append-only samples displayed newest-first.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BodyMetric is a timestamped body-weight sample.
type BodyMetric struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Weight    Weight    `json:"weight"`
	BodyFat   *float64  `json:"body_fat,omitempty"`
}

// NewBodyMetric creates a BodyMetric with generated UUID and current timestamp.
func NewBodyMetric(weight Weight) *BodyMetric {
	return &BodyMetric{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Weight:    weight,
	}
}

// WithBodyFat sets the body-fat percentage.
func (m *BodyMetric) WithBodyFat(pct float64) *BodyMetric {
	m.BodyFat = &pct
	return m
}

// WithTimestamp sets a custom timestamp.
func (m *BodyMetric) WithTimestamp(t time.Time) *BodyMetric {
	m.Timestamp = t
	return m
}

// PainLevels rates the tracked pain sites on a 0-10 scale.
type PainLevels struct {
	LeftElbow  int `json:"left_elbow"`
	RightElbow int `json:"right_elbow"`
	LowerBack  int `json:"lower_back"`
}

// RecoveryLog is a timestamped wellness sample.
type RecoveryLog struct {
	ID           uuid.UUID  `json:"id"`
	Timestamp    time.Time  `json:"timestamp"`
	SleepHours   float64    `json:"sleep_hours"`
	SleepQuality int        `json:"sleep_quality"`
	Energy       int        `json:"energy"`
	Motivation   int        `json:"motivation"`
	Pain         PainLevels `json:"pain"`
	Notes        string     `json:"notes,omitempty"`
}

// NewRecoveryLog creates a RecoveryLog with neutral scores.
func NewRecoveryLog(sleepHours float64) *RecoveryLog {
	return &RecoveryLog{
		ID:           uuid.New(),
		Timestamp:    time.Now(),
		SleepHours:   sleepHours,
		SleepQuality: 3,
		Energy:       3,
		Motivation:   3,
	}
}

// Validate checks score ranges.
func (r *RecoveryLog) Validate() error {
	if r.SleepHours < 0 || r.SleepHours > 24 {
		return fmt.Errorf("sleep hours out of range: %v", r.SleepHours)
	}
	for name, v := range map[string]int{
		"sleep quality": r.SleepQuality,
		"energy":        r.Energy,
		"motivation":    r.Motivation,
	} {
		if v < 1 || v > 5 {
			return fmt.Errorf("%s must be 1-5, got %d", name, v)
		}
	}
	for name, v := range map[string]int{
		"left elbow":  r.Pain.LeftElbow,
		"right elbow": r.Pain.RightElbow,
		"lower back":  r.Pain.LowerBack,
	} {
		if v < 0 || v > 10 {
			return fmt.Errorf("%s pain must be 0-10, got %d", name, v)
		}
	}
	return nil
}
