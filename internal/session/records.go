// ABOUTME: Settings, profile, body-metric and recovery-log mutations.
// ABOUTME: Body and recovery samples are append-only and kept newest first.
package session

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/harperreed/ironlog/internal/models"
)

// UpdateSettings merges a partial settings update.
func (s *Store) UpdateSettings(patch models.SettingsPatch) models.UserSettings {
	if s.lock() != nil {
		return s.Settings()
	}
	defer s.unlock()

	patch.Apply(&s.settings)
	s.emit(Event{Kind: EventSettingsChanged})
	return s.settings
}

// SetSoundEnabled toggles the global sound flag.
func (s *Store) SetSoundEnabled(enabled bool) {
	if s.lock() != nil {
		return
	}
	defer s.unlock()

	s.soundEnabled = enabled
	s.emit(Event{Kind: EventSettingsChanged})
}

// SetProfile replaces the user profile.
func (s *Store) SetProfile(p models.UserProfile) {
	if s.lock() != nil {
		return
	}
	defer s.unlock()

	p.Supplements = slices.Clone(p.Supplements)
	s.profile = p
	s.emit(Event{Kind: EventProfileChanged})
}

// AddBodyMetric records a body-weight sample. A missing ID or timestamp is
// filled in by the store.
func (s *Store) AddBodyMetric(m models.BodyMetric) models.BodyMetric {
	if s.lock() != nil {
		return m
	}
	defer s.unlock()

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = s.now()
	}
	s.bodyMetrics = insertNewestFirst(s.bodyMetrics, m, func(b models.BodyMetric) bool { return b.Timestamp.After(m.Timestamp) })
	s.emit(Event{Kind: EventBodyMetricAdded})
	return m
}

// AddRecoveryLog records a wellness sample after validating its ranges.
func (s *Store) AddRecoveryLog(l models.RecoveryLog) (models.RecoveryLog, error) {
	if err := l.Validate(); err != nil {
		return models.RecoveryLog{}, fmt.Errorf("invalid recovery log: %w", err)
	}

	if err := s.lock(); err != nil {
		return models.RecoveryLog{}, err
	}
	defer s.unlock()

	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = s.now()
	}
	s.recoveryLogs = insertNewestFirst(s.recoveryLogs, l, func(r models.RecoveryLog) bool { return r.Timestamp.After(l.Timestamp) })
	s.emit(Event{Kind: EventRecoveryLogged})
	return l, nil
}

// insertNewestFirst places v after every element for which newer is true.
func insertNewestFirst[T any](items []T, v T, newer func(T) bool) []T {
	i := 0
	for i < len(items) && newer(items[i]) {
		i++
	}
	return slices.Insert(items, i, v)
}
