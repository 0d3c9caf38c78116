// ABOUTME: Snapshot export and restore for persistence.
// ABOUTME: Missing fields in stored documents take the documented defaults.
package session

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/harperreed/ironlog/internal/catalog"
	"github.com/harperreed/ironlog/internal/models"
)

// DefaultSnapshot returns the state of a fresh store.
func DefaultSnapshot() models.Snapshot {
	return models.Snapshot{
		Version:         models.SnapshotVersion,
		User:            catalog.DefaultProfile(),
		Workouts:        []models.WorkoutSession{},
		BodyMetrics:     []models.BodyMetric{},
		RecoveryLogs:    []models.RecoveryLog{},
		SoundEnabled:    true,
		Settings:        models.DefaultSettings(),
		TrainingSplit:   catalog.DefaultSplit(),
		CustomExercises: []models.Exercise{},
	}
}

// DecodeSnapshot parses a stored snapshot over the defaults, so absent
// fields keep their default values.
func DecodeSnapshot(data []byte) (models.Snapshot, error) {
	snap := DefaultSnapshot()
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version == 0 {
		snap.Version = models.SnapshotVersion
	}
	return snap, nil
}

// Snapshot returns a deep copy of the full store state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() models.Snapshot {
	snap := models.Snapshot{
		Version:         models.SnapshotVersion,
		Revision:        s.revision,
		User:            s.profile,
		Workouts:        cloneSessions(s.history),
		BodyMetrics:     slices.Clone(s.bodyMetrics),
		RecoveryLogs:    slices.Clone(s.recoveryLogs),
		ActiveWorkout:   s.active.Clone(),
		SoundEnabled:    s.soundEnabled,
		Settings:        s.settings,
		TrainingSplit:   make([]models.TrainingDay, len(s.days)),
		CustomExercises: s.catalog.Custom(),
	}
	snap.User.Supplements = slices.Clone(s.profile.Supplements)
	for i, d := range s.days {
		snap.TrainingSplit[i] = d.Clone()
	}
	if s.summary != nil {
		sum := *s.summary
		sum.PRsBroken = slices.Clone(sum.PRsBroken)
		snap.LastSummary = &sum
	}
	return snap
}

// Restore replaces the whole store state with snap. The stored revision is
// kept, so the restored state is saved over whatever is stored.
func (s *Store) Restore(snap models.Snapshot) {
	if s.lock() != nil {
		return
	}
	defer s.unlock()

	rev := s.revision
	s.restoreLocked(snap)
	s.revision = rev
	s.emit(Event{Kind: EventRestored})
}

func (s *Store) restoreLocked(snap models.Snapshot) {
	s.resetLocked()
	s.catalog = catalog.NewRegistry(snap.CustomExercises)
	s.profile = snap.User
	s.profile.Supplements = slices.Clone(snap.User.Supplements)
	if snap.Workouts != nil {
		s.history = cloneSessions(snap.Workouts)
	}
	if snap.BodyMetrics != nil {
		s.bodyMetrics = slices.Clone(snap.BodyMetrics)
	}
	if snap.RecoveryLogs != nil {
		s.recoveryLogs = slices.Clone(snap.RecoveryLogs)
	}
	s.active = snap.ActiveWorkout.Clone()
	if snap.LastSummary != nil {
		sum := *snap.LastSummary
		s.summary = &sum
	}
	s.soundEnabled = snap.SoundEnabled
	s.settings = snap.Settings
	if snap.TrainingSplit != nil {
		s.days = make([]models.TrainingDay, len(snap.TrainingSplit))
		for i, d := range snap.TrainingSplit {
			s.days[i] = d.Clone()
		}
	}
	if latest := latestStamp(s.history, s.active); latest.After(s.lastStamp) {
		s.lastStamp = latest
	}
	s.revision = snap.Revision
}

// latestStamp finds the newest set timestamp so new stamps stay monotonic
// across restarts.
func latestStamp(history []models.WorkoutSession, active *models.WorkoutSession) time.Time {
	var latest time.Time
	visit := func(w *models.WorkoutSession) {
		for _, g := range w.Exercises {
			for _, st := range g.Sets {
				if st.Timestamp.After(latest) {
					latest = st.Timestamp
				}
			}
		}
	}
	for i := range history {
		visit(&history[i])
	}
	if active != nil {
		visit(active)
	}
	return latest
}
