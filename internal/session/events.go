// ABOUTME: Change events published by the session store to subscribers.
// ABOUTME: Subscribers run after the store lock is released and may read the store.
package session

import (
	"fmt"

	"github.com/google/uuid"
)

// EventKind names a store mutation.
type EventKind string

const (
	EventSessionStarted     EventKind = "session_started"
	EventSessionCancelled   EventKind = "session_cancelled"
	EventSessionFinished    EventKind = "session_finished"
	EventSummaryConsumed    EventKind = "summary_consumed"
	EventExerciseAdded      EventKind = "exercise_added"
	EventExerciseRemoved    EventKind = "exercise_removed"
	EventExerciseReordered  EventKind = "exercise_reordered"
	EventSetAdded           EventKind = "set_added"
	EventSetUpdated         EventKind = "set_updated"
	EventSetRemoved         EventKind = "set_removed"
	EventExerciseRegistered EventKind = "exercise_registered"
	EventSettingsChanged    EventKind = "settings_changed"
	EventProfileChanged     EventKind = "profile_changed"
	EventBodyMetricAdded    EventKind = "body_metric_added"
	EventRecoveryLogged     EventKind = "recovery_logged"
	EventSplitChanged       EventKind = "split_changed"
	EventWorkoutDeleted     EventKind = "workout_deleted"
	EventReset              EventKind = "reset"
	EventRestored           EventKind = "restored"
)

// Event describes one applied mutation.
type Event struct {
	Kind       EventKind
	SessionID  uuid.UUID
	ExerciseID string
	SetID      uuid.UUID
}

// subscribeLocked registers fn; the caller holds the lock.
func (s *Store) subscribeLocked(fn func(Event)) uint64 {
	s.nextSub++
	s.subs[s.nextSub] = fn
	return s.nextSub
}

// Subscribe registers fn for every subsequent event and returns a function
// that removes it. The returned function is safe to call more than once.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.subscribeLocked(fn)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) emit(e Event) {
	s.pending = append(s.pending, e)
}

// lock takes the store lock for a mutation. With a Syncer it also takes the
// cross-process lock and reloads state another process saved since the last
// load. On failure nothing is held and the error is kept for Err.
func (s *Store) lock() error {
	s.mu.Lock()
	if err := s.syncLocked(); err != nil {
		s.err = err
		s.logger.Error("sync state", "err", err)
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) syncLocked() error {
	sy, ok := s.persister.(Syncer)
	if !ok {
		return nil
	}
	fresh, release, err := sy.Begin(s.revision)
	if err != nil {
		return fmt.Errorf("sync state: %w", err)
	}
	s.release = release
	if fresh != nil {
		s.logger.Debug("reloading newer state", "from", s.revision, "to", fresh.Revision)
		s.restoreLocked(*fresh)
	}
	return nil
}

// Refresh reloads state saved by other processes. Without a Syncer it does
// nothing.
func (s *Store) Refresh() error {
	if err := s.lock(); err != nil {
		return err
	}
	s.releaseLocked()
	s.mu.Unlock()
	return nil
}

func (s *Store) releaseLocked() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
}

// unlock persists, drops both locks, then delivers pending events.
func (s *Store) unlock() {
	events := s.pending
	s.pending = nil
	if len(events) > 0 {
		s.persistLocked()
	}
	s.releaseLocked()
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, e := range events {
		for _, fn := range subs {
			fn(e)
		}
	}
}
