// ABOUTME: Training-split template edits.
// ABOUTME: Days hold ordered exercise ID references; catalog rows are never changed.
package session

import "slices"

// SwapDayExercise replaces the reference to oldID with newID at the same
// position. It fails when newID is unknown or already on the day.
func (s *Store) SwapDayExercise(day int, oldID, newID string) bool {
	if s.lock() != nil {
		return false
	}
	defer s.unlock()

	d, ok := s.dayLocked(day)
	if !ok {
		return false
	}
	if _, known := s.catalog.Lookup(newID); !known || slices.Contains(d.ExerciseIDs, newID) {
		return false
	}
	i := slices.Index(d.ExerciseIDs, oldID)
	if i < 0 {
		return false
	}
	d.ExerciseIDs[i] = newID
	s.emit(Event{Kind: EventSplitChanged, ExerciseID: newID})
	return true
}

// AddDayExercise appends a catalog exercise to a day.
func (s *Store) AddDayExercise(day int, exerciseID string) bool {
	if s.lock() != nil {
		return false
	}
	defer s.unlock()

	d, ok := s.dayLocked(day)
	if !ok {
		return false
	}
	if _, known := s.catalog.Lookup(exerciseID); !known || slices.Contains(d.ExerciseIDs, exerciseID) {
		return false
	}
	d.ExerciseIDs = append(d.ExerciseIDs, exerciseID)
	s.emit(Event{Kind: EventSplitChanged, ExerciseID: exerciseID})
	return true
}

// RemoveDayExercise drops an exercise reference from a day.
func (s *Store) RemoveDayExercise(day int, exerciseID string) bool {
	if s.lock() != nil {
		return false
	}
	defer s.unlock()

	d, ok := s.dayLocked(day)
	if !ok {
		return false
	}
	i := slices.Index(d.ExerciseIDs, exerciseID)
	if i < 0 {
		return false
	}
	d.ExerciseIDs = slices.Delete(d.ExerciseIDs, i, i+1)
	s.emit(Event{Kind: EventSplitChanged, ExerciseID: exerciseID})
	return true
}

// ReorderDayExercise moves an exercise reference within a day.
func (s *Store) ReorderDayExercise(day, oldIndex, newIndex int) bool {
	if s.lock() != nil {
		return false
	}
	defer s.unlock()

	d, ok := s.dayLocked(day)
	if !ok || !move(d.ExerciseIDs, oldIndex, newIndex) {
		return false
	}
	s.emit(Event{Kind: EventSplitChanged})
	return true
}
