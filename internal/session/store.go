// ABOUTME: Session store: the single owner of workout, body and recovery state.
// ABOUTME: Enforces one active session, unique exercise groups, and newest-first history.
package session

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/harperreed/ironlog/internal/analytics"
	"github.com/harperreed/ironlog/internal/catalog"
	"github.com/harperreed/ironlog/internal/logging"
	"github.com/harperreed/ironlog/internal/models"
)

// ErrSessionActive is returned when starting a session while one is active.
var ErrSessionActive = errors.New("a session is already active")

// ErrConflict is returned by a Persister when the stored state has moved past
// the revision the store last loaded.
var ErrConflict = errors.New("stored state changed since it was loaded")

// Persister saves the store state after every mutation. Persist stores snap
// as revision snap.Revision+1 and fails with ErrConflict when the stored
// revision is not snap.Revision.
type Persister interface {
	Persist(snap models.Snapshot) error
}

// Syncer is a Persister shared with other processes. Begin takes the
// cross-process lock for one mutation and returns the stored snapshot when
// its revision differs from revision, or nil when the store is current.
// release drops the lock.
type Syncer interface {
	Persister
	Begin(revision int64) (fresh *models.Snapshot, release func(), err error)
}

// Store holds all workout-domain state. All methods are safe for
// concurrent use; mutations are applied one at a time.
type Store struct {
	mu        sync.Mutex
	catalog   *catalog.Registry
	clock     func() time.Time
	lastStamp time.Time
	logger    *log.Logger
	persister Persister
	revision  int64
	release   func()
	err       error

	subs    map[uint64]func(Event)
	nextSub uint64
	pending []Event

	active       *models.WorkoutSession
	summary      *models.WorkoutSummary
	history      []models.WorkoutSession
	bodyMetrics  []models.BodyMetric
	recoveryLogs []models.RecoveryLog
	settings     models.UserSettings
	soundEnabled bool
	profile      models.UserProfile
	days         []models.TrainingDay
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		s.logger = logging.OrDiscard(l)
	}
}

// WithPersister saves a snapshot after every mutation.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// WithSnapshot loads previously persisted state without re-saving it.
func WithSnapshot(snap models.Snapshot) Option {
	return func(s *Store) {
		s.restoreLocked(snap)
	}
}

// New creates a store with default settings, profile and training split.
// A nil registry gets the built-in catalog.
func New(reg *catalog.Registry, opts ...Option) *Store {
	if reg == nil {
		reg = catalog.NewRegistry(nil)
	}
	s := &Store{
		catalog: reg,
		clock:   time.Now,
		logger:  logging.Discard(),
		subs:    make(map[uint64]func(Event)),
	}
	s.resetLocked()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) resetLocked() {
	s.active = nil
	s.summary = nil
	s.history = []models.WorkoutSession{}
	s.bodyMetrics = []models.BodyMetric{}
	s.recoveryLogs = []models.RecoveryLog{}
	s.settings = models.DefaultSettings()
	s.soundEnabled = true
	s.profile = catalog.DefaultProfile()
	s.days = catalog.DefaultSplit()
}

// now returns a strictly increasing timestamp with no monotonic reading.
func (s *Store) now() time.Time {
	t := s.clock().Round(0)
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Millisecond)
	}
	s.lastStamp = t
	return t
}

func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	snap := s.snapshotLocked()
	if err := s.persister.Persist(snap); err != nil {
		s.err = fmt.Errorf("save state: %w", err)
		s.logger.Error("persist snapshot", "revision", snap.Revision, "err", err)
		return
	}
	s.revision = snap.Revision + 1
	s.err = nil
}

// Err reports the most recent failure to load or save state. A successful
// save clears it, since every save writes the whole state.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Revision returns the stored revision the in-memory state is based on.
func (s *Store) Revision() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

func (s *Store) dayLocked(number int) (*models.TrainingDay, bool) {
	for i := range s.days {
		if s.days[i].Number == number {
			return &s.days[i], true
		}
	}
	return nil, false
}

// StartOption adjusts StartSession.
type StartOption func(*startConfig)

type startConfig struct {
	replace bool
}

// ReplaceActive cancels any active session before starting the new one.
func ReplaceActive() StartOption {
	return func(c *startConfig) { c.replace = true }
}

// StartSession begins a session for a training day, seeding exercise groups
// from the day's template. An empty name uses the template's name. Any
// pending summary is cleared.
func (s *Store) StartSession(dayNumber int, dayName string, opts ...StartOption) error {
	var cfg startConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := s.lock(); err != nil {
		return err
	}
	defer s.unlock()

	if s.active != nil {
		if !cfg.replace {
			return ErrSessionActive
		}
		s.logger.Warn("replacing active session", "session", s.active.ID, "sets", s.active.SetCount())
		s.emit(Event{Kind: EventSessionCancelled, SessionID: s.active.ID})
		s.active = nil
	}

	var ids []string
	if day, ok := s.dayLocked(dayNumber); ok {
		ids = day.ExerciseIDs
		if dayName == "" {
			dayName = day.Name
		}
	}
	s.active = models.NewWorkoutSession(dayNumber, dayName, s.now(), ids)
	s.summary = nil
	s.logger.Debug("session started", "session", s.active.ID, "day", dayNumber)
	s.emit(Event{Kind: EventSessionStarted, SessionID: s.active.ID})
	return nil
}

// AddExercise appends an empty group. No-op without a session or when the
// exercise is already present.
func (s *Store) AddExercise(exerciseID string) bool {
	if s.lock() != nil {
		return false
	}
	defer s.unlock()

	if s.active == nil || exerciseID == "" || s.active.GroupIndex(exerciseID) >= 0 {
		return false
	}
	s.active.Exercises = append(s.active.Exercises, models.ExerciseGroup{ExerciseID: exerciseID, Sets: []models.Set{}})
	s.emit(Event{Kind: EventExerciseAdded, SessionID: s.active.ID, ExerciseID: exerciseID})
	return true
}

// RemoveExercise drops a group and all its sets.
func (s *Store) RemoveExercise(exerciseID string) bool {
	if s.lock() != nil {
		return false
	}
	defer s.unlock()

	if s.active == nil {
		return false
	}
	i := s.active.GroupIndex(exerciseID)
	if i < 0 {
		return false
	}
	s.active.Exercises = slices.Delete(s.active.Exercises, i, i+1)
	s.emit(Event{Kind: EventExerciseRemoved, SessionID: s.active.ID, ExerciseID: exerciseID})
	return true
}

// ReorderExercise moves the group at oldIndex to newIndex. Out-of-range
// indices leave the order unchanged.
func (s *Store) ReorderExercise(oldIndex, newIndex int) bool {
	if s.lock() != nil {
		return false
	}
	defer s.unlock()

	if s.active == nil || !move(s.active.Exercises, oldIndex, newIndex) {
		return false
	}
	s.emit(Event{Kind: EventExerciseReordered, SessionID: s.active.ID})
	return true
}

// move relocates items[from] to position to, shifting the rest.
func move[T any](items []T, from, to int) bool {
	n := len(items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	moved := items[from]
	if from < to {
		copy(items[from:to], items[from+1:to+1])
	} else {
		copy(items[to+1:from+1], items[to:from])
	}
	items[to] = moved
	return true
}

// AddSet appends a set to an exercise group, creating the group if needed.
// It returns the new set's ID, or false without an active session or when
// the input holds invalid numbers.
func (s *Store) AddSet(exerciseID string, in models.SetInput) (uuid.UUID, bool) {
	if err := in.Validate(); err != nil {
		s.logger.Warn("set rejected", "exercise", exerciseID, "err", err)
		return uuid.Nil, false
	}
	if s.lock() != nil {
		return uuid.Nil, false
	}
	defer s.unlock()

	if s.active == nil || exerciseID == "" {
		return uuid.Nil, false
	}
	set := models.NewSet(in, s.now())
	if g := s.active.Group(exerciseID); g != nil {
		g.Sets = append(g.Sets, set)
	} else {
		s.active.Exercises = append(s.active.Exercises, models.ExerciseGroup{ExerciseID: exerciseID, Sets: []models.Set{set}})
	}
	s.emit(Event{Kind: EventSetAdded, SessionID: s.active.ID, ExerciseID: exerciseID, SetID: set.ID})
	return set.ID, true
}

// UpdateSet merges patch into the matching set. Patches holding invalid
// numbers are ignored.
func (s *Store) UpdateSet(exerciseID string, setID uuid.UUID, patch models.SetPatch) bool {
	if err := patch.Validate(); err != nil {
		s.logger.Warn("set update rejected", "set", setID, "err", err)
		return false
	}
	if s.lock() != nil {
		return false
	}
	defer s.unlock()

	set := s.findSetLocked(exerciseID, setID)
	if set == nil {
		return false
	}
	patch.Apply(set)
	s.emit(Event{Kind: EventSetUpdated, SessionID: s.active.ID, ExerciseID: exerciseID, SetID: setID})
	return true
}

// RemoveSet deletes the matching set.
func (s *Store) RemoveSet(exerciseID string, setID uuid.UUID) bool {
	if s.lock() != nil {
		return false
	}
	defer s.unlock()

	if s.active == nil {
		return false
	}
	g := s.active.Group(exerciseID)
	if g == nil {
		return false
	}
	i := slices.IndexFunc(g.Sets, func(st models.Set) bool { return st.ID == setID })
	if i < 0 {
		return false
	}
	g.Sets = slices.Delete(g.Sets, i, i+1)
	s.emit(Event{Kind: EventSetRemoved, SessionID: s.active.ID, ExerciseID: exerciseID, SetID: setID})
	return true
}

func (s *Store) findSetLocked(exerciseID string, setID uuid.UUID) *models.Set {
	if s.active == nil {
		return nil
	}
	g := s.active.Group(exerciseID)
	if g == nil {
		return nil
	}
	for i := range g.Sets {
		if g.Sets[i].ID == setID {
			return &g.Sets[i]
		}
	}
	return nil
}

// FinishSession stamps the end time, computes the summary, prepends the
// session to history and clears the active session. The summary is held
// until ConsumeSummary. Non-empty notes replace the session notes.
func (s *Store) FinishSession(notes string) (*models.WorkoutSummary, bool) {
	if s.lock() != nil {
		return nil, false
	}
	defer s.unlock()

	if s.active == nil {
		return nil, false
	}
	finished := s.active
	end := s.now()
	finished.EndTime = &end
	if notes != "" {
		finished.Notes = notes
	}

	sum := analytics.Summarize(finished, s.history, s.catalog, end)
	s.history = append([]models.WorkoutSession{*finished}, s.history...)
	s.active = nil
	s.summary = &sum

	s.logger.Info("session finished", "session", sum.ID, "sets", sum.SetCount, "volume", sum.TotalVolume, "prs", len(sum.PRsBroken))
	s.emit(Event{Kind: EventSessionFinished, SessionID: sum.ID})
	out := sum
	return &out, true
}

// CancelSession discards the active session without a trace.
func (s *Store) CancelSession() bool {
	if s.lock() != nil {
		return false
	}
	defer s.unlock()

	if s.active == nil {
		return false
	}
	s.emit(Event{Kind: EventSessionCancelled, SessionID: s.active.ID})
	s.active = nil
	return true
}

// ConsumeSummary takes the pending summary exactly once.
func (s *Store) ConsumeSummary() (*models.WorkoutSummary, bool) {
	if s.lock() != nil {
		return nil, false
	}
	defer s.unlock()

	if s.summary == nil {
		return nil, false
	}
	sum := s.summary
	s.summary = nil
	s.emit(Event{Kind: EventSummaryConsumed, SessionID: sum.ID})
	return sum, true
}

// RegisterCustomExercise adds an exercise to the catalog. Duplicate IDs
// are ignored.
func (s *Store) RegisterCustomExercise(ex models.Exercise) bool {
	if s.lock() != nil {
		return false
	}
	defer s.unlock()

	if !s.catalog.Register(ex) {
		return false
	}
	s.emit(Event{Kind: EventExerciseRegistered, ExerciseID: ex.ID})
	return true
}

// DeleteWorkout removes a finished session from history.
func (s *Store) DeleteWorkout(id uuid.UUID) bool {
	if s.lock() != nil {
		return false
	}
	defer s.unlock()

	i := slices.IndexFunc(s.history, func(w models.WorkoutSession) bool { return w.ID == id })
	if i < 0 {
		return false
	}
	s.history = slices.Delete(s.history, i, i+1)
	s.emit(Event{Kind: EventWorkoutDeleted, SessionID: id})
	return true
}

// Reset restores factory defaults. Subscribers and the persister are kept.
func (s *Store) Reset() {
	if s.lock() != nil {
		return
	}
	defer s.unlock()

	s.resetLocked()
	s.catalog = catalog.NewRegistry(nil)
	s.emit(Event{Kind: EventReset})
}
