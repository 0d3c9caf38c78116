// ABOUTME: Tests for the session store state machine and its invariants.
// ABOUTME: Covers set bookkeeping, idempotent adds, finish-once and reordering.
package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/ironlog/internal/catalog"
	"github.com/harperreed/ironlog/internal/models"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingPersister struct {
	mu    sync.Mutex
	snaps []models.Snapshot
	err   error
}

func (p *recordingPersister) Persist(snap models.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snaps = append(p.snaps, snap)
	return p.err
}

func (p *recordingPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.snaps)
}

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	return New(nil, WithClock(clock.Now)), clock
}

func work(w float64, reps int) models.SetInput {
	return models.SetInput{Type: models.SetWorking, Weight: models.Weight(w), Reps: models.Reps(reps)}
}

func TestStartSessionSeedsFromTrainingDay(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.StartSession(1, ""))

	active := s.Active()
	require.NotNil(t, active)
	assert.Equal(t, "Push (Chest/Shoulders/Triceps)", active.DayName)
	require.Len(t, active.Exercises, 7)
	assert.Equal(t, "chest_fly", active.Exercises[0].ExerciseID)
	for _, g := range active.Exercises {
		assert.Empty(t, g.Sets)
	}
}

func TestStartSessionRestDay(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.StartSession(7, "Active recovery"))
	active := s.Active()
	require.NotNil(t, active)
	assert.Equal(t, "Active recovery", active.DayName)
	assert.Empty(t, active.Exercises)
}

func TestStartSessionWhileActive(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.StartSession(1, ""))
	first := s.Active().ID
	_, ok := s.AddSet("chest_fly", work(20, 10))
	require.True(t, ok)

	err := s.StartSession(2, "")
	assert.True(t, errors.Is(err, ErrSessionActive))
	assert.Equal(t, first, s.Active().ID)
	assert.Equal(t, 1, s.Active().SetCount())

	require.NoError(t, s.StartSession(2, "", ReplaceActive()))
	assert.NotEqual(t, first, s.Active().ID)
	assert.Equal(t, 2, s.Active().DayNumber)
	assert.Empty(t, s.History())
}

func TestStartSessionClearsPendingSummary(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.StartSession(3, ""))
	_, ok := s.FinishSession("")
	require.True(t, ok)
	_, pending := s.Summary()
	require.True(t, pending)

	require.NoError(t, s.StartSession(3, ""))
	_, pending = s.Summary()
	assert.False(t, pending)
}

func TestSetCountTracksAddsAndRemoves(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.StartSession(7, ""))

	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		id, ok := s.AddSet("squat", work(100, 5))
		require.True(t, ok)
		ids = append(ids, id)
	}
	assert.True(t, s.RemoveSet("squat", ids[1]))
	assert.False(t, s.RemoveSet("squat", ids[1]))
	assert.False(t, s.RemoveSet("squat", uuid.New()))
	assert.False(t, s.RemoveSet("bench", ids[0]))

	reps := models.Reps(3)
	assert.False(t, s.UpdateSet("squat", uuid.New(), models.SetPatch{Reps: &reps}))
	assert.True(t, s.UpdateSet("squat", ids[0], models.SetPatch{Reps: &reps}))

	g := s.Active().Group("squat")
	require.NotNil(t, g)
	assert.Len(t, g.Sets, 3)
	assert.Equal(t, models.Reps(3), g.Sets[0].Reps)
	assert.Equal(t, ids[2], g.Sets[1].ID)
}

func TestAddSetWithoutSessionIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	id, ok := s.AddSet("squat", work(100, 5))
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)
	assert.False(t, s.AddExercise("squat"))
	assert.False(t, s.RemoveExercise("squat"))
	assert.False(t, s.ReorderExercise(0, 1))
	assert.False(t, s.CancelSession())
	_, finished := s.FinishSession("")
	assert.False(t, finished)
}

func TestAddSetCreatesMissingGroup(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.StartSession(7, ""))
	_, ok := s.AddSet("deadlift", work(140, 3))
	require.True(t, ok)

	active := s.Active()
	require.Len(t, active.Exercises, 1)
	assert.Equal(t, "deadlift", active.Exercises[0].ExerciseID)
}

func TestSetTimestampsAreMonotonic(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.StartSession(7, ""))
	for i := 0; i < 3; i++ {
		_, ok := s.AddSet("squat", work(100, 5))
		require.True(t, ok)
	}
	sets := s.Active().Group("squat").Sets
	assert.True(t, sets[1].Timestamp.After(sets[0].Timestamp))
	assert.True(t, sets[2].Timestamp.After(sets[1].Timestamp))
}

func TestAddExerciseIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.StartSession(7, ""))
	assert.True(t, s.AddExercise("ez_curl"))
	assert.False(t, s.AddExercise("ez_curl"))

	active := s.Active()
	require.Len(t, active.Exercises, 1)

	assert.True(t, s.RemoveExercise("ez_curl"))
	assert.False(t, s.RemoveExercise("ez_curl"))
	assert.Empty(t, s.Active().Exercises)
}

func TestReorderExercise(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.StartSession(7, ""))
	for _, id := range []string{"a", "b", "c"} {
		require.True(t, s.AddExercise(id))
	}

	require.True(t, s.ReorderExercise(0, 2))
	assert.Equal(t, []string{"b", "c", "a"}, groupIDs(s.Active()))

	require.True(t, s.ReorderExercise(2, 0))
	assert.Equal(t, []string{"a", "b", "c"}, groupIDs(s.Active()))

	assert.False(t, s.ReorderExercise(-1, 0))
	assert.False(t, s.ReorderExercise(0, 3))
	assert.Equal(t, []string{"a", "b", "c"}, groupIDs(s.Active()))
}

func groupIDs(w *models.WorkoutSession) []string {
	var ids []string
	for _, g := range w.Exercises {
		ids = append(ids, g.ExerciseID)
	}
	return ids
}

func TestFinishSessionOnce(t *testing.T) {
	s, clock := newTestStore(t)
	require.NoError(t, s.StartSession(2, ""))
	_, ok := s.AddSet("lat_pulldown", work(50, 10))
	require.True(t, ok)
	clock.Advance(45 * time.Minute)

	sum, ok := s.FinishSession("felt strong")
	require.True(t, ok)
	assert.Nil(t, s.Active())
	assert.Equal(t, 45, sum.DurationMinutes)
	assert.Equal(t, 1, sum.SetCount)

	_, again := s.FinishSession("")
	assert.False(t, again)

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, "felt strong", history[0].Notes)
	assert.True(t, history[0].IsFinished())

	consumed, ok := s.ConsumeSummary()
	require.True(t, ok)
	assert.Equal(t, sum.ID, consumed.ID)
	_, ok = s.ConsumeSummary()
	assert.False(t, ok)
}

func TestFinishEmptySession(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.StartSession(1, "Push"))
	sum, ok := s.FinishSession("")
	require.True(t, ok)
	assert.Zero(t, sum.SetCount)
	assert.Zero(t, sum.ExerciseCount)
	assert.Zero(t, sum.TotalVolume)
	assert.Empty(t, sum.PRsBroken)
}

func TestHistoryIsNewestFirst(t *testing.T) {
	s, clock := newTestStore(t)
	for day := 1; day <= 3; day++ {
		require.NoError(t, s.StartSession(day, ""))
		_, _ = s.FinishSession("")
		clock.Advance(24 * time.Hour)
	}
	history := s.History()
	require.Len(t, history, 3)
	assert.Equal(t, 3, history[0].DayNumber)
	assert.Equal(t, 1, history[2].DayNumber)
}

func TestPRAcrossSessions(t *testing.T) {
	s, clock := newTestStore(t)
	require.NoError(t, s.StartSession(4, ""))
	_, _ = s.AddSet("ez_curl", work(40, 8))
	_, _ = s.FinishSession("")
	clock.Advance(48 * time.Hour)

	require.NoError(t, s.StartSession(4, ""))
	_, _ = s.AddSet("ez_curl", work(45, 6))
	sum, ok := s.FinishSession("")
	require.True(t, ok)
	require.Len(t, sum.PRsBroken, 1)
	assert.Equal(t, models.PersonalRecord{ExerciseName: "EZ Curl Bar", Weight: 45, Reps: 6}, sum.PRsBroken[0])

	clock.Advance(48 * time.Hour)
	require.NoError(t, s.StartSession(4, ""))
	_, _ = s.AddSet("ez_curl", work(45, 8))
	sum, _ = s.FinishSession("")
	assert.Empty(t, sum.PRsBroken)
}

func TestCancelSessionLeavesNoTrace(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.StartSession(1, ""))
	_, _ = s.AddSet("chest_fly", work(15, 12))
	assert.True(t, s.CancelSession())
	assert.Nil(t, s.Active())
	assert.Empty(t, s.History())
	_, pending := s.Summary()
	assert.False(t, pending)
}

func TestExerciseHistoryExcludesActive(t *testing.T) {
	s, clock := newTestStore(t)
	require.NoError(t, s.StartSession(3, ""))
	_, _ = s.AddSet("smith_squat", work(60, 8))
	_, _ = s.FinishSession("")
	clock.Advance(time.Hour)

	require.NoError(t, s.StartSession(3, ""))
	_, _ = s.AddSet("smith_squat", work(65, 8))

	hist := s.ExerciseHistory("smith_squat")
	require.Len(t, hist, 1)
	assert.Equal(t, models.Weight(60), hist[0].Weight)
}

func TestActiveIsACopy(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.StartSession(7, ""))
	_, _ = s.AddSet("squat", work(100, 5))

	a := s.Active()
	a.Exercises[0].Sets[0].Weight = 999
	a.Exercises = nil

	b := s.Active()
	require.Len(t, b.Exercises, 1)
	assert.Equal(t, models.Weight(100), b.Exercises[0].Sets[0].Weight)
}

func TestSuggestNextSet(t *testing.T) {
	s, clock := newTestStore(t)
	require.NoError(t, s.StartSession(3, ""))
	_, _ = s.AddSet("leg_extension", work(30, 12))
	_, _ = s.AddSet("leg_extension", work(35, 10))
	_, _ = s.FinishSession("")
	clock.Advance(time.Hour)

	require.NoError(t, s.StartSession(3, ""))
	w, r := s.SuggestNextSet("leg_extension")
	assert.Equal(t, models.Weight(30), w)
	assert.Equal(t, models.Reps(12), r)

	_, _ = s.AddSet("leg_extension", work(32.5, 12))
	w, _ = s.SuggestNextSet("leg_extension")
	assert.Equal(t, models.Weight(35), w)

	assert.Len(t, s.PreviousSessionSets("leg_extension"), 2)
}

func TestActiveStats(t *testing.T) {
	s, clock := newTestStore(t)
	_, ok := s.ActiveStats()
	assert.False(t, ok)

	require.NoError(t, s.StartSession(1, ""))
	_, _ = s.AddSet("chest_fly", work(10, 10))
	_, _ = s.AddSet("incline_press", work(20, 5))
	clock.Advance(10 * time.Minute)

	st, ok := s.ActiveStats()
	require.True(t, ok)
	assert.Equal(t, 200.0, st.Volume)
	assert.Equal(t, 2, st.Sets)
	assert.Equal(t, 2, st.Exercises)
	assert.Equal(t, 10*time.Minute, st.Elapsed)
}

func TestRegisterCustomExercise(t *testing.T) {
	s, _ := newTestStore(t)
	ex := models.Exercise{ID: "web-0001", Name: "Sit-Up", MuscleGroup: "Waist", Source: models.SourceWeb}
	assert.True(t, s.RegisterCustomExercise(ex))
	assert.False(t, s.RegisterCustomExercise(ex))
	assert.Len(t, s.CustomExercises(), 1)
	assert.Equal(t, "Sit-Up", s.ExerciseName("web-0001"))
	assert.Equal(t, "nope", s.ExerciseName("nope"))
}

func TestDeleteWorkoutAndReset(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.StartSession(1, ""))
	sum, _ := s.FinishSession("")
	assert.False(t, s.DeleteWorkout(uuid.New()))
	assert.True(t, s.DeleteWorkout(sum.ID))
	assert.Empty(t, s.History())

	s.RegisterCustomExercise(models.Exercise{ID: "x", Name: "X"})
	vol := 10
	s.UpdateSettings(models.SettingsPatch{RestTimerVolume: &vol})
	s.Reset()
	assert.Empty(t, s.CustomExercises())
	assert.Equal(t, models.DefaultSettings(), s.Settings())
}

func TestSubscribeReceivesEvents(t *testing.T) {
	s, _ := newTestStore(t)
	var got []EventKind
	unsubscribe := s.Subscribe(func(e Event) {
		got = append(got, e.Kind)
		_ = s.Active() // reading from a subscriber must not deadlock
	})

	require.NoError(t, s.StartSession(7, ""))
	_, _ = s.AddSet("squat", work(100, 5))
	_, _ = s.FinishSession("")
	s.AddExercise("noop")

	unsubscribe()
	unsubscribe()
	require.NoError(t, s.StartSession(7, ""))

	assert.Equal(t, []EventKind{EventSessionStarted, EventSetAdded, EventSessionFinished}, got)
}

func TestPersisterCalledAfterEachMutation(t *testing.T) {
	p := &recordingPersister{}
	s := New(catalog.NewRegistry(nil), WithPersister(p))

	require.NoError(t, s.StartSession(7, ""))
	_, _ = s.AddSet("squat", work(100, 5))
	assert.False(t, s.AddExercise("squat"))
	assert.Equal(t, 2, p.count())

	p.err = errors.New("disk full")
	_, ok := s.FinishSession("")
	assert.True(t, ok)
	assert.Equal(t, 3, p.count())
	assert.Len(t, s.History(), 1)
}

func TestAddSetRejectsInvalidNumbers(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.StartSession(7, ""))

	neg := models.RIR(-3)
	_, ok := s.AddSet("squat", models.SetInput{Weight: 10, Reps: 5, RIR: &neg})
	assert.False(t, ok)
	_, ok = s.AddSet("squat", models.SetInput{Weight: -10, Reps: 5})
	assert.False(t, ok)
	assert.Empty(t, s.Active().Group("squat").Sets)

	id, ok := s.AddSet("squat", work(100, 5))
	require.True(t, ok)
	assert.False(t, s.UpdateSet("squat", id, models.SetPatch{RIR: &neg}))
	assert.Nil(t, s.Active().Group("squat").Sets[0].RIR)
}

func TestErrTracksFailedSaves(t *testing.T) {
	p := &recordingPersister{err: errors.New("disk full")}
	s := New(nil, WithPersister(p))

	require.NoError(t, s.StartSession(7, ""))
	require.Error(t, s.Err())
	assert.Contains(t, s.Err().Error(), "disk full")
	assert.Equal(t, int64(0), s.Revision())

	p.mu.Lock()
	p.err = nil
	p.mu.Unlock()
	_, _ = s.AddSet("squat", work(100, 5))
	assert.NoError(t, s.Err())
	assert.Equal(t, int64(1), s.Revision())

	last := p.snaps[len(p.snaps)-1]
	assert.NotNil(t, last.ActiveWorkout, "a later save carries the earlier change")
}

// syncingPersister stands in for storage shared with another process.
type syncingPersister struct {
	recordingPersister
	fresh    *models.Snapshot
	beginErr error
	begins   int
	released int
}

func (p *syncingPersister) Begin(revision int64) (*models.Snapshot, func(), error) {
	p.begins++
	if p.beginErr != nil {
		return nil, nil, p.beginErr
	}
	fresh := p.fresh
	p.fresh = nil
	if fresh != nil && fresh.Revision == revision {
		fresh = nil
	}
	return fresh, func() { p.released++ }, nil
}

func TestMutationReloadsNewerState(t *testing.T) {
	p := &syncingPersister{}
	s := New(nil, WithPersister(p))
	require.NoError(t, s.StartSession(7, ""))
	_, _ = s.AddSet("squat", work(100, 5))
	_, ok := s.FinishSession("")
	require.True(t, ok)
	rev := s.Revision()

	// Another process logged a body metric on top of what we saved.
	other := New(nil, WithSnapshot(s.Snapshot()))
	other.AddBodyMetric(models.BodyMetric{Weight: 55})
	fresh := other.Snapshot()
	fresh.Revision = rev + 1
	p.fresh = &fresh

	_, _ = s.AddRecoveryLog(models.RecoveryLog{SleepHours: 7, SleepQuality: 3, Energy: 3, Motivation: 3})
	assert.Len(t, s.BodyMetrics(), 1, "reloaded state kept")
	assert.Len(t, s.RecoveryLogs(), 1, "own change applied on top")
	assert.Len(t, s.History(), 1)
	assert.Equal(t, rev+2, s.Revision())
	assert.Equal(t, p.begins, p.released, "every lock taken is released")

	last := p.snaps[len(p.snaps)-1]
	assert.Equal(t, rev+1, last.Revision)
	assert.Len(t, last.BodyMetrics, 1)
}

func TestSyncFailureLeavesStateUnchanged(t *testing.T) {
	p := &syncingPersister{}
	s := New(nil, WithPersister(p))
	require.NoError(t, s.StartSession(7, ""))
	saves := p.count()

	p.beginErr = errors.New("data directory is locked")
	_, ok := s.AddSet("squat", work(100, 5))
	assert.False(t, ok)
	assert.Error(t, s.Err())
	assert.ErrorIs(t, s.StartSession(1, "", ReplaceActive()), p.beginErr)
	assert.Equal(t, 7, s.Active().DayNumber)
	assert.Equal(t, saves, p.count())

	p.beginErr = nil
	require.NoError(t, s.Refresh())
	_, ok = s.AddSet("squat", work(100, 5))
	assert.True(t, ok)
	assert.NoError(t, s.Err())
}
