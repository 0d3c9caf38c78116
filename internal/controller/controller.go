// ABOUTME: Active-session controller binding the store, rest timer and haptics.
// ABOUTME: Owns set-completion marks, auto-start policy and confirm-gated discard.
package controller

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/harperreed/ironlog/internal/logging"
	"github.com/harperreed/ironlog/internal/models"
	"github.com/harperreed/ironlog/internal/session"
	"github.com/harperreed/ironlog/internal/timer"
)

var (
	ErrNoActiveSession    = errors.New("no active session")
	ErrNoSetsLogged       = errors.New("no sets logged")
	ErrConfirmationNeeded = errors.New("discarding logged sets needs confirmation")
	ErrUnknownSet         = errors.New("set not found in active session")
)

// Controller coordinates side effects around an active session. Its state
// is not persisted: a new controller starts with no completed sets and an
// idle timer. It is meant to be driven from one goroutine.
type Controller struct {
	store  *session.Store
	timer  *timer.RestTimer
	haptic *timer.HapticAlerter
	logger *log.Logger

	completed map[uuid.UUID]bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithHaptics sets the haptic feedback channel for short pulses.
func WithHaptics(h *timer.HapticAlerter) Option {
	return func(c *Controller) { c.haptic = h }
}

// WithLogger sets the controller logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = logging.OrDiscard(l) }
}

// New creates a controller. The timer's default is taken from the store's
// default rest setting.
func New(store *session.Store, t *timer.RestTimer, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		timer:     t,
		logger:    logging.Discard(),
		completed: make(map[uuid.UUID]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	t.SetDefault(time.Duration(store.Settings().DefaultRestSeconds) * time.Second)
	return c
}

func (c *Controller) pulse(d time.Duration) {
	if err := c.haptic.Pulse(context.Background(), d); err != nil {
		c.logger.Debug("haptic pulse failed", "err", err)
	}
}

// AddSuggestedSet logs a working set prefilled from the previous session.
func (c *Controller) AddSuggestedSet(exerciseID string) (uuid.UUID, error) {
	w, r := c.store.SuggestNextSet(exerciseID)
	id, ok := c.store.AddSet(exerciseID, models.SetInput{Type: models.SetWorking, Weight: w, Reps: r})
	if !ok {
		return uuid.Nil, ErrNoActiveSession
	}
	return id, nil
}

// CompleteSet marks a set done. The first completion of a set starts the
// rest timer when auto-start is on; repeated completions do nothing.
func (c *Controller) CompleteSet(exerciseID string, setID uuid.UUID) (bool, error) {
	active := c.store.Active()
	if active == nil {
		return false, ErrNoActiveSession
	}
	if !hasSet(active, exerciseID, setID) {
		return false, ErrUnknownSet
	}
	if c.completed[setID] {
		return false, nil
	}
	c.completed[setID] = true
	c.pulse(timer.PulseConfirm)

	if c.store.Settings().AutoStartTimer {
		c.timer.Start()
	}
	return true, nil
}

// UncompleteSet clears a completion mark without touching the timer.
func (c *Controller) UncompleteSet(setID uuid.UUID) {
	delete(c.completed, setID)
}

// IsCompleted reports whether a set is marked done.
func (c *Controller) IsCompleted(setID uuid.UUID) bool {
	return c.completed[setID]
}

func hasSet(w *models.WorkoutSession, exerciseID string, setID uuid.UUID) bool {
	g := w.Group(exerciseID)
	if g == nil {
		return false
	}
	for _, s := range g.Sets {
		if s.ID == setID {
			return true
		}
	}
	return false
}

// Reorder forwards a drag gesture to the store.
func (c *Controller) Reorder(oldIndex, newIndex int) bool {
	if oldIndex == newIndex {
		return false
	}
	if !c.store.ReorderExercise(oldIndex, newIndex) {
		return false
	}
	c.pulse(timer.PulseConfirm)
	return true
}

// NudgeRest adjusts a running rest countdown.
func (c *Controller) NudgeRest(delta time.Duration) bool {
	if !c.timer.Adjust(delta) {
		return false
	}
	c.pulse(timer.PulseNudge)
	return true
}

// SkipRest ends the rest countdown early.
func (c *Controller) SkipRest() {
	c.timer.Skip()
}

// ResetRest restarts the countdown at the configured rest.
func (c *Controller) ResetRest() {
	c.timer.Reset()
	c.pulse(timer.PulseNudge)
}

// NudgeConfiguredRest changes the rest used for this session's countdowns.
func (c *Controller) NudgeConfiguredRest(delta time.Duration) time.Duration {
	return c.timer.NudgeDefault(delta)
}

// Discard cancels the session. Sessions with logged sets require
// confirmed to be true.
func (c *Controller) Discard(confirmed bool) error {
	active := c.store.Active()
	if active == nil {
		return ErrNoActiveSession
	}
	if active.HasSets() && !confirmed {
		return ErrConfirmationNeeded
	}
	c.store.CancelSession()
	c.timer.Cancel()
	clear(c.completed)
	return nil
}

// Finish completes the session. It refuses when no sets are logged.
func (c *Controller) Finish(notes string) (*models.WorkoutSummary, error) {
	active := c.store.Active()
	if active == nil {
		return nil, ErrNoActiveSession
	}
	if active.SetCount() == 0 {
		return nil, ErrNoSetsLogged
	}
	sum, ok := c.store.FinishSession(notes)
	if !ok {
		return nil, ErrNoActiveSession
	}
	c.timer.Cancel()
	clear(c.completed)
	return sum, nil
}
