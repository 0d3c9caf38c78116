// ABOUTME: Rest timer: a one-second countdown service decoupled from the store.
// ABOUTME: Expiry fires the configured alerters and clears the countdown.
package timer

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/ironlog/internal/logging"
)

const (
	// MinDefault is the floor for the configured rest when nudged.
	MinDefault = 30 * time.Second

	step = time.Second
)

// Alerter signals that a rest period ended. Failures are best effort.
type Alerter interface {
	Alert(ctx context.Context) error
}

// RestTimer counts down rest periods in whole seconds.
type RestTimer struct {
	mu        sync.Mutex
	def       time.Duration
	remaining time.Duration
	running   bool

	interval time.Duration
	alerters []Alerter
	onChange func(remaining time.Duration, running bool)
	logger   *log.Logger
}

// Option configures a RestTimer.
type Option func(*RestTimer)

// WithAlerters sets the expiry alerters.
func WithAlerters(a ...Alerter) Option {
	return func(t *RestTimer) { t.alerters = append(t.alerters, a...) }
}

// WithInterval sets the wall-clock time between ticks in Run. Each tick
// still counts one second.
func WithInterval(d time.Duration) Option {
	return func(t *RestTimer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithOnChange registers a callback invoked after every state change.
func WithOnChange(fn func(remaining time.Duration, running bool)) Option {
	return func(t *RestTimer) { t.onChange = fn }
}

// WithLogger sets the timer logger.
func WithLogger(l *log.Logger) Option {
	return func(t *RestTimer) { t.logger = logging.OrDiscard(l) }
}

// New creates an idle timer with the given default rest.
func New(def time.Duration, opts ...Option) *RestTimer {
	t := &RestTimer{
		def:      def.Truncate(step),
		interval: step,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins a countdown at the configured default.
func (t *RestTimer) Start() {
	t.mu.Lock()
	t.remaining = t.def
	t.running = true
	t.mu.Unlock()
	t.changed()
}

// StartFor begins a countdown of d.
func (t *RestTimer) StartFor(d time.Duration) {
	t.mu.Lock()
	t.remaining = max(d.Truncate(step), 0)
	t.running = true
	t.mu.Unlock()
	t.changed()
}

// Cancel clears the countdown without alerting.
func (t *RestTimer) Cancel() {
	t.mu.Lock()
	wasRunning := t.running
	t.running = false
	t.remaining = 0
	t.mu.Unlock()
	if wasRunning {
		t.changed()
	}
}

// Skip ends the current rest early. It does not alert.
func (t *RestTimer) Skip() { t.Cancel() }

// Reset restarts the countdown at the configured default, running or not.
func (t *RestTimer) Reset() { t.Start() }

// Adjust nudges a running countdown by delta, clamped at zero. Reaching
// zero expires the timer. It returns false when idle.
func (t *RestTimer) Adjust(delta time.Duration) bool {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return false
	}
	t.remaining = max(t.remaining+delta, 0)
	expired := t.remaining == 0
	if expired {
		t.running = false
	}
	t.mu.Unlock()

	t.changed()
	if expired {
		t.expire()
	}
	return true
}

// Tick advances a running countdown by one second and reports whether it
// expired.
func (t *RestTimer) Tick() bool {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return false
	}
	t.remaining = max(t.remaining-step, 0)
	expired := t.remaining == 0
	if expired {
		t.running = false
	}
	t.mu.Unlock()

	t.changed()
	if expired {
		t.expire()
	}
	return expired
}

// Remaining returns the time left and whether a countdown is running.
func (t *RestTimer) Remaining() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining, t.running
}

// Default returns the configured rest.
func (t *RestTimer) Default() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.def
}

// SetDefault replaces the configured rest.
func (t *RestTimer) SetDefault(d time.Duration) {
	t.mu.Lock()
	t.def = max(d.Truncate(step), step)
	t.mu.Unlock()
}

// NudgeDefault shifts the configured rest by delta, never below MinDefault.
func (t *RestTimer) NudgeDefault(delta time.Duration) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.def = max(t.def+delta, MinDefault)
	return t.def
}

// Run ticks once per interval until ctx is done.
func (t *RestTimer) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			t.Tick()
		}
	}
}

func (t *RestTimer) changed() {
	if t.onChange == nil {
		return
	}
	remaining, running := t.Remaining()
	t.onChange(remaining, running)
}

func (t *RestTimer) expire() {
	t.logger.Debug("rest timer expired")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, a := range t.alerters {
		if err := a.Alert(ctx); err != nil {
			t.logger.Debug("rest alert failed", "err", err)
		}
	}
}
