// ABOUTME: Tests for the rest timer countdown, nudges, expiry and run loop.
// ABOUTME: goleak guards against the run loop outliving its context.
package timer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingAlerter struct {
	mu    sync.Mutex
	count int
	err   error
}

func (c *countingAlerter) Alert(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	return c.err
}

func (c *countingAlerter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func TestStartAndTick(t *testing.T) {
	a := &countingAlerter{}
	rt := New(3*time.Second, WithAlerters(a))

	_, running := rt.Remaining()
	assert.False(t, running)
	assert.False(t, rt.Tick(), "idle tick is a no-op")

	rt.Start()
	rem, running := rt.Remaining()
	assert.True(t, running)
	assert.Equal(t, 3*time.Second, rem)

	assert.False(t, rt.Tick())
	assert.False(t, rt.Tick())
	assert.True(t, rt.Tick())

	_, running = rt.Remaining()
	assert.False(t, running)
	assert.Equal(t, 1, a.Count())

	assert.False(t, rt.Tick())
	assert.Equal(t, 1, a.Count())
}

func TestAdjust(t *testing.T) {
	a := &countingAlerter{}
	rt := New(90*time.Second, WithAlerters(a))

	assert.False(t, rt.Adjust(15*time.Second), "idle adjust is a no-op")

	rt.Start()
	require.True(t, rt.Adjust(30*time.Second))
	rem, _ := rt.Remaining()
	assert.Equal(t, 120*time.Second, rem)

	require.True(t, rt.Adjust(-15*time.Second))
	rem, _ = rt.Remaining()
	assert.Equal(t, 105*time.Second, rem)

	require.True(t, rt.Adjust(-5*time.Minute))
	rem, running := rt.Remaining()
	assert.Zero(t, rem)
	assert.False(t, running)
	assert.Equal(t, 1, a.Count(), "clamping to zero expires the timer")
}

func TestSkipAndReset(t *testing.T) {
	a := &countingAlerter{}
	rt := New(60*time.Second, WithAlerters(a))

	rt.StartFor(10 * time.Second)
	rt.Skip()
	_, running := rt.Remaining()
	assert.False(t, running)
	assert.Zero(t, a.Count())

	rt.Reset()
	rem, running := rt.Remaining()
	assert.True(t, running)
	assert.Equal(t, 60*time.Second, rem)
}

func TestNudgeDefault(t *testing.T) {
	rt := New(60 * time.Second)
	assert.Equal(t, 90*time.Second, rt.NudgeDefault(30*time.Second))
	assert.Equal(t, 60*time.Second, rt.NudgeDefault(-30*time.Second))
	assert.Equal(t, MinDefault, rt.NudgeDefault(-30*time.Second))
	assert.Equal(t, MinDefault, rt.NudgeDefault(-30*time.Second))

	rt.SetDefault(200 * time.Second)
	assert.Equal(t, 200*time.Second, rt.Default())
}

func TestAlertFailuresAreSwallowed(t *testing.T) {
	bad := &countingAlerter{err: errors.New("no audio device")}
	good := &countingAlerter{}
	rt := New(time.Second, WithAlerters(bad, good))

	rt.Start()
	assert.True(t, rt.Tick())
	assert.Equal(t, 1, bad.Count())
	assert.Equal(t, 1, good.Count())
}

func TestOnChange(t *testing.T) {
	var seen []time.Duration
	rt := New(2*time.Second, WithOnChange(func(rem time.Duration, _ bool) {
		seen = append(seen, rem)
	}))
	rt.Start()
	rt.Tick()
	rt.Tick()
	assert.Equal(t, []time.Duration{2 * time.Second, time.Second, 0}, seen)
}

func TestRunStopsOnCancel(t *testing.T) {
	a := &countingAlerter{}
	rt := New(3*time.Second, WithAlerters(a), WithInterval(time.Millisecond))
	rt.Start()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rt.Run(ctx) }()

	require.Eventually(t, func() bool { return a.Count() == 1 }, 2*time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
