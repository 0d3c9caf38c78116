// ABOUTME: Rest-timer alerts: a synthesised alarm tone and a vibration pattern.
// ABOUTME: Both are gated by user settings and never surface errors to the user.
package timer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/harperreed/ironlog/internal/models"
)

// AlarmPattern is the vibrate/pause pattern played on expiry.
var AlarmPattern = []time.Duration{
	500 * time.Millisecond, 200 * time.Millisecond,
	500 * time.Millisecond, 200 * time.Millisecond,
	500 * time.Millisecond,
}

const (
	// PulseConfirm acknowledges a completed set or a reorder.
	PulseConfirm = 20 * time.Millisecond
	// PulseNudge acknowledges a rest adjustment.
	PulseNudge = 10 * time.Millisecond
)

// SettingsSource exposes the settings that gate alerts.
type SettingsSource interface {
	Settings() models.UserSettings
	SoundEnabled() bool
}

// Player plays a WAV clip.
type Player interface {
	Play(ctx context.Context, wav []byte) error
}

// Vibrator plays an on/off vibration pattern starting with "on".
type Vibrator interface {
	Vibrate(ctx context.Context, pattern []time.Duration) error
}

// ToneAlerter plays the alarm tone when sound is enabled.
type ToneAlerter struct {
	player   Player
	settings SettingsSource
}

// NewToneAlerter creates a ToneAlerter.
func NewToneAlerter(p Player, s SettingsSource) *ToneAlerter {
	return &ToneAlerter{player: p, settings: s}
}

// Alert synthesises the tone at the configured volume and plays it.
func (a *ToneAlerter) Alert(ctx context.Context) error {
	if a.player == nil || !a.settings.SoundEnabled() {
		return nil
	}
	st := a.settings.Settings()
	if st.RestTimerSound == models.SoundSilent || st.RestTimerSound == models.SoundVibrate {
		return nil
	}
	if err := a.player.Play(ctx, AlarmWAV(st.RestTimerVolume, DefaultSampleRate)); err != nil {
		return fmt.Errorf("play alarm: %w", err)
	}
	return nil
}

// HapticAlerter vibrates when haptic feedback is enabled.
type HapticAlerter struct {
	vibrator Vibrator
	settings SettingsSource
}

// NewHapticAlerter creates a HapticAlerter.
func NewHapticAlerter(v Vibrator, s SettingsSource) *HapticAlerter {
	return &HapticAlerter{vibrator: v, settings: s}
}

// Alert plays AlarmPattern.
func (h *HapticAlerter) Alert(ctx context.Context) error {
	return h.play(ctx, AlarmPattern)
}

// Pulse plays a single short vibration.
func (h *HapticAlerter) Pulse(ctx context.Context, d time.Duration) error {
	return h.play(ctx, []time.Duration{d})
}

func (h *HapticAlerter) play(ctx context.Context, pattern []time.Duration) error {
	if h == nil || h.vibrator == nil || !h.settings.Settings().HapticFeedback {
		return nil
	}
	if err := h.vibrator.Vibrate(ctx, pattern); err != nil {
		return fmt.Errorf("vibrate: %w", err)
	}
	return nil
}

// Bell is a terminal stand-in for both audio and haptics: it rings the
// terminal bell.
type Bell struct {
	W io.Writer
}

// Play rings the bell once.
func (b Bell) Play(ctx context.Context, _ []byte) error {
	return b.ring(ctx)
}

// Vibrate rings the bell once per pattern.
func (b Bell) Vibrate(ctx context.Context, _ []time.Duration) error {
	return b.ring(ctx)
}

func (b Bell) ring(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := io.WriteString(b.W, "\a")
	return err
}
