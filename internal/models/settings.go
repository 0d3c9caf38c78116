// ABOUTME: UserSettings and UserProfile models with partial-merge updates.
// ABOUTME: Defaults apply to any field missing from a persisted snapshot.
package models

// RestTimerSound selects the rest-timer alert.
type RestTimerSound string

const (
	SoundBeep    RestTimerSound = "beep"
	SoundChime   RestTimerSound = "chime"
	SoundAlarm   RestTimerSound = "alarm"
	SoundVibrate RestTimerSound = "vibrate"
	SoundSilent  RestTimerSound = "silent"
)

// UnitSystem selects display units.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// WeightUnit returns the display suffix for weights.
func (u UnitSystem) WeightUnit() string {
	if u == Imperial {
		return "lb"
	}
	return "kg"
}

// Theme selects the UI theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// UserSettings is process-wide configuration persisted with the snapshot.
type UserSettings struct {
	RestTimerSound     RestTimerSound `json:"rest_timer_sound"`
	RestTimerVolume    int            `json:"rest_timer_volume"`
	DefaultRestSeconds int            `json:"default_rest_seconds"`
	AutoStartTimer     bool           `json:"auto_start_timer"`
	HapticFeedback     bool           `json:"haptic_feedback"`
	KeepScreenAwake    bool           `json:"keep_screen_awake"`
	UnitSystem         UnitSystem     `json:"unit_system"`
	Theme              Theme          `json:"theme"`
}

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() UserSettings {
	return UserSettings{
		RestTimerSound:     SoundAlarm,
		RestTimerVolume:    80,
		DefaultRestSeconds: 180,
		AutoStartTimer:     true,
		HapticFeedback:     true,
		KeepScreenAwake:    false,
		UnitSystem:         Metric,
		Theme:              ThemeLight,
	}
}

// SettingsPatch is a partial settings update; nil fields are unchanged.
type SettingsPatch struct {
	RestTimerSound     *RestTimerSound `json:"rest_timer_sound,omitempty"`
	RestTimerVolume    *int            `json:"rest_timer_volume,omitempty"`
	DefaultRestSeconds *int            `json:"default_rest_seconds,omitempty"`
	AutoStartTimer     *bool           `json:"auto_start_timer,omitempty"`
	HapticFeedback     *bool           `json:"haptic_feedback,omitempty"`
	KeepScreenAwake    *bool           `json:"keep_screen_awake,omitempty"`
	UnitSystem         *UnitSystem     `json:"unit_system,omitempty"`
	Theme              *Theme          `json:"theme,omitempty"`
}

// Apply merges the patch into s. Volume is clamped to 0-100 and the
// default rest to at least one second.
func (p SettingsPatch) Apply(s *UserSettings) {
	if p.RestTimerSound != nil {
		s.RestTimerSound = *p.RestTimerSound
	}
	if p.RestTimerVolume != nil {
		s.RestTimerVolume = min(max(*p.RestTimerVolume, 0), 100)
	}
	if p.DefaultRestSeconds != nil {
		s.DefaultRestSeconds = max(*p.DefaultRestSeconds, 1)
	}
	if p.AutoStartTimer != nil {
		s.AutoStartTimer = *p.AutoStartTimer
	}
	if p.HapticFeedback != nil {
		s.HapticFeedback = *p.HapticFeedback
	}
	if p.KeepScreenAwake != nil {
		s.KeepScreenAwake = *p.KeepScreenAwake
	}
	if p.UnitSystem != nil {
		s.UnitSystem = *p.UnitSystem
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
}

// UserProfile describes the athlete; it feeds the insight prompt.
type UserProfile struct {
	Name               string   `json:"name"`
	Age                int      `json:"age"`
	Height             string   `json:"height"`
	CurrentWeight      string   `json:"current_weight"`
	EstimatedBodyFat   string   `json:"estimated_body_fat"`
	TrainingExperience string   `json:"training_experience"`
	Diet               string   `json:"diet"`
	Supplements        []string `json:"supplements"`
}
