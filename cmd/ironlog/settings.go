// ABOUTME: CLI commands for user settings and the athlete profile.
// ABOUTME: Shows and edits one setting at a time, and toggles sound.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/ironlog/internal/models"
)

var settingsKeys = []string{
	"rest_timer_sound", "rest_timer_volume", "default_rest_seconds", "auto_start_timer",
	"haptic_feedback", "keep_screen_awake", "unit_system", "theme",
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show user settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := store.Settings()
		rows := [][]string{
			{"rest_timer_sound", string(s.RestTimerSound)},
			{"rest_timer_volume", strconv.Itoa(s.RestTimerVolume)},
			{"default_rest_seconds", strconv.Itoa(s.DefaultRestSeconds)},
			{"auto_start_timer", strconv.FormatBool(s.AutoStartTimer)},
			{"haptic_feedback", strconv.FormatBool(s.HapticFeedback)},
			{"keep_screen_awake", strconv.FormatBool(s.KeepScreenAwake)},
			{"unit_system", string(s.UnitSystem)},
			{"theme", string(s.Theme)},
			{"sound", onOff(store.SoundEnabled())},
		}
		fmt.Println(renderTable([]string{"Setting", "Value"}, rows, nil))
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change one setting.

KEYS:

  rest_timer_sound      beep, chime, alarm, vibrate, silent
  rest_timer_volume     0-100
  default_rest_seconds  seconds
  auto_start_timer      true, false
  haptic_feedback       true, false
  keep_screen_awake     true, false
  unit_system           metric, imperial
  theme                 light, dark, auto`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := settingsPatch(args[0], args[1])
		if err != nil {
			return err
		}
		store.UpdateSettings(patch)
		color.Green("✓ %s = %s", args[0], args[1])
		return nil
	},
}

var soundCmd = &cobra.Command{
	Use:       "sound <on|off>",
	Short:     "Turn rest-timer sound on or off",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "on":
			store.SetSoundEnabled(true)
		case "off":
			store.SetSoundEnabled(false)
		default:
			return fmt.Errorf("expected on or off, got %s", args[0])
		}
		color.Green("✓ Sound %s", args[0])
		return nil
	},
}

var (
	profileName        string
	profileAge         int
	profileHeight      string
	profileWeight      string
	profileBodyFat     string
	profileExperience  string
	profileDiet        string
	profileSupplements string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the athlete profile",
	Long: `Show the athlete profile, or edit it with flags. Only the fields
you pass change. The profile is included in insight prompts.

EXAMPLES:

  ironlog profile
  ironlog profile --age 41 --weight "84 kg"
  ironlog profile --supplements "creatine,whey"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := store.Profile()
		f := cmd.Flags()
		changed := false
		set := func(name string, apply func()) {
			if f.Changed(name) {
				apply()
				changed = true
			}
		}
		set("name", func() { p.Name = profileName })
		set("age", func() { p.Age = profileAge })
		set("height", func() { p.Height = profileHeight })
		set("weight", func() { p.CurrentWeight = profileWeight })
		set("body-fat", func() { p.EstimatedBodyFat = profileBodyFat })
		set("experience", func() { p.TrainingExperience = profileExperience })
		set("diet", func() { p.Diet = profileDiet })
		set("supplements", func() { p.Supplements = splitList(profileSupplements) })
		if changed {
			store.SetProfile(p)
			color.Green("✓ Profile updated")
		}

		rows := [][]string{
			{"Name", p.Name},
			{"Age", strconv.Itoa(p.Age)},
			{"Height", p.Height},
			{"Weight", p.CurrentWeight},
			{"Body fat", p.EstimatedBodyFat},
			{"Experience", p.TrainingExperience},
			{"Diet", p.Diet},
			{"Supplements", strings.Join(p.Supplements, ", ")},
		}
		fmt.Println(renderTable([]string{"Field", "Value"}, rows, nil))
		return nil
	},
}

func settingsPatch(key, value string) (models.SettingsPatch, error) {
	var patch models.SettingsPatch
	parseBool := func() (*bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %s", key, value)
		}
		return &b, nil
	}
	parseInt := func() (*int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s expects a number, got %s", key, value)
		}
		return &n, nil
	}

	var err error
	switch key {
	case "rest_timer_sound":
		s := models.RestTimerSound(value)
		switch s {
		case models.SoundBeep, models.SoundChime, models.SoundAlarm, models.SoundVibrate, models.SoundSilent:
			patch.RestTimerSound = &s
		default:
			return patch, fmt.Errorf("unknown sound: %s", value)
		}
	case "rest_timer_volume":
		patch.RestTimerVolume, err = parseInt()
	case "default_rest_seconds":
		patch.DefaultRestSeconds, err = parseInt()
	case "auto_start_timer":
		patch.AutoStartTimer, err = parseBool()
	case "haptic_feedback":
		patch.HapticFeedback, err = parseBool()
	case "keep_screen_awake":
		patch.KeepScreenAwake, err = parseBool()
	case "unit_system":
		u := models.UnitSystem(value)
		if u != models.Metric && u != models.Imperial {
			return patch, fmt.Errorf("unknown unit system: %s", value)
		}
		patch.UnitSystem = &u
	case "theme":
		t := models.Theme(value)
		if t != models.ThemeLight && t != models.ThemeDark && t != models.ThemeAuto {
			return patch, fmt.Errorf("unknown theme: %s", value)
		}
		patch.Theme = &t
	default:
		return patch, fmt.Errorf("unknown setting: %s\nValid settings: %s", key, strings.Join(settingsKeys, ", "))
	}
	return patch, err
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	f := profileCmd.Flags()
	f.StringVar(&profileName, "name", "", "name")
	f.IntVar(&profileAge, "age", 0, "age")
	f.StringVar(&profileHeight, "height", "", "height")
	f.StringVar(&profileWeight, "weight", "", "current weight")
	f.StringVar(&profileBodyFat, "body-fat", "", "estimated body fat")
	f.StringVar(&profileExperience, "experience", "", "training experience")
	f.StringVar(&profileDiet, "diet", "", "diet")
	f.StringVar(&profileSupplements, "supplements", "", "comma-separated supplements")

	settingsCmd.AddCommand(settingsSetCmd, soundCmd)
	rootCmd.AddCommand(settingsCmd, profileCmd)
}
