// ABOUTME: CLI command for a standalone rest countdown.
// ABOUTME: Uses the configured rest length, sound, and haptics.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/ironlog/internal/timer"
)

var timerWAV string

var timerCmd = &cobra.Command{
	Use:   "timer [seconds]",
	Short: "Run a rest countdown",
	Long: `Run a rest countdown in the foreground. Without an argument it uses
default_rest_seconds. Ctrl-C skips the rest.

With --wav the alarm tone at the configured volume is written to a file
instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if timerWAV != "" {
			wav := timer.AlarmWAV(store.Settings().RestTimerVolume, timer.DefaultSampleRate)
			if err := os.WriteFile(timerWAV, wav, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Printf("Wrote %s (%d bytes)\n", timerWAV, len(wav))
			return nil
		}

		_, run := newController(true)
		defer run.cancel()
		if len(args) == 1 {
			secs, err := strconv.Atoi(args[0])
			if err != nil || secs <= 0 {
				return fmt.Errorf("invalid seconds: %s", args[0])
			}
			run.timer.StartFor(time.Duration(secs) * time.Second)
		} else {
			run.timer.Start()
		}
		waitRest(cmd.Context(), run)
		return nil
	},
}

func init() {
	timerCmd.Flags().StringVar(&timerWAV, "wav", "", "write the alarm tone to a WAV file")
	rootCmd.AddCommand(timerCmd)
}
