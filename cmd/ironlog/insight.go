// ABOUTME: CLI command for AI coaching analysis.
// ABOUTME: Builds the training context and sends it to the configured model.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/ironlog/internal/insight"
)

var insightPromptOnly bool

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Get an AI analysis of recent training",
	Long: `Send the profile, workload ratio, muscle loads, recovery, and recent
pain reports to a generative model and print its analysis.

The API key comes from the config file ("insight": {"api_key": ...}) or
IRONLOG_INSIGHT_API_KEY. Use --prompt to print the prompt without sending it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := insight.BuildContext(store, time.Now())
		if insightPromptOnly {
			fmt.Println(c.Prompt())
			return nil
		}

		model := insight.NewHTTPModel(cfg.InsightModel(), nil)
		gen := insight.NewGenerator(model, logger.WithPrefix("insight"))
		text, ok := gen.Generate(cmd.Context(), c)
		if !ok {
			color.Yellow(text)
			return nil
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	insightCmd.Flags().BoolVar(&insightPromptOnly, "prompt", false, "print the prompt instead of sending it")
	rootCmd.AddCommand(insightCmd)
}
