// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server backed by the same store as the CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/ironlog/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and shares the CLI's storage.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "ironlog": {
        "command": "ironlog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  start_session      Start a session for a training day
  add_exercise       Add an exercise to the active session
  add_set            Log a set
  update_set         Edit a logged set
  remove_set         Remove a logged set
  reorder_exercise   Move an exercise within the session
  finish_session     Finish and return the summary
  cancel_session     Discard the active session
  get_active         Current session with stats
  exercise_history   Logged sets for an exercise
  progression_tip    Progressive-overload tip
  fatigue_report     Workload ratio, muscle loads, recovery
  log_body_metric    Record body weight
  log_recovery       Record sleep, energy, and pain

AVAILABLE RESOURCES:

  ironlog://history/recent   Recent finished sessions
  ironlog://active           Active session
  ironlog://fatigue          Fatigue report`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, mcp.WithLogger(logger.WithPrefix("mcp")))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
