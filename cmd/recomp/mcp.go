// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server acting as the current user.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/recomp/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP lets assistants like Claude read your program day and log habits, meals
and workouts for you. The server communicates via stdin/stdout and acts as
the current user (--user, $RECOMP_USER or "local").

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "recomp": {
        "command": "recomp",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  get_today         Journey day, workout, nutrition, dopamine and lessons
  list_habits       Active habits, bad before good
  log_habit         Log a habit by name, id or id prefix
  log_meal          Log a meal against today's plan
  log_water         Log water intake in liters
  update_workout    Change workout status or record a set
  complete_lesson   Mark a mindset lesson as completed

AVAILABLE RESOURCES:

  recomp://today     Today's full bundle
  recomp://journey   Journey progress
  recomp://habits    Active habit catalog`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mcp.Version = version
		server, err := mcp.NewServer(svc, currentUser())
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
