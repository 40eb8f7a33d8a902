// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server over the configured storage backend.
package main

import (
	"github.com/harperreed/fitplan/internal/mcp"
	"github.com/harperreed/fitplan/internal/recommend"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and uses the same storage backend,
language and OpenAI settings as the CLI.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "fitplan": {
        "command": "fitplan",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  get_profile     Get the saved profile
  save_profile    Create or update the profile
  get_metrics     BMI, BMI category, BMR and TDEE
  generate_plan   Generate a weekly diet or workout plan
  save_plan       Save plan text
  list_plans      List saved plans
  get_plan        Get a saved plan by ID
  delete_plan     Delete a saved plan

AVAILABLE RESOURCES:

  fitplan://profile     Profile and metrics
  fitplan://diets       Saved diet plans
  fitplan://workouts    Saved workout plans`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := recommend.New(cfg.RecommendOptions(logger))
		server, err := mcp.NewServer(stores, rec, language(), logger)
		if err != nil {
			return err
		}
		logger.Info().Str("backend", cfg.GetBackend()).Msg("mcp server starting")
		return server.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
