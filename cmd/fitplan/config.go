// ABOUTME: CLI commands for viewing and changing fitplan settings.
// ABOUTME: Reads and writes the JSON config file; the API key stays in the environment.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitplan/internal/config"
	"github.com/harperreed/fitplan/internal/labels"
	"github.com/harperreed/fitplan/internal/recommend"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Long: `View and change fitplan settings.

KEYS:

  backend           sqlite | files | charm (default sqlite)
  data_dir          where local data lives (default ~/.local/share/fitplan)
  language          ko | en (default ko); prompt and display language
  model             OpenAI chat model (default gpt-3.5-turbo)
  api_base_url      OpenAI-compatible API root (default https://api.openai.com)
  timeout_seconds   recommendation request timeout (default 60)

Set a key to "" to restore its default. OPENAI_API_KEY is read from the
environment or a .env file and is never written to the config file.

EXAMPLES:

  fitplan config show
  fitplan config set language en
  fitplan config set backend files
  fitplan config set model ""`,
	Annotations: skipStores(),
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)

		defaults := map[string]string{
			"backend":         config.BackendSQLite,
			"data_dir":        cfg.GetDataDir(),
			"language":        string(labels.Default),
			"model":           recommend.DefaultModel,
			"api_base_url":    recommend.DefaultBaseURL,
			"timeout_seconds": fmt.Sprint(int(cfg.GetTimeout().Seconds())),
		}

		for _, key := range config.Keys() {
			value, _ := cfg.Get(key)
			if value == "" {
				value = defaults[key] + " " + faint.Sprint("(default)")
			}
			fmt.Fprintf(out, "  %s %s\n", padRight(key, 16), value)
		}

		apiKey := color.New(color.FgYellow).Sprint("not set")
		if config.APIKey() != "" {
			apiKey = color.New(color.FgGreen).Sprint("set")
		}
		fmt.Fprintf(out, "  %s %s\n", padRight(config.APIKeyEnv, 16), apiKey)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  %s\n", faint.Sprint(config.GetConfigPath()))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := cfg.Set(key, value); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		out := cmd.OutOrStdout()
		if value == "" {
			color.New(color.FgGreen).Fprintf(out, "✓ Reset %s to default\n", key)
			return nil
		}
		stored, _ := cfg.Get(key)
		color.New(color.FgGreen).Fprintf(out, "✓ Set %s = %s\n", key, stored)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
