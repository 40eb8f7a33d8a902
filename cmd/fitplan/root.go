// ABOUTME: Root Cobra command for the fitplan CLI.
// ABOUTME: Handles config, logging and storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harperreed/fitplan/internal/config"
	"github.com/harperreed/fitplan/internal/labels"
	"github.com/harperreed/fitplan/internal/models"
	"github.com/harperreed/fitplan/internal/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// skipStoresAnnotation marks commands that must not open the storage backend.
const skipStoresAnnotation = "fitplan/skip-stores"

var errNoProfile = errors.New("no profile saved; run 'fitplan profile set' first")

var (
	cfg     *config.Config
	stores  *storage.Stores
	logger  = zerolog.Nop()
	verbose bool
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "fitplan",
	Short: "Personal diet and workout planner",
	Long: `fitplan keeps one health profile, computes BMI, BMR and TDEE from it,
and asks an OpenAI chat model for weekly diet and workout plans.

QUICK START:

  $ fitplan profile set --name 홍길동 --age 30 --gender male \
      --height 175 --weight 70 --activity moderate --goal weightLoss
  $ fitplan metrics                      # BMI, BMR and TDEE
  $ fitplan diet generate --save         # Ask for a weekly meal plan and keep it
  $ fitplan workout generate --info "bad knee"
  $ fitplan diet list                    # Saved plans, oldest first

CREDENTIALS:

  Plan generation reads OPENAI_API_KEY from the environment. A .env file in
  the current directory or in ~/.config/fitplan/.env is loaded first; real
  environment variables always win.

STORAGE:

  sqlite (default)  ~/.local/share/fitplan/fitplan.db
  files             one JSON document per key in ~/.local/share/fitplan/
  charm             Charm KV, synced across devices

  $ fitplan config set backend files
  $ fitplan migrate --from sqlite --to files

MCP INTEGRATION:

  Run 'fitplan mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "fitplan": { "command": "fitplan", "args": ["mcp"] }
    }
  }`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(verbose, debug)

		if err := config.LoadEnv(); err != nil {
			logger.Warn().Err(err).Msg("ignoring .env files")
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// A failed RunE skips PostRunE, so a previous run may have left stores open.
		if stores != nil {
			_ = stores.Close()
			stores = nil
		}
		if skipsStores(cmd) {
			return nil
		}

		kv, err := cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		stores, err = storage.NewStores(kv, logger)
		if err != nil {
			_ = kv.Close()
			return err
		}
		logger.Debug().Str("backend", cfg.GetBackend()).Str("data_dir", cfg.GetDataDir()).Msg("storage opened")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if stores != nil {
			err := stores.Close()
			stores = nil
			return err
		}
		return nil
	},
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log informational messages to stderr")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log debug messages to stderr")
}

// newLogger returns a console logger on stderr. Warn is the default level.
func newLogger(verbose, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case debug:
		level = zerolog.DebugLevel
	case verbose:
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// skipsStores reports whether cmd or one of its parents opted out of storage.
func skipsStores(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "__complete":
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipStoresAnnotation] == "true" {
			return true
		}
	}
	return false
}

func skipStores() map[string]string {
	return map[string]string{skipStoresAnnotation: "true"}
}

// language returns the configured display and prompt language.
func language() labels.Lang {
	if cfg == nil {
		return labels.Default
	}
	return cfg.GetLanguage()
}

// loadProfile reads the saved profile. A read failure is logged and treated
// as no profile.
func loadProfile() (*models.Profile, bool) {
	p, found, err := stores.Profile.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load profile; treating as absent")
		return nil, false
	}
	return p, found
}

// requireProfile is loadProfile for commands that cannot continue without one.
func requireProfile() (*models.Profile, error) {
	p, found := loadProfile()
	if !found {
		return nil, errNoProfile
	}
	return p, nil
}
