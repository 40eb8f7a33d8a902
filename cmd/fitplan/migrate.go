// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Moves the profile and plan documents from one backend to another.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitplan/internal/config"
	"github.com/harperreed/fitplan/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom      string
	migrateTo        string
	migrateOverwrite bool
	migrateDryRun    bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy the profile and all saved plans from one storage backend to another.

Backends: ` + strings.Join(config.Backends, ", ") + `

Documents are copied verbatim. The source is left untouched. If the
destination already holds data the migration stops before writing anything,
unless --overwrite is given.

USAGE:

  fitplan migrate --from sqlite --to files --dry-run   # Preview
  fitplan migrate --from sqlite --to files             # Copy
  fitplan config set backend files                     # Switch over`,
	Args:        cobra.NoArgs,
	Annotations: skipStores(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("--from and --to are both %q", migrateFrom)
		}

		src, err := cfg.OpenBackend(migrateFrom)
		if err != nil {
			return fmt.Errorf("failed to open source %s: %w", migrateFrom, err)
		}
		defer func() { _ = src.Close() }()

		out := cmd.OutOrStdout()

		if migrateDryRun {
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
			fmt.Fprintln(out)
			for _, key := range storage.AllKeys {
				v, err := src.Get(key)
				switch {
				case errors.Is(err, storage.ErrNotFound):
					fmt.Fprintf(out, "  %s %s\n", padRight(key, 14), color.New(color.Faint).Sprint("absent"))
				case err != nil:
					return fmt.Errorf("read source %s: %w", key, err)
				default:
					fmt.Fprintf(out, "  %s %d bytes\n", padRight(key, 14), len(v))
				}
			}
			return nil
		}

		dst, err := cfg.OpenBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open destination %s: %w", migrateTo, err)
		}
		defer func() { _ = dst.Close() }()

		summary, err := storage.MigrateData(src, dst, migrateOverwrite)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info().Strs("copied", summary.Copied).Strs("missing", summary.Missing).Msg("migration complete")

		color.New(color.FgGreen).Fprintf(out, "✓ Migrated %s → %s\n", migrateFrom, migrateTo)
		for _, key := range summary.Copied {
			fmt.Fprintf(out, "  copied  %s\n", key)
		}
		for _, key := range summary.Missing {
			fmt.Fprintf(out, "  %s\n", color.New(color.Faint).Sprintf("skipped %s (absent)", key))
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateOverwrite, "overwrite", false, "replace data already in the destination")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	_ = migrateCmd.MarkFlagRequired("from")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
