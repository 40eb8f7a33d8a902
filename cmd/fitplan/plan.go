// ABOUTME: CLI commands for generating and managing diet and workout plans.
// ABOUTME: One builder creates the identical command tree for both plan kinds.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitplan/internal/models"
	"github.com/harperreed/fitplan/internal/recommend"
	"github.com/harperreed/fitplan/internal/storage"
	"github.com/spf13/cobra"
)

const listPreviewWidth = 60

var planKindText = map[models.PlanKind]struct {
	short   string
	example string
}{
	models.PlanDiet: {
		short:   "Generate and manage weekly diet plans",
		example: "vegetarian, no dairy",
	},
	models.PlanWorkout: {
		short:   "Generate and manage weekly workout routines",
		example: "home workouts only, bad left knee",
	},
}

// newPlanCmd builds the command tree for one plan kind.
func newPlanCmd(kind models.PlanKind) *cobra.Command {
	name := string(kind)
	text := planKindText[kind]

	var (
		genInfo   string
		genSave   bool
		listLimit int
	)

	planCmd := &cobra.Command{
		Use:     name,
		Aliases: []string{name[:1]},
		Short:   text.short,
		Long: fmt.Sprintf(`%s.

COMMANDS:

  generate   Ask the model for a new weekly %[2]s plan
  save       Save plan text from a file or stdin
  list       List saved %[2]s plans, oldest first
  show       Print a saved plan
  delete     Delete a saved plan

EXAMPLES:

  fitplan %[2]s generate --info "%[3]s"
  fitplan %[2]s generate --save
  fitplan %[2]s list
  fitplan %[2]s show <id>`, text.short, name, text.example),
	}

	generateCmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen", "g"},
		Short:   fmt.Sprintf("Generate a weekly %s plan for your profile", name),
		Long: fmt.Sprintf(`Generate a weekly %s plan from the saved profile.

Requires OPENAI_API_KEY. The request is made once with no retry and is bounded
by timeout_seconds (see 'fitplan config show'). The prompt language follows
the language setting.`, name),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := requireProfile()
			if err != nil {
				return err
			}

			client := recommend.New(cfg.RecommendOptions(logger))
			fmt.Fprintln(cmd.ErrOrStderr(), color.New(color.Faint).Sprintf("Generating %s plan...", name))

			plan, err := client.RequestPlan(cmd.Context(), kind, p, genInfo)
			if err != nil {
				return explainRecommendError(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.TrimRight(plan, "\n"))

			if genSave {
				store, err := stores.Plans(kind)
				if err != nil {
					return err
				}
				rec, err := store.Append(plan)
				if err != nil {
					return fmt.Errorf("failed to save %s plan: %w", name, err)
				}
				fmt.Fprintln(out)
				color.New(color.FgGreen).Fprintf(out, "✓ Saved %s plan %s\n", name, color.New(color.Faint).Sprint(rec.ID))
			}
			return nil
		},
	}
	generateCmd.Flags().StringVarP(&genInfo, "info", "i", "", "additional information for the request")
	generateCmd.Flags().BoolVarP(&genSave, "save", "s", false, "save the generated plan")

	saveCmd := &cobra.Command{
		Use:   "save [file|-]",
		Short: fmt.Sprintf("Save %s plan text from a file or stdin", name),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readPlanText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			store, err := stores.Plans(kind)
			if err != nil {
				return err
			}
			rec, err := store.Append(text)
			if err != nil {
				return fmt.Errorf("failed to save %s plan: %w", name, err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Saved %s plan %s\n", name, color.New(color.Faint).Sprint(rec.ID))
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   fmt.Sprintf("List saved %s plans", name),
		Long: fmt.Sprintf(`List saved %s plans, oldest first.

Each line shows: DATE  ID  PREVIEW

Use the ID (or any unique prefix of it) with show and delete.`, name),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := stores.Plans(kind)
			if err != nil {
				return err
			}
			records, err := store.LoadAll()
			if err != nil {
				logger.Warn().Err(err).Str("kind", name).Msg("failed to load plans; showing none")
				records = nil
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "No saved %s plans.\n", name)
				return nil
			}
			if listLimit > 0 && len(records) > listLimit {
				records = records[len(records)-listLimit:]
			}

			faint := color.New(color.Faint)
			for _, r := range records {
				fmt.Fprintf(out, "%s %s %s\n",
					faint.Sprint(padRight(r.DisplayDate(), 10)),
					faint.Sprint(r.ID),
					truncate(r.Preview(listPreviewWidth*2), listPreviewWidth))
			}
			return nil
		},
	}
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "show only the most recent N plans (0 = all)")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: fmt.Sprintf("Print a saved %s plan", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := stores.Plans(kind)
			if err != nil {
				return err
			}
			rec, err := store.Find(args[0])
			if err != nil {
				return explainFindError(name, args[0], err)
			}

			out := cmd.OutOrStdout()
			faint := color.New(color.Faint)
			fmt.Fprintf(out, "%s %s\n\n", color.New(color.Bold).Sprint(rec.DisplayDate()), faint.Sprint(rec.ID))
			fmt.Fprintln(out, strings.TrimRight(rec.Plan, "\n"))
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"del", "rm"},
		Short:   fmt.Sprintf("Delete a saved %s plan", name),
		Long: fmt.Sprintf(`Delete a saved %s plan by its ID or a unique ID prefix.

This permanently deletes the plan. There is no undo.`, name),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := stores.Plans(kind)
			if err != nil {
				return err
			}
			rec, err := store.Find(args[0])
			if err != nil {
				return explainFindError(name, args[0], err)
			}
			if err := store.Remove(rec.ID); err != nil {
				return fmt.Errorf("failed to delete %s plan: %w", name, err)
			}

			out := cmd.OutOrStdout()
			color.New(color.FgYellow).Fprintf(out, "✗ Deleted %s plan\n", name)
			fmt.Fprintf(out, "  %s %s\n", color.New(color.Faint).Sprint(rec.ID), rec.DisplayDate())
			return nil
		},
	}

	planCmd.AddCommand(generateCmd, saveCmd, listCmd, showCmd, deleteCmd)
	return planCmd
}

// readPlanText reads the plan from the named file, or from stdin for "-" or
// no argument.
func readPlanText(stdin io.Reader, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("failed to read plan: %w", err)
	}
	return string(data), nil
}

func explainFindError(kind, id string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%s plan not found: %s", kind, id)
	case errors.Is(err, storage.ErrAmbiguous):
		return fmt.Errorf("%s plan id %q is ambiguous; use more characters", kind, id)
	}
	return err
}

func explainRecommendError(err error) error {
	var cerr *recommend.ConfigurationError
	if errors.As(err, &cerr) {
		return fmt.Errorf("%s; export it or add it to a .env file", cerr.Reason)
	}
	var uerr *recommend.UpstreamError
	if errors.As(err, &uerr) {
		return fmt.Errorf("plan generation failed: %w", err)
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("saved profile is incomplete (%v); run 'fitplan profile set'", verr)
	}
	return err
}

func init() {
	for _, kind := range models.AllPlanKinds {
		rootCmd.AddCommand(newPlanCmd(kind))
	}
}
