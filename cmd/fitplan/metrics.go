// ABOUTME: CLI command for showing BMI, BMR and TDEE.
// ABOUTME: Metrics are recomputed from the saved profile on every call.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitplan/internal/metrics"
	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:     "metrics",
	Aliases: []string{"m"},
	Short:   "Show BMI, BMR and TDEE for your profile",
	Long: `Show body metrics derived from the saved profile.

  BMI    weight / height² with the Korean obesity classification
  BMR    basal metabolic rate (revised Harris-Benedict), kcal/day
  TDEE   BMR x activity multiplier, kcal/day

A value the profile cannot support is shown as "-".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := requireProfile()
		if err != nil {
			return err
		}

		report := metrics.Calculate(p)
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)

		bmi := "-"
		if report.BMI != nil {
			bmi = fmt.Sprintf("%.1f %s", *report.BMI, faint.Sprintf("(%s)", report.CategoryText(language())))
		}
		bmr := "-"
		if report.BMR != nil {
			bmr = fmt.Sprintf("%d kcal", *report.BMR)
		}
		tdee := "-"
		if report.TDEE != nil {
			tdee = fmt.Sprintf("%d kcal", *report.TDEE)
		}

		fmt.Fprintf(out, "  %s %s\n", padRight("BMI", 6), bmi)
		fmt.Fprintf(out, "  %s %s\n", padRight("BMR", 6), bmr)
		fmt.Fprintf(out, "  %s %s\n", padRight("TDEE", 6), tdee)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}
