// ABOUTME: CLI commands for editing and showing the health profile.
// ABOUTME: Flags overlay the saved profile; unset fields keep the form defaults.
package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitplan/internal/labels"
	"github.com/harperreed/fitplan/internal/models"
	"github.com/spf13/cobra"
)

var (
	profileName       string
	profileAge        int
	profileGender     string
	profileHeight     float64
	profileWeight     float64
	profileActivity   string
	profileGoal       string
	profileConditions string
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"p"},
	Short:   "Manage your health profile",
	Long: `Manage the single health profile used for metrics and plan generation.

FIELDS:

  --name         display name (required)
  --age          age in years (required)
  --gender       male | female (default male)
  --height       height in cm (required)
  --weight       weight in kg (required)
  --activity     sedentary | light | moderate | active | veryActive (default moderate)
  --goal         weightLoss | maintenance | muscleGain (default weightLoss)
  --conditions   free text health conditions, "" to clear

EXAMPLES:

  fitplan profile set --name Kim --age 30 --height 170 --weight 70
  fitplan profile set --weight 68.5          # Update one field
  fitplan profile show`,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := profilePatchFromFlags(cmd)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to set; pass at least one field flag (see 'fitplan profile set --help')")
		}

		existing, _ := loadProfile()
		p := patch.Apply(existing)

		if err := stores.Profile.Save(p); err != nil {
			var verr *models.ValidationError
			if errors.As(err, &verr) {
				return fmt.Errorf("profile not saved: %s (--%s): %s",
					labels.Field(language(), verr.Field), flagForField(verr.Field), verr.Reason)
			}
			return fmt.Errorf("failed to save profile: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Saved profile for %s\n", p.Name)
		printProfile(out, language(), p)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := requireProfile()
		if err != nil {
			return err
		}
		printProfile(cmd.OutOrStdout(), language(), p)
		return nil
	},
}

func profilePatchFromFlags(cmd *cobra.Command) (models.ProfilePatch, error) {
	var patch models.ProfilePatch
	flags := cmd.Flags()

	if flags.Changed("name") {
		patch.Name = &profileName
	}
	if flags.Changed("age") {
		patch.Age = &profileAge
	}
	if flags.Changed("gender") {
		g, err := parseChoice("gender", profileGender, models.AllGenders)
		if err != nil {
			return patch, err
		}
		patch.Gender = &g
	}
	if flags.Changed("height") {
		patch.Height = &profileHeight
	}
	if flags.Changed("weight") {
		patch.Weight = &profileWeight
	}
	if flags.Changed("activity") {
		a, err := parseChoice("activity", profileActivity, models.AllActivityLevels)
		if err != nil {
			return patch, err
		}
		patch.ActivityLevel = &a
	}
	if flags.Changed("goal") {
		g, err := parseChoice("goal", profileGoal, models.AllGoals)
		if err != nil {
			return patch, err
		}
		patch.Goal = &g
	}
	if flags.Changed("conditions") {
		patch.HealthConditions = &profileConditions
	}
	return patch, nil
}

// parseChoice matches s case-insensitively against the allowed values.
func parseChoice[T ~string](flag, s string, allowed []T) (T, error) {
	s = strings.TrimSpace(s)
	names := make([]string, 0, len(allowed))
	for _, v := range allowed {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
		names = append(names, string(v))
	}
	return "", fmt.Errorf("invalid --%s %q (use %s)", flag, s, strings.Join(names, ", "))
}

func flagForField(field string) string {
	switch field {
	case "activityLevel":
		return "activity"
	case "healthConditions":
		return "conditions"
	}
	return field
}

func printProfile(w io.Writer, lang labels.Lang, p *models.Profile) {
	conditions := p.HealthConditions
	if conditions == "" {
		conditions = color.New(color.Faint).Sprint(labels.Placeholder(lang, "healthConditions"))
	}

	rows := [][2]string{
		{labels.Field(lang, "name"), p.Name},
		{labels.Field(lang, "age"), strconv.Itoa(p.Age)},
		{labels.Field(lang, "gender"), labels.Gender(lang, p.Gender)},
		{labels.Field(lang, "height"), formatNumber(p.Height) + " cm"},
		{labels.Field(lang, "weight"), formatNumber(p.Weight) + " kg"},
		{labels.Field(lang, "activityLevel"), labels.ActivityLevel(lang, p.ActivityLevel)},
		{labels.Field(lang, "goal"), labels.Goal(lang, p.Goal)},
		{labels.Field(lang, "healthConditions"), conditions},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %s %s\n", padRight(row[0], 12), row[1])
	}
}

func init() {
	f := profileSetCmd.Flags()
	f.StringVar(&profileName, "name", "", "display name")
	f.IntVar(&profileAge, "age", 0, "age in years")
	f.StringVar(&profileGender, "gender", "", "male or female")
	f.Float64Var(&profileHeight, "height", 0, "height in cm")
	f.Float64Var(&profileWeight, "weight", 0, "weight in kg")
	f.StringVar(&profileActivity, "activity", "", "sedentary, light, moderate, active or veryActive")
	f.StringVar(&profileGoal, "goal", "", "weightLoss, maintenance or muscleGain")
	f.StringVar(&profileConditions, "conditions", "", "health conditions (free text)")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}
