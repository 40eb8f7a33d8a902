// ABOUTME: Markdown export of the profile, its metrics and all saved plans.
// ABOUTME: Plans are written in saved order under a date heading each.
package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/fitplan/internal/labels"
	"github.com/harperreed/fitplan/internal/models"
)

// ExportMarkdown renders all data as a Markdown document. Only plans saved
// on or after since are included when since is non-nil.
func (s *Stores) ExportMarkdown(lang labels.Lang, since *time.Time) (string, error) {
	data, err := s.GetAllData()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# fitplan Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if data.Profile != nil {
		writeProfileTable(&sb, lang, data.Profile)
	} else {
		sb.WriteString("## Profile\n\nNo profile saved.\n\n")
	}

	if data.Metrics != nil {
		sb.WriteString("## Metrics\n\n")
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		if data.Metrics.BMI != nil {
			sb.WriteString(fmt.Sprintf("| BMI | %.1f (%s) |\n", *data.Metrics.BMI, data.Metrics.CategoryText(lang)))
		}
		if data.Metrics.BMR != nil {
			sb.WriteString(fmt.Sprintf("| BMR | %d kcal |\n", *data.Metrics.BMR))
		}
		if data.Metrics.TDEE != nil {
			sb.WriteString(fmt.Sprintf("| TDEE | %d kcal |\n", *data.Metrics.TDEE))
		}
		sb.WriteString("\n")
	}

	writePlans(&sb, "Diet Plans", filterSince(data.Diets, since))
	writePlans(&sb, "Workout Plans", filterSince(data.Workouts, since))

	return sb.String(), nil
}

func writeProfileTable(sb *strings.Builder, lang labels.Lang, p *models.Profile) {
	rows := [][2]string{
		{labels.Field(lang, "name"), p.Name},
		{labels.Field(lang, "age"), strconv.Itoa(p.Age)},
		{labels.Field(lang, "gender"), labels.Gender(lang, p.Gender)},
		{labels.Field(lang, "height"), FormatNumber(p.Height) + " cm"},
		{labels.Field(lang, "weight"), FormatNumber(p.Weight) + " kg"},
		{labels.Field(lang, "activityLevel"), labels.ActivityLevel(lang, p.ActivityLevel)},
		{labels.Field(lang, "goal"), labels.Goal(lang, p.Goal)},
	}
	if p.HealthConditions != "" {
		rows = append(rows, [2]string{labels.Field(lang, "healthConditions"), p.HealthConditions})
	}

	sb.WriteString("## Profile\n\n")
	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", row[0], escapeCell(row[1])))
	}
	sb.WriteString("\n")
}

func writePlans(sb *strings.Builder, title string, records []models.PlanRecord) {
	if len(records) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("### %s\n\n", r.DisplayDate()))
		sb.WriteString(fmt.Sprintf("ID: `%s`\n\n", r.ID))
		sb.WriteString(strings.TrimRight(r.Plan, "\n"))
		sb.WriteString("\n\n")
	}
}

func filterSince(records []models.PlanRecord, since *time.Time) []models.PlanRecord {
	if since == nil {
		return records
	}
	var filtered []models.PlanRecord
	for _, r := range records {
		if !r.Date.Before(*since) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// FormatNumber prints v in its shortest form: 170 not 170.000000.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
