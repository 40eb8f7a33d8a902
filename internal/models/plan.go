// ABOUTME: PlanKind and PlanRecord models for saved diet and workout plans.
// ABOUTME: Records get a time-ordered UUIDv7 id and an immutable creation date.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PlanKind selects which plan sequence a record belongs to.
type PlanKind string

const (
	PlanDiet    PlanKind = "diet"
	PlanWorkout PlanKind = "workout"
)

// AllPlanKinds lists the plan kinds.
var AllPlanKinds = []PlanKind{PlanDiet, PlanWorkout}

// ParsePlanKind converts user input into a PlanKind.
func ParsePlanKind(s string) (PlanKind, error) {
	switch PlanKind(strings.ToLower(strings.TrimSpace(s))) {
	case PlanDiet:
		return PlanDiet, nil
	case PlanWorkout:
		return PlanWorkout, nil
	}
	return "", fmt.Errorf("unknown plan kind: %q (use diet or workout)", s)
}

// PlanRecord is one saved, generated plan.
type PlanRecord struct {
	ID   string    `json:"id" yaml:"id"`
	Date time.Time `json:"date" yaml:"date"`
	Plan string    `json:"plan" yaml:"plan"`
}

// NewPlanRecord creates a record stamped with the current time.
func NewPlanRecord(plan string) (PlanRecord, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return PlanRecord{}, fmt.Errorf("generate plan id: %w", err)
	}
	return PlanRecord{
		ID:   id.String(),
		Date: time.Now().UTC().Truncate(time.Millisecond),
		Plan: plan,
	}, nil
}

// DisplayDate formats the date as YYYY/M/D in local time.
func (r PlanRecord) DisplayDate() string {
	d := r.Date.Local()
	return fmt.Sprintf("%d/%d/%d", d.Year(), int(d.Month()), d.Day())
}

// Preview returns the first non-blank line of the plan, cut to at most n runes.
func (r PlanRecord) Preview(n int) string {
	line := ""
	for _, l := range strings.Split(r.Plan, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			line = t
			break
		}
	}
	runes := []rune(line)
	if len(runes) <= n {
		return line
	}
	return string(runes[:n]) + "…"
}
