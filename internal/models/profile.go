// ABOUTME: Profile model and its enums (gender, activity level, goal).
// ABOUTME: A profile is saved wholesale and must pass Validate before persisting.
package models

import (
	"fmt"
	"math"
	"strings"
)

// Gender is the biological sex used by the BMR formula.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// AllGenders lists the recognized genders.
var AllGenders = []Gender{GenderMale, GenderFemale}

// IsValid reports whether g is a recognized gender.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// ActivityLevel describes how much the user exercises per week.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "veryActive"
)

// AllActivityLevels lists activity levels from least to most active.
var AllActivityLevels = []ActivityLevel{
	ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive,
}

// IsValid reports whether a is a recognized activity level.
func (a ActivityLevel) IsValid() bool {
	for _, lvl := range AllActivityLevels {
		if lvl == a {
			return true
		}
	}
	return false
}

// Goal is what the user wants the plans to work towards.
type Goal string

const (
	GoalWeightLoss  Goal = "weightLoss"
	GoalMaintenance Goal = "maintenance"
	GoalMuscleGain  Goal = "muscleGain"
)

// AllGoals lists the recognized goals.
var AllGoals = []Goal{GoalWeightLoss, GoalMaintenance, GoalMuscleGain}

// IsValid reports whether g is a recognized goal.
func (g Goal) IsValid() bool {
	for _, goal := range AllGoals {
		if goal == g {
			return true
		}
	}
	return false
}

// Profile is the single user profile record. JSON field names match the
// persisted userProfile record.
type Profile struct {
	Name             string        `json:"name" yaml:"name"`
	Age              int           `json:"age" yaml:"age"`
	Gender           Gender        `json:"gender" yaml:"gender"`
	Height           float64       `json:"height" yaml:"height"`
	Weight           float64       `json:"weight" yaml:"weight"`
	ActivityLevel    ActivityLevel `json:"activityLevel" yaml:"activity_level"`
	Goal             Goal          `json:"goal" yaml:"goal"`
	HealthConditions string        `json:"healthConditions" yaml:"health_conditions,omitempty"`
}

// NewProfile returns a profile with the defaults a fresh form starts with.
func NewProfile() *Profile {
	return &Profile{
		Gender:        GenderMale,
		ActivityLevel: ActivityModerate,
		Goal:          GoalWeightLoss,
	}
}

// ValidationError reports the first profile field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks every required field. It returns a *ValidationError naming
// the first field that fails, or nil.
func (p *Profile) Validate() error {
	if p == nil {
		return &ValidationError{Field: "profile", Reason: "missing"}
	}
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if p.Age <= 0 {
		return &ValidationError{Field: "age", Reason: "must be a positive number"}
	}
	if !isPositive(p.Height) {
		return &ValidationError{Field: "height", Reason: "must be a positive number"}
	}
	if !isPositive(p.Weight) {
		return &ValidationError{Field: "weight", Reason: "must be a positive number"}
	}
	if !p.Gender.IsValid() {
		return &ValidationError{Field: "gender", Reason: fmt.Sprintf("unknown value %q", p.Gender)}
	}
	if !p.ActivityLevel.IsValid() {
		return &ValidationError{Field: "activityLevel", Reason: fmt.Sprintf("unknown value %q", p.ActivityLevel)}
	}
	if !p.Goal.IsValid() {
		return &ValidationError{Field: "goal", Reason: fmt.Sprintf("unknown value %q", p.Goal)}
	}
	return nil
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}
