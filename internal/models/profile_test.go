// ABOUTME: Tests for Profile validation and enum helpers.
// ABOUTME: Verifies the first failing field is reported and JSON names are stable.
package models

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func validProfile() *Profile {
	return &Profile{
		Name:          "Kim",
		Age:           30,
		Gender:        GenderMale,
		Height:        170,
		Weight:        70,
		ActivityLevel: ActivityModerate,
		Goal:          GoalWeightLoss,
	}
}

func TestNewProfileDefaults(t *testing.T) {
	p := NewProfile()
	if p.Gender != GenderMale {
		t.Errorf("Gender = %q, want male", p.Gender)
	}
	if p.ActivityLevel != ActivityModerate {
		t.Errorf("ActivityLevel = %q, want moderate", p.ActivityLevel)
	}
	if p.Goal != GoalWeightLoss {
		t.Errorf("Goal = %q, want weightLoss", p.Goal)
	}
	if err := p.Validate(); err == nil {
		t.Error("expected a fresh profile without name to fail validation")
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *Profile)
		wantField string
	}{
		{"valid", func(p *Profile) {}, ""},
		{"empty name", func(p *Profile) { p.Name = "" }, "name"},
		{"blank name", func(p *Profile) { p.Name = "   " }, "name"},
		{"zero age", func(p *Profile) { p.Age = 0 }, "age"},
		{"negative age", func(p *Profile) { p.Age = -3 }, "age"},
		{"zero height", func(p *Profile) { p.Height = 0 }, "height"},
		{"NaN height", func(p *Profile) { p.Height = math.NaN() }, "height"},
		{"negative weight", func(p *Profile) { p.Weight = -70 }, "weight"},
		{"infinite weight", func(p *Profile) { p.Weight = math.Inf(1) }, "weight"},
		{"unknown gender", func(p *Profile) { p.Gender = "other" }, "gender"},
		{"missing gender", func(p *Profile) { p.Gender = "" }, "gender"},
		{"unknown activity", func(p *Profile) { p.ActivityLevel = "extreme" }, "activityLevel"},
		{"unknown goal", func(p *Profile) { p.Goal = "bulk" }, "goal"},
		{"name checked before age", func(p *Profile) { p.Name = ""; p.Age = 0 }, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			err := p.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestNilProfileValidate(t *testing.T) {
	var p *Profile
	if err := p.Validate(); err == nil {
		t.Error("expected nil profile to fail validation")
	}
}

func TestProfileJSONFieldNames(t *testing.T) {
	p := validProfile()
	p.HealthConditions = "asthma"

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"name", "age", "gender", "height", "weight", "activityLevel", "goal", "healthConditions"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing JSON key %q in %s", key, data)
		}
	}
}

func TestEnumValidity(t *testing.T) {
	for _, lvl := range AllActivityLevels {
		if !lvl.IsValid() {
			t.Errorf("%q should be valid", lvl)
		}
	}
	for _, g := range AllGoals {
		if !g.IsValid() {
			t.Errorf("%q should be valid", g)
		}
	}
	if ActivityLevel("veryactive").IsValid() {
		t.Error("activity levels are case sensitive")
	}
}
