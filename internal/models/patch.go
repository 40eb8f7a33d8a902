// ABOUTME: ProfilePatch overlays a partial edit onto an existing profile.
// ABOUTME: Shared by the CLI flags and the MCP save_profile tool.
package models

import "strings"

// ProfilePatch holds only the fields a caller wants to change.
type ProfilePatch struct {
	Name             *string
	Age              *int
	Gender           *Gender
	Height           *float64
	Weight           *float64
	ActivityLevel    *ActivityLevel
	Goal             *Goal
	HealthConditions *string
}

// Apply returns a copy of base with the patch applied. A nil base starts
// from NewProfile's defaults.
func (pp ProfilePatch) Apply(base *Profile) *Profile {
	var p Profile
	if base != nil {
		p = *base
	} else {
		p = *NewProfile()
	}

	if pp.Name != nil {
		p.Name = strings.TrimSpace(*pp.Name)
	}
	if pp.Age != nil {
		p.Age = *pp.Age
	}
	if pp.Gender != nil {
		p.Gender = *pp.Gender
	}
	if pp.Height != nil {
		p.Height = *pp.Height
	}
	if pp.Weight != nil {
		p.Weight = *pp.Weight
	}
	if pp.ActivityLevel != nil {
		p.ActivityLevel = *pp.ActivityLevel
	}
	if pp.Goal != nil {
		p.Goal = *pp.Goal
	}
	if pp.HealthConditions != nil {
		p.HealthConditions = strings.TrimSpace(*pp.HealthConditions)
	}
	return &p
}

// IsEmpty reports whether the patch changes nothing.
func (pp ProfilePatch) IsEmpty() bool {
	return pp == ProfilePatch{}
}
