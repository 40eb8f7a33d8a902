// ABOUTME: Report bundles every metric derivable from a profile.
// ABOUTME: Fields that cannot be computed stay nil instead of zero.
package metrics

import (
	"github.com/harperreed/fitplan/internal/labels"
	"github.com/harperreed/fitplan/internal/models"
)

// Report holds the computed metrics for one profile.
type Report struct {
	BMI         *float64     `json:"bmi,omitempty" yaml:"bmi,omitempty"`
	BMICategory *BMICategory `json:"bmi_category,omitempty" yaml:"bmi_category,omitempty"`
	BMR         *int         `json:"bmr,omitempty" yaml:"bmr,omitempty"`
	TDEE        *int         `json:"tdee,omitempty" yaml:"tdee,omitempty"`
}

// Calculate derives BMI, BMR and TDEE from p. The category is interpreted
// from the rounded BMI so it always agrees with the displayed number.
func Calculate(p *models.Profile) Report {
	var r Report
	if p == nil {
		return r
	}

	if bmi, ok := ComputeBMI(p.Height, p.Weight); ok {
		cat := InterpretBMI(bmi)
		r.BMI = &bmi
		r.BMICategory = &cat
	}

	if bmr, ok := ComputeBMR(p.Weight, p.Height, p.Age, p.Gender); ok {
		r.BMR = &bmr
		if tdee, ok := ComputeTDEE(bmr, p.ActivityLevel); ok {
			r.TDEE = &tdee
		}
	}

	return r
}

// CategoryText returns the display text of the BMI category, or "" if BMI
// is unavailable.
func (r Report) CategoryText(lang labels.Lang) string {
	if r.BMICategory == nil {
		return ""
	}
	return labels.BMICategory(lang, string(*r.BMICategory))
}
