// ABOUTME: Pure body-composition formulas: BMI, BMI category, BMR and TDEE.
// ABOUTME: Undefined results are reported with ok=false, never as zero values.
package metrics

import (
	"math"

	"github.com/harperreed/fitplan/internal/models"
)

// BMICategory is the interpretation bucket of a BMI value.
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese1      BMICategory = "obese1"
	BMIObese2      BMICategory = "obese2"
	BMIObese3      BMICategory = "obese3"
)

// activityMultipliers is the single source of truth for TDEE multipliers.
var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

// Multiplier returns the TDEE multiplier for level.
func Multiplier(level models.ActivityLevel) (float64, bool) {
	m, ok := activityMultipliers[level]
	return m, ok
}

// ComputeBMI returns weight / (height in m)^2 rounded to one decimal.
func ComputeBMI(heightCm, weightKg float64) (float64, bool) {
	if !positive(heightCm) || !positive(weightKg) {
		return 0, false
	}
	m := heightCm / 100
	bmi := weightKg / (m * m)
	return roundHalfUp(bmi*10) / 10, true
}

// InterpretBMI buckets bmi. Each bound belongs to the higher bracket, so
// 18.5 is normal.
func InterpretBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 23:
		return BMINormal
	case bmi < 25:
		return BMIOverweight
	case bmi < 30:
		return BMIObese1
	case bmi < 35:
		return BMIObese2
	default:
		return BMIObese3
	}
}

// ComputeBMR uses the revised Harris-Benedict equation and rounds to the
// nearest kcal/day.
func ComputeBMR(weightKg, heightCm float64, age int, gender models.Gender) (int, bool) {
	if !positive(weightKg) || !positive(heightCm) || age <= 0 {
		return 0, false
	}

	a := float64(age)
	var bmr float64
	switch gender {
	case models.GenderMale:
		bmr = 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*a
	case models.GenderFemale:
		bmr = 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*a
	default:
		return 0, false
	}
	return int(roundHalfUp(bmr)), true
}

// ComputeTDEE scales bmr by the activity multiplier. Unknown levels are
// undefined rather than defaulted.
func ComputeTDEE(bmr int, level models.ActivityLevel) (int, bool) {
	if bmr <= 0 {
		return 0, false
	}
	mult, ok := activityMultipliers[level]
	if !ok {
		return 0, false
	}
	return int(roundHalfUp(float64(bmr) * mult)), true
}

// roundHalfUp rounds .5 towards positive infinity, like JavaScript's Math.round.
// The conversion keeps the compiler from fusing the caller's multiply into
// the addition.
func roundHalfUp(v float64) float64 {
	return math.Floor(float64(v) + 0.5)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}
