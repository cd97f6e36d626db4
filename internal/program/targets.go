// ABOUTME: Phase-based nutrition targets and onboarding energy estimates.
// ABOUTME: Targets increase with phase; BMR uses Mifflin-St Jeor.
package program

import (
	"math"

	"github.com/harperreed/recomp/internal/models"
)

// WaterTargetLiters is the daily water goal.
const WaterTargetLiters = 3.0

// NutritionTargets returns the macro targets for a phase.
func NutritionTargets(p models.Phase) models.Macros {
	switch p {
	case models.PhaseBuild:
		return models.Macros{Calories: 2200, Protein: 170, Carbs: 220, Fat: 75}
	case models.PhaseOptimize:
		return models.Macros{Calories: 2400, Protein: 180, Carbs: 250, Fat: 80}
	default:
		return models.Macros{Calories: 2000, Protein: 150, Carbs: 200, Fat: 70}
	}
}

// Onboarding defaults used when a field is missing or unparseable.
const (
	DefaultHeightCM    = 175.0
	DefaultWeightKG    = 80.0
	DefaultAge         = 28
	DefaultWorkoutDays = 4
)

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// BMR estimates basal metabolic rate. Anything other than "female" uses the male constant.
func BMR(heightCM, weightKG float64, age int, gender string) float64 {
	base := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if gender == "female" {
		return base - 161
	}
	return base + 5
}

// TDEE scales BMR by activity level, rounded to the nearest kcal.
// Unknown levels use the moderate multiplier.
func TDEE(bmr float64, activityLevel string) float64 {
	m, ok := activityMultipliers[activityLevel]
	if !ok {
		m = activityMultipliers["moderate"]
	}
	return math.Round(bmr * m)
}
