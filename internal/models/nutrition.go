// ABOUTME: Nutrition plan, meal log and water log models.
// ABOUTME: Plans carry macro targets; logs are appended through the day.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MealType classifies a nutrition log entry.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// AllMealTypes returns all valid meal types.
var AllMealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// IsValidMealType checks if a string is a valid meal type.
func IsValidMealType(s string) bool {
	for _, mt := range AllMealTypes {
		if string(mt) == s {
			return true
		}
	}
	return false
}

// Macros is a calories/protein/carbs/fat tuple.
type Macros struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// NutritionPlan is the nutrition record for one journey day.
type NutritionPlan struct {
	ID        uuid.UUID
	UserID    string
	JourneyID uuid.UUID
	DayNumber int
	Target    Macros
	MealPlan  *string
	CreatedAt time.Time
	Logs      []NutritionLog // Newest first
}

// NutritionLog is a single meal entry.
type NutritionLog struct {
	ID          uuid.UUID
	PlanID      uuid.UUID
	UserID      string
	MealType    MealType
	Description *string
	Macros
	LoggedAt time.Time
}

// NewNutritionLog creates a meal entry stamped now.
func NewNutritionLog(planID uuid.UUID, userID string, mealType MealType, m Macros) *NutritionLog {
	return &NutritionLog{
		ID:       uuid.New(),
		PlanID:   planID,
		UserID:   userID,
		MealType: mealType,
		Macros:   m,
		LoggedAt: time.Now(),
	}
}

// WithDescription sets the meal description.
func (l *NutritionLog) WithDescription(d string) *NutritionLog {
	l.Description = &d
	return l
}

// WaterLog is a water intake entry in liters.
type WaterLog struct {
	ID       uuid.UUID
	UserID   string
	Amount   float64
	LoggedAt time.Time
}
