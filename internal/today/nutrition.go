// ABOUTME: Meal and water logging for the current day.
// ABOUTME: Water totals cover the local calendar day in the service's location.
package today

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/program"
)

// MealInput describes a meal to log against today's nutrition plan.
type MealInput struct {
	MealType    string
	Description *string
	models.Macros
}

// WaterView is the day's water intake.
type WaterView struct {
	TotalLiters  float64
	TargetLiters float64
	Logs         []*models.WaterLog
}

// NutritionToday returns today's nutrition plan, creating it if needed.
func (s *Service) NutritionToday(ctx context.Context, userID string) (*models.NutritionPlan, error) {
	j, err := s.Journey(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Nutrition(ctx, userID, j)
}

// LogMeal records a meal and returns the refreshed plan.
func (s *Service) LogMeal(ctx context.Context, userID string, in MealInput) (*models.NutritionPlan, error) {
	if in.MealType == "" {
		return nil, badRequest("Meal type is required")
	}
	if !models.IsValidMealType(in.MealType) {
		return nil, badRequest("Invalid meal type")
	}

	j, err := s.Journey(ctx, userID)
	if err != nil {
		return nil, err
	}
	plan, err := s.Nutrition(ctx, userID, j)
	if err != nil {
		return nil, err
	}

	entry := models.NewNutritionLog(plan.ID, userID, models.MealType(in.MealType), in.Macros)
	entry.Description = in.Description
	entry.LoggedAt = s.now()
	if err := s.store.CreateNutritionLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("log meal: %w", err)
	}
	return s.store.GetNutritionPlanForDay(ctx, userID, j.ID, j.CurrentDay)
}

// Water returns today's water logs and their total.
func (s *Service) Water(ctx context.Context, userID string) (*WaterView, error) {
	from := program.StartOfDay(s.now(), s.loc)
	logs, err := s.store.ListWaterLogs(ctx, userID, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	view := &WaterView{TargetLiters: program.WaterTargetLiters, Logs: logs}
	for _, l := range logs {
		view.TotalLiters += l.Amount
	}
	return view, nil
}

// LogWater records a water intake in liters and returns the entry with the
// day's new total.
func (s *Service) LogWater(ctx context.Context, userID string, liters float64) (*models.WaterLog, float64, error) {
	if !(liters > 0) || math.IsInf(liters, 0) {
		return nil, 0, badRequest("Valid amount required")
	}

	entry := &models.WaterLog{ID: uuid.New(), UserID: userID, Amount: liters, LoggedAt: s.now()}
	if err := s.store.CreateWaterLog(ctx, entry); err != nil {
		return nil, 0, fmt.Errorf("log water: %w", err)
	}

	view, err := s.Water(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return entry, view.TotalLiters, nil
}
