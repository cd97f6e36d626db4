// ABOUTME: MCP tool implementations for the daily program.
// ABOUTME: Reads today's bundle and logs habits, meals, water, sets and lessons.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/dto"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/today"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_today",
		Description: "Get today's journey day, workout, nutrition plan, dopamine score and unlocked lessons",
	}, s.handleGetToday)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_habits",
		Description: "List the user's active habits, bad before good",
	}, s.handleListHabits)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_habit",
		Description: "Log a good or bad habit occurrence and return the updated dopamine score",
	}, s.handleLogHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_meal",
		Description: "Log a meal against today's nutrition plan",
	}, s.handleLogMeal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_water",
		Description: "Log water intake in liters",
	}, s.handleLogWater)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_workout",
		Description: "Start or complete today's workout, or record a set",
	}, s.handleUpdateWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_lesson",
		Description: "Mark an unlocked mindset lesson as completed",
	}, s.handleCompleteLesson)
}

// Tool input/output types

type emptyInput struct{}

type logHabitInput struct {
	Habit         string `json:"habit" jsonschema:"Habit ID, ID prefix, or exact name"`
	Notes         string `json:"notes,omitempty" jsonschema:"Optional notes"`
	SwapFromLogID string `json:"swap_from_log_id,omitempty" jsonschema:"ID of a bad-habit log this good habit replaces"`
}

type logMealInput struct {
	MealType    string  `json:"meal_type" jsonschema:"One of breakfast, lunch, dinner, snack"`
	Description string  `json:"description,omitempty" jsonschema:"What was eaten"`
	Calories    float64 `json:"calories,omitempty" jsonschema:"Calories (kcal)"`
	Protein     float64 `json:"protein,omitempty" jsonschema:"Protein (g)"`
	Carbs       float64 `json:"carbs,omitempty" jsonschema:"Carbohydrates (g)"`
	Fat         float64 `json:"fat,omitempty" jsonschema:"Fat (g)"`
}

type logWaterInput struct {
	Liters float64 `json:"liters" jsonschema:"Amount of water in liters"`
}

type waterOutput struct {
	TotalLiters  float64 `json:"total_liters"`
	TargetLiters float64 `json:"target_liters"`
	Message      string  `json:"message"`
}

type updateWorkoutInput struct {
	Status    string   `json:"status,omitempty" jsonschema:"New status: in_progress, completed or skipped"`
	Notes     string   `json:"notes,omitempty" jsonschema:"Workout notes"`
	SetID     string   `json:"set_id,omitempty" jsonschema:"ID of the set to record"`
	Weight    *float64 `json:"weight,omitempty" jsonschema:"Weight lifted"`
	Reps      *int     `json:"reps,omitempty" jsonschema:"Reps performed"`
	RPE       *float64 `json:"rpe,omitempty" jsonschema:"Rate of perceived exertion"`
	Completed *bool    `json:"completed,omitempty" jsonschema:"Whether the set is done"`
}

type completeLessonInput struct {
	LessonID string `json:"lesson_id" jsonschema:"Mindset lesson ID"`
}

// Tool handlers

func (s *Server) handleGetToday(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, dto.TodayBundleDTO, error) {
	b, err := s.svc.Today(ctx, s.userID)
	if err != nil {
		return nil, dto.TodayBundleDTO{}, fmt.Errorf("failed to load today: %w", err)
	}
	return nil, dto.TodayBundle(b), nil
}

func (s *Server) handleListHabits(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	habits, err := s.svc.ListHabits(ctx, s.userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list habits: %w", err)
	}
	if len(habits) == 0 {
		return nil, map[string]interface{}{"message": "No habits yet. Call get_today to seed the defaults."}, nil
	}
	return nil, map[string]interface{}{"habits": dto.HabitDetails(habits)}, nil
}

func (s *Server) handleLogHabit(ctx context.Context, req *mcp.CallToolRequest, input logHabitInput) (*mcp.CallToolResult, dto.DopamineDailyDTO, error) {
	h, err := s.resolveHabit(ctx, input.Habit)
	if err != nil {
		return nil, dto.DopamineDailyDTO{}, err
	}

	in := today.LogHabitInput{HabitID: h.ID}
	if input.Notes != "" {
		in.Notes = &input.Notes
	}
	if input.SwapFromLogID != "" {
		ref, err := uuid.Parse(input.SwapFromLogID)
		if err != nil {
			return nil, dto.DopamineDailyDTO{}, fmt.Errorf("invalid swap_from_log_id: %s", input.SwapFromLogID)
		}
		in.SwapFromLogID = &ref
	}

	v, err := s.svc.LogHabit(ctx, s.userID, in)
	if err != nil {
		return nil, dto.DopamineDailyDTO{}, fmt.Errorf("failed to log habit: %w", err)
	}
	return nil, dto.DopamineDaily(v), nil
}

// resolveHabit finds an active habit by full id, id prefix or case-insensitive name.
func (s *Server) resolveHabit(ctx context.Context, ref string) (*models.Habit, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("habit is required")
	}
	h, err := s.svc.FindHabit(ctx, s.userID, ref)
	if errors.Is(err, today.ErrNotFound) {
		return nil, fmt.Errorf("habit not found: %s", ref)
	}
	return h, err
}

func (s *Server) handleLogMeal(ctx context.Context, req *mcp.CallToolRequest, input logMealInput) (*mcp.CallToolResult, dto.NutritionPlanDTO, error) {
	in := today.MealInput{
		MealType: input.MealType,
		Macros: models.Macros{
			Calories: input.Calories,
			Protein:  input.Protein,
			Carbs:    input.Carbs,
			Fat:      input.Fat,
		},
	}
	if input.Description != "" {
		in.Description = &input.Description
	}

	p, err := s.svc.LogMeal(ctx, s.userID, in)
	if err != nil {
		return nil, dto.NutritionPlanDTO{}, fmt.Errorf("failed to log meal: %w", err)
	}
	return nil, dto.NutritionPlan(p), nil
}

func (s *Server) handleLogWater(ctx context.Context, req *mcp.CallToolRequest, input logWaterInput) (*mcp.CallToolResult, waterOutput, error) {
	_, total, err := s.svc.LogWater(ctx, s.userID, input.Liters)
	if err != nil {
		return nil, waterOutput{}, fmt.Errorf("failed to log water: %w", err)
	}
	v, err := s.svc.Water(ctx, s.userID)
	if err != nil {
		return nil, waterOutput{}, fmt.Errorf("failed to load water: %w", err)
	}
	return nil, waterOutput{
		TotalLiters:  total,
		TargetLiters: v.TargetLiters,
		Message:      fmt.Sprintf("Logged %.2f L (%.2f / %.2f L today)", input.Liters, total, v.TargetLiters),
	}, nil
}

func (s *Server) handleUpdateWorkout(ctx context.Context, req *mcp.CallToolRequest, input updateWorkoutInput) (*mcp.CallToolResult, dto.WorkoutSessionDTO, error) {
	w, err := s.svc.WorkoutToday(ctx, s.userID)
	if err != nil {
		return nil, dto.WorkoutSessionDTO{}, fmt.Errorf("failed to load workout: %w", err)
	}

	var upd today.WorkoutUpdate
	if input.Status != "" {
		upd.Status = &input.Status
	}
	if input.Notes != "" {
		upd.Notes = &input.Notes
	}
	if input.SetID != "" {
		setID, err := uuid.Parse(input.SetID)
		if err != nil {
			return nil, dto.WorkoutSessionDTO{}, fmt.Errorf("invalid set_id: %s", input.SetID)
		}
		upd.Sets = []models.SetUpdate{{
			SetID:       setID,
			Weight:      input.Weight,
			Reps:        input.Reps,
			RPE:         input.RPE,
			IsCompleted: input.Completed,
		}}
	}

	updated, err := s.svc.UpdateWorkout(ctx, s.userID, w.ID, upd)
	if err != nil {
		return nil, dto.WorkoutSessionDTO{}, fmt.Errorf("failed to update workout: %w", err)
	}
	return nil, dto.WorkoutSession(updated), nil
}

func (s *Server) handleCompleteLesson(ctx context.Context, req *mcp.CallToolRequest, input completeLessonInput) (*mcp.CallToolResult, dto.MindsetTodayDTO, error) {
	lessonID, err := uuid.Parse(input.LessonID)
	if err != nil {
		return nil, dto.MindsetTodayDTO{}, fmt.Errorf("invalid lesson_id: %s", input.LessonID)
	}
	v, err := s.svc.CompleteLesson(ctx, s.userID, lessonID)
	if err != nil {
		return nil, dto.MindsetTodayDTO{}, fmt.Errorf("failed to complete lesson: %w", err)
	}
	return nil, dto.MindsetToday(v), nil
}
