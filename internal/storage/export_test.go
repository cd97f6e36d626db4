// ABOUTME: Tests for journey export functionality.
// ABOUTME: Verifies JSON, YAML, and Markdown export formats.
package storage

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/models"
	"gopkg.in/yaml.v3"
)

// seedExportData records a day-1 workout, meal and habit for user u1.
func seedExportData(t *testing.T, db *DB) *models.Journey {
	t.Helper()
	ctx := context.Background()
	j := setupJourney(t, db, "u1")
	if err := db.UpdateJourneyDay(ctx, j.ID, 2, models.PhaseFoundation); err != nil {
		t.Fatalf("UpdateJourneyDay failed: %v", err)
	}

	w := models.NewWorkoutSession("u1", j.ID, 1, models.WorkoutPush)
	w.Status = models.StatusCompleted
	if _, err := db.InsertWorkoutSession(ctx, w); err != nil {
		t.Fatalf("InsertWorkoutSession failed: %v", err)
	}
	e := &models.Exercise{ID: uuid.New(), SessionID: w.ID, Name: "Bench Press", TargetSets: 1, TargetReps: "8", RestSeconds: 90}
	if err := db.CreateExercise(ctx, e); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	if err := db.CreateExerciseSet(ctx, &models.ExerciseSet{ID: uuid.New(), ExerciseID: e.ID, SetNumber: 1, IsCompleted: true}); err != nil {
		t.Fatalf("CreateExerciseSet failed: %v", err)
	}

	p := &models.NutritionPlan{ID: uuid.New(), UserID: "u1", JourneyID: j.ID, DayNumber: 1, CreatedAt: time.Now()}
	if _, err := db.InsertNutritionPlan(ctx, p); err != nil {
		t.Fatalf("InsertNutritionPlan failed: %v", err)
	}
	if err := db.CreateNutritionLog(ctx, models.NewNutritionLog(p.ID, "u1", models.MealLunch, models.Macros{Calories: 640, Protein: 52})); err != nil {
		t.Fatalf("CreateNutritionLog failed: %v", err)
	}

	h := models.NewHabit("u1", "Cold Shower", models.HabitGood)
	if err := db.CreateHabit(ctx, h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	dd := models.NewDopamineDaily("u1", j.ID, 1, 0)
	dd.Score, dd.GoodCount, dd.FirstWin = 15, 1, true
	if _, err := db.InsertDopamineDaily(ctx, dd); err != nil {
		t.Fatalf("InsertDopamineDaily failed: %v", err)
	}
	return j
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	out, err := db.ExportJSON(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(out, &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if data.Tool != "recomp" || data.CurrentDay != 2 {
		t.Errorf("unexpected header %+v", data)
	}
	if len(data.Days) != 1 {
		t.Fatalf("expected 1 recorded day, got %d", len(data.Days))
	}
	day := data.Days[0]
	if day.WorkoutStatus != "completed" || day.SetsCompleted != 1 {
		t.Errorf("workout summary = %+v", day)
	}
	if day.Calories != 640 || day.Meals != 1 {
		t.Errorf("nutrition summary = %+v", day)
	}
	if day.Score != 15 || day.GoodHabits != 1 {
		t.Errorf("dopamine summary = %+v", day)
	}
	if len(data.Habits) != 1 || data.Habits[0].Name != "Cold Shower" {
		t.Errorf("habits = %+v", data.Habits)
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	out, err := db.ExportYAML(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if parsed["tool"] != "recomp" {
		t.Errorf("tool = %v, want recomp", parsed["tool"])
	}
	if !strings.Contains(string(out), "dopamine_score: 15") {
		t.Errorf("expected dopamine score in YAML:\n%s", out)
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	md, err := db.ExportMarkdown(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	for _, want := range []string{"# RECOMP Export", "Day 2 of 90", "push (completed)", "| 640 |", "Cold Shower (good)"} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in markdown:\n%s", want, md)
		}
	}
}

func TestExportWithoutJourney(t *testing.T) {
	db := setupTestDB(t)
	if _, err := db.ExportJSON(context.Background(), "nobody"); err == nil {
		t.Error("expected error exporting a user without a journey")
	}
}
