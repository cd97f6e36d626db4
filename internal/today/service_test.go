// ABOUTME: Tests for journey resolution, provisioning and day-scoped logging.
// ABOUTME: Runs the service over a temporary SQLite store with a controllable clock.
package today

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/storage"
)

// fakeClock is a settable wall clock.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*Service, *storage.DB, *fakeClock) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	clock := &fakeClock{now: testNow}
	svc := New(db, WithClock(clock.Now), WithLocation(time.UTC))
	return svc, db, clock
}

// startUser registers userID with a journey that began daysAgo days before testNow.
func startUser(t *testing.T, svc *Service, db *storage.DB, userID string, daysAgo int) *models.Journey {
	t.Helper()
	ctx := context.Background()
	if err := svc.EnsureUser(ctx, userID, nil, nil); err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	j := models.NewJourney(userID, testNow.AddDate(0, 0, -daysAgo))
	if created, err := db.CreateJourney(ctx, j); err != nil || !created {
		t.Fatalf("CreateJourney = %v, %v", created, err)
	}
	return j
}

func TestJourneyCreatedOnFirstAccess(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	if err := svc.EnsureUser(ctx, "user-1", nil, nil); err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}

	j, err := svc.Journey(ctx, "user-1")
	if err != nil {
		t.Fatalf("Journey failed: %v", err)
	}
	if j.CurrentDay != 1 || j.Phase != models.PhaseFoundation || !j.IsActive {
		t.Errorf("new journey = day %d phase %s active %v", j.CurrentDay, j.Phase, j.IsActive)
	}

	again, err := svc.Journey(ctx, "user-1")
	if err != nil {
		t.Fatalf("second Journey failed: %v", err)
	}
	if again.ID != j.ID {
		t.Error("second access created another journey")
	}
}

func TestJourneyRefreshesDay(t *testing.T) {
	svc, db, clock := setupService(t)
	ctx := context.Background()
	startUser(t, svc, db, "user-1", 5)

	j, err := svc.Journey(ctx, "user-1")
	if err != nil {
		t.Fatalf("Journey failed: %v", err)
	}
	if j.CurrentDay != 6 || j.Phase != models.PhaseFoundation {
		t.Errorf("Journey = day %d phase %s, want day 6 foundation", j.CurrentDay, j.Phase)
	}

	stored, err := db.GetActiveJourney(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetActiveJourney failed: %v", err)
	}
	if stored.CurrentDay != 6 {
		t.Errorf("stored CurrentDay = %d, want 6", stored.CurrentDay)
	}

	clock.Advance(30 * 24 * time.Hour)
	j, err = svc.Journey(ctx, "user-1")
	if err != nil {
		t.Fatalf("Journey failed: %v", err)
	}
	if j.CurrentDay != 36 || j.Phase != models.PhaseBuild {
		t.Errorf("Journey = day %d phase %s, want day 36 build", j.CurrentDay, j.Phase)
	}
}

func TestWorkoutProvisioning(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()
	startUser(t, svc, db, "user-1", 5)

	w, err := svc.WorkoutToday(ctx, "user-1")
	if err != nil {
		t.Fatalf("WorkoutToday failed: %v", err)
	}
	if w.WorkoutType != models.WorkoutPull || w.Status != models.StatusPending {
		t.Errorf("workout = %s/%s, want pull/pending", w.WorkoutType, w.Status)
	}
	if len(w.Exercises) != 5 {
		t.Fatalf("got %d exercises, want 5", len(w.Exercises))
	}
	first := w.Exercises[0]
	if first.Name != "Deadlift" || first.TargetSets != 4 || len(first.Sets) != 4 {
		t.Errorf("first exercise = %s with %d/%d sets", first.Name, first.TargetSets, len(first.Sets))
	}
	for i, set := range first.Sets {
		if set.SetNumber != i+1 || set.IsCompleted {
			t.Errorf("set %d = number %d completed %v", i, set.SetNumber, set.IsCompleted)
		}
	}

	again, err := svc.WorkoutToday(ctx, "user-1")
	if err != nil {
		t.Fatalf("second WorkoutToday failed: %v", err)
	}
	if again.ID != w.ID || again.Exercises[0].ID != first.ID {
		t.Error("provisioning twice returned different records")
	}
}

func TestRestDayWorkout(t *testing.T) {
	svc, db, _ := setupService(t)
	startUser(t, svc, db, "user-1", 3)

	w, err := svc.WorkoutToday(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("WorkoutToday failed: %v", err)
	}
	if w.DayNumber != 4 || w.WorkoutType != models.WorkoutRest {
		t.Errorf("workout = day %d %s, want day 4 rest", w.DayNumber, w.WorkoutType)
	}
	if len(w.Exercises) != 0 {
		t.Errorf("rest day has %d exercises", len(w.Exercises))
	}
}

func TestUpdateWorkout(t *testing.T) {
	svc, db, clock := setupService(t)
	ctx := context.Background()
	startUser(t, svc, db, "user-1", 0)

	w, err := svc.WorkoutToday(ctx, "user-1")
	if err != nil {
		t.Fatalf("WorkoutToday failed: %v", err)
	}

	inProgress := string(models.StatusInProgress)
	w, err = svc.UpdateWorkout(ctx, "user-1", w.ID, WorkoutUpdate{Status: &inProgress})
	if err != nil {
		t.Fatalf("UpdateWorkout in_progress failed: %v", err)
	}
	if w.StartedAt == nil || !w.StartedAt.Equal(testNow) {
		t.Errorf("StartedAt = %v, want %v", w.StartedAt, testNow)
	}

	clock.Advance(45 * time.Minute)
	done := true
	reps := 8
	weight := 60.0
	setID := w.Exercises[0].Sets[0].ID
	completed := string(models.StatusCompleted)
	notes := "felt strong"
	w, err = svc.UpdateWorkout(ctx, "user-1", w.ID, WorkoutUpdate{
		Status: &completed,
		Notes:  &notes,
		Sets:   []models.SetUpdate{{SetID: setID, Reps: &reps, Weight: &weight, IsCompleted: &done}},
	})
	if err != nil {
		t.Fatalf("UpdateWorkout completed failed: %v", err)
	}
	if w.Status != models.StatusCompleted || w.CompletedAt == nil {
		t.Errorf("status = %s completedAt = %v", w.Status, w.CompletedAt)
	}
	if w.DurationMinutes == nil || *w.DurationMinutes != 45 {
		t.Errorf("DurationMinutes = %v, want 45", w.DurationMinutes)
	}
	if w.Notes == nil || *w.Notes != notes {
		t.Errorf("Notes = %v, want %q", w.Notes, notes)
	}
	set := w.Exercises[0].Sets[0]
	if !set.IsCompleted || set.CompletedAt == nil || set.Reps == nil || *set.Reps != 8 {
		t.Errorf("set after update = %+v", set)
	}

	undo := false
	w, err = svc.UpdateWorkout(ctx, "user-1", w.ID, WorkoutUpdate{Sets: []models.SetUpdate{{SetID: setID, IsCompleted: &undo}}})
	if err != nil {
		t.Fatalf("UpdateWorkout undo failed: %v", err)
	}
	if set := w.Exercises[0].Sets[0]; set.IsCompleted || set.CompletedAt != nil {
		t.Errorf("set after undo = %+v", set)
	}
}

func TestUpdateWorkoutErrors(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()
	startUser(t, svc, db, "user-1", 0)
	startUser(t, svc, db, "user-2", 0)

	w, err := svc.WorkoutToday(ctx, "user-1")
	if err != nil {
		t.Fatalf("WorkoutToday failed: %v", err)
	}
	bogus := "resting"

	tests := []struct {
		name    string
		userID  string
		session uuid.UUID
		upd     WorkoutUpdate
		want    error
	}{
		{"unknown session", "user-1", uuid.New(), WorkoutUpdate{}, ErrNotFound},
		{"someone else's session", "user-2", w.ID, WorkoutUpdate{}, ErrNotFound},
		{"invalid status", "user-1", w.ID, WorkoutUpdate{Status: &bogus}, ErrBadRequest},
		{"set without id", "user-1", w.ID, WorkoutUpdate{Sets: []models.SetUpdate{{}}}, ErrBadRequest},
		{"unknown set", "user-1", w.ID, WorkoutUpdate{Sets: []models.SetUpdate{{SetID: uuid.New()}}}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateWorkout(ctx, tt.userID, tt.session, tt.upd)
			if !errors.Is(err, tt.want) {
				t.Errorf("UpdateWorkout error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNutritionProvisioningAndMeals(t *testing.T) {
	svc, db, clock := setupService(t)
	ctx := context.Background()
	startUser(t, svc, db, "user-1", 40)

	plan, err := svc.NutritionToday(ctx, "user-1")
	if err != nil {
		t.Fatalf("NutritionToday failed: %v", err)
	}
	if plan.Target.Calories != 2200 || plan.Target.Protein != 170 {
		t.Errorf("build phase targets = %+v", plan.Target)
	}

	desc := "steak and rice"
	if _, err := svc.LogMeal(ctx, "user-1", MealInput{MealType: "lunch", Macros: models.Macros{Calories: 1500, Protein: 90}}); err != nil {
		t.Fatalf("LogMeal failed: %v", err)
	}
	clock.Advance(time.Hour)
	plan, err = svc.LogMeal(ctx, "user-1", MealInput{MealType: "dinner", Description: &desc, Macros: models.Macros{Calories: 1000}})
	if err != nil {
		t.Fatalf("LogMeal failed: %v", err)
	}
	if len(plan.Logs) != 2 || plan.Logs[0].MealType != models.MealDinner {
		t.Fatalf("logs = %+v, want dinner first", plan.Logs)
	}
	if plan.Logs[0].Description == nil || *plan.Logs[0].Description != desc {
		t.Errorf("Description = %v", plan.Logs[0].Description)
	}

	for _, mt := range []string{"", "brunch"} {
		if _, err := svc.LogMeal(ctx, "user-1", MealInput{MealType: mt}); !errors.Is(err, ErrBadRequest) {
			t.Errorf("LogMeal(%q) error = %v, want ErrBadRequest", mt, err)
		}
	}
}

func TestWater(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()
	startUser(t, svc, db, "user-1", 0)

	old := &models.WaterLog{ID: uuid.New(), UserID: "user-1", Amount: 2, LoggedAt: testNow.AddDate(0, 0, -1)}
	if err := db.CreateWaterLog(ctx, old); err != nil {
		t.Fatalf("CreateWaterLog failed: %v", err)
	}

	if _, _, err := svc.LogWater(ctx, "user-1", 0.5); err != nil {
		t.Fatalf("LogWater failed: %v", err)
	}
	entry, total, err := svc.LogWater(ctx, "user-1", 0.75)
	if err != nil {
		t.Fatalf("LogWater failed: %v", err)
	}
	if entry.Amount != 0.75 || total != 1.25 {
		t.Errorf("LogWater = %v, total %v, want 0.75 and 1.25", entry.Amount, total)
	}

	view, err := svc.Water(ctx, "user-1")
	if err != nil {
		t.Fatalf("Water failed: %v", err)
	}
	if len(view.Logs) != 2 || view.TotalLiters != 1.25 || view.TargetLiters != 3.0 {
		t.Errorf("Water = %d logs, %v of %v", len(view.Logs), view.TotalLiters, view.TargetLiters)
	}

	for _, amount := range []float64{0, -1} {
		if _, _, err := svc.LogWater(ctx, "user-1", amount); !errors.Is(err, ErrBadRequest) {
			t.Errorf("LogWater(%v) error = %v, want ErrBadRequest", amount, err)
		}
	}
}

func TestCompleteFinished(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()
	startUser(t, svc, db, "done", 100)
	startUser(t, svc, db, "midway", 20)

	n, err := svc.CompleteFinished(ctx)
	if err != nil {
		t.Fatalf("CompleteFinished failed: %v", err)
	}
	if n != 1 {
		t.Errorf("CompleteFinished stamped %d journeys, want 1", n)
	}

	j, err := db.GetActiveJourney(ctx, "done")
	if err != nil {
		t.Fatalf("finished journey no longer active: %v", err)
	}
	if j.CompletedAt == nil {
		t.Error("finished journey has no completedAt")
	}

	if n, err := svc.CompleteFinished(ctx); err != nil || n != 0 {
		t.Errorf("second CompleteFinished = %d, %v, want 0", n, err)
	}
}

func TestTodayBundle(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()
	startUser(t, svc, db, "user-1", 0)

	b, err := svc.Today(ctx, "user-1")
	if err != nil {
		t.Fatalf("Today failed: %v", err)
	}
	if b.Journey == nil || b.Workout == nil || b.Nutrition == nil || b.Dopamine == nil || b.Mindset == nil {
		t.Fatalf("incomplete bundle: %+v", b)
	}
	if b.Workout.WorkoutType != models.WorkoutPush {
		t.Errorf("day 1 workout = %s, want push", b.Workout.WorkoutType)
	}
	if len(b.Dopamine.Habits) != 10 {
		t.Errorf("seeded %d habits, want 10", len(b.Dopamine.Habits))
	}
	if b.Mindset.Day != 1 {
		t.Errorf("Mindset.Day = %d, want 1", b.Mindset.Day)
	}
}
