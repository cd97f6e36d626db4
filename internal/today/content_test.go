// ABOUTME: Tests for mindset unlocks, quotes, courses and onboarding.
// ABOUTME: Reference content is inserted directly through the store.
package today

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/storage"
)

func seedLessons(t *testing.T, db *storage.DB, days ...int) []*models.MindsetLesson {
	t.Helper()
	var lessons []*models.MindsetLesson
	for i, day := range days {
		l := &models.MindsetLesson{ID: uuid.New(), Title: "Lesson", Content: "body", UnlockDay: day, OrderIndex: i + 1, Duration: 5}
		if err := db.UpsertMindsetLesson(context.Background(), l); err != nil {
			t.Fatalf("UpsertMindsetLesson failed: %v", err)
		}
		lessons = append(lessons, l)
	}
	return lessons
}

func TestMindsetUnlocksByDay(t *testing.T) {
	svc, db, clock := setupService(t)
	ctx := context.Background()
	startUser(t, svc, db, "user-1", 5)
	lessons := seedLessons(t, db, 1, 3, 7)

	view, err := svc.MindsetToday(ctx, "user-1")
	if err != nil {
		t.Fatalf("MindsetToday failed: %v", err)
	}
	if view.Day != 6 || len(view.Lessons) != 2 {
		t.Fatalf("day %d with %d lessons, want day 6 with 2", view.Day, len(view.Lessons))
	}
	for _, lp := range view.Lessons {
		if lp.Progress == nil || !lp.Progress.IsUnlocked || lp.Progress.UnlockedAt == nil {
			t.Errorf("lesson %d not unlocked: %+v", lp.Lesson.UnlockDay, lp.Progress)
		}
	}

	if _, err := svc.CompleteLesson(ctx, "user-1", lessons[2].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("completing a future lesson error = %v, want ErrNotFound", err)
	}

	clock.Advance(24 * time.Hour)
	view, err = svc.MindsetToday(ctx, "user-1")
	if err != nil {
		t.Fatalf("MindsetToday failed: %v", err)
	}
	if len(view.Lessons) != 3 {
		t.Errorf("day 7 has %d lessons, want 3", len(view.Lessons))
	}
}

func TestCompleteLesson(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()
	startUser(t, svc, db, "user-1", 0)
	lessons := seedLessons(t, db, 1, 30)

	if _, err := svc.MindsetToday(ctx, "user-1"); err != nil {
		t.Fatalf("MindsetToday failed: %v", err)
	}

	view, err := svc.CompleteLesson(ctx, "user-1", lessons[0].ID)
	if err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}
	p := view.Lessons[0].Progress
	if p == nil || !p.IsCompleted || p.CompletedAt == nil {
		t.Errorf("progress after completion = %+v", p)
	}

	if _, err := svc.CompleteLesson(ctx, "user-1", lessons[0].ID); !errors.Is(err, ErrBadRequest) {
		t.Errorf("completing twice error = %v, want ErrBadRequest", err)
	}

	locked := &models.MindsetProgress{ID: uuid.New(), UserID: "user-1", LessonID: lessons[1].ID}
	if _, err := db.InsertMindsetProgress(ctx, locked); err != nil {
		t.Fatalf("InsertMindsetProgress failed: %v", err)
	}
	if _, err := svc.CompleteLesson(ctx, "user-1", lessons[1].ID); !errors.Is(err, ErrBadRequest) {
		t.Errorf("completing a locked lesson error = %v, want ErrBadRequest", err)
	}
	got, err := db.GetMindsetProgress(ctx, "user-1", lessons[1].ID)
	if err != nil {
		t.Fatalf("GetMindsetProgress failed: %v", err)
	}
	if got.IsCompleted || got.CompletedAt != nil {
		t.Errorf("locked lesson progress changed: %+v", got)
	}
}

func TestQuotes(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()
	startUser(t, svc, db, "user-1", 0)

	focus := "focus"
	var ids []uuid.UUID
	for _, text := range []string{"Alpha", "Bravo", "Charlie"} {
		q := &models.Quote{ID: uuid.New(), Text: text, Category: &focus, IsActive: true}
		if err := db.UpsertQuote(ctx, q); err != nil {
			t.Fatalf("UpsertQuote failed: %v", err)
		}
		ids = append(ids, q.ID)
	}

	if err := svc.SaveQuote(ctx, "user-1", ids[1]); err != nil {
		t.Fatalf("SaveQuote failed: %v", err)
	}
	if err := svc.SaveQuote(ctx, "user-1", ids[1]); err != nil {
		t.Fatalf("second SaveQuote failed: %v", err)
	}
	if err := svc.SaveQuote(ctx, "user-1", uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("SaveQuote(unknown) error = %v, want ErrNotFound", err)
	}
	if err := svc.SaveQuote(ctx, "user-1", uuid.Nil); !errors.Is(err, ErrBadRequest) {
		t.Errorf("SaveQuote(nil) error = %v, want ErrBadRequest", err)
	}

	quotes, err := svc.Quotes(ctx, "user-1", QuoteQuery{})
	if err != nil {
		t.Fatalf("Quotes failed: %v", err)
	}
	if len(quotes) != 3 {
		t.Fatalf("got %d quotes, want 3", len(quotes))
	}
	for _, q := range quotes {
		if q.IsSaved != (q.ID == ids[1]) {
			t.Errorf("quote %q IsSaved = %v", q.Text, q.IsSaved)
		}
	}

	limited, err := svc.Quotes(ctx, "user-1", QuoteQuery{Random: true, Limit: 2})
	if err != nil || len(limited) != 2 {
		t.Errorf("limited Quotes = %d, %v, want 2", len(limited), err)
	}
	other := "other"
	none, err := svc.Quotes(ctx, "user-1", QuoteQuery{Category: &other})
	if err != nil || len(none) != 0 {
		t.Errorf("Quotes(other) = %d, %v, want 0", len(none), err)
	}

	if err := svc.UnsaveQuote(ctx, "user-1", ids[1]); err != nil {
		t.Fatalf("UnsaveQuote failed: %v", err)
	}
	if err := svc.UnsaveQuote(ctx, "user-1", ids[1]); err != nil {
		t.Errorf("second UnsaveQuote error = %v, want nil", err)
	}
}

func TestCourseProgress(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()
	startUser(t, svc, db, "user-1", 0)

	course := &models.BrainCourse{ID: uuid.New(), Title: "Focus 101", Duration: 30, IsActive: true}
	for i := 0; i < 3; i++ {
		course.Modules = append(course.Modules, models.CourseModule{ID: uuid.New(), Title: "Module", Content: "body", Duration: 10, OrderIndex: i})
	}
	if err := db.UpsertCourse(ctx, course); err != nil {
		t.Fatalf("UpsertCourse failed: %v", err)
	}

	tests := []struct {
		name          string
		moduleIndex   int
		completed     bool
		wantCurrent   int
		wantCompleted bool
	}{
		{"first module", 0, false, 1, false},
		{"flagged complete early", 1, true, 2, true},
		{"last module", 2, false, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := svc.UpdateCourseProgress(ctx, "user-1", course.ID, tt.moduleIndex, tt.completed)
			if err != nil {
				t.Fatalf("UpdateCourseProgress failed: %v", err)
			}
			if p.CurrentModule != tt.wantCurrent || p.IsCompleted != tt.wantCompleted {
				t.Errorf("progress = %d/%v, want %d/%v", p.CurrentModule, p.IsCompleted, tt.wantCurrent, tt.wantCompleted)
			}
			if (p.CompletedAt != nil) != tt.wantCompleted {
				t.Errorf("CompletedAt = %v with completed %v", p.CompletedAt, tt.wantCompleted)
			}
		})
	}

	c, err := svc.Course(ctx, "user-1", course.ID)
	if err != nil {
		t.Fatalf("Course failed: %v", err)
	}
	if c.Progress == nil || c.Progress.CurrentModule != 3 || len(c.Modules) != 3 {
		t.Errorf("course = progress %+v, %d modules", c.Progress, len(c.Modules))
	}

	if _, err := svc.Course(ctx, "user-1", uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Course(unknown) error = %v, want ErrNotFound", err)
	}
	if _, err := svc.UpdateCourseProgress(ctx, "user-1", uuid.New(), 0, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateCourseProgress(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestOnboard(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()

	height, weight, age := 180.0, 75.0, 30
	male, active := "male", "active"
	p, err := svc.Onboard(ctx, "user-1", OnboardingInput{
		Height: &height, Weight: &weight, Age: &age, Gender: &male, ActivityLevel: &active,
	})
	if err != nil {
		t.Fatalf("Onboard failed: %v", err)
	}
	if p.BMR != 1730 || p.TDEE != 2984 {
		t.Errorf("BMR/TDEE = %v/%v, want 1730/2984", p.BMR, p.TDEE)
	}
	if p.WorkoutDays != 4 {
		t.Errorf("WorkoutDays = %d, want 4", p.WorkoutDays)
	}

	view, err := svc.Profile(ctx, "user-1")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if !view.User.OnboardingComplete || view.Profile == nil || *view.Profile.Height != 180 {
		t.Errorf("profile view = %+v / %+v", view.User, view.Profile)
	}

	if _, err := db.GetActiveJourney(ctx, "user-1"); err != nil {
		t.Errorf("no journey after onboarding: %v", err)
	}
	n, err := db.CountHabits(ctx, "user-1")
	if err != nil || n != 14 {
		t.Errorf("CountHabits = %d, %v, want 14", n, err)
	}

	// Onboarding again keeps the journey and habits.
	if _, err := svc.Onboard(ctx, "user-1", OnboardingInput{}); err != nil {
		t.Fatalf("second Onboard failed: %v", err)
	}
	if n, _ := db.CountHabits(ctx, "user-1"); n != 14 {
		t.Errorf("CountHabits after second onboarding = %d, want 14", n)
	}
}

func TestOnboardDefaults(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	zero := 0.0
	p, err := svc.Onboard(ctx, "user-1", OnboardingInput{Height: &zero})
	if err != nil {
		t.Fatalf("Onboard failed: %v", err)
	}
	if p.BMR != 1758.75 || p.TDEE != 2726 {
		t.Errorf("BMR/TDEE = %v/%v, want 1758.75/2726", p.BMR, p.TDEE)
	}
	if p.Height != nil || p.Weight != nil || p.Age != nil {
		t.Errorf("missing fields stored: %+v", p)
	}
}

func TestProfileUnknownUser(t *testing.T) {
	svc, _, _ := setupService(t)
	if _, err := svc.Profile(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Profile error = %v, want ErrNotFound", err)
	}
}
