// ABOUTME: Export of a user's journey history.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/recomp/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for one user's journey.
type ExportData struct {
	Version    string         `json:"version" yaml:"version"`
	ExportedAt time.Time      `json:"exported_at" yaml:"exported_at"`
	Tool       string         `json:"tool" yaml:"tool"`
	UserID     string         `json:"user_id" yaml:"user_id"`
	StartDate  time.Time      `json:"start_date" yaml:"start_date"`
	CurrentDay int            `json:"current_day" yaml:"current_day"`
	Phase      models.Phase   `json:"phase" yaml:"phase"`
	Habits     []ExportHabit  `json:"habits" yaml:"habits"`
	Days       []ExportDay    `json:"days" yaml:"days"`
	Lessons    []ExportLesson `json:"lessons,omitempty" yaml:"lessons,omitempty"`
}

// ExportHabit is a habit catalog entry in an export.
type ExportHabit struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// ExportDay summarizes one journey day.
type ExportDay struct {
	Day           int     `json:"day" yaml:"day"`
	WorkoutType   string  `json:"workout_type,omitempty" yaml:"workout_type,omitempty"`
	WorkoutStatus string  `json:"workout_status,omitempty" yaml:"workout_status,omitempty"`
	SetsCompleted int     `json:"sets_completed" yaml:"sets_completed"`
	Calories      float64 `json:"calories" yaml:"calories"`
	Protein       float64 `json:"protein" yaml:"protein"`
	Meals         int     `json:"meals" yaml:"meals"`
	Score         int     `json:"dopamine_score" yaml:"dopamine_score"`
	GoodHabits    int     `json:"good_habits" yaml:"good_habits"`
	BadHabits     int     `json:"bad_habits" yaml:"bad_habits"`
	Streak        int     `json:"streak" yaml:"streak"`
}

// ExportLesson records a completed mindset lesson.
type ExportLesson struct {
	Title       string    `json:"title" yaml:"title"`
	CompletedAt time.Time `json:"completed_at" yaml:"completed_at"`
}

// GetUserData collects a user's active journey history for export.
func (d *DB) GetUserData(ctx context.Context, userID string) (*ExportData, error) {
	j, err := d.GetActiveJourney(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get journey: %w", err)
	}

	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "recomp",
		UserID:     userID,
		StartDate:  j.StartDate,
		CurrentDay: j.CurrentDay,
		Phase:      j.Phase,
	}

	habits, err := d.ListActiveHabits(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, h := range habits {
		eh := ExportHabit{Name: h.Name, Type: string(h.Type)}
		if h.Category != nil {
			eh.Category = *h.Category
		}
		data.Habits = append(data.Habits, eh)
	}

	for day := 1; day <= j.CurrentDay; day++ {
		ed, ok, err := d.exportDay(ctx, userID, j, day)
		if err != nil {
			return nil, err
		}
		if ok {
			data.Days = append(data.Days, ed)
		}
	}

	progress, err := d.ListMindsetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, p := range progress {
		if !p.IsCompleted || p.CompletedAt == nil {
			continue
		}
		l, err := d.GetLesson(ctx, p.LessonID)
		if err != nil {
			return nil, err
		}
		data.Lessons = append(data.Lessons, ExportLesson{Title: l.Title, CompletedAt: *p.CompletedAt})
	}

	return data, nil
}

// exportDay summarizes one day. It reports false when nothing was recorded.
func (d *DB) exportDay(ctx context.Context, userID string, j *models.Journey, day int) (ExportDay, bool, error) {
	ed := ExportDay{Day: day}
	found := false

	w, err := d.GetWorkoutSessionForDay(ctx, userID, j.ID, day)
	switch {
	case err == nil:
		found = true
		ed.WorkoutType = string(w.WorkoutType)
		ed.WorkoutStatus = string(w.Status)
		for _, e := range w.Exercises {
			for _, s := range e.Sets {
				if s.IsCompleted {
					ed.SetsCompleted++
				}
			}
		}
	case !errors.Is(err, ErrNotFound):
		return ed, false, err
	}

	p, err := d.GetNutritionPlanForDay(ctx, userID, j.ID, day)
	switch {
	case err == nil:
		found = true
		ed.Meals = len(p.Logs)
		for _, l := range p.Logs {
			ed.Calories += l.Calories
			ed.Protein += l.Protein
		}
	case !errors.Is(err, ErrNotFound):
		return ed, false, err
	}

	dd, err := d.GetDopamineDailyForDay(ctx, userID, j.ID, day)
	switch {
	case err == nil:
		found = true
		ed.Score = dd.Score
		ed.GoodHabits = dd.GoodCount
		ed.BadHabits = dd.BadCount
		ed.Streak = dd.StreakDays
	case !errors.Is(err, ErrNotFound):
		return ed, false, err
	}

	return ed, found, nil
}

// ExportJSON exports a user's history as JSON.
func (d *DB) ExportJSON(ctx context.Context, userID string) ([]byte, error) {
	data, err := d.GetUserData(ctx, userID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports a user's history as YAML.
func (d *DB) ExportYAML(ctx context.Context, userID string) ([]byte, error) {
	data, err := d.GetUserData(ctx, userID)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ExportMarkdown exports a user's history as a Markdown report.
func (d *DB) ExportMarkdown(ctx context.Context, userID string) (string, error) {
	data, err := d.GetUserData(ctx, userID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# RECOMP Export - %s\n\n", data.ExportedAt.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Started: %s | Day %d of 90 | Phase: %s\n\n",
		data.StartDate.Format("2006-01-02"), data.CurrentDay, data.Phase))

	if len(data.Days) > 0 {
		sb.WriteString("## Days\n\n")
		sb.WriteString("| Day | Workout | Sets | Calories | Protein | Score | Good | Bad | Streak |\n")
		sb.WriteString("|-----|---------|------|----------|---------|-------|------|-----|--------|\n")
		for _, day := range data.Days {
			workout := "-"
			if day.WorkoutType != "" {
				workout = fmt.Sprintf("%s (%s)", day.WorkoutType, day.WorkoutStatus)
			}
			sb.WriteString(fmt.Sprintf("| %d | %s | %d | %.0f | %.0f | %d | %d | %d | %d |\n",
				day.Day, workout, day.SetsCompleted, day.Calories, day.Protein,
				day.Score, day.GoodHabits, day.BadHabits, day.Streak))
		}
		sb.WriteString("\n")
	}

	if len(data.Habits) > 0 {
		sb.WriteString("## Habits\n\n")
		for _, h := range data.Habits {
			sb.WriteString(fmt.Sprintf("- %s (%s)\n", h.Name, h.Type))
		}
		sb.WriteString("\n")
	}

	if len(data.Lessons) > 0 {
		sb.WriteString("## Lessons Completed\n\n")
		for _, l := range data.Lessons {
			sb.WriteString(fmt.Sprintf("- %s (%s)\n", l.Title, l.CompletedAt.Format("2006-01-02")))
		}
	}

	return sb.String(), nil
}
