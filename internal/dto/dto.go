// ABOUTME: JSON projections of domain records for API and MCP clients.
// ABOUTME: Pure functions computing derived progress, totals and remaining values.
package dto

import (
	"time"

	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/program"
	"github.com/harperreed/recomp/internal/today"
)

// isoLayout renders instants as UTC with millisecond precision.
const isoLayout = "2006-01-02T15:04:05.000Z"

func iso(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func isoPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := iso(*t)
	return &s
}

func idPtr(id interface{ String() string }) *string {
	s := id.String()
	return &s
}

type JourneyDTO struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	StartDate       string  `json:"startDate"`
	CurrentDay      int     `json:"currentDay"`
	Phase           string  `json:"phase"`
	IsActive        bool    `json:"isActive"`
	CompletedAt     *string `json:"completedAt"`
	DaysRemaining   int     `json:"daysRemaining"`
	ProgressPercent int     `json:"progressPercent"`
}

// Journey projects a journey with its remaining days and progress.
func Journey(j *models.Journey) JourneyDTO {
	return JourneyDTO{
		ID:              j.ID.String(),
		UserID:          j.UserID,
		StartDate:       iso(j.StartDate),
		CurrentDay:      j.CurrentDay,
		Phase:           string(j.Phase),
		IsActive:        j.IsActive,
		CompletedAt:     isoPtr(j.CompletedAt),
		DaysRemaining:   program.DaysRemaining(j.CurrentDay),
		ProgressPercent: program.ProgressPercent(j.CurrentDay),
	}
}

type ExerciseSetDTO struct {
	ID          string   `json:"id"`
	SetNumber   int      `json:"setNumber"`
	Weight      *float64 `json:"weight"`
	Reps        *int     `json:"reps"`
	RPE         *float64 `json:"rpe"`
	IsCompleted bool     `json:"isCompleted"`
	CompletedAt *string  `json:"completedAt"`
	Notes       *string  `json:"notes"`
}

type ExerciseDTO struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	TargetSets    int              `json:"targetSets"`
	TargetReps    string           `json:"targetReps"`
	RestSeconds   int              `json:"restSeconds"`
	OrderIndex    int              `json:"orderIndex"`
	Notes         *string          `json:"notes"`
	Sets          []ExerciseSetDTO `json:"sets"`
	CompletedSets int              `json:"completedSets"`
	IsComplete    bool             `json:"isComplete"`
}

type WorkoutSessionDTO struct {
	ID                 string        `json:"id"`
	DayNumber          int           `json:"dayNumber"`
	WorkoutType        string        `json:"workoutType"`
	Status             string        `json:"status"`
	ScheduledAt        *string       `json:"scheduledAt"`
	StartedAt          *string       `json:"startedAt"`
	CompletedAt        *string       `json:"completedAt"`
	Duration           *int          `json:"duration"`
	Notes              *string       `json:"notes"`
	Exercises          []ExerciseDTO `json:"exercises"`
	TotalExercises     int           `json:"totalExercises"`
	CompletedExercises int           `json:"completedExercises"`
	ProgressPercent    int           `json:"progressPercent"`
}

// WorkoutSession projects a session. An exercise is complete once its
// completed sets reach the target; rest days report 0 progress.
func WorkoutSession(w *models.WorkoutSession) WorkoutSessionDTO {
	out := WorkoutSessionDTO{
		ID:          w.ID.String(),
		DayNumber:   w.DayNumber,
		WorkoutType: string(w.WorkoutType),
		Status:      string(w.Status),
		ScheduledAt: isoPtr(w.ScheduledAt),
		StartedAt:   isoPtr(w.StartedAt),
		CompletedAt: isoPtr(w.CompletedAt),
		Duration:    w.DurationMinutes,
		Notes:       w.Notes,
		Exercises:   make([]ExerciseDTO, 0, len(w.Exercises)),
	}

	for _, e := range w.Exercises {
		ex := ExerciseDTO{
			ID:          e.ID.String(),
			Name:        e.Name,
			TargetSets:  e.TargetSets,
			TargetReps:  e.TargetReps,
			RestSeconds: e.RestSeconds,
			OrderIndex:  e.OrderIndex,
			Notes:       e.Notes,
			Sets:        make([]ExerciseSetDTO, 0, len(e.Sets)),
		}
		for _, s := range e.Sets {
			if s.IsCompleted {
				ex.CompletedSets++
			}
			ex.Sets = append(ex.Sets, ExerciseSetDTO{
				ID:          s.ID.String(),
				SetNumber:   s.SetNumber,
				Weight:      s.Weight,
				Reps:        s.Reps,
				RPE:         s.RPE,
				IsCompleted: s.IsCompleted,
				CompletedAt: isoPtr(s.CompletedAt),
				Notes:       s.Notes,
			})
		}
		ex.IsComplete = ex.CompletedSets >= ex.TargetSets
		if ex.IsComplete {
			out.CompletedExercises++
		}
		out.Exercises = append(out.Exercises, ex)
	}

	out.TotalExercises = len(out.Exercises)
	out.ProgressPercent = program.Percent(out.CompletedExercises, out.TotalExercises)
	return out
}

type NutritionLogDTO struct {
	ID          string  `json:"id"`
	MealType    string  `json:"mealType"`
	Description *string `json:"description"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	LoggedAt    string  `json:"loggedAt"`
}

type MacrosDTO struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type NutritionPlanDTO struct {
	ID             string            `json:"id"`
	DayNumber      int               `json:"dayNumber"`
	TargetCalories float64           `json:"targetCalories"`
	TargetProtein  float64           `json:"targetProtein"`
	TargetCarbs    float64           `json:"targetCarbs"`
	TargetFat      float64           `json:"targetFat"`
	MealPlan       *string           `json:"mealPlan"`
	Logs           []NutritionLogDTO `json:"logs"`
	Totals         MacrosDTO         `json:"totals"`
	Remaining      MacrosDTO         `json:"remaining"`
}

// NutritionPlan projects a plan with totals summed from its logs. Remaining
// is target minus totals and goes negative when a target is exceeded.
func NutritionPlan(p *models.NutritionPlan) NutritionPlanDTO {
	out := NutritionPlanDTO{
		ID:             p.ID.String(),
		DayNumber:      p.DayNumber,
		TargetCalories: p.Target.Calories,
		TargetProtein:  p.Target.Protein,
		TargetCarbs:    p.Target.Carbs,
		TargetFat:      p.Target.Fat,
		MealPlan:       p.MealPlan,
		Logs:           make([]NutritionLogDTO, 0, len(p.Logs)),
	}
	for _, l := range p.Logs {
		out.Logs = append(out.Logs, NutritionLogDTO{
			ID:          l.ID.String(),
			MealType:    string(l.MealType),
			Description: l.Description,
			Calories:    l.Calories,
			Protein:     l.Protein,
			Carbs:       l.Carbs,
			Fat:         l.Fat,
			LoggedAt:    iso(l.LoggedAt),
		})
		out.Totals.Calories += l.Calories
		out.Totals.Protein += l.Protein
		out.Totals.Carbs += l.Carbs
		out.Totals.Fat += l.Fat
	}
	out.Remaining = MacrosDTO{
		Calories: p.Target.Calories - out.Totals.Calories,
		Protein:  p.Target.Protein - out.Totals.Protein,
		Carbs:    p.Target.Carbs - out.Totals.Carbs,
		Fat:      p.Target.Fat - out.Totals.Fat,
	}
	return out
}

type HabitDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Type        string  `json:"type"`
	Category    *string `json:"category"`
	IsActive    bool    `json:"isActive"`
}

// Habit projects a catalog entry.
func Habit(h *models.Habit) HabitDTO {
	return HabitDTO{
		ID:          h.ID.String(),
		Name:        h.Name,
		Description: h.Description,
		Type:        string(h.Type),
		Category:    h.Category,
		IsActive:    h.IsActive,
	}
}

// HabitDetailDTO is a catalog entry as listed or created through the habits endpoints.
type HabitDetailDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Type         string  `json:"type"`
	Category     *string `json:"category"`
	DopamineType string  `json:"dopamineType"`
	Icon         *string `json:"icon"`
	Color        *string `json:"color"`
	IsPreset     bool    `json:"isPreset"`
}

func HabitDetail(h *models.Habit) HabitDetailDTO {
	return HabitDetailDTO{
		ID:           h.ID.String(),
		Name:         h.Name,
		Description:  h.Description,
		Type:         string(h.Type),
		Category:     h.Category,
		DopamineType: h.DopamineType,
		Icon:         h.Icon,
		Color:        h.Color,
		IsPreset:     h.IsPreset,
	}
}

func HabitDetails(habits []*models.Habit) []HabitDetailDTO {
	out := make([]HabitDetailDTO, 0, len(habits))
	for _, h := range habits {
		out = append(out, HabitDetail(h))
	}
	return out
}

type HabitLogDTO struct {
	ID            string  `json:"id"`
	HabitID       string  `json:"habitId"`
	HabitName     string  `json:"habitName"`
	Type          string  `json:"type"`
	LoggedAt      string  `json:"loggedAt"`
	Notes         *string `json:"notes"`
	SwapFromLogID *string `json:"swapFromLogId"`
}

type AvailableHabitsDTO struct {
	Good []HabitDTO `json:"good"`
	Bad  []HabitDTO `json:"bad"`
}

type DopamineDailyDTO struct {
	ID              string             `json:"id"`
	DayNumber       int                `json:"dayNumber"`
	Score           int                `json:"score"`
	GoodCount       int                `json:"goodCount"`
	BadCount        int                `json:"badCount"`
	StreakDays      int                `json:"streakDays"`
	FirstWin        bool               `json:"firstWin"`
	SwapBonus       bool               `json:"swapBonus"`
	StreakBonus     bool               `json:"streakBonus"`
	PerfectDay      bool               `json:"perfectDay"`
	Logs            []HabitLogDTO      `json:"logs"`
	AvailableHabits AvailableHabitsDTO `json:"availableHabits"`
}

// DopamineDaily projects the day's record, its log feed and the active
// habits split by type.
func DopamineDaily(v *today.DopamineView) DopamineDailyDTO {
	d := v.Daily
	out := DopamineDailyDTO{
		ID:          d.ID.String(),
		DayNumber:   d.DayNumber,
		Score:       d.Score,
		GoodCount:   d.GoodCount,
		BadCount:    d.BadCount,
		StreakDays:  d.StreakDays,
		FirstWin:    d.FirstWin,
		SwapBonus:   d.SwapBonus,
		StreakBonus: d.StreakBonus,
		PerfectDay:  d.PerfectDay,
		Logs:        make([]HabitLogDTO, 0, len(d.Logs)),
		AvailableHabits: AvailableHabitsDTO{
			Good: []HabitDTO{},
			Bad:  []HabitDTO{},
		},
	}
	for _, l := range d.Logs {
		entry := HabitLogDTO{
			ID:        l.ID.String(),
			HabitID:   l.HabitID.String(),
			HabitName: l.HabitName,
			Type:      string(l.Type),
			LoggedAt:  iso(l.LoggedAt),
			Notes:     l.Notes,
		}
		if l.SwapFromLogID != nil {
			entry.SwapFromLogID = idPtr(*l.SwapFromLogID)
		}
		out.Logs = append(out.Logs, entry)
	}
	for _, h := range v.Habits {
		if h.Type == models.HabitGood {
			out.AvailableHabits.Good = append(out.AvailableHabits.Good, Habit(h))
		} else {
			out.AvailableHabits.Bad = append(out.AvailableHabits.Bad, Habit(h))
		}
	}
	return out
}

type MindsetLessonDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Content     string  `json:"content"`
	UnlockDay   int     `json:"unlockDay"`
	Category    *string `json:"category"`
	Duration    int     `json:"duration"`
	IsUnlocked  bool    `json:"isUnlocked"`
	IsCompleted bool    `json:"isCompleted"`
	UnlockedAt  *string `json:"unlockedAt"`
	CompletedAt *string `json:"completedAt"`
}

type MindsetTodayDTO struct {
	CurrentDayLesson *MindsetLessonDTO `json:"currentDayLesson"`
	UnlockedLessons  []MindsetLessonDTO `json:"unlockedLessons"`
	CompletedCount   int                `json:"completedCount"`
	TotalAvailable   int                `json:"totalAvailable"`
}

// MindsetToday projects unlocked lessons. The current day lesson is the one
// whose unlock day equals the view's day, if any.
func MindsetToday(v *today.MindsetView) MindsetTodayDTO {
	out := MindsetTodayDTO{UnlockedLessons: []MindsetLessonDTO{}}
	for _, lp := range v.Lessons {
		l := lp.Lesson
		lesson := MindsetLessonDTO{
			ID:          l.ID.String(),
			Title:       l.Title,
			Description: l.Description,
			Content:     l.Content,
			UnlockDay:   l.UnlockDay,
			Category:    l.Category,
			Duration:    l.Duration,
		}
		if p := lp.Progress; p != nil {
			lesson.IsUnlocked = p.IsUnlocked
			lesson.IsCompleted = p.IsCompleted
			lesson.UnlockedAt = isoPtr(p.UnlockedAt)
			lesson.CompletedAt = isoPtr(p.CompletedAt)
		}

		if lesson.UnlockDay == v.Day && out.CurrentDayLesson == nil {
			current := lesson
			out.CurrentDayLesson = &current
		}
		if lesson.IsCompleted {
			out.CompletedCount++
		}
		if lesson.IsUnlocked {
			out.UnlockedLessons = append(out.UnlockedLessons, lesson)
		}
	}
	out.TotalAvailable = len(out.UnlockedLessons)
	return out
}

type TodayBundleDTO struct {
	Journey   JourneyDTO        `json:"journey"`
	Workout   WorkoutSessionDTO `json:"workout"`
	Nutrition NutritionPlanDTO  `json:"nutrition"`
	Dopamine  DopamineDailyDTO  `json:"dopamine"`
	Mindset   MindsetTodayDTO   `json:"mindset"`
}

// TodayBundle projects every record of the current day.
func TodayBundle(b *today.Bundle) TodayBundleDTO {
	return TodayBundleDTO{
		Journey:   Journey(b.Journey),
		Workout:   WorkoutSession(b.Workout),
		Nutrition: NutritionPlan(b.Nutrition),
		Dopamine:  DopamineDaily(b.Dopamine),
		Mindset:   MindsetToday(b.Mindset),
	}
}
