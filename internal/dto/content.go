// ABOUTME: JSON projections for water, quotes, courses and the user profile.
// ABOUTME: Course listings carry module outlines; details carry module content.
package dto

import (
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/today"
)

type WaterLogDTO struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	LoggedAt string  `json:"loggedAt"`
}

type WaterDTO struct {
	TotalLiters  float64       `json:"totalLiters"`
	TargetLiters float64       `json:"targetLiters"`
	Logs         []WaterLogDTO `json:"logs"`
}

func WaterLog(l *models.WaterLog) WaterLogDTO {
	return WaterLogDTO{ID: l.ID.String(), Amount: l.Amount, LoggedAt: iso(l.LoggedAt)}
}

func Water(v *today.WaterView) WaterDTO {
	out := WaterDTO{TotalLiters: v.TotalLiters, TargetLiters: v.TargetLiters, Logs: make([]WaterLogDTO, 0, len(v.Logs))}
	for _, l := range v.Logs {
		out.Logs = append(out.Logs, WaterLog(l))
	}
	return out
}

type QuoteDTO struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Author   *string `json:"author"`
	Category *string `json:"category"`
	IsSaved  bool    `json:"isSaved"`
}

func Quotes(quotes []today.QuoteView) []QuoteDTO {
	out := make([]QuoteDTO, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, QuoteDTO{
			ID:       q.ID.String(),
			Text:     q.Text,
			Author:   q.Author,
			Category: q.Category,
			IsSaved:  q.IsSaved,
		})
	}
	return out
}

type ModuleOutlineDTO struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Duration   int    `json:"duration"`
	OrderIndex int    `json:"orderIndex"`
}

type CourseDTO struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   *string            `json:"description"`
	Category      *string            `json:"category"`
	Difficulty    *string            `json:"difficulty"`
	Duration      int                `json:"duration"`
	ImageURL      *string            `json:"imageUrl"`
	ModulesCount  int                `json:"modulesCount"`
	CurrentModule int                `json:"currentModule"`
	IsCompleted   bool               `json:"isCompleted"`
	IsStarted     bool               `json:"isStarted"`
	Modules       []ModuleOutlineDTO `json:"modules"`
}

// Course projects a course for listings. Courses without progress are not started.
func Course(c *models.BrainCourse) CourseDTO {
	out := CourseDTO{
		ID:           c.ID.String(),
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		Difficulty:   c.Difficulty,
		Duration:     c.Duration,
		ImageURL:     c.ImageURL,
		ModulesCount: len(c.Modules),
		IsStarted:    c.Progress != nil,
		Modules:      make([]ModuleOutlineDTO, 0, len(c.Modules)),
	}
	if c.Progress != nil {
		out.CurrentModule = c.Progress.CurrentModule
		out.IsCompleted = c.Progress.IsCompleted
	}
	for _, m := range c.Modules {
		out.Modules = append(out.Modules, ModuleOutlineDTO{ID: m.ID.String(), Title: m.Title, Duration: m.Duration, OrderIndex: m.OrderIndex})
	}
	return out
}

func Courses(courses []*models.BrainCourse) []CourseDTO {
	out := make([]CourseDTO, 0, len(courses))
	for _, c := range courses {
		out = append(out, Course(c))
	}
	return out
}

type ModuleDTO struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	VideoURL   *string `json:"videoUrl"`
	Duration   int     `json:"duration"`
	OrderIndex int     `json:"orderIndex"`
}

type CourseDetailDTO struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   *string     `json:"description"`
	Category      *string     `json:"category"`
	Difficulty    *string     `json:"difficulty"`
	Duration      int         `json:"duration"`
	ImageURL      *string     `json:"imageUrl"`
	CurrentModule int         `json:"currentModule"`
	IsCompleted   bool        `json:"isCompleted"`
	Modules       []ModuleDTO `json:"modules"`
}

func CourseDetail(c *models.BrainCourse) CourseDetailDTO {
	out := CourseDetailDTO{
		ID:          c.ID.String(),
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Difficulty:  c.Difficulty,
		Duration:    c.Duration,
		ImageURL:    c.ImageURL,
		Modules:     make([]ModuleDTO, 0, len(c.Modules)),
	}
	if c.Progress != nil {
		out.CurrentModule = c.Progress.CurrentModule
		out.IsCompleted = c.Progress.IsCompleted
	}
	for _, m := range c.Modules {
		out.Modules = append(out.Modules, ModuleDTO{
			ID:         m.ID.String(),
			Title:      m.Title,
			Content:    m.Content,
			VideoURL:   m.VideoURL,
			Duration:   m.Duration,
			OrderIndex: m.OrderIndex,
		})
	}
	return out
}

type UserDTO struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	MemberSince string  `json:"memberSince"`
}

type ProfileDTO struct {
	Height               *float64 `json:"height"`
	Weight               *float64 `json:"weight"`
	TargetWeight         *float64 `json:"targetWeight"`
	Age                  *int     `json:"age"`
	Gender               *string  `json:"gender"`
	ActivityLevel        *string  `json:"activityLevel"`
	FitnessGoal          *string  `json:"fitnessGoal"`
	ExperienceLevel      *string  `json:"experienceLevel"`
	WorkoutDays          int      `json:"workoutDays"`
	PreferredWorkoutTime *string  `json:"preferredWorkoutTime"`
	BMR                  float64  `json:"bmr"`
	TDEE                 float64  `json:"tdee"`
}

type UserProfileDTO struct {
	User    UserDTO     `json:"user"`
	Profile *ProfileDTO `json:"profile"`
}

// UserProfile projects a user and their profile; the profile is null until onboarding.
func UserProfile(v *today.ProfileView) UserProfileDTO {
	out := UserProfileDTO{User: UserDTO{
		ID:          v.User.ID,
		Name:        v.User.Name,
		Email:       v.User.Email,
		MemberSince: iso(v.User.CreatedAt),
	}}
	if p := v.Profile; p != nil {
		out.Profile = &ProfileDTO{
			Height:               p.Height,
			Weight:               p.Weight,
			TargetWeight:         p.TargetWeight,
			Age:                  p.Age,
			Gender:               p.Gender,
			ActivityLevel:        p.ActivityLevel,
			FitnessGoal:          p.FitnessGoal,
			ExperienceLevel:      p.ExperienceLevel,
			WorkoutDays:          p.WorkoutDays,
			PreferredWorkoutTime: p.PreferredWorkoutTime,
			BMR:                  p.BMR,
			TDEE:                 p.TDEE,
		}
	}
	return out
}
