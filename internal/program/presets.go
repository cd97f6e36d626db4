// ABOUTME: Preset habit catalogs seeded for new users.
// ABOUTME: The daily provisioner uses a short list; onboarding uses the full list.
package program

import "github.com/harperreed/recomp/internal/models"

// HabitPreset describes a habit seeded into a user's catalog.
type HabitPreset struct {
	Name     string
	Type     models.HabitType
	Category string
}

// DefaultHabits are seeded the first time a user's dopamine record is created
// and they have no habits yet.
var DefaultHabits = []HabitPreset{
	{"Morning Workout", models.HabitGood, "exercise"},
	{"8 Hours Sleep", models.HabitGood, "sleep"},
	{"Hit Protein Goal", models.HabitGood, "nutrition"},
	{"10 Min Meditation", models.HabitGood, "mindfulness"},
	{"10K Steps", models.HabitGood, "exercise"},
	{"Social Media Scrolling", models.HabitBad, "vice"},
	{"Late Night Snacking", models.HabitBad, "nutrition"},
	{"Skipped Workout", models.HabitBad, "exercise"},
	{"Alcohol", models.HabitBad, "vice"},
	{"Processed Food", models.HabitBad, "nutrition"},
}

// OnboardingHabits are seeded when a user completes onboarding without habits.
var OnboardingHabits = []HabitPreset{
	{"Morning Workout", models.HabitGood, "exercise"},
	{"8 Hours Sleep", models.HabitGood, "sleep"},
	{"Hit Protein Goal", models.HabitGood, "nutrition"},
	{"10 Min Meditation", models.HabitGood, "mindfulness"},
	{"10K Steps", models.HabitGood, "exercise"},
	{"Cold Shower", models.HabitGood, "mindfulness"},
	{"Read 20 Pages", models.HabitGood, "productivity"},
	{"Drink 3L Water", models.HabitGood, "nutrition"},
	{"Social Media Scrolling", models.HabitBad, "vice"},
	{"Late Night Snacking", models.HabitBad, "nutrition"},
	{"Skipped Workout", models.HabitBad, "exercise"},
	{"Alcohol", models.HabitBad, "vice"},
	{"Processed Food", models.HabitBad, "nutrition"},
	{"Binge Watching", models.HabitBad, "vice"},
}

// BuildHabits turns presets into preset habits owned by userID.
func BuildHabits(userID string, presets []HabitPreset) []*models.Habit {
	out := make([]*models.Habit, 0, len(presets))
	for _, p := range presets {
		h := models.NewHabit(userID, p.Name, p.Type).WithCategory(p.Category)
		h.IsPreset = true
		out = append(out, h)
	}
	return out
}
