// ABOUTME: Weekly workout rotation and per-type exercise templates.
// ABOUTME: Templates are instantiated once when a day's session is created.
package program

import "github.com/harperreed/recomp/internal/models"

// Rotation is the 7-day training cycle, indexed by (day-1) mod 7.
var Rotation = [7]models.WorkoutType{
	models.WorkoutPush,
	models.WorkoutPull,
	models.WorkoutLegs,
	models.WorkoutRest,
	models.WorkoutPush,
	models.WorkoutPull,
	models.WorkoutLegs,
}

// WorkoutTypeFor returns the rotation slot for a day number.
func WorkoutTypeFor(day int) models.WorkoutType {
	idx := (day - 1) % len(Rotation)
	if idx < 0 {
		idx += len(Rotation)
	}
	return Rotation[idx]
}

// ExerciseTemplate is a prescribed exercise for a workout type.
type ExerciseTemplate struct {
	Name        string
	TargetSets  int
	TargetReps  string
	RestSeconds int
}

var templates = map[models.WorkoutType][]ExerciseTemplate{
	models.WorkoutPush: {
		{Name: "Bench Press", TargetSets: 4, TargetReps: "6-8", RestSeconds: 120},
		{Name: "Overhead Press", TargetSets: 3, TargetReps: "8-10", RestSeconds: 90},
		{Name: "Incline Dumbbell Press", TargetSets: 3, TargetReps: "10-12", RestSeconds: 90},
		{Name: "Lateral Raises", TargetSets: 3, TargetReps: "12-15", RestSeconds: 60},
		{Name: "Tricep Pushdowns", TargetSets: 3, TargetReps: "12-15", RestSeconds: 60},
	},
	models.WorkoutPull: {
		{Name: "Deadlift", TargetSets: 4, TargetReps: "5-6", RestSeconds: 180},
		{Name: "Pull-ups", TargetSets: 3, TargetReps: "8-10", RestSeconds: 90},
		{Name: "Barbell Rows", TargetSets: 3, TargetReps: "8-10", RestSeconds: 90},
		{Name: "Face Pulls", TargetSets: 3, TargetReps: "15-20", RestSeconds: 60},
		{Name: "Bicep Curls", TargetSets: 3, TargetReps: "12-15", RestSeconds: 60},
	},
	models.WorkoutLegs: {
		{Name: "Squats", TargetSets: 4, TargetReps: "6-8", RestSeconds: 180},
		{Name: "Romanian Deadlifts", TargetSets: 3, TargetReps: "8-10", RestSeconds: 90},
		{Name: "Leg Press", TargetSets: 3, TargetReps: "10-12", RestSeconds: 90},
		{Name: "Leg Curls", TargetSets: 3, TargetReps: "12-15", RestSeconds: 60},
		{Name: "Calf Raises", TargetSets: 4, TargetReps: "15-20", RestSeconds: 60},
	},
	models.WorkoutRest: nil,
}

// Template returns a copy of the exercise template for a workout type.
// Rest days and unknown types return nil.
func Template(wt models.WorkoutType) []ExerciseTemplate {
	t := templates[wt]
	if len(t) == 0 {
		return nil
	}
	out := make([]ExerciseTemplate, len(t))
	copy(out, t)
	return out
}
