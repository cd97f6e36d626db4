// ABOUTME: Tests for the journey clock, rotation, targets and energy estimates.
// ABOUTME: Covers day clamping, phase partition and rotation periodicity.
package program

import (
	"testing"
	"time"

	"github.com/harperreed/recomp/internal/models"
)

func TestDayNumberSameInstant(t *testing.T) {
	now := time.Now()
	if got := DayNumber(now, now, time.Local); got != 1 {
		t.Errorf("DayNumber(now, now) = %d, want 1", got)
	}
}

func TestDayNumber(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, loc)

	tests := []struct {
		name  string
		start time.Time
		want  int
	}{
		{"same day earlier", time.Date(2025, 3, 10, 0, 1, 0, 0, loc), 1},
		{"same day later", time.Date(2025, 3, 10, 23, 0, 0, 0, loc), 1},
		{"yesterday late night", time.Date(2025, 3, 9, 23, 59, 0, 0, loc), 2},
		{"five days ago", now.AddDate(0, 0, -5), 6},
		{"day 90 exactly", now.AddDate(0, 0, -89), 90},
		{"past program end", now.AddDate(0, 0, -200), 90},
		{"future start", now.AddDate(0, 0, 3), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayNumber(tt.start, now, loc); got != tt.want {
				t.Errorf("DayNumber() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDayNumberAlwaysInRange(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for back := 0; back < 400; back += 7 {
		d := DayNumber(now.AddDate(0, 0, -back), now, time.UTC)
		if d < 1 || d > TotalDays {
			t.Fatalf("DayNumber(%d days back) = %d, out of range", back, d)
		}
	}
}

func TestDayNumberAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// Spring forward happens on 2025-03-09.
	start := time.Date(2025, 3, 8, 22, 0, 0, 0, loc)
	now := time.Date(2025, 3, 10, 0, 30, 0, 0, loc)
	if got := DayNumber(start, now, loc); got != 3 {
		t.Errorf("DayNumber across DST = %d, want 3", got)
	}
}

func TestDayNumberUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 2025-01-01 20:00 UTC is already 2025-01-02 in Tokyo.
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)

	if got := DayNumber(start, now, time.UTC); got != 1 {
		t.Errorf("UTC DayNumber = %d, want 1", got)
	}
	if got := DayNumber(start, now, tokyo); got != 2 {
		t.Errorf("JST DayNumber = %d, want 2", got)
	}
}

func TestPhasePartition(t *testing.T) {
	for d := 1; d <= TotalDays; d++ {
		var want models.Phase
		switch {
		case d <= 30:
			want = models.PhaseFoundation
		case d <= 60:
			want = models.PhaseBuild
		default:
			want = models.PhaseOptimize
		}
		if got := PhaseFor(d); got != want {
			t.Errorf("PhaseFor(%d) = %s, want %s", d, got, want)
		}
	}

	boundaries := map[int]models.Phase{
		30: models.PhaseFoundation,
		31: models.PhaseBuild,
		60: models.PhaseBuild,
		61: models.PhaseOptimize,
	}
	for d, want := range boundaries {
		if got := PhaseFor(d); got != want {
			t.Errorf("PhaseFor(%d) = %s, want %s", d, got, want)
		}
	}
}

func TestWorkoutRotation(t *testing.T) {
	for d := 1; d+7 <= TotalDays; d++ {
		if WorkoutTypeFor(d) != WorkoutTypeFor(d+7) {
			t.Errorf("WorkoutTypeFor(%d) != WorkoutTypeFor(%d)", d, d+7)
		}
	}

	tests := map[int]models.WorkoutType{
		1: models.WorkoutPush,
		2: models.WorkoutPull,
		3: models.WorkoutLegs,
		4: models.WorkoutRest,
		5: models.WorkoutPush,
		6: models.WorkoutPull,
		7: models.WorkoutLegs,
		8: models.WorkoutPush,
	}
	for d, want := range tests {
		if got := WorkoutTypeFor(d); got != want {
			t.Errorf("WorkoutTypeFor(%d) = %s, want %s", d, got, want)
		}
	}
}

func TestTemplates(t *testing.T) {
	for _, wt := range []models.WorkoutType{models.WorkoutPush, models.WorkoutPull, models.WorkoutLegs} {
		tpl := Template(wt)
		if len(tpl) != 5 {
			t.Errorf("Template(%s) has %d exercises, want 5", wt, len(tpl))
		}
		for _, ex := range tpl {
			if ex.TargetSets <= 0 || ex.RestSeconds <= 0 || ex.TargetReps == "" {
				t.Errorf("Template(%s) has incomplete exercise %+v", wt, ex)
			}
		}
	}

	if tpl := Template(models.WorkoutRest); tpl != nil {
		t.Errorf("Template(rest) = %v, want nil", tpl)
	}

	// Returned slices are copies.
	tpl := Template(models.WorkoutPush)
	tpl[0].Name = "mutated"
	if Template(models.WorkoutPush)[0].Name != "Bench Press" {
		t.Error("Template returned a shared slice")
	}
}

func TestNutritionTargetsIncreaseWithPhase(t *testing.T) {
	f := NutritionTargets(models.PhaseFoundation)
	b := NutritionTargets(models.PhaseBuild)
	o := NutritionTargets(models.PhaseOptimize)

	if f.Calories != 2000 || f.Protein != 150 || f.Carbs != 200 || f.Fat != 70 {
		t.Errorf("foundation targets = %+v", f)
	}
	if b.Calories != 2200 || b.Protein != 170 || b.Carbs != 220 || b.Fat != 75 {
		t.Errorf("build targets = %+v", b)
	}
	if o.Calories != 2400 || o.Protein != 180 || o.Carbs != 250 || o.Fat != 80 {
		t.Errorf("optimize targets = %+v", o)
	}
}

func TestJourneyProgress(t *testing.T) {
	tests := []struct {
		day           int
		wantRemaining int
		wantPercent   int
	}{
		{1, 89, 1},
		{6, 84, 7},
		{45, 45, 50},
		{90, 0, 100},
	}
	for _, tt := range tests {
		if got := DaysRemaining(tt.day); got != tt.wantRemaining {
			t.Errorf("DaysRemaining(%d) = %d, want %d", tt.day, got, tt.wantRemaining)
		}
		if got := ProgressPercent(tt.day); got != tt.wantPercent {
			t.Errorf("ProgressPercent(%d) = %d, want %d", tt.day, got, tt.wantPercent)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{5, 5, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.part, tt.whole); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.part, tt.whole, got, tt.want)
		}
	}
}

func TestBMRAndTDEE(t *testing.T) {
	male := BMR(175, 80, 28, "male")
	if male != 1758.75 {
		t.Errorf("male BMR = %v, want 1758.75", male)
	}
	female := BMR(175, 80, 28, "female")
	if female != 1592.75 {
		t.Errorf("female BMR = %v, want 1592.75", female)
	}

	if got := TDEE(male, "moderate"); got != 2726 {
		t.Errorf("TDEE moderate = %v, want 2726", got)
	}
	if got := TDEE(male, "unknown"); got != 2726 {
		t.Errorf("TDEE unknown level = %v, want moderate fallback 2726", got)
	}
	if got := TDEE(male, "active"); got != 3034 {
		t.Errorf("TDEE active = %v, want 3034", got)
	}
}
