// ABOUTME: Tests for habit and dopamine daily models.
// ABOUTME: Validates habit type parsing and constructor defaults.
package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewHabitDopamineType(t *testing.T) {
	good := NewHabit("user-1", "Cold Shower", HabitGood)
	if good.DopamineType != "natural" {
		t.Errorf("good DopamineType = %s, want natural", good.DopamineType)
	}
	if !good.IsActive {
		t.Error("expected new habit to be active")
	}
	if good.IsPreset {
		t.Error("expected custom habit not to be a preset")
	}

	bad := NewHabit("user-1", "Doomscrolling", HabitBad).WithCategory("vice")
	if bad.DopamineType != "artificial" {
		t.Errorf("bad DopamineType = %s, want artificial", bad.DopamineType)
	}
	if bad.Category == nil || *bad.Category != "vice" {
		t.Error("expected Category to be vice")
	}
}

func TestIsValidHabitType(t *testing.T) {
	for _, s := range []string{"good", "bad"} {
		if !IsValidHabitType(s) {
			t.Errorf("IsValidHabitType(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "neutral", "GOOD"} {
		if IsValidHabitType(s) {
			t.Errorf("IsValidHabitType(%q) = true, want false", s)
		}
	}
}

func TestNewDopamineDaily(t *testing.T) {
	d := NewDopamineDaily("user-1", uuid.New(), 3, 2)

	if d.Score != 0 || d.GoodCount != 0 || d.BadCount != 0 {
		t.Errorf("expected zeroed counters, got score=%d good=%d bad=%d", d.Score, d.GoodCount, d.BadCount)
	}
	if d.StreakDays != 2 {
		t.Errorf("StreakDays = %d, want 2", d.StreakDays)
	}
	if d.FirstWin || d.SwapBonus || d.StreakBonus || d.PerfectDay {
		t.Error("expected all bonus flags to start false")
	}
}
