// ABOUTME: Habit catalog, habit log and dopamine daily models.
// ABOUTME: The daily record aggregates score, counts, streak and bonus flags.
package models

import (
	"time"

	"github.com/google/uuid"
)

// HabitType is either good (earns points) or bad (costs points).
type HabitType string

const (
	HabitGood HabitType = "good"
	HabitBad  HabitType = "bad"
)

// IsValidHabitType checks if a string is good or bad.
func IsValidHabitType(s string) bool {
	return s == string(HabitGood) || s == string(HabitBad)
}

// Habit is an entry in a user's habit catalog.
type Habit struct {
	ID           uuid.UUID
	UserID       string
	Name         string
	Description  *string
	Type         HabitType
	Category     *string
	DopamineType string
	Icon         *string
	Color        *string
	IsPreset     bool
	IsActive     bool
	CreatedAt    time.Time
}

// NewHabit creates an active custom habit. DopamineType follows the habit type.
func NewHabit(userID, name string, ht HabitType) *Habit {
	dt := "natural"
	if ht == HabitBad {
		dt = "artificial"
	}
	return &Habit{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		Type:         ht,
		DopamineType: dt,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
}

// WithCategory sets the habit category.
func (h *Habit) WithCategory(c string) *Habit {
	h.Category = &c
	return h
}

// HabitLog records one occurrence of a habit.
type HabitLog struct {
	ID            uuid.UUID
	UserID        string
	HabitID       uuid.UUID
	DailyID       uuid.UUID
	Type          HabitType
	LoggedAt      time.Time
	Notes         *string
	SwapFromLogID *uuid.UUID
	HabitName     string // Populated when listing a day's feed
}

// DopamineDaily is the per-day habit scoring record.
type DopamineDaily struct {
	ID          uuid.UUID
	UserID      string
	JourneyID   uuid.UUID
	DayNumber   int
	Score       int
	GoodCount   int
	BadCount    int
	StreakDays  int
	FirstWin    bool
	SwapBonus   bool
	StreakBonus bool
	PerfectDay  bool
	CreatedAt   time.Time
	Logs        []HabitLog // Newest first
}

// NewDopamineDaily creates a zeroed daily record with a seeded streak.
func NewDopamineDaily(userID string, journeyID uuid.UUID, dayNumber, streakDays int) *DopamineDaily {
	return &DopamineDaily{
		ID:         uuid.New(),
		UserID:     userID,
		JourneyID:  journeyID,
		DayNumber:  dayNumber,
		StreakDays: streakDays,
		CreatedAt:  time.Now(),
	}
}
