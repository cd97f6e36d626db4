// ABOUTME: Journey and User models for the 90-day program.
// ABOUTME: A journey anchors every per-day record to a start date.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Phase is one of the three 30-day program segments.
type Phase string

const (
	PhaseFoundation Phase = "foundation"
	PhaseBuild      Phase = "build"
	PhaseOptimize   Phase = "optimize"
)

// User is the local record of an authenticated identity.
type User struct {
	ID                 string
	Email              *string
	Name               *string
	OnboardingComplete bool
	CreatedAt          time.Time
}

// Journey is a user's 90-day program instance.
type Journey struct {
	ID          uuid.UUID
	UserID      string
	StartDate   time.Time
	CurrentDay  int
	Phase       Phase
	IsActive    bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// NewJourney creates an active journey starting at the given instant.
func NewJourney(userID string, start time.Time) *Journey {
	return &Journey{
		ID:         uuid.New(),
		UserID:     userID,
		StartDate:  start,
		CurrentDay: 1,
		Phase:      PhaseFoundation,
		IsActive:   true,
		CreatedAt:  start,
	}
}

// Profile holds onboarding answers and derived energy estimates.
type Profile struct {
	UserID               string
	Height               *float64
	Weight               *float64
	TargetWeight         *float64
	Age                  *int
	Gender               *string
	ActivityLevel        *string
	FitnessGoal          *string
	ExperienceLevel      *string
	WorkoutDays          int
	PreferredWorkoutTime *string
	BMR                  float64
	TDEE                 float64
	UpdatedAt            time.Time
}
