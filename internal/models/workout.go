// ABOUTME: Workout session, exercise and set models for daily training.
// ABOUTME: Sessions own ordered exercises which own ordered sets.
package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutType is a slot in the weekly training rotation.
type WorkoutType string

const (
	WorkoutPush WorkoutType = "push"
	WorkoutPull WorkoutType = "pull"
	WorkoutLegs WorkoutType = "legs"
	WorkoutRest WorkoutType = "rest"
)

// WorkoutStatus tracks a session through the day.
type WorkoutStatus string

const (
	StatusPending    WorkoutStatus = "pending"
	StatusInProgress WorkoutStatus = "in_progress"
	StatusCompleted  WorkoutStatus = "completed"
	StatusSkipped    WorkoutStatus = "skipped"
)

// IsValidWorkoutStatus checks if a string is a known session status.
func IsValidWorkoutStatus(s string) bool {
	switch WorkoutStatus(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

// WorkoutSession is the training record for one journey day.
type WorkoutSession struct {
	ID              uuid.UUID
	UserID          string
	JourneyID       uuid.UUID
	DayNumber       int
	WorkoutType     WorkoutType
	Status          WorkoutStatus
	ScheduledAt     *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	DurationMinutes *int
	Notes           *string
	CreatedAt       time.Time
	Exercises       []Exercise // Populated when fetching full session
}

// NewWorkoutSession creates a pending session for the given day.
func NewWorkoutSession(userID string, journeyID uuid.UUID, dayNumber int, wt WorkoutType) *WorkoutSession {
	return &WorkoutSession{
		ID:          uuid.New(),
		UserID:      userID,
		JourneyID:   journeyID,
		DayNumber:   dayNumber,
		WorkoutType: wt,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}
}

// Exercise is one movement within a session.
type Exercise struct {
	ID          uuid.UUID
	SessionID   uuid.UUID
	Name        string
	TargetSets  int
	TargetReps  string
	RestSeconds int
	OrderIndex  int
	Notes       *string
	Sets        []ExerciseSet
}

// ExerciseSet is a single set of an exercise.
type ExerciseSet struct {
	ID          uuid.UUID
	ExerciseID  uuid.UUID
	SetNumber   int
	Weight      *float64
	Reps        *int
	RPE         *float64
	IsCompleted bool
	CompletedAt *time.Time
	Notes       *string
}

// SetUpdate is a partial edit of an ExerciseSet. Nil fields are left alone.
type SetUpdate struct {
	SetID       uuid.UUID
	Weight      *float64
	Reps        *int
	RPE         *float64
	IsCompleted *bool
	Notes       *string
}
