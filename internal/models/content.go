// ABOUTME: Reference content models: mindset lessons, quotes and brain courses.
// ABOUTME: Catalog rows are global; progress and bookmarks are per user.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MindsetLesson is a catalog lesson that unlocks on a journey day.
type MindsetLesson struct {
	ID          uuid.UUID
	Title       string
	Description *string
	Content     string
	UnlockDay   int
	OrderIndex  int
	Category    *string
	BrainRegion *string
	Duration    int
}

// MindsetProgress is a user's unlock/completion state for a lesson.
type MindsetProgress struct {
	ID          uuid.UUID
	UserID      string
	LessonID    uuid.UUID
	IsUnlocked  bool
	IsCompleted bool
	UnlockedAt  *time.Time
	CompletedAt *time.Time
}

// LessonWithProgress pairs a lesson with the user's progress row, if any.
type LessonWithProgress struct {
	Lesson   MindsetLesson
	Progress *MindsetProgress
}

// Quote is a motivational quote.
type Quote struct {
	ID       uuid.UUID
	Text     string
	Author   *string
	Category *string
	IsActive bool
}

// BrainCourse is a multi-module course.
type BrainCourse struct {
	ID          uuid.UUID
	Title       string
	Description *string
	Category    *string
	Difficulty  *string
	Duration    int
	ImageURL    *string
	OrderIndex  int
	IsActive    bool
	Modules     []CourseModule
	Progress    *CourseProgress // The requesting user's progress, if any
}

// CourseModule is one module of a course.
type CourseModule struct {
	ID         uuid.UUID
	CourseID   uuid.UUID
	Title      string
	Content    string
	VideoURL   *string
	Duration   int
	OrderIndex int
}

// CourseProgress is a user's position in a course.
type CourseProgress struct {
	UserID        string
	CourseID      uuid.UUID
	CurrentModule int
	IsCompleted   bool
	CompletedAt   *time.Time
}
