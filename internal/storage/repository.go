// ABOUTME: Store interface for RECOMP data storage.
// ABOUTME: Defines the contract for journeys, per-day records, habits and reference content.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Store defines the storage interface for RECOMP data.
// This interface allows swapping implementations (e.g., for testing).
type Store interface {
	// User and profile operations
	EnsureUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	SetOnboardingComplete(ctx context.Context, id string) error
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, p *models.Profile) error

	// Journey operations
	CreateJourney(ctx context.Context, j *models.Journey) (bool, error)
	GetActiveJourney(ctx context.Context, userID string) (*models.Journey, error)
	UpdateJourneyDay(ctx context.Context, id uuid.UUID, day int, phase models.Phase) error
	ListActiveJourneys(ctx context.Context) ([]*models.Journey, error)
	MarkJourneyCompleted(ctx context.Context, id uuid.UUID, at time.Time) error

	// Workout operations
	InsertWorkoutSession(ctx context.Context, w *models.WorkoutSession) (bool, error)
	CreateExercise(ctx context.Context, e *models.Exercise) error
	CreateExerciseSet(ctx context.Context, s *models.ExerciseSet) error
	GetWorkoutSession(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error)
	GetWorkoutSessionForDay(ctx context.Context, userID string, journeyID uuid.UUID, day int) (*models.WorkoutSession, error)
	UpdateWorkoutSession(ctx context.Context, w *models.WorkoutSession) error
	GetExerciseSet(ctx context.Context, id uuid.UUID) (*models.ExerciseSet, uuid.UUID, error)
	UpdateExerciseSet(ctx context.Context, s *models.ExerciseSet) error

	// Nutrition operations
	InsertNutritionPlan(ctx context.Context, p *models.NutritionPlan) (bool, error)
	GetNutritionPlanForDay(ctx context.Context, userID string, journeyID uuid.UUID, day int) (*models.NutritionPlan, error)
	CreateNutritionLog(ctx context.Context, l *models.NutritionLog) error
	CreateWaterLog(ctx context.Context, w *models.WaterLog) error
	ListWaterLogs(ctx context.Context, userID string, from, to time.Time) ([]*models.WaterLog, error)

	// Habit operations
	CountHabits(ctx context.Context, userID string) (int, error)
	CreateHabit(ctx context.Context, h *models.Habit) error
	GetHabit(ctx context.Context, id uuid.UUID) (*models.Habit, error)
	ListActiveHabits(ctx context.Context, userID string) ([]*models.Habit, error)
	DeactivateHabit(ctx context.Context, id uuid.UUID) error

	// Dopamine operations
	InsertDopamineDaily(ctx context.Context, dd *models.DopamineDaily) (bool, error)
	GetDopamineDailyForDay(ctx context.Context, userID string, journeyID uuid.UUID, day int) (*models.DopamineDaily, error)
	LockDopamineDaily(ctx context.Context, id uuid.UUID) (*models.DopamineDaily, error)
	UpdateDopamineDaily(ctx context.Context, dd *models.DopamineDaily) error
	CreateHabitLog(ctx context.Context, l *models.HabitLog) error
	GetHabitLog(ctx context.Context, id uuid.UUID) (*models.HabitLog, error)

	// Mindset operations
	UpsertMindsetLesson(ctx context.Context, l *models.MindsetLesson) error
	ListLessons(ctx context.Context) ([]*models.MindsetLesson, error)
	ListUnlockableLessons(ctx context.Context, day int) ([]*models.MindsetLesson, error)
	GetLesson(ctx context.Context, id uuid.UUID) (*models.MindsetLesson, error)
	InsertMindsetProgress(ctx context.Context, p *models.MindsetProgress) (bool, error)
	GetMindsetProgress(ctx context.Context, userID string, lessonID uuid.UUID) (*models.MindsetProgress, error)
	ListMindsetProgress(ctx context.Context, userID string) ([]*models.MindsetProgress, error)
	CompleteMindsetProgress(ctx context.Context, id uuid.UUID, at time.Time) error

	// Quote operations
	UpsertQuote(ctx context.Context, q *models.Quote) error
	ListQuotes(ctx context.Context, category *string) ([]*models.Quote, error)
	GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	SaveQuote(ctx context.Context, userID string, quoteID uuid.UUID, at time.Time) error
	UnsaveQuote(ctx context.Context, userID string, quoteID uuid.UUID) error
	ListSavedQuotes(ctx context.Context, userID string) ([]*models.Quote, error)

	// Course operations
	UpsertCourse(ctx context.Context, c *models.BrainCourse) error
	ListCourses(ctx context.Context, userID string, category *string) ([]*models.BrainCourse, error)
	GetCourse(ctx context.Context, userID string, id uuid.UUID) (*models.BrainCourse, error)
	UpsertCourseProgress(ctx context.Context, p *models.CourseProgress) error

	// Transactions
	InTx(ctx context.Context, fn func(Store) error) error

	// Lifecycle
	Close() error
}

var _ Store = (*DB)(nil)
