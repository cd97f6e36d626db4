// ABOUTME: User, profile and journey operations.
// ABOUTME: At most one journey per user is active at a time.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/models"
)

// EnsureUser inserts the user if missing and refreshes email and name when supplied.
func (d *DB) EnsureUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, email, name, onboarding_complete, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			email = COALESCE(excluded.email, users.email),
			name = COALESCE(excluded.name, users.name)
	`
	_, err := d.exec(ctx, query, u.ID, u.Email, u.Name, u.OnboardingComplete, fmtTime(u.CreatedAt))
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (d *DB) GetUser(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, email, name, onboarding_complete, created_at FROM users WHERE id = ?`

	var u models.User
	var email, name sql.NullString
	var createdAt string
	err := d.queryRow(ctx, query, id).Scan(&u.ID, &email, &name, &u.OnboardingComplete, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.Email = strPtr(email)
	u.Name = strPtr(name)
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}

// SetOnboardingComplete flags the user as onboarded.
func (d *DB) SetOnboardingComplete(ctx context.Context, id string) error {
	return d.expectOne(ctx, "set onboarding complete",
		`UPDATE users SET onboarding_complete = ? WHERE id = ?`, true, id)
}

// GetProfile retrieves the onboarding profile for a user.
func (d *DB) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT user_id, height, weight, target_weight, age, gender, activity_level,
			fitness_goal, experience_level, workout_days, preferred_workout_time,
			bmr, tdee, updated_at
		FROM profiles
		WHERE user_id = ?
	`
	var p models.Profile
	var height, weight, target sql.NullFloat64
	var age sql.NullInt64
	var gender, activity, goal, experience, preferred sql.NullString
	var updatedAt string

	err := d.queryRow(ctx, query, userID).Scan(
		&p.UserID, &height, &weight, &target, &age, &gender, &activity,
		&goal, &experience, &p.WorkoutDays, &preferred,
		&p.BMR, &p.TDEE, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	p.Height = floatPtr(height)
	p.Weight = floatPtr(weight)
	p.TargetWeight = floatPtr(target)
	p.Age = intPtr(age)
	p.Gender = strPtr(gender)
	p.ActivityLevel = strPtr(activity)
	p.FitnessGoal = strPtr(goal)
	p.ExperienceLevel = strPtr(experience)
	p.PreferredWorkoutTime = strPtr(preferred)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

// UpsertProfile creates or replaces a user's profile.
func (d *DB) UpsertProfile(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, height, weight, target_weight, age, gender,
			activity_level, fitness_goal, experience_level, workout_days,
			preferred_workout_time, bmr, tdee, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			height = excluded.height,
			weight = excluded.weight,
			target_weight = excluded.target_weight,
			age = excluded.age,
			gender = excluded.gender,
			activity_level = excluded.activity_level,
			fitness_goal = excluded.fitness_goal,
			experience_level = excluded.experience_level,
			workout_days = excluded.workout_days,
			preferred_workout_time = excluded.preferred_workout_time,
			bmr = excluded.bmr,
			tdee = excluded.tdee,
			updated_at = excluded.updated_at
	`
	_, err := d.exec(ctx, query,
		p.UserID, p.Height, p.Weight, p.TargetWeight, p.Age, p.Gender,
		p.ActivityLevel, p.FitnessGoal, p.ExperienceLevel, p.WorkoutDays,
		p.PreferredWorkoutTime, p.BMR, p.TDEE, fmtTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

const journeyColumns = `id, user_id, start_date, current_day, phase, is_active, completed_at, created_at`

// CreateJourney inserts a journey. It reports false when the user already
// has an active journey.
func (d *DB) CreateJourney(ctx context.Context, j *models.Journey) (bool, error) {
	query := `INSERT INTO journeys (` + journeyColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	created, err := d.insertIfAbsent(ctx, query,
		j.ID.String(), j.UserID, fmtTime(j.StartDate), j.CurrentDay, j.Phase,
		j.IsActive, nullTime(j.CompletedAt), fmtTime(j.CreatedAt),
	)
	if err != nil {
		return false, fmt.Errorf("create journey: %w", err)
	}
	return created, nil
}

// GetActiveJourney retrieves the user's active journey.
func (d *DB) GetActiveJourney(ctx context.Context, userID string) (*models.Journey, error) {
	query := `SELECT ` + journeyColumns + ` FROM journeys WHERE user_id = ? AND is_active = ?`
	j, err := scanJourney(d.queryRow(ctx, query, userID, true))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get active journey: %w", err)
	}
	return j, nil
}

// UpdateJourneyDay persists the computed day and phase.
func (d *DB) UpdateJourneyDay(ctx context.Context, id uuid.UUID, day int, phase models.Phase) error {
	return d.expectOne(ctx, "update journey day",
		`UPDATE journeys SET current_day = ?, phase = ? WHERE id = ?`, day, phase, id.String())
}

// ListActiveJourneys returns every active journey, oldest first.
func (d *DB) ListActiveJourneys(ctx context.Context) ([]*models.Journey, error) {
	query := `SELECT ` + journeyColumns + ` FROM journeys WHERE is_active = ? ORDER BY start_date ASC`
	rows, err := d.query(ctx, query, true)
	if err != nil {
		return nil, fmt.Errorf("list active journeys: %w", err)
	}
	defer rows.Close()

	var journeys []*models.Journey
	for rows.Next() {
		j, err := scanJourney(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journey: %w", err)
		}
		journeys = append(journeys, j)
	}
	return journeys, rows.Err()
}

// MarkJourneyCompleted stamps completed_at once. The journey stays active.
func (d *DB) MarkJourneyCompleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := d.exec(ctx,
		`UPDATE journeys SET completed_at = ? WHERE id = ? AND completed_at IS NULL`,
		fmtTime(at), id.String())
	if err != nil {
		return fmt.Errorf("mark journey completed: %w", err)
	}
	return nil
}

func scanJourney(row scanner) (*models.Journey, error) {
	var j models.Journey
	var idStr, startDate, createdAt string
	var completedAt sql.NullString

	err := row.Scan(&idStr, &j.UserID, &startDate, &j.CurrentDay, &j.Phase, &j.IsActive, &completedAt, &createdAt)
	if err != nil {
		return nil, err
	}
	j.ID = parseUUID(idStr)
	j.StartDate = parseTime(startDate)
	j.CompletedAt = timePtr(completedAt)
	j.CreatedAt = parseTime(createdAt)
	return &j, nil
}

// expectOne runs an UPDATE or DELETE that must touch exactly one row.
func (d *DB) expectOne(ctx context.Context, op, query string, args ...any) error {
	res, err := d.exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
