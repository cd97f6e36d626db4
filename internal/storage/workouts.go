// ABOUTME: Workout session, exercise and set operations.
// ABOUTME: Sessions load with their exercises and sets in display order.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/models"
)

const sessionColumns = `id, user_id, journey_id, day_number, workout_type, status,
	scheduled_at, started_at, completed_at, duration_minutes, notes, created_at`

// InsertWorkoutSession stores a session unless one already exists for the
// same (user, journey, day). It reports whether a row was written.
func (d *DB) InsertWorkoutSession(ctx context.Context, w *models.WorkoutSession) (bool, error) {
	query := `INSERT INTO workout_sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	created, err := d.insertIfAbsent(ctx, query,
		w.ID.String(), w.UserID, w.JourneyID.String(), w.DayNumber, w.WorkoutType, w.Status,
		nullTime(w.ScheduledAt), nullTime(w.StartedAt), nullTime(w.CompletedAt),
		w.DurationMinutes, w.Notes, fmtTime(w.CreatedAt),
	)
	if err != nil {
		return false, fmt.Errorf("insert workout session: %w", err)
	}
	return created, nil
}

// CreateExercise stores an exercise.
func (d *DB) CreateExercise(ctx context.Context, e *models.Exercise) error {
	query := `
		INSERT INTO exercises (id, session_id, name, target_sets, target_reps, rest_seconds, order_index, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.exec(ctx, query,
		e.ID.String(), e.SessionID.String(), e.Name, e.TargetSets, e.TargetReps,
		e.RestSeconds, e.OrderIndex, e.Notes,
	)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// CreateExerciseSet stores a set.
func (d *DB) CreateExerciseSet(ctx context.Context, s *models.ExerciseSet) error {
	query := `
		INSERT INTO exercise_sets (id, exercise_id, set_number, weight, reps, rpe, is_completed, completed_at, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.exec(ctx, query,
		s.ID.String(), s.ExerciseID.String(), s.SetNumber, s.Weight, s.Reps, s.RPE,
		s.IsCompleted, nullTime(s.CompletedAt), s.Notes,
	)
	if err != nil {
		return fmt.Errorf("create exercise set: %w", err)
	}
	return nil
}

// GetWorkoutSession retrieves a session by ID with exercises and sets.
func (d *DB) GetWorkoutSession(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM workout_sessions WHERE id = ?`
	return d.loadSession(ctx, d.queryRow(ctx, query, id.String()))
}

// GetWorkoutSessionForDay retrieves the session for a journey day with exercises and sets.
func (d *DB) GetWorkoutSessionForDay(ctx context.Context, userID string, journeyID uuid.UUID, day int) (*models.WorkoutSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM workout_sessions WHERE user_id = ? AND journey_id = ? AND day_number = ?`
	return d.loadSession(ctx, d.queryRow(ctx, query, userID, journeyID.String(), day))
}

// UpdateWorkoutSession persists status, timing and notes.
func (d *DB) UpdateWorkoutSession(ctx context.Context, w *models.WorkoutSession) error {
	query := `
		UPDATE workout_sessions
		SET status = ?, started_at = ?, completed_at = ?, duration_minutes = ?, notes = ?
		WHERE id = ?
	`
	return d.expectOne(ctx, "update workout session", query,
		w.Status, nullTime(w.StartedAt), nullTime(w.CompletedAt), w.DurationMinutes, w.Notes, w.ID.String())
}

// GetExerciseSet retrieves a set and the ID of the session that owns it.
func (d *DB) GetExerciseSet(ctx context.Context, id uuid.UUID) (*models.ExerciseSet, uuid.UUID, error) {
	query := `
		SELECT s.id, s.exercise_id, s.set_number, s.weight, s.reps, s.rpe, s.is_completed,
			s.completed_at, s.notes, e.session_id
		FROM exercise_sets s
		JOIN exercises e ON e.id = s.exercise_id
		WHERE s.id = ?
	`
	var sessionID string
	s, err := scanSet(d.queryRow(ctx, query, id.String()), &sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, uuid.Nil, ErrNotFound
		}
		return nil, uuid.Nil, fmt.Errorf("get exercise set: %w", err)
	}
	return s, parseUUID(sessionID), nil
}

// UpdateExerciseSet persists the editable fields of a set.
func (d *DB) UpdateExerciseSet(ctx context.Context, s *models.ExerciseSet) error {
	query := `
		UPDATE exercise_sets
		SET weight = ?, reps = ?, rpe = ?, is_completed = ?, completed_at = ?, notes = ?
		WHERE id = ?
	`
	return d.expectOne(ctx, "update exercise set", query,
		s.Weight, s.Reps, s.RPE, s.IsCompleted, nullTime(s.CompletedAt), s.Notes, s.ID.String())
}

func (d *DB) loadSession(ctx context.Context, row *sql.Row) (*models.WorkoutSession, error) {
	w, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get workout session: %w", err)
	}

	exercises, err := d.listExercises(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	w.Exercises = exercises
	return w, nil
}

// listExercises loads a session's exercises ordered by order_index, each with
// its sets ordered by set_number.
func (d *DB) listExercises(ctx context.Context, sessionID uuid.UUID) ([]models.Exercise, error) {
	query := `
		SELECT id, session_id, name, target_sets, target_reps, rest_seconds, order_index, notes
		FROM exercises
		WHERE session_id = ?
		ORDER BY order_index ASC
	`
	rows, err := d.query(ctx, query, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []models.Exercise
	index := make(map[string]int)
	for rows.Next() {
		var e models.Exercise
		var idStr, sessionStr string
		var notes sql.NullString
		if err := rows.Scan(&idStr, &sessionStr, &e.Name, &e.TargetSets, &e.TargetReps,
			&e.RestSeconds, &e.OrderIndex, &notes); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		e.ID = parseUUID(idStr)
		e.SessionID = parseUUID(sessionStr)
		e.Notes = strPtr(notes)
		index[idStr] = len(exercises)
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	if len(exercises) == 0 {
		return exercises, nil
	}

	setQuery := `
		SELECT s.id, s.exercise_id, s.set_number, s.weight, s.reps, s.rpe, s.is_completed,
			s.completed_at, s.notes
		FROM exercise_sets s
		JOIN exercises e ON e.id = s.exercise_id
		WHERE e.session_id = ?
		ORDER BY s.set_number ASC
	`
	setRows, err := d.query(ctx, setQuery, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("list exercise sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		s, err := scanSet(setRows, nil)
		if err != nil {
			return nil, fmt.Errorf("scan exercise set: %w", err)
		}
		if i, ok := index[s.ExerciseID.String()]; ok {
			exercises[i].Sets = append(exercises[i].Sets, *s)
		}
	}
	if err := setRows.Err(); err != nil {
		return nil, fmt.Errorf("list exercise sets: %w", err)
	}
	return exercises, nil
}

func scanSession(row scanner) (*models.WorkoutSession, error) {
	var w models.WorkoutSession
	var idStr, journeyStr, createdAt string
	var scheduledAt, startedAt, completedAt, notes sql.NullString
	var duration sql.NullInt64

	err := row.Scan(&idStr, &w.UserID, &journeyStr, &w.DayNumber, &w.WorkoutType, &w.Status,
		&scheduledAt, &startedAt, &completedAt, &duration, &notes, &createdAt)
	if err != nil {
		return nil, err
	}
	w.ID = parseUUID(idStr)
	w.JourneyID = parseUUID(journeyStr)
	w.ScheduledAt = timePtr(scheduledAt)
	w.StartedAt = timePtr(startedAt)
	w.CompletedAt = timePtr(completedAt)
	w.DurationMinutes = intPtr(duration)
	w.Notes = strPtr(notes)
	w.CreatedAt = parseTime(createdAt)
	return &w, nil
}

// scanSet scans set columns. When sessionID is non-nil an extra trailing
// session_id column is read into it.
func scanSet(row scanner, sessionID *string) (*models.ExerciseSet, error) {
	var s models.ExerciseSet
	var idStr, exerciseStr string
	var weight, rpe sql.NullFloat64
	var reps sql.NullInt64
	var completedAt, notes sql.NullString

	dest := []any{&idStr, &exerciseStr, &s.SetNumber, &weight, &reps, &rpe, &s.IsCompleted, &completedAt, &notes}
	if sessionID != nil {
		dest = append(dest, sessionID)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	s.ID = parseUUID(idStr)
	s.ExerciseID = parseUUID(exerciseStr)
	s.Weight = floatPtr(weight)
	s.Reps = intPtr(reps)
	s.RPE = floatPtr(rpe)
	s.CompletedAt = timePtr(completedAt)
	s.Notes = strPtr(notes)
	return &s, nil
}
