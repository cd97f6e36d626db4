// ABOUTME: Schema definition and initialization shared by SQLite and PostgreSQL.
// ABOUTME: Per-day records are unique per (user, journey, day) so lazy creation is idempotent.
package storage

import (
	"context"
	"fmt"
)

// Timestamps are stored as fixed-width UTC text so they sort lexically on
// both backends. DOUBLE PRECISION has REAL affinity in SQLite.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT,
		name TEXT,
		onboarding_complete BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		height DOUBLE PRECISION,
		weight DOUBLE PRECISION,
		target_weight DOUBLE PRECISION,
		age INTEGER,
		gender TEXT,
		activity_level TEXT,
		fitness_goal TEXT,
		experience_level TEXT,
		workout_days INTEGER NOT NULL DEFAULT 4,
		preferred_workout_time TEXT,
		bmr DOUBLE PRECISION NOT NULL DEFAULT 0,
		tdee DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS journeys (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		start_date TEXT NOT NULL,
		current_day INTEGER NOT NULL DEFAULT 1,
		phase TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		completed_at TEXT,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS workout_sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		journey_id TEXT NOT NULL REFERENCES journeys(id) ON DELETE CASCADE,
		day_number INTEGER NOT NULL,
		workout_type TEXT NOT NULL,
		status TEXT NOT NULL,
		scheduled_at TEXT,
		started_at TEXT,
		completed_at TEXT,
		duration_minutes INTEGER,
		notes TEXT,
		created_at TEXT NOT NULL,
		UNIQUE (user_id, journey_id, day_number)
	)`,

	`CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES workout_sessions(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		target_sets INTEGER NOT NULL,
		target_reps TEXT NOT NULL,
		rest_seconds INTEGER NOT NULL,
		order_index INTEGER NOT NULL,
		notes TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS exercise_sets (
		id TEXT PRIMARY KEY,
		exercise_id TEXT NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
		set_number INTEGER NOT NULL,
		weight DOUBLE PRECISION,
		reps INTEGER,
		rpe DOUBLE PRECISION,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at TEXT,
		notes TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS nutrition_plans (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		journey_id TEXT NOT NULL REFERENCES journeys(id) ON DELETE CASCADE,
		day_number INTEGER NOT NULL,
		target_calories DOUBLE PRECISION NOT NULL,
		target_protein DOUBLE PRECISION NOT NULL,
		target_carbs DOUBLE PRECISION NOT NULL,
		target_fat DOUBLE PRECISION NOT NULL,
		meal_plan TEXT,
		created_at TEXT NOT NULL,
		UNIQUE (user_id, journey_id, day_number)
	)`,

	`CREATE TABLE IF NOT EXISTS nutrition_logs (
		id TEXT PRIMARY KEY,
		plan_id TEXT NOT NULL REFERENCES nutrition_plans(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		meal_type TEXT NOT NULL,
		description TEXT,
		calories DOUBLE PRECISION NOT NULL DEFAULT 0,
		protein DOUBLE PRECISION NOT NULL DEFAULT 0,
		carbs DOUBLE PRECISION NOT NULL DEFAULT 0,
		fat DOUBLE PRECISION NOT NULL DEFAULT 0,
		logged_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS water_logs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		amount DOUBLE PRECISION NOT NULL,
		logged_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS habits (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT,
		habit_type TEXT NOT NULL,
		category TEXT,
		dopamine_type TEXT NOT NULL,
		icon TEXT,
		color TEXT,
		is_preset BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS dopamine_dailies (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		journey_id TEXT NOT NULL REFERENCES journeys(id) ON DELETE CASCADE,
		day_number INTEGER NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		good_count INTEGER NOT NULL DEFAULT 0,
		bad_count INTEGER NOT NULL DEFAULT 0,
		streak_days INTEGER NOT NULL DEFAULT 0,
		first_win BOOLEAN NOT NULL DEFAULT FALSE,
		swap_bonus BOOLEAN NOT NULL DEFAULT FALSE,
		streak_bonus BOOLEAN NOT NULL DEFAULT FALSE,
		perfect_day BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL,
		UNIQUE (user_id, journey_id, day_number)
	)`,

	`CREATE TABLE IF NOT EXISTS habit_logs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		habit_id TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		daily_id TEXT NOT NULL REFERENCES dopamine_dailies(id) ON DELETE CASCADE,
		habit_type TEXT NOT NULL,
		logged_at TEXT NOT NULL,
		notes TEXT,
		swap_from_log_id TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS mindset_lessons (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		content TEXT NOT NULL,
		unlock_day INTEGER NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		category TEXT,
		brain_region TEXT,
		duration INTEGER NOT NULL DEFAULT 5
	)`,

	`CREATE TABLE IF NOT EXISTS mindset_progress (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		lesson_id TEXT NOT NULL REFERENCES mindset_lessons(id) ON DELETE CASCADE,
		is_unlocked BOOLEAN NOT NULL DEFAULT FALSE,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		unlocked_at TEXT,
		completed_at TEXT,
		UNIQUE (user_id, lesson_id)
	)`,

	`CREATE TABLE IF NOT EXISTS quotes (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		author TEXT,
		category TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,

	`CREATE TABLE IF NOT EXISTS saved_quotes (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		quote_id TEXT NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
		created_at TEXT NOT NULL,
		PRIMARY KEY (user_id, quote_id)
	)`,

	`CREATE TABLE IF NOT EXISTS brain_courses (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		category TEXT,
		difficulty TEXT,
		duration INTEGER NOT NULL DEFAULT 0,
		image_url TEXT,
		order_index INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,

	`CREATE TABLE IF NOT EXISTS course_modules (
		id TEXT PRIMARY KEY,
		course_id TEXT NOT NULL REFERENCES brain_courses(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		video_url TEXT,
		duration INTEGER NOT NULL DEFAULT 0,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS course_progress (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		course_id TEXT NOT NULL REFERENCES brain_courses(id) ON DELETE CASCADE,
		current_module INTEGER NOT NULL DEFAULT 0,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at TEXT,
		PRIMARY KEY (user_id, course_id)
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_journeys_one_active ON journeys(user_id) WHERE is_active`,
	`CREATE INDEX IF NOT EXISTS idx_exercises_session ON exercises(session_id, order_index)`,
	`CREATE INDEX IF NOT EXISTS idx_exercise_sets_exercise ON exercise_sets(exercise_id, set_number)`,
	`CREATE INDEX IF NOT EXISTS idx_nutrition_logs_plan ON nutrition_logs(plan_id, logged_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_water_logs_user ON water_logs(user_id, logged_at)`,
	`CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id, is_active)`,
	`CREATE INDEX IF NOT EXISTS idx_habit_logs_daily ON habit_logs(daily_id, logged_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_mindset_lessons_unlock ON mindset_lessons(unlock_day, order_index)`,
	`CREATE INDEX IF NOT EXISTS idx_course_modules_course ON course_modules(course_id, order_index)`,
}

// initSchema creates or updates the database schema.
func (d *DB) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := d.sqlDB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
