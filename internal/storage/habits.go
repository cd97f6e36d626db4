// ABOUTME: Habit catalog, habit log and dopamine daily operations.
// ABOUTME: LockDopamineDaily re-reads a daily row under a row lock for scoring.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/models"
)

const habitColumns = `id, user_id, name, description, habit_type, category, dopamine_type,
	icon, color, is_preset, is_active, created_at`

// CountHabits returns how many habits (active or not) a user owns.
func (d *DB) CountHabits(ctx context.Context, userID string) (int, error) {
	var n int
	if err := d.queryRow(ctx, `SELECT COUNT(*) FROM habits WHERE user_id = ?`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count habits: %w", err)
	}
	return n, nil
}

// CreateHabit stores a habit.
func (d *DB) CreateHabit(ctx context.Context, h *models.Habit) error {
	query := `INSERT INTO habits (` + habitColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := d.exec(ctx, query,
		h.ID.String(), h.UserID, h.Name, h.Description, h.Type, h.Category, h.DopamineType,
		h.Icon, h.Color, h.IsPreset, h.IsActive, fmtTime(h.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

// GetHabit retrieves a habit by ID.
func (d *DB) GetHabit(ctx context.Context, id uuid.UUID) (*models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = ?`
	h, err := scanHabit(d.queryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return h, nil
}

// ListActiveHabits returns a user's active habits ordered by type then creation.
func (d *DB) ListActiveHabits(ctx context.Context, userID string) ([]*models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits
		WHERE user_id = ? AND is_active = ?
		ORDER BY habit_type ASC, created_at ASC`
	rows, err := d.query(ctx, query, userID, true)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []*models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// DeactivateHabit soft-deletes a habit. Its logs are kept.
func (d *DB) DeactivateHabit(ctx context.Context, id uuid.UUID) error {
	return d.expectOne(ctx, "deactivate habit",
		`UPDATE habits SET is_active = ? WHERE id = ?`, false, id.String())
}

func scanHabit(row scanner) (*models.Habit, error) {
	var h models.Habit
	var idStr, createdAt string
	var desc, category, icon, color sql.NullString

	err := row.Scan(&idStr, &h.UserID, &h.Name, &desc, &h.Type, &category, &h.DopamineType,
		&icon, &color, &h.IsPreset, &h.IsActive, &createdAt)
	if err != nil {
		return nil, err
	}
	h.ID = parseUUID(idStr)
	h.Description = strPtr(desc)
	h.Category = strPtr(category)
	h.Icon = strPtr(icon)
	h.Color = strPtr(color)
	h.CreatedAt = parseTime(createdAt)
	return &h, nil
}

const dailyColumns = `id, user_id, journey_id, day_number, score, good_count, bad_count,
	streak_days, first_win, swap_bonus, streak_bonus, perfect_day, created_at`

// InsertDopamineDaily stores a daily record unless one already exists for the
// same (user, journey, day). It reports whether a row was written.
func (d *DB) InsertDopamineDaily(ctx context.Context, dd *models.DopamineDaily) (bool, error) {
	query := `INSERT INTO dopamine_dailies (` + dailyColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	created, err := d.insertIfAbsent(ctx, query,
		dd.ID.String(), dd.UserID, dd.JourneyID.String(), dd.DayNumber, dd.Score,
		dd.GoodCount, dd.BadCount, dd.StreakDays, dd.FirstWin, dd.SwapBonus,
		dd.StreakBonus, dd.PerfectDay, fmtTime(dd.CreatedAt),
	)
	if err != nil {
		return false, fmt.Errorf("insert dopamine daily: %w", err)
	}
	return created, nil
}

// GetDopamineDailyForDay retrieves the daily record for a journey day with its
// habit logs, newest first.
func (d *DB) GetDopamineDailyForDay(ctx context.Context, userID string, journeyID uuid.UUID, day int) (*models.DopamineDaily, error) {
	query := `SELECT ` + dailyColumns + ` FROM dopamine_dailies WHERE user_id = ? AND journey_id = ? AND day_number = ?`
	dd, err := scanDaily(d.queryRow(ctx, query, userID, journeyID.String(), day))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get dopamine daily: %w", err)
	}

	logs, err := d.listHabitLogs(ctx, dd.ID)
	if err != nil {
		return nil, err
	}
	dd.Logs = logs
	return dd, nil
}

// LockDopamineDaily re-reads a daily record's counters and flags. On
// PostgreSQL the row stays locked until the surrounding transaction ends.
func (d *DB) LockDopamineDaily(ctx context.Context, id uuid.UUID) (*models.DopamineDaily, error) {
	query := `SELECT ` + dailyColumns + ` FROM dopamine_dailies WHERE id = ?` + d.forUpdate()
	dd, err := scanDaily(d.queryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock dopamine daily: %w", err)
	}
	return dd, nil
}

// UpdateDopamineDaily persists score, counts and bonus flags.
func (d *DB) UpdateDopamineDaily(ctx context.Context, dd *models.DopamineDaily) error {
	query := `
		UPDATE dopamine_dailies
		SET score = ?, good_count = ?, bad_count = ?, streak_days = ?,
			first_win = ?, swap_bonus = ?, streak_bonus = ?, perfect_day = ?
		WHERE id = ?
	`
	return d.expectOne(ctx, "update dopamine daily", query,
		dd.Score, dd.GoodCount, dd.BadCount, dd.StreakDays,
		dd.FirstWin, dd.SwapBonus, dd.StreakBonus, dd.PerfectDay, dd.ID.String())
}

// CreateHabitLog stores a habit log.
func (d *DB) CreateHabitLog(ctx context.Context, l *models.HabitLog) error {
	query := `
		INSERT INTO habit_logs (id, user_id, habit_id, daily_id, habit_type, logged_at, notes, swap_from_log_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.exec(ctx, query,
		l.ID.String(), l.UserID, l.HabitID.String(), l.DailyID.String(), l.Type,
		fmtTime(l.LoggedAt), l.Notes, nullUUID(l.SwapFromLogID),
	)
	if err != nil {
		return fmt.Errorf("create habit log: %w", err)
	}
	return nil
}

const habitLogSelect = `
	SELECT l.id, l.user_id, l.habit_id, l.daily_id, l.habit_type, l.logged_at, l.notes,
		l.swap_from_log_id, h.name
	FROM habit_logs l
	JOIN habits h ON h.id = l.habit_id
`

// GetHabitLog retrieves a habit log by ID.
func (d *DB) GetHabitLog(ctx context.Context, id uuid.UUID) (*models.HabitLog, error) {
	l, err := scanHabitLog(d.queryRow(ctx, habitLogSelect+` WHERE l.id = ?`, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get habit log: %w", err)
	}
	return l, nil
}

func (d *DB) listHabitLogs(ctx context.Context, dailyID uuid.UUID) ([]models.HabitLog, error) {
	rows, err := d.query(ctx, habitLogSelect+` WHERE l.daily_id = ? ORDER BY l.logged_at DESC`, dailyID.String())
	if err != nil {
		return nil, fmt.Errorf("list habit logs: %w", err)
	}
	defer rows.Close()

	var logs []models.HabitLog
	for rows.Next() {
		l, err := scanHabitLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit log: %w", err)
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func scanDaily(row scanner) (*models.DopamineDaily, error) {
	var dd models.DopamineDaily
	var idStr, journeyStr, createdAt string

	err := row.Scan(&idStr, &dd.UserID, &journeyStr, &dd.DayNumber, &dd.Score, &dd.GoodCount,
		&dd.BadCount, &dd.StreakDays, &dd.FirstWin, &dd.SwapBonus, &dd.StreakBonus,
		&dd.PerfectDay, &createdAt)
	if err != nil {
		return nil, err
	}
	dd.ID = parseUUID(idStr)
	dd.JourneyID = parseUUID(journeyStr)
	dd.CreatedAt = parseTime(createdAt)
	return &dd, nil
}

func scanHabitLog(row scanner) (*models.HabitLog, error) {
	var l models.HabitLog
	var idStr, habitStr, dailyStr, loggedAt string
	var notes, swapFrom sql.NullString

	err := row.Scan(&idStr, &l.UserID, &habitStr, &dailyStr, &l.Type, &loggedAt, &notes, &swapFrom, &l.HabitName)
	if err != nil {
		return nil, err
	}
	l.ID = parseUUID(idStr)
	l.HabitID = parseUUID(habitStr)
	l.DailyID = parseUUID(dailyStr)
	l.LoggedAt = parseTime(loggedAt)
	l.Notes = strPtr(notes)
	l.SwapFromLogID = uuidPtr(swapFrom)
	return &l, nil
}
