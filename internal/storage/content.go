// ABOUTME: Mindset lessons, quotes and brain courses with per-user progress.
// ABOUTME: Catalog upserts are keyed by ID so reseeding is idempotent.
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

const lessonColumns = `id, title, description, content, unlock_day, order_index, category, brain_region, duration`

// UpsertMindsetLesson creates or refreshes a catalog lesson.
func (d *DB) UpsertMindsetLesson(ctx context.Context, l *models.MindsetLesson) error {
	query := `
		INSERT INTO mindset_lessons (` + lessonColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			content = excluded.content,
			unlock_day = excluded.unlock_day,
			order_index = excluded.order_index,
			category = excluded.category,
			brain_region = excluded.brain_region,
			duration = excluded.duration
	`
	_, err := d.exec(ctx, query,
		l.ID.String(), l.Title, l.Description, l.Content, l.UnlockDay, l.OrderIndex,
		l.Category, l.BrainRegion, l.Duration,
	)
	if err != nil {
		return fmt.Errorf("upsert mindset lesson: %w", err)
	}
	return nil
}

// ListLessons returns every lesson ordered by unlock day then order index.
func (d *DB) ListLessons(ctx context.Context) ([]*models.MindsetLesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM mindset_lessons ORDER BY unlock_day ASC, order_index ASC`
	return d.listLessons(ctx, query)
}

// ListUnlockableLessons returns lessons whose unlock day is at or before day.
func (d *DB) ListUnlockableLessons(ctx context.Context, day int) ([]*models.MindsetLesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM mindset_lessons WHERE unlock_day <= ? ORDER BY unlock_day ASC, order_index ASC`
	return d.listLessons(ctx, query, day)
}

// GetLesson retrieves a lesson by ID.
func (d *DB) GetLesson(ctx context.Context, id uuid.UUID) (*models.MindsetLesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM mindset_lessons WHERE id = ?`
	l, err := scanLesson(d.queryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return l, nil
}

func (d *DB) listLessons(ctx context.Context, query string, args ...any) ([]*models.MindsetLesson, error) {
	rows, err := d.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*models.MindsetLesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func scanLesson(row scanner) (*models.MindsetLesson, error) {
	var l models.MindsetLesson
	var idStr string
	var desc, category, region sql.NullString

	err := row.Scan(&idStr, &l.Title, &desc, &l.Content, &l.UnlockDay, &l.OrderIndex, &category, &region, &l.Duration)
	if err != nil {
		return nil, err
	}
	l.ID = parseUUID(idStr)
	l.Description = strPtr(desc)
	l.Category = strPtr(category)
	l.BrainRegion = strPtr(region)
	return &l, nil
}

const progressColumns = `id, user_id, lesson_id, is_unlocked, is_completed, unlocked_at, completed_at`

// InsertMindsetProgress stores a progress row unless the user already has one
// for the lesson. It reports whether a row was written.
func (d *DB) InsertMindsetProgress(ctx context.Context, p *models.MindsetProgress) (bool, error) {
	query := `INSERT INTO mindset_progress (` + progressColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	created, err := d.insertIfAbsent(ctx, query,
		p.ID.String(), p.UserID, p.LessonID.String(), p.IsUnlocked, p.IsCompleted,
		nullTime(p.UnlockedAt), nullTime(p.CompletedAt),
	)
	if err != nil {
		return false, fmt.Errorf("insert mindset progress: %w", err)
	}
	return created, nil
}

// GetMindsetProgress retrieves a user's progress row for a lesson.
func (d *DB) GetMindsetProgress(ctx context.Context, userID string, lessonID uuid.UUID) (*models.MindsetProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM mindset_progress WHERE user_id = ? AND lesson_id = ?`
	p, err := scanProgress(d.queryRow(ctx, query, userID, lessonID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get mindset progress: %w", err)
	}
	return p, nil
}

// ListMindsetProgress returns all of a user's progress rows.
func (d *DB) ListMindsetProgress(ctx context.Context, userID string) ([]*models.MindsetProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM mindset_progress WHERE user_id = ?`
	rows, err := d.query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list mindset progress: %w", err)
	}
	defer rows.Close()

	var out []*models.MindsetProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mindset progress: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CompleteMindsetProgress marks a progress row completed. Completing twice
// keeps the first completion time.
func (d *DB) CompleteMindsetProgress(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE mindset_progress
		SET is_completed = ?, completed_at = COALESCE(completed_at, ?)
		WHERE id = ?
	`
	return d.expectOne(ctx, "complete mindset progress", query, true, fmtTime(at), id.String())
}

func scanProgress(row scanner) (*models.MindsetProgress, error) {
	var p models.MindsetProgress
	var idStr, lessonStr string
	var unlockedAt, completedAt sql.NullString

	err := row.Scan(&idStr, &p.UserID, &lessonStr, &p.IsUnlocked, &p.IsCompleted, &unlockedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	p.ID = parseUUID(idStr)
	p.LessonID = parseUUID(lessonStr)
	p.UnlockedAt = timePtr(unlockedAt)
	p.CompletedAt = timePtr(completedAt)
	return &p, nil
}

const quoteColumns = `id, text, author, category, is_active`

// UpsertQuote creates or refreshes a quote.
func (d *DB) UpsertQuote(ctx context.Context, q *models.Quote) error {
	query := `
		INSERT INTO quotes (` + quoteColumns + `) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			text = excluded.text,
			author = excluded.author,
			category = excluded.category,
			is_active = excluded.is_active
	`
	if _, err := d.exec(ctx, query, q.ID.String(), q.Text, q.Author, q.Category, q.IsActive); err != nil {
		return fmt.Errorf("upsert quote: %w", err)
	}
	return nil
}

// ListQuotes returns active quotes, optionally filtered by category.
func (d *DB) ListQuotes(ctx context.Context, category *string) ([]*models.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE is_active = ?`
	args := []any{true}
	if category != nil {
		query += ` AND LOWER(category) = LOWER(?)`
		args = append(args, *category)
	}
	query += ` ORDER BY text ASC`
	return d.listQuotes(ctx, query, args...)
}

// GetQuote retrieves a quote by ID.
func (d *DB) GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	q, err := scanQuote(d.queryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = ?`, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

// SaveQuote bookmarks a quote for a user. Saving twice is a no-op.
func (d *DB) SaveQuote(ctx context.Context, userID string, quoteID uuid.UUID, at time.Time) error {
	_, err := d.insertIfAbsent(ctx,
		`INSERT INTO saved_quotes (user_id, quote_id, created_at) VALUES (?, ?, ?)`,
		userID, quoteID.String(), fmtTime(at))
	if err != nil {
		return fmt.Errorf("save quote: %w", err)
	}
	return nil
}

// UnsaveQuote removes a bookmark.
func (d *DB) UnsaveQuote(ctx context.Context, userID string, quoteID uuid.UUID) error {
	return d.expectOne(ctx, "unsave quote",
		`DELETE FROM saved_quotes WHERE user_id = ? AND quote_id = ?`, userID, quoteID.String())
}

// ListSavedQuotes returns a user's bookmarked quotes, most recent first.
func (d *DB) ListSavedQuotes(ctx context.Context, userID string) ([]*models.Quote, error) {
	query := `
		SELECT q.id, q.text, q.author, q.category, q.is_active
		FROM saved_quotes s
		JOIN quotes q ON q.id = s.quote_id
		WHERE s.user_id = ?
		ORDER BY s.created_at DESC
	`
	return d.listQuotes(ctx, query, userID)
}

func (d *DB) listQuotes(ctx context.Context, query string, args ...any) ([]*models.Quote, error) {
	rows, err := d.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*models.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func scanQuote(row scanner) (*models.Quote, error) {
	var q models.Quote
	var idStr string
	var author, category sql.NullString
	if err := row.Scan(&idStr, &q.Text, &author, &category, &q.IsActive); err != nil {
		return nil, err
	}
	q.ID = parseUUID(idStr)
	q.Author = strPtr(author)
	q.Category = strPtr(category)
	return &q, nil
}

const courseColumns = `c.id, c.title, c.description, c.category, c.difficulty, c.duration,
	c.image_url, c.order_index, c.is_active,
	p.current_module, p.is_completed, p.completed_at`

// UpsertCourse creates or refreshes a course and replaces its modules.
func (d *DB) UpsertCourse(ctx context.Context, c *models.BrainCourse) error {
	return d.InTx(ctx, func(s Store) error {
		tx := s.(*DB)
		query := `
			INSERT INTO brain_courses (id, title, description, category, difficulty, duration,
				image_url, order_index, is_active)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				title = excluded.title,
				description = excluded.description,
				category = excluded.category,
				difficulty = excluded.difficulty,
				duration = excluded.duration,
				image_url = excluded.image_url,
				order_index = excluded.order_index,
				is_active = excluded.is_active
		`
		_, err := tx.exec(ctx, query,
			c.ID.String(), c.Title, c.Description, c.Category, c.Difficulty, c.Duration,
			c.ImageURL, c.OrderIndex, c.IsActive,
		)
		if err != nil {
			return fmt.Errorf("upsert course: %w", err)
		}

		if _, err := tx.exec(ctx, `DELETE FROM course_modules WHERE course_id = ?`, c.ID.String()); err != nil {
			return fmt.Errorf("clear course modules: %w", err)
		}
		for _, m := range c.Modules {
			_, err := tx.exec(ctx, `
				INSERT INTO course_modules (id, course_id, title, content, video_url, duration, order_index)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				m.ID.String(), c.ID.String(), m.Title, m.Content, m.VideoURL, m.Duration, m.OrderIndex,
			)
			if err != nil {
				return fmt.Errorf("insert course module: %w", err)
			}
		}
		return nil
	})
}

// ListCourses returns active courses with modules and the user's progress,
// optionally filtered by category.
func (d *DB) ListCourses(ctx context.Context, userID string, category *string) ([]*models.BrainCourse, error) {
	query := `SELECT ` + courseColumns + `
		FROM brain_courses c
		LEFT JOIN course_progress p ON p.course_id = c.id AND p.user_id = ?
		WHERE c.is_active = ?`
	args := []any{userID, true}
	if category != nil {
		query += ` AND LOWER(c.category) = LOWER(?)`
		args = append(args, *category)
	}
	query += ` ORDER BY c.order_index ASC`

	rows, err := d.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.BrainCourse
	for rows.Next() {
		c, err := scanCourse(rows, userID)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	rows.Close()

	for _, c := range courses {
		modules, err := d.listCourseModules(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Modules = modules
	}
	return courses, nil
}

// GetCourse retrieves a course with its modules and the user's progress.
func (d *DB) GetCourse(ctx context.Context, userID string, id uuid.UUID) (*models.BrainCourse, error) {
	query := `SELECT ` + courseColumns + `
		FROM brain_courses c
		LEFT JOIN course_progress p ON p.course_id = c.id AND p.user_id = ?
		WHERE c.id = ?`
	c, err := scanCourse(d.queryRow(ctx, query, userID, id.String()), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	modules, err := d.listCourseModules(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Modules = modules
	return c, nil
}

func (d *DB) listCourseModules(ctx context.Context, courseID uuid.UUID) ([]models.CourseModule, error) {
	rows, err := d.query(ctx, `
		SELECT id, course_id, title, content, video_url, duration, order_index
		FROM course_modules
		WHERE course_id = ?
		ORDER BY order_index ASC`, courseID.String())
	if err != nil {
		return nil, fmt.Errorf("list course modules: %w", err)
	}
	defer rows.Close()

	var modules []models.CourseModule
	for rows.Next() {
		var m models.CourseModule
		var idStr, courseStr string
		var video sql.NullString
		if err := rows.Scan(&idStr, &courseStr, &m.Title, &m.Content, &video, &m.Duration, &m.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan course module: %w", err)
		}
		m.ID = parseUUID(idStr)
		m.CourseID = parseUUID(courseStr)
		m.VideoURL = strPtr(video)
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

// UpsertCourseProgress records the user's position in a course.
func (d *DB) UpsertCourseProgress(ctx context.Context, p *models.CourseProgress) error {
	query := `
		INSERT INTO course_progress (user_id, course_id, current_module, is_completed, completed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, course_id) DO UPDATE SET
			current_module = excluded.current_module,
			is_completed = excluded.is_completed,
			completed_at = excluded.completed_at
	`
	_, err := d.exec(ctx, query, p.UserID, p.CourseID.String(), p.CurrentModule, p.IsCompleted, nullTime(p.CompletedAt))
	if err != nil {
		return fmt.Errorf("upsert course progress: %w", err)
	}
	return nil
}

func scanCourse(row scanner, userID string) (*models.BrainCourse, error) {
	var c models.BrainCourse
	var idStr string
	var desc, category, difficulty, image sql.NullString
	var current sql.NullInt64
	var completed sql.NullBool
	var completedAt sql.NullString

	err := row.Scan(&idStr, &c.Title, &desc, &category, &difficulty, &c.Duration,
		&image, &c.OrderIndex, &c.IsActive, &current, &completed, &completedAt)
	if err != nil {
		return nil, err
	}
	c.ID = parseUUID(idStr)
	c.Description = strPtr(desc)
	c.Category = strPtr(category)
	c.Difficulty = strPtr(difficulty)
	c.ImageURL = strPtr(image)
	if current.Valid {
		c.Progress = &models.CourseProgress{
			UserID:        userID,
			CourseID:      c.ID,
			CurrentModule: int(current.Int64),
			IsCompleted:   completed.Valid && completed.Bool,
			CompletedAt:   timePtr(completedAt),
		}
	}
	return &c, nil
}
