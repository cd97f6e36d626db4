// ABOUTME: Nutrition plan, meal log and water log operations.
// ABOUTME: Plans load with their meal logs, newest first.
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

// InsertNutritionPlan stores a plan unless one already exists for the same
// (user, journey, day). It reports whether a row was written.
func (d *DB) InsertNutritionPlan(ctx context.Context, p *models.NutritionPlan) (bool, error) {
	query := `
		INSERT INTO nutrition_plans (id, user_id, journey_id, day_number, target_calories,
			target_protein, target_carbs, target_fat, meal_plan, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	created, err := d.insertIfAbsent(ctx, query,
		p.ID.String(), p.UserID, p.JourneyID.String(), p.DayNumber,
		p.Target.Calories, p.Target.Protein, p.Target.Carbs, p.Target.Fat,
		p.MealPlan, fmtTime(p.CreatedAt),
	)
	if err != nil {
		return false, fmt.Errorf("insert nutrition plan: %w", err)
	}
	return created, nil
}

// GetNutritionPlanForDay retrieves the plan for a journey day with its logs.
func (d *DB) GetNutritionPlanForDay(ctx context.Context, userID string, journeyID uuid.UUID, day int) (*models.NutritionPlan, error) {
	query := `
		SELECT id, user_id, journey_id, day_number, target_calories, target_protein,
			target_carbs, target_fat, meal_plan, created_at
		FROM nutrition_plans
		WHERE user_id = ? AND journey_id = ? AND day_number = ?
	`
	var p models.NutritionPlan
	var idStr, journeyStr, createdAt string
	var mealPlan sql.NullString

	err := d.queryRow(ctx, query, userID, journeyID.String(), day).Scan(
		&idStr, &p.UserID, &journeyStr, &p.DayNumber,
		&p.Target.Calories, &p.Target.Protein, &p.Target.Carbs, &p.Target.Fat,
		&mealPlan, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get nutrition plan: %w", err)
	}
	p.ID = parseUUID(idStr)
	p.JourneyID = parseUUID(journeyStr)
	p.MealPlan = strPtr(mealPlan)
	p.CreatedAt = parseTime(createdAt)

	logs, err := d.listNutritionLogs(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Logs = logs
	return &p, nil
}

// CreateNutritionLog stores a meal entry.
func (d *DB) CreateNutritionLog(ctx context.Context, l *models.NutritionLog) error {
	query := `
		INSERT INTO nutrition_logs (id, plan_id, user_id, meal_type, description,
			calories, protein, carbs, fat, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.exec(ctx, query,
		l.ID.String(), l.PlanID.String(), l.UserID, l.MealType, l.Description,
		l.Calories, l.Protein, l.Carbs, l.Fat, fmtTime(l.LoggedAt),
	)
	if err != nil {
		return fmt.Errorf("create nutrition log: %w", err)
	}
	return nil
}

func (d *DB) listNutritionLogs(ctx context.Context, planID uuid.UUID) ([]models.NutritionLog, error) {
	query := `
		SELECT id, plan_id, user_id, meal_type, description, calories, protein, carbs, fat, logged_at
		FROM nutrition_logs
		WHERE plan_id = ?
		ORDER BY logged_at DESC
	`
	rows, err := d.query(ctx, query, planID.String())
	if err != nil {
		return nil, fmt.Errorf("list nutrition logs: %w", err)
	}
	defer rows.Close()

	var logs []models.NutritionLog
	for rows.Next() {
		var l models.NutritionLog
		var idStr, planStr, loggedAt string
		var desc sql.NullString
		if err := rows.Scan(&idStr, &planStr, &l.UserID, &l.MealType, &desc,
			&l.Calories, &l.Protein, &l.Carbs, &l.Fat, &loggedAt); err != nil {
			return nil, fmt.Errorf("scan nutrition log: %w", err)
		}
		l.ID = parseUUID(idStr)
		l.PlanID = parseUUID(planStr)
		l.Description = strPtr(desc)
		l.LoggedAt = parseTime(loggedAt)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// CreateWaterLog stores a water intake entry.
func (d *DB) CreateWaterLog(ctx context.Context, w *models.WaterLog) error {
	_, err := d.exec(ctx,
		`INSERT INTO water_logs (id, user_id, amount, logged_at) VALUES (?, ?, ?, ?)`,
		w.ID.String(), w.UserID, w.Amount, fmtTime(w.LoggedAt))
	if err != nil {
		return fmt.Errorf("create water log: %w", err)
	}
	return nil
}

// ListWaterLogs returns a user's water logs in [from, to), oldest first.
func (d *DB) ListWaterLogs(ctx context.Context, userID string, from, to time.Time) ([]*models.WaterLog, error) {
	query := `
		SELECT id, user_id, amount, logged_at
		FROM water_logs
		WHERE user_id = ? AND logged_at >= ? AND logged_at < ?
		ORDER BY logged_at ASC
	`
	rows, err := d.query(ctx, query, userID, fmtTime(from), fmtTime(to))
	if err != nil {
		return nil, fmt.Errorf("list water logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.WaterLog
	for rows.Next() {
		var w models.WaterLog
		var idStr, loggedAt string
		if err := rows.Scan(&idStr, &w.UserID, &w.Amount, &loggedAt); err != nil {
			return nil, fmt.Errorf("scan water log: %w", err)
		}
		w.ID = parseUUID(idStr)
		w.LoggedAt = parseTime(loggedAt)
		logs = append(logs, &w)
	}
	return logs, rows.Err()
}
