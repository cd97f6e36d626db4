// ABOUTME: Lazy per-day record provisioning for workouts, nutrition and dopamine.
// ABOUTME: Each record is unique per (user, journey, day) and created once on first access.
package today

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/logging"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/program"
	"github.com/harperreed/recomp/internal/storage"
)

// Workout returns the day's workout session, creating it from the rotation
// template on first access.
func (s *Service) Workout(ctx context.Context, userID string, j *models.Journey) (*models.WorkoutSession, error) {
	w, err := s.store.GetWorkoutSessionForDay(ctx, userID, j.ID, j.CurrentDay)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	wt := program.WorkoutTypeFor(j.CurrentDay)
	err = s.store.InTx(ctx, func(tx storage.Store) error {
		session := models.NewWorkoutSession(userID, j.ID, j.CurrentDay, wt)
		session.CreatedAt = s.now()
		created, err := tx.InsertWorkoutSession(ctx, session)
		if err != nil || !created {
			return err
		}

		for i, tpl := range program.Template(wt) {
			e := &models.Exercise{
				ID:          uuid.New(),
				SessionID:   session.ID,
				Name:        tpl.Name,
				TargetSets:  tpl.TargetSets,
				TargetReps:  tpl.TargetReps,
				RestSeconds: tpl.RestSeconds,
				OrderIndex:  i,
			}
			if err := tx.CreateExercise(ctx, e); err != nil {
				return err
			}
			for n := 1; n <= tpl.TargetSets; n++ {
				if err := tx.CreateExerciseSet(ctx, &models.ExerciseSet{ID: uuid.New(), ExerciseID: e.ID, SetNumber: n}); err != nil {
					return err
				}
			}
		}
		logging.Debug("workout provisioned", "user", userID, "day", j.CurrentDay, "type", wt)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("provision workout: %w", err)
	}

	return s.store.GetWorkoutSessionForDay(ctx, userID, j.ID, j.CurrentDay)
}

// Nutrition returns the day's nutrition plan, creating it with the phase
// targets on first access.
func (s *Service) Nutrition(ctx context.Context, userID string, j *models.Journey) (*models.NutritionPlan, error) {
	p, err := s.store.GetNutritionPlanForDay(ctx, userID, j.ID, j.CurrentDay)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	plan := &models.NutritionPlan{
		ID:        uuid.New(),
		UserID:    userID,
		JourneyID: j.ID,
		DayNumber: j.CurrentDay,
		Target:    program.NutritionTargets(j.Phase),
		CreatedAt: s.now(),
	}
	if _, err := s.store.InsertNutritionPlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("provision nutrition: %w", err)
	}
	return s.store.GetNutritionPlanForDay(ctx, userID, j.ID, j.CurrentDay)
}

// Dopamine returns the day's dopamine record, creating it on first access.
// Creation seeds preset habits for users without any and carries the streak
// over from yesterday's record.
func (s *Service) Dopamine(ctx context.Context, userID string, j *models.Journey) (*models.DopamineDaily, error) {
	dd, err := s.store.GetDopamineDailyForDay(ctx, userID, j.ID, j.CurrentDay)
	if err == nil {
		return dd, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	err = s.store.InTx(ctx, func(tx storage.Store) error {
		if err := s.ensureHabits(ctx, tx, userID, program.DefaultHabits); err != nil {
			return err
		}

		var yesterday *models.DopamineDaily
		if j.CurrentDay > 1 {
			y, err := tx.GetDopamineDailyForDay(ctx, userID, j.ID, j.CurrentDay-1)
			switch {
			case err == nil:
				yesterday = y
			case !errors.Is(err, storage.ErrNotFound):
				return err
			}
		}

		daily := models.NewDopamineDaily(userID, j.ID, j.CurrentDay, program.SeedStreak(yesterday))
		daily.CreatedAt = s.now()
		_, err := tx.InsertDopamineDaily(ctx, daily)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("provision dopamine: %w", err)
	}

	return s.store.GetDopamineDailyForDay(ctx, userID, j.ID, j.CurrentDay)
}

// ensureHabits seeds presets when the user owns no habits at all.
func (s *Service) ensureHabits(ctx context.Context, store storage.Store, userID string, presets []program.HabitPreset) error {
	n, err := store.CountHabits(ctx, userID)
	if err != nil || n > 0 {
		return err
	}

	now := s.now()
	for i, h := range program.BuildHabits(userID, presets) {
		// Distinct creation times keep the preset order stable when listing.
		h.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		if err := store.CreateHabit(ctx, h); err != nil {
			return err
		}
	}
	logging.Debug("preset habits seeded", "user", userID, "count", len(presets))
	return nil
}
