// ABOUTME: Habit logging against the day's dopamine record.
// ABOUTME: The log insert, bonus evaluation and record update share one transaction.
package today

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/logging"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/program"
	"github.com/harperreed/recomp/internal/storage"
)

// DopamineView is the day's dopamine record with the user's active habits.
type DopamineView struct {
	Journey *models.Journey
	Daily   *models.DopamineDaily
	Habits  []*models.Habit
}

// LogHabitInput describes one habit log.
type LogHabitInput struct {
	HabitID       uuid.UUID
	Notes         *string
	SwapFromLogID *uuid.UUID
}

// DopamineToday returns today's dopamine record, creating it if needed.
func (s *Service) DopamineToday(ctx context.Context, userID string) (*DopamineView, error) {
	j, err := s.Journey(ctx, userID)
	if err != nil {
		return nil, err
	}
	dd, err := s.Dopamine(ctx, userID, j)
	if err != nil {
		return nil, err
	}
	return s.dopamineView(ctx, userID, j, dd)
}

// LogHabit records a habit against today's dopamine record and applies its
// score change. Each call creates a new log.
func (s *Service) LogHabit(ctx context.Context, userID string, in LogHabitInput) (*DopamineView, error) {
	if in.HabitID == uuid.Nil {
		return nil, badRequest("Habit ID is required")
	}

	habit, err := s.store.GetHabit(ctx, in.HabitID)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && (habit.UserID != userID || !habit.IsActive)) {
		return nil, notFound("Habit not found")
	}
	if err != nil {
		return nil, err
	}

	j, err := s.Journey(ctx, userID)
	if err != nil {
		return nil, err
	}
	dd, err := s.Dopamine(ctx, userID, j)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var result program.ScoreResult
	err = s.store.InTx(ctx, func(tx storage.Store) error {
		entry := &models.HabitLog{
			ID:            uuid.New(),
			UserID:        userID,
			HabitID:       habit.ID,
			DailyID:       dd.ID,
			Type:          habit.Type,
			LoggedAt:      now,
			Notes:         in.Notes,
			SwapFromLogID: in.SwapFromLogID,
		}
		if err := tx.CreateHabitLog(ctx, entry); err != nil {
			return err
		}

		day, err := tx.LockDopamineDaily(ctx, dd.ID)
		if err != nil {
			return err
		}

		swap := false
		if habit.Type == models.HabitGood && in.SwapFromLogID != nil {
			ref, err := tx.GetHabitLog(ctx, *in.SwapFromLogID)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return err
			}
			swap = program.SwapQualifies(ref, userID, day.ID, now)
		}

		result = program.Score(habit.Type, day, swap)
		program.Apply(day, habit.Type, result)
		return tx.UpdateDopamineDaily(ctx, day)
	})
	if err != nil {
		return nil, fmt.Errorf("log habit: %w", err)
	}
	logging.Debug("habit logged", "user", userID, "habit", habit.Name, "change", result.Change,
		"first_win", result.FirstWin, "swap", result.SwapBonus, "streak", result.StreakBonus)

	dd, err = s.store.GetDopamineDailyForDay(ctx, userID, j.ID, j.CurrentDay)
	if err != nil {
		return nil, err
	}
	return s.dopamineView(ctx, userID, j, dd)
}

func (s *Service) dopamineView(ctx context.Context, userID string, j *models.Journey, dd *models.DopamineDaily) (*DopamineView, error) {
	habits, err := s.store.ListActiveHabits(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &DopamineView{Journey: j, Daily: dd, Habits: habits}, nil
}
