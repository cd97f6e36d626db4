// ABOUTME: Workout session reads and partial updates.
// ABOUTME: Status transitions stamp start and completion times; set edits are checked against the session.
package today

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/storage"
)

// WorkoutUpdate is a partial edit of a workout session. Nil fields are left alone.
type WorkoutUpdate struct {
	Status *string
	Notes  *string
	Sets   []models.SetUpdate
}

// WorkoutToday returns today's workout session, creating it if needed.
func (s *Service) WorkoutToday(ctx context.Context, userID string) (*models.WorkoutSession, error) {
	j, err := s.Journey(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Workout(ctx, userID, j)
}

// UpdateWorkout applies a partial update to one of the user's sessions and
// returns the session as stored afterwards.
func (s *Service) UpdateWorkout(ctx context.Context, userID string, sessionID uuid.UUID, upd WorkoutUpdate) (*models.WorkoutSession, error) {
	now := s.now()
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		w, err := tx.GetWorkoutSession(ctx, sessionID)
		if errors.Is(err, storage.ErrNotFound) || (err == nil && w.UserID != userID) {
			return notFound("Workout session not found")
		}
		if err != nil {
			return err
		}

		if upd.Status != nil {
			if !models.IsValidWorkoutStatus(*upd.Status) {
				return badRequest(fmt.Sprintf("Invalid status %q", *upd.Status))
			}
			w.Status = models.WorkoutStatus(*upd.Status)
			switch w.Status {
			case models.StatusInProgress:
				if w.StartedAt == nil {
					w.StartedAt = &now
				}
			case models.StatusCompleted:
				if w.CompletedAt == nil {
					w.CompletedAt = &now
				}
				if w.StartedAt != nil {
					minutes := int(math.Round(w.CompletedAt.Sub(*w.StartedAt).Minutes()))
					w.DurationMinutes = &minutes
				}
			}
		}
		if upd.Notes != nil {
			w.Notes = upd.Notes
		}
		if err := tx.UpdateWorkoutSession(ctx, w); err != nil {
			return err
		}

		for _, su := range upd.Sets {
			if err := applySetUpdate(ctx, tx, w.ID, su, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.store.GetWorkoutSession(ctx, sessionID)
}

func applySetUpdate(ctx context.Context, tx storage.Store, sessionID uuid.UUID, su models.SetUpdate, now time.Time) error {
	if su.SetID == uuid.Nil {
		return badRequest("Set ID is required for set updates")
	}
	set, owner, err := tx.GetExerciseSet(ctx, su.SetID)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && owner != sessionID) {
		return notFound(fmt.Sprintf("Set %s not found in this workout", su.SetID))
	}
	if err != nil {
		return err
	}

	if su.Weight != nil {
		set.Weight = su.Weight
	}
	if su.Reps != nil {
		set.Reps = su.Reps
	}
	if su.RPE != nil {
		set.RPE = su.RPE
	}
	if su.Notes != nil {
		set.Notes = su.Notes
	}
	if su.IsCompleted != nil {
		set.IsCompleted = *su.IsCompleted
		if set.IsCompleted {
			set.CompletedAt = &now
		} else {
			set.CompletedAt = nil
		}
	}
	return tx.UpdateExerciseSet(ctx, set)
}
