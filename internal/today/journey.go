// ABOUTME: Journey resolution: find or create the active journey and refresh its day.
// ABOUTME: Day number and phase are recomputed from the start date on every read.
package today

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/recomp/internal/logging"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/program"
	"github.com/harperreed/recomp/internal/storage"
)

// Journey returns the user's active journey with its day number and phase
// brought up to date. A journey starting now is created if none is active.
func (s *Service) Journey(ctx context.Context, userID string) (*models.Journey, error) {
	j, err := s.store.GetActiveJourney(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		j, err = s.startJourney(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	day := program.DayNumber(j.StartDate, s.now(), s.loc)
	phase := program.PhaseFor(day)
	if day != j.CurrentDay || phase != j.Phase {
		if err := s.store.UpdateJourneyDay(ctx, j.ID, day, phase); err != nil {
			return nil, fmt.Errorf("refresh journey day: %w", err)
		}
		j.CurrentDay = day
		j.Phase = phase
	}
	return j, nil
}

// startJourney creates a journey starting now. If a concurrent request won the
// race, the journey it created is returned instead.
func (s *Service) startJourney(ctx context.Context, userID string) (*models.Journey, error) {
	now := s.now()
	j := models.NewJourney(userID, now)
	created, err := s.store.CreateJourney(ctx, j)
	if err != nil {
		return nil, err
	}
	if created {
		logging.Info("journey started", "user", userID, "journey", j.ID)
		return j, nil
	}
	return s.store.GetActiveJourney(ctx, userID)
}

// CompleteFinished stamps completedAt on active journeys that have reached
// the last program day. They stay active. It returns how many were stamped.
func (s *Service) CompleteFinished(ctx context.Context) (int, error) {
	journeys, err := s.store.ListActiveJourneys(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	n := 0
	for _, j := range journeys {
		if j.CompletedAt != nil || program.DayNumber(j.StartDate, now, s.loc) < program.TotalDays {
			continue
		}
		if err := s.store.MarkJourneyCompleted(ctx, j.ID, now); err != nil {
			return n, fmt.Errorf("complete journey %s: %w", j.ID, err)
		}
		n++
	}
	return n, nil
}
