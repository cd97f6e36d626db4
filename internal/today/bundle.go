// ABOUTME: The combined view of everything a user needs for the current day.
// ABOUTME: Provisions any missing per-day records on the way.
package today

import (
	"context"

	"github.com/harperreed/recomp/internal/models"
)

// Bundle is the full state of a user's current day.
type Bundle struct {
	Journey   *models.Journey
	Workout   *models.WorkoutSession
	Nutrition *models.NutritionPlan
	Dopamine  *DopamineView
	Mindset   *MindsetView
}

// Today resolves the journey and returns every per-day record for it.
func (s *Service) Today(ctx context.Context, userID string) (*Bundle, error) {
	j, err := s.Journey(ctx, userID)
	if err != nil {
		return nil, err
	}

	b := &Bundle{Journey: j}
	if b.Workout, err = s.Workout(ctx, userID, j); err != nil {
		return nil, err
	}
	if b.Nutrition, err = s.Nutrition(ctx, userID, j); err != nil {
		return nil, err
	}
	dd, err := s.Dopamine(ctx, userID, j)
	if err != nil {
		return nil, err
	}
	if b.Dopamine, err = s.dopamineView(ctx, userID, j, dd); err != nil {
		return nil, err
	}
	if b.Mindset, err = s.Mindset(ctx, userID, j.CurrentDay); err != nil {
		return nil, err
	}
	return b, nil
}
