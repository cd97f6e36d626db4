// ABOUTME: Habit catalog management: list, create and soft-delete.
// ABOUTME: Deleted habits stay in storage so past logs keep their names.
package today

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/storage"
)

// HabitInput describes a custom habit.
type HabitInput struct {
	Name         string
	Type         string
	Description  *string
	Category     *string
	DopamineType *string
	Icon         *string
	Color        *string
}

// ListHabits returns the user's active habits, bad before good, oldest first.
func (s *Service) ListHabits(ctx context.Context, userID string) ([]*models.Habit, error) {
	return s.store.ListActiveHabits(ctx, userID)
}

// CreateHabit adds a custom habit to the user's catalog.
func (s *Service) CreateHabit(ctx context.Context, userID string, in HabitInput) (*models.Habit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Type == "" {
		return nil, badRequest("Name and type are required")
	}
	if !models.IsValidHabitType(in.Type) {
		return nil, badRequest("Type must be 'good' or 'bad'")
	}

	h := models.NewHabit(userID, name, models.HabitType(in.Type))
	h.Description = in.Description
	h.Category = in.Category
	h.Icon = in.Icon
	h.Color = in.Color
	if in.DopamineType != nil && *in.DopamineType != "" {
		h.DopamineType = *in.DopamineType
	}
	h.CreatedAt = s.now()

	if err := s.store.CreateHabit(ctx, h); err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	return h, nil
}

// DeleteHabit deactivates one of the user's habits.
func (s *Service) DeleteHabit(ctx context.Context, userID string, id uuid.UUID) error {
	if id == uuid.Nil {
		return badRequest("Habit ID required")
	}
	h, err := s.store.GetHabit(ctx, id)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && h.UserID != userID) {
		return notFound("Habit not found")
	}
	if err != nil {
		return err
	}
	return s.store.DeactivateHabit(ctx, id)
}

// FindHabit resolves an active habit by full id, id prefix or
// case-insensitive name. The preset catalog is seeded first.
func (s *Service) FindHabit(ctx context.Context, userID, ref string) (*models.Habit, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, badRequest("Habit ID is required")
	}

	if _, err := s.DopamineToday(ctx, userID); err != nil {
		return nil, err
	}
	habits, err := s.store.ListActiveHabits(ctx, userID)
	if err != nil {
		return nil, err
	}

	var matches []*models.Habit
	for _, h := range habits {
		if h.ID.String() == ref || strings.EqualFold(h.Name, ref) {
			return h, nil
		}
		if strings.HasPrefix(h.ID.String(), strings.ToLower(ref)) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return nil, notFound("Habit not found")
	case 1:
		return matches[0], nil
	default:
		return nil, badRequest(fmt.Sprintf("Habit prefix %q matches %d habits", ref, len(matches)))
	}
}
