// ABOUTME: Mindset lesson unlocking and completion.
// ABOUTME: Lessons unlock once their day is reached and are never locked again.
package today

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/storage"
)

// MindsetView lists the lessons unlocked as of Day with the user's progress.
type MindsetView struct {
	Day     int
	Lessons []models.LessonWithProgress
}

// MindsetToday unlocks every lesson reachable on the current journey day and
// returns them with progress.
func (s *Service) MindsetToday(ctx context.Context, userID string) (*MindsetView, error) {
	j, err := s.Journey(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Mindset(ctx, userID, j.CurrentDay)
}

// Mindset unlocks lessons with an unlock day at or before day and returns
// them ordered by unlock day and position.
func (s *Service) Mindset(ctx context.Context, userID string, day int) (*MindsetView, error) {
	lessons, err := s.store.ListUnlockableLessons(ctx, day)
	if err != nil {
		return nil, err
	}

	now := s.now()
	err = s.store.InTx(ctx, func(tx storage.Store) error {
		for _, l := range lessons {
			p := &models.MindsetProgress{
				ID:         uuid.New(),
				UserID:     userID,
				LessonID:   l.ID,
				IsUnlocked: true,
				UnlockedAt: &now,
			}
			if _, err := tx.InsertMindsetProgress(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unlock lessons: %w", err)
	}

	progress, err := s.store.ListMindsetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	byLesson := make(map[uuid.UUID]*models.MindsetProgress, len(progress))
	for _, p := range progress {
		byLesson[p.LessonID] = p
	}

	view := &MindsetView{Day: day, Lessons: make([]models.LessonWithProgress, 0, len(lessons))}
	for _, l := range lessons {
		view.Lessons = append(view.Lessons, models.LessonWithProgress{Lesson: *l, Progress: byLesson[l.ID]})
	}
	return view, nil
}

// CompleteLesson marks an unlocked lesson completed and returns the refreshed
// mindset view.
func (s *Service) CompleteLesson(ctx context.Context, userID string, lessonID uuid.UUID) (*MindsetView, error) {
	p, err := s.store.GetMindsetProgress(ctx, userID, lessonID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("Lesson progress not found")
	}
	if err != nil {
		return nil, err
	}
	if !p.IsUnlocked {
		return nil, badRequest("Lesson is not yet unlocked")
	}
	if p.IsCompleted {
		return nil, badRequest("Lesson already completed")
	}

	if err := s.store.CompleteMindsetProgress(ctx, p.ID, s.now()); err != nil {
		return nil, fmt.Errorf("complete lesson: %w", err)
	}
	return s.MindsetToday(ctx, userID)
}
