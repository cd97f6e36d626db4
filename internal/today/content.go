// ABOUTME: Reference content for a user: quotes with bookmarks and brain courses with progress.
// ABOUTME: Content rows are shared; only bookmarks and course progress are per user.
package today

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/storage"
)

// DefaultQuoteLimit caps quote listings when no limit is given.
const DefaultQuoteLimit = 10

// QuoteQuery filters a quote listing.
type QuoteQuery struct {
	Category *string
	Random   bool
	Limit    int
}

// QuoteView is a quote flagged with whether the user bookmarked it.
type QuoteView struct {
	*models.Quote
	IsSaved bool
}

// Quotes lists active quotes, optionally shuffled, with the user's bookmarks.
func (s *Service) Quotes(ctx context.Context, userID string, q QuoteQuery) ([]QuoteView, error) {
	quotes, err := s.store.ListQuotes(ctx, q.Category)
	if err != nil {
		return nil, err
	}
	if q.Random {
		rand.Shuffle(len(quotes), func(i, j int) { quotes[i], quotes[j] = quotes[j], quotes[i] })
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultQuoteLimit
	}
	if len(quotes) > limit {
		quotes = quotes[:limit]
	}

	saved, err := s.store.ListSavedQuotes(ctx, userID)
	if err != nil {
		return nil, err
	}
	savedIDs := make(map[uuid.UUID]bool, len(saved))
	for _, sq := range saved {
		savedIDs[sq.ID] = true
	}

	out := make([]QuoteView, 0, len(quotes))
	for _, quote := range quotes {
		out = append(out, QuoteView{Quote: quote, IsSaved: savedIDs[quote.ID]})
	}
	return out, nil
}

// SaveQuote bookmarks a quote. Saving twice is a no-op.
func (s *Service) SaveQuote(ctx context.Context, userID string, quoteID uuid.UUID) error {
	if quoteID == uuid.Nil {
		return badRequest("Quote ID required")
	}
	if _, err := s.store.GetQuote(ctx, quoteID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound("Quote not found")
		}
		return err
	}
	return s.store.SaveQuote(ctx, userID, quoteID, s.now())
}

// UnsaveQuote removes a bookmark. Removing a missing bookmark is a no-op.
func (s *Service) UnsaveQuote(ctx context.Context, userID string, quoteID uuid.UUID) error {
	if quoteID == uuid.Nil {
		return badRequest("Quote ID required")
	}
	err := s.store.UnsaveQuote(ctx, userID, quoteID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}

// Courses lists active courses with the user's progress.
func (s *Service) Courses(ctx context.Context, userID string, category *string) ([]*models.BrainCourse, error) {
	return s.store.ListCourses(ctx, userID, category)
}

// Course returns one course with its modules and the user's progress.
func (s *Service) Course(ctx context.Context, userID string, id uuid.UUID) (*models.BrainCourse, error) {
	c, err := s.store.GetCourse(ctx, userID, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("Course not found")
	}
	return c, err
}

// UpdateCourseProgress records that the user finished module moduleIndex.
// The course counts as completed when flagged or when the last module is reached.
func (s *Service) UpdateCourseProgress(ctx context.Context, userID string, courseID uuid.UUID, moduleIndex int, completed bool) (*models.CourseProgress, error) {
	if moduleIndex < 0 {
		return nil, badRequest("Module index must not be negative")
	}
	c, err := s.Course(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	p := &models.CourseProgress{
		UserID:        userID,
		CourseID:      c.ID,
		CurrentModule: moduleIndex + 1,
		IsCompleted:   completed || moduleIndex >= len(c.Modules)-1,
	}
	if p.IsCompleted {
		now := s.now()
		p.CompletedAt = &now
	}
	if err := s.store.UpsertCourseProgress(ctx, p); err != nil {
		return nil, fmt.Errorf("update course progress: %w", err)
	}
	return p, nil
}
