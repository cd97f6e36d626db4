// ABOUTME: Service orchestrating journey state, per-day records and scoring for a user.
// ABOUTME: All operations take an opaque authenticated user id and a context.
package today

import (
	"errors"
	"time"

	"github.com/harperreed/recomp/internal/storage"
)

// Sentinel error kinds. Use errors.Is to classify service errors.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)

// Error is a classified service error with a client-safe message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func notFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

func badRequest(msg string) error {
	return &Error{Kind: ErrBadRequest, Msg: msg}
}

// Clock returns the current instant.
type Clock func() time.Time

// Service implements the daily-state derivation and mutation operations.
type Service struct {
	store storage.Store
	now   Clock
	loc   *time.Location
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(s *Service) {
		s.now = c
	}
}

// WithLocation sets the time zone used to find calendar-day boundaries.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New creates a Service over the given store.
func New(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the time zone used for day boundaries.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Now returns the service clock's current instant.
func (s *Service) Now() time.Time {
	return s.now()
}
