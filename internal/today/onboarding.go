// ABOUTME: User registration, onboarding and profile reads.
// ABOUTME: Onboarding stores the profile with BMR and TDEE estimates and starts the journey.
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

// OnboardingInput is the questionnaire submitted at onboarding. Nil or
// non-positive numbers count as missing.
type OnboardingInput struct {
	Height               *float64
	Weight               *float64
	TargetWeight         *float64
	Age                  *int
	Gender               *string
	ActivityLevel        *string
	FitnessGoal          *string
	ExperienceLevel      *string
	WorkoutDays          *int
	PreferredWorkoutTime *string
}

// ProfileView is a user with their onboarding profile, if any.
type ProfileView struct {
	User    *models.User
	Profile *models.Profile
}

// EnsureUser registers an authenticated identity. Email and name refresh the
// stored values when given.
func (s *Service) EnsureUser(ctx context.Context, userID string, email, name *string) error {
	if userID == "" {
		return badRequest("User ID is required")
	}
	return s.store.EnsureUser(ctx, &models.User{ID: userID, Email: email, Name: name, CreatedAt: s.now()})
}

// Onboard stores the user's profile, marks onboarding complete, starts a
// journey if none is active and seeds preset habits for users without any.
func (s *Service) Onboard(ctx context.Context, userID string, in OnboardingInput) (*models.Profile, error) {
	if err := s.EnsureUser(ctx, userID, nil, nil); err != nil {
		return nil, err
	}

	p := &models.Profile{
		UserID:               userID,
		Height:               positive(in.Height),
		Weight:               positive(in.Weight),
		TargetWeight:         positive(in.TargetWeight),
		Age:                  positiveInt(in.Age),
		Gender:               in.Gender,
		ActivityLevel:        in.ActivityLevel,
		FitnessGoal:          in.FitnessGoal,
		ExperienceLevel:      in.ExperienceLevel,
		WorkoutDays:          program.DefaultWorkoutDays,
		PreferredWorkoutTime: in.PreferredWorkoutTime,
		UpdatedAt:            s.now(),
	}
	if wd := positiveInt(in.WorkoutDays); wd != nil {
		p.WorkoutDays = *wd
	}

	height, weight, age := program.DefaultHeightCM, program.DefaultWeightKG, program.DefaultAge
	if p.Height != nil {
		height = *p.Height
	}
	if p.Weight != nil {
		weight = *p.Weight
	}
	if p.Age != nil {
		age = *p.Age
	}
	p.BMR = program.BMR(height, weight, age, deref(p.Gender))
	p.TDEE = program.TDEE(p.BMR, deref(p.ActivityLevel))

	err := s.store.InTx(ctx, func(tx storage.Store) error {
		if err := tx.UpsertProfile(ctx, p); err != nil {
			return err
		}
		if err := tx.SetOnboardingComplete(ctx, userID); err != nil {
			return err
		}
		if _, err := tx.CreateJourney(ctx, models.NewJourney(userID, s.now())); err != nil {
			return err
		}
		return s.ensureHabits(ctx, tx, userID, program.OnboardingHabits)
	})
	if err != nil {
		return nil, fmt.Errorf("onboard: %w", err)
	}
	logging.Info("user onboarded", "user", userID, "bmr", p.BMR, "tdee", p.TDEE)
	return p, nil
}

// Profile returns the user and their profile. A user who has not onboarded
// has a nil profile.
func (s *Service) Profile(ctx context.Context, userID string) (*ProfileView, error) {
	u, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("User not found")
	}
	if err != nil {
		return nil, err
	}

	p, err := s.store.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	return &ProfileView{User: u, Profile: p}, nil
}

func positive(f *float64) *float64 {
	if f == nil || !(*f > 0) {
		return nil
	}
	return f
}

func positiveInt(n *int) *int {
	if n == nil || *n <= 0 {
		return nil
	}
	return n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
