package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Chinny123a/flightsimspot/internal/domain"
	"github.com/Chinny123a/flightsimspot/internal/repository"
	apperrors "github.com/Chinny123a/flightsimspot/pkg/errors"
)

// GoogleIdentity is the verified identity returned by the token verifier.
type GoogleIdentity struct {
	Email     string
	Name      string
	Picture   string
	SubjectID string
}

// UserService implements user profiles and account provisioning.
type UserService struct {
	users       repository.UserRepository
	reviews     repository.ReviewRepository
	aircraft    repository.AircraftRepository
	adminEmails map[string]struct{}
	logger      *slog.Logger
	now         func() time.Time
}

// NewUserService creates a user service. adminEmails is the injected
// allow-list: matching emails get is_admin at account creation, and the
// flag is immutable through normal flows afterwards.
func NewUserService(
	users repository.UserRepository,
	reviews repository.ReviewRepository,
	aircraft repository.AircraftRepository,
	adminEmails []string,
	logger *slog.Logger,
) *UserService {
	allow := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		allow[email] = struct{}{}
	}
	return &UserService{
		users:       users,
		reviews:     reviews,
		aircraft:    aircraft,
		adminEmails: allow,
		logger:      logger,
		now:         time.Now,
	}
}

// FindOrCreateFromGoogle resolves a verified Google identity to a local
// account, creating one on first sign-in.
func (s *UserService) FindOrCreateFromGoogle(ctx context.Context, identity *GoogleIdentity) (*domain.User, error) {
	existing, err := s.users.GetByEmail(ctx, identity.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	_, isAdmin := s.adminEmails[identity.Email]
	user := &domain.User{
		ID:          uuid.New().String(),
		Email:       identity.Email,
		Name:        identity.Name,
		AvatarURL:   identity.Picture,
		Provider:    "google",
		ProviderID:  identity.SubjectID,
		IsAdmin:     isAdmin,
		ReviewCount: 0,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Two first sign-ins racing on the same email: the unique index
		// rejects the loser, which then reads the winner's account.
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return s.users.GetByEmail(ctx, identity.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
		slog.Bool("is_admin", user.IsAdmin),
	)

	return user, nil
}

// GetProfile returns a user's public profile.
func (s *UserService) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListReviews returns a user's reviews, newest first, each annotated with
// a compact summary of the aircraft it belongs to.
func (s *UserService) ListReviews(ctx context.Context, userID string) ([]domain.UserReview, error) {
	reviews, err := s.reviews.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}

	annotated := make([]domain.UserReview, 0, len(reviews))
	for _, review := range reviews {
		ur := domain.UserReview{Review: review}

		aircraft, err := s.aircraft.GetByID(ctx, review.AircraftID)
		switch {
		case err == nil:
			ur.Aircraft = &domain.AircraftSummary{
				Name:                 aircraft.Name,
				Developer:            aircraft.Developer,
				AircraftManufacturer: aircraft.AircraftManufacturer,
				AircraftModel:        aircraft.AircraftModel,
			}
		case errors.Is(err, apperrors.ErrNotFound):
			// The aircraft was removed; the review still lists without it.
		default:
			return nil, fmt.Errorf("annotate review %s: %w", review.ID, err)
		}

		annotated = append(annotated, ur)
	}

	return annotated, nil
}
