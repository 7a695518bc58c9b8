package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Chinny123a/flightsimspot/internal/domain"
	"github.com/Chinny123a/flightsimspot/internal/event"
	"github.com/Chinny123a/flightsimspot/internal/repository"
)

// CreateReviewInput holds the user-supplied parameters for a new review.
type CreateReviewInput struct {
	Title   string
	Content string
	Ratings domain.Ratings
}

// ReviewService implements review creation, listing, and admin deletion.
type ReviewService struct {
	reviews  repository.ReviewRepository
	aircraft repository.AircraftRepository
	users    repository.UserRepository
	rating   *RatingAggregator
	events   *event.Producer
	logger   *slog.Logger
	now      func() time.Time
}

// NewReviewService creates a review service.
func NewReviewService(
	reviews repository.ReviewRepository,
	aircraft repository.AircraftRepository,
	users repository.UserRepository,
	rating *RatingAggregator,
	events *event.Producer,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		aircraft: aircraft,
		users:    users,
		rating:   rating,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// ListForAircraft returns all reviews for an aircraft, newest first.
func (s *ReviewService) ListForAircraft(ctx context.Context, aircraftID string) ([]domain.Review, error) {
	return s.reviews.ListByAircraftID(ctx, aircraftID)
}

// Create persists a new review for the authenticated user, then recomputes
// the aircraft's rating summary and bumps the user's review counter. The
// reviewer's name and avatar are denormalized into the review at creation
// time. The unique index on (aircraft_id, user_id) rejects duplicates even
// under concurrent submissions.
func (s *ReviewService) Create(ctx context.Context, aircraftID string, user *domain.SessionUser, input *CreateReviewInput) (*domain.Review, error) {
	// The aircraft must exist before a review can attach to it.
	if _, err := s.aircraft.GetByID(ctx, aircraftID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:           uuid.New().String(),
		AircraftID:   aircraftID,
		UserID:       user.ID,
		UserName:     user.Name,
		UserAvatar:   user.AvatarURL,
		Title:        input.Title,
		Content:      input.Content,
		Ratings:      input.Ratings,
		HelpfulCount: 0,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	// The review is already persisted; a failed recomputation leaves the
	// displayed rating transiently stale until the next successful one.
	// That is reported, not rolled back.
	if err := s.rating.Recompute(ctx, aircraftID); err != nil {
		s.logger.ErrorContext(ctx, "rating recomputation failed after review creation",
			slog.String("aircraft_id", aircraftID),
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.users.IncrementReviewCount(ctx, user.ID, 1); err != nil {
		s.logger.WarnContext(ctx, "failed to increment user review count",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.events.PublishReviewCreated(ctx, review); err != nil {
		s.logger.WarnContext(ctx, "failed to publish review.created event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("aircraft_id", aircraftID),
		slog.String("user_id", user.ID),
		slog.Int("overall", review.Ratings.Overall),
	)

	return review, nil
}

// Delete removes a review (admin moderation) and recomputes the rating of
// the aircraft it belonged to.
func (s *ReviewService) Delete(ctx context.Context, reviewID string) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	if err := s.rating.Recompute(ctx, review.AircraftID); err != nil {
		s.logger.ErrorContext(ctx, "rating recomputation failed after review deletion",
			slog.String("aircraft_id", review.AircraftID),
			slog.String("review_id", reviewID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.events.PublishReviewDeleted(ctx, reviewID, review.AircraftID); err != nil {
		s.logger.WarnContext(ctx, "failed to publish review.deleted event",
			slog.String("review_id", reviewID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review deleted",
		slog.String("review_id", reviewID),
		slog.String("aircraft_id", review.AircraftID),
	)

	return nil
}
