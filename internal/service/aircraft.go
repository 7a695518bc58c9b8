package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Chinny123a/flightsimspot/internal/domain"
	"github.com/Chinny123a/flightsimspot/internal/event"
	"github.com/Chinny123a/flightsimspot/internal/repository"
)

// CreateAircraftInput holds the parameters for creating a catalog entry.
// Derived fields (rating, views, archive state) always start zeroed.
type CreateAircraftInput struct {
	Name                 string
	Developer            string
	AircraftManufacturer string
	AircraftModel        string
	Variant              string
	Category             string
	PriceType            string
	Price                string
	Description          string
	ImageURL             string
	CockpitImageURL      string
	AdditionalImages     []string
	ReleaseDate          string
	Compatibility        []string
	DownloadURL          string
	DeveloperWebsite     string
	Features             []string
}

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	TotalUsers         int64 `json:"total_users"`
	TotalAircraft      int64 `json:"total_aircraft"`
	ArchivedAircraft   int64 `json:"archived_aircraft"`
	TotalReviews       int64 `json:"total_reviews"`
	RecentUsers7Days   int64 `json:"recent_users_7_days"`
	RecentReviews7Days int64 `json:"recent_reviews_7_days"`
}

// AircraftService implements the admin-side catalog operations.
type AircraftService struct {
	aircraft repository.AircraftRepository
	reviews  repository.ReviewRepository
	users    repository.UserRepository
	events   *event.Producer
	logger   *slog.Logger
	now      func() time.Time
}

// NewAircraftService creates an aircraft service.
func NewAircraftService(
	aircraft repository.AircraftRepository,
	reviews repository.ReviewRepository,
	users repository.UserRepository,
	events *event.Producer,
	logger *slog.Logger,
) *AircraftService {
	return &AircraftService{
		aircraft: aircraft,
		reviews:  reviews,
		users:    users,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// Create inserts a new aircraft with a generated id and zeroed derived fields.
func (s *AircraftService) Create(ctx context.Context, input *CreateAircraftInput) (*domain.Aircraft, error) {
	aircraft := &domain.Aircraft{
		ID:                   uuid.New().String(),
		Name:                 input.Name,
		Developer:            input.Developer,
		AircraftManufacturer: input.AircraftManufacturer,
		AircraftModel:        input.AircraftModel,
		Variant:              input.Variant,
		Category:             input.Category,
		PriceType:            input.PriceType,
		Price:                input.Price,
		Description:          input.Description,
		ImageURL:             input.ImageURL,
		CockpitImageURL:      input.CockpitImageURL,
		AdditionalImages:     emptyIfNil(input.AdditionalImages),
		ReleaseDate:          input.ReleaseDate,
		Compatibility:        emptyIfNil(input.Compatibility),
		DownloadURL:          input.DownloadURL,
		DeveloperWebsite:     input.DeveloperWebsite,
		Features:             emptyIfNil(input.Features),
		AverageRating:        0.0,
		TotalReviews:         0,
		IsArchived:           false,
		ViewCount:            0,
		LastViewed:           nil,
		CreatedAt:            s.now().UTC(),
	}

	if err := s.aircraft.Create(ctx, aircraft); err != nil {
		return nil, fmt.Errorf("create aircraft: %w", err)
	}

	s.logger.InfoContext(ctx, "aircraft created",
		slog.String("aircraft_id", aircraft.ID),
		slog.String("name", aircraft.Name),
		slog.String("category", aircraft.Category),
	)

	return aircraft, nil
}

// Update applies a partial update to an existing aircraft.
func (s *AircraftService) Update(ctx context.Context, id string, patch *domain.AircraftPatch) error {
	if err := s.aircraft.Update(ctx, id, patch); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "aircraft updated", slog.String("aircraft_id", id))
	return nil
}

// Archive soft-deletes an aircraft: hidden from default views, retained in
// storage.
func (s *AircraftService) Archive(ctx context.Context, id string) error {
	aircraft, err := s.aircraft.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.aircraft.SetArchived(ctx, id, true); err != nil {
		return err
	}

	if err := s.events.PublishAircraftArchived(ctx, aircraft); err != nil {
		s.logger.WarnContext(ctx, "failed to publish aircraft.archived event",
			slog.String("aircraft_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "aircraft archived", slog.String("aircraft_id", id))
	return nil
}

// Restore brings an archived aircraft back into the catalog.
func (s *AircraftService) Restore(ctx context.Context, id string) error {
	aircraft, err := s.aircraft.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.aircraft.SetArchived(ctx, id, false); err != nil {
		return err
	}

	if err := s.events.PublishAircraftRestored(ctx, aircraft); err != nil {
		s.logger.WarnContext(ctx, "failed to publish aircraft.restored event",
			slog.String("aircraft_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "aircraft restored", slog.String("aircraft_id", id))
	return nil
}

// ListArchived returns all archived aircraft.
func (s *AircraftService) ListArchived(ctx context.Context) ([]domain.Aircraft, error) {
	return s.aircraft.List(ctx, repository.AircraftFilter{ArchivedOnly: true})
}

// Stats returns the admin dashboard statistics.
func (s *AircraftService) Stats(ctx context.Context) (*AdminStats, error) {
	totalAircraft, err := s.aircraft.Count(ctx, repository.AircraftFilter{})
	if err != nil {
		return nil, fmt.Errorf("count aircraft: %w", err)
	}

	archived, err := s.aircraft.Count(ctx, repository.AircraftFilter{ArchivedOnly: true})
	if err != nil {
		return nil, fmt.Errorf("count archived aircraft: %w", err)
	}

	totalReviews, err := s.reviews.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	cutoff := s.now().UTC().Add(-7 * 24 * time.Hour)
	recentUsers, err := s.users.CountSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("count recent users: %w", err)
	}

	recentReviews, err := s.reviews.CountSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("count recent reviews: %w", err)
	}

	return &AdminStats{
		TotalUsers:         totalUsers,
		TotalAircraft:      totalAircraft,
		ArchivedAircraft:   archived,
		TotalReviews:       totalReviews,
		RecentUsers7Days:   recentUsers,
		RecentReviews7Days: recentReviews,
	}, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
