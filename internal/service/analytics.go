package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Chinny123a/flightsimspot/internal/domain"
	"github.com/Chinny123a/flightsimspot/internal/repository"
)

const (
	analyticsTopN  = 10
	trendingWindow = 7 * 24 * time.Hour
)

// AircraftAnalytics is the read-side view-count summary.
type AircraftAnalytics struct {
	MostViewed        []domain.Aircraft              `json:"most_viewed"`
	Trending          []domain.Aircraft              `json:"trending"`
	CategoryAnalytics []repository.CategoryViewStats `json:"category_analytics"`
	TotalViews        int64                          `json:"total_views"`
}

// AnalyticsService tracks aircraft page views and derives the analytics
// views from the counter.
type AnalyticsService struct {
	aircraft repository.AircraftRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(aircraft repository.AircraftRepository, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		aircraft: aircraft,
		logger:   logger,
		now:      time.Now,
	}
}

// TrackView records a page view: one atomic increment of the aircraft's
// view counter plus a last_viewed stamp. Returns the post-increment count.
// A missing aircraft id surfaces as NotFound from the update outcome itself.
func (s *AnalyticsService) TrackView(ctx context.Context, aircraftID string) (int64, error) {
	count, err := s.aircraft.IncrementViewCount(ctx, aircraftID, s.now().UTC())
	if err != nil {
		return 0, err
	}

	s.logger.DebugContext(ctx, "view tracked",
		slog.String("aircraft_id", aircraftID),
		slog.Int64("view_count", count),
	)
	return count, nil
}

// Analytics returns the aggregated view statistics. All sections exclude
// archived aircraft.
func (s *AnalyticsService) Analytics(ctx context.Context) (*AircraftAnalytics, error) {
	mostViewed, err := s.aircraft.MostViewed(ctx, analyticsTopN)
	if err != nil {
		return nil, fmt.Errorf("most viewed: %w", err)
	}

	cutoff := s.now().UTC().Add(-trendingWindow)
	trending, err := s.aircraft.ViewedSince(ctx, cutoff, analyticsTopN)
	if err != nil {
		return nil, fmt.Errorf("trending: %w", err)
	}

	categoryStats, err := s.aircraft.CategoryViewStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("category analytics: %w", err)
	}

	totalViews, err := s.aircraft.TotalViews(ctx)
	if err != nil {
		return nil, fmt.Errorf("total views: %w", err)
	}

	return &AircraftAnalytics{
		MostViewed:        mostViewed,
		Trending:          trending,
		CategoryAnalytics: categoryStats,
		TotalViews:        totalViews,
	}, nil
}
