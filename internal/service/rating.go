package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/Chinny123a/flightsimspot/internal/repository"
)

// RatingAggregator keeps an aircraft's derived rating summary consistent
// with its review set. It is the single recomputation entry point: every
// code path that creates or deletes a review must call Recompute, never
// duplicate the aggregation inline.
type RatingAggregator struct {
	aircraft repository.AircraftRepository
	reviews  repository.ReviewRepository
	logger   *slog.Logger
}

// NewRatingAggregator creates a rating aggregator.
func NewRatingAggregator(aircraft repository.AircraftRepository, reviews repository.ReviewRepository, logger *slog.Logger) *RatingAggregator {
	return &RatingAggregator{
		aircraft: aircraft,
		reviews:  reviews,
		logger:   logger,
	}
}

// Recompute re-reads the full review set for the aircraft and writes the
// derived summary. Always re-reading (rather than incrementally adjusting
// the average) is what makes interleaved recomputations converge.
func (a *RatingAggregator) Recompute(ctx context.Context, aircraftID string) error {
	reviews, err := a.reviews.ListByAircraftID(ctx, aircraftID)
	if err != nil {
		return fmt.Errorf("recompute rating: %w", err)
	}

	if len(reviews) == 0 {
		// Reset rather than leave stale values after the last review is deleted.
		if err := a.aircraft.SetRating(ctx, aircraftID, 0.0, 0); err != nil {
			return fmt.Errorf("reset rating: %w", err)
		}
		return nil
	}

	var total int
	for _, r := range reviews {
		total += r.Ratings.Overall
	}
	average := roundToOneDecimal(float64(total) / float64(len(reviews)))

	if err := a.aircraft.SetRating(ctx, aircraftID, average, len(reviews)); err != nil {
		return fmt.Errorf("write rating: %w", err)
	}

	a.logger.DebugContext(ctx, "rating recomputed",
		slog.String("aircraft_id", aircraftID),
		slog.Float64("average_rating", average),
		slog.Int("total_reviews", len(reviews)),
	)

	return nil
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
