package repository

import (
	"context"
	"time"

	"github.com/Chinny123a/flightsimspot/internal/domain"
)

// AircraftFilter defines filter criteria for listing aircraft.
type AircraftFilter struct {
	Category             *string
	Developer            *string
	AircraftManufacturer *string
	PriceType            *string
	Compatibility        *string
	Search               *string
	IncludeArchived      bool
	ArchivedOnly         bool
}

// CategoryCount is one row of the category-level hierarchy aggregation.
type CategoryCount struct {
	Category  string  `bson:"_id" json:"category"`
	Count     int     `bson:"count" json:"count"`
	AvgRating float64 `bson:"avg_rating" json:"avg_rating"`
}

// ManufacturerCount is one row of the manufacturer-level hierarchy aggregation.
type ManufacturerCount struct {
	Manufacturer string   `bson:"_id" json:"manufacturer"`
	Count        int      `bson:"count" json:"count"`
	Models       []string `bson:"models" json:"models"`
	AvgRating    float64  `bson:"avg_rating" json:"avg_rating"`
}

// CategoryViewStats is one row of the per-category view analytics aggregation.
type CategoryViewStats struct {
	Category            string  `bson:"_id" json:"_id"`
	TotalViews          int64   `bson:"total_views" json:"total_views"`
	AircraftCount       int     `bson:"aircraft_count" json:"aircraft_count"`
	AvgViewsPerAircraft float64 `bson:"avg_views_per_aircraft" json:"avg_views_per_aircraft"`
}

// AircraftRepository defines persistence operations for aircraft documents.
type AircraftRepository interface {
	// Create inserts a new aircraft into the store.
	Create(ctx context.Context, aircraft *domain.Aircraft) error

	// GetByID retrieves an aircraft by its application-level id, archived or not.
	GetByID(ctx context.Context, id string) (*domain.Aircraft, error)

	// List returns aircraft matching the given filter.
	List(ctx context.Context, filter AircraftFilter) ([]domain.Aircraft, error)

	// Update applies the non-nil patch fields to an existing aircraft.
	Update(ctx context.Context, id string, patch *domain.AircraftPatch) error

	// SetArchived flips the soft-delete flag, setting or clearing archived_at.
	SetArchived(ctx context.Context, id string, archived bool) error

	// SetRating writes the derived rating summary for an aircraft.
	SetRating(ctx context.Context, id string, averageRating float64, totalReviews int) error

	// IncrementViewCount atomically increments view_count and stamps
	// last_viewed, returning the post-increment counter. The match outcome
	// of the update itself distinguishes a missing id.
	IncrementViewCount(ctx context.Context, id string, viewedAt time.Time) (int64, error)

	// CategoriesWithCounts groups non-archived aircraft by category.
	CategoriesWithCounts(ctx context.Context) ([]CategoryCount, error)

	// ManufacturersByCategory groups a category's non-archived aircraft by
	// real-world manufacturer, collecting the distinct model set.
	ManufacturersByCategory(ctx context.Context, category string) ([]ManufacturerCount, error)

	// MostViewed returns the top non-archived aircraft by view count.
	MostViewed(ctx context.Context, limit int) ([]domain.Aircraft, error)

	// ViewedSince returns the top non-archived aircraft by view count among
	// those viewed at or after the cutoff.
	ViewedSince(ctx context.Context, cutoff time.Time, limit int) ([]domain.Aircraft, error)

	// CategoryViewStats aggregates view counts per category, ordered by
	// total views descending.
	CategoryViewStats(ctx context.Context) ([]CategoryViewStats, error)

	// TotalViews sums view_count across all non-archived aircraft.
	TotalViews(ctx context.Context) (int64, error)

	// Distinct returns the sorted distinct values of a field across all
	// aircraft documents.
	Distinct(ctx context.Context, field string) ([]string, error)

	// Count counts aircraft matching the filter.
	Count(ctx context.Context, filter AircraftFilter) (int64, error)
}

// ReviewRepository defines persistence operations for review documents.
type ReviewRepository interface {
	// Create inserts a new review. A duplicate (aircraft_id, user_id) pair
	// surfaces as ErrConflict via the unique index.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review by id.
	GetByID(ctx context.Context, id string) (*domain.Review, error)

	// ListByAircraftID returns all reviews for an aircraft, newest first.
	ListByAircraftID(ctx context.Context, aircraftID string) ([]domain.Review, error)

	// ListByUserID returns all reviews by a user, newest first.
	ListByUserID(ctx context.Context, userID string) ([]domain.Review, error)

	// Delete removes a review by id.
	Delete(ctx context.Context, id string) error

	// CountAll counts all reviews.
	CountAll(ctx context.Context) (int64, error)

	// CountSince counts reviews created at or after the cutoff.
	CountSince(ctx context.Context, cutoff time.Time) (int64, error)
}

// UserRepository defines persistence operations for user documents.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// IncrementReviewCount bumps the denormalized review counter.
	IncrementReviewCount(ctx context.Context, id string, delta int) error

	// Count counts all users.
	Count(ctx context.Context) (int64, error)

	// CountSince counts users created at or after the cutoff.
	CountSince(ctx context.Context, cutoff time.Time) (int64, error)
}
