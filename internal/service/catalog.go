package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/Chinny123a/flightsimspot/internal/domain"
	"github.com/Chinny123a/flightsimspot/internal/repository"
)

// priceSentinel is the sort key assigned to unparseable price strings so
// they land last in ascending order. Client orderings depend on the
// literal value 999.
const priceSentinel = 999

// Sort modes accepted by the simulations listing.
const (
	SortByRating    = "rating"
	SortByPriceLow  = "price_low"
	SortByPriceHigh = "price_high"
	SortByReviews   = "reviews"
	SortByNewest    = "newest"
)

// CategoryInfo is one entry of the category drill-down view.
type CategoryInfo struct {
	Category  string  `json:"category"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avg_rating"`
}

// ManufacturerInfo is one entry of the manufacturer drill-down view.
type ManufacturerInfo struct {
	Manufacturer string   `json:"manufacturer"`
	Count        int      `json:"count"`
	Models       []string `json:"models"`
	AvgRating    float64  `json:"avg_rating"`
}

// PlatformStats is the public statistics summary. Archived aircraft are
// excluded from every count.
type PlatformStats struct {
	TotalAircraft int64 `json:"total_aircraft"`
	TotalReviews  int64 `json:"total_reviews"`
	TotalUsers    int64 `json:"total_users"`
	PaidAircraft  int64 `json:"paid_aircraft"`
	FreeAircraft  int64 `json:"free_aircraft"`
}

// CatalogService implements the browsing hierarchy and the catalog listing
// endpoints.
type CatalogService struct {
	aircraft repository.AircraftRepository
	reviews  repository.ReviewRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(
	aircraft repository.AircraftRepository,
	reviews repository.ReviewRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		aircraft: aircraft,
		reviews:  reviews,
		users:    users,
		logger:   logger,
	}
}

// CategoriesWithCounts returns the category-level drill-down view keyed by
// category name. Archived aircraft never contribute.
func (s *CatalogService) CategoriesWithCounts(ctx context.Context) (map[string]CategoryInfo, error) {
	rows, err := s.aircraft.CategoriesWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories with counts: %w", err)
	}

	categories := make(map[string]CategoryInfo, len(rows))
	for _, row := range rows {
		categories[row.Category] = CategoryInfo{
			Category:  row.Category,
			Count:     row.Count,
			AvgRating: roundToOneDecimal(row.AvgRating),
		}
	}
	return categories, nil
}

// ManufacturersByCategory returns the manufacturer-level drill-down view for
// a category, keyed by manufacturer name. An unknown category yields an
// empty map, not an error.
func (s *CatalogService) ManufacturersByCategory(ctx context.Context, category string) (map[string]ManufacturerInfo, error) {
	rows, err := s.aircraft.ManufacturersByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("manufacturers by category: %w", err)
	}

	manufacturers := make(map[string]ManufacturerInfo, len(rows))
	for _, row := range rows {
		manufacturers[row.Manufacturer] = ManufacturerInfo{
			Manufacturer: row.Manufacturer,
			Count:        row.Count,
			Models:       row.Models,
			AvgRating:    roundToOneDecimal(row.AvgRating),
		}
	}
	return manufacturers, nil
}

// Simulations returns the non-archived aircraft matching a category and
// manufacturer exactly (case-sensitive), ordered by the requested sort mode.
func (s *CatalogService) Simulations(ctx context.Context, category, manufacturer, sortBy string) ([]domain.Aircraft, error) {
	aircraft, err := s.aircraft.List(ctx, repository.AircraftFilter{
		Category:             &category,
		AircraftManufacturer: &manufacturer,
	})
	if err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}

	sortAircraft(aircraft, sortBy)
	return aircraft, nil
}

// ListAircraft returns aircraft matching the filter.
func (s *CatalogService) ListAircraft(ctx context.Context, filter repository.AircraftFilter) ([]domain.Aircraft, error) {
	aircraft, err := s.aircraft.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list aircraft: %w", err)
	}
	return aircraft, nil
}

// GetAircraft returns an aircraft by id. Archived aircraft are returned
// too: the direct fetch deliberately ignores the archive flag.
func (s *CatalogService) GetAircraft(ctx context.Context, id string) (*domain.Aircraft, error) {
	return s.aircraft.GetByID(ctx, id)
}

// Developers returns the sorted distinct developer names.
func (s *CatalogService) Developers(ctx context.Context) ([]string, error) {
	return s.aircraft.Distinct(ctx, "developer")
}

// Categories returns the sorted distinct category names.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.aircraft.Distinct(ctx, "category")
}

// Manufacturers returns the sorted distinct real-world manufacturer names.
func (s *CatalogService) Manufacturers(ctx context.Context) ([]string, error) {
	return s.aircraft.Distinct(ctx, "aircraft_manufacturer")
}

// Stats returns the public platform statistics.
func (s *CatalogService) Stats(ctx context.Context) (*PlatformStats, error) {
	totalAircraft, err := s.aircraft.Count(ctx, repository.AircraftFilter{})
	if err != nil {
		return nil, fmt.Errorf("count aircraft: %w", err)
	}

	totalReviews, err := s.reviews.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	paid := domain.PriceTypePaid
	paidCount, err := s.aircraft.Count(ctx, repository.AircraftFilter{PriceType: &paid})
	if err != nil {
		return nil, fmt.Errorf("count paid aircraft: %w", err)
	}

	free := domain.PriceTypeFreeware
	freeCount, err := s.aircraft.Count(ctx, repository.AircraftFilter{PriceType: &free})
	if err != nil {
		return nil, fmt.Errorf("count freeware aircraft: %w", err)
	}

	return &PlatformStats{
		TotalAircraft: totalAircraft,
		TotalReviews:  totalReviews,
		TotalUsers:    totalUsers,
		PaidAircraft:  paidCount,
		FreeAircraft:  freeCount,
	}, nil
}

// sortAircraft orders the slice in place by the requested mode. Sorting is
// stable, so ties keep the underlying result order. Unknown modes fall back
// to rating.
func sortAircraft(aircraft []domain.Aircraft, sortBy string) {
	switch sortBy {
	case SortByPriceLow:
		sort.SliceStable(aircraft, func(i, j int) bool {
			return parsePrice(aircraft[i].Price) < parsePrice(aircraft[j].Price)
		})
	case SortByPriceHigh:
		sort.SliceStable(aircraft, func(i, j int) bool {
			return parsePrice(aircraft[i].Price) > parsePrice(aircraft[j].Price)
		})
	case SortByReviews:
		sort.SliceStable(aircraft, func(i, j int) bool {
			return aircraft[i].TotalReviews > aircraft[j].TotalReviews
		})
	case SortByNewest:
		// Lexicographic descending works because release dates are
		// ISO-formatted strings.
		sort.SliceStable(aircraft, func(i, j int) bool {
			return aircraft[i].ReleaseDate > aircraft[j].ReleaseDate
		})
	default:
		sort.SliceStable(aircraft, func(i, j int) bool {
			return aircraft[i].AverageRating > aircraft[j].AverageRating
		})
	}
}

// parsePrice converts a display price string into a sort key. "Free", "$0",
// and a missing price parse as 0; otherwise the leading currency symbol and
// thousands separators are stripped and the remainder parsed as a decimal
// number. Anything else gets the sentinel so it sorts last ascending.
func parsePrice(price string) float64 {
	if price == "" || price == "Free" || price == "$0" {
		return 0
	}

	s := strings.ReplaceAll(strings.ReplaceAll(price, "$", ""), ",", "")
	digits := strings.ReplaceAll(s, ".", "")
	if digits == "" {
		return priceSentinel
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return priceSentinel
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return priceSentinel
	}
	return v
}
