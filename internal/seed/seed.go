package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Chinny123a/flightsimspot/internal/domain"
	"github.com/Chinny123a/flightsimspot/internal/repository"
)

// AircraftStore is the subset of the aircraft repository the seeder needs.
type AircraftStore interface {
	Count(ctx context.Context, filter repository.AircraftFilter) (int64, error)
	Create(ctx context.Context, aircraft *domain.Aircraft) error
}

// Seeder bootstraps the catalog with the sample fleet on first start.
type Seeder struct {
	aircraft AircraftStore
	logger   *slog.Logger
}

// New creates a seeder.
func New(aircraft AircraftStore, logger *slog.Logger) *Seeder {
	return &Seeder{aircraft: aircraft, logger: logger}
}

// Seed inserts the sample fleet, but only when the aircraft collection is
// completely empty. On a populated database it is a no-op, so existing
// production data is never touched.
func (s *Seeder) Seed(ctx context.Context) error {
	count, err := s.aircraft.Count(ctx, repository.AircraftFilter{IncludeArchived: true})
	if err != nil {
		return fmt.Errorf("seed: count aircraft: %w", err)
	}
	if count > 0 {
		s.logger.InfoContext(ctx, "seed skipped, aircraft collection not empty",
			slog.Int64("existing", count),
		)
		return nil
	}

	fleet := sampleFleet(time.Now().UTC())
	for i := range fleet {
		if err := s.aircraft.Create(ctx, &fleet[i]); err != nil {
			return fmt.Errorf("seed: insert %q: %w", fleet[i].Name, err)
		}
	}

	s.logger.InfoContext(ctx, "sample fleet seeded", slog.Int("aircraft", len(fleet)))
	return nil
}

// sampleFleet returns the initial catalog. Ratings and view counters start
// zeroed; they are derived at runtime.
func sampleFleet(now time.Time) []domain.Aircraft {
	base := func(a domain.Aircraft) domain.Aircraft {
		a.ID = uuid.New().String()
		a.AdditionalImages = []string{}
		a.AverageRating = 0.0
		a.TotalReviews = 0
		a.IsArchived = false
		a.ViewCount = 0
		a.LastViewed = nil
		a.CreatedAt = now
		return a
	}

	return []domain.Aircraft{
		base(domain.Aircraft{
			Name:                 "737-800",
			Developer:            "PMDG",
			AircraftManufacturer: "Boeing",
			AircraftModel:        "737-800",
			Variant:              "737-800",
			Category:             domain.CategoryCommercial,
			PriceType:            domain.PriceTypePaid,
			Price:                "$69.99",
			Description:          "The most advanced 737-800 simulation with study-level systems depth and exceptional flight model accuracy.",
			ReleaseDate:          "2024-01-15",
			Compatibility:        []string{"MS2024"},
			DownloadURL:          "https://pmdg.com",
			DeveloperWebsite:     "https://pmdg.com",
			Features:             []string{"Study Level Systems", "Custom EFB", "Realistic Failures", "Advanced Weather Radar"},
		}),
		base(domain.Aircraft{
			Name:                 "A320",
			Developer:            "Fenix",
			AircraftManufacturer: "Airbus",
			AircraftModel:        "A320",
			Variant:              "A320-200",
			Category:             domain.CategoryCommercial,
			PriceType:            domain.PriceTypePaid,
			Price:                "$59.99",
			Description:          "Ultra-realistic A320 with custom EFB, detailed systems simulation, and authentic flight procedures.",
			ReleaseDate:          "2023-12-10",
			Compatibility:        []string{"MS2024", "MS2020"},
			DownloadURL:          "https://fenixsim.com",
			DeveloperWebsite:     "https://fenixsim.com",
			Features:             []string{"Custom EFB", "Real-time Weather", "Detailed Systems", "MCDU Integration"},
		}),
		base(domain.Aircraft{
			Name:                 "A32NX",
			Developer:            "FlyByWire",
			AircraftManufacturer: "Airbus",
			AircraftModel:        "A320",
			Variant:              "A320neo",
			Category:             domain.CategoryCommercial,
			PriceType:            domain.PriceTypeFreeware,
			Price:                "Free",
			Description:          "Community-driven A320neo with modern avionics, realistic systems, and continuous updates.",
			ReleaseDate:          "2024-02-20",
			Compatibility:        []string{"MS2024", "MS2020"},
			DownloadURL:          "https://flybywiresim.com",
			DeveloperWebsite:     "https://flybywiresim.com",
			Features:             []string{"Modern Avionics", "Community Support", "Regular Updates", "Realistic Flight Model"},
		}),
		base(domain.Aircraft{
			Name:                 "Citation CJ4",
			Developer:            "Working Title",
			AircraftManufacturer: "Cessna",
			AircraftModel:        "Citation CJ4",
			Variant:              "CJ4",
			Category:             domain.CategoryGeneralAviation,
			PriceType:            domain.PriceTypeFreeware,
			Price:                "Free",
			Description:          "Enhanced CJ4 with improved avionics, flight management system, and realistic performance.",
			ReleaseDate:          "2023-11-30",
			Compatibility:        []string{"MS2024", "MS2020"},
			DownloadURL:          "https://workingtitle.aero",
			DeveloperWebsite:     "https://workingtitle.aero",
			Features:             []string{"Enhanced Avionics", "Realistic FMS", "Accurate Performance", "Modern UI"},
		}),
		base(domain.Aircraft{
			Name:                 "Kodiak 100",
			Developer:            "SWS",
			AircraftManufacturer: "Quest",
			AircraftModel:        "Kodiak 100",
			Variant:              "Kodiak 100",
			Category:             domain.CategoryGeneralAviation,
			PriceType:            domain.PriceTypePaid,
			Price:                "$29.99",
			Description:          "Highly detailed turboprop with authentic systems, beautiful exterior modeling, and realistic flight characteristics.",
			ReleaseDate:          "2024-01-05",
			Compatibility:        []string{"MS2024"},
			DownloadURL:          "https://swsim.com",
			DeveloperWebsite:     "https://swsim.com",
			Features:             []string{"Detailed Systems", "Realistic Physics", "Beautiful Modeling", "Authentic Sounds"},
		}),
		base(domain.Aircraft{
			Name:                 "TBM 930",
			Developer:            "Carenado",
			AircraftManufacturer: "Daher",
			AircraftModel:        "TBM 930",
			Variant:              "TBM 930",
			Category:             domain.CategoryGeneralAviation,
			PriceType:            domain.PriceTypePaid,
			Price:                "$34.99",
			Description:          "Premium single-engine turboprop with detailed cockpit, realistic avionics, and excellent performance modeling.",
			ReleaseDate:          "2023-10-12",
			Compatibility:        []string{"MS2024", "MS2020"},
			DownloadURL:          "https://carenado.com",
			DeveloperWebsite:     "https://carenado.com",
			Features:             []string{"G1000 NXi", "Realistic Turboprop", "High Quality Textures", "Accurate Performance"},
		}),
		base(domain.Aircraft{
			Name:                 "F/A-18 Super Hornet",
			Developer:            "Asobo",
			AircraftManufacturer: "Boeing",
			AircraftModel:        "F/A-18 Super Hornet",
			Variant:              "F/A-18F",
			Category:             domain.CategoryMilitary,
			PriceType:            domain.PriceTypePaid,
			Price:                "$19.99",
			Description:          "Official military fighter jet with carrier operations, weapon systems, and authentic naval procedures.",
			ReleaseDate:          "2024-03-01",
			Compatibility:        []string{"MS2024"},
			DownloadURL:          "https://flightsimulator.com",
			DeveloperWebsite:     "https://flightsimulator.com",
			Features:             []string{"Carrier Operations", "Weapon Systems", "Military Procedures", "Authentic Cockpit"},
		}),
		base(domain.Aircraft{
			Name:                 "H145",
			Developer:            "Hype Performance Group",
			AircraftManufacturer: "Airbus",
			AircraftModel:        "H145",
			Variant:              "H145",
			Category:             domain.CategoryHelicopters,
			PriceType:            domain.PriceTypePaid,
			Price:                "$39.99",
			Description:          "Study-level helicopter simulation with advanced flight model, authentic systems, and detailed cockpit.",
			ReleaseDate:          "2024-02-14",
			Compatibility:        []string{"MS2024"},
			DownloadURL:          "https://hpg.aero",
			DeveloperWebsite:     "https://hpg.aero",
			Features:             []string{"Study Level Systems", "Advanced Flight Model", "Authentic Procedures", "Detailed Cockpit"},
		}),
	}
}
