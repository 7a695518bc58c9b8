package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Chinny123a/flightsimspot/internal/auth"
	"github.com/Chinny123a/flightsimspot/internal/service"
	"github.com/Chinny123a/flightsimspot/pkg/health"
	"github.com/Chinny123a/flightsimspot/pkg/middleware"
)

// RouterConfig bundles the services and policies the router mounts.
type RouterConfig struct {
	Catalog   *service.CatalogService
	Aircraft  *service.AircraftService
	Reviews   *service.ReviewService
	Users     *service.UserService
	Analytics *service.AnalyticsService

	Verifier *auth.GoogleVerifier
	Sessions *auth.SessionManager

	Health *health.Handler
	Logger *slog.Logger

	CORS              middleware.CORSConfig
	RateLimitRPS      int
	RateLimitBurst    int
	PprofAllowedCIDRs []string
}

// NewRouter creates a chi router with all API routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("api"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("api"))
	r.Use(Session(cfg.Sessions, logger))

	// Operational endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	authHandler := NewAuthHandler(cfg.Users, cfg.Verifier, cfg.Sessions, logger)
	catalogHandler := NewCatalogHandler(cfg.Catalog, logger)
	aircraftHandler := NewAircraftHandler(cfg.Aircraft, logger)
	reviewHandler := NewReviewHandler(cfg.Reviews, logger)
	analyticsHandler := NewAnalyticsHandler(cfg.Analytics, logger)
	userHandler := NewUserHandler(cfg.Users, logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		if cfg.RateLimitRPS > 0 {
			r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
		}

		// Auth
		r.Post("/auth/google/verify", authHandler.GoogleVerify)
		r.Get("/auth/me", authHandler.Me)
		r.Post("/auth/logout", authHandler.Logout)

		// Browsing hierarchy
		r.Get("/categories-with-counts", catalogHandler.CategoriesWithCounts)
		r.Get("/aircraft-manufacturers/{category}", catalogHandler.ManufacturersByCategory)
		r.Get("/simulations/{category}/{manufacturer}", catalogHandler.Simulations)

		// Catalog
		r.Get("/aircraft", catalogHandler.ListAircraft)
		r.Get("/aircraft/{id}", catalogHandler.GetAircraft)
		r.Get("/developers", catalogHandler.Developers)
		r.Get("/categories", catalogHandler.Categories)
		r.Get("/aircraft-manufacturers", catalogHandler.Manufacturers)
		r.Get("/stats", catalogHandler.Stats)

		// Analytics
		r.Post("/aircraft/{id}/view", analyticsHandler.TrackView)
		r.Get("/aircraft-analytics", analyticsHandler.Analytics)

		// Reviews
		r.Get("/aircraft/{id}/reviews", reviewHandler.List)
		r.With(RequireAuth(logger)).Post("/aircraft/{id}/reviews", reviewHandler.Create)

		// User profiles
		r.Get("/users/{id}", userHandler.GetProfile)
		r.Get("/users/{id}/reviews", userHandler.ListReviews)

		// Admin
		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin(logger))

			r.Post("/aircraft", aircraftHandler.Create)
			r.Put("/aircraft/{id}", aircraftHandler.Update)
			r.Post("/aircraft/{id}/archive", aircraftHandler.Archive)
			r.Post("/aircraft/{id}/restore", aircraftHandler.Restore)
			r.Delete("/reviews/{id}", reviewHandler.Delete)
			r.Get("/admin/stats", aircraftHandler.AdminStats)
			r.Get("/admin/archived-aircraft", aircraftHandler.ListArchived)
		})
	})

	return r
}
