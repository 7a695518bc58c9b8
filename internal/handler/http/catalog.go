package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Chinny123a/flightsimspot/internal/repository"
	"github.com/Chinny123a/flightsimspot/internal/service"
	"github.com/Chinny123a/flightsimspot/pkg/httputil"
)

// CatalogHandler handles the public browsing and listing endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(catalog *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// CategoriesWithCounts handles GET /api/categories-with-counts.
func (h *CatalogHandler) CategoriesWithCounts(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.CategoriesWithCounts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, categories)
}

// ManufacturersByCategory handles GET /api/aircraft-manufacturers/{category}.
func (h *CatalogHandler) ManufacturersByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	manufacturers, err := h.catalog.ManufacturersByCategory(r.Context(), category)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, manufacturers)
}

// Simulations handles GET /api/simulations/{category}/{manufacturer}.
func (h *CatalogHandler) Simulations(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	manufacturer := chi.URLParam(r, "manufacturer")
	sortBy := r.URL.Query().Get("sort_by")

	aircraft, err := h.catalog.Simulations(r.Context(), category, manufacturer, sortBy)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, aircraft)
}

// ListAircraft handles GET /api/aircraft.
func (h *CatalogHandler) ListAircraft(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.AircraftFilter{
		Category:             queryParam(q.Get("category")),
		Developer:            queryParam(q.Get("developer")),
		AircraftManufacturer: queryParam(q.Get("aircraft_manufacturer")),
		PriceType:            queryParam(q.Get("price_type")),
		Compatibility:        queryParam(q.Get("compatibility")),
		Search:               queryParam(q.Get("search")),
		IncludeArchived:      q.Get("include_archived") == "true",
	}

	aircraft, err := h.catalog.ListAircraft(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, aircraft)
}

// GetAircraft handles GET /api/aircraft/{id}. Archived aircraft resolve
// too; only the listings hide them.
func (h *CatalogHandler) GetAircraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	aircraft, err := h.catalog.GetAircraft(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, aircraft)
}

// Developers handles GET /api/developers.
func (h *CatalogHandler) Developers(w http.ResponseWriter, r *http.Request) {
	developers, err := h.catalog.Developers(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, developers)
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, categories)
}

// Manufacturers handles GET /api/aircraft-manufacturers.
func (h *CatalogHandler) Manufacturers(w http.ResponseWriter, r *http.Request) {
	manufacturers, err := h.catalog.Manufacturers(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, manufacturers)
}

// Stats handles GET /api/stats.
func (h *CatalogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

// queryParam maps an absent query parameter to nil so the repository can
// tell "not filtered" from "filtered by empty string".
func queryParam(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
