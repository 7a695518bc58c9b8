package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Chinny123a/flightsimspot/internal/domain"
	"github.com/Chinny123a/flightsimspot/internal/service"
	apperrors "github.com/Chinny123a/flightsimspot/pkg/errors"
	"github.com/Chinny123a/flightsimspot/pkg/httputil"
	"github.com/Chinny123a/flightsimspot/pkg/validator"
)

// AircraftHandler handles the admin-side catalog endpoints.
type AircraftHandler struct {
	aircraft *service.AircraftService
	logger   *slog.Logger
}

// NewAircraftHandler creates a new aircraft HTTP handler.
func NewAircraftHandler(aircraft *service.AircraftService, logger *slog.Logger) *AircraftHandler {
	return &AircraftHandler{aircraft: aircraft, logger: logger}
}

// --- Request DTOs ---

// CreateAircraftRequest is the JSON request body for creating an aircraft.
type CreateAircraftRequest struct {
	Name                 string   `json:"name" validate:"required,min=1,max=200"`
	Developer            string   `json:"developer" validate:"required,min=1,max=200"`
	AircraftManufacturer string   `json:"aircraft_manufacturer" validate:"required,min=1,max=200"`
	AircraftModel        string   `json:"aircraft_model" validate:"required,min=1,max=200"`
	Variant              string   `json:"variant" validate:"omitempty,max=200"`
	Category             string   `json:"category" validate:"required,oneof=Commercial 'General Aviation' Military Helicopters Cargo"`
	PriceType            string   `json:"price_type" validate:"required,oneof=Paid Freeware"`
	Price                string   `json:"price" validate:"omitempty,max=50"`
	Description          string   `json:"description" validate:"omitempty,max=10000"`
	ImageURL             string   `json:"image_url" validate:"omitempty,url,max=1000"`
	CockpitImageURL      string   `json:"cockpit_image_url" validate:"omitempty,url,max=1000"`
	AdditionalImages     []string `json:"additional_images" validate:"omitempty,dive,url"`
	ReleaseDate          string   `json:"release_date" validate:"omitempty,max=50"`
	Compatibility        []string `json:"compatibility" validate:"omitempty,dive,max=100"`
	DownloadURL          string   `json:"download_url" validate:"omitempty,url,max=1000"`
	DeveloperWebsite     string   `json:"developer_website" validate:"omitempty,url,max=1000"`
	Features             []string `json:"features" validate:"omitempty,dive,max=500"`
}

// UpdateAircraftRequest is the JSON request body for a partial update.
// Absent fields are left untouched.
type UpdateAircraftRequest struct {
	Name                 *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Developer            *string   `json:"developer" validate:"omitempty,min=1,max=200"`
	AircraftManufacturer *string   `json:"aircraft_manufacturer" validate:"omitempty,min=1,max=200"`
	AircraftModel        *string   `json:"aircraft_model" validate:"omitempty,min=1,max=200"`
	Variant              *string   `json:"variant" validate:"omitempty,max=200"`
	Category             *string   `json:"category" validate:"omitempty,oneof=Commercial 'General Aviation' Military Helicopters Cargo"`
	PriceType            *string   `json:"price_type" validate:"omitempty,oneof=Paid Freeware"`
	Price                *string   `json:"price" validate:"omitempty,max=50"`
	Description          *string   `json:"description" validate:"omitempty,max=10000"`
	ImageURL             *string   `json:"image_url" validate:"omitempty,url,max=1000"`
	CockpitImageURL      *string   `json:"cockpit_image_url" validate:"omitempty,url,max=1000"`
	AdditionalImages     *[]string `json:"additional_images" validate:"omitempty,dive,url"`
	ReleaseDate          *string   `json:"release_date" validate:"omitempty,max=50"`
	Compatibility        *[]string `json:"compatibility" validate:"omitempty,dive,max=100"`
	DownloadURL          *string   `json:"download_url" validate:"omitempty,url,max=1000"`
	DeveloperWebsite     *string   `json:"developer_website" validate:"omitempty,url,max=1000"`
	Features             *[]string `json:"features" validate:"omitempty,dive,max=500"`
}

// --- Handlers ---

// Create handles POST /api/aircraft (admin).
func (h *AircraftHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateAircraftRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	aircraft, err := h.aircraft.Create(r.Context(), &service.CreateAircraftInput{
		Name:                 req.Name,
		Developer:            req.Developer,
		AircraftManufacturer: req.AircraftManufacturer,
		AircraftModel:        req.AircraftModel,
		Variant:              req.Variant,
		Category:             req.Category,
		PriceType:            req.PriceType,
		Price:                req.Price,
		Description:          req.Description,
		ImageURL:             req.ImageURL,
		CockpitImageURL:      req.CockpitImageURL,
		AdditionalImages:     req.AdditionalImages,
		ReleaseDate:          req.ReleaseDate,
		Compatibility:        req.Compatibility,
		DownloadURL:          req.DownloadURL,
		DeveloperWebsite:     req.DeveloperWebsite,
		Features:             req.Features,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"message":     "Aircraft created successfully",
		"aircraft_id": aircraft.ID,
	})
}

// Update handles PUT /api/aircraft/{id} (admin).
func (h *AircraftHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateAircraftRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	patch := &domain.AircraftPatch{
		Name:                 req.Name,
		Developer:            req.Developer,
		AircraftManufacturer: req.AircraftManufacturer,
		AircraftModel:        req.AircraftModel,
		Variant:              req.Variant,
		Category:             req.Category,
		PriceType:            req.PriceType,
		Price:                req.Price,
		Description:          req.Description,
		ImageURL:             req.ImageURL,
		CockpitImageURL:      req.CockpitImageURL,
		AdditionalImages:     req.AdditionalImages,
		ReleaseDate:          req.ReleaseDate,
		Compatibility:        req.Compatibility,
		DownloadURL:          req.DownloadURL,
		DeveloperWebsite:     req.DeveloperWebsite,
		Features:             req.Features,
	}

	if patch.IsEmpty() {
		httputil.WriteError(w, r, apperrors.InvalidInput("no fields to update"), h.logger)
		return
	}

	if err := h.aircraft.Update(r.Context(), id, patch); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Aircraft updated successfully",
	})
}

// Archive handles POST /api/aircraft/{id}/archive (admin).
func (h *AircraftHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.aircraft.Archive(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Aircraft archived successfully",
	})
}

// Restore handles POST /api/aircraft/{id}/restore (admin).
func (h *AircraftHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.aircraft.Restore(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Aircraft restored successfully",
	})
}

// ListArchived handles GET /api/admin/archived-aircraft (admin).
func (h *AircraftHandler) ListArchived(w http.ResponseWriter, r *http.Request) {
	archived, err := h.aircraft.ListArchived(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, archived)
}

// AdminStats handles GET /api/admin/stats (admin).
func (h *AircraftHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.aircraft.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}
