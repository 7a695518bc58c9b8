package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Chinny123a/flightsimspot/internal/domain"
	"github.com/Chinny123a/flightsimspot/internal/service"
	"github.com/Chinny123a/flightsimspot/pkg/httputil"
	"github.com/Chinny123a/flightsimspot/pkg/validator"
)

// ReviewHandler handles review listing, submission, and moderation.
type ReviewHandler struct {
	reviews *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(reviews *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

// RatingsRequest carries the five sub-scores, each in [1,5].
type RatingsRequest struct {
	Overall         int `json:"overall" validate:"required,gte=1,lte=5"`
	Performance     int `json:"performance" validate:"required,gte=1,lte=5"`
	VisualQuality   int `json:"visual_quality" validate:"required,gte=1,lte=5"`
	FlightModel     int `json:"flight_model" validate:"required,gte=1,lte=5"`
	SystemsAccuracy int `json:"systems_accuracy" validate:"required,gte=1,lte=5"`
}

// CreateReviewRequest is the JSON request body for submitting a review.
type CreateReviewRequest struct {
	Title   string         `json:"title" validate:"required,min=1,max=200"`
	Content string         `json:"content" validate:"required,min=1,max=10000"`
	Ratings RatingsRequest `json:"ratings" validate:"required"`
}

// List handles GET /api/aircraft/{id}/reviews.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	aircraftID := chi.URLParam(r, "id")

	reviews, err := h.reviews.ListForAircraft(r.Context(), aircraftID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// Create handles POST /api/aircraft/{id}/reviews (authenticated).
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	aircraftID := chi.URLParam(r, "id")
	user := CurrentUser(r)
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateReviewRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	review, err := h.reviews.Create(r.Context(), aircraftID, user, &service.CreateReviewInput{
		Title:   req.Title,
		Content: req.Content,
		Ratings: domain.Ratings{
			Overall:         req.Ratings.Overall,
			Performance:     req.Ratings.Performance,
			VisualQuality:   req.Ratings.VisualQuality,
			FlightModel:     req.Ratings.FlightModel,
			SystemsAccuracy: req.Ratings.SystemsAccuracy,
		},
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"message":   "Review submitted successfully",
		"review_id": review.ID,
	})
}

// Delete handles DELETE /api/reviews/{id} (admin moderation).
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "id")

	if err := h.reviews.Delete(r.Context(), reviewID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Review deleted successfully",
	})
}
