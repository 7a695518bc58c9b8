package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Chinny123a/flightsimspot/internal/service"
	"github.com/Chinny123a/flightsimspot/pkg/httputil"
)

// AnalyticsHandler handles view tracking and the analytics read side.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	logger    *slog.Logger
}

// NewAnalyticsHandler creates a new analytics HTTP handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, logger: logger}
}

// TrackView handles POST /api/aircraft/{id}/view.
func (h *AnalyticsHandler) TrackView(w http.ResponseWriter, r *http.Request) {
	aircraftID := chi.URLParam(r, "id")

	count, err := h.analytics.TrackView(r.Context(), aircraftID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"view_count": count,
	})
}

// Analytics handles GET /api/aircraft-analytics.
func (h *AnalyticsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.analytics.Analytics(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, analytics)
}
