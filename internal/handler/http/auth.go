package http

import (
	"log/slog"
	"net/http"

	"github.com/Chinny123a/flightsimspot/internal/auth"
	"github.com/Chinny123a/flightsimspot/internal/domain"
	"github.com/Chinny123a/flightsimspot/internal/service"
	apperrors "github.com/Chinny123a/flightsimspot/pkg/errors"
	"github.com/Chinny123a/flightsimspot/pkg/httputil"
	"github.com/Chinny123a/flightsimspot/pkg/validator"
)

// AuthHandler handles Google sign-in and session endpoints.
type AuthHandler struct {
	users    *service.UserService
	verifier *auth.GoogleVerifier
	sessions *auth.SessionManager
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(users *service.UserService, verifier *auth.GoogleVerifier, sessions *auth.SessionManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, verifier: verifier, sessions: sessions, logger: logger}
}

// GoogleVerifyRequest is the JSON request body for Google sign-in.
type GoogleVerifyRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// GoogleVerify handles POST /api/auth/google/verify.
func (h *AuthHandler) GoogleVerify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req GoogleVerifyRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	identity, err := h.verifier.Verify(r.Context(), req.Credential)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	user, err := h.users.FindOrCreateFromGoogle(r.Context(), identity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sessionUser := domain.SessionUserFrom(user)
	if err := h.sessions.Issue(w, sessionUser); err != nil {
		httputil.WriteError(w, r, apperrors.Internal(err), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"user":   sessionUser,
	})
}

// Me handles GET /api/auth/me. Anonymous requests get a null user, not 401.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	var user any
	if u := CurrentUser(r); u != nil {
		user = u
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Logged out successfully",
	})
}
