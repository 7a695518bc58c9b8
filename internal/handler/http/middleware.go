package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Chinny123a/flightsimspot/internal/auth"
	"github.com/Chinny123a/flightsimspot/internal/domain"
	apperrors "github.com/Chinny123a/flightsimspot/pkg/errors"
	"github.com/Chinny123a/flightsimspot/pkg/httputil"
	"github.com/Chinny123a/flightsimspot/pkg/logger"
)

type contextKey string

const sessionUserKey contextKey = "session_user"

// Session resolves the session cookie into a *domain.SessionUser and stores
// it in the request context. Requests without a valid session proceed
// anonymously; the authorization middlewares below decide who gets in.
func Session(sessions *auth.SessionManager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := sessions.Read(r)
			if err != nil {
				// An invalid or expired cookie downgrades to anonymous
				// rather than blocking public endpoints.
				log.DebugContext(r.Context(), "discarding invalid session cookie",
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionUserKey, user)
			ctx = logger.WithUserID(ctx, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated session user, or nil for anonymous
// requests.
func CurrentUser(r *http.Request) *domain.SessionUser {
	user, _ := r.Context().Value(sessionUserKey).(*domain.SessionUser)
	return user
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if CurrentUser(r) == nil {
				httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), log)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects anonymous requests with 401 and authenticated
// non-admins with 403.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r)
			if user == nil {
				httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), log)
				return
			}
			if !user.IsAdmin {
				httputil.WriteError(w, r, apperrors.Forbidden("admin access required"), log)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ContentTypeJSON enforces that requests with a body carry
// Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			if r.ContentLength > 0 && !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "UNSUPPORTED_MEDIA_TYPE",
						Message: "Content-Type must be application/json",
					},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
