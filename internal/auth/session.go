package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Chinny123a/flightsimspot/internal/domain"
	apperrors "github.com/Chinny123a/flightsimspot/pkg/errors"
)

// SessionCookieName is the name of the signed session cookie.
const SessionCookieName = "fss_session"

// sessionClaims is the JWT payload carried in the session cookie.
type sessionClaims struct {
	User domain.SessionUser `json:"user"`
	jwt.RegisteredClaims
}

// SessionManager issues and validates the signed session cookie. The cookie
// is an HS256 JWT: HttpOnly, Secure, SameSite=None so the browser sends it
// on cross-origin requests from the frontend.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewSessionManager creates a session manager. secure controls the cookie's
// Secure attribute; it is disabled only for local development over HTTP.
func NewSessionManager(secret string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
	}
}

// Issue writes a session cookie for the given user onto the response.
func (m *SessionManager) Issue(w http.ResponseWriter, user *domain.SessionUser) error {
	now := m.now().UTC()
	claims := sessionClaims{
		User: *user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteNoneMode,
	})
	return nil
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteNoneMode,
	})
}

// Read extracts and validates the session from the request cookie. A missing
// cookie is not an error: it returns (nil, nil), meaning anonymous. An
// invalid or expired token returns Unauthorized.
func (m *SessionManager) Read(r *http.Request) (*domain.SessionUser, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, nil
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthorized("invalid session")
	}

	return &claims.User, nil
}
