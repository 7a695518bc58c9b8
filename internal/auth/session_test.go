package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chinny123a/flightsimspot/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testUser() *domain.SessionUser {
	return &domain.SessionUser{
		ID:        "u-1",
		Email:     "pilot@example.com",
		Name:      "Pilot",
		AvatarURL: "https://example.com/a.png",
		Provider:  "google",
		IsAdmin:   false,
	}
}

func issueCookie(t *testing.T, m *SessionManager, user *domain.SessionUser) *http.Cookie {
	rec := httptest.NewRecorder()
	require.NoError(t, m.Issue(rec, user))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSessionManager_IssueAndRead(t *testing.T) {
	m := NewSessionManager(testSecret, 24*time.Hour, true)
	cookie := issueCookie(t, m, testUser())

	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)

	user, err := m.Read(req)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "pilot@example.com", user.Email)
	assert.False(t, user.IsAdmin)
}

func TestSessionManager_Read_NoCookie_Anonymous(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour, true)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	user, err := m.Read(req)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSessionManager_Read_TamperedToken(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour, true)
	cookie := issueCookie(t, m, testUser())
	cookie.Value += "x"

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)

	_, err := m.Read(req)
	require.Error(t, err)
}

func TestSessionManager_Read_WrongSecret(t *testing.T) {
	issuer := NewSessionManager(testSecret, time.Hour, true)
	cookie := issueCookie(t, issuer, testUser())

	reader := NewSessionManager("another-secret-another-secret-32", time.Hour, true)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)

	_, err := reader.Read(req)
	require.Error(t, err)
}

func TestSessionManager_Read_Expired(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour, true)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	cookie := issueCookie(t, m, testUser())

	m.now = time.Now
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)

	_, err := m.Read(req)
	require.Error(t, err)
}

func TestSessionManager_Clear(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour, true)

	rec := httptest.NewRecorder()
	m.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestSessionManager_AdminFlagRoundTrips(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour, true)
	admin := testUser()
	admin.IsAdmin = true
	cookie := issueCookie(t, m, admin)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.AddCookie(cookie)

	user, err := m.Read(req)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}
