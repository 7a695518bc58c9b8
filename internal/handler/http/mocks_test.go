package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Chinny123a/flightsimspot/internal/auth"
	"github.com/Chinny123a/flightsimspot/internal/domain"
	"github.com/Chinny123a/flightsimspot/internal/event"
	"github.com/Chinny123a/flightsimspot/internal/repository"
	"github.com/Chinny123a/flightsimspot/internal/service"
	"github.com/Chinny123a/flightsimspot/pkg/health"
	pkgkafka "github.com/Chinny123a/flightsimspot/pkg/kafka"
	"github.com/Chinny123a/flightsimspot/pkg/middleware"
)

// --- Mock repositories ---

type mockAircraftRepository struct {
	mock.Mock
}

func (m *mockAircraftRepository) Create(ctx context.Context, aircraft *domain.Aircraft) error {
	args := m.Called(ctx, aircraft)
	return args.Error(0)
}

func (m *mockAircraftRepository) GetByID(ctx context.Context, id string) (*domain.Aircraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Aircraft), args.Error(1)
}

func (m *mockAircraftRepository) List(ctx context.Context, filter repository.AircraftFilter) ([]domain.Aircraft, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Aircraft), args.Error(1)
}

func (m *mockAircraftRepository) Update(ctx context.Context, id string, patch *domain.AircraftPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *mockAircraftRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	args := m.Called(ctx, id, archived)
	return args.Error(0)
}

func (m *mockAircraftRepository) SetRating(ctx context.Context, id string, averageRating float64, totalReviews int) error {
	args := m.Called(ctx, id, averageRating, totalReviews)
	return args.Error(0)
}

func (m *mockAircraftRepository) IncrementViewCount(ctx context.Context, id string, viewedAt time.Time) (int64, error) {
	args := m.Called(ctx, id, viewedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAircraftRepository) CategoriesWithCounts(ctx context.Context) ([]repository.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CategoryCount), args.Error(1)
}

func (m *mockAircraftRepository) ManufacturersByCategory(ctx context.Context, category string) ([]repository.ManufacturerCount, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ManufacturerCount), args.Error(1)
}

func (m *mockAircraftRepository) MostViewed(ctx context.Context, limit int) ([]domain.Aircraft, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Aircraft), args.Error(1)
}

func (m *mockAircraftRepository) ViewedSince(ctx context.Context, cutoff time.Time, limit int) ([]domain.Aircraft, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Aircraft), args.Error(1)
}

func (m *mockAircraftRepository) CategoryViewStats(ctx context.Context) ([]repository.CategoryViewStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CategoryViewStats), args.Error(1)
}

func (m *mockAircraftRepository) TotalViews(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAircraftRepository) Distinct(ctx context.Context, field string) ([]string, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockAircraftRepository) Count(ctx context.Context, filter repository.AircraftFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) ListByAircraftID(ctx context.Context, aircraftID string) ([]domain.Review, error) {
	args := m.Called(ctx, aircraftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Review, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockReviewRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReviewRepository) CountSince(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) IncrementReviewCount(ctx context.Context, id string, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepository) CountSince(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEventProducer returns a producer pointed at a broker that does not
// exist; publishes fail and the services log and carry on, which is the
// production behavior for a Kafka outage too.
func newTestEventProducer() *event.Producer {
	logger := newTestLogger()
	cfg := pkgkafka.DefaultProducerConfig([]string{"localhost:19092"})
	cfg.MaxAttempts = 1
	cfg.WriteTimeout = 250 * time.Millisecond
	return event.NewProducer(pkgkafka.NewProducer(cfg, logger), logger)
}

// testEnv wires the full router against mock repositories, a real session
// manager, and an event producer with no reachable broker.
type testEnv struct {
	aircraftRepo *mockAircraftRepository
	reviewRepo   *mockReviewRepository
	userRepo     *mockUserRepository
	sessions     *auth.SessionManager
	router       http.Handler
}

func newTestEnv() *testEnv {
	logger := newTestLogger()
	aircraftRepo := new(mockAircraftRepository)
	reviewRepo := new(mockReviewRepository)
	userRepo := new(mockUserRepository)

	events := newTestEventProducer()
	rating := service.NewRatingAggregator(aircraftRepo, reviewRepo, logger)
	sessions := auth.NewSessionManager(strings.Repeat("k", 32), time.Hour, false)

	router := NewRouter(RouterConfig{
		Catalog:   service.NewCatalogService(aircraftRepo, reviewRepo, userRepo, logger),
		Aircraft:  service.NewAircraftService(aircraftRepo, reviewRepo, userRepo, events, logger),
		Reviews:   service.NewReviewService(reviewRepo, aircraftRepo, userRepo, rating, events, logger),
		Users:     service.NewUserService(userRepo, reviewRepo, aircraftRepo, []string{"admin@flightsimspot.com"}, logger),
		Analytics: service.NewAnalyticsService(aircraftRepo, logger),
		Verifier:  auth.NewGoogleVerifier("http://127.0.0.1:1/tokeninfo", "test-client-id", logger),
		Sessions:  sessions,
		Health:    health.NewHandler(),
		Logger:    logger,
		CORS: middleware.CORSConfig{
			AllowedOrigins: []string{"*"},
			Environment:    "development",
		},
	})

	return &testEnv{
		aircraftRepo: aircraftRepo,
		reviewRepo:   reviewRepo,
		userRepo:     userRepo,
		sessions:     sessions,
		router:       router,
	}
}

// sessionCookie issues a real session cookie for the given user.
func (e *testEnv) sessionCookie(t *testing.T, user *domain.SessionUser) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, e.sessions.Issue(rec, user))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func memberUser() *domain.SessionUser {
	return &domain.SessionUser{
		ID:       "user-1",
		Email:    "pilot@example.com",
		Name:     "Test Pilot",
		Provider: "google",
	}
}

func adminUser() *domain.SessionUser {
	return &domain.SessionUser{
		ID:       "admin-1",
		Email:    "admin@flightsimspot.com",
		Name:     "Admin",
		Provider: "google",
		IsAdmin:  true,
	}
}
