package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Chinny123a/flightsimspot/internal/domain"
	"github.com/Chinny123a/flightsimspot/internal/repository"
)

type mockAircraftStore struct {
	mock.Mock
}

func (m *mockAircraftStore) Count(ctx context.Context, filter repository.AircraftFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAircraftStore) Create(ctx context.Context, aircraft *domain.Aircraft) error {
	args := m.Called(ctx, aircraft)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSeeder_Seed(t *testing.T) {
	t.Run("skips a populated database", func(t *testing.T) {
		store := new(mockAircraftStore)
		// The emptiness check must see archived aircraft too.
		store.On("Count", mock.Anything, repository.AircraftFilter{IncludeArchived: true}).Return(int64(3), nil)

		err := New(store, newTestLogger()).Seed(context.Background())

		assert.NoError(t, err)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("seeds the sample fleet into an empty database", func(t *testing.T) {
		store := new(mockAircraftStore)
		store.On("Count", mock.Anything, repository.AircraftFilter{IncludeArchived: true}).Return(int64(0), nil)

		var seeded []*domain.Aircraft
		store.On("Create", mock.Anything, mock.AnythingOfType("*domain.Aircraft")).
			Run(func(args mock.Arguments) {
				seeded = append(seeded, args.Get(1).(*domain.Aircraft))
			}).
			Return(nil)

		err := New(store, newTestLogger()).Seed(context.Background())

		require.NoError(t, err)
		require.Len(t, seeded, 8)

		ids := make(map[string]struct{}, len(seeded))
		for _, a := range seeded {
			assert.NotEmpty(t, a.ID)
			ids[a.ID] = struct{}{}
			assert.Equal(t, 0.0, a.AverageRating)
			assert.Equal(t, 0, a.TotalReviews)
			assert.Equal(t, int64(0), a.ViewCount)
			assert.False(t, a.IsArchived)
		}
		assert.Len(t, ids, 8)
	})

	t.Run("stops on the first insert failure", func(t *testing.T) {
		store := new(mockAircraftStore)
		store.On("Count", mock.Anything, repository.AircraftFilter{IncludeArchived: true}).Return(int64(0), nil)
		store.On("Create", mock.Anything, mock.AnythingOfType("*domain.Aircraft")).Return(errors.New("write failed"))

		err := New(store, newTestLogger()).Seed(context.Background())

		assert.Error(t, err)
		store.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("propagates the count failure", func(t *testing.T) {
		store := new(mockAircraftStore)
		store.On("Count", mock.Anything, mock.Anything).Return(int64(0), errors.New("unavailable"))

		err := New(store, newTestLogger()).Seed(context.Background())

		assert.Error(t, err)
	})
}
