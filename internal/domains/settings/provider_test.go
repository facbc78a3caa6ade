package settings_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trs/config"
	"trs/internal/domains/settings"
	"trs/shared/failure"
)

func venueConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Venue.DefaultOpenTime = "16:00"
	cfg.Venue.DefaultCloseTime = "22:00"
	cfg.Venue.ServingIntervalMinutes = 30
	cfg.Venue.DiningDurationMinutes = 120
	cfg.Venue.ReservationsPerSlot = 2
	return cfg
}

func TestProviderCurrent(t *testing.T) {
	t.Run("returns typed settings from venue config", func(t *testing.T) {
		provider := settings.NewProvider(venueConfig())

		got, err := provider.Current(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 16, got.DefaultOpenTime.Hour())
		assert.Equal(t, 0, got.DefaultOpenTime.Minute())
		assert.Equal(t, 22, got.DefaultCloseTime.Hour())
		assert.Equal(t, 30*time.Minute, got.ServingInterval)
		assert.Equal(t, 2*time.Hour, got.DiningDuration)
		assert.Equal(t, 2, got.ReservationsPerSlot)
	})

	t.Run("rejects malformed open time", func(t *testing.T) {
		cfg := venueConfig()
		cfg.Venue.DefaultOpenTime = "4pm"
		provider := settings.NewProvider(cfg)

		_, err := provider.Current(context.Background())

		require.Error(t, err)
		assert.Equal(t, 500, failure.GetCode(err))
	})

	t.Run("rejects malformed close time", func(t *testing.T) {
		cfg := venueConfig()
		cfg.Venue.DefaultCloseTime = "25:99"
		provider := settings.NewProvider(cfg)

		_, err := provider.Current(context.Background())

		require.Error(t, err)
		assert.Equal(t, 500, failure.GetCode(err))
	})

	t.Run("rejects nonpositive serving interval", func(t *testing.T) {
		cfg := venueConfig()
		cfg.Venue.ServingIntervalMinutes = 0
		provider := settings.NewProvider(cfg)

		_, err := provider.Current(context.Background())

		require.Error(t, err)
	})

	t.Run("rejects nonpositive dining duration", func(t *testing.T) {
		cfg := venueConfig()
		cfg.Venue.DiningDurationMinutes = -15
		provider := settings.NewProvider(cfg)

		_, err := provider.Current(context.Background())

		require.Error(t, err)
	})
}
