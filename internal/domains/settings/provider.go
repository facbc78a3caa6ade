package settings

//go:generate go run go.uber.org/mock/mockgen -source=./provider.go -destination=./mocks/provider_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"
	"trs/config"
	"trs/shared/constant"
	"trs/shared/failure"
)

type Provider interface {
	Current(ctx context.Context) (Settings, error)
}

type providerImpl struct {
	cfg *config.Config
}

func NewProvider(cfg *config.Config) Provider {
	return &providerImpl{cfg: cfg}
}

// Current derives typed settings from the Venue config section on every call,
// so a hot-reloaded config is picked up without restarting.
func (p *providerImpl) Current(_ context.Context) (Settings, error) {
	venue := p.cfg.Venue

	openTime, err := time.Parse(constant.ClockFormat, venue.DefaultOpenTime)
	if err != nil {
		return Settings{}, failure.InternalError(fmt.Errorf("invalid default open time %q: %w", venue.DefaultOpenTime, err)) //nolint:wrapcheck
	}

	closeTime, err := time.Parse(constant.ClockFormat, venue.DefaultCloseTime)
	if err != nil {
		return Settings{}, failure.InternalError(fmt.Errorf("invalid default close time %q: %w", venue.DefaultCloseTime, err)) //nolint:wrapcheck
	}

	if venue.ServingIntervalMinutes <= 0 {
		return Settings{}, failure.InternalError(fmt.Errorf("serving interval must be positive, got %d", venue.ServingIntervalMinutes)) //nolint:wrapcheck
	}

	if venue.DiningDurationMinutes <= 0 {
		return Settings{}, failure.InternalError(fmt.Errorf("dining duration must be positive, got %d", venue.DiningDurationMinutes)) //nolint:wrapcheck
	}

	return Settings{
		DefaultOpenTime:       openTime,
		DefaultCloseTime:      closeTime,
		ServingInterval:       time.Duration(venue.ServingIntervalMinutes) * time.Minute,
		DiningDuration:        time.Duration(venue.DiningDurationMinutes) * time.Minute,
		ReservationsPerSlot:   venue.ReservationsPerSlot,
		NotificationEmails:    venue.NotificationEmails,
		NotificationPhones:    venue.NotificationPhones,
		ReminderEmailTemplate: venue.ReminderEmailTemplate,
		ReminderSMSTemplate:   venue.ReminderSMSTemplate,
	}, nil
}
