package service

import (
	"context"
	"fmt"
	"time"

	"trs/config"
	"trs/infras/otel"
	calendarRepo "trs/internal/domains/calendar/repository"
	"trs/internal/domains/schedule/model"
	"trs/internal/domains/schedule/model/dto"
	"trs/internal/domains/schedule/repository"
	"trs/internal/domains/settings"
	"trs/shared"
	"trs/shared/cache"
	"trs/shared/constant"
	"trs/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllTimeSlot = "time_slot:gets"
)

type Schedule interface {
	SlotsForDate(ctx context.Context, date string) (dto.GetTimeSlotsResponse, error)
}

type serviceImpl struct {
	repo     repository.Schedule
	calendar calendarRepo.Calendar
	settings settings.Provider
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Schedule, calendar calendarRepo.Calendar, settings settings.Provider, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Schedule {
	return &serviceImpl{
		repo:     repo,
		calendar: calendar,
		settings: settings,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// SlotsForDate returns the seatings for a date, generating and persisting
// them on first request. An open-day record overrides the default serving
// window for that date.
func (s *serviceImpl) SlotsForDate(ctx context.Context, date string) (res dto.GetTimeSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SlotsForDate")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := time.Parse(constant.DateFormat, date)
	if err != nil {
		return res, failure.InvalidDateParam // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetAllTimeSlot, date)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for time slots")

		return res, nil
	}

	persisted, err := s.repo.GetByDate(ctx, day)
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slots")

		return res, fmt.Errorf("failed to get time slots: %w", err)
	}

	if len(persisted) == 0 {
		persisted, err = s.generateForDate(ctx, day)
		if err != nil {
			return res, err
		}
	}

	res.FromModels(persisted)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save time slots to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) generateForDate(ctx context.Context, day time.Time) ([]model.TimeSlot, error) {
	current, err := s.settings.Current(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load venue settings")

		return nil, fmt.Errorf("failed to load venue settings: %w", err)
	}

	openTime := current.DefaultOpenTime
	closeTime := current.DefaultCloseTime

	openDay, err := s.calendar.GetByDate(ctx, day)
	if err != nil {
		log.Error().Err(err).Msg("failed to get open day")

		return nil, fmt.Errorf("failed to get open day: %w", err)
	}

	if openDay.ID != 0 {
		openTime = openDay.OpenTime
		closeTime = openDay.CloseTime
	}

	generated, err := Generate(day, openTime, closeTime, current.ServingInterval, current.DiningDuration, constant.SystemUser)
	if err != nil {
		return nil, err
	}

	persisted, err := s.repo.InsertBulk(ctx, day, generated)
	if err != nil {
		log.Error().Err(err).Msg("failed to persist time slots")

		return nil, fmt.Errorf("failed to persist time slots: %w", err)
	}

	return persisted, nil
}
